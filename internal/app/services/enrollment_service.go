package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
)

// EnrollmentService enrolls students and reports on their courses
type EnrollmentService interface {
	Enroll(ctx context.Context, p models.Principal, courseID int64) (*models.Enrollment, error)
	ListCourses(ctx context.Context, p models.Principal, studentID int64) ([]models.Course, error)
	Profile(ctx context.Context, p models.Principal) (*models.Student, error)
	Progress(ctx context.Context, p models.Principal) ([]models.StudentCourseProgress, error)
}

type enrollmentServiceImpl struct {
	courseRepo     repositories.ICourseRepository
	enrollmentRepo repositories.IEnrollmentRepository
	principalRepo  repositories.IPrincipalRepository
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	courseRepo repositories.ICourseRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	principalRepo repositories.IPrincipalRepository,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		principalRepo:  principalRepo,
		logger:         logger,
	}
}

// Enroll enrolls the calling student in a published course
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, p models.Principal, courseID int64) (*models.Enrollment, error) {
	student, err := requireStudent(p)
	if err != nil {
		return nil, err
	}
	if _, err := visibleCourse(ctx, s.courseRepo, courseID, p); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{StudentID: student.ID, CourseID: courseID}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", courseID).Int64("studentID", student.ID).Msg("Student enrolled")
	return enrollment, nil
}

// ListCourses lists the courses a student is enrolled in
func (s *enrollmentServiceImpl) ListCourses(ctx context.Context, p models.Principal, studentID int64) ([]models.Course, error) {
	if err := selfOrAdmin(p, models.RoleStudent, studentID); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.ListCoursesByStudent(ctx, studentID)
}

// Profile returns the calling student's stored profile
func (s *enrollmentServiceImpl) Profile(ctx context.Context, p models.Principal) (*models.Student, error) {
	student, err := requireStudent(p)
	if err != nil {
		return nil, err
	}
	return s.principalRepo.GetStudentByID(ctx, student.ID)
}

// Progress summarises completed assignments and quizzes per enrolled course
func (s *enrollmentServiceImpl) Progress(ctx context.Context, p models.Principal) ([]models.StudentCourseProgress, error) {
	student, err := requireStudent(p)
	if err != nil {
		return nil, err
	}
	return s.enrollmentRepo.ProgressByStudent(ctx, student.ID)
}
