package auth

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// AuthorizationService resolves ownership along the content chain
// lesson/quiz -> module -> course -> instructor and assignment -> course.
// A missing row yields the entity's not-found error; an owner mismatch
// yields ErrNotOwner. Admins are never owners.
type AuthorizationService struct {
	courseRepo     repositories.ICourseRepository
	moduleRepo     repositories.IModuleRepository
	lessonRepo     repositories.ILessonRepository
	quizRepo       repositories.IQuizRepository
	assignmentRepo repositories.IAssignmentRepository
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	courseRepo repositories.ICourseRepository,
	moduleRepo repositories.IModuleRepository,
	lessonRepo repositories.ILessonRepository,
	quizRepo repositories.IQuizRepository,
	assignmentRepo repositories.IAssignmentRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	logger zerolog.Logger,
) *AuthorizationService {
	return &AuthorizationService{
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		lessonRepo:     lessonRepo,
		quizRepo:       quizRepo,
		assignmentRepo: assignmentRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// OwnsCourse reports whether p is the instructor who owns the course
func OwnsCourse(course *models.Course, p models.Principal) bool {
	inst, ok := models.IsInstructor(p)
	return ok && course.InstructorID == inst.ID
}

// CanViewCourse reports whether p may see the course: published courses are
// public, drafts are visible to their owner and to admins.
func CanViewCourse(course *models.Course, p models.Principal) bool {
	if course.IsPublished() {
		return true
	}
	if p == nil {
		return false
	}
	return models.IsAdmin(p) || OwnsCourse(course, p)
}

// CourseForOwner loads the course and checks that p owns it
func (s *AuthorizationService) CourseForOwner(ctx context.Context, courseID int64, p models.Principal) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !OwnsCourse(course, p) {
		s.logger.Warn().Int64("course_id", courseID).Int64("principal_id", p.PrincipalID()).Str("role", string(p.Role())).Msg("Ownership check failed for course")
		return nil, apperrors.ErrNotOwner
	}
	return course, nil
}

// ModuleForOwner loads the module and checks that p owns its course
func (s *AuthorizationService) ModuleForOwner(ctx context.Context, moduleID int64, p models.Principal) (*models.Module, error) {
	module, err := s.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if _, err := s.CourseForOwner(ctx, module.CourseID, p); err != nil {
		return nil, err
	}
	return module, nil
}

// LessonForOwner loads the lesson and checks ownership through its module
func (s *AuthorizationService) LessonForOwner(ctx context.Context, lessonID int64, p models.Principal) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ModuleForOwner(ctx, lesson.ModuleID, p); err != nil {
		return nil, err
	}
	return lesson, nil
}

// QuizForOwner loads the quiz and checks ownership through its module
func (s *AuthorizationService) QuizForOwner(ctx context.Context, quizID int64, p models.Principal) (*models.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ModuleForOwner(ctx, quiz.ModuleID, p); err != nil {
		return nil, err
	}
	return quiz, nil
}

// AssignmentForOwner loads the assignment and checks ownership through its course
func (s *AuthorizationService) AssignmentForOwner(ctx context.Context, assignmentID int64, p models.Principal) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.CourseForOwner(ctx, assignment.CourseID, p); err != nil {
		return nil, err
	}
	return assignment, nil
}

// IsParticipant reports whether p takes part in the course: its owning
// instructor or an enrolled student.
func (s *AuthorizationService) IsParticipant(ctx context.Context, course *models.Course, p models.Principal) (bool, error) {
	switch v := p.(type) {
	case *models.Instructor:
		return course.InstructorID == v.ID, nil
	case *models.Student:
		return s.enrollmentRepo.Exists(ctx, v.ID, course.ID)
	}
	return false, nil
}
