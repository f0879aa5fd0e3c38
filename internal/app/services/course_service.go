package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// CourseService manages courses and the instructor-facing course views
type CourseService interface {
	CreateCourse(ctx context.Context, p models.Principal, course *models.Course) (*models.Course, error)
	GetCourse(ctx context.Context, id int64, p models.Principal) (*models.Course, error)
	ListPublished(ctx context.Context) ([]models.Course, error)
	UpdateCourse(ctx context.Context, p models.Principal, course *models.Course) (*models.Course, error)
	DeleteCourse(ctx context.Context, p models.Principal, id int64) error
	ListOwnCourses(ctx context.Context, p models.Principal) ([]models.Course, error)
	InstructorStats(ctx context.Context, p models.Principal, instructorID int64) ([]models.CourseStats, error)
}

type courseServiceImpl struct {
	courseRepo    repositories.ICourseRepository
	principalRepo repositories.IPrincipalRepository
	authz         *appauth.AuthorizationService
	logger        zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo repositories.ICourseRepository,
	principalRepo repositories.IPrincipalRepository,
	authz *appauth.AuthorizationService,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courseRepo:    courseRepo,
		principalRepo: principalRepo,
		authz:         authz,
		logger:        logger,
	}
}

func validateCourse(course *models.Course) error {
	course.Title = strings.TrimSpace(course.Title)
	if err := required("title", course.Title, "category", course.Category, "language", course.Language); err != nil {
		return err
	}
	if course.Price < 0 {
		return apperrors.NewValidationError("price cannot be negative")
	}
	if course.Status == "" {
		course.Status = models.CourseStatusDraft
	}
	if !course.Status.Valid() {
		return apperrors.NewValidationError("status must be draft or published")
	}
	return nil
}

// CreateCourse stores a course owned by the calling instructor
func (s *courseServiceImpl) CreateCourse(ctx context.Context, p models.Principal, course *models.Course) (*models.Course, error) {
	instructor, err := requireInstructor(p)
	if err != nil {
		return nil, err
	}
	if err := validateCourse(course); err != nil {
		return nil, err
	}

	course.InstructorID = instructor.ID
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Int64("instructorID", instructor.ID).Msg("Course created")
	return course, nil
}

// GetCourse returns a course; drafts are reported as missing to everyone
// except their owner and admins
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64, p models.Principal) (*models.Course, error) {
	return visibleCourse(ctx, s.courseRepo, id, p)
}

// ListPublished returns every published course
func (s *courseServiceImpl) ListPublished(ctx context.Context) ([]models.Course, error) {
	return s.courseRepo.ListPublished(ctx)
}

// UpdateCourse replaces the editable fields of an owned course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, p models.Principal, course *models.Course) (*models.Course, error) {
	existing, err := s.authz.CourseForOwner(ctx, course.ID, p)
	if err != nil {
		return nil, err
	}
	if course.Status == "" {
		course.Status = existing.Status
	}
	if err := validateCourse(course); err != nil {
		return nil, err
	}
	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", course.ID).Str("status", string(course.Status)).Msg("Course updated")
	return s.courseRepo.GetByID(ctx, course.ID)
}

// DeleteCourse removes an owned course with all of its content and activity
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, p models.Principal, id int64) error {
	if _, err := s.authz.CourseForOwner(ctx, id, p); err != nil {
		return err
	}
	if err := s.courseRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}

// ListOwnCourses lists the calling instructor's courses, drafts included
func (s *courseServiceImpl) ListOwnCourses(ctx context.Context, p models.Principal) ([]models.Course, error) {
	instructor, err := requireInstructor(p)
	if err != nil {
		return nil, err
	}
	return s.courseRepo.ListByInstructor(ctx, instructor.ID)
}

// InstructorStats returns per-course counters for an instructor. Only the
// instructor and admins may read them.
func (s *courseServiceImpl) InstructorStats(ctx context.Context, p models.Principal, instructorID int64) ([]models.CourseStats, error) {
	if err := selfOrAdmin(p, models.RoleInstructor, instructorID); err != nil {
		return nil, err
	}
	if _, err := s.principalRepo.GetInstructorByID(ctx, instructorID); err != nil {
		return nil, err
	}

	stats, err := s.courseRepo.InstructorStats(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return nil, apperrors.NewResourceNotFoundError("No courses found for this instructor")
	}
	return stats, nil
}
