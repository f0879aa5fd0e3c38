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

// LessonService manages lessons. Lessons are never deleted on their own.
type LessonService interface {
	CreateLesson(ctx context.Context, p models.Principal, lesson *models.Lesson) (*models.Lesson, error)
	GetLesson(ctx context.Context, id int64, p models.Principal) (*models.Lesson, error)
	ListByModule(ctx context.Context, moduleID int64, p models.Principal) ([]models.Lesson, error)
	UpdateLesson(ctx context.Context, p models.Principal, lesson *models.Lesson) (*models.Lesson, error)
}

type lessonServiceImpl struct {
	courseRepo repositories.ICourseRepository
	moduleRepo repositories.IModuleRepository
	lessonRepo repositories.ILessonRepository
	authz      *appauth.AuthorizationService
	logger     zerolog.Logger
}

// NewLessonService creates a new LessonService
func NewLessonService(
	courseRepo repositories.ICourseRepository,
	moduleRepo repositories.IModuleRepository,
	lessonRepo repositories.ILessonRepository,
	authz *appauth.AuthorizationService,
	logger zerolog.Logger,
) LessonService {
	return &lessonServiceImpl{
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		lessonRepo: lessonRepo,
		authz:      authz,
		logger:     logger,
	}
}

func validateLesson(lesson *models.Lesson) error {
	lesson.Title = strings.TrimSpace(lesson.Title)
	if err := required("title", lesson.Title); err != nil {
		return err
	}
	if lesson.Position < 0 {
		return apperrors.NewValidationError("position cannot be negative")
	}
	if lesson.VideoURL != nil && strings.TrimSpace(*lesson.VideoURL) == "" {
		lesson.VideoURL = nil
	}
	return nil
}

// visibleModule loads a module whose course p may see
func visibleModule(ctx context.Context, moduleRepo repositories.IModuleRepository, courseRepo repositories.ICourseRepository, moduleID int64, p models.Principal) (*models.Module, error) {
	module, err := moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if _, err := visibleCourse(ctx, courseRepo, module.CourseID, p); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *lessonServiceImpl) CreateLesson(ctx context.Context, p models.Principal, lesson *models.Lesson) (*models.Lesson, error) {
	if err := validateLesson(lesson); err != nil {
		return nil, err
	}
	if _, err := s.authz.ModuleForOwner(ctx, lesson.ModuleID, p); err != nil {
		return nil, err
	}
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("lessonID", lesson.ID).Int64("moduleID", lesson.ModuleID).Msg("Lesson created")
	return lesson, nil
}

func (s *lessonServiceImpl) GetLesson(ctx context.Context, id int64, p models.Principal) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := visibleModule(ctx, s.moduleRepo, s.courseRepo, lesson.ModuleID, p); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *lessonServiceImpl) ListByModule(ctx context.Context, moduleID int64, p models.Principal) ([]models.Lesson, error) {
	if _, err := visibleModule(ctx, s.moduleRepo, s.courseRepo, moduleID, p); err != nil {
		return nil, err
	}
	return s.lessonRepo.ListByModule(ctx, moduleID)
}

func (s *lessonServiceImpl) UpdateLesson(ctx context.Context, p models.Principal, lesson *models.Lesson) (*models.Lesson, error) {
	if _, err := s.authz.LessonForOwner(ctx, lesson.ID, p); err != nil {
		return nil, err
	}
	if err := validateLesson(lesson); err != nil {
		return nil, err
	}
	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}
	return s.lessonRepo.GetByID(ctx, lesson.ID)
}
