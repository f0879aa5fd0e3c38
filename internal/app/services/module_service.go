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

// ModuleService manages the modules of a course
type ModuleService interface {
	CreateModule(ctx context.Context, p models.Principal, module *models.Module) (*models.Module, error)
	GetModule(ctx context.Context, id int64, p models.Principal) (*models.Module, error)
	ListByCourse(ctx context.Context, courseID int64, p models.Principal) ([]models.Module, error)
	UpdateModule(ctx context.Context, p models.Principal, module *models.Module) (*models.Module, error)
	DeleteModule(ctx context.Context, p models.Principal, id int64) error
}

type moduleServiceImpl struct {
	courseRepo repositories.ICourseRepository
	moduleRepo repositories.IModuleRepository
	authz      *appauth.AuthorizationService
	logger     zerolog.Logger
}

// NewModuleService creates a new ModuleService
func NewModuleService(
	courseRepo repositories.ICourseRepository,
	moduleRepo repositories.IModuleRepository,
	authz *appauth.AuthorizationService,
	logger zerolog.Logger,
) ModuleService {
	return &moduleServiceImpl{
		courseRepo: courseRepo,
		moduleRepo: moduleRepo,
		authz:      authz,
		logger:     logger,
	}
}

func validateModule(module *models.Module) error {
	module.Title = strings.TrimSpace(module.Title)
	if err := required("title", module.Title); err != nil {
		return err
	}
	if module.Position < 0 {
		return apperrors.NewValidationError("position cannot be negative")
	}
	return nil
}

func (s *moduleServiceImpl) CreateModule(ctx context.Context, p models.Principal, module *models.Module) (*models.Module, error) {
	if err := validateModule(module); err != nil {
		return nil, err
	}
	if _, err := s.authz.CourseForOwner(ctx, module.CourseID, p); err != nil {
		return nil, err
	}
	if err := s.moduleRepo.Create(ctx, module); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("moduleID", module.ID).Int64("courseID", module.CourseID).Msg("Module created")
	return module, nil
}

func (s *moduleServiceImpl) GetModule(ctx context.Context, id int64, p models.Principal) (*models.Module, error) {
	module, err := s.moduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := visibleCourse(ctx, s.courseRepo, module.CourseID, p); err != nil {
		return nil, err
	}
	return module, nil
}

// ListByCourse returns the course's modules ordered by position, then id
func (s *moduleServiceImpl) ListByCourse(ctx context.Context, courseID int64, p models.Principal) ([]models.Module, error) {
	if _, err := visibleCourse(ctx, s.courseRepo, courseID, p); err != nil {
		return nil, err
	}
	return s.moduleRepo.ListByCourse(ctx, courseID)
}

func (s *moduleServiceImpl) UpdateModule(ctx context.Context, p models.Principal, module *models.Module) (*models.Module, error) {
	if _, err := s.authz.ModuleForOwner(ctx, module.ID, p); err != nil {
		return nil, err
	}
	if err := validateModule(module); err != nil {
		return nil, err
	}
	if err := s.moduleRepo.Update(ctx, module); err != nil {
		return nil, err
	}
	return s.moduleRepo.GetByID(ctx, module.ID)
}

// DeleteModule removes the module with its lessons, quizzes and assignments
func (s *moduleServiceImpl) DeleteModule(ctx context.Context, p models.Principal, id int64) error {
	if _, err := s.authz.ModuleForOwner(ctx, id, p); err != nil {
		return err
	}
	if err := s.moduleRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("moduleID", id).Msg("Module deleted")
	return nil
}
