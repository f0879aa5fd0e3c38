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

// AssignmentService manages assignments
type AssignmentService interface {
	CreateAssignment(ctx context.Context, p models.Principal, assignment *models.Assignment) (*models.Assignment, error)
	GetAssignment(ctx context.Context, id int64, p models.Principal) (*models.Assignment, error)
	ListByModule(ctx context.Context, moduleID int64, p models.Principal) ([]models.Assignment, error)
	ListByCourse(ctx context.Context, courseID int64, p models.Principal) ([]models.Assignment, error)
	UpdateAssignment(ctx context.Context, p models.Principal, assignment *models.Assignment) (*models.Assignment, error)
	DeleteAssignment(ctx context.Context, p models.Principal, id int64) error
}

type assignmentServiceImpl struct {
	courseRepo     repositories.ICourseRepository
	moduleRepo     repositories.IModuleRepository
	assignmentRepo repositories.IAssignmentRepository
	authz          *appauth.AuthorizationService
	logger         zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	courseRepo repositories.ICourseRepository,
	moduleRepo repositories.IModuleRepository,
	assignmentRepo repositories.IAssignmentRepository,
	authz *appauth.AuthorizationService,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentServiceImpl{
		courseRepo:     courseRepo,
		moduleRepo:     moduleRepo,
		assignmentRepo: assignmentRepo,
		authz:          authz,
		logger:         logger,
	}
}

func validateAssignment(assignment *models.Assignment) error {
	assignment.Title = strings.TrimSpace(assignment.Title)
	if err := required("title", assignment.Title); err != nil {
		return err
	}
	if assignment.MaxScore < 0 {
		return apperrors.NewValidationError("maxScore cannot be negative")
	}
	return nil
}

// CreateAssignment adds an assignment to an owned module. The course is
// taken from the module, never from the caller.
func (s *assignmentServiceImpl) CreateAssignment(ctx context.Context, p models.Principal, assignment *models.Assignment) (*models.Assignment, error) {
	if err := validateAssignment(assignment); err != nil {
		return nil, err
	}
	module, err := s.authz.ModuleForOwner(ctx, assignment.ModuleID, p)
	if err != nil {
		return nil, err
	}

	assignment.CourseID = module.CourseID
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("assignmentID", assignment.ID).Int64("courseID", assignment.CourseID).Msg("Assignment created")
	return assignment, nil
}

func (s *assignmentServiceImpl) GetAssignment(ctx context.Context, id int64, p models.Principal) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := visibleCourse(ctx, s.courseRepo, assignment.CourseID, p); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *assignmentServiceImpl) ListByModule(ctx context.Context, moduleID int64, p models.Principal) ([]models.Assignment, error) {
	if _, err := visibleModule(ctx, s.moduleRepo, s.courseRepo, moduleID, p); err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListByModule(ctx, moduleID)
}

func (s *assignmentServiceImpl) ListByCourse(ctx context.Context, courseID int64, p models.Principal) ([]models.Assignment, error) {
	if _, err := visibleCourse(ctx, s.courseRepo, courseID, p); err != nil {
		return nil, err
	}
	return s.assignmentRepo.ListByCourse(ctx, courseID)
}

func (s *assignmentServiceImpl) UpdateAssignment(ctx context.Context, p models.Principal, assignment *models.Assignment) (*models.Assignment, error) {
	if _, err := s.authz.AssignmentForOwner(ctx, assignment.ID, p); err != nil {
		return nil, err
	}
	if err := validateAssignment(assignment); err != nil {
		return nil, err
	}
	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}
	return s.assignmentRepo.GetByID(ctx, assignment.ID)
}

// DeleteAssignment removes the assignment and its submissions
func (s *assignmentServiceImpl) DeleteAssignment(ctx context.Context, p models.Principal, id int64) error {
	if _, err := s.authz.AssignmentForOwner(ctx, id, p); err != nil {
		return err
	}
	if err := s.assignmentRepo.DeleteCascade(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("assignmentID", id).Msg("Assignment deleted")
	return nil
}
