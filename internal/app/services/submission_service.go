package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
)

// SubmissionService hands in assignments and lists submissions.
// Submissions are immutable once stored.
type SubmissionService interface {
	SubmitAssignment(ctx context.Context, p models.Principal, assignmentID int64, contentURL string) (*models.Submission, error)
	ListByAssignment(ctx context.Context, p models.Principal, assignmentID int64) ([]models.Submission, error)
	ListByStudent(ctx context.Context, p models.Principal, studentID int64) ([]models.Submission, error)
	GetForStudent(ctx context.Context, p models.Principal, assignmentID, studentID int64) (*models.Submission, error)
}

type submissionServiceImpl struct {
	assignmentRepo repositories.IAssignmentRepository
	submissionRepo repositories.ISubmissionRepository
	enrollmentRepo repositories.IEnrollmentRepository
	authz          *appauth.AuthorizationService
	logger         zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	assignmentRepo repositories.IAssignmentRepository,
	submissionRepo repositories.ISubmissionRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	authz *appauth.AuthorizationService,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionServiceImpl{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		enrollmentRepo: enrollmentRepo,
		authz:          authz,
		logger:         logger,
	}
}

// SubmitAssignment stores the student's submission. A second submission for
// the same assignment is rejected by the store's unique constraint with
// ErrAlreadySubmitted; there is no pre-check.
func (s *submissionServiceImpl) SubmitAssignment(ctx context.Context, p models.Principal, assignmentID int64, contentURL string) (*models.Submission, error) {
	student, err := requireStudent(p)
	if err != nil {
		return nil, err
	}
	contentURL = strings.TrimSpace(contentURL)
	if err := required("contentUrl", contentURL); err != nil {
		return nil, err
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := requireEnrolled(ctx, s.enrollmentRepo, student.ID, assignment.CourseID); err != nil {
		return nil, err
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    student.ID,
		ContentURL:   contentURL,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("assignmentID", assignmentID).Int64("studentID", student.ID).Msg("Assignment submitted")
	return submission, nil
}

// ListByAssignment lists submissions for an assignment the caller owns
func (s *submissionServiceImpl) ListByAssignment(ctx context.Context, p models.Principal, assignmentID int64) ([]models.Submission, error) {
	if _, err := s.authz.AssignmentForOwner(ctx, assignmentID, p); err != nil {
		return nil, err
	}
	return s.submissionRepo.ListByAssignment(ctx, assignmentID)
}

// ListByStudent lists a student's submissions for the student or an admin
func (s *submissionServiceImpl) ListByStudent(ctx context.Context, p models.Principal, studentID int64) ([]models.Submission, error) {
	if err := selfOrAdmin(p, models.RoleStudent, studentID); err != nil {
		return nil, err
	}
	return s.submissionRepo.ListByStudent(ctx, studentID)
}

// GetForStudent returns one student's submission. Readable by that student,
// the assignment's owner and admins.
func (s *submissionServiceImpl) GetForStudent(ctx context.Context, p models.Principal, assignmentID, studentID int64) (*models.Submission, error) {
	if err := selfOrAdmin(p, models.RoleStudent, studentID); err != nil {
		if _, ownErr := s.authz.AssignmentForOwner(ctx, assignmentID, p); ownErr != nil {
			return nil, ownErr
		}
	}
	return s.submissionRepo.GetForStudent(ctx, assignmentID, studentID)
}
