package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
)

var submissionColumns = []string{"id", "assignment_id", "student_id", "content_url", "created_at"}

// SubmissionRepository handles database operations for assignment submissions
type SubmissionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db, sb: statementBuilder()}
}

func scanSubmission(row pgx.Row, s *models.Submission) error {
	return row.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.ContentURL, &s.CreatedAt)
}

// Create inserts the submission. There is no existence pre-check: the
// (assignment_id, student_id) unique constraint decides, so concurrent
// duplicates resolve to exactly one row and ErrAlreadySubmitted for the rest.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	sql, args, err := r.sb.Insert("submissions").
		Columns("assignment_id", "student_id", "content_url").
		Values(submission.AssignmentID, submission.StudentID, submission.ContentURL).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create submission query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&submission.ID, &submission.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintSubmissionUnique) {
			return apperrors.ErrAlreadySubmitted
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrAssignmentNotFound
		}
		return fmt.Errorf("error creating submission: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) list(ctx context.Context, where squirrel.Eq) ([]models.Submission, error) {
	sql, args, err := r.sb.Select(submissionColumns...).
		From("submissions").
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list submissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}
	defer rows.Close()

	submissions := []models.Submission{}
	for rows.Next() {
		var s models.Submission
		if err := scanSubmission(rows, &s); err != nil {
			return nil, fmt.Errorf("error scanning submission row: %w", err)
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// ListByAssignment returns all submissions for an assignment
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID int64) ([]models.Submission, error) {
	return r.list(ctx, squirrel.Eq{"assignment_id": assignmentID})
}

// ListByStudent returns all submissions of a student
func (r *SubmissionRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Submission, error) {
	return r.list(ctx, squirrel.Eq{"student_id": studentID})
}

// GetForStudent returns one student's submission for an assignment
func (r *SubmissionRepository) GetForStudent(ctx context.Context, assignmentID, studentID int64) (*models.Submission, error) {
	sql, args, err := r.sb.Select(submissionColumns...).
		From("submissions").
		Where(squirrel.Eq{"assignment_id": assignmentID, "student_id": studentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get submission query: %w", err)
	}

	var submission models.Submission
	if err := scanSubmission(r.db.QueryRow(ctx, sql, args...), &submission); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving submission: %w", err)
	}
	return &submission, nil
}
