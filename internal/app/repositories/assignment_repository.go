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

var assignmentColumns = []string{"id", "course_id", "module_id", "title", "description", "due_date", "max_score", "created_at"}

// AssignmentRepository handles database operations for assignments
type AssignmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db, sb: statementBuilder()}
}

func scanAssignment(row pgx.Row, a *models.Assignment) error {
	return row.Scan(&a.ID, &a.CourseID, &a.ModuleID, &a.Title, &a.Description, &a.DueDate, &a.MaxScore, &a.CreatedAt)
}

// Create inserts an assignment
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	sql, args, err := r.sb.Insert("assignments").
		Columns("course_id", "module_id", "title", "description", "due_date", "max_score").
		Values(assignment.CourseID, assignment.ModuleID, assignment.Title, assignment.Description, assignment.DueDate, assignment.MaxScore).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create assignment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&assignment.ID, &assignment.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrModuleNotFound
		}
		return fmt.Errorf("error creating assignment: %w", err)
	}
	return nil
}

// GetByID retrieves an assignment
func (r *AssignmentRepository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	sql, args, err := r.sb.Select(assignmentColumns...).From("assignments").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get assignment query: %w", err)
	}

	var assignment models.Assignment
	if err := scanAssignment(r.db.QueryRow(ctx, sql, args...), &assignment); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}
	return &assignment, nil
}

func (r *AssignmentRepository) list(ctx context.Context, where squirrel.Eq) ([]models.Assignment, error) {
	sql, args, err := r.sb.Select(assignmentColumns...).
		From("assignments").
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list assignments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing assignments: %w", err)
	}
	defer rows.Close()

	assignments := []models.Assignment{}
	for rows.Next() {
		var a models.Assignment
		if err := scanAssignment(rows, &a); err != nil {
			return nil, fmt.Errorf("error scanning assignment row: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// ListByModule returns the assignments of a module
func (r *AssignmentRepository) ListByModule(ctx context.Context, moduleID int64) ([]models.Assignment, error) {
	return r.list(ctx, squirrel.Eq{"module_id": moduleID})
}

// ListByCourse returns every assignment of a course across its modules
func (r *AssignmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	return r.list(ctx, squirrel.Eq{"course_id": courseID})
}

// Update overwrites the assignment fields; the parent module and course are fixed
func (r *AssignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	sql, args, err := r.sb.Update("assignments").
		Set("title", assignment.Title).
		Set("description", assignment.Description).
		Set("due_date", assignment.DueDate).
		Set("max_score", assignment.MaxScore).
		Where(squirrel.Eq{"id": assignment.ID}).
		Suffix("RETURNING course_id, module_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update assignment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&assignment.CourseID, &assignment.ModuleID, &assignment.CreatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrAssignmentNotFound
		}
		return fmt.Errorf("error updating assignment: %w", err)
	}
	return nil
}

// DeleteCascade removes the assignment and its submissions
func (r *AssignmentRepository) DeleteCascade(ctx context.Context, id int64) error {
	removed, err := runCascade(ctx, r.db, assignmentCascade(r.sb, id))
	if err != nil {
		return fmt.Errorf("error deleting assignment: %w", err)
	}
	if removed == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}
