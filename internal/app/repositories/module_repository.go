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

var moduleColumns = []string{"id", "course_id", "title", "description", "position", "created_at"}

// ModuleRepository handles database operations for course modules
type ModuleRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewModuleRepository creates a new ModuleRepository
func NewModuleRepository(db *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{db: db, sb: statementBuilder()}
}

func scanModule(row pgx.Row, m *models.Module) error {
	return row.Scan(&m.ID, &m.CourseID, &m.Title, &m.Description, &m.Position, &m.CreatedAt)
}

// Create inserts a module
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	sql, args, err := r.sb.Insert("modules").
		Columns("course_id", "title", "description", "position").
		Values(module.CourseID, module.Title, module.Description, module.Position).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create module query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&module.ID, &module.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating module: %w", err)
	}
	return nil
}

// GetByID retrieves a module
func (r *ModuleRepository) GetByID(ctx context.Context, id int64) (*models.Module, error) {
	sql, args, err := r.sb.Select(moduleColumns...).From("modules").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get module query: %w", err)
	}

	var module models.Module
	if err := scanModule(r.db.QueryRow(ctx, sql, args...), &module); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("error retrieving module: %w", err)
	}
	return &module, nil
}

func (r *ModuleRepository) listByCourseQuery(courseID int64) squirrel.SelectBuilder {
	return r.sb.Select(moduleColumns...).
		From("modules").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("position ASC", "id ASC")
}

// ListByCourse returns the modules of a course by position, ties broken by id
func (r *ModuleRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Module, error) {
	sql, args, err := r.listByCourseQuery(courseID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list modules query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing modules: %w", err)
	}
	defer rows.Close()

	modules := []models.Module{}
	for rows.Next() {
		var m models.Module
		if err := scanModule(rows, &m); err != nil {
			return nil, fmt.Errorf("error scanning module row: %w", err)
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// Update overwrites title, description and position
func (r *ModuleRepository) Update(ctx context.Context, module *models.Module) error {
	sql, args, err := r.sb.Update("modules").
		Set("title", module.Title).
		Set("description", module.Description).
		Set("position", module.Position).
		Where(squirrel.Eq{"id": module.ID}).
		Suffix("RETURNING course_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update module query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&module.CourseID, &module.CreatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrModuleNotFound
		}
		return fmt.Errorf("error updating module: %w", err)
	}
	return nil
}

// DeleteCascade removes the module with its lessons, quizzes and assignments
func (r *ModuleRepository) DeleteCascade(ctx context.Context, id int64) error {
	removed, err := runCascade(ctx, r.db, moduleCascade(r.sb, id))
	if err != nil {
		return fmt.Errorf("error deleting module: %w", err)
	}
	if removed == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}
