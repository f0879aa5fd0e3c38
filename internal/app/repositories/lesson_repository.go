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

var lessonColumns = []string{"id", "module_id", "title", "content", "video_url", "position", "created_at"}

// LessonRepository handles database operations for lessons
type LessonRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLessonRepository creates a new LessonRepository
func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{db: db, sb: statementBuilder()}
}

func scanLesson(row pgx.Row, l *models.Lesson) error {
	return row.Scan(&l.ID, &l.ModuleID, &l.Title, &l.Content, &l.VideoURL, &l.Position, &l.CreatedAt)
}

// Create inserts a lesson
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	sql, args, err := r.sb.Insert("lessons").
		Columns("module_id", "title", "content", "video_url", "position").
		Values(lesson.ModuleID, lesson.Title, lesson.Content, lesson.VideoURL, lesson.Position).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create lesson query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&lesson.ID, &lesson.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrModuleNotFound
		}
		return fmt.Errorf("error creating lesson: %w", err)
	}
	return nil
}

// GetByID retrieves a lesson
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	sql, args, err := r.sb.Select(lessonColumns...).From("lessons").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get lesson query: %w", err)
	}

	var lesson models.Lesson
	if err := scanLesson(r.db.QueryRow(ctx, sql, args...), &lesson); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrLessonNotFound
		}
		return nil, fmt.Errorf("error retrieving lesson: %w", err)
	}
	return &lesson, nil
}

// ListByModule returns the lessons of a module by position, ties broken by id
func (r *LessonRepository) ListByModule(ctx context.Context, moduleID int64) ([]models.Lesson, error) {
	sql, args, err := r.sb.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"module_id": moduleID}).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list lessons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing lessons: %w", err)
	}
	defer rows.Close()

	lessons := []models.Lesson{}
	for rows.Next() {
		var l models.Lesson
		if err := scanLesson(rows, &l); err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// Update overwrites the lesson content fields
func (r *LessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	sql, args, err := r.sb.Update("lessons").
		Set("title", lesson.Title).
		Set("content", lesson.Content).
		Set("video_url", lesson.VideoURL).
		Set("position", lesson.Position).
		Where(squirrel.Eq{"id": lesson.ID}).
		Suffix("RETURNING module_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update lesson query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&lesson.ModuleID, &lesson.CreatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrLessonNotFound
		}
		return fmt.Errorf("error updating lesson: %w", err)
	}
	return nil
}
