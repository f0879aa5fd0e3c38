package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
)

// ChatRepository handles database operations for chat messages
type ChatRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db, sb: statementBuilder()}
}

// Create appends a message. The creation time is assigned by the store.
func (r *ChatRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	sql, args, err := r.sb.Insert("chat_messages").
		Columns("course_id", "student_id", "instructor_id", "message").
		Values(message.CourseID, message.StudentID, message.InstructorID, message.Message).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create chat message query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&message.ID, &message.CreatedAt); err != nil {
		if dberrors.IsCheckViolation(err) {
			return apperrors.NewValidationError("A message must have exactly one sender")
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating chat message: %w", err)
	}
	return nil
}

func (r *ChatRepository) listByCourseQuery(courseID int64) squirrel.SelectBuilder {
	return r.sb.Select("id", "course_id", "student_id", "instructor_id", "message", "created_at").
		From("chat_messages").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("created_at ASC", "id ASC")
}

// ListByCourse returns the full log of a course in posting order
func (r *ChatRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.ChatMessage, error) {
	sql, args, err := r.listByCourseQuery(courseID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list chat messages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing chat messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.CourseID, &m.StudentID, &m.InstructorID, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning chat message row: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
