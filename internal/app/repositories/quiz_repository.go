package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/dberrors"
)

// raised by submit_quiz_attempt when the quiz row is missing
const codeNoDataFound = "P0002"

var quizColumns = []string{"id", "module_id", "title", "total_marks", "time_limit", "created_at"}

// QuizRepository handles database operations for quizzes and their attempts
type QuizRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuizRepository creates a new QuizRepository
func NewQuizRepository(db *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{db: db, sb: statementBuilder()}
}

func scanQuiz(row pgx.Row, q *models.Quiz) error {
	return row.Scan(&q.ID, &q.ModuleID, &q.Title, &q.TotalMarks, &q.TimeLimit, &q.CreatedAt)
}

// Create inserts a quiz
func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	sql, args, err := r.sb.Insert("quizzes").
		Columns("module_id", "title", "total_marks", "time_limit").
		Values(quiz.ModuleID, quiz.Title, quiz.TotalMarks, quiz.TimeLimit).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create quiz query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&quiz.ID, &quiz.CreatedAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrModuleNotFound
		}
		return fmt.Errorf("error creating quiz: %w", err)
	}
	return nil
}

// GetByID retrieves a quiz
func (r *QuizRepository) GetByID(ctx context.Context, id int64) (*models.Quiz, error) {
	sql, args, err := r.sb.Select(quizColumns...).From("quizzes").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get quiz query: %w", err)
	}

	var quiz models.Quiz
	if err := scanQuiz(r.db.QueryRow(ctx, sql, args...), &quiz); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("error retrieving quiz: %w", err)
	}
	return &quiz, nil
}

// ListByModule returns the quizzes of a module in creation order
func (r *QuizRepository) ListByModule(ctx context.Context, moduleID int64) ([]models.Quiz, error) {
	sql, args, err := r.sb.Select(quizColumns...).
		From("quizzes").
		Where(squirrel.Eq{"module_id": moduleID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list quizzes query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := []models.Quiz{}
	for rows.Next() {
		var q models.Quiz
		if err := scanQuiz(rows, &q); err != nil {
			return nil, fmt.Errorf("error scanning quiz row: %w", err)
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// Update overwrites title, total marks and time limit
func (r *QuizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	sql, args, err := r.sb.Update("quizzes").
		Set("title", quiz.Title).
		Set("total_marks", quiz.TotalMarks).
		Set("time_limit", quiz.TimeLimit).
		Where(squirrel.Eq{"id": quiz.ID}).
		Suffix("RETURNING module_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update quiz query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&quiz.ModuleID, &quiz.CreatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrQuizNotFound
		}
		return fmt.Errorf("error updating quiz: %w", err)
	}
	return nil
}

const submitAttemptSQL = `SELECT attempt_id, attempted_at FROM submit_quiz_attempt($1, $2, $3, $4)`

// SubmitAttempt records the attempt through the submit_quiz_attempt function
// in a single round trip. A repeated (quiz, student, attempt) triple is
// rejected by the store and reported as ErrDuplicateAttempt.
func (r *QuizRepository) SubmitAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	err := r.db.QueryRow(ctx, submitAttemptSQL, attempt.QuizID, attempt.StudentID, attempt.Score, attempt.AttemptNo).
		Scan(&attempt.ID, &attempt.CreatedAt)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	switch {
	case dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintAttemptUnique):
		return apperrors.ErrDuplicateAttempt
	case errors.As(err, &pgErr) && pgErr.Code == codeNoDataFound:
		return apperrors.ErrQuizNotFound
	case dberrors.IsCheckViolation(err):
		return apperrors.NewValidationError("Score or attempt number out of range")
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrPrincipalNotFound
	}
	return fmt.Errorf("error submitting quiz attempt: %w", err)
}

func (r *QuizRepository) listAttemptsQuery(quizID int64) squirrel.SelectBuilder {
	return r.sb.Select("qa.id", "qa.quiz_id", "qa.student_id", "qa.score", "qa.attempt_no", "qa.created_at", "s.first_name", "s.last_name").
		From("quiz_attempts qa").
		Join("students s ON s.id = qa.student_id").
		Where(squirrel.Eq{"qa.quiz_id": quizID}).
		OrderBy("qa.created_at ASC", "qa.id ASC")
}

// ListAttempts returns all attempts of a quiz with the students' names
func (r *QuizRepository) ListAttempts(ctx context.Context, quizID int64) ([]models.QuizAttempt, error) {
	sql, args, err := r.listAttemptsQuery(quizID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list attempts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing quiz attempts: %w", err)
	}
	defer rows.Close()

	attempts := []models.QuizAttempt{}
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(&a.ID, &a.QuizID, &a.StudentID, &a.Score, &a.AttemptNo, &a.CreatedAt, &a.FirstName, &a.LastName); err != nil {
			return nil, fmt.Errorf("error scanning quiz attempt row: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}
