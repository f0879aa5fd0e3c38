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

// ReviewRepository handles database operations for course reviews
type ReviewRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{db: db, sb: statementBuilder()}
}

// Create inserts a review
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	sql, args, err := r.sb.Insert("reviews").
		Columns("course_id", "student_id", "rating", "comment").
		Values(review.CourseID, review.StudentID, review.Rating, review.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create review query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&review.ID, &review.CreatedAt); err != nil {
		return reviewCreateError(err)
	}
	return nil
}

func (r *ReviewRepository) listByCourseQuery(courseID int64) squirrel.SelectBuilder {
	return r.sb.Select("id", "course_id", "student_id", "rating", "comment", "created_at").
		From("reviews").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("created_at DESC", "id DESC")
}

// ListByCourse returns the reviews of a course, newest first
func (r *ReviewRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Review, error) {
	sql, args, err := r.listByCourseQuery(courseID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list reviews query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.CourseID, &rv.StudentID, &rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning review row: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func reviewCreateError(err error) error {
	switch {
	case dberrors.IsCheckConstraintError(err, dberrors.ConstraintReviewRatingRange):
		return apperrors.NewValidationError("Rating must be between 1 and 5")
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.ErrCourseNotFound
	default:
		return fmt.Errorf("error creating review: %w", err)
	}
}
