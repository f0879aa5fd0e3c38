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

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{db: db, sb: statementBuilder()}
}

// Create enrolls a student; a repeated enrollment yields ErrAlreadyEnrolled
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id").
		Values(enrollment.StudentID, enrollment.CourseID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&enrollment.ID, &enrollment.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ConstraintEnrollmentUnique) {
			return apperrors.ErrAlreadyEnrolled
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// Exists reports whether the student is enrolled in the course
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		Prefix("SELECT EXISTS(").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build enrollment exists query: %w", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking enrollment: %w", err)
	}
	return exists, nil
}

// ListCoursesByStudent returns the courses a student is enrolled in, in enrollment order
func (r *EnrollmentRepository) ListCoursesByStudent(ctx context.Context, studentID int64) ([]models.Course, error) {
	cols := make([]string, len(courseColumns))
	for i, c := range courseColumns {
		cols[i] = "c." + c
	}

	sql, args, err := r.sb.Select(cols...).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.created_at ASC", "e.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list enrolled courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled courses: %w", err)
	}
	return collectCourses(rows)
}

func (r *EnrollmentRepository) progressQuery(studentID int64) squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id",
		"c.title",
		"(SELECT COUNT(*) FROM assignments a WHERE a.course_id = c.id) AS total_assignments",
		"(SELECT COUNT(*) FROM submissions s JOIN assignments a ON a.id = s.assignment_id WHERE a.course_id = c.id AND s.student_id = e.student_id) AS submitted_assignments",
		"(SELECT COUNT(*) FROM quizzes q JOIN modules m ON m.id = q.module_id WHERE m.course_id = c.id) AS total_quizzes",
		"(SELECT COUNT(DISTINCT qa.quiz_id) FROM quiz_attempts qa JOIN quizzes q ON q.id = qa.quiz_id JOIN modules m ON m.id = q.module_id WHERE m.course_id = c.id AND qa.student_id = e.student_id) AS attempted_quizzes",
	).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.created_at ASC", "e.id ASC")
}

// ProgressByStudent computes, per enrolled course, totals and completed counts
func (r *EnrollmentRepository) ProgressByStudent(ctx context.Context, studentID int64) ([]models.StudentCourseProgress, error) {
	sql, args, err := r.progressQuery(studentID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student progress query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error computing student progress: %w", err)
	}
	defer rows.Close()

	progress := []models.StudentCourseProgress{}
	for rows.Next() {
		var p models.StudentCourseProgress
		if err := rows.Scan(&p.CourseID, &p.CourseTitle, &p.TotalAssignments, &p.SubmittedAssignments, &p.TotalQuizzes, &p.AttemptedQuizzes); err != nil {
			return nil, fmt.Errorf("error scanning progress row: %w", err)
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}
