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

var courseColumns = []string{"id", "instructor_id", "title", "description", "category", "language", "price", "status", "created_at"}

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db, sb: statementBuilder()}
}

func scanCourse(row pgx.Row, c *models.Course) error {
	return row.Scan(&c.ID, &c.InstructorID, &c.Title, &c.Description, &c.Category, &c.Language, &c.Price, &c.Status, &c.CreatedAt)
}

func collectCourses(rows pgx.Rows) ([]models.Course, error) {
	defer rows.Close()
	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// Create inserts the course and fills in its id and creation time
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Insert("courses").
		Columns("instructor_id", "title", "description", "category", "language", "price", "status").
		Values(course.InstructorID, course.Title, course.Description, course.Category, course.Language, course.Price, course.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID, &course.CreatedAt); err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course regardless of status
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).From("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	var course models.Course
	if err := scanCourse(r.db.QueryRow(ctx, sql, args...), &course); err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &course, nil
}

// Update overwrites the mutable fields of the course
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"title":       course.Title,
			"description": course.Description,
			"category":    course.Category,
			"language":    course.Language,
			"price":       course.Price,
			"status":      course.Status,
		}).
		Where(squirrel.Eq{"id": course.ID}).
		Suffix("RETURNING instructor_id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.InstructorID, &course.CreatedAt); err != nil {
		if dberrors.IsNoRows(err) {
			return apperrors.ErrCourseNotFound
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// DeleteCascade removes the course with its modules, content and student activity
func (r *CourseRepository) DeleteCascade(ctx context.Context, id int64) error {
	removed, err := runCascade(ctx, r.db, courseCascade(r.sb, id))
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if removed == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) listPublishedQuery() squirrel.SelectBuilder {
	return r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"status": models.CourseStatusPublished}).
		OrderBy("created_at DESC", "id DESC")
}

// ListPublished returns only published courses, newest first
func (r *CourseRepository) ListPublished(ctx context.Context) ([]models.Course, error) {
	sql, args, err := r.listPublishedQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing published courses: %w", err)
	}
	return collectCourses(rows)
}

// ListByInstructor returns every course of the instructor, drafts included
func (r *CourseRepository) ListByInstructor(ctx context.Context, instructorID int64) ([]models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"instructor_id": instructorID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list instructor courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing instructor courses: %w", err)
	}
	return collectCourses(rows)
}

func (r *CourseRepository) instructorStatsQuery(instructorID int64) squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id",
		"c.title",
		"(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id) AS enrolled_students",
		"(SELECT COUNT(*) FROM assignments a WHERE a.course_id = c.id) AS total_assignments",
		"(SELECT COUNT(*) FROM quizzes q JOIN modules m ON m.id = q.module_id WHERE m.course_id = c.id) AS total_quizzes",
		"(SELECT COUNT(*) FROM submissions s JOIN assignments a ON a.id = s.assignment_id WHERE a.course_id = c.id) AS total_submissions",
	).
		From("courses c").
		Where(squirrel.Eq{"c.instructor_id": instructorID}).
		OrderBy("c.id")
}

// InstructorStats computes per-course counters for an instructor at read time
func (r *CourseRepository) InstructorStats(ctx context.Context, instructorID int64) ([]models.CourseStats, error) {
	sql, args, err := r.instructorStatsQuery(instructorID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build instructor stats query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error computing instructor stats: %w", err)
	}
	defer rows.Close()

	stats := []models.CourseStats{}
	for rows.Next() {
		var s models.CourseStats
		if err := rows.Scan(&s.CourseID, &s.CourseTitle, &s.EnrolledStudents, &s.TotalAssignments, &s.TotalQuizzes, &s.TotalSubmissions); err != nil {
			return nil, fmt.Errorf("error scanning course stats row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
