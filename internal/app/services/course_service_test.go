package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

func newCourseService(f *fixture) CourseService {
	return NewCourseService(f.repos.Course, f.repos.Principal, f.authz, zerolog.Nop())
}

func TestCreateCourseRoundTrip(t *testing.T) {
	f := newFixture(t)
	svc := newCourseService(f)
	ctx := context.Background()

	created, err := svc.CreateCourse(ctx, f.instructor, &models.Course{
		Title:       "X",
		Description: "Y",
		Category:    "Z",
		Language:    "En",
		Price:       10,
		Status:      models.CourseStatusDraft,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.GetCourse(ctx, created.ID, f.instructor)
	require.NoError(t, err)
	assert.Equal(t, "X", got.Title)
	assert.Equal(t, "Y", got.Description)
	assert.Equal(t, "Z", got.Category)
	assert.Equal(t, "En", got.Language)
	assert.Equal(t, 10.0, got.Price)
	assert.Equal(t, models.CourseStatusDraft, got.Status)
	assert.Equal(t, f.instructor.ID, got.InstructorID)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCreateCourseValidation(t *testing.T) {
	f := newFixture(t)
	svc := newCourseService(f)
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, f.instructor, &models.Course{Category: "Z", Language: "En"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateCourse(ctx, f.instructor, &models.Course{Title: "X", Category: "Z", Language: "En", Status: "archived"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateCourse(ctx, f.student, &models.Course{Title: "X", Category: "Z", Language: "En"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	c, err := svc.CreateCourse(ctx, f.instructor, &models.Course{Title: "X", Category: "Z", Language: "En"})
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusDraft, c.Status)
}

func TestDraftCoursesStayOutOfPublicView(t *testing.T) {
	f := newFixture(t)
	svc := newCourseService(f)
	ctx := context.Background()

	draft := f.course(t, f.instructor, models.CourseStatusDraft)

	listed, err := svc.ListPublished(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)

	_, err = svc.GetCourse(ctx, draft.ID, f.student)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = svc.GetCourse(ctx, draft.ID, nil)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = svc.GetCourse(ctx, draft.ID, f.rival)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = svc.GetCourse(ctx, draft.ID, f.admin)
	assert.NoError(t, err)

	update := *draft
	update.Status = models.CourseStatusPublished
	updated, err := svc.UpdateCourse(ctx, f.instructor, &update)
	require.NoError(t, err)
	assert.Equal(t, models.CourseStatusPublished, updated.Status)

	listed, err = svc.ListPublished(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, draft.ID, listed[0].ID)
}

func TestUpdateCourseOwnership(t *testing.T) {
	f := newFixture(t)
	svc := newCourseService(f)
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)

	update := *c
	update.Title = "Hijacked"

	_, err := svc.UpdateCourse(ctx, f.rival, &update)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.UpdateCourse(ctx, f.admin, &update)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	missing := update
	missing.ID = 4242
	_, err = svc.UpdateCourse(ctx, f.instructor, &missing)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	// An update without a status keeps the current one
	update.Title = "Renamed"
	update.Status = ""
	got, err := svc.UpdateCourse(ctx, f.instructor, &update)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, models.CourseStatusPublished, got.Status)
}

func TestDeleteCourseRemovesDependents(t *testing.T) {
	f := newFixture(t)
	svc := newCourseService(f)
	ctx := context.Background()

	c := f.course(t, f.instructor, models.CourseStatusPublished)
	m := f.module(t, c.ID, "M1", 1)
	q := f.quiz(t, m.ID, 10)
	a := f.assignment(t, m)
	f.enroll(t, f.student, c.ID)
	require.NoError(t, f.repos.Submission.Create(ctx, &models.Submission{AssignmentID: a.ID, StudentID: f.student.ID, ContentURL: "https://x"}))

	assert.ErrorIs(t, svc.DeleteCourse(ctx, f.rival, c.ID), apperrors.ErrNotOwner)
	require.NoError(t, svc.DeleteCourse(ctx, f.instructor, c.ID))

	_, err := f.repos.Course.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = f.repos.Module.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, apperrors.ErrModuleNotFound)
	_, err = f.repos.Quiz.GetByID(ctx, q.ID)
	assert.ErrorIs(t, err, apperrors.ErrQuizNotFound)
	_, err = f.repos.Assignment.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)

	enrolled, err := f.repos.Enrollment.Exists(ctx, f.student.ID, c.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)

	subs, err := f.repos.Submission.ListByStudent(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestInstructorCoursesAndStats(t *testing.T) {
	f := newFixture(t)
	svc := newCourseService(f)
	ctx := context.Background()

	_, err := svc.InstructorStats(ctx, f.instructor, f.instructor.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	c := f.course(t, f.instructor, models.CourseStatusPublished)
	f.course(t, f.instructor, models.CourseStatusDraft)
	f.course(t, f.rival, models.CourseStatusPublished)
	m := f.module(t, c.ID, "M1", 1)
	f.quiz(t, m.ID, 10)
	a := f.assignment(t, m)
	f.enroll(t, f.student, c.ID)
	require.NoError(t, f.repos.Submission.Create(ctx, &models.Submission{AssignmentID: a.ID, StudentID: f.student.ID, ContentURL: "https://x"}))

	own, err := svc.ListOwnCourses(ctx, f.instructor)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	stats, err := svc.InstructorStats(ctx, f.instructor, f.instructor.ID)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, models.CourseStats{
		CourseID:         c.ID,
		CourseTitle:      c.Title,
		EnrolledStudents: 1,
		TotalAssignments: 1,
		TotalQuizzes:     1,
		TotalSubmissions: 1,
	}, stats[0])

	_, err = svc.InstructorStats(ctx, f.admin, f.instructor.ID)
	assert.NoError(t, err)
	_, err = svc.InstructorStats(ctx, f.rival, f.instructor.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = svc.InstructorStats(ctx, f.admin, 9999)
	assert.ErrorIs(t, err, apperrors.ErrPrincipalNotFound)
}
