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

func TestModuleLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := NewModuleService(f.repos.Course, f.repos.Module, f.authz, zerolog.Nop())
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)

	_, err := svc.CreateModule(ctx, f.rival, &models.Module{CourseID: c.ID, Title: "Intruder"})
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	_, err = svc.CreateModule(ctx, f.instructor, &models.Module{CourseID: 999, Title: "Orphan"})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = svc.CreateModule(ctx, f.instructor, &models.Module{CourseID: c.ID, Title: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	m, err := svc.CreateModule(ctx, f.instructor, &models.Module{CourseID: c.ID, Title: "Basics", Position: 1})
	require.NoError(t, err)

	list, err := svc.ListByCourse(ctx, c.ID, f.student)
	require.NoError(t, err)
	require.Len(t, list, 1)

	update := *m
	update.Title = "Fundamentals"
	update.CourseID = 12345
	got, err := svc.UpdateModule(ctx, f.instructor, &update)
	require.NoError(t, err)
	assert.Equal(t, "Fundamentals", got.Title)
	assert.Equal(t, c.ID, got.CourseID, "a module cannot be moved between courses")

	assert.ErrorIs(t, svc.DeleteModule(ctx, f.rival, m.ID), apperrors.ErrNotOwner)
	require.NoError(t, svc.DeleteModule(ctx, f.instructor, m.ID))
	_, err = svc.GetModule(ctx, m.ID, f.instructor)
	assert.ErrorIs(t, err, apperrors.ErrModuleNotFound)
}

func TestDraftCourseContentIsHidden(t *testing.T) {
	f := newFixture(t)
	modules := NewModuleService(f.repos.Course, f.repos.Module, f.authz, zerolog.Nop())
	lessons := NewLessonService(f.repos.Course, f.repos.Module, f.repos.Lesson, f.authz, zerolog.Nop())
	ctx := context.Background()

	draft := f.course(t, f.instructor, models.CourseStatusDraft)
	m := f.module(t, draft.ID, "Secret", 1)

	_, err := modules.ListByCourse(ctx, draft.ID, f.student)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = lessons.ListByModule(ctx, m.ID, f.student)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = lessons.ListByModule(ctx, m.ID, f.instructor)
	assert.NoError(t, err)
}

func TestLessonOwnershipFollowsModuleChain(t *testing.T) {
	f := newFixture(t)
	svc := NewLessonService(f.repos.Course, f.repos.Module, f.repos.Lesson, f.authz, zerolog.Nop())
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)
	m := f.module(t, c.ID, "M", 1)

	video := "https://videos.example.com/1.mp4"
	l, err := svc.CreateLesson(ctx, f.instructor, &models.Lesson{ModuleID: m.ID, Title: "Hello", VideoURL: &video})
	require.NoError(t, err)

	update := *l
	update.Title = "Hello, world"
	_, err = svc.UpdateLesson(ctx, f.rival, &update)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	_, err = svc.UpdateLesson(ctx, f.student, &update)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	got, err := svc.UpdateLesson(ctx, f.instructor, &update)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world", got.Title)

	update.ID = 5555
	_, err = svc.UpdateLesson(ctx, f.instructor, &update)
	assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)
}

func TestAssignmentTakesCourseFromModule(t *testing.T) {
	f := newFixture(t)
	svc := NewAssignmentService(f.repos.Course, f.repos.Module, f.repos.Assignment, f.authz, zerolog.Nop())
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)
	other := f.course(t, f.instructor, models.CourseStatusPublished)
	m := f.module(t, c.ID, "M", 1)

	a, err := svc.CreateAssignment(ctx, f.instructor, &models.Assignment{ModuleID: m.ID, CourseID: other.ID, Title: "HW1", MaxScore: 100})
	require.NoError(t, err)
	assert.Equal(t, c.ID, a.CourseID)

	byCourse, err := svc.ListByCourse(ctx, c.ID, f.student)
	require.NoError(t, err)
	assert.Len(t, byCourse, 1)
	byModule, err := svc.ListByModule(ctx, m.ID, f.student)
	require.NoError(t, err)
	assert.Len(t, byModule, 1)

	assert.ErrorIs(t, svc.DeleteAssignment(ctx, f.rival, a.ID), apperrors.ErrNotOwner)
	require.NoError(t, svc.DeleteAssignment(ctx, f.instructor, a.ID))
	_, err = svc.GetAssignment(ctx, a.ID, f.student)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestQuizAttempts(t *testing.T) {
	f := newFixture(t)
	svc := NewQuizService(f.repos.Course, f.repos.Module, f.repos.Quiz, f.repos.Enrollment, f.authz, zerolog.Nop())
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)
	m := f.module(t, c.ID, "M", 1)

	q, err := svc.CreateQuiz(ctx, f.instructor, &models.Quiz{ModuleID: m.ID, Title: "Basics", TotalMarks: 100, TimeLimit: 30})
	require.NoError(t, err)

	_, err = svc.SubmitAttempt(ctx, f.student, &models.QuizAttempt{QuizID: q.ID, Score: 50, AttemptNo: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)

	f.enroll(t, f.student, c.ID)

	_, err = svc.SubmitAttempt(ctx, f.student, &models.QuizAttempt{QuizID: 404, Score: 50, AttemptNo: 1})
	assert.ErrorIs(t, err, apperrors.ErrQuizNotFound)
	_, err = svc.SubmitAttempt(ctx, f.student, &models.QuizAttempt{QuizID: q.ID, Score: 101, AttemptNo: 1})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = svc.SubmitAttempt(ctx, f.student, &models.QuizAttempt{QuizID: q.ID, Score: -1, AttemptNo: 1})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = svc.SubmitAttempt(ctx, f.student, &models.QuizAttempt{QuizID: q.ID, Score: 10, AttemptNo: 0})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = svc.SubmitAttempt(ctx, f.instructor, &models.QuizAttempt{QuizID: q.ID, Score: 10, AttemptNo: 1})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	first, err := svc.SubmitAttempt(ctx, f.student, &models.QuizAttempt{QuizID: q.ID, Score: 100, AttemptNo: 1})
	require.NoError(t, err)
	assert.Equal(t, f.student.ID, first.StudentID)

	_, err = svc.SubmitAttempt(ctx, f.student, &models.QuizAttempt{QuizID: q.ID, Score: 80, AttemptNo: 1})
	assert.ErrorIs(t, err, apperrors.ErrDuplicateAttempt)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.SubmitAttempt(ctx, f.student, &models.QuizAttempt{QuizID: q.ID, Score: 0, AttemptNo: 2})
	require.NoError(t, err)

	attempts, err := svc.ListAttempts(ctx, f.instructor, q.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "John", attempts[0].FirstName)
	assert.Equal(t, "Doe", attempts[0].LastName)

	_, err = svc.ListAttempts(ctx, f.rival, q.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
}
