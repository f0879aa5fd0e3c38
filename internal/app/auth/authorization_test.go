package auth

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories/repotest"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

type chain struct {
	authz      *AuthorizationService
	repos      repotest.Repositories
	owner      *models.Instructor
	rival      *models.Instructor
	student    *models.Student
	admin      *models.Admin
	course     *models.Course
	module     *models.Module
	lesson     *models.Lesson
	quiz       *models.Quiz
	assignment *models.Assignment
}

func newChain(t *testing.T) *chain {
	t.Helper()
	ctx := context.Background()
	r := repotest.NewStore().Repos()
	c := &chain{
		authz:   NewAuthorizationService(r.Course, r.Module, r.Lesson, r.Quiz, r.Assignment, r.Enrollment, zerolog.Nop()),
		repos:   r,
		owner:   &models.Instructor{UserName: "owner", Email: "owner@example.com", FullName: "Owner"},
		rival:   &models.Instructor{UserName: "rival", Email: "rival@example.com", FullName: "Rival"},
		student: &models.Student{UserName: "s", Email: "s@example.com", FirstName: "S", LastName: "T"},
		admin:   &models.Admin{UserName: "admin", Email: "admin@example.com"},
	}
	require.NoError(t, r.Principal.CreateInstructor(ctx, c.owner))
	require.NoError(t, r.Principal.CreateInstructor(ctx, c.rival))
	require.NoError(t, r.Principal.CreateStudent(ctx, c.student))
	require.NoError(t, r.Principal.CreateAdmin(ctx, c.admin))

	c.course = &models.Course{InstructorID: c.owner.ID, Title: "C", Category: "Z", Language: "En", Status: models.CourseStatusPublished}
	require.NoError(t, r.Course.Create(ctx, c.course))
	c.module = &models.Module{CourseID: c.course.ID, Title: "M"}
	require.NoError(t, r.Module.Create(ctx, c.module))
	c.lesson = &models.Lesson{ModuleID: c.module.ID, Title: "L"}
	require.NoError(t, r.Lesson.Create(ctx, c.lesson))
	c.quiz = &models.Quiz{ModuleID: c.module.ID, Title: "Q", TotalMarks: 10}
	require.NoError(t, r.Quiz.Create(ctx, c.quiz))
	c.assignment = &models.Assignment{CourseID: c.course.ID, ModuleID: c.module.ID, Title: "A", MaxScore: 10}
	require.NoError(t, r.Assignment.Create(ctx, c.assignment))
	return c
}

func TestOwnershipAlongContentChain(t *testing.T) {
	c := newChain(t)
	ctx := context.Background()

	checks := map[string]func(models.Principal) error{
		"course": func(p models.Principal) error {
			_, err := c.authz.CourseForOwner(ctx, c.course.ID, p)
			return err
		},
		"module": func(p models.Principal) error {
			_, err := c.authz.ModuleForOwner(ctx, c.module.ID, p)
			return err
		},
		"lesson": func(p models.Principal) error {
			_, err := c.authz.LessonForOwner(ctx, c.lesson.ID, p)
			return err
		},
		"quiz": func(p models.Principal) error {
			_, err := c.authz.QuizForOwner(ctx, c.quiz.ID, p)
			return err
		},
		"assignment": func(p models.Principal) error {
			_, err := c.authz.AssignmentForOwner(ctx, c.assignment.ID, p)
			return err
		},
	}

	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, check(c.owner))
			assert.ErrorIs(t, check(c.rival), apperrors.ErrNotOwner)
			assert.ErrorIs(t, check(c.student), apperrors.ErrNotOwner)
			assert.ErrorIs(t, check(c.admin), apperrors.ErrNotOwner, "admins are never owners")
		})
	}
}

func TestOwnershipMissingRows(t *testing.T) {
	c := newChain(t)
	ctx := context.Background()

	_, err := c.authz.CourseForOwner(ctx, 404, c.owner)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = c.authz.ModuleForOwner(ctx, 404, c.owner)
	assert.ErrorIs(t, err, apperrors.ErrModuleNotFound)
	_, err = c.authz.LessonForOwner(ctx, 404, c.owner)
	assert.ErrorIs(t, err, apperrors.ErrLessonNotFound)
	_, err = c.authz.QuizForOwner(ctx, 404, c.owner)
	assert.ErrorIs(t, err, apperrors.ErrQuizNotFound)
	_, err = c.authz.AssignmentForOwner(ctx, 404, c.owner)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestCanViewCourse(t *testing.T) {
	c := newChain(t)
	draft := *c.course
	draft.Status = models.CourseStatusDraft

	assert.True(t, CanViewCourse(c.course, nil))
	assert.False(t, CanViewCourse(&draft, nil))
	assert.False(t, CanViewCourse(&draft, c.student))
	assert.False(t, CanViewCourse(&draft, c.rival))
	assert.True(t, CanViewCourse(&draft, c.owner))
	assert.True(t, CanViewCourse(&draft, c.admin))
}

func TestIsParticipant(t *testing.T) {
	c := newChain(t)
	ctx := context.Background()

	ok, err := c.authz.IsParticipant(ctx, c.course, c.owner)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.authz.IsParticipant(ctx, c.course, c.rival)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.authz.IsParticipant(ctx, c.course, c.student)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.repos.Enrollment.Create(ctx, &models.Enrollment{StudentID: c.student.ID, CourseID: c.course.ID}))
	ok, err = c.authz.IsParticipant(ctx, c.course, c.student)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.authz.IsParticipant(ctx, c.course, c.admin)
	require.NoError(t, err)
	assert.False(t, ok)
}
