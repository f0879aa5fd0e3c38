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

// ownedContent is one course tree belonging to the fixture instructor.
type ownedContent struct {
	course     *models.Course
	module     *models.Module
	lesson     *models.Lesson
	quiz       *models.Quiz
	assignment *models.Assignment
}

func TestNonOwnerMutationLeavesRowsUnchanged(t *testing.T) {
	lgr := zerolog.Nop()

	tests := []struct {
		name   string
		act    func(ctx context.Context, f *fixture, w ownedContent) error
		reread func(ctx context.Context, f *fixture, w ownedContent) (interface{}, error)
	}{
		{
			name: "update course",
			act: func(ctx context.Context, f *fixture, w ownedContent) error {
				update := *w.course
				update.Title = "Hijacked"
				update.Price = 0
				_, err := NewCourseService(f.repos.Course, f.repos.Principal, f.authz, lgr).UpdateCourse(ctx, f.rival, &update)
				return err
			},
			reread: func(ctx context.Context, f *fixture, w ownedContent) (interface{}, error) {
				return f.repos.Course.GetByID(ctx, w.course.ID)
			},
		},
		{
			name: "delete course",
			act: func(ctx context.Context, f *fixture, w ownedContent) error {
				return NewCourseService(f.repos.Course, f.repos.Principal, f.authz, lgr).DeleteCourse(ctx, f.rival, w.course.ID)
			},
			reread: func(ctx context.Context, f *fixture, w ownedContent) (interface{}, error) {
				return f.repos.Course.GetByID(ctx, w.course.ID)
			},
		},
		{
			name: "update module",
			act: func(ctx context.Context, f *fixture, w ownedContent) error {
				update := *w.module
				update.Title = "Hijacked"
				_, err := NewModuleService(f.repos.Course, f.repos.Module, f.authz, lgr).UpdateModule(ctx, f.rival, &update)
				return err
			},
			reread: func(ctx context.Context, f *fixture, w ownedContent) (interface{}, error) {
				return f.repos.Module.GetByID(ctx, w.module.ID)
			},
		},
		{
			name: "delete module",
			act: func(ctx context.Context, f *fixture, w ownedContent) error {
				return NewModuleService(f.repos.Course, f.repos.Module, f.authz, lgr).DeleteModule(ctx, f.rival, w.module.ID)
			},
			reread: func(ctx context.Context, f *fixture, w ownedContent) (interface{}, error) {
				return f.repos.Module.GetByID(ctx, w.module.ID)
			},
		},
		{
			name: "update lesson",
			act: func(ctx context.Context, f *fixture, w ownedContent) error {
				update := *w.lesson
				update.Content = "Hijacked"
				_, err := NewLessonService(f.repos.Course, f.repos.Module, f.repos.Lesson, f.authz, lgr).UpdateLesson(ctx, f.rival, &update)
				return err
			},
			reread: func(ctx context.Context, f *fixture, w ownedContent) (interface{}, error) {
				return f.repos.Lesson.GetByID(ctx, w.lesson.ID)
			},
		},
		{
			name: "update quiz",
			act: func(ctx context.Context, f *fixture, w ownedContent) error {
				update := *w.quiz
				update.TotalMarks = 1
				_, err := NewQuizService(f.repos.Course, f.repos.Module, f.repos.Quiz, f.repos.Enrollment, f.authz, lgr).UpdateQuiz(ctx, f.rival, &update)
				return err
			},
			reread: func(ctx context.Context, f *fixture, w ownedContent) (interface{}, error) {
				return f.repos.Quiz.GetByID(ctx, w.quiz.ID)
			},
		},
		{
			name: "update assignment",
			act: func(ctx context.Context, f *fixture, w ownedContent) error {
				update := *w.assignment
				update.MaxScore = 1
				_, err := NewAssignmentService(f.repos.Course, f.repos.Module, f.repos.Assignment, f.authz, lgr).UpdateAssignment(ctx, f.rival, &update)
				return err
			},
			reread: func(ctx context.Context, f *fixture, w ownedContent) (interface{}, error) {
				return f.repos.Assignment.GetByID(ctx, w.assignment.ID)
			},
		},
		{
			name: "delete assignment",
			act: func(ctx context.Context, f *fixture, w ownedContent) error {
				return NewAssignmentService(f.repos.Course, f.repos.Module, f.repos.Assignment, f.authz, lgr).DeleteAssignment(ctx, f.rival, w.assignment.ID)
			},
			reread: func(ctx context.Context, f *fixture, w ownedContent) (interface{}, error) {
				return f.repos.Assignment.GetByID(ctx, w.assignment.ID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			w := ownedContent{course: f.course(t, f.instructor, models.CourseStatusPublished)}
			w.module = f.module(t, w.course.ID, "Basics", 1)
			w.lesson = &models.Lesson{ModuleID: w.module.ID, Title: "Variables", Content: "var x int", Position: 1}
			require.NoError(t, f.repos.Lesson.Create(ctx, w.lesson))
			w.quiz = f.quiz(t, w.module.ID, 10)
			w.assignment = f.assignment(t, w.module)

			before, err := tt.reread(ctx, f, w)
			require.NoError(t, err)

			err = tt.act(ctx, f, w)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

			after, err := tt.reread(ctx, f, w)
			require.NoError(t, err, "row must survive a rejected mutation")
			assert.Equal(t, before, after)
		})
	}
}
