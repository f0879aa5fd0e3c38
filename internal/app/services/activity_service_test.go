package services

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

func newSubmissionService(f *fixture) SubmissionService {
	return NewSubmissionService(f.repos.Assignment, f.repos.Submission, f.repos.Enrollment, f.authz, zerolog.Nop())
}

func TestSubmitAssignmentOnce(t *testing.T) {
	f := newFixture(t)
	svc := newSubmissionService(f)
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)
	a := f.assignment(t, f.module(t, c.ID, "M", 1))

	_, err := svc.SubmitAssignment(ctx, f.student, 9999, "https://x")
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
	_, err = svc.SubmitAssignment(ctx, f.student, a.ID, "https://x")
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)

	f.enroll(t, f.student, c.ID)

	_, err = svc.SubmitAssignment(ctx, f.student, a.ID, " ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	sub, err := svc.SubmitAssignment(ctx, f.student, a.ID, "https://github.com/jdoe/cli")
	require.NoError(t, err)
	assert.Equal(t, f.student.ID, sub.StudentID)

	_, err = svc.SubmitAssignment(ctx, f.student, a.ID, "https://github.com/jdoe/cli-v2")
	assert.ErrorIs(t, err, apperrors.ErrAlreadySubmitted)
	msg, _ := apperrors.UserMessage(err)
	assert.Equal(t, "Assignment already submitted", msg)
}

func TestConcurrentSubmissionsExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	svc := newSubmissionService(f)
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)
	a := f.assignment(t, f.module(t, c.ID, "M", 1))
	f.enroll(t, f.student, c.ID)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SubmitAssignment(ctx, f.student, a.ID, "https://x")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)
}

func TestSubmissionVisibility(t *testing.T) {
	f := newFixture(t)
	svc := newSubmissionService(f)
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)
	a := f.assignment(t, f.module(t, c.ID, "M", 1))
	f.enroll(t, f.student, c.ID)
	_, err := svc.SubmitAssignment(ctx, f.student, a.ID, "https://x")
	require.NoError(t, err)

	byAssignment, err := svc.ListByAssignment(ctx, f.instructor, a.ID)
	require.NoError(t, err)
	assert.Len(t, byAssignment, 1)
	_, err = svc.ListByAssignment(ctx, f.rival, a.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)

	mine, err := svc.ListByStudent(ctx, f.student, f.student.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	_, err = svc.ListByStudent(ctx, f.outsider, f.student.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = svc.ListByStudent(ctx, f.admin, f.student.ID)
	assert.NoError(t, err)

	for _, p := range []models.Principal{f.student, f.instructor, f.admin} {
		_, err = svc.GetForStudent(ctx, p, a.ID, f.student.ID)
		assert.NoError(t, err, "role %s", p.Role())
	}
	_, err = svc.GetForStudent(ctx, f.outsider, a.ID, f.student.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = svc.GetForStudent(ctx, f.outsider, a.ID, f.outsider.ID)
	assert.ErrorIs(t, err, apperrors.ErrSubmissionNotFound)
}

func TestEnrollment(t *testing.T) {
	f := newFixture(t)
	svc := NewEnrollmentService(f.repos.Course, f.repos.Enrollment, f.repos.Principal, zerolog.Nop())
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)
	draft := f.course(t, f.instructor, models.CourseStatusDraft)

	_, err := svc.Enroll(ctx, f.student, draft.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = svc.Enroll(ctx, f.instructor, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.Enroll(ctx, f.student, c.ID)
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, f.student, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyEnrolled)

	courses, err := svc.ListCourses(ctx, f.student, f.student.ID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, c.ID, courses[0].ID)

	_, err = svc.ListCourses(ctx, f.outsider, f.student.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestStudentProfileAndProgress(t *testing.T) {
	f := newFixture(t)
	svc := NewEnrollmentService(f.repos.Course, f.repos.Enrollment, f.repos.Principal, zerolog.Nop())
	ctx := context.Background()

	c := f.course(t, f.instructor, models.CourseStatusPublished)
	m := f.module(t, c.ID, "M", 1)
	q1 := f.quiz(t, m.ID, 10)
	f.quiz(t, m.ID, 10)
	a := f.assignment(t, m)
	f.assignment(t, m)
	f.enroll(t, f.student, c.ID)

	require.NoError(t, f.repos.Submission.Create(ctx, &models.Submission{AssignmentID: a.ID, StudentID: f.student.ID, ContentURL: "https://x"}))
	require.NoError(t, f.repos.Quiz.SubmitAttempt(ctx, &models.QuizAttempt{QuizID: q1.ID, StudentID: f.student.ID, Score: 5, AttemptNo: 1}))
	require.NoError(t, f.repos.Quiz.SubmitAttempt(ctx, &models.QuizAttempt{QuizID: q1.ID, StudentID: f.student.ID, Score: 7, AttemptNo: 2}))

	me, err := svc.Profile(ctx, f.student)
	require.NoError(t, err)
	assert.Equal(t, "jdoe@example.com", me.Email)

	progress, err := svc.Progress(ctx, f.student)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, models.StudentCourseProgress{
		CourseID:             c.ID,
		CourseTitle:          c.Title,
		TotalAssignments:     2,
		SubmittedAssignments: 1,
		TotalQuizzes:         2,
		AttemptedQuizzes:     1,
	}, progress[0])

	_, err = svc.Progress(ctx, f.instructor)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestReviews(t *testing.T) {
	f := newFixture(t)
	svc := NewReviewService(f.repos.Course, f.repos.Review, f.repos.Enrollment, zerolog.Nop())
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)

	_, err := svc.CreateReview(ctx, f.student, &models.Review{CourseID: c.ID, Rating: 5})
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)

	f.enroll(t, f.student, c.ID)
	_, err = svc.CreateReview(ctx, f.student, &models.Review{CourseID: c.ID, Rating: 6})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateReview(ctx, f.student, &models.Review{CourseID: c.ID, Rating: 3, Comment: "ok"})
	require.NoError(t, err)
	_, err = svc.CreateReview(ctx, f.student, &models.Review{CourseID: c.ID, Rating: 5, Comment: "better now"})
	require.NoError(t, err)

	reviews, err := svc.ListByCourse(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "better now", reviews[0].Comment, "newest first")
}
