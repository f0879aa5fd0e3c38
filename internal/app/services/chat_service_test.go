package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

func TestChatMessagesKeepPostingOrder(t *testing.T) {
	f := newFixture(t)
	pub := &recordingPublisher{}
	svc := NewChatService(f.repos.Course, f.repos.Chat, f.authz, pub, zerolog.Nop())
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)
	f.enroll(t, f.student, c.ID)

	m1, err := svc.PostMessage(ctx, c.ID, "M1", f.student)
	require.NoError(t, err)
	m2, err := svc.PostMessage(ctx, c.ID, "M2", f.instructor)
	require.NoError(t, err)

	require.NotNil(t, m1.StudentID)
	assert.Nil(t, m1.InstructorID)
	require.NotNil(t, m2.InstructorID)
	assert.Nil(t, m2.StudentID)
	assert.Equal(t, models.RoleInstructor, m2.SenderRole())

	msgs, err := svc.GetMessagesByCourse(ctx, c.ID, f.student)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "M1", msgs[0].Message)
	assert.Equal(t, "M2", msgs[1].Message)
	assert.False(t, msgs[1].CreatedAt.Before(msgs[0].CreatedAt))

	require.Len(t, pub.events, 2)
	assert.Equal(t, c.ID, pub.events[0].roomID)
	assert.Equal(t, EventChatMessage, pub.events[0].eventType)
	assert.Equal(t, m1, pub.events[0].data)
}

func TestChatParticipation(t *testing.T) {
	f := newFixture(t)
	pub := &recordingPublisher{}
	svc := NewChatService(f.repos.Course, f.repos.Chat, f.authz, pub, zerolog.Nop())
	ctx := context.Background()
	c := f.course(t, f.instructor, models.CourseStatusPublished)

	_, err := svc.PostMessage(ctx, c.ID, "hi", f.admin)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	_, err = svc.PostMessage(ctx, c.ID, "hi", f.outsider)
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)
	_, err = svc.PostMessage(ctx, c.ID, "hi", f.rival)
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)
	_, err = svc.PostMessage(ctx, 999, "hi", f.instructor)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	_, err = svc.PostMessage(ctx, c.ID, "   ", f.instructor)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	_, err = svc.PostMessage(ctx, c.ID, strings.Repeat("x", 2001), f.instructor)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, pub.events)

	_, err = svc.GetMessagesByCourse(ctx, c.ID, f.outsider)
	assert.ErrorIs(t, err, apperrors.ErrNotParticipant)

	msgs, err := svc.GetMessagesByCourse(ctx, c.ID, f.admin)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)

	assert.NoError(t, svc.AuthorizeRead(ctx, c.ID, f.instructor))
}
