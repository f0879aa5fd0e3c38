package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/monitoring"
)

// EventChatMessage is the push event type for a stored chat message
const EventChatMessage = "chat.message"

const maxChatMessageLength = 2000

// Publisher pushes events to the subscribers of a course room
type Publisher interface {
	Publish(roomID int64, eventType string, data interface{})
}

// ChatService is the per-course message log. Messages are append-only and
// read in creation order; every stored message is also pushed to live
// subscribers of the course.
type ChatService interface {
	PostMessage(ctx context.Context, courseID int64, message string, p models.Principal) (*models.ChatMessage, error)
	GetMessagesByCourse(ctx context.Context, courseID int64, p models.Principal) ([]models.ChatMessage, error)
	AuthorizeRead(ctx context.Context, courseID int64, p models.Principal) error
}

type chatServiceImpl struct {
	courseRepo repositories.ICourseRepository
	chatRepo   repositories.IChatRepository
	authz      *appauth.AuthorizationService
	publisher  Publisher
	logger     zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	courseRepo repositories.ICourseRepository,
	chatRepo repositories.IChatRepository,
	authz *appauth.AuthorizationService,
	publisher Publisher,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		courseRepo: courseRepo,
		chatRepo:   chatRepo,
		authz:      authz,
		publisher:  publisher,
		logger:     logger,
	}
}

// PostMessage appends a message from a participant. The sender slot follows
// the principal's role; admins cannot post.
func (s *chatServiceImpl) PostMessage(ctx context.Context, courseID int64, message string, p models.Principal) (*models.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if err := required("message", message); err != nil {
		return nil, err
	}
	if len(message) > maxChatMessageLength {
		return nil, apperrors.NewValidationError("message is too long")
	}

	msg := &models.ChatMessage{CourseID: courseID, Message: message}
	switch v := p.(type) {
	case *models.Student:
		msg.StudentID = &v.ID
	case *models.Instructor:
		msg.InstructorID = &v.ID
	default:
		return nil, apperrors.NewForbiddenError("Only students and instructors can post messages")
	}

	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	ok, err := s.authz.IsParticipant(ctx, course, p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrNotParticipant
	}

	if err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, err
	}

	monitoring.ChatMessagesPosted.Inc()
	s.publisher.Publish(courseID, EventChatMessage, msg)
	s.logger.Debug().Int64("courseID", courseID).Int64("messageID", msg.ID).Str("senderRole", string(msg.SenderRole())).Msg("Chat message posted")
	return msg, nil
}

// GetMessagesByCourse returns the whole log in creation order
func (s *chatServiceImpl) GetMessagesByCourse(ctx context.Context, courseID int64, p models.Principal) ([]models.ChatMessage, error) {
	if err := s.AuthorizeRead(ctx, courseID, p); err != nil {
		return nil, err
	}
	return s.chatRepo.ListByCourse(ctx, courseID)
}

// AuthorizeRead allows participants and admins to read or subscribe
func (s *chatServiceImpl) AuthorizeRead(ctx context.Context, courseID int64, p models.Principal) error {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if models.IsAdmin(p) {
		return nil
	}
	ok, err := s.authz.IsParticipant(ctx, course, p)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotParticipant
	}
	return nil
}
