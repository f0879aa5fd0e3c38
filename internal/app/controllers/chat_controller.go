package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
)

// Subscriber upgrades a request into a live subscription to a course room
type Subscriber interface {
	Subscribe(w http.ResponseWriter, r *http.Request, roomID, principalID int64) error
}

// ChatController handles course chat messages
type ChatController struct {
	chatService services.ChatService
	subscriber  Subscriber
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, subscriber Subscriber, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		subscriber:  subscriber,
		logger:      logger,
	}
}

// Send godoc
// @Summary Post a chat message
// @Description Enrolled students and the owning instructor may post. The stored message is pushed to live subscribers.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} map[string]interface{} "msg, id and chat message"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Not a participant of this course"
// @Failure 404 {object} dto.ErrorResponse
// @Router /chat/send [post]
func (c *ChatController) Send(ctx *gin.Context) {
	var req dto.SendMessageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.chatService.PostMessage(ctx.Request.Context(), req.CourseID, req.Message, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"msg": "Message sent successfully", "id": msg.ID, "chatMessage": msg})
}

// ListByCourse godoc
// @Summary Get a course's chat log
// @Description Messages in creation order. Clients may poll this endpoint instead of subscribing.
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {array} models.ChatMessage
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /chat/course/{course_id} [get]
func (c *ChatController) ListByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "course_id", "course")
	if !ok {
		return
	}

	messages, err := c.chatService.GetMessagesByCourse(ctx.Request.Context(), courseID, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, messages)
}

// Subscribe godoc
// @Summary Subscribe to a course's chat
// @Description Upgrades to a websocket that receives {"type":"chat.message","courseId":...,"data":{...}} events. Messages are posted through /chat/send. The token may be passed as the token query parameter.
// @Tags chat
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param token query string false "Access token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /chat/course/{course_id}/ws [get]
func (c *ChatController) Subscribe(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "course_id", "course")
	if !ok {
		return
	}
	p := principal(ctx)

	if err := c.chatService.AuthorizeRead(ctx.Request.Context(), courseID, p); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// The upgrader has already answered the request on failure
	if err := c.subscriber.Subscribe(ctx.Writer, ctx.Request, courseID, p.PrincipalID()); err != nil {
		c.logger.Warn().Err(err).Int64("courseID", courseID).Msg("Chat subscription failed")
	}
}
