package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
)

// LessonController handles lesson operations
type LessonController struct {
	lessonService services.LessonService
	logger        zerolog.Logger
}

// NewLessonController creates a new LessonController
func NewLessonController(lessonService services.LessonService, logger zerolog.Logger) *LessonController {
	return &LessonController{lessonService: lessonService, logger: logger}
}

// Create godoc
// @Summary Add a lesson to a module
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLessonRequest true "Lesson"
// @Success 201 {object} map[string]interface{} "msg, id and lesson"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	var req dto.CreateLessonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lesson, err := c.lessonService.CreateLesson(ctx.Request.Context(), principal(ctx), &models.Lesson{
		ModuleID: req.ModuleID,
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		Position: req.Position,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"msg": "Lesson created successfully", "id": lesson.ID, "lesson": lesson})
}

// ListByModule godoc
// @Summary List a module's lessons
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param module_id path int true "Module ID"
// @Success 200 {array} models.Lesson
// @Failure 404 {object} dto.ErrorResponse
// @Router /lessons/module/{module_id} [get]
func (c *LessonController) ListByModule(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "module_id", "module")
	if !ok {
		return
	}

	lessons, err := c.lessonService.ListByModule(ctx.Request.Context(), moduleID, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lessons)
}

// Get godoc
// @Summary Get a lesson
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lesson_id path int true "Lesson ID"
// @Success 200 {object} models.Lesson
// @Failure 404 {object} dto.ErrorResponse
// @Router /lessons/{lesson_id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "lesson_id", "lesson")
	if !ok {
		return
	}

	lesson, err := c.lessonService.GetLesson(ctx.Request.Context(), id, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, lesson)
}

// Update godoc
// @Summary Update a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param lesson_id path int true "Lesson ID"
// @Param request body dto.UpdateLessonRequest true "Lesson"
// @Success 200 {object} map[string]interface{} "msg and lesson"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /lessons/{lesson_id} [put]
func (c *LessonController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "lesson_id", "lesson")
	if !ok {
		return
	}
	var req dto.UpdateLessonRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	lesson, err := c.lessonService.UpdateLesson(ctx.Request.Context(), principal(ctx), &models.Lesson{
		ID:       id,
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		Position: req.Position,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"msg": "Lesson updated successfully", "lesson": lesson})
}
