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

// QuizController handles quizzes and quiz attempts
type QuizController struct {
	quizService services.QuizService
	logger      zerolog.Logger
}

// NewQuizController creates a new QuizController
func NewQuizController(quizService services.QuizService, logger zerolog.Logger) *QuizController {
	return &QuizController{quizService: quizService, logger: logger}
}

// Create godoc
// @Summary Add a quiz to a module
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateQuizRequest true "Quiz"
// @Success 201 {object} map[string]interface{} "msg, id and quiz"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var req dto.CreateQuizRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	quiz, err := c.quizService.CreateQuiz(ctx.Request.Context(), principal(ctx), &models.Quiz{
		ModuleID:   req.ModuleID,
		Title:      req.Title,
		TotalMarks: req.TotalMarks,
		TimeLimit:  req.TimeLimit,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"msg": "Quiz created successfully", "id": quiz.ID, "quiz": quiz})
}

// ListByModule godoc
// @Summary List a module's quizzes
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param module_id path int true "Module ID"
// @Success 200 {array} models.Quiz
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/module/{module_id} [get]
func (c *QuizController) ListByModule(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "module_id", "module")
	if !ok {
		return
	}

	quizzes, err := c.quizService.ListByModule(ctx.Request.Context(), moduleID, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quizzes)
}

// Get godoc
// @Summary Get a quiz
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} models.Quiz
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/{quiz_id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "quiz_id", "quiz")
	if !ok {
		return
	}

	quiz, err := c.quizService.GetQuiz(ctx.Request.Context(), id, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, quiz)
}

// Update godoc
// @Summary Update a quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Param request body dto.UpdateQuizRequest true "Quiz"
// @Success 200 {object} map[string]interface{} "msg and quiz"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/{quiz_id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "quiz_id", "quiz")
	if !ok {
		return
	}
	var req dto.UpdateQuizRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	quiz, err := c.quizService.UpdateQuiz(ctx.Request.Context(), principal(ctx), &models.Quiz{
		ID:         id,
		Title:      req.Title,
		TotalMarks: req.TotalMarks,
		TimeLimit:  req.TimeLimit,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"msg": "Quiz updated successfully", "quiz": quiz})
}

// Submit godoc
// @Summary Record a quiz attempt
// @Description Each (quiz, student, attempt number) may be recorded once. Score must be within 0 and the quiz's total marks.
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitQuizRequest true "Attempt"
// @Success 201 {object} map[string]interface{} "msg, id and attempt"
// @Failure 400 {object} dto.ErrorResponse "Invalid score or attempt already recorded"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req dto.SubmitQuizRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	attempt, err := c.quizService.SubmitAttempt(ctx.Request.Context(), principal(ctx), &models.QuizAttempt{
		QuizID:    req.QuizID,
		Score:     *req.Score,
		AttemptNo: req.AttemptNo,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"msg": "Quiz attempt submitted successfully", "id": attempt.ID, "attempt": attempt})
}

// ListAttempts godoc
// @Summary List a quiz's attempts with student names
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {array} models.QuizAttempt
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quiz/attempts/{quiz_id} [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	quizID, ok := parseIDParam(ctx, "quiz_id", "quiz")
	if !ok {
		return
	}

	attempts, err := c.quizService.ListAttempts(ctx.Request.Context(), principal(ctx), quizID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
