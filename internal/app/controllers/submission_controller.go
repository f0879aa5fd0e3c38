package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
)

// SubmissionController handles assignment submissions
type SubmissionController struct {
	submissionService services.SubmissionService
	logger            zerolog.Logger
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService services.SubmissionService, logger zerolog.Logger) *SubmissionController {
	return &SubmissionController{submissionService: submissionService, logger: logger}
}

// Submit godoc
// @Summary Submit an assignment
// @Description A student submits each assignment once
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitAssignmentRequest true "Submission"
// @Success 201 {object} map[string]interface{} "msg, id and submission"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or already submitted"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse
// @Router /submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	var req dto.SubmitAssignmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	submission, err := c.submissionService.SubmitAssignment(ctx.Request.Context(), principal(ctx), req.AssignmentID, req.ContentURL)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"msg": "Assignment submitted successfully", "id": submission.ID, "submission": submission})
}

// ListByAssignment godoc
// @Summary List an assignment's submissions
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param assignment_id path int true "Assignment ID"
// @Success 200 {array} models.Submission
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /submissions/assignment/{assignment_id} [get]
func (c *SubmissionController) ListByAssignment(ctx *gin.Context) {
	assignmentID, ok := parseIDParam(ctx, "assignment_id", "assignment")
	if !ok {
		return
	}

	submissions, err := c.submissionService.ListByAssignment(ctx.Request.Context(), principal(ctx), assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}

// ListByStudent godoc
// @Summary List a student's submissions
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param student_id path int true "Student ID"
// @Success 200 {array} models.Submission
// @Failure 403 {object} dto.ErrorResponse
// @Router /submissions/student/{student_id} [get]
func (c *SubmissionController) ListByStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "student_id", "student")
	if !ok {
		return
	}

	submissions, err := c.submissionService.ListByStudent(ctx.Request.Context(), principal(ctx), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}

// GetForStudent godoc
// @Summary Get one student's submission for an assignment
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param assignment_id path int true "Assignment ID"
// @Param student_id path int true "Student ID"
// @Success 200 {object} models.Submission
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /submissions/assignment/{assignment_id}/student/{student_id} [get]
func (c *SubmissionController) GetForStudent(ctx *gin.Context) {
	assignmentID, ok := parseIDParam(ctx, "assignment_id", "assignment")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "student_id", "student")
	if !ok {
		return
	}

	submission, err := c.submissionService.GetForStudent(ctx.Request.Context(), principal(ctx), assignmentID, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, submission)
}
