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

// AssignmentController handles assignment operations
type AssignmentController struct {
	assignmentService services.AssignmentService
	logger            zerolog.Logger
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService, logger zerolog.Logger) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService, logger: logger}
}

// Create godoc
// @Summary Add an assignment to a module
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAssignmentRequest true "Assignment"
// @Success 201 {object} map[string]interface{} "msg, id and assignment"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	var req dto.CreateAssignmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	assignment, err := c.assignmentService.CreateAssignment(ctx.Request.Context(), principal(ctx), &models.Assignment{
		ModuleID:    req.ModuleID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		MaxScore:    req.MaxScore,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"msg": "Assignment created successfully", "id": assignment.ID, "assignment": assignment})
}

// Get godoc
// @Summary Get an assignment
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param assignment_id path int true "Assignment ID"
// @Success 200 {object} models.Assignment
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments/{assignment_id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "assignment_id", "assignment")
	if !ok {
		return
	}

	assignment, err := c.assignmentService.GetAssignment(ctx.Request.Context(), id, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, assignment)
}

// ListByModule godoc
// @Summary List a module's assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param module_id path int true "Module ID"
// @Success 200 {array} models.Assignment
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments/module/{module_id} [get]
func (c *AssignmentController) ListByModule(ctx *gin.Context) {
	moduleID, ok := parseIDParam(ctx, "module_id", "module")
	if !ok {
		return
	}

	assignments, err := c.assignmentService.ListByModule(ctx.Request.Context(), moduleID, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, assignments)
}

// ListByCourse godoc
// @Summary List a course's assignments
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {array} models.Assignment
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments/course/{course_id} [get]
func (c *AssignmentController) ListByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "course_id", "course")
	if !ok {
		return
	}

	assignments, err := c.assignmentService.ListByCourse(ctx.Request.Context(), courseID, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, assignments)
}

// Update godoc
// @Summary Update an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment_id path int true "Assignment ID"
// @Param request body dto.UpdateAssignmentRequest true "Assignment"
// @Success 200 {object} map[string]interface{} "msg and assignment"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments/{assignment_id} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "assignment_id", "assignment")
	if !ok {
		return
	}
	var req dto.UpdateAssignmentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	assignment, err := c.assignmentService.UpdateAssignment(ctx.Request.Context(), principal(ctx), &models.Assignment{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		MaxScore:    req.MaxScore,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"msg": "Assignment updated successfully", "assignment": assignment})
}

// Delete godoc
// @Summary Delete an assignment
// @Description Removes the assignment with its submissions
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param assignment_id path int true "Assignment ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments/{assignment_id} [delete]
func (c *AssignmentController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "assignment_id", "assignment")
	if !ok {
		return
	}

	if err := c.assignmentService.DeleteAssignment(ctx.Request.Context(), principal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Msg: "Assignment deleted successfully"})
}
