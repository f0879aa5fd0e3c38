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

// ModuleController handles module operations
type ModuleController struct {
	moduleService services.ModuleService
	logger        zerolog.Logger
}

// NewModuleController creates a new ModuleController
func NewModuleController(moduleService services.ModuleService, logger zerolog.Logger) *ModuleController {
	return &ModuleController{moduleService: moduleService, logger: logger}
}

// Create godoc
// @Summary Add a module to a course
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateModuleRequest true "Module"
// @Success 201 {object} map[string]interface{} "msg, id and module"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /modules [post]
func (c *ModuleController) Create(ctx *gin.Context) {
	var req dto.CreateModuleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	module, err := c.moduleService.CreateModule(ctx.Request.Context(), principal(ctx), &models.Module{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"msg": "Module created successfully", "id": module.ID, "module": module})
}

// ListByCourse godoc
// @Summary List a course's modules
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {array} models.Module
// @Failure 404 {object} dto.ErrorResponse
// @Router /modules/course/{course_id} [get]
func (c *ModuleController) ListByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "course_id", "course")
	if !ok {
		return
	}

	modules, err := c.moduleService.ListByCourse(ctx.Request.Context(), courseID, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, modules)
}

// Get godoc
// @Summary Get a module
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param module_id path int true "Module ID"
// @Success 200 {object} models.Module
// @Failure 404 {object} dto.ErrorResponse
// @Router /modules/{module_id} [get]
func (c *ModuleController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "module_id", "module")
	if !ok {
		return
	}

	module, err := c.moduleService.GetModule(ctx.Request.Context(), id, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, module)
}

// Update godoc
// @Summary Update a module
// @Tags modules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param module_id path int true "Module ID"
// @Param request body dto.UpdateModuleRequest true "Module"
// @Success 200 {object} map[string]interface{} "msg and module"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /modules/{module_id} [put]
func (c *ModuleController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "module_id", "module")
	if !ok {
		return
	}
	var req dto.UpdateModuleRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	module, err := c.moduleService.UpdateModule(ctx.Request.Context(), principal(ctx), &models.Module{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"msg": "Module updated successfully", "module": module})
}

// Delete godoc
// @Summary Delete a module
// @Description Removes the module with its lessons, quizzes and assignments
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param module_id path int true "Module ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /modules/{module_id} [delete]
func (c *ModuleController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "module_id", "module")
	if !ok {
		return
	}

	if err := c.moduleService.DeleteModule(ctx.Request.Context(), principal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Msg: "Module deleted successfully"})
}
