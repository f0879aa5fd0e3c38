package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
)

// InstructorController handles the instructor's own course views
type InstructorController struct {
	courseService services.CourseService
	logger        zerolog.Logger
}

// NewInstructorController creates a new instructor controller
func NewInstructorController(courseService services.CourseService, logger zerolog.Logger) *InstructorController {
	return &InstructorController{
		courseService: courseService,
		logger:        logger,
	}
}

// OwnCourses godoc
// @Summary List the calling instructor's courses, drafts included
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Course
// @Failure 403 {object} dto.ErrorResponse
// @Router /instructor/courses [get]
func (c *InstructorController) OwnCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListOwnCourses(ctx.Request.Context(), principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// Stats godoc
// @Summary Per-course statistics of an instructor
// @Description Enrolled students, assignments, quizzes and submissions per course
// @Tags instructor
// @Produce json
// @Security BearerAuth
// @Param instructor_id path int true "Instructor ID"
// @Success 200 {array} models.CourseStats
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Instructor not found or has no courses"
// @Router /instructor/{instructor_id}/courses [get]
func (c *InstructorController) Stats(ctx *gin.Context) {
	instructorID, ok := parseIDParam(ctx, "instructor_id", "instructor")
	if !ok {
		return
	}

	stats, err := c.courseService.InstructorStats(ctx.Request.Context(), principal(ctx), instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
