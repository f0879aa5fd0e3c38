package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
)

// CourseController handles course operations
type CourseController struct {
	courseService  services.CourseService
	detailsService services.CourseDetailsService
	logger         zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, detailsService services.CourseDetailsService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService:  courseService,
		detailsService: detailsService,
		logger:         logger,
	}
}

// ListPublished godoc
// @Summary List published courses
// @Tags courses
// @Produce json
// @Success 200 {array} models.Course
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses [get]
func (c *CourseController) ListPublished(ctx *gin.Context) {
	courses, err := c.courseService.ListPublished(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// Create godoc
// @Summary Create a course
// @Description The caller becomes the course's owner. Status defaults to draft.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} map[string]interface{} "msg, id and course"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), principal(ctx), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"msg": "Course created successfully", "id": course.ID, "course": course})
}

// Get godoc
// @Summary Get a course
// @Description Drafts are only visible to their owner and admins
// @Tags courses
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {object} models.Course
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course_id", "course")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, course)
}

// GetDetails godoc
// @Summary Get a course with its modules and their content
// @Description Modules are ordered by position. Content lists that fail to load are returned empty.
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {object} models.CourseDetails
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /courses/{course_id}/details [get]
func (c *CourseController) GetDetails(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course_id", "course")
	if !ok {
		return
	}

	details, err := c.detailsService.GetCourseDetails(ctx.Request.Context(), id, principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, details)
}

// Update godoc
// @Summary Update a course
// @Description Only the owning instructor may update. An omitted status keeps the current one.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course"
// @Success 200 {object} map[string]interface{} "msg and course"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course_id", "course")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course := req.ToModel()
	course.ID = id
	updated, err := c.courseService.UpdateCourse(ctx.Request.Context(), principal(ctx), course)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"msg": "Course updated successfully", "course": updated})
}

// Delete godoc
// @Summary Delete a course
// @Description Removes the course with its modules, content, submissions, reviews, messages and enrollments
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param course_id path int true "Course ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{course_id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "course_id", "course")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), principal(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Msg: "Course deleted successfully"})
}
