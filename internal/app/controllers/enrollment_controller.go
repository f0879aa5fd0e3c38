package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/middleware"
)

// EnrollmentController handles enrollments and the student's own views
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{enrollmentService: enrollmentService, logger: logger}
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.EnrollRequest true "Course to enroll in"
// @Success 201 {object} map[string]interface{} "msg, id and enrollment"
// @Failure 400 {object} dto.ErrorResponse "Already enrolled"
// @Failure 404 {object} dto.ErrorResponse
// @Router /enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req dto.EnrollRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	enrollment, err := c.enrollmentService.Enroll(ctx.Request.Context(), principal(ctx), req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"msg": "Enrolled successfully", "id": enrollment.ID, "enrollment": enrollment})
}

// ListCourses godoc
// @Summary List the courses a student is enrolled in
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param student_id path int true "Student ID"
// @Success 200 {array} models.Course
// @Failure 403 {object} dto.ErrorResponse
// @Router /enrollments/{student_id} [get]
func (c *EnrollmentController) ListCourses(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "student_id", "student")
	if !ok {
		return
	}

	courses, err := c.enrollmentService.ListCourses(ctx.Request.Context(), principal(ctx), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, courses)
}

// Me godoc
// @Summary Get the calling student's profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Student
// @Failure 401 {object} dto.ErrorResponse
// @Router /student/me [get]
func (c *EnrollmentController) Me(ctx *gin.Context) {
	student, err := c.enrollmentService.Profile(ctx.Request.Context(), principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, student)
}

// Progress godoc
// @Summary Get the calling student's progress per enrolled course
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.StudentCourseProgress
// @Failure 401 {object} dto.ErrorResponse
// @Router /student/progress [get]
func (c *EnrollmentController) Progress(ctx *gin.Context) {
	progress, err := c.enrollmentService.Progress(ctx.Request.Context(), principal(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, progress)
}
