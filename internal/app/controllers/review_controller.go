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

// ReviewController handles course reviews
type ReviewController struct {
	reviewService services.ReviewService
	logger        zerolog.Logger
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService services.ReviewService, logger zerolog.Logger) *ReviewController {
	return &ReviewController{reviewService: reviewService, logger: logger}
}

// Create godoc
// @Summary Review a course
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReviewRequest true "Review"
// @Success 201 {object} map[string]interface{} "msg, id and review"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the course"
// @Failure 404 {object} dto.ErrorResponse
// @Router /reviews [post]
func (c *ReviewController) Create(ctx *gin.Context) {
	var req dto.CreateReviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	review, err := c.reviewService.CreateReview(ctx.Request.Context(), principal(ctx), &models.Review{
		CourseID: req.CourseID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"msg": "Review added successfully", "id": review.ID, "review": review})
}

// ListByCourse godoc
// @Summary List a course's reviews, newest first
// @Tags reviews
// @Produce json
// @Param course_id path int true "Course ID"
// @Success 200 {array} models.Review
// @Failure 404 {object} dto.ErrorResponse
// @Router /reviews/course/{course_id} [get]
func (c *ReviewController) ListByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "course_id", "course")
	if !ok {
		return
	}

	reviews, err := c.reviewService.ListByCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, reviews)
}
