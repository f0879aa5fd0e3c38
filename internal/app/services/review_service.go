package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// ReviewService records and lists course reviews
type ReviewService interface {
	CreateReview(ctx context.Context, p models.Principal, review *models.Review) (*models.Review, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Review, error)
}

type reviewServiceImpl struct {
	courseRepo     repositories.ICourseRepository
	reviewRepo     repositories.IReviewRepository
	enrollmentRepo repositories.IEnrollmentRepository
	logger         zerolog.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	courseRepo repositories.ICourseRepository,
	reviewRepo repositories.IReviewRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	logger zerolog.Logger,
) ReviewService {
	return &reviewServiceImpl{
		courseRepo:     courseRepo,
		reviewRepo:     reviewRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// CreateReview stores an enrolled student's rating of a course
func (s *reviewServiceImpl) CreateReview(ctx context.Context, p models.Principal, review *models.Review) (*models.Review, error) {
	student, err := requireStudent(p)
	if err != nil {
		return nil, err
	}
	if review.Rating < 1 || review.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}
	review.Comment = strings.TrimSpace(review.Comment)

	if _, err := visibleCourse(ctx, s.courseRepo, review.CourseID, p); err != nil {
		return nil, err
	}
	if err := requireEnrolled(ctx, s.enrollmentRepo, student.ID, review.CourseID); err != nil {
		return nil, err
	}

	review.StudentID = student.ID
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("courseID", review.CourseID).Int64("studentID", student.ID).Int("rating", review.Rating).Msg("Review created")
	return review, nil
}

// ListByCourse returns a published course's reviews, newest first
func (s *reviewServiceImpl) ListByCourse(ctx context.Context, courseID int64) ([]models.Review, error) {
	if _, err := visibleCourse(ctx, s.courseRepo, courseID, nil); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListByCourse(ctx, courseID)
}
