// Package services holds the business rules of the platform. Each service is
// an interface with an unexported implementation over the repository
// interfaces; authorization beyond the route role check happens here.
package services

import (
	"context"
	"strings"

	appauth "github.com/yigit/coursehub/internal/app/auth"
	"github.com/yigit/coursehub/internal/app/models"
	"github.com/yigit/coursehub/internal/app/repositories"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
)

// requireStudent returns the student behind p or a Forbidden error
func requireStudent(p models.Principal) (*models.Student, error) {
	if s, ok := models.IsStudent(p); ok {
		return s, nil
	}
	return nil, apperrors.NewForbiddenError("Only students can perform this action")
}

// requireInstructor returns the instructor behind p or a Forbidden error
func requireInstructor(p models.Principal) (*models.Instructor, error) {
	if i, ok := models.IsInstructor(p); ok {
		return i, nil
	}
	return nil, apperrors.NewForbiddenError("Only instructors can perform this action")
}

// selfOrAdmin allows a principal to read data about themselves, admins read anything
func selfOrAdmin(p models.Principal, role models.Role, id int64) error {
	if models.IsAdmin(p) || (p.Role() == role && p.PrincipalID() == id) {
		return nil
	}
	return apperrors.NewForbiddenError("You can only access your own data")
}

// required returns a validation error naming the first blank field
func required(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return apperrors.NewValidationError(fields[i] + " is required")
		}
	}
	return nil
}

// visibleCourse loads a course and hides drafts from everyone but their owner and admins
func visibleCourse(ctx context.Context, courseRepo repositories.ICourseRepository, courseID int64, p models.Principal) (*models.Course, error) {
	course, err := courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !appauth.CanViewCourse(course, p) {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

// requireEnrolled fails with ErrNotParticipant unless the student is enrolled in the course
func requireEnrolled(ctx context.Context, enrollmentRepo repositories.IEnrollmentRepository, studentID, courseID int64) error {
	enrolled, err := enrollmentRepo.Exists(ctx, studentID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return apperrors.ErrNotParticipant
	}
	return nil
}
