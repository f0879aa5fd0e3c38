package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/coursehub/internal/app/models/dto"
	"github.com/yigit/coursehub/internal/pkg/apperrors"
	"github.com/yigit/coursehub/internal/pkg/logger"
)

// HandleAPIError maps an error onto the response envelope. It is the only
// place where error classes become status codes.
func HandleAPIError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors

	// Unauthenticated first: its cause may carry another class
	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthenticated, err, "Authentication required")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, err, "Permission denied")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, err, "Resource not found")
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusBadRequest, dto.ErrorCodeConflict, err, "Resource already exists")
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, err, "Validation failed")
	case errors.As(err, &validationErrs):
		resp := dto.NewErrorResponse(dto.ErrorCodeValidationFailed, "Validation failed", err.Error())
		resp.Fields = fieldErrors(validationErrs)
		c.JSON(http.StatusBadRequest, resp)
	default:
		logger.Error().Err(err).Str("method", c.Request.Method).Str("path", c.FullPath()).Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.ErrorCodeInternalServer, "Internal server error", err.Error()))
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, err error, fallback string) {
	msg, ok := apperrors.UserMessage(err)
	if !ok {
		msg = fallback
	}
	c.JSON(status, dto.NewErrorResponse(code, msg, err.Error()))
}

// NotFound answers unmatched routes with the error envelope
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeResourceNotFound, "Route not found", c.Request.Method+" "+c.Request.URL.Path))
}
