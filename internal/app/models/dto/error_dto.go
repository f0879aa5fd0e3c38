package dto

import "time"

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	ErrorCodeUnauthenticated  ErrorCode = "AUTH_001"
	ErrorCodeForbidden        ErrorCode = "AUTH_002"
	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeConflict         ErrorCode = "RES_002"
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeTooManyRequests  ErrorCode = "SRV_002"
	ErrorCodeInternalServer   ErrorCode = "SRV_001"
)

// FieldError describes one invalid request field
type FieldError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"email must be a valid email address"`
}

// ErrorResponse is the error envelope. Msg is meant to be shown to users
// verbatim, Error carries the underlying detail.
type ErrorResponse struct {
	Msg       string       `json:"msg" example:"Course not found"`
	Error     string       `json:"error" example:"resource not found"`
	Code      ErrorCode    `json:"code" example:"RES_001"`
	Fields    []FieldError `json:"fields,omitempty"`
	Timestamp time.Time    `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorResponse creates an error envelope stamped with the current time
func NewErrorResponse(code ErrorCode, msg, detail string) *ErrorResponse {
	return &ErrorResponse{
		Msg:       msg,
		Error:     detail,
		Code:      code,
		Timestamp: time.Now().UTC(),
	}
}
