// Package errors provides custom error types for the OceanLK API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Pending change errors.
var (
	ErrChangeNotFound     = &AppError{Code: "CHANGE_NOT_FOUND", Message: "Pending change not found", StatusCode: http.StatusNotFound}
	ErrChangeNotPending   = &AppError{Code: "CHANGE_NOT_PENDING", Message: "Change has already been reviewed", StatusCode: http.StatusConflict}
	ErrEmptyReviewComment = &AppError{Code: "EMPTY_REVIEW_COMMENT", Message: "Rejection requires a review comment", StatusCode: http.StatusBadRequest}
	ErrUnknownEntityType  = &AppError{Code: "UNKNOWN_ENTITY_TYPE", Message: "Unsupported entity type for this change", StatusCode: http.StatusBadRequest}
	ErrMalformedSnapshot  = &AppError{Code: "MALFORMED_SNAPSHOT", Message: "Change snapshot is not valid JSON", StatusCode: http.StatusUnprocessableEntity}
)

// Content entity errors.
var (
	ErrCompanyNotFound    = &AppError{Code: "COMPANY_NOT_FOUND", Message: "Company not found", StatusCode: http.StatusNotFound}
	ErrJobNotFound        = &AppError{Code: "JOB_NOT_FOUND", Message: "Job posting not found", StatusCode: http.StatusNotFound}
	ErrMediaNotFound      = &AppError{Code: "MEDIA_NOT_FOUND", Message: "Media asset not found", StatusCode: http.StatusNotFound}
	ErrLeadershipNotFound = &AppError{Code: "LEADERSHIP_NOT_FOUND", Message: "Leadership profile not found", StatusCode: http.StatusNotFound}
	ErrEventNotFound      = &AppError{Code: "EVENT_NOT_FOUND", Message: "Event not found", StatusCode: http.StatusNotFound}
	ErrStatisticNotFound  = &AppError{Code: "STATISTIC_NOT_FOUND", Message: "Statistic not found", StatusCode: http.StatusNotFound}
)
