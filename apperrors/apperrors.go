package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an error that knows which HTTP status it maps to.
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	return e.Message
}

func New(statusCode int, message string) *Error {
	return &Error{Message: message, StatusCode: statusCode}
}

// Validation reports a bad or missing input field.
func Validation(field, message string) *Error {
	return &Error{
		Message:    fmt.Sprintf("%s: %s", field, message),
		StatusCode: http.StatusBadRequest,
	}
}

// StatusCode maps any error to an HTTP status, defaulting to 500.
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

var (
	ErrNotFound            = &Error{Message: "resource not found", StatusCode: http.StatusNotFound}
	ErrForbidden           = &Error{Message: "not authorized", StatusCode: http.StatusForbidden}
	ErrJobUnavailable      = &Error{Message: "job is no longer available", StatusCode: http.StatusConflict}
	ErrInvalidCoordinates  = &Error{Message: "invalid coordinates", StatusCode: http.StatusBadRequest}
	ErrNotAssigned         = &Error{Message: "job is not assigned to this worker", StatusCode: http.StatusForbidden}
	ErrJobNotActive        = &Error{Message: "job is no longer active", StatusCode: http.StatusBadRequest}
	ErrWorkerProfileAbsent = &Error{Message: "worker profile not found", StatusCode: http.StatusNotFound}
)
