package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// FieldError is the per-field error shape carried inside error envelopes.
type FieldError struct {
	Field  string   `json:"field"`
	Errors []string `json:"errors"`
	Value  any      `json:"value"`
}

// AppError is a domain error that maps onto an HTTP status and the error
// envelope. Services return these; handlers translate via response.FromError.
type AppError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
}

// As unwraps err into an *AppError if it is one.
func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

func NotFound(entity string) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Message:    entity + " not found",
	}
}

func NotFoundMsg(msg string) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Message: msg}
}

func Conflict(msg string, fields ...FieldError) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Message: msg, Errors: fields}
}

func Unauthorized(msg string) *AppError {
	if msg == "" {
		msg = "unauthorized"
	}
	return &AppError{StatusCode: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *AppError {
	if msg == "" {
		msg = "forbidden: insufficient permissions"
	}
	return &AppError{StatusCode: http.StatusForbidden, Message: msg}
}

func BadRequest(msg string, fields ...FieldError) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Message: msg, Errors: fields}
}

func Internal(msg string) *AppError {
	if msg == "" {
		msg = "internal server error"
	}
	return &AppError{StatusCode: http.StatusInternalServerError, Message: msg}
}
