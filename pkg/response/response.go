package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/aldisetiawan/go-user-address-api/pkg/apperrors"
	"github.com/aldisetiawan/go-user-address-api/pkg/pagination"
)

// SuccessEnvelope wraps every successful handler result.
type SuccessEnvelope[T any] struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message"`
	Data       T                `json:"data"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Timestamp  string           `json:"timestamp"`
}

// ErrorEnvelope is the normalized error payload.
type ErrorEnvelope struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"statusCode"`
	Errors     []apperrors.FieldError `json:"errors"`
	Timestamp  string                 `json:"timestamp"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// OK writes a 200 success envelope.
func OK[T any](c *gin.Context, data T, message string) {
	c.JSON(http.StatusOK, SuccessEnvelope[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

// Created writes a 201 success envelope.
func Created[T any](c *gin.Context, data T, message string) {
	c.JSON(http.StatusCreated, SuccessEnvelope[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

// Paginated writes a 200 success envelope with a pagination block.
func Paginated[T any](c *gin.Context, data []T, meta pagination.Meta, message string) {
	c.JSON(http.StatusOK, SuccessEnvelope[[]T]{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &meta,
		Timestamp:  now(),
	})
}

// NoContent writes an empty 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail writes an error envelope with the given status.
func Fail(c *gin.Context, status int, message string, fields []apperrors.FieldError) {
	if fields == nil {
		fields = []apperrors.FieldError{}
	}
	c.JSON(status, ErrorEnvelope{
		Success:    false,
		Message:    message,
		StatusCode: status,
		Errors:     fields,
		Timestamp:  now(),
	})
}

// AbortFail is Fail plus aborting the middleware chain.
func AbortFail(c *gin.Context, status int, message string, fields []apperrors.FieldError) {
	Fail(c, status, message, fields)
	c.Abort()
}

// FromError translates a service error into the error envelope. Typed
// apperrors keep their status and field errors; anything else collapses to a
// generic 500 so internals stay hidden from clients.
func FromError(c *gin.Context, logger *logrus.Logger, err error) {
	if ae, ok := apperrors.As(err); ok {
		Fail(c, ae.StatusCode, ae.Message, ae.Errors)
		return
	}
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("unhandled error")
	}
	Fail(c, http.StatusInternalServerError, "internal server error", nil)
}
