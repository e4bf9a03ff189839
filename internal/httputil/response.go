// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/devdox-ai/devdox-api/internal/errors"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// SuccessResponse wraps every successful payload.
type SuccessResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Status  string `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success writes data wrapped in the success envelope.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, SuccessResponse{Status: statusSuccess, Data: data})
}

// Error writes an error envelope and aborts the handler chain.
func Error(c *gin.Context, statusCode int, code, message string, details any) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Status:  statusError,
		Code:    code,
		Message: message,
		Details: details,
	})
}

// HandleErrorGin maps domain errors to HTTP status codes and writes the error envelope.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var code, message string

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		code = "not_found"
		message = "The requested resource was not found"

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		code = "conflict"
		message = "A conflict occurred with existing data"

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		code = "invalid_input"
		message = err.Error()

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		code = "unauthorized"
		message = "Authentication is required"

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		code = "forbidden"
		message = "You don't have permission to access this resource"

	case apperrors.Is(err, apperrors.ErrUnavailable):
		statusCode = http.StatusServiceUnavailable
		code = "unavailable"
		message = "The service is temporarily unavailable"

	default:
		// Internal details never reach the client.
		statusCode = http.StatusInternalServerError
		code = "internal_error"
		message = "An internal error occurred"
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", code),
			slog.Any("error", err),
		)
	}

	Error(c, statusCode, code, message, nil)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
// Bodies rejected by http.MaxBytesReader are reported as 413.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "Request body too large", nil)
		return
	}

	Error(c, http.StatusBadRequest, "bad_request", err.Error(), nil)
}

// HandleValidationErrorGin writes a 400 Bad Request response carrying per-field details.
// details is typically the validation.Errors map produced by jellydator/validation.
func HandleValidationErrorGin(c *gin.Context, err error, details any, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	Error(c, http.StatusBadRequest, "validation_error", "Validation failed", details)
}
