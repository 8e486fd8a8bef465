package response

import (
	"errors"
	"net/http"

	"turn_queue/internal/apperr"

	"github.com/gin-gonic/gin"
)

// SuccessResponse представляет успешный ответ API
type SuccessResponse struct {
	Message string `json:"message" example:"OK"`
}

// ErrorResponse представляет ответ с ошибкой API
type ErrorResponse struct {
	// Machine readable code
	// example: WINDOW_BUSY
	Code string `json:"code"`

	// Human readable message
	// example: window is already taken by another operator
	Message string `json:"message"`

	// Optional details
	Details string `json:"details,omitempty"`

	// Set for INVALID_TRANSITION
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Status maps an error kind to its HTTP status.
func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.InvalidInput:
		return http.StatusBadRequest
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict, apperr.InvalidTransition, apperr.RaceLost:
		return http.StatusConflict
	case apperr.Forbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as an ErrorResponse. Internal failures hide their cause
// from the client; the request logger records it.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    apperr.CodeDBError,
			Message: "internal error",
		})
		return
	}

	body := ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		From:    appErr.From,
		To:      appErr.To,
	}
	c.JSON(Status(appErr.Kind), body)
}

// BadRequest writes a validation failure that never reached a service.
func BadRequest(c *gin.Context, code, message string, details error) {
	body := ErrorResponse{Code: code, Message: message}
	if details != nil {
		body.Details = details.Error()
	}
	c.JSON(http.StatusBadRequest, body)
}
