package dto

import (
	"net/http"
	"time"
)

// ErrorResponse is the envelope for every non-2xx response
type ErrorResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Messages  map[string]string `json:"messages,omitempty"`
}

// NewErrorResponse fills Error with the status text for status
func NewErrorResponse(status int, message string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	}
}

// NewValidationErrorResponse reports per-field problems with status 400
func NewValidationErrorResponse(message string, fields map[string]string) ErrorResponse {
	resp := NewErrorResponse(http.StatusBadRequest, message)
	resp.Error = "Validation Error"
	resp.Messages = fields
	return resp
}
