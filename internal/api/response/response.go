// Package response provides utilities for sending consistent HTTP responses.
// It includes helpers for JSON responses, standardized error responses and the
// mapping from application errors to status codes.
package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "github.com/ndewijer/Investment-Admin-Console/internal/errors"
	"github.com/ndewijer/Investment-Admin-Console/internal/validation"
)

// ErrorResponse represents a structured error response returned by the API.
// The Details field is optional and can contain additional context about the error.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// MessageResponse carries the success signal of a mutating operation
// together with the affected record.
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondJSON sends a JSON response with the given status code.
// Sets the Content-Type header to application/json and writes the status code.
// If data is nil, only the status code is sent (useful for 204 No Content).
// Logs encoding errors but does not fail the response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// RespondError sends a structured error response with the given status code.
// The message should be a user-friendly error description.
// The details parameter can be an error string, additional context, or nil.
//
// Example:
//
//	response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
//	response.RespondError(w, http.StatusNotFound, "resource not found", "")
func RespondError(w http.ResponseWriter, status int, message string, details interface{}) {
	response := ErrorResponse{
		Error:   message,
		Details: details,
	}
	RespondJSON(w, status, response)
}

// RespondAppError maps an application error to its status code and sends it.
// The response message is the matching sentinel's text; details carry the
// full wrapped error, or the field map for validation failures.
func RespondAppError(w http.ResponseWriter, err error) {
	status, sentinel := Classify(err)

	var details interface{} = err.Error()
	var verr *validation.Error
	if errors.As(err, &verr) {
		details = verr.Fields
	}

	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		log.Printf("request failed: %v", err)
	}

	RespondError(w, status, sentinel.Error(), details)
}

var classes = []struct {
	sentinel error
	status   int
}{
	{apperrors.ErrAuth, http.StatusUnauthorized},
	{apperrors.ErrNotAuthenticated, http.StatusUnauthorized},
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrValidation, http.StatusBadRequest},
	{apperrors.ErrConfirmationRequired, http.StatusBadRequest},
	{apperrors.ErrInvalidTransition, http.StatusConflict},
	{apperrors.ErrPersist, http.StatusBadGateway},
	{apperrors.ErrStoreUnavailable, http.StatusServiceUnavailable},
}

// Classify returns the status code and sentinel error for err. Errors that
// match no sentinel are internal server errors.
func Classify(err error) (int, error) {
	for _, c := range classes {
		if errors.Is(err, c.sentinel) {
			return c.status, c.sentinel
		}
	}
	return http.StatusInternalServerError, errors.New("internal server error")
}
