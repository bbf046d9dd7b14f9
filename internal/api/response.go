package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cloo-solutions/tutorai/internal/domain"
)

// Values of the "status" field in response bodies.
const (
	StatusOK      = "ok"
	StatusSuccess = "success"
	StatusError   = "error"
)

// ErrorResponse represents an error API response
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes an error JSON response
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Status: StatusError, Message: message})
}

// DomainErrorToHTTP maps domain errors to HTTP status codes
func DomainErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeValidation:
		return http.StatusBadRequest
	case domain.ErrCodeInvalidReference:
		return http.StatusBadRequest
	case domain.ErrCodeEmptySource:
		return http.StatusUnprocessableEntity
	case domain.ErrCodeDimensionMismatch:
		return http.StatusConflict
	case domain.ErrCodeModelUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the client-facing text for err.
func ErrorMessage(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}

// HandleError writes an appropriate error response based on the error type
func HandleError(w http.ResponseWriter, err error) {
	Error(w, DomainErrorToHTTP(err), ErrorMessage(err))
}
