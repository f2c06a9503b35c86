package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/memoro/internal/models"
	"github.com/ternarybob/memoro/internal/services/llm"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a standard success JSON response.
func WriteSuccess(w http.ResponseWriter, message string) error {
	return WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// WriteServiceError maps domain errors to HTTP status codes.
func WriteServiceError(w http.ResponseWriter, err error) error {
	switch {
	case errors.Is(err, models.ErrMemoNotFound):
		return WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrCapabilityUnavailable):
		return WriteError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, models.ErrUnsupportedFileType):
		return WriteError(w, http.StatusBadRequest, err.Error())
	case llm.IsRateLimitError(err):
		return WriteError(w, http.StatusTooManyRequests, err.Error())
	default:
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return WriteError(w, http.StatusBadRequest, err.Error())
		}
		return WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// DecodeJSONBody decodes a JSON request body into v, rejecting unknown fields.
func DecodeJSONBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(v)
}
