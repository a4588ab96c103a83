package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/rsmmonaem/voter-talika/pkg/errors"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}

// writeAppError maps err to its HTTP status. Only AppError messages reach
// the client; anything else is reported as a generic failure.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, apperrors.GetStatusCode(err), errorResponse{Error: appErr.Message, Details: appErr.Details})
}
