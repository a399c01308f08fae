package handler

import (
	"encoding/json"
	"net/http"

	"pdf-upload-form/internal/uploadform"
	apperrors "pdf-upload-form/pkg/errors"
)

type contextKey string

const (
	sessionIDContextKey contextKey = "session_id"
	formContextKey      contextKey = "form"
)

// GetFormFromContext extracts the session's upload form from request context
func GetFormFromContext(r *http.Request) (*uploadform.Form, bool) {
	form, ok := r.Context().Value(formContextKey).(*uploadform.Form)
	return form, ok
}

// GetSessionIDFromContext extracts the session ID from request context
func GetSessionIDFromContext(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(sessionIDContextKey).(string)
	return id, ok
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError writes err with the status its type maps to
func writeAppError(w http.ResponseWriter, err error) {
	writeError(w, apperrors.GetStatusCode(err), apperrors.UserMessage(err))
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}
