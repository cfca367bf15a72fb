// File: internal/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"net/http"

	chatservice "github.com/wellpath/health-advisor/internal/services/chat"
)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch chatservice.TypeOf(err) {
	case chatservice.ErrTypeValidation:
		writeError(w, err.Error(), http.StatusBadRequest)
	case chatservice.ErrTypeNotFound:
		writeError(w, err.Error(), http.StatusNotFound)
	case chatservice.ErrTypeUnauthorized:
		writeError(w, err.Error(), http.StatusForbidden)
	default:
		writeError(w, "internal server error", http.StatusInternalServerError)
	}
}
