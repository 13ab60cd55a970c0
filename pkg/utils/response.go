package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"concierge-backend/internal/services"
	"concierge-backend/internal/store"
)

// JSON writes a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error maps service errors to HTTP responses. Validation failures carry
// their field map; unknown errors become opaque 500s.
func Error(w http.ResponseWriter, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		JSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, store.ErrNotFound):
		JSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		JSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
