package utils

import (
	"encoding/json"
	"net/http"

	"karigar/apperrors"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// RespondWithAppError maps a typed error to its HTTP status.
func RespondWithAppError(w http.ResponseWriter, err error) {
	RespondWithError(w, apperrors.StatusCode(err), err.Error())
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type M map[string]interface{}
