package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the envelope for error payloads.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// WriteJSONResponse marshals data to the response writer with the given status.
func WriteJSONResponse(w http.ResponseWriter, _ *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// ErrorResponse writes a JSON error envelope with the given status and message.
func ErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSONResponse(w, r, status, Response{Success: false, Message: message})
}
