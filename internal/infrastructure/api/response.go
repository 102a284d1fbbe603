package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func sendJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store, max-age=0")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func sendError(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, statusCode, errorResponse{Error: message})
}

func sendErrorWithDetails(w http.ResponseWriter, message string, details any, statusCode int) {
	sendJSON(w, statusCode, errorResponse{Error: message, Details: details})
}
