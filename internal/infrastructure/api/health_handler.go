package api

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Project   string `json:"project"`
}

type HealthHandler struct {
	projectID string
	now       func() time.Time
}

func NewHealthHandler(projectID string) *HealthHandler {
	return &HealthHandler{
		projectID: projectID,
		now:       time.Now,
	}
}

// HandleHealth GET /health. Never calls the model.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Project:   h.projectID,
	})
}
