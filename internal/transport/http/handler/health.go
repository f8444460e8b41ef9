package handler

import "net/http"

// HealthHandler answers the deployment platform's liveness probe.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusEnvelope{OK: true, Message: "pong"})
}
