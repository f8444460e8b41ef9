package handler

import (
	"net/http"

	"github.com/harmonyhub/portal-api/internal/application/intake"
)

// IntakeHandler handles the public appointment and contact forms.
type IntakeHandler struct {
	svc intake.Service
}

func NewIntakeHandler(svc intake.Service) *IntakeHandler {
	return &IntakeHandler{svc: svc}
}

func (h *IntakeHandler) Appointment(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Appointment(r.Context(), decodeBody(r)); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusEnvelope{OK: true})
}

func (h *IntakeHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Contact(r.Context(), decodeBody(r)); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusEnvelope{OK: true})
}
