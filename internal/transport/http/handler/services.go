package handler

import (
	"net/http"
	"time"

	"github.com/harmonyhub/portal-api/internal/application/catalog"
	"github.com/harmonyhub/portal-api/internal/domain"
)

// CatalogHandler serves the service catalog.
type CatalogHandler struct {
	svc catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	data := h.svc.Catalog(r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, struct {
		Success   bool           `json:"success"`
		Data      domain.Catalog `json:"data"`
		Timestamp string         `json:"timestamp"`
	}{Success: true, Data: data, Timestamp: time.Now().UTC().Format(time.RFC3339)})
}
