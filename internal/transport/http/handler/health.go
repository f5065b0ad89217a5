package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HealthHandler answers liveness probes.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, "ok", map[string]string{
		"action": chi.URLParam(r, "action"),
	})
}
