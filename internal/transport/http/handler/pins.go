package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/crystal-land-academy/api/internal/application/pin"
	"github.com/crystal-land-academy/api/internal/domain"
)

// PinHandler handles PIN generation and verification endpoints.
type PinHandler struct {
	svc pin.Service
}

func NewPinHandler(svc pin.Service) *PinHandler { return &PinHandler{svc: svc} }

// Generate issues a new PIN. The body is optional; when present it may name
// an email or phone delivery target.
func (h *PinHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GeneratePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.svc.Generate(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "PIN generated", map[string]interface{}{
		"pin":       p.Pin,
		"createdAt": p.CreatedAt,
		"expiresAt": p.ExpiresAt,
	})
}

// Verify validates a caller-supplied PIN. Business-rule failures are 400
// with the reason; only unexpected storage failures are 500.
func (h *PinHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.svc.Verify(r.Context(), req.Pin)
	if err != nil {
		httpError(w, err)
		return
	}
	if !res.IsValid {
		writeError(w, http.StatusBadRequest, res.Message)
		return
	}
	writeSuccess(w, http.StatusOK, "PIN is valid", res.Pin)
}
