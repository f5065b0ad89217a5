package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crystal-land-academy/api/internal/application/session"
	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/crystal-land-academy/api/internal/transport/http/middleware"
)

// SessionHandler handles login.
type SessionHandler struct {
	svc session.Service
}

func NewSessionHandler(svc session.Service) *SessionHandler { return &SessionHandler{svc: svc} }

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	bearer, u, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "logged in", map[string]interface{}{
		"bearer": bearer,
		"user":   u,
	})
}

// Me returns the account behind the caller's bearer token.
func (h *SessionHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	u, err := h.svc.CurrentUser(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "current user", u)
}
