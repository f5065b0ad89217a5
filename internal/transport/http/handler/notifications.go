package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crystal-land-academy/api/internal/application/notification"
	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/crystal-land-academy/api/internal/transport/http/middleware"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	svc notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.CreateNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	n, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "notification created", n)
}

// List returns the caller's unexpired notifications, newest first. The
// caller's identity comes from the bearer claims, not the query string.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var status *domain.NotificationStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.NotificationStatus(s)
		status = &st
	}
	views, err := h.svc.List(r.Context(), claims.UserID, status)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "notifications fetched", views)
}
