package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crystal-land-academy/api/internal/application/review"
	"github.com/go-chi/chi/v5"
)

// ReviewHandler handles teacher review lookups and profile picture uploads.
type ReviewHandler struct {
	svc review.Service
}

func NewReviewHandler(svc review.Service) *ReviewHandler { return &ReviewHandler{svc: svc} }

func (h *ReviewHandler) TeachersByClassLevel(w http.ResponseWriter, r *http.Request) {
	views, err := h.svc.TeachersByClassLevel(r.Context(), chi.URLParam(r, "classLevelId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "teachers fetched", views)
}

type uploadPictureRequest struct {
	Data string `json:"data"` // base64-encoded image
}

func (h *ReviewHandler) UploadProfilePicture(w http.ResponseWriter, r *http.Request) {
	var req uploadPictureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	url, err := h.svc.UploadProfilePicture(r.Context(), chi.URLParam(r, "id"), req.Data)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "profile picture uploaded", map[string]string{
		"profilePictureUrl": url,
	})
}

func (h *ReviewHandler) RemoveProfilePicture(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.RemoveProfilePicture(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "profile picture removed", nil)
}
