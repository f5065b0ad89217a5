package handler

import (
	"net/http"

	"github.com/crystal-land-academy/api/internal/application/academicyear"
)

// AcademicYearHandler handles academic year listing.
type AcademicYearHandler struct {
	svc academicyear.Service
}

func NewAcademicYearHandler(svc academicyear.Service) *AcademicYearHandler {
	return &AcademicYearHandler{svc: svc}
}

func (h *AcademicYearHandler) List(w http.ResponseWriter, r *http.Request) {
	years, err := h.svc.List(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "academic years fetched", years)
}
