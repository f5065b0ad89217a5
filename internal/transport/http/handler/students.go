package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crystal-land-academy/api/internal/application/student"
	"github.com/crystal-land-academy/api/internal/domain"
	"github.com/crystal-land-academy/api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
)

// StudentHandler handles student listing and comment endpoints.
type StudentHandler struct {
	svc student.Service
}

func NewStudentHandler(svc student.Service) *StudentHandler { return &StudentHandler{svc: svc} }

func (h *StudentHandler) ListByTeacherAndClass(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	students, err := h.svc.ListByTeacherAndClass(
		r.Context(),
		studentQuery(r),
		chi.URLParam(r, "section"),
		chi.URLParam(r, "className"),
		chi.URLParam(r, "subclass"),
	)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, "students fetched", students)
}

func (h *StudentHandler) PostComment(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ClaimsFromContext(r.Context()); !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.PostCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	st, err := h.svc.PostComment(r.Context(), studentQuery(r), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, "comment added", st)
}

func studentQuery(r *http.Request) domain.StudentQuery {
	q := r.URL.Query()
	return domain.StudentQuery{
		TeacherID:      q.Get("teacherId"),
		AcademicYearID: q.Get("academicYearId"),
		AcademicTermID: q.Get("academicTermId"),
	}
}
