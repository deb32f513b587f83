package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listCourses(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, paginate(w, r, p, h.fixtures.Courses))
}

func (h *Handler) getCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.fixtures.Course(chi.URLParam(r, "courseID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, course)
}

func (h *Handler) listAssignments(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	assignments, err := h.fixtures.CourseAssignments(chi.URLParam(r, "courseID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, paginate(w, r, p, assignments))
}

func (h *Handler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	p, err := h.parsePage(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	quizzes, err := h.fixtures.CourseQuizzes(chi.URLParam(r, "courseID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, paginate(w, r, p, quizzes))
}

func (h *Handler) getCustomColors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.fixtures.Colors())
}
