package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/version", h.getVersion)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/courses", h.listCourses)
		r.Get("/courses/{courseID}", h.getCourse)
		r.Get("/courses/{courseID}/assignments", h.listAssignments)
		r.Get("/courses/{courseID}/quizzes", h.listQuizzes)
		r.Get("/users/self/colors", h.getCustomColors)
	})

	router.NotFound(notServed)
	router.MethodNotAllowed(notServed)

	return router
}
