package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/todos", func(r chi.Router) {
		r.Get("/", h.listTodos)
		r.Post("/", h.createTodo)
		r.Post("/batch/toggle", h.batchToggle)
		r.Post("/batch/delete", h.batchDelete)
		r.Post("/clear-completed", h.clearCompleted)
		r.Get("/{id}", h.getTodo)
		r.Patch("/{id}", h.updateTodo)
		r.Delete("/{id}", h.deleteTodo)
		r.Post("/{id}/toggle", h.toggleTodo)
	})

	return router
}
