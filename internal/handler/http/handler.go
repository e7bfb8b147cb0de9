package http

import (
	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/internal/store"
)

// Handler exposes the reference backend's todo API over HTTP.
type Handler struct {
	todos store.TodoRepository

	logger *logger.Logger
}

// NewHandler constructs a [Handler] over the given repository.
func NewHandler(todos store.TodoRepository, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		todos:  todos,
		logger: logger,
	}
}
