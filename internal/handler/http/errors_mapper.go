package http

import (
	"errors"
	"net/http"

	"github.com/ametelin/localtodo/internal/store"
)

var errorStatusMap = map[error]int{
	store.ErrTodoNotFound:      http.StatusNotFound,
	store.ErrTodoAlreadyExists: http.StatusConflict,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
