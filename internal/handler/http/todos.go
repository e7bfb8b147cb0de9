package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/models"
)

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.createTodo").Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}
	if !req.Priority.Valid() {
		writeError(w, http.StatusBadRequest, "priority must be low, medium or high")
		return
	}

	now := time.Now().UTC()
	todo := models.Todo{
		ID:          models.NewRemoteID(),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Completed:   req.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if todo.Completed {
		at := now
		todo.CompletedAt = &at
	}

	if err := h.todos.CreateTodo(r.Context(), todo); err != nil {
		log.Err(err).Str("func", "*Handler.createTodo").Msg("error creating todo")
		writeError(w, statusFromError(err), "error creating todo")
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

func (h *Handler) getTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	todo, err := h.todos.GetTodo(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.getTodo").Str("todo_id", id).Msg("error getting todo")
		writeError(w, statusFromError(err), "todo not found")
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	todos, err := h.todos.ListTodos(r.Context(), filter)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listTodos").Msg("error listing todos")
		writeError(w, statusFromError(err), "error listing todos")
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	var change models.TodoChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		log.Err(err).Str("func", "*Handler.updateTodo").Msg("invalid JSON was passed")
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if change.Empty() {
		writeError(w, http.StatusBadRequest, "no fields provided to update")
		return
	}
	if change.Title != nil && *change.Title == "" {
		writeError(w, http.StatusBadRequest, "title must not be empty")
		return
	}
	if change.Priority != nil && !change.Priority.Valid() {
		writeError(w, http.StatusBadRequest, "priority must be low, medium or high")
		return
	}

	todo, err := h.todos.UpdateTodo(r.Context(), id, change, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateTodo").Str("todo_id", id).Msg("error updating todo")
		writeError(w, statusFromError(err), "error updating todo")
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) toggleTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	todo, err := h.todos.ToggleTodo(r.Context(), id, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*Handler.toggleTodo").Str("todo_id", id).Msg("error toggling todo")
		writeError(w, statusFromError(err), "error toggling todo")
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (h *Handler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	if err := h.todos.DeleteTodo(r.Context(), id); err != nil {
		log.Err(err).Str("func", "*Handler.deleteTodo").Str("todo_id", id).Msg("error deleting todo")
		writeError(w, statusFromError(err), "error deleting todo")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) batchToggle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.BatchToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids must not be empty")
		return
	}

	affected, err := h.todos.BatchToggle(r.Context(), req.IDs, req.Completed, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*Handler.batchToggle").Msg("error toggling todos")
		writeError(w, statusFromError(err), "error toggling todos")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"affected": affected})
}

func (h *Handler) batchDelete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.BatchDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "ids must not be empty")
		return
	}

	removed, err := h.todos.BatchDelete(r.Context(), req.IDs)
	if err != nil {
		log.Err(err).Str("func", "*Handler.batchDelete").Msg("error deleting todos")
		writeError(w, statusFromError(err), "error deleting todos")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

func (h *Handler) clearCompleted(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	cleared, err := h.todos.ClearCompleted(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.clearCompleted").Msg("error clearing completed todos")
		writeError(w, statusFromError(err), "error clearing completed todos")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"cleared": cleared})
}

func filterFromQuery(r *http.Request) (models.TodoFilter, error) {
	q := r.URL.Query()
	filter := models.TodoFilter{
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	if v := q.Get("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return models.TodoFilter{}, errInvalidQueryParam("completed")
		}
		filter.Completed = &completed
	}
	if v := q.Get("priority"); v != "" {
		priority := models.Priority(v)
		if !priority.Valid() {
			return models.TodoFilter{}, errInvalidQueryParam("priority")
		}
		filter.Priority = &priority
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return models.TodoFilter{}, errInvalidQueryParam("limit")
		}
		filter.Limit = &limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return models.TodoFilter{}, errInvalidQueryParam("offset")
		}
		filter.Offset = &offset
	}

	return filter, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
