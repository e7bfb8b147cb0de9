package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/internal/store"
	"github.com/ametelin/localtodo/models"
)

// fakeTodoRepository is an in-memory [store.TodoRepository] used to exercise
// the HTTP surface without a database.
type fakeTodoRepository struct {
	todos map[string]models.Todo
	order []string
}

func newFakeRepo() *fakeTodoRepository {
	return &fakeTodoRepository{todos: make(map[string]models.Todo)}
}

func (f *fakeTodoRepository) CreateTodo(_ context.Context, todo models.Todo) error {
	if _, exists := f.todos[todo.ID]; exists {
		return store.ErrTodoAlreadyExists
	}
	f.todos[todo.ID] = todo
	f.order = append(f.order, todo.ID)
	return nil
}

func (f *fakeTodoRepository) GetTodo(_ context.Context, id string) (models.Todo, error) {
	todo, ok := f.todos[id]
	if !ok {
		return models.Todo{}, store.ErrTodoNotFound
	}
	return todo, nil
}

func (f *fakeTodoRepository) ListTodos(_ context.Context, filter models.TodoFilter) ([]models.Todo, error) {
	all := make([]models.Todo, 0, len(f.order))
	for _, id := range f.order {
		all = append(all, f.todos[id])
	}
	return filter.Apply(all), nil
}

func (f *fakeTodoRepository) UpdateTodo(_ context.Context, id string, change models.TodoChange, now time.Time) (models.Todo, error) {
	todo, ok := f.todos[id]
	if !ok {
		return models.Todo{}, store.ErrTodoNotFound
	}
	change.Apply(&todo, now)
	todo.UpdatedAt = now
	f.todos[id] = todo
	return todo, nil
}

func (f *fakeTodoRepository) ToggleTodo(ctx context.Context, id string, now time.Time) (models.Todo, error) {
	todo, ok := f.todos[id]
	if !ok {
		return models.Todo{}, store.ErrTodoNotFound
	}
	completed := !todo.Completed
	change := models.TodoChange{Completed: &completed}
	return f.UpdateTodo(ctx, id, change, now)
}

func (f *fakeTodoRepository) DeleteTodo(_ context.Context, id string) error {
	delete(f.todos, id)
	return nil
}

func (f *fakeTodoRepository) BatchToggle(ctx context.Context, ids []string, completed bool, now time.Time) (int64, error) {
	var affected int64
	for _, id := range ids {
		if _, ok := f.todos[id]; !ok {
			continue
		}
		c := completed
		if _, err := f.UpdateTodo(ctx, id, models.TodoChange{Completed: &c}, now); err != nil {
			return affected, err
		}
		affected++
	}
	return affected, nil
}

func (f *fakeTodoRepository) BatchDelete(_ context.Context, ids []string) (int64, error) {
	var removed int64
	for _, id := range ids {
		if _, ok := f.todos[id]; ok {
			delete(f.todos, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeTodoRepository) ClearCompleted(_ context.Context) (int64, error) {
	var cleared int64
	for id, todo := range f.todos {
		if todo.Completed {
			delete(f.todos, id)
			cleared++
		}
	}
	return cleared, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeTodoRepository) {
	t.Helper()
	repo := newFakeRepo()
	handler := NewHandler(repo, logger.Nop())
	srv := httptest.NewServer(handler.Init())
	t.Cleanup(srv.Close)
	return srv, repo
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeTodo(t *testing.T, resp *http.Response) models.Todo {
	t.Helper()
	defer resp.Body.Close()
	var todo models.Todo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&todo))
	return todo
}

func TestCreateTodo(t *testing.T) {
	srv, repo := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/todos", models.CreateTodoRequest{Title: "buy milk"})

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	todo := decodeTodo(t, resp)
	assert.Equal(t, "buy milk", todo.Title)
	assert.Equal(t, models.PriorityMedium, todo.Priority)
	assert.False(t, models.IsLocalID(todo.ID))
	assert.Len(t, repo.todos, 1)
}

func TestCreateTodo_MissingTitle(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/todos", models.CreateTodoRequest{})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, "title is required", errResp.Error)
}

func TestCreateTodo_InvalidPriority(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/todos", map[string]string{
		"title":    "x",
		"priority": "urgent",
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetTodo_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/todos/remote-missing", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateTodo(t *testing.T) {
	srv, _ := newTestServer(t)
	created := decodeTodo(t, doJSON(t, http.MethodPost, srv.URL+"/api/todos", models.CreateTodoRequest{Title: "draft"}))

	resp := doJSON(t, http.MethodPatch, srv.URL+"/api/todos/"+created.ID, map[string]string{"title": "final"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeTodo(t, resp)
	assert.Equal(t, "final", updated.Title)
}

func TestUpdateTodo_EmptyChange(t *testing.T) {
	srv, _ := newTestServer(t)
	created := decodeTodo(t, doJSON(t, http.MethodPost, srv.URL+"/api/todos", models.CreateTodoRequest{Title: "draft"}))

	resp := doJSON(t, http.MethodPatch, srv.URL+"/api/todos/"+created.ID, map[string]string{})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateTodo_NotFound(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPatch, srv.URL+"/api/todos/remote-missing", map[string]string{"title": "x"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestToggleTodo(t *testing.T) {
	srv, _ := newTestServer(t)
	created := decodeTodo(t, doJSON(t, http.MethodPost, srv.URL+"/api/todos", models.CreateTodoRequest{Title: "task"}))

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/todos/"+created.ID+"/toggle", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	toggled := decodeTodo(t, resp)
	assert.True(t, toggled.Completed)
	require.NotNil(t, toggled.CompletedAt)
}

func TestDeleteTodo_AbsentIsNoError(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodDelete, srv.URL+"/api/todos/remote-missing", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestListTodos_FilterFromQuery(t *testing.T) {
	srv, _ := newTestServer(t)
	decodeTodo(t, doJSON(t, http.MethodPost, srv.URL+"/api/todos", models.CreateTodoRequest{Title: "groceries", Priority: models.PriorityHigh}))
	decodeTodo(t, doJSON(t, http.MethodPost, srv.URL+"/api/todos", models.CreateTodoRequest{Title: "laundry"}))

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/todos?priority=high", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var todos []models.Todo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&todos))
	require.Len(t, todos, 1)
	assert.Equal(t, "groceries", todos[0].Title)
}

func TestListTodos_InvalidQueryParam(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/todos?completed=maybe", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBatchToggle(t *testing.T) {
	srv, _ := newTestServer(t)
	a := decodeTodo(t, doJSON(t, http.MethodPost, srv.URL+"/api/todos", models.CreateTodoRequest{Title: "a"}))
	b := decodeTodo(t, doJSON(t, http.MethodPost, srv.URL+"/api/todos", models.CreateTodoRequest{Title: "b"}))

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/todos/batch/toggle", models.BatchToggleRequest{
		IDs:       []string{a.ID, b.ID, "remote-missing"},
		Completed: true,
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(2), body["affected"])
}

func TestBatchDelete_EmptyIDs(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/todos/batch/delete", models.BatchDeleteRequest{})
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClearCompleted(t *testing.T) {
	srv, _ := newTestServer(t)
	decodeTodo(t, doJSON(t, http.MethodPost, srv.URL+"/api/todos", models.CreateTodoRequest{Title: "done", Completed: true}))
	decodeTodo(t, doJSON(t, http.MethodPost, srv.URL+"/api/todos", models.CreateTodoRequest{Title: "open"}))

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/todos/clear-completed", nil)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]int64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(1), body["cleared"])
}

func TestTraceIDHeaderEchoed(t *testing.T) {
	srv, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/todos", nil)
	require.NoError(t, err)
	req.Header.Set("X-Trace-ID", "trace-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "trace-123", resp.Header.Get("X-Trace-ID"))
}
