package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametelin/localtodo/internal/config"
	"github.com/ametelin/localtodo/models"
)

func newTestRemoteAPI(serverURL string) RemoteAPI {
	return NewHTTPRemoteAPI(config.ClientRemote{
		BaseURL:        serverURL,
		RequestTimeout: 5 * time.Second,
	})
}

func TestCreate_ReturnsRemoteID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/todos", r.URL.Path)

		var req models.CreateTodoRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "buy milk", req.Title)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Todo{
			ID:       "remote-abc",
			Title:    req.Title,
			Priority: models.PriorityMedium,
		})
	}))
	defer srv.Close()

	api := newTestRemoteAPI(srv.URL)
	id, err := api.Create(context.Background(), models.CreateTodoRequest{Title: "buy milk"})

	require.NoError(t, err)
	assert.Equal(t, "remote-abc", id)
}

func TestCreate_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("title is required"))
	}))
	defer srv.Close()

	api := newTestRemoteAPI(srv.URL)
	_, err := api.Create(context.Background(), models.CreateTodoRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "title is required")
}

func TestUpdate_SendsPatchWithChange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/todos/remote-1", r.URL.Path)

		var change models.TodoChange
		require.NoError(t, json.NewDecoder(r.Body).Decode(&change))
		require.NotNil(t, change.Title)
		assert.Equal(t, "renamed", *change.Title)
		assert.Nil(t, change.Completed)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	api := newTestRemoteAPI(srv.URL)
	title := "renamed"
	err := api.Update(context.Background(), "remote-1", models.TodoChange{Title: &title})

	require.NoError(t, err)
}

func TestUpdate_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("todo not found"))
	}))
	defer srv.Close()

	api := newTestRemoteAPI(srv.URL)
	title := "renamed"
	err := api.Update(context.Background(), "remote-missing", models.TodoChange{Title: &title})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleAndDelete_Paths(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	api := newTestRemoteAPI(srv.URL)

	require.NoError(t, api.Toggle(context.Background(), "remote-1"))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/todos/remote-1/toggle", gotPath)

	require.NoError(t, api.Delete(context.Background(), "remote-1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/api/todos/remote-1", gotPath)

	require.NoError(t, api.ClearCompleted(context.Background()))
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/todos/clear-completed", gotPath)
}

func TestBatchToggle_Body(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/todos/batch/toggle", r.URL.Path)

		var req models.BatchToggleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"remote-1", "remote-2"}, req.IDs)
		assert.True(t, req.Completed)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	api := newTestRemoteAPI(srv.URL)
	err := api.BatchToggle(context.Background(), []string{"remote-1", "remote-2"}, true)

	require.NoError(t, err)
}

func TestBatchDelete_Body(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/todos/batch/delete", r.URL.Path)

		var req models.BatchDeleteRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"remote-1"}, req.IDs)

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	api := newTestRemoteAPI(srv.URL)
	require.NoError(t, api.BatchDelete(context.Background(), []string{"remote-1"}))
}

func TestList_DecodesTodos(t *testing.T) {
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/todos", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]models.Todo{
			{ID: "remote-1", Title: "buy milk", Priority: models.PriorityMedium, CreatedAt: now, UpdatedAt: now},
		})
	}))
	defer srv.Close()

	api := newTestRemoteAPI(srv.URL)
	todos, err := api.List(context.Background())

	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "remote-1", todos[0].ID)
	assert.Equal(t, now, todos[0].CreatedAt.UTC())
}

func TestList_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	api := newTestRemoteAPI(srv.URL)
	_, err := api.List(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
}
