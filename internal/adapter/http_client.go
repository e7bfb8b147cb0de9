package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ametelin/localtodo/internal/config"
	"github.com/ametelin/localtodo/models"
)

// httpRemoteAPI is the resty-backed implementation of [RemoteAPI] against the
// reference backend's JSON API.
type httpRemoteAPI struct {
	client *resty.Client
}

// NewHTTPRemoteAPI constructs a [RemoteAPI] for the given remote settings.
// Zero-value settings fall back to localhost defaults.
func NewHTTPRemoteAPI(cfg config.ClientRemote) RemoteAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &httpRemoteAPI{client: cli}
}

func (h *httpRemoteAPI) Create(ctx context.Context, req models.CreateTodoRequest) (string, error) {
	resp, err := h.jsonRequest(ctx).
		SetBody(req).
		Post("/api/todos")
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var created models.Todo
	if err = json.Unmarshal(resp.Body(), &created); err != nil {
		return "", fmt.Errorf("decode create response: %w", err)
	}
	return created.ID, nil
}

func (h *httpRemoteAPI) Update(ctx context.Context, id string, change models.TodoChange) error {
	resp, err := h.jsonRequest(ctx).
		SetBody(change).
		Patch("/api/todos/" + id)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteAPI) Toggle(ctx context.Context, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Post("/api/todos/" + id + "/toggle")
	if err != nil {
		return fmt.Errorf("toggle request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteAPI) Delete(ctx context.Context, id string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Delete("/api/todos/" + id)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteAPI) BatchToggle(ctx context.Context, ids []string, completed bool) error {
	resp, err := h.jsonRequest(ctx).
		SetBody(models.BatchToggleRequest{IDs: ids, Completed: completed}).
		Post("/api/todos/batch/toggle")
	if err != nil {
		return fmt.Errorf("batch toggle request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteAPI) BatchDelete(ctx context.Context, ids []string) error {
	resp, err := h.jsonRequest(ctx).
		SetBody(models.BatchDeleteRequest{IDs: ids}).
		Post("/api/todos/batch/delete")
	if err != nil {
		return fmt.Errorf("batch delete request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteAPI) ClearCompleted(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Post("/api/todos/clear-completed")
	if err != nil {
		return fmt.Errorf("clear completed request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpRemoteAPI) List(ctx context.Context) ([]models.Todo, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/todos")
	if err != nil {
		return nil, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var todos []models.Todo
	if err = json.Unmarshal(resp.Body(), &todos); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return todos, nil
}

func (h *httpRemoteAPI) jsonRequest(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
}
