package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametelin/localtodo/internal/command"
	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/internal/store"
	"github.com/ametelin/localtodo/models"
)

func newCommandFixture(t *testing.T) (*command.Registry, TodoService) {
	t.Helper()
	localStore := store.NewLocalStore(store.NewMemoryKV(), logger.Nop())
	todos := NewTodoService(localStore, logger.Nop())
	registry := command.NewRegistry(logger.Nop())
	RegisterTodoCommands(registry, todos)
	return registry, todos
}

func mustCreateViaCommand(t *testing.T, registry *command.Registry, title string) models.Todo {
	t.Helper()
	result := registry.Execute(context.Background(), "todo-create", command.Input{"title": title})
	require.True(t, result.Success)
	todo, ok := result.Data.(models.Todo)
	require.True(t, ok)
	return todo
}

func TestTodoCreateCommand(t *testing.T) {
	registry, _ := newCommandFixture(t)

	result := registry.Execute(context.Background(), "todo-create", command.Input{
		"title":    "buy milk",
		"priority": "high",
	})

	require.True(t, result.Success)
	todo := result.Data.(models.Todo)
	assert.Equal(t, "buy milk", todo.Title)
	assert.Equal(t, models.PriorityHigh, todo.Priority)
	assert.True(t, models.IsLocalID(todo.ID))
}

func TestTodoCreateCommand_EmptyTitle(t *testing.T) {
	registry, _ := newCommandFixture(t)

	result := registry.Execute(context.Background(), "todo-create", command.Input{"title": ""})

	require.False(t, result.Success)
	assert.Equal(t, command.CodeValidationError, result.Error.Code)
}

func TestTodoCreateCommand_BadPriorityRejectedBySchema(t *testing.T) {
	registry, _ := newCommandFixture(t)

	result := registry.Execute(context.Background(), "todo-create", command.Input{
		"title":    "x",
		"priority": "urgent",
	})

	require.False(t, result.Success)
	assert.Equal(t, command.CodeValidationError, result.Error.Code)
}

func TestTodoListCommand_FilterAndCount(t *testing.T) {
	registry, _ := newCommandFixture(t)
	mustCreateViaCommand(t, registry, "alpha")
	created := mustCreateViaCommand(t, registry, "beta")

	toggle := registry.Execute(context.Background(), "todo-toggle", command.Input{"id": created.ID})
	require.True(t, toggle.Success)

	result := registry.Execute(context.Background(), "todo-list", command.Input{"completed": true})

	require.True(t, result.Success)
	data := result.Data.(map[string]any)
	assert.Equal(t, 1, data["count"])
	todos := data["todos"].([]models.Todo)
	require.Len(t, todos, 1)
	assert.Equal(t, "beta", todos[0].Title)
}

func TestTodoGetCommand_NotFound(t *testing.T) {
	registry, _ := newCommandFixture(t)

	result := registry.Execute(context.Background(), "todo-get", command.Input{"id": "remote-missing"})

	require.False(t, result.Success)
	assert.Equal(t, command.CodeNotFound, result.Error.Code)
	assert.Contains(t, result.Error.Message, "remote-missing")
}

func TestTodoUpdateCommand(t *testing.T) {
	registry, _ := newCommandFixture(t)
	created := mustCreateViaCommand(t, registry, "draft")

	result := registry.Execute(context.Background(), "todo-update", command.Input{
		"id":    created.ID,
		"title": "final",
	})

	require.True(t, result.Success)
	todo := result.Data.(models.Todo)
	assert.Equal(t, "final", todo.Title)
}

func TestTodoUpdateCommand_NoChanges(t *testing.T) {
	registry, _ := newCommandFixture(t)
	created := mustCreateViaCommand(t, registry, "draft")

	result := registry.Execute(context.Background(), "todo-update", command.Input{"id": created.ID})

	require.False(t, result.Success)
	assert.Equal(t, command.CodeNoChanges, result.Error.Code)
}

func TestTodoUpdateCommand_UnknownIDFailsFast(t *testing.T) {
	registry, todos := newCommandFixture(t)

	result := registry.Execute(context.Background(), "todo-update", command.Input{
		"id":    "remote-missing",
		"title": "anything",
	})

	require.False(t, result.Success)
	assert.Equal(t, command.CodeNotFound, result.Error.Code)

	// the fast failure must not leave a pending operation behind
	pending, err := todos.PendingCount()
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestTodoDeleteCommand(t *testing.T) {
	registry, _ := newCommandFixture(t)
	created := mustCreateViaCommand(t, registry, "temp")

	result := registry.Execute(context.Background(), "todo-delete", command.Input{"id": created.ID})
	require.True(t, result.Success)

	result = registry.Execute(context.Background(), "todo-delete", command.Input{"id": created.ID})
	require.False(t, result.Success)
	assert.Equal(t, command.CodeNotFound, result.Error.Code)
}

func TestTodoClearCommand(t *testing.T) {
	registry, _ := newCommandFixture(t)
	created := mustCreateViaCommand(t, registry, "done soon")
	mustCreateViaCommand(t, registry, "keep me")

	toggle := registry.Execute(context.Background(), "todo-toggle", command.Input{"id": created.ID})
	require.True(t, toggle.Success)

	result := registry.Execute(context.Background(), "todo-clear", nil)

	require.True(t, result.Success)
	assert.Equal(t, map[string]any{"cleared": 1}, result.Data)
}

func TestTodoStatsCommand(t *testing.T) {
	registry, _ := newCommandFixture(t)
	mustCreateViaCommand(t, registry, "a")
	created := mustCreateViaCommand(t, registry, "b")

	toggle := registry.Execute(context.Background(), "todo-toggle", command.Input{"id": created.ID})
	require.True(t, toggle.Success)

	result := registry.Execute(context.Background(), "todo-stats", nil)

	require.True(t, result.Success)
	stats := result.Data.(models.TodoStats)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 1, stats.Pending)
}

func TestTodoBatchCommands(t *testing.T) {
	registry, _ := newCommandFixture(t)
	a := mustCreateViaCommand(t, registry, "a")
	b := mustCreateViaCommand(t, registry, "b")

	result := registry.Execute(context.Background(), "todo-batch-toggle", command.Input{
		"ids":       []any{a.ID, b.ID},
		"completed": true,
	})
	require.True(t, result.Success)
	assert.Equal(t, map[string]any{"affected": 2}, result.Data)

	result = registry.Execute(context.Background(), "todo-batch-delete", command.Input{
		"ids": []any{a.ID},
	})
	require.True(t, result.Success)
	assert.Equal(t, map[string]any{"removed": 1}, result.Data)
}

func TestTodoBatchToggleCommand_EmptyIDs(t *testing.T) {
	registry, _ := newCommandFixture(t)

	result := registry.Execute(context.Background(), "todo-batch-toggle", command.Input{
		"ids":       []any{},
		"completed": true,
	})

	require.False(t, result.Success)
	assert.Equal(t, command.CodeValidationError, result.Error.Code)
}
