package command

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametelin/localtodo/internal/logger"
)

func newTestRegistry() *Registry {
	return NewRegistry(logger.Nop())
}

func TestRegistry_Execute_UnknownCommand(t *testing.T) {
	reg := newTestRegistry()
	reg.Register(Command{Name: "todo-create", Handler: func(ctx context.Context, in Input) Result {
		return Ok(nil)
	}})
	reg.Register(Command{Name: "todo-list", Handler: func(ctx context.Context, in Input) Result {
		return Ok(nil)
	}})

	result := reg.Execute(context.Background(), "nonexistent-command", Input{})

	require.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Equal(t, CodeCommandNotFound, result.Error.Code)
	assert.Contains(t, result.Error.Suggestion, "todo-create")
	assert.Contains(t, result.Error.Suggestion, "todo-list")
}

func TestRegistry_Execute_Success(t *testing.T) {
	reg := newTestRegistry()
	reg.Register(Command{
		Name: "echo",
		Parameters: []Parameter{
			{Name: "message", Type: TypeString, Required: true},
		},
		Handler: func(ctx context.Context, in Input) Result {
			return Ok(in.String("message", ""))
		},
	})

	result := reg.Execute(context.Background(), "echo", Input{"message": "hello"})

	require.True(t, result.Success)
	assert.Equal(t, "hello", result.Data)
	require.NotNil(t, result.Metadata)
	assert.GreaterOrEqual(t, result.Metadata.ExecutionTimeMs, int64(0))
	assert.NotEmpty(t, result.Metadata.Timestamp)
}

func TestRegistry_Execute_ValidationBeforeHandler(t *testing.T) {
	reg := newTestRegistry()
	called := false
	reg.Register(Command{
		Name: "todo-create",
		Parameters: []Parameter{
			{Name: "title", Type: TypeString, Required: true},
			{Name: "priority", Type: TypeString, Enum: []string{"low", "medium", "high"}},
		},
		Handler: func(ctx context.Context, in Input) Result {
			called = true
			return Ok(nil)
		},
	})

	tests := []struct {
		name  string
		input Input
	}{
		{"missing required", Input{}},
		{"wrong type", Input{"title": 42}},
		{"enum violation", Input{"title": "x", "priority": "urgent"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := reg.Execute(context.Background(), "todo-create", tc.input)
			require.False(t, result.Success)
			assert.Equal(t, CodeValidationError, result.Error.Code)
			assert.False(t, called)
		})
	}
}

func TestRegistry_Execute_RecoversPanic(t *testing.T) {
	reg := newTestRegistry()
	reg.Register(Command{
		Name: "explode",
		Handler: func(ctx context.Context, in Input) Result {
			panic("boom")
		},
	})

	result := reg.Execute(context.Background(), "explode", Input{})

	require.False(t, result.Success)
	require.NotNil(t, result.Error)
	assert.Equal(t, CodeExecutionError, result.Error.Code)
	assert.Contains(t, result.Error.Message, "boom")
	require.NotNil(t, result.Metadata)
}

func TestRegistry_Execute_NilInput(t *testing.T) {
	reg := newTestRegistry()
	reg.Register(Command{
		Name: "noop",
		Handler: func(ctx context.Context, in Input) Result {
			require.NotNil(t, in)
			return Ok("done")
		},
	})

	result := reg.Execute(context.Background(), "noop", nil)
	require.True(t, result.Success)
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := newTestRegistry()
	for _, name := range []string{"todo-update", "todo-create", "todo-delete"} {
		reg.Register(Command{Name: name, Handler: func(ctx context.Context, in Input) Result {
			return Ok(nil)
		}})
	}

	assert.Equal(t, []string{"todo-create", "todo-delete", "todo-update"}, reg.List())
	assert.True(t, reg.Has("todo-create"))
	assert.False(t, reg.Has("todo-archive"))
}

func TestResult_JSONShape(t *testing.T) {
	success := Ok(map[string]any{"id": "remote-1"})
	success.Metadata = &Metadata{ExecutionTimeMs: 12}

	raw, err := json.Marshal(success)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": true,
		"data": {"id": "remote-1"},
		"metadata": {"executionTimeMs": 12}
	}`, string(raw))

	failure := Fail(NotFoundError("Todo", "remote-404"))
	raw, err = json.Marshal(failure)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errObj["code"])
	assert.Equal(t, false, errObj["retryable"])
	assert.Contains(t, errObj["message"], "remote-404")
}

func TestExecutionError_WrapsCause(t *testing.T) {
	err := ExecutionError(errors.New("remote unreachable"))
	assert.Equal(t, CodeExecutionError, err.Code)
	assert.Equal(t, "EXECUTION_ERROR: remote unreachable", err.Error())
}

func TestValidateInput_OptionalAbsentOK(t *testing.T) {
	params := []Parameter{
		{Name: "limit", Type: TypeNumber},
		{Name: "ids", Type: TypeArray},
	}
	assert.Nil(t, validateInput(params, map[string]any{}))
	assert.Nil(t, validateInput(params, map[string]any{"limit": float64(10), "ids": []any{"a"}}))
	assert.NotNil(t, validateInput(params, map[string]any{"limit": "ten"}))
}
