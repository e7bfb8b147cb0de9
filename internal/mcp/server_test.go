package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ametelin/localtodo/internal/command"
	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/internal/service"
	"github.com/ametelin/localtodo/internal/store"
)

func newTestRegistry(t *testing.T) *command.Registry {
	t.Helper()
	localStore := store.NewLocalStore(store.NewMemoryKV(), logger.Nop())
	todos := service.NewTodoService(localStore, logger.Nop())
	registry := command.NewRegistry(logger.Nop())
	service.RegisterTodoCommands(registry, todos)
	return registry
}

func toolRequest(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestToolDefinition_SchemaFromParameters(t *testing.T) {
	registry := newTestRegistry(t)
	cmd, ok := registry.Get("todo-create")
	require.True(t, ok)

	def := toolDefinition(cmd)

	assert.Equal(t, "todo-create", def.Name)
	require.Contains(t, def.InputSchema.Properties, "title")
	require.Contains(t, def.InputSchema.Properties, "priority")
	assert.Contains(t, def.InputSchema.Required, "title")

	priority := def.InputSchema.Properties["priority"].(map[string]any)
	assert.ElementsMatch(t, []string{"low", "medium", "high"}, priority["enum"])
}

func TestToolHandler_SuccessEnvelope(t *testing.T) {
	registry := newTestRegistry(t)
	handler := toolHandler(registry, "todo-create", logger.Nop())

	result, err := handler(context.Background(), toolRequest(map[string]any{"title": "buy milk"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var envelope command.Result
	require.NoError(t, json.Unmarshal([]byte(resultText(result)), &envelope))
	assert.True(t, envelope.Success)
	require.NotNil(t, envelope.Metadata)
}

func TestToolHandler_FailureIsToolError(t *testing.T) {
	registry := newTestRegistry(t)
	handler := toolHandler(registry, "todo-get", logger.Nop())

	result, err := handler(context.Background(), toolRequest(map[string]any{"id": "remote-missing"}))
	require.NoError(t, err)
	require.True(t, result.IsError)

	var envelope command.Result
	require.NoError(t, json.Unmarshal([]byte(resultText(result)), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, command.CodeNotFound, envelope.Error.Code)
}

func TestNewServer_RegistersAllCommands(t *testing.T) {
	registry := newTestRegistry(t)
	s := NewServer(registry, "test", logger.Nop())
	require.NotNil(t, s)
}
