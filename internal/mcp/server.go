// Package mcp exposes the command registry as MCP tools over stdio, so any
// MCP-capable agent can drive the todo store through the same command surface
// the TUI and CLI use.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ametelin/localtodo/internal/command"
	"github.com/ametelin/localtodo/internal/logger"
)

// NewServer builds an MCP stdio server with one tool per registered command.
// Tool names match command names; the tool result is the command's JSON
// result envelope.
func NewServer(registry *command.Registry, version string, log *logger.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"localtodo",
		version,
		server.WithToolCapabilities(true),
	)

	for _, cmd := range registry.Commands() {
		s.AddTool(toolDefinition(cmd), toolHandler(registry, cmd.Name, log))
	}

	log.Info().Int("tools", len(registry.List())).Msg("mcp server created")
	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func toolDefinition(cmd command.Command) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(cmd.Description)}

	for _, p := range cmd.Parameters {
		var propOpts []mcp.PropertyOption
		if p.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if p.Description != "" {
			propOpts = append(propOpts, mcp.Description(p.Description))
		}
		if len(p.Enum) > 0 {
			propOpts = append(propOpts, mcp.Enum(p.Enum...))
		}

		switch p.Type {
		case command.TypeString:
			opts = append(opts, mcp.WithString(p.Name, propOpts...))
		case command.TypeNumber:
			opts = append(opts, mcp.WithNumber(p.Name, propOpts...))
		case command.TypeBoolean:
			opts = append(opts, mcp.WithBoolean(p.Name, propOpts...))
		case command.TypeArray:
			propOpts = append(propOpts, mcp.Items(map[string]any{"type": "string"}))
			opts = append(opts, mcp.WithArray(p.Name, propOpts...))
		case command.TypeObject:
			opts = append(opts, mcp.WithObject(p.Name, propOpts...))
		}
	}

	return mcp.NewTool(cmd.Name, opts...)
}

func toolHandler(registry *command.Registry, name string, log *logger.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := registry.Execute(ctx, name, req.GetArguments())

		payload, err := json.Marshal(result)
		if err != nil {
			log.Err(err).Str("tool", name).Msg("failed to marshal command result")
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
		}

		if !result.Success {
			return mcp.NewToolResultError(string(payload)), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}
