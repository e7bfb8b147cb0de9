// Package config loads and merges the localtodo configuration from
// environment variables, command-line flags, an optional JSON file, and
// built-in defaults, in that order of precedence.
//
// The merged [StructuredConfig] is then projected into role-specific views:
// [ClientConfig] for the local-first client (TUI, CLI, MCP) and
// [ServerConfig] for the reference remote backend.
package config
