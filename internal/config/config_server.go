package config

import (
	"fmt"
	"time"
)

// ServerDB contains database connection settings for the reference backend.
type ServerDB struct {
	// Driver is the database/sql driver name: "pgx" or "sqlite3".
	Driver string
	// DSN is the connection string for the selected driver.
	DSN string
}

// ServerConfig is the server-facing view assembled from [StructuredConfig].
type ServerConfig struct {
	// Version is the application version string.
	Version string
	// HTTPAddress is the listen address in "host:port" format.
	HTTPAddress string
	// RequestTimeout bounds a single inbound request.
	RequestTimeout time.Duration
	// DB contains relational database settings.
	DB ServerDB
}

// GetServerConfig builds and validates a server-specific config view from the
// merged structured configuration.
func GetServerConfig(args []string) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		Version:        cfg.App.Version,
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		DB: ServerDB{
			Driver: cfg.Storage.DB.Driver,
			DSN:    cfg.Storage.DB.DSN,
		},
	}

	return serverCfg, nil
}
