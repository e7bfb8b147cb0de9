package config

import (
	"fmt"
	"time"
)

// ClientLocal holds the client-side key/value substrate settings.
type ClientLocal struct {
	// Backend selects the substrate: "memory", "file", or "sqlite".
	Backend string
	// Path is the backing file path for the file and sqlite backends.
	Path string
}

// ClientRemote holds network settings used by the client transport layer.
type ClientRemote struct {
	// BaseURL is the remote backend endpoint used by the client.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the reconciliation job should run.
	SyncInterval time.Duration
}

// ClientConfig is the client-facing view assembled from [StructuredConfig].
type ClientConfig struct {
	// Version is the application version string.
	Version string
	// Local contains local store substrate settings.
	Local ClientLocal
	// Remote contains remote backend connection settings.
	Remote ClientRemote
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Version: cfg.App.Version,
		Local: ClientLocal{
			Backend: cfg.Storage.Local.Backend,
			Path:    cfg.Storage.Local.Path,
		},
		Remote: ClientRemote{
			BaseURL:        cfg.Remote.BaseURL,
			RequestTimeout: cfg.Remote.RequestTimeout,
		},
		Workers: ClientWorkers{
			SyncInterval: cfg.Workers.SyncInterval,
		},
	}

	return clientCfg, nil
}
