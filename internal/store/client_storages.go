package store

import (
	"context"
	"fmt"

	"github.com/ametelin/localtodo/internal/config"
	"github.com/ametelin/localtodo/internal/logger"
)

// ClientStorages groups the client-side storage layer: the raw key/value
// substrate and the local store built on top of it.
type ClientStorages struct {
	// KV is the persistence substrate selected by configuration.
	KV KeyValueStore

	// Local is the optimistic local store all client mutations go through.
	Local LocalStore
}

// NewClientStorages initialises the client storage layer from configuration.
// The substrate is chosen by cfg.Backend: "memory" (volatile), "file"
// (JSON file), or "sqlite" (durable local database).
func NewClientStorages(cfg config.ClientLocal, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Str("backend", cfg.Backend).Msg("creating client storages...")

	var kv KeyValueStore
	var err error
	switch cfg.Backend {
	case "", "memory":
		kv = NewMemoryKV()
	case "file":
		kv, err = NewFileKV(cfg.Path)
	case "sqlite":
		kv, err = NewSQLiteKV(context.Background(), cfg.Path, log)
	default:
		err = fmt.Errorf("unknown local backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("local substrate init error: %w", err)
	}

	return &ClientStorages{
		KV:    kv,
		Local: NewLocalStore(kv, log),
	}, nil
}
