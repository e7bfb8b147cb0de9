package store

import (
	"context"
	"fmt"

	"github.com/ametelin/localtodo/internal/config"
	"github.com/ametelin/localtodo/internal/logger"
)

// Storages aggregates the reference backend's repositories.
type Storages struct {
	Todos TodoRepository

	db *DB
}

// NewServerStorages opens the database selected by the configuration, applies
// the schema migrations, and wires the repositories.
func NewServerStorages(ctx context.Context, cfg config.ServerDB, log *logger.Logger) (*Storages, error) {
	var (
		db  *DB
		err error
	)
	switch cfg.Driver {
	case "pgx":
		db, err = NewConnectPostgres(ctx, cfg, log)
	case "sqlite3":
		db, err = NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown database driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewServerStorages").Msg("failed to apply migrations")
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &Storages{
		Todos: NewTodoRepository(db, log),
		db:    db,
	}, nil
}

// Close releases the underlying database connection.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
