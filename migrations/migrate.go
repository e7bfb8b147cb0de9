// Package migrations embeds the goose SQL migrations for both databases the
// application can own: the server's todos table and the client's key/value
// substrate.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed server/*.sql client/*.sql
var embedMigrations embed.FS

// goose keeps dialect and base FS as package state, so concurrent Migrate
// calls must not interleave.
var mu sync.Mutex

// Server applies the reference backend's migrations. dialect is a goose
// dialect name ("postgres" or "sqlite3") matching the configured driver.
func Server(db *sql.DB, dialect string) error {
	return up(db, dialect, "server")
}

// Client applies the client key/value substrate migrations (always SQLite).
func Client(db *sql.DB) error {
	return up(db, "sqlite3", "client")
}

func up(db *sql.DB, dialect, dir string) error {
	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
