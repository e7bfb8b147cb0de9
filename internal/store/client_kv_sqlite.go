package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/migrations"
)

const (
	getKVQuery = `SELECT value FROM kv WHERE key = ?;`
	setKVQuery = `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value;`
)

// sqliteKV is the durable client substrate: a single kv table in a local
// SQLite file. It survives restarts, unlike the session-scoped backends.
type sqliteKV struct {
	db  *sql.DB
	log *logger.Logger
}

// NewSQLiteKV opens (creating if necessary) the SQLite file at path, runs the
// client migrations, and returns a KeyValueStore over it.
func NewSQLiteKV(ctx context.Context, path string, log *logger.Logger) (KeyValueStore, error) {
	if err := createLocalDBFileIfNotExists(path); err != nil {
		log.Err(err).Str("path", path).Msg("error creating local database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening connection to local DB: %w", err)
	}
	if err = conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("error connecting local database: %w", err)
	}

	if err = migrations.Client(conn); err != nil {
		return nil, fmt.Errorf("local migration failed: %w", err)
	}

	log.Debug().Str("path", path).Msg("connected to local sqlite substrate")
	return &sqliteKV{db: conn, log: log}, nil
}

func (s *sqliteKV) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(getKVQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, nil
}

func (s *sqliteKV) Set(key, value string) error {
	if _, err := s.db.Exec(setKVQuery, key, value); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
