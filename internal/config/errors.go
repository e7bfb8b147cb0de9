package config

import "errors"

var (
	errUnknownDBDriver      = errors.New("unknown database driver: expected pgx or sqlite3")
	errUnknownLocalBackend  = errors.New("unknown local store backend: expected memory, file, or sqlite")
	errNegativeSyncInterval = errors.New("sync interval must not be negative")
)
