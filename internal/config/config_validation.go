package config

import "errors"

// validate checks cross-field consistency of the merged configuration.
// Only values every runtime mode depends on are validated here; mode-specific
// checks live in the client/server config views.
func (c *StructuredConfig) validate() error {
	var errs []error

	switch c.Storage.DB.Driver {
	case "", "pgx", "sqlite3":
	default:
		errs = append(errs, errUnknownDBDriver)
	}

	switch c.Storage.Local.Backend {
	case "", "memory", "file", "sqlite":
	default:
		errs = append(errs, errUnknownLocalBackend)
	}

	if c.Workers.SyncInterval < 0 {
		errs = append(errs, errNegativeSyncInterval)
	}

	return errors.Join(errs...)
}
