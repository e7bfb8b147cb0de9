package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/ametelin/localtodo/internal/logger"
	"github.com/ametelin/localtodo/migrations"
)

// DB wraps the raw connection with the driver-specific placeholder format,
// goose dialect name, and error classifier.
type DB struct {
	*sql.DB
	placeholder        sq.PlaceholderFormat
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies the server schema migrations for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Server(db.DB, db.dialect)
}

// builder returns a squirrel statement builder bound to this connection's
// placeholder format ($N for postgres, ? for sqlite).
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder)
}
