package db

import (
	"database/sql"
	"io"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

// NewTestDB wraps an existing *sql.DB (usually go-sqlmock) with a no-op logger.
// Only for use in tests.
func NewTestDB(sqlDB *sql.DB) *DB {
	return &DB{
		DB:     sqlx.NewDb(sqlDB, "postgres"),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
