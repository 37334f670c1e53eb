package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

// sqliteSchema runs on every open. AUTOINCREMENT keeps deleted ids from
// being handed out again.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    description TEXT NOT NULL DEFAULT '',
    is_done BOOLEAN NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_items_is_done ON items(is_done);
`

// SQLite wraps a database/sql handle on an embedded SQLite file.
type SQLite struct {
	DB  *sql.DB
	log *zerolog.Logger
}

// NewSQLite opens (creating if needed) the database at path and ensures
// the schema exists.
//
// The handle is limited to one connection; SQLite serialises writers
// anyway and a single connection keeps ":memory:" databases coherent.
func NewSQLite(path string, logger *zerolog.Logger) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	logger.Info().Str("path", path).Msg("opened sqlite database")

	return &SQLite{DB: db, log: logger}, nil
}

// Ping checks that the database file is still usable.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Close closes the underlying handle.
func (s *SQLite) Close() error {
	s.log.Info().Msg("closing sqlite database")
	return s.DB.Close()
}
