package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/todo-api/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationsTable stores the applied schema version.
const MigrationsTable = "schema_version"

// Migrate creates or upgrades the items table. The SQL files under
// migrations/ are compiled in, so a bare binary can bootstrap an empty
// database.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	conn, err := pgx.Connect(ctx, DSN(&cfg.Database))
	if err != nil {
		return fmt.Errorf("failed to connect for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, MigrationsTable)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	to := int32(len(m.Migrations))
	event := logger.Info().Int32("version", to).Str("table", MigrationsTable)
	if from == to {
		event.Msg("items schema up to date")
	} else {
		event.Int32("from", from).Msg("items schema migrated")
	}

	return nil
}
