package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/feedbackform/feedback-backend/logger"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations applies pending schema migrations from the embedded SQL
// files. Safe to call on every startup; already-applied migrations are
// skipped.
func RunMigrations(dbURL string) error {
	log := logger.GetLogger()

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, convertToPgx5URL(dbURL))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.Infow("Database migrations applied", "version", version)
	return nil
}

// convertToPgx5URL rewrites a postgres:// URL to the pgx5:// scheme required
// by golang-migrate's pgx v5 driver.
func convertToPgx5URL(dbURL string) string {
	const prefix = "postgres://"
	if len(dbURL) > len(prefix) && dbURL[:len(prefix)] == prefix {
		return "pgx5://" + dbURL[len(prefix):]
	}
	return dbURL
}
