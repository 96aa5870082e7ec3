package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"word-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationFiles embed.FS

const (
	createMigrationsTableQuery = `CREATE TABLE schema_migrations (version VARCHAR(255) PRIMARY KEY)`
	appliedMigrationsQuery     = `SELECT version "version" FROM schema_migrations`
	recordMigrationQuery       = `INSERT INTO schema_migrations (version) VALUES (?)`
)

// Migration is one embedded .up.sql file. Each file holds a single statement.
type Migration struct {
	Version   string
	Statement string
}

// LoadMigrations returns the embedded migrations for a driver, ordered by file name.
func LoadMigrations(driver string) ([]Migration, error) {
	dialect, err := MigrationDialect(driver)
	if err != nil {
		return nil, err
	}
	dir := path.Join("migrations", dialect)

	entries, err := fs.ReadDir(migrationFiles, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory %s: %w", dir, err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		content, err := fs.ReadFile(migrationFiles, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("could not read migration file %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{
			Version:   strings.TrimSuffix(entry.Name(), ".up.sql"),
			Statement: strings.TrimSuffix(strings.TrimSpace(string(content)), ";"),
		})
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

// RunMigrations applies every embedded migration not yet listed in schema_migrations
// and returns the versions it applied.
func RunMigrations(ctx context.Context, db *sqlx.DB, driver string) ([]string, error) {
	log := logger.Get()

	migrations, err := LoadMigrations(driver)
	if err != nil {
		return nil, err
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return nil, err
	}

	var ran []string
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return ran, err
		}
		log.Info("Executed migration", zap.String("version", m.Version))
		ran = append(ran, m.Version)
	}

	log.Info("Migrations completed successfully", zap.Int("applied", len(ran)))
	return ran, nil
}

func appliedVersions(ctx context.Context, db *sqlx.DB) (map[string]bool, error) {
	var versions []string
	if err := db.SelectContext(ctx, &versions, appliedMigrationsQuery); err != nil {
		// The first run has no bookkeeping table yet.
		if _, createErr := db.ExecContext(ctx, createMigrationsTableQuery); createErr != nil {
			return nil, fmt.Errorf("could not create schema_migrations table: %v (lookup error: %w)", createErr, err)
		}
		return map[string]bool{}, nil
	}

	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

func applyMigration(ctx context.Context, db *sqlx.DB, m Migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin migration %s: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, m.Statement); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("could not execute migration %s: %w", m.Version, err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(recordMigrationQuery), m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("could not record migration %s: %w", m.Version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit migration %s: %w", m.Version, err)
	}
	return nil
}
