package database

import (
	"fmt"

	"word-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver ("pgx")
	_ "github.com/sijms/go-ora/v2"     // Oracle driver ("oracle")
	_ "modernc.org/sqlite"             // SQLite driver ("sqlite")
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverOracle   = "oracle"
)

func init() {
	// sqlx does not know these driver names, so register their placeholder styles.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// SQLDriverName maps a configured db.driver value to the registered database/sql driver.
func SQLDriverName(driver string) (string, error) {
	switch driver {
	case DriverSQLite, "sqlite3":
		return "sqlite", nil
	case DriverPostgres, "postgresql", "pgx":
		return "pgx", nil
	case DriverOracle:
		return "oracle", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// MigrationDialect returns the migrations directory name for a configured driver.
func MigrationDialect(driver string) (string, error) {
	name, err := SQLDriverName(driver)
	if err != nil {
		return "", err
	}
	switch name {
	case "pgx":
		return DriverPostgres, nil
	default:
		return name, nil
	}
}

// NewSQLXDB opens a connection for the configured driver and verifies it with a ping.
func NewSQLXDB(driver, dsn string) (*sqlx.DB, error) {
	driverName, err := SQLDriverName(driver)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	if driverName == "sqlite" {
		// SQLite allows one writer at a time.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	logger.Get().Info("Connected to database", zap.String("driver", driverName))
	return db, nil
}
