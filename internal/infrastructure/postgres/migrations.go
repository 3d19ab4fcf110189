package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx" para database/sql (goose)
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// OpenMigrationDB abre una conexión database/sql con el driver pgx para goose.
func OpenMigrationDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open migration db: %w", err)
	}
	return db, nil
}

// Migrate ejecuta un comando goose (up, down, status, version, redo, reset) sobre las migraciones embebidas.
func Migrate(ctx context.Context, db *sql.DB, command string, args ...string) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateUp aplica todas las migraciones pendientes.
func MigrateUp(ctx context.Context, dsn string) error {
	db, err := OpenMigrationDB(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return Migrate(ctx, db, "up")
}
