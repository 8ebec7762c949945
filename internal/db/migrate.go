package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func newMigrator(databaseURL, migrationsPath string) (*migrate.Migrate, func(), error) {
	dbConn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	driver, err := postgres.WithInstance(dbConn, &postgres.Config{})
	if err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		dbConn.Close()
		return nil, nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, func() { dbConn.Close() }, nil
}

// RunMigrations applies every pending up migration.
func RunMigrations(databaseURL string, migrationsPath string) error {
	m, closeFn, err := newMigrator(databaseURL, migrationsPath)
	if err != nil {
		return err
	}
	defer closeFn()

	// Check current version
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if dirty {
		log.Printf("⚠️  Database is in a dirty state at version %d, forcing clean state", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("failed to force migration: %w", err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Println("✅ Database migrations completed")
	return nil
}

// RollbackMigrations reverts the given number of migrations.
func RollbackMigrations(databaseURL string, migrationsPath string, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	m, closeFn, err := newMigrator(databaseURL, migrationsPath)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rollback failed: %w", err)
	}

	log.Printf("✅ Rolled back %d migration(s)", steps)
	return nil
}
