package postgres

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// Register database postgres
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/johnleydelgado/legacy-app-sub005/internal/db"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every pending migration and returns the resulting version.
func Migrate(url string) (uint, error) {
	m, err := newMigrate(url)
	if err != nil {
		return 0, err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, &db.Error{Op: db.OpMigrate, Err: err}
	}
	return version(m)
}

// MigrateDown rolls back one migration.
func MigrateDown(url string) (uint, error) {
	m, err := newMigrate(url)
	if err != nil {
		return 0, err
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, &db.Error{Op: db.OpMigrate, Err: err}
	}
	return version(m)
}

func newMigrate(url string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return nil, &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("open migrations: %w", err)}
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, &db.Error{Op: db.OpMigrate, Err: err}
	}
	return m, nil
}

func version(m *migrate.Migrate) (uint, error) {
	v, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, &db.Error{Op: db.OpMigrate, Err: err}
	}
	return v, nil
}
