package sqlstore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// Migrate applies all pending up migrations and returns the resulting schema
// version. It works on its own handle because the migrate drivers close the
// database they are given.
func Migrate(dbURL string) (uint, error) {
	dialect := DialectFor(dbURL)

	db, err := sql.Open(string(dialect), dbURL)
	if err != nil {
		return 0, fmt.Errorf("open %s for migration: %w", dialect, err)
	}

	m, err := newMigrator(db, dialect)
	if err != nil {
		_ = db.Close()
		return 0, err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migrate up: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

func newMigrator(db *sql.DB, dialect Dialect) (*migrate.Migrate, error) {
	dir := "migrations/sqlite"
	if dialect == DialectPostgres {
		dir = "migrations/postgres"
	}

	src, err := iofs.New(migrations, dir)
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	var driver database.Driver
	switch dialect {
	case DialectPostgres:
		driver, err = migratepostgres.WithInstance(db, &migratepostgres.Config{})
	default:
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("init %s migration driver: %w", dialect, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(dialect), driver)
	if err != nil {
		return nil, fmt.Errorf("init migrator: %w", err)
	}
	return m, nil
}
