package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrator corre las migraciones embebidas del dialecto.
// Abre su propio pool: golang-migrate cierra la conexión en Close.
type Migrator struct {
	m *migrate.Migrate
}

func NewMigrator(driver, dsn string) (*Migrator, error) {
	db, err := Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	src, err := iofs.New(migrationsFS, "migrations/"+db.Dialect.Name)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	var drv migratedb.Driver
	switch db.Dialect.Name {
	case SQLite.Name:
		drv, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	case Postgres.Name:
		drv, err = migratepgx.WithInstance(db.DB, &migratepgx.Config{})
	case MySQL.Name:
		drv, err = migratemysql.WithInstance(db.DB, &migratemysql.Config{})
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedDriver, db.Dialect.Name)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, db.Dialect.Name, drv)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return &Migrator{m: m}, nil
}

// Up aplica todo lo pendiente. Devuelve false si no había nada para aplicar.
func (mg *Migrator) Up() (bool, error) {
	if err := mg.m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return false, nil
		}
		return false, fmt.Errorf("migrate up: %w", err)
	}
	return true, nil
}

// Down revierte n pasos (n <= 0 se trata como 1).
func (mg *Migrator) Down(steps int) error {
	if steps <= 0 {
		steps = 1
	}
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version devuelve la versión actual; 0 si la base está vacía.
func (mg *Migrator) Version() (uint, bool, error) {
	v, dirty, err := mg.m.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return v, dirty, nil
}

func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

// MigrateUp es el atajo que usa serve con AUTO_MIGRATE=true.
func MigrateUp(driver, dsn string) (bool, error) {
	mg, err := NewMigrator(driver, dsn)
	if err != nil {
		return false, err
	}
	defer func() { _ = mg.Close() }()

	return mg.Up()
}
