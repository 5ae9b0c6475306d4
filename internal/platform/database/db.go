package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var (
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Dialect resume las diferencias de SQL que los repos necesitan conocer.
type Dialect struct {
	Name string

	// driverName es el nombre registrado en database/sql.
	driverName string

	// Placeholders $1..$n (postgres) en vez de ?.
	numbered bool

	// INSERT ... RETURNING <col> disponible.
	returning bool
}

var (
	SQLite   = Dialect{Name: "sqlite", driverName: "sqlite", returning: true}
	Postgres = Dialect{Name: "postgres", driverName: "pgx", numbered: true, returning: true}
	MySQL    = Dialect{Name: "mysql", driverName: "mysql"}
)

// DialectFor resuelve el dialecto por nombre de driver de config.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql", "pgx":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	default:
		return Dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
}

// Rebind convierte los ? de una query al formato del dialecto.
// Los repos escriben siempre con ?; no hay ? dentro de literales en nuestras queries.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		sb.WriteByte(query[i])
	}
	return sb.String()
}

// DB envuelve el pool con su dialecto.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Open abre el pool para el driver indicado y verifica conexión.
func Open(driver, dsn string) (*DB, error) {
	d, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}

	// SQLite serializa escrituras; con WAL varias lecturas concurrentes van bien.
	if d.Name == SQLite.Name {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(4)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}

	return &DB{DB: db, Dialect: d}, nil
}

// Wrap adapta un *sql.DB ya abierto (tests con sqlmock).
func Wrap(db *sql.DB, d Dialect) *DB {
	return &DB{DB: db, Dialect: d}
}

// Ping es el "connection test" del arranque: SELECT 1.
func (db *DB) Ping(ctx context.Context) error {
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("cannot reach database: %w", err)
	}
	return nil
}

// Exec aplica Rebind antes de ejecutar.
func (db *DB) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.ExecContext(ctx, db.Dialect.Rebind(query), args...)
}

func (db *DB) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.QueryContext(ctx, db.Dialect.Rebind(query), args...)
}

func (db *DB) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.QueryRowContext(ctx, db.Dialect.Rebind(query), args...)
}

// InsertID ejecuta un INSERT y devuelve la PK generada.
// Usa RETURNING donde existe; en MySQL cae a LastInsertId.
func (db *DB) InsertID(ctx context.Context, idColumn, query string, args ...any) (int64, error) {
	if db.Dialect.returning {
		var id int64
		err := db.QueryRowContext(ctx, db.Dialect.Rebind(query+" RETURNING "+idColumn), args...).Scan(&id)
		if err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := db.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
