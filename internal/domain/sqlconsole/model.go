package sqlconsole

import (
	"context"
	"errors"
	"time"

	"clinic-management/internal/platform/tabular"
)

var (
	ErrInvalidQuery       = errors.New("invalid query")
	ErrEmptyQuery         = errors.New("invalid query: query cannot be empty")
	ErrMultipleStatements = errors.New("invalid query: multiple statements are not allowed")
	ErrReadOnly           = errors.New("invalid query: only SELECT queries are allowed")
	ErrQueryFailed        = errors.New("query failed")
	ErrTimeout            = errors.New("query timed out")
	ErrUnavailable        = errors.New("sql console requires a database")
)

// DefaultQuery es la consulta de ejemplo de la consola.
const DefaultQuery = "SELECT * FROM appointments LIMIT 5"

// Result es una ejecución ya materializada.
type Result struct {
	Columns   []string
	Rows      [][]any
	Truncated bool
	Elapsed   time.Duration
}

func (r Result) RowCount() int { return len(r.Rows) }

// Table adapta el resultado al paso de visualización.
func (r Result) Table() tabular.Table {
	return tabular.Table{Columns: r.Columns, Rows: r.Rows}
}

// Engine ejecuta una query de solo lectura y devuelve hasta maxRows filas.
// Las implementaciones corren dentro de una transacción que siempre se revierte.
type Engine interface {
	RunReadOnly(ctx context.Context, query string, maxRows int) (Result, error)
}

// Run es una entrada del historial.
type Run struct {
	ID        string
	Query     string
	RowCount  int
	Truncated bool
	Error     string
	Duration  time.Duration
	StartedAt time.Time
}
