package sqldb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"clinic-management/internal/domain/sqlconsole"
	"clinic-management/internal/platform/database"
	"clinic-management/internal/platform/tabular"
)

// ConsoleEngine corre las queries de la consola SQL.
// Cada ejecución va en su propia transacción y siempre se revierte.
type ConsoleEngine struct {
	db *database.DB
}

func NewConsoleEngine(db *database.DB) *ConsoleEngine {
	return &ConsoleEngine{db: db}
}

func (e *ConsoleEngine) RunReadOnly(ctx context.Context, query string, maxRows int) (sqlconsole.Result, error) {
	conn, err := e.db.Conn(ctx)
	if err != nil {
		return sqlconsole.Result{}, fmt.Errorf("acquire conn: %w", err)
	}
	defer conn.Close()

	// modernc/sqlite no soporta TxOptions.ReadOnly: la conexión se marca query_only.
	sqlite := e.db.Dialect.Name == database.SQLite.Name
	if sqlite {
		if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
			return sqlconsole.Result{}, fmt.Errorf("set query_only: %w", err)
		}
		defer resetQueryOnly(conn)
	}

	tx, err := conn.BeginTx(ctx, &sql.TxOptions{ReadOnly: !sqlite})
	if err != nil {
		return sqlconsole.Result{}, fmt.Errorf("begin read-only tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return sqlconsole.Result{}, queryError(ctx, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return sqlconsole.Result{}, queryError(ctx, err)
	}

	res := sqlconsole.Result{Columns: cols, Rows: make([][]any, 0)}
	for rows.Next() {
		if maxRows > 0 && len(res.Rows) >= maxRows {
			res.Truncated = true
			break
		}

		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return sqlconsole.Result{}, queryError(ctx, err)
		}
		for i, v := range vals {
			vals[i] = tabular.Value(v)
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return sqlconsole.Result{}, queryError(ctx, err)
	}

	return res, nil
}

// resetQueryOnly devuelve la conexión al pool en modo escritura. Si no se puede,
// la conexión se descarta.
func resetQueryOnly(conn *sql.Conn) {
	if _, err := conn.ExecContext(context.Background(), "PRAGMA query_only = OFF"); err != nil {
		_ = conn.Raw(func(any) error { return driver.ErrBadConn })
	}
}

// queryError separa el timeout (lo resuelve el servicio) de los errores de SQL.
func queryError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if isReadOnlyViolation(err) {
		return fmt.Errorf("%w: %v", sqlconsole.ErrReadOnly, err)
	}
	return fmt.Errorf("%w: %v", sqlconsole.ErrQueryFailed, err)
}

// isReadOnlyViolation reconoce el rechazo de escritura de cada motor:
// sqlite "attempt to write a readonly database", postgres "read-only transaction",
// mysql "READ ONLY transaction".
func isReadOnlyViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "readonly") ||
		strings.Contains(msg, "read-only") ||
		strings.Contains(msg, "read only")
}
