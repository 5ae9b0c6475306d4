package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinic-management/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// Optimize refresca estadísticas del planner.
// Solo SQLite tiene PRAGMA optimize; en el resto es no-op.
func (db *DB) Optimize(ctx context.Context) error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}
	if db.Dialect.Name != SQLite.Name {
		return nil
	}
	if _, err := db.ExecContext(ctx, "PRAGMA optimize"); err != nil {
		return fmt.Errorf("failed to optimize database: %w", err)
	}
	return nil
}

// Maintenance agenda Optimize con una expresión cron (ej: "@daily").
type Maintenance struct {
	cron *cron.Cron
}

// StartMaintenance devuelve nil si spec está vacío (deshabilitado).
func StartMaintenance(db *DB, spec string, log logger.Logger) (*Maintenance, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	if log == nil {
		log = logger.Nop()
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		start := time.Now()
		if err := db.Optimize(ctx); err != nil {
			log.Error("database maintenance failed", map[string]any{"err": err})
			return
		}
		log.Info("database maintenance done", map[string]any{
			"driver":      db.Dialect.Name,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("invalid maintenance schedule %q: %w", spec, err)
	}

	c.Start()
	return &Maintenance{cron: c}, nil
}

// Stop espera a que termine un job en curso.
func (m *Maintenance) Stop() {
	if m == nil || m.cron == nil {
		return
	}
	<-m.cron.Stop().Done()
}
