package sqlconsole

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-management/internal/platform/logger"

	"github.com/google/uuid"
)

const (
	DefaultMaxRows = 1000
	DefaultTimeout = 10 * time.Second
)

type Options struct {
	MaxRows     int
	Timeout     time.Duration
	HistorySize int
	Logger      logger.Logger
}

type Service struct {
	engine  Engine
	maxRows int
	timeout time.Duration
	history *History
	log     logger.Logger
	now     func() time.Time
}

// NewService acepta engine nil: la consola responde ErrUnavailable
// (modo in-memory sin base).
func NewService(engine Engine, opts Options) *Service {
	if opts.MaxRows <= 0 {
		opts.MaxRows = DefaultMaxRows
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	return &Service{
		engine:  engine,
		maxRows: opts.MaxRows,
		timeout: opts.Timeout,
		history: NewHistory(opts.HistorySize),
		log:     opts.Logger.With(map[string]any{"module": "sqlconsole"}),
		now:     time.Now,
	}
}

func (s *Service) Available() bool { return s.engine != nil }

// Run valida y ejecuta una query de lectura. Toda ejecución queda en el historial,
// incluidas las rechazadas.
func (s *Service) Run(ctx context.Context, query string) (Result, error) {
	started := s.now()
	run := Run{
		ID:        uuid.NewString(),
		Query:     query,
		StartedAt: started,
	}

	res, err := s.run(ctx, query)

	run.Duration = s.now().Sub(started)
	run.RowCount = res.RowCount()
	run.Truncated = res.Truncated
	if err != nil {
		run.Error = err.Error()
	}
	s.history.Add(run)

	fields := map[string]any{
		"run_id":      run.ID,
		"rows":        run.RowCount,
		"truncated":   run.Truncated,
		"duration_ms": run.Duration.Milliseconds(),
	}
	if err != nil {
		fields["err"] = err
		s.log.Warn("query rejected or failed", fields)
		return Result{}, err
	}
	s.log.Info("query executed", fields)

	res.Elapsed = run.Duration
	return res, nil
}

func (s *Service) run(ctx context.Context, query string) (Result, error) {
	q, err := Normalize(query)
	if err != nil {
		return Result{}, err
	}
	if s.engine == nil {
		return Result{}, ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.engine.RunReadOnly(ctx, q, s.maxRows)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{}, fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
		}
		return Result{}, err
	}
	return res, nil
}

func (s *Service) History() []Run {
	return s.history.Entries()
}

// IsClientError: errores atribuibles a la query del usuario (400).
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidQuery) ||
		errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrMultipleStatements) ||
		errors.Is(err, ErrReadOnly) ||
		errors.Is(err, ErrQueryFailed)
}
