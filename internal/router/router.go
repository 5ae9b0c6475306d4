package router

import (
	"context"
	"net/http"
	"time"

	_ "clinic-management/docs"
	"clinic-management/internal/domain/appointments"
	"clinic-management/internal/domain/doctors"
	"clinic-management/internal/domain/patients"
	"clinic-management/internal/domain/sqlconsole"
	"clinic-management/internal/domain/treatments"
	"clinic-management/internal/live"
	"clinic-management/internal/middleware"
	"clinic-management/internal/platform/database"
	"clinic-management/internal/platform/logger"
	"clinic-management/internal/ports/auth"
	"clinic-management/internal/ports/notify"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa la base SQL. Si no, in-memory.
	DB *database.DB

	// Opcional: feed de eventos en /ws.
	Hub *live.Hub

	Logger logger.Logger

	QueryMaxRows int
	QueryTimeout time.Duration
}

func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.AccessLog(opts.Logger))
	r.Use(middleware.Recover(opts.Logger))

	r.Use(middleware.AuthContext(opts.AuthVerifier, opts.Logger))

	r.Get("/health", healthHandler(opts.DB))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var pub notify.Publisher
	if opts.Hub != nil {
		pub = opts.Hub
		r.Get("/ws", opts.Hub.ServeWS)
	}

	// Services por módulo
	svcs := NewServices(ServicesOptions{
		DB:           opts.DB,
		Publisher:    pub,
		Logger:       opts.Logger,
		QueryMaxRows: opts.QueryMaxRows,
		QueryTimeout: opts.QueryTimeout,
	})

	// Rutas por módulo
	doctors.RegisterRoutes(r, svcs.Doctors)
	patients.RegisterRoutes(r, svcs.Patients)
	appointments.RegisterRoutes(r, svcs.Appointments)
	treatments.RegisterRoutes(r, svcs.Treatments)
	sqlconsole.RegisterRoutes(r, svcs.Console)

	return r
}

// healthHandler godoc
// @Summary Health check
// @Description Hace SELECT 1 contra la base. En modo in-memory siempre ok.
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Failure 503 {string} string "database unreachable"
// @Router /health [get]
func healthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				http.Error(w, "database unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
