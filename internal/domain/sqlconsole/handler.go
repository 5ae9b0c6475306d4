package sqlconsole

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"clinic-management/internal/middleware"
	"clinic-management/internal/platform/tabular"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sql", func(sr chi.Router) {
		sr.Post("/", runQueryHandler(svc))
		sr.Get("/history", historyHandler(svc))
	})
}

type runQueryRequest struct {
	Query string `json:"query" example:"SELECT * FROM appointments LIMIT 5"`
}

// QueryResponse es el cuerpo JSON de POST /sql. Exportado para el cliente remoto del CLI.
type QueryResponse struct {
	Columns   []string `json:"columns"`
	Rows      [][]any  `json:"rows"`
	RowCount  int      `json:"row_count"`
	Truncated bool     `json:"truncated"`
	ElapsedMS int64    `json:"elapsed_ms"`
}

// Table adapta la respuesta al paso de visualización.
func (q QueryResponse) Table() tabular.Table {
	return tabular.Table{Columns: q.Columns, Rows: q.Rows}
}

type runResponse struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	RowCount   int       `json:"row_count"`
	Truncated  bool      `json:"truncated"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	StartedAt  time.Time `json:"started_at"`
}

// runQueryHandler godoc
// @Summary Ejecutar SQL de solo lectura
// @Description Ejecuta una única sentencia SELECT / WITH / EXPLAIN / VALUES contra la base de la clínica. La transacción siempre se revierte. Requiere autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags sql
// @Accept json
// @Produce json
// @Produce text/csv
// @Produce text/plain
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param format query string false "json (default) | csv | table | yaml"
// @Param payload body runQueryRequest true "Query a ejecutar"
// @Success 200 {object} QueryResponse
// @Failure 400 {string} string "query vacía / no es de lectura / error de SQL"
// @Failure 401 {string} string "unauthorized / invalid token"
// @Failure 503 {string} string "sql console requires a database"
// @Failure 504 {string} string "query timed out"
// @Router /sql [post]
func runQueryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireCaller(w, r) {
			return
		}

		format := tabular.FormatJSON
		if v := r.URL.Query().Get("format"); v != "" {
			f, err := tabular.ParseFormat(v)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			format = f
		}

		var req runQueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := svc.Run(r.Context(), req.Query)
		if err != nil {
			switch {
			case IsClientError(err):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrUnavailable):
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
			case errors.Is(err, ErrTimeout):
				http.Error(w, err.Error(), http.StatusGatewayTimeout)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		if format == tabular.FormatJSON {
			rows := make([][]any, len(res.Rows))
			for i, row := range res.Rows {
				cells := make([]any, len(row))
				for j, v := range row {
					cells[j] = tabular.Value(v)
				}
				rows[i] = cells
			}
			writeJSON(w, http.StatusOK, QueryResponse{
				Columns:   res.Columns,
				Rows:      rows,
				RowCount:  res.RowCount(),
				Truncated: res.Truncated,
				ElapsedMS: res.Elapsed.Milliseconds(),
			})
			return
		}

		var buf bytes.Buffer
		if err := tabular.Write(&buf, format, res.Table()); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		if res.Truncated {
			w.Header().Set("X-Result-Truncated", "true")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// historyHandler godoc
// @Summary Historial de la consola SQL
// @Description Últimas ejecuciones (incluidas las rechazadas), la más reciente primero.
// @Tags sql
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} runResponse
// @Failure 401 {string} string "unauthorized / invalid token"
// @Router /sql/history [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireCaller(w, r) {
			return
		}

		runs := svc.History()
		out := make([]runResponse, 0, len(runs))
		for _, run := range runs {
			out = append(out, runResponse{
				ID:         run.ID,
				Query:      run.Query,
				RowCount:   run.RowCount,
				Truncated:  run.Truncated,
				Error:      run.Error,
				DurationMS: run.Duration.Milliseconds(),
				StartedAt:  run.StartedAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requireCaller responde 401 si no hay caller. Un token rechazado se informa
// como tal para no confundirlo con un request sin credenciales.
func requireCaller(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if ok && strings.TrimSpace(claims.UserID) != "" {
		return true
	}
	if middleware.AuthError(r.Context()) != nil {
		http.Error(w, middleware.ErrInvalidToken.Error(), http.StatusUnauthorized)
		return false
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
	return false
}
