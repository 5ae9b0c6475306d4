package sqlconsole

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"clinic-management/internal/platform/httpclient"
	"clinic-management/internal/platform/tabular"
)

// Remote manda queries a un servidor clinic en marcha (`clinic query --remote`).
type Remote struct {
	client *httpclient.Client
	token  string

	// DebugUser se manda como X-Debug-User-ID cuando no hay token (server en modo dev).
	DebugUser string
}

func NewRemote(baseURL, token string, timeout time.Duration) (*Remote, error) {
	c, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	if c.BaseURL == "" {
		return nil, fmt.Errorf("remote url is required")
	}
	return &Remote{client: c, token: token}, nil
}

// Run devuelve la respuesta JSON del servidor.
func (r *Remote) Run(ctx context.Context, query string) (QueryResponse, error) {
	var out QueryResponse
	err := r.client.DoJSON(ctx, http.MethodPost, "/sql",
		r.headers(),
		runQueryRequest{Query: query},
		&out,
	)
	return out, err
}

// Render pide al servidor la salida ya formateada (csv, table, yaml).
func (r *Remote) Render(ctx context.Context, query string, f tabular.Format) ([]byte, error) {
	return r.client.DoRaw(ctx, http.MethodPost, "/sql?format="+string(f),
		f.ContentType(),
		r.headers(),
		runQueryRequest{Query: query},
	)
}

func (r *Remote) headers() map[string]string {
	if h := httpclient.BearerHeader(r.token); h != nil {
		return h
	}
	if u := strings.TrimSpace(r.DebugUser); u != "" {
		return map[string]string{"X-Debug-User-ID": u}
	}
	return nil
}
