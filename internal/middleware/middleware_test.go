package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinic-management/internal/platform/logger"
	"clinic-management/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct{}

func (stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token == "good" {
		return auth.Claims{UserID: "u-1"}, nil
	}
	return auth.Claims{}, errors.New("bad token")
}

func whoAmI() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := GetClaims(r.Context())
		if !ok {
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		_, _ = w.Write([]byte(c.UserID))
	})
}

func serve(h http.Handler, headers map[string]string) string {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Body.String()
}

func TestAuthContext_DevMode(t *testing.T) {
	h := AuthContext(nil, nil)(whoAmI())

	assert.Equal(t, "anonymous", serve(h, nil))
	assert.Equal(t, "dev-42", serve(h, map[string]string{"X-Debug-User-ID": " dev-42 "}))
}

func TestAuthContext_VerifierMode(t *testing.T) {
	h := AuthContext(stubVerifier{}, nil)(whoAmI())

	assert.Equal(t, "u-1", serve(h, map[string]string{"Authorization": "Bearer good"}))
	assert.Equal(t, "u-1", serve(h, map[string]string{"Authorization": "bearer good"}))
	assert.Equal(t, "anonymous", serve(h, map[string]string{"Authorization": "Bearer bad"}))
	assert.Equal(t, "anonymous", serve(h, map[string]string{"Authorization": "Basic good"}))

	// Con verifier el header de debug se ignora.
	assert.Equal(t, "anonymous", serve(h, map[string]string{"X-Debug-User-ID": "dev-42"}))
}

func TestAccessLogAndRecover(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Out: &buf})

	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	h := chimw.RequestID(AccessLog(log)(Recover(log)(boom)))

	req := httptest.NewRequest(http.MethodPost, "/sql", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var panicLine, accessLine map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &panicLine))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &accessLine))

	assert.Equal(t, "panic recovered", panicLine["message"])
	assert.Equal(t, "boom", panicLine["panic"])

	assert.Equal(t, "http request", accessLine["message"])
	assert.Equal(t, "/sql", accessLine["path"])
	assert.Equal(t, float64(500), accessLine["status"])
	assert.NotEmpty(t, accessLine["request_id"])
}

func TestAuthContext_InvalidTokenIsRecorded(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Out: &buf})

	var gotErr error
	captureAuth := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotErr = AuthError(r.Context())
	})
	h := AuthContext(stubVerifier{}, log)(captureAuth)

	serve(h, map[string]string{"Authorization": "Bearer bad"})
	require.Error(t, gotErr)
	assert.True(t, errors.Is(gotErr, ErrInvalidToken))
	assert.Contains(t, buf.String(), `"message":"token rejected"`)
	assert.Contains(t, buf.String(), "bad token")

	// Sin token no hay error: es un request anónimo.
	buf.Reset()
	serve(h, nil)
	assert.NoError(t, gotErr)
	assert.Empty(t, buf.String())

	serve(h, map[string]string{"Authorization": "Bearer good"})
	assert.NoError(t, gotErr)
}

func TestAccessLog_RecordsCallerAndAuthError(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Out: &buf})
	h := AccessLog(log)(AuthContext(stubVerifier{}, nil)(whoAmI()))

	lastLine := func() map[string]any {
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &m))
		return m
	}

	serve(h, map[string]string{"Authorization": "Bearer good"})
	line := lastLine()
	assert.Equal(t, "u-1", line["user_id"])
	assert.Nil(t, line["auth_error"])

	serve(h, map[string]string{"Authorization": "Bearer bad"})
	line = lastLine()
	assert.Nil(t, line["user_id"])
	assert.Contains(t, line["auth_error"], "invalid token")

	serve(h, nil)
	line = lastLine()
	assert.Nil(t, line["user_id"])
	assert.Nil(t, line["auth_error"])
}
