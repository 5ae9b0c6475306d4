package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sql", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"echo": in["query"]})
	}))
	defer srv.Close()

	c, err := NewWithBaseURL(srv.URL+"/", time.Second)
	require.NoError(t, err)

	var out struct {
		Echo string `json:"echo"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "sql", BearerHeader("tok"), map[string]string{"query": "SELECT 1"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", out.Echo)
}

func TestDoRaw_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "text/csv", r.Header.Get("Accept"))
		http.Error(w, "invalid query: only SELECT queries are allowed", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := New(time.Second)
	_, err := c.DoRaw(context.Background(), http.MethodPost, srv.URL+"/sql?format=csv", "text/csv", nil, map[string]string{"query": "DROP TABLE doctors"})
	require.Error(t, err)

	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.StatusCode)
	assert.Contains(t, he.Body, "only SELECT")
}

func TestDoRaw_LimitsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 100))
	}))
	defer srv.Close()

	c := New(time.Second)
	c.MaxBody = 10
	raw, err := c.DoRaw(context.Background(), http.MethodGet, srv.URL, "", nil, nil)
	require.NoError(t, err)
	assert.Len(t, raw, 10)
}

func TestResolveURL(t *testing.T) {
	c := New(0)
	_, err := c.resolveURL("/sql")
	assert.Error(t, err)

	_, err = NewWithBaseURL("not a url", 0)
	assert.Error(t, err)

	assert.Nil(t, BearerHeader("  "))
}
