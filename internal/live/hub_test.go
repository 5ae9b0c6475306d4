package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinic-management/internal/ports/notify"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ notify.Publisher = (*Hub)(nil)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.Clients() == n }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastsToAllClients(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	t.Cleanup(h.Close)

	srv := httptest.NewServer(httpHandler(h))
	t.Cleanup(srv.Close)

	c1 := dial(t, srv)
	c2 := dial(t, srv)
	waitClients(t, h, 2)

	h.Publish("doctor.created", map[string]any{"doctor_id": 1, "first_name": "Gregory"})

	for _, c := range []*websocket.Conn{c1, c2} {
		_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, msg, err := c.ReadMessage()
		require.NoError(t, err)

		var ev struct {
			Kind    string         `json:"kind"`
			Payload map[string]any `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(msg, &ev))
		assert.Equal(t, "doctor.created", ev.Kind)
		assert.Equal(t, "Gregory", ev.Payload["first_name"])
	}
}

func TestHub_ClientDisconnect(t *testing.T) {
	h := NewHub(nil)
	go h.Run()
	t.Cleanup(h.Close)

	srv := httptest.NewServer(httpHandler(h))
	t.Cleanup(srv.Close)

	c := dial(t, srv)
	waitClients(t, h, 1)

	require.NoError(t, c.Close())
	waitClients(t, h, 0)
}

func TestHub_PublishNeverBlocks(t *testing.T) {
	h := NewHub(nil)
	// Sin Run: el buffer se llena y el resto se descarta.
	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*2; i++ {
			h.Publish("patient.registered", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked")
	}

	h.Close()
	h.Close()
	h.Publish("after.close", nil)
}

func httpHandler(h *Hub) http.Handler {
	return http.HandlerFunc(h.ServeWS)
}
