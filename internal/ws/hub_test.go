package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damoang/rokn-storefront/internal/plugin"
)

func newTestHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(nil, plugin.NewNopLogger())
	go hub.Run()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient(hub, conn, r.URL.Query().Get("session"))
		hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	}))
	t.Cleanup(func() {
		hub.Stop()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, hub *Hub, srv *httptest.Server, session string) *websocket.Conn {
	t.Helper()
	before := hub.ClientCount(session)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/?session=" + session
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.Eventually(t, func() bool { return hub.ClientCount(session) == before+1 }, time.Second, 5*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var e Event
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestHub_SendToSession(t *testing.T) {
	hub, srv := newTestHub(t)
	a1 := dial(t, hub, srv, "a")
	a2 := dial(t, hub, srv, "a")
	b := dial(t, hub, srv, "b")

	hub.SendToSession("a", &Event{Type: EventNotification, Payload: map[string]string{"message": "hi"}})

	for _, conn := range []*websocket.Conn{a1, a2} {
		e := readEvent(t, conn)
		assert.Equal(t, EventNotification, e.Type)
		assert.Equal(t, "hi", e.Payload.(map[string]interface{})["message"])
	}

	// 다른 세션에는 전달되지 않는다
	require.NoError(t, b.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := b.ReadMessage()
	assert.Error(t, err)
}

func TestHub_UnregisterOnClose(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, hub, srv, "gone")

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount("gone") == 0 }, time.Second, 5*time.Millisecond)

	hub.SendToSession("gone", &Event{Type: EventAdvisor})
}

func TestHub_StopClosesConnections(t *testing.T) {
	hub, srv := newTestHub(t)
	conn := dial(t, hub, srv, "s")

	hub.Stop()
	hub.Stop()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Zero(t, hub.ClientCount("s"))

	// 종료 후 전송은 무시된다
	hub.SendToSession("s", &Event{Type: EventNotification})
}

func TestHub_SendDoesNotBlockWithoutRun(t *testing.T) {
	hub := NewHub(nil, plugin.NewNopLogger())
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			hub.SendToSession("x", &Event{Type: EventNotification})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("SendToSession blocked")
	}
	hub.Stop()
}
