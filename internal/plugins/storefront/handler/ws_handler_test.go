package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damoang/rokn-storefront/internal/middleware"
	"github.com/damoang/rokn-storefront/internal/plugin"
	"github.com/damoang/rokn-storefront/internal/ws"
)

func newWSServer(t *testing.T, origins string) (*ws.Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := ws.NewHub(nil, plugin.NewNopLogger())
	go hub.Run()

	r := gin.New()
	r.Use(middleware.Session(false))
	r.GET("/ws", NewWSHandler(hub, origins).Connect)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Stop()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func TestWSHandler_Origins(t *testing.T) {
	hub, url := newWSServer(t, "https://rokn.example, http://localhost:3000")

	header := http.Header{}
	header.Set(middleware.SessionHeader, "allowed")
	header.Set("Origin", "https://rokn.example")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	assert.Eventually(t, func() bool { return hub.ClientCount("allowed") == 1 }, time.Second, 5*time.Millisecond)

	header.Set(middleware.SessionHeader, "blocked")
	header.Set("Origin", "https://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, hub.ClientCount("blocked"))
}

func TestWSHandler_AllOriginsAndCookieSession(t *testing.T) {
	hub, url := newWSServer(t, "*")

	header := http.Header{}
	header.Set("Origin", "https://anywhere.example")
	header.Set("Cookie", middleware.SessionCookie+"=from-cookie")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	assert.Eventually(t, func() bool { return hub.ClientCount("from-cookie") == 1 }, time.Second, 5*time.Millisecond)

	hub.SendToSession("from-cookie", &ws.Event{Type: ws.EventNotification, Payload: "hi"})
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var e ws.Event
	require.NoError(t, conn.ReadJSON(&e))
	assert.Equal(t, ws.EventNotification, e.Type)
	assert.Equal(t, "hi", e.Payload)
}

func TestParseOrigins(t *testing.T) {
	assert.Empty(t, parseOrigins(""))
	assert.Empty(t, parseOrigins("*"))
	assert.Equal(t, []string{"https://a", "https://b"}, parseOrigins(" https://a ,, https://b "))
}
