package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pg-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *Hub, userID int) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r, userID)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPushDeliversToOwner(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, 7)

	// Let the server goroutine register the connection
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients[7]) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Push(&models.Notification{ID: 1, UserID: 7, Message: "rent verified"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var got models.Notification
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "rent verified", got.Message)
	assert.Equal(t, 7, got.UserID)
}

func TestPushToOtherUserNotDelivered(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, 7)

	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients[7]) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Push(&models.Notification{ID: 2, UserID: 8, Message: "not for you"})

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var got models.Notification
	assert.Error(t, conn.ReadJSON(&got))
}

func TestPushWithoutClients(t *testing.T) {
	hub := NewHub()
	// No connections registered; must not panic
	hub.Push(&models.Notification{ID: 3, UserID: 1, Message: "nobody home"})
	hub.Push(nil)
	hub.PushAll([]*models.Notification{{ID: 4, UserID: 2, Message: "still nobody"}})
}
