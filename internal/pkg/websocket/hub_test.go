package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRoomServer(t *testing.T, hub *Hub, roomID int64) string {
	t.Helper()
	h := NewHandler(hub, Options{SendBuffer: 4, PingInterval: time.Second, AllowedOrigins: []string{"*"}}, zerolog.Nop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = h.Subscribe(w, r, roomID, 7)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestPublishReachesRoomSubscribers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()
	defer hub.Close()

	conn, _, err := websocket.DefaultDialer.Dial(startRoomServer(t, hub, 3), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount(3) == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(4, "chat.message", map[string]string{"message": "other room"})
	hub.Publish(3, "chat.message", map[string]string{"message": "hello"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type   string            `json:"type"`
		RoomID int64             `json:"courseId"`
		Data   map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(frame, &got))
	assert.Equal(t, "chat.message", got.Type)
	assert.Equal(t, int64(3), got.RoomID)
	assert.Equal(t, "hello", got.Data["message"])
}

func TestCloseDisconnectsSubscribers(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	go hub.Run()

	conn, _, err := websocket.DefaultDialer.Dial(startRoomServer(t, hub, 1), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount(1) == 1 }, time.Second, 10*time.Millisecond)

	hub.Close()
	hub.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Equal(t, 0, hub.ClientCount(1))

	// Publishing on a stopped hub must not block
	hub.Publish(1, "chat.message", nil)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"https://app.example.com"})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, check(r))

	r.Header.Set("Origin", "https://app.example.com")
	assert.True(t, check(r))

	r.Header.Set("Origin", "https://evil.example.com")
	assert.False(t, check(r))
}
