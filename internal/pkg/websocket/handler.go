package websocket

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Options configures subscriber connections
type Options struct {
	SendBuffer     int
	PingInterval   time.Duration
	AllowedOrigins []string
}

// Handler upgrades authorized requests into room subscriptions
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	opts     Options
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, opts Options, logger zerolog.Logger) *Handler {
	if opts.SendBuffer < 1 {
		opts.SendBuffer = 256
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = 30 * time.Second
	}
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(opts.AllowedOrigins),
		},
		opts:   opts,
		logger: logger,
	}
}

// originChecker accepts requests without an Origin header, or whose origin is
// listed; "*" allows any origin
func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// Subscribe upgrades the connection and joins the room. The caller must have
// authorized the principal for the room already. On upgrade failure a
// response has been written by the upgrader.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request, roomID, principalID int64) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("courseID", roomID).
			Int64("principalID", principalID).
			Msg("Failed to upgrade connection to WebSocket")
		return err
	}

	client := &Client{
		hub:          h.hub,
		conn:         conn,
		send:         make(chan []byte, h.opts.SendBuffer),
		roomID:       roomID,
		principalID:  principalID,
		pingInterval: h.opts.PingInterval,
		logger:       h.logger,
	}

	select {
	case h.hub.register <- client:
	case <-h.hub.done:
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()
	return nil
}
