package websocket

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
)

// Event is the frame pushed to subscribers of a room
type Event struct {
	// Type of event, e.g. "chat.message"
	Type string `json:"type"`

	// Room (course) the event belongs to
	RoomID int64 `json:"courseId"`

	// Payload, serialised as-is
	Data interface{} `json:"data"`
}

// Hub keeps the subscribers of every room and fans events out to them.
// All room state is owned by the Run goroutine.
type Hub struct {
	// Subscribed clients organized by room ID
	rooms map[int64]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan *Event
	done       chan struct{}
	closeOnce  sync.Once

	// Guards rooms for readers outside Run
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Event, 64),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and broadcasts until Close is called
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case event := <-h.broadcast:
			h.broadcastEvent(event)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Close stops Run and disconnects every client. It is safe to call twice.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Publish queues an event for the room's subscribers. It never blocks on a
// stopped hub.
func (h *Hub) Publish(roomID int64, eventType string, data interface{}) {
	select {
	case h.broadcast <- &Event{Type: eventType, RoomID: roomID, Data: data}:
	case <-h.done:
	}
}

// ClientCount returns the number of subscribers of a room
func (h *Hub) ClientCount(roomID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.roomID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[client.roomID] = room
	}
	room[client] = struct{}{}

	h.logger.Info().
		Int64("courseID", client.roomID).
		Int64("principalID", client.principalID).
		Msg("Client subscribed")
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(client)
}

// dropLocked removes client and closes its send channel; callers hold h.mu
func (h *Hub) dropLocked(client *Client) {
	room, ok := h.rooms[client.roomID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}
	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.roomID)
	}

	h.logger.Info().
		Int64("courseID", client.roomID).
		Int64("principalID", client.principalID).
		Msg("Client unsubscribed")
}

func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Int64("courseID", event.RoomID).Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[event.RoomID]
	for client := range room {
		select {
		case client.send <- data:
		default:
			// Slow subscriber; it can catch up by polling the message list
			h.dropLocked(client)
		}
	}

	h.logger.Debug().
		Int64("courseID", event.RoomID).
		Int("clientCount", len(room)).
		Msg("Event broadcasted to room")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range h.rooms {
		for client := range room {
			h.dropLocked(client)
		}
	}
}
