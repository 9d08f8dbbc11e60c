// Package realtime fans out room change notifications to subscribers.
// Every successful save of a room publishes one notification; SSE handlers
// subscribe per room and re-project state on each signal.
package realtime

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// BufferSize is the per-subscriber channel buffer.
const BufferSize = 10

// Notification signals that a room changed.
type Notification struct {
	RoomID string `json:"room_id"`
	Op     string `json:"op"`
}

// Hub tracks subscribers per room.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Notification]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[chan Notification]struct{}),
	}
}

// Subscribe registers a subscriber for one room. The returned cancel
// function must be called when the subscriber goes away.
func (h *Hub) Subscribe(roomID string) (<-chan Notification, func()) {
	ch := make(chan Notification, BufferSize)

	h.mu.Lock()
	if h.subs[roomID] == nil {
		h.subs[roomID] = make(map[chan Notification]struct{})
	}
	h.subs[roomID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[roomID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, roomID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish notifies all subscribers of a room. Slow subscribers with a full
// buffer are skipped rather than blocking the publisher.
func (h *Hub) Publish(roomID, op string) {
	h.mu.RLock()
	channels := make([]chan Notification, 0, len(h.subs[roomID]))
	for ch := range h.subs[roomID] {
		channels = append(channels, ch)
	}
	h.mu.RUnlock()

	n := Notification{RoomID: roomID, Op: op}
	dropped := 0
	for _, ch := range channels {
		select {
		case ch <- n:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		log.Debug().
			Str("room_id", roomID).
			Str("op", op).
			Int("dropped", dropped).
			Msg("dropped notifications for slow subscribers")
	}
}

// SubscriberCount returns the number of subscribers for a room.
func (h *Hub) SubscriberCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[roomID])
}
