package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// keepAliveInterval spaces out SSE comments so idle proxies keep the
// stream open.
const keepAliveInterval = 30 * time.Second

// Events streams room change notifications over Server-Sent Events.
// Clients re-fetch stats on every "update" event; payloads carry only the
// room id and the operation that changed it.
func (h *Handler) Events(c *gin.Context) {
	room, err := h.rooms.Room(c.Request.Context(), c.Param("room"))
	if err != nil {
		fail(c, err)
		return
	}

	ch, cancel := h.rooms.Subscribe(room.ID)
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	flusher, okFlush := c.Writer.(http.Flusher)
	if !okFlush {
		return
	}

	fmt.Fprintf(c.Writer, "event: connected\ndata: {\"room_id\":%q}\n\n", room.ID)
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-keepAlive.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()
		case n := <-ch:
			data, err := json.Marshal(n)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: update\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
