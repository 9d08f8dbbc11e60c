// Package handler exposes the room service over a JSON HTTP API.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lixi-server/internal/game/envelope"
	"lixi-server/internal/service"
)

// Handler wires HTTP routes to the room service.
type Handler struct {
	rooms *service.RoomService
}

// New creates a new Handler instance.
func New(rooms *service.RoomService) *Handler {
	return &Handler{rooms: rooms}
}

// RegisterRoutes mounts all API routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	api := r.Group("/api/v1")
	{
		api.POST("/rooms", h.CreateRoom)
		api.GET("/rooms", h.ListRooms)
		api.POST("/rooms/join", h.JoinRoom)

		room := api.Group("/rooms/:room")
		{
			room.GET("/stats", h.Stats)
			room.GET("/leaderboard", h.Leaderboard)
			room.GET("/events", h.Events)

			room.POST("/start", h.StartGame)
			room.POST("/pause", h.PauseGame)
			room.POST("/close", h.CloseRoom)

			room.POST("/envelopes/:slot/interact", h.InteractEnvelope)
			room.POST("/envelopes/:slot/open", h.OpenEnvelope)

			room.POST("/redemption/request", h.RequestRedemption)
			room.POST("/redemption/approve", h.ApproveRedemption)
			room.POST("/hesitation", h.ReportHesitation)

			room.POST("/manipulate", h.ManipulateInventory)
			room.POST("/weights", h.SetProbabilities)
			room.POST("/trap-swap", h.LiveSwapTrap)
			room.POST("/challenge", h.SetChallenge)
			room.POST("/ad-config", h.SetAdConfig)
		}

		api.GET("/traps", h.TrapCatalog)
		api.GET("/traps/suggest", h.SuggestTrap)
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail writes the typed, non-fatal failure shape shared by every
// operation: {"success": false, "error": "..."} plus an out_of_stock flag
// callers use to disable further play.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrRoomNotFound),
		errors.Is(err, envelope.ErrSlotNotFound),
		errors.Is(err, service.ErrPlayerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateName),
		errors.Is(err, envelope.ErrAlreadyOpened),
		errors.Is(err, envelope.ErrAlreadyHeld),
		errors.Is(err, envelope.ErrHeldByOther),
		errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrRoomEnded):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidAction):
		status = http.StatusBadRequest
	}

	body := gin.H{"success": false, "error": err.Error()}
	if errors.Is(err, service.ErrOutOfStock) {
		body["out_of_stock"] = true
	}
	c.JSON(status, body)
}

func ok(c *gin.Context, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}
