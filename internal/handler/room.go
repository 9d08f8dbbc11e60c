package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lixi-server/internal/model"
)

type createRoomRequest struct {
	Counts map[int64]int    `json:"counts" binding:"required"`
	Traps  []model.TrapItem `json:"traps"`
}

// CreateRoom builds a new room from host settings.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	room, err := h.rooms.CreateRoom(c.Request.Context(), model.RoomSettings{
		Counts: req.Counts,
		Traps:  req.Traps,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"id": room.ID, "code": room.Code, "initial_count": room.InitialCount})
}

type joinRoomRequest struct {
	Code       string `json:"code" binding:"required"`
	PlayerName string `json:"player_name" binding:"required"`
	DeviceID   string `json:"device_id" binding:"required"`
}

// JoinRoom joins (or recovers) a player by join code.
func (h *Handler) JoinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.rooms.JoinRoom(c.Request.Context(), req.Code, req.PlayerName, req.DeviceID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"room_id": result.RoomID, "status": result.Status, "recovered": result.Recovered})
}

// Stats serves the full read-side projection of a room.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.rooms.Stats(c.Request.Context(), c.Param("room"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Leaderboard serves just the leaderboard.
func (h *Handler) Leaderboard(c *gin.Context) {
	board, err := h.rooms.Leaderboard(c.Request.Context(), c.Param("room"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": board})
}

// ListRooms serves all rooms for the admin dashboard.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.rooms.ListRooms(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// StartGame moves the room to playing.
func (h *Handler) StartGame(c *gin.Context) {
	if err := h.rooms.StartGame(c.Request.Context(), c.Param("room")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

type pauseRequest struct {
	Paused bool `json:"paused"`
}

// PauseGame toggles paused/playing.
func (h *Handler) PauseGame(c *gin.Context) {
	var req pauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	status, err := h.rooms.PauseGame(c.Request.Context(), c.Param("room"), req.Paused)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"status": status})
}

// CloseRoom terminally ends the room.
func (h *Handler) CloseRoom(c *gin.Context) {
	if err := h.rooms.CloseRoom(c.Request.Context(), c.Param("room")); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
