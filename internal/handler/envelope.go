package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"lixi-server/internal/service"
)

func slotParam(c *gin.Context) (int, bool) {
	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil || slot < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid envelope id"})
		return 0, false
	}
	return slot, true
}

type interactRequest struct {
	DeviceID string `json:"device_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// InteractEnvelope handles lock/unlock/hover gestures on a slot.
func (h *Handler) InteractEnvelope(c *gin.Context) {
	slot, okSlot := slotParam(c)
	if !okSlot {
		return
	}
	var req interactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	err := h.rooms.InteractEnvelope(c.Request.Context(), c.Param("room"), slot, req.DeviceID, service.Interaction(req.Action))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

type openRequest struct {
	PlayerName string `json:"player_name" binding:"required"`
	DeviceID   string `json:"device_id" binding:"required"`
}

// OpenEnvelope runs one draw and reveals the outcome.
func (h *Handler) OpenEnvelope(c *gin.Context) {
	slot, okSlot := slotParam(c)
	if !okSlot {
		return
	}
	var req openRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	outcome, err := h.rooms.OpenEnvelope(c.Request.Context(), c.Param("room"), req.PlayerName, slot, req.DeviceID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"result": outcome.Result, "wish": outcome.Wish})
}

type playerRequest struct {
	PlayerName string `json:"player_name" binding:"required"`
}

// RequestRedemption starts a player's recovery flow.
func (h *Handler) RequestRedemption(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.rooms.RequestRedemption(c.Request.Context(), c.Param("room"), req.PlayerName); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// ApproveRedemption marks a player's redemption as completed.
func (h *Handler) ApproveRedemption(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.rooms.ApproveRedemption(c.Request.Context(), c.Param("room"), req.PlayerName); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

type hesitationRequest struct {
	PlayerName string `json:"player_name" binding:"required"`
	EnvelopeID int    `json:"envelope_id" binding:"required"`
	DeviceID   string `json:"device_id" binding:"required"`
}

// ReportHesitation records a hesitation signal for the advisor.
func (h *Handler) ReportHesitation(c *gin.Context) {
	var req hesitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	err := h.rooms.ReportHesitation(c.Request.Context(), c.Param("room"), req.PlayerName, req.EnvelopeID, req.DeviceID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}
