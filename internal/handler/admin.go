package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lixi-server/internal/model"
	"lixi-server/internal/service"
	"lixi-server/internal/trap"
)

type manipulateRequest struct {
	Action string `json:"action" binding:"required"`
}

// ManipulateInventory applies a tighten/release/shuffle intervention.
func (h *Handler) ManipulateInventory(c *gin.Context) {
	var req manipulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	err := h.rooms.ManipulateInventory(c.Request.Context(), c.Param("room"), service.ManipulateAction(req.Action))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

type weightsRequest struct {
	Weights map[string]int `json:"weights" binding:"required"`
}

// SetProbabilities merges a weight patch into the room.
func (h *Handler) SetProbabilities(c *gin.Context) {
	var req weightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.rooms.SetProbabilities(c.Request.Context(), c.Param("room"), req.Weights); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

type trapSwapRequest struct {
	EnvelopeID int    `json:"envelope_id"` // 0 targets no slot, boosts the next trap instead
	Content    string `json:"content" binding:"required"`
}

// LiveSwapTrap arms a targeted or general trap mid-game.
func (h *Handler) LiveSwapTrap(c *gin.Context) {
	var req trapSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.rooms.LiveSwapTrap(c.Request.Context(), c.Param("room"), req.EnvelopeID, req.Content); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

type challengeRequest struct {
	Content  string `json:"content" binding:"required"`
	Duration int    `json:"duration"`
}

// SetChallenge publishes a host challenge.
func (h *Handler) SetChallenge(c *gin.Context) {
	var req challengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.rooms.SetChallenge(c.Request.Context(), c.Param("room"), req.Content, req.Duration); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// SetAdConfig stores sponsor configuration.
func (h *Handler) SetAdConfig(c *gin.Context) {
	var cfg model.AdConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.rooms.SetAdConfig(c.Request.Context(), c.Param("room"), cfg); err != nil {
		fail(c, err)
		return
	}
	ok(c, nil)
}

// TrapCatalog serves the built-in trap library, optionally filtered.
func (h *Handler) TrapCatalog(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, gin.H{"traps": trap.ByCategory(category)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"traps": trap.Library})
}

// SuggestTrap picks a trap for a persona description.
func (h *Handler) SuggestTrap(c *gin.Context) {
	persona := c.Query("persona")
	c.JSON(http.StatusOK, gin.H{"trap": trap.SuggestForPersona(persona)})
}
