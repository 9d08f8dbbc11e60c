package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/samber/lo"

	"lixi-server/internal/advisor"
	"lixi-server/internal/game/inventory"
	"lixi-server/internal/model"
)

// LeaderboardEntry is one row of the room leaderboard, sorted by amount
// descending. Only the top entry with a positive amount gets a badge.
type LeaderboardEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int64  `json:"amount"`
	Badge  string `json:"badge,omitempty"`
}

// RoomStats is the read-only projection served to host, player and TV
// views. It is recomputed on every call; nothing here is cached.
type RoomStats struct {
	Status           model.RoomStatus     `json:"status"`
	ParticipantCount int                  `json:"participant_count"`
	Participants     []model.Participant  `json:"participants"`
	Remaining        map[string]int       `json:"remaining"`
	TotalInitial     int                  `json:"total_initial"`
	TotalRemaining   int                  `json:"total_remaining"`
	Leaderboard      []LeaderboardEntry   `json:"leaderboard"`
	History          []model.DrawResult   `json:"history"`
	Envelopes        []model.EnvelopeSlot `json:"envelopes"`
	AIInsights       []advisor.Insight    `json:"ai_insights"`
	Weights          map[string]int       `json:"weights,omitempty"`
	AdConfig         *model.AdConfig      `json:"ad_config,omitempty"`
}

// Stats projects the current room state into the host/player view.
func (s *RoomService) Stats(ctx context.Context, roomID string) (*RoomStats, error) {
	room, err := s.Room(ctx, roomID)
	if err != nil {
		return nil, err
	}

	return &RoomStats{
		Status:           room.Status,
		ParticipantCount: len(room.Participants),
		Participants:     room.Participants,
		Remaining:        inventory.RemainingCounts(room.Inventory),
		TotalInitial:     room.InitialCount,
		TotalRemaining:   len(room.Inventory),
		Leaderboard:      projectLeaderboard(room.History),
		History:          room.History,
		Envelopes:        room.Envelopes,
		AIInsights:       advisor.Analyze(room, time.Now().UnixMilli()),
		Weights:          room.Weights,
		AdConfig:         room.AdConfig,
	}, nil
}

// Leaderboard returns just the leaderboard slice of Stats.
func (s *RoomService) Leaderboard(ctx context.Context, roomID string) ([]LeaderboardEntry, error) {
	room, err := s.Room(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return projectLeaderboard(room.History), nil
}

func projectLeaderboard(history []model.DrawResult) []LeaderboardEntry {
	sorted := make([]model.DrawResult, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount > sorted[j].Amount
	})

	return lo.Map(sorted, func(h model.DrawResult, idx int) LeaderboardEntry {
		entry := LeaderboardEntry{
			ID:     strconv.Itoa(idx),
			Name:   h.PlayerName,
			Amount: h.Amount,
		}
		if idx == 0 && h.Amount > 0 {
			entry.Badge = "Top 1"
		}
		return entry
	})
}
