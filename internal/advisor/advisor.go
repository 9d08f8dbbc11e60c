// Package advisor derives read-only host-facing insights from a room
// snapshot. Suggestions are never auto-applied; the host acts on them
// through the normal god-mode operations.
package advisor

import (
	"fmt"

	"github.com/samber/lo"

	"lixi-server/internal/model"
)

// Insight types.
const (
	TypeWarning     = "warning"
	TypeOpportunity = "opportunity"
	TypeTroll       = "troll"
)

// Suggested host actions.
const (
	ActionTighten = "tighten"
	ActionRelease = "release"
	ActionShuffle = "shuffle"
)

// Insight is one host-facing nudge.
type Insight struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Message        string `json:"message"`
	Action         string `json:"action,omitempty"`
	TargetPlayer   string `json:"target_player,omitempty"`
	TargetEnvelope int    `json:"target_envelope,omitempty"`
	Timestamp      int64  `json:"timestamp"`
}

const (
	minOpenedForTrends = 5
	richWinAmount      = 50000
	richWinRatio       = 0.6
	trapMoodRatio      = 0.7
	hesitationWindowMS = 5000
)

// Analyze inspects economy, mood and recent hesitation signals. now is
// unix millis.
func Analyze(room *model.Room, now int64) []Insight {
	insights := []Insight{}

	opened := room.InitialCount - len(room.Inventory)

	if opened > minOpenedForTrends {
		richWins := lo.CountBy(room.History, func(h model.DrawResult) bool {
			return !h.IsTrap && h.Amount >= richWinAmount
		})
		if float64(richWins)/float64(opened) > richWinRatio {
			insights = append(insights, Insight{
				ID:        fmt.Sprintf("economy_warning_%d", now),
				Type:      TypeWarning,
				Message:   "Cảnh báo: Tỉ lệ thắng đang quá cao (Luck > 60%). Kho tiền đang vơi nhanh!",
				Action:    ActionTighten,
				Timestamp: now,
			})
		}

		traps := lo.CountBy(room.History, func(h model.DrawResult) bool {
			return h.IsTrap
		})
		if float64(traps)/float64(opened) > trapMoodRatio {
			insights = append(insights, Insight{
				ID:        fmt.Sprintf("mood_sad_%d", now),
				Type:      TypeOpportunity,
				Message:   "Không khí đang trầm lắng (70% dính bẫy). Hãy xả kho để lấy lại tinh thần!",
				Action:    ActionRelease,
				Timestamp: now,
			})
		}
	}

	recent := lo.Filter(room.ActiveEvents, func(e model.RoomEvent, _ int) bool {
		return e.Type == model.EventHesitation && now-e.Timestamp < hesitationWindowMS
	})
	for _, e := range recent {
		insights = append(insights, Insight{
			ID:             "greed_" + e.DeviceID,
			Type:           TypeTroll,
			Message:        fmt.Sprintf("%s đang do dự ở bao #%d quá 3 giây. Có mùi tham lam!", e.PlayerName, e.EnvelopeID),
			Action:         ActionShuffle,
			TargetPlayer:   e.PlayerName,
			TargetEnvelope: e.EnvelopeID,
			Timestamp:      now,
		})
	}

	return insights
}
