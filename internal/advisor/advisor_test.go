package advisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lixi-server/internal/model"
)

// roomWithHistory builds a room where opened = len(history) out of
// initial items.
func roomWithHistory(initial int, history []model.DrawResult) *model.Room {
	room := &model.Room{
		ID:           "room-TEST01",
		InitialCount: initial,
		History:      history,
	}
	for i := len(history); i < initial; i++ {
		room.Inventory = append(room.Inventory, model.MoneyItem(10000))
	}
	return room
}

func nWins(n int, amount int64) []model.DrawResult {
	out := make([]model.DrawResult, n)
	for i := range out {
		out[i] = model.DrawResult{PlayerName: "P", Amount: amount}
	}
	return out
}

func nTraps(n int) []model.DrawResult {
	out := make([]model.DrawResult, n)
	for i := range out {
		out[i] = model.DrawResult{PlayerName: "P", IsTrap: true}
	}
	return out
}

func TestAnalyze_QuietRoom(t *testing.T) {
	now := time.Now().UnixMilli()
	room := roomWithHistory(10, nil)

	assert.Empty(t, Analyze(room, now))
}

func TestAnalyze_EconomyWarning(t *testing.T) {
	now := time.Now().UnixMilli()

	t.Run("rich wins above threshold", func(t *testing.T) {
		// 6 of 7 opens are 100k wins: 86% > 60%.
		history := append(nWins(6, 100000), nTraps(1)...)
		room := roomWithHistory(10, history)

		insights := Analyze(room, now)
		require.Len(t, insights, 1)
		assert.Equal(t, TypeWarning, insights[0].Type)
		assert.Equal(t, ActionTighten, insights[0].Action)
	})

	t.Run("small wins do not count", func(t *testing.T) {
		history := nWins(7, 20000)
		room := roomWithHistory(10, history)

		assert.Empty(t, Analyze(room, now))
	})

	t.Run("too few opens for trends", func(t *testing.T) {
		history := nWins(5, 100000)
		room := roomWithHistory(10, history)

		assert.Empty(t, Analyze(room, now))
	})
}

func TestAnalyze_MoodOpportunity(t *testing.T) {
	now := time.Now().UnixMilli()

	// 6 of 8 opens are traps: 75% > 70%.
	history := append(nTraps(6), nWins(2, 10000)...)
	room := roomWithHistory(12, history)

	insights := Analyze(room, now)
	require.Len(t, insights, 1)
	assert.Equal(t, TypeOpportunity, insights[0].Type)
	assert.Equal(t, ActionRelease, insights[0].Action)
}

func TestAnalyze_Hesitation(t *testing.T) {
	now := time.Now().UnixMilli()

	t.Run("recent hesitation surfaces", func(t *testing.T) {
		room := roomWithHistory(10, nil)
		room.ActiveEvents = []model.RoomEvent{
			{
				Type:       model.EventHesitation,
				PlayerName: "An",
				DeviceID:   "dev-1",
				EnvelopeID: 3,
				Timestamp:  now - 2000,
			},
		}

		insights := Analyze(room, now)
		require.Len(t, insights, 1)
		assert.Equal(t, TypeTroll, insights[0].Type)
		assert.Equal(t, ActionShuffle, insights[0].Action)
		assert.Equal(t, "An", insights[0].TargetPlayer)
		assert.Equal(t, 3, insights[0].TargetEnvelope)
		assert.Contains(t, insights[0].Message, "An")
	})

	t.Run("old hesitation expires", func(t *testing.T) {
		room := roomWithHistory(10, nil)
		room.ActiveEvents = []model.RoomEvent{
			{
				Type:       model.EventHesitation,
				PlayerName: "An",
				DeviceID:   "dev-1",
				EnvelopeID: 3,
				Timestamp:  now - 10000,
			},
		}

		assert.Empty(t, Analyze(room, now))
	})
}

func TestAnalyze_CombinedSignals(t *testing.T) {
	now := time.Now().UnixMilli()

	history := append(nWins(6, 100000), nTraps(1)...)
	room := roomWithHistory(10, history)
	room.ActiveEvents = []model.RoomEvent{
		{Type: model.EventHesitation, PlayerName: "An", DeviceID: "dev-1", EnvelopeID: 8, Timestamp: now - 1000},
	}

	insights := Analyze(room, now)
	require.Len(t, insights, 2)
	assert.Equal(t, TypeWarning, insights[0].Type)
	assert.Equal(t, TypeTroll, insights[1].Type)
}
