package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lixi-server/internal/model"
)

func TestManipulateInventory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("tighten", func(t *testing.T) {
		room := makeRoom(t, svc, defaultSettings(), [2]string{"An", "dev-1"})
		require.NoError(t, svc.ManipulateInventory(ctx, room.ID, ActionTighten))

		updated, _ := svc.Room(ctx, room.ID)
		assert.Equal(t, 1, updated.Weights["500000"])
		assert.Equal(t, 5, updated.Weights["200000"])
		assert.Equal(t, 10, updated.Weights["50000"])
		assert.Equal(t, 80, updated.Weights[model.TrapKey])
	})

	t.Run("release", func(t *testing.T) {
		room := makeRoom(t, svc, defaultSettings(), [2]string{"An", "dev-1"})
		require.NoError(t, svc.ManipulateInventory(ctx, room.ID, ActionRelease))

		updated, _ := svc.Room(ctx, room.ID)
		assert.Equal(t, 50, updated.Weights["500000"])
		assert.Equal(t, 40, updated.Weights["200000"])
		assert.Equal(t, 30, updated.Weights["50000"])
		assert.Equal(t, 10, updated.Weights[model.TrapKey])
	})

	t.Run("shuffle keeps contents", func(t *testing.T) {
		room := makeRoom(t, svc, defaultSettings(), [2]string{"An", "dev-1"})
		before, _ := svc.Room(ctx, room.ID)

		require.NoError(t, svc.ManipulateInventory(ctx, room.ID, ActionShuffle))

		after, _ := svc.Room(ctx, room.ID)
		require.Len(t, after.Inventory, len(before.Inventory))

		countKeys := func(items []model.Item) map[string]int {
			m := make(map[string]int)
			for _, it := range items {
				m[it.Key()]++
			}
			return m
		}
		assert.Equal(t, countKeys(before.Inventory), countKeys(after.Inventory))
	})

	t.Run("unknown action", func(t *testing.T) {
		room := makeRoom(t, svc, defaultSettings(), [2]string{"An", "dev-1"})
		err := svc.ManipulateInventory(ctx, room.ID, ManipulateAction("explode"))
		assert.ErrorIs(t, err, ErrInvalidAction)
	})
}

func TestSetProbabilities(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	room := makeRoom(t, svc, defaultSettings(), [2]string{"An", "dev-1"})

	require.NoError(t, svc.SetProbabilities(ctx, room.ID, map[string]int{"100000": 5}))
	require.NoError(t, svc.SetProbabilities(ctx, room.ID, map[string]int{"50000": 7}))

	// Patches merge, they do not replace.
	updated, _ := svc.Room(ctx, room.ID)
	assert.Equal(t, 5, updated.Weights["100000"])
	assert.Equal(t, 7, updated.Weights["50000"])

	require.NoError(t, svc.SetProbabilities(ctx, room.ID, map[string]int{"100000": 0}))
	updated, _ = svc.Room(ctx, room.ID)
	assert.Equal(t, 0, updated.Weights["100000"])
	assert.Equal(t, 7, updated.Weights["50000"])
}

func TestLiveSwapTrap(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("targeted", func(t *testing.T) {
		room := makeRoom(t, svc, defaultSettings(), [2]string{"An", "dev-1"})
		require.NoError(t, svc.LiveSwapTrap(ctx, room.ID, 3, "Uống một ly nước chanh"))

		updated, _ := svc.Room(ctx, room.ID)
		require.Contains(t, updated.TargetedTraps, 3)
		trap := updated.TargetedTraps[3]
		assert.Equal(t, "Uống một ly nước chanh", trap.Content)
		assert.Equal(t, model.TrapAction, trap.Type)
		// The override sits outside the physical inventory.
		assert.Len(t, updated.Inventory, 4)
	})

	t.Run("targeted at unknown slot rejected", func(t *testing.T) {
		room := makeRoom(t, svc, defaultSettings(), [2]string{"An", "dev-1"})
		err := svc.LiveSwapTrap(ctx, room.ID, 99, "x")
		assert.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("general swap boosts trap odds", func(t *testing.T) {
		room := makeRoom(t, svc, defaultSettings(), [2]string{"An", "dev-1"})
		require.NoError(t, svc.LiveSwapTrap(ctx, room.ID, 0, "Kể một bí mật"))

		updated, _ := svc.Room(ctx, room.ID)
		assert.Len(t, updated.Inventory, 5)
		assert.Equal(t, 1000, updated.Weights[model.TrapKey])
		assert.Empty(t, updated.TargetedTraps)
	})
}

func TestSetChallenge(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	room := makeRoom(t, svc, defaultSettings(), [2]string{"An", "dev-1"})

	require.NoError(t, svc.SetChallenge(ctx, room.ID, "Cả bàn cùng hô: Chúc mừng năm mới!", 30))

	updated, _ := svc.Room(ctx, room.ID)
	require.NotNil(t, updated.ActiveChallenge)
	assert.NotEmpty(t, updated.ActiveChallenge.ID)
	assert.Equal(t, "Cả bàn cùng hô: Chúc mừng năm mới!", updated.ActiveChallenge.Content)
	assert.Equal(t, 30, updated.ActiveChallenge.Duration)
}

func TestSetAdConfig(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	room := makeRoom(t, svc, defaultSettings(), [2]string{"An", "dev-1"})

	cfg := model.AdConfig{
		Enabled:              true,
		Frequency:            3,
		BannerURL:            "https://example.com/banner.png",
		WaitingScreenEnabled: true,
	}
	require.NoError(t, svc.SetAdConfig(ctx, room.ID, cfg))

	updated, _ := svc.Room(ctx, room.ID)
	require.NotNil(t, updated.AdConfig)
	assert.Equal(t, cfg, *updated.AdConfig)
}
