package service

import (
	"context"

	"github.com/google/uuid"

	"lixi-server/internal/game/inventory"
	"lixi-server/internal/model"
)

// ManipulateAction is a coarse host intervention on the draw odds.
type ManipulateAction string

const (
	// ActionTighten biases draws towards traps and away from big money.
	ActionTighten ManipulateAction = "tighten"
	// ActionRelease biases draws towards big money.
	ActionRelease ManipulateAction = "release"
	// ActionShuffle physically reshuffles the remaining inventory.
	ActionShuffle ManipulateAction = "shuffle"
)

// ManipulateInventory applies a coarse weight preset or reshuffles the
// physical inventory. Presets only bias future draws, never past ones.
func (s *RoomService) ManipulateInventory(ctx context.Context, roomID string, action ManipulateAction) error {
	return s.update(ctx, roomID, "manipulate_inventory", func(room *model.Room) error {
		if room.Weights == nil {
			room.Weights = map[string]int{}
		}

		switch action {
		case ActionShuffle:
			inventory.Shuffle(room.Inventory)
		case ActionTighten:
			room.Weights["500000"] = 1
			room.Weights["200000"] = 5
			room.Weights["50000"] = 10
			room.Weights[model.TrapKey] = 80
		case ActionRelease:
			room.Weights["500000"] = 50
			room.Weights["200000"] = 40
			room.Weights["50000"] = 30
			room.Weights[model.TrapKey] = 10
		default:
			return ErrInvalidAction
		}
		return nil
	})
}

// SetProbabilities merges a weight patch into the room's weight table.
func (s *RoomService) SetProbabilities(ctx context.Context, roomID string, patch map[string]int) error {
	return s.update(ctx, roomID, "set_probabilities", func(room *model.Room) error {
		if room.Weights == nil {
			room.Weights = map[string]int{}
		}
		for key, w := range patch {
			room.Weights[key] = w
		}
		return nil
	})
}

// LiveSwapTrap arms a trap mid-game. With a slot id the trap becomes a
// one-shot targeted override consumed on that slot's next open; with slot
// id 0 the trap is appended to the inventory and the trap weight is
// boosted so it surfaces soon.
func (s *RoomService) LiveSwapTrap(ctx context.Context, roomID string, slotID int, content string) error {
	return s.update(ctx, roomID, "live_swap_trap", func(room *model.Room) error {
		trap := model.TrapItem{
			ID:        "swap-" + uuid.NewString(),
			Type:      model.TrapAction,
			Content:   content,
			Intensity: 3,
		}

		if slotID > 0 {
			if room.Slot(slotID) == nil {
				return ErrInvalidAction
			}
			if room.TargetedTraps == nil {
				room.TargetedTraps = map[int]model.TrapItem{}
			}
			room.TargetedTraps[slotID] = trap
			return nil
		}

		room.Inventory = append(room.Inventory, model.TrapOf(trap))
		if room.Weights == nil {
			room.Weights = map[string]int{}
		}
		room.Weights[model.TrapKey] = 1000
		return nil
	})
}

// SetChallenge publishes a host-issued challenge to the room.
func (s *RoomService) SetChallenge(ctx context.Context, roomID string, content string, durationSeconds int) error {
	return s.update(ctx, roomID, "set_challenge", func(room *model.Room) error {
		room.ActiveChallenge = &model.ChallengeItem{
			ID:       uuid.NewString(),
			Content:  content,
			Duration: durationSeconds,
		}
		return nil
	})
}

// SetAdConfig stores sponsor configuration passed through to client/TV
// views.
func (s *RoomService) SetAdConfig(ctx context.Context, roomID string, cfg model.AdConfig) error {
	return s.update(ctx, roomID, "set_ad_config", func(room *model.Room) error {
		c := cfg
		room.AdConfig = &c
		return nil
	})
}
