package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"lixi-server/internal/game/draw"
	"lixi-server/internal/game/envelope"
	"lixi-server/internal/game/inventory"
	"lixi-server/internal/model"
	"lixi-server/internal/wish"
)

// Interaction is a pre-open envelope gesture.
type Interaction string

const (
	InteractLock   Interaction = "lock"
	InteractUnlock Interaction = "unlock"
	InteractHover  Interaction = "hover"
)

// InteractEnvelope handles pre-open gestures on a slot. Stale locks are
// expired lazily before the action is applied. Hover is accepted and
// ignored; unlock releases the caller's own hold.
func (s *RoomService) InteractEnvelope(ctx context.Context, roomID string, slotID int, deviceID string, action Interaction) error {
	return s.update(ctx, roomID, "interact_envelope", func(room *model.Room) error {
		slot := room.Slot(slotID)
		if slot == nil {
			return envelope.ErrSlotNotFound
		}

		now := time.Now().UnixMilli()
		switch action {
		case InteractLock:
			return envelope.Lock(slot, deviceID, now, s.cfg.SlotLockTTL)
		case InteractUnlock:
			envelope.ExpireStaleLock(slot, now, s.cfg.SlotLockTTL)
			envelope.Unlock(slot, deviceID)
			return nil
		case InteractHover:
			envelope.ExpireStaleLock(slot, now, s.cfg.SlotLockTTL)
			return nil
		default:
			return ErrInvalidAction
		}
	})
}

// OpenOutcome is the result of a successful envelope open.
type OpenOutcome struct {
	Result model.DrawResult `json:"result"`
	Wish   string           `json:"wish"`
}

// OpenEnvelope runs one draw transaction. Preconditions are checked in
// order (slot exists, not opened, not held by another device, inventory
// non-empty), then the drawn item is resolved by the first matching rule:
// targeted trap override, redemption-safe draw, weighted draw. The slot,
// inventory, history and player luck are all updated in the same
// serialized command.
func (s *RoomService) OpenEnvelope(ctx context.Context, roomID, playerName string, slotID int, deviceID string) (*OpenOutcome, error) {
	var outcome *OpenOutcome
	err := s.update(ctx, roomID, "open_envelope", func(room *model.Room) error {
		if room.Status == model.StatusEnded {
			return ErrRoomEnded
		}

		slot := room.Slot(slotID)
		if slot == nil {
			return envelope.ErrSlotNotFound
		}
		now := time.Now().UnixMilli()
		if err := envelope.CanOpen(slot, deviceID, now, s.cfg.SlotLockTTL); err != nil {
			return err
		}
		if len(room.Inventory) == 0 {
			return ErrOutOfStock
		}

		item, index := s.resolveItem(room, playerName, slotID)

		// Targeted overrides were never part of the inventory; only
		// physical items are spliced out.
		if index >= 0 {
			room.Inventory = append(room.Inventory[:index], room.Inventory[index+1:]...)
		}

		var wishText string
		if item.IsMoney() {
			wishText = wish.Generate(playerName, item.Amount)
			// A big win forgives prior bad luck.
			if item.Amount >= s.cfg.BigWinAmount {
				s.setLuck(room, playerName, 1.0)
			}
		} else {
			wishText = item.Trap.Content
			if wishText == "" {
				wishText = "Trap"
			}
			s.setLuck(room, playerName, s.luck(room, playerName)+0.5)
		}

		envelope.MarkOpened(slot, playerName, item)

		amount := int64(0)
		if item.IsMoney() {
			amount = item.Amount
		}
		result := model.DrawResult{
			PlayerName: playerName,
			Amount:     amount,
			IsTrap:     !item.IsMoney(),
			Trap:       item.Trap,
			DeviceID:   deviceID,
			Timestamp:  now,
			KarmaScore: draw.Karma(amount, !item.IsMoney()),
		}
		room.History = append(room.History, result)

		outcome = &OpenOutcome{Result: result, Wish: wishText}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("room_id", roomID).
		Str("player", playerName).
		Int("slot", slotID).
		Int64("amount", outcome.Result.Amount).
		Bool("trap", outcome.Result.IsTrap).
		Msg("envelope opened")
	return outcome, nil
}

// resolveItem picks the drawn item. The returned index is the inventory
// position to splice, or -1 for targeted overrides which bypass the
// inventory entirely.
func (s *RoomService) resolveItem(room *model.Room, playerName string, slotID int) (model.Item, int) {
	// Targeted trap override: one-shot, highest priority.
	if trap, ok := room.TargetedTraps[slotID]; ok {
		delete(room.TargetedTraps, slotID)
		return model.TrapOf(trap), -1
	}

	// Redemption-safe draw: a player who just completed a forfeit gets a
	// guaranteed non-punishing outcome when any money remains.
	if p := room.ParticipantByName(playerName); p != nil &&
		p.Redemption != nil && p.Redemption.Status == model.RedemptionCompleted {
		if i := inventory.FirstMoneyBelow(room.Inventory, s.cfg.SafeAmount); i >= 0 {
			return room.Inventory[i], i
		}
		if !inventory.HasMoney(room.Inventory) {
			// Consolation injection.
			room.Inventory = append(room.Inventory, model.MoneyItem(s.cfg.ConsolationAmount))
			i := len(room.Inventory) - 1
			return room.Inventory[i], i
		}
	}

	return draw.SelectWeighted(room.Inventory, room.Weights, s.cfg.DefaultWeight)
}

func (s *RoomService) luck(room *model.Room, playerName string) float64 {
	if room.AccumulatedLuck == nil {
		return 1.0
	}
	if v, ok := room.AccumulatedLuck[playerName]; ok {
		return v
	}
	return 1.0
}

func (s *RoomService) setLuck(room *model.Room, playerName string, v float64) {
	if room.AccumulatedLuck == nil {
		room.AccumulatedLuck = map[string]float64{}
	}
	room.AccumulatedLuck[playerName] = v
}

// RequestRedemption marks a player as requesting a recovery challenge
// after drawing a trap.
func (s *RoomService) RequestRedemption(ctx context.Context, roomID, playerName string) error {
	return s.update(ctx, roomID, "request_redemption", func(room *model.Room) error {
		p := room.ParticipantByName(playerName)
		if p == nil {
			return ErrPlayerNotFound
		}
		p.Redemption = &model.Redemption{
			Status:    model.RedemptionRequested,
			Timestamp: time.Now().UnixMilli(),
		}
		return nil
	})
}

// ApproveRedemption marks a player's redemption as completed, arming the
// redemption-safe draw for their next open.
func (s *RoomService) ApproveRedemption(ctx context.Context, roomID, playerName string) error {
	return s.update(ctx, roomID, "approve_redemption", func(room *model.Room) error {
		p := room.ParticipantByName(playerName)
		if p == nil || p.Redemption == nil {
			return ErrPlayerNotFound
		}
		p.Redemption.Status = model.RedemptionCompleted
		return nil
	})
}

// ReportHesitation records a player hovering an envelope for too long.
// The signal lands in the room's bounded event buffer for the advisor.
func (s *RoomService) ReportHesitation(ctx context.Context, roomID, playerName string, slotID int, deviceID string) error {
	return s.update(ctx, roomID, "report_hesitation", func(room *model.Room) error {
		room.PushEvent(model.RoomEvent{
			Type:       model.EventHesitation,
			PlayerName: playerName,
			DeviceID:   deviceID,
			EnvelopeID: slotID,
			Timestamp:  time.Now().UnixMilli(),
		})
		return nil
	})
}
