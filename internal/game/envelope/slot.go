// Package envelope implements the per-slot state machine guarding
// concurrent open attempts: available -> locked -> opened, with lazy
// timeout-based lock expiry.
package envelope

import (
	"errors"
	"time"

	"lixi-server/internal/model"
)

// DefaultLockTTL is how long an advisory slot lock is honored before any
// later interaction treats it as stale.
const DefaultLockTTL = 5 * time.Second

// Errors for envelope slot interactions. All are advisory and retryable.
var (
	ErrSlotNotFound  = errors.New("envelope slot not found")
	ErrAlreadyOpened = errors.New("envelope already opened")
	ErrAlreadyHeld   = errors.New("envelope held by another player")
	ErrHeldByOther   = errors.New("envelope locked by another device")
)

// ExpireStaleLock lazily releases a lock whose TTL has passed. There is no
// background timer; expiry is applied at the next interaction with the
// slot.
func ExpireStaleLock(s *model.EnvelopeSlot, now int64, ttl time.Duration) {
	if s.Status != model.SlotLocked {
		return
	}
	if now-s.LockedAt > ttl.Milliseconds() {
		s.Status = model.SlotAvailable
		s.LockedBy = ""
		s.LockedAt = 0
	}
}

// Lock attempts to take the advisory lock on a slot for a device. A lock
// held by a different device fails with ErrAlreadyHeld until it expires;
// re-locking by the same device refreshes the hold. Opened slots fail with
// ErrAlreadyOpened.
func Lock(s *model.EnvelopeSlot, deviceID string, now int64, ttl time.Duration) error {
	ExpireStaleLock(s, now, ttl)

	switch s.Status {
	case model.SlotOpened:
		return ErrAlreadyOpened
	case model.SlotLocked:
		if s.LockedBy != deviceID {
			return ErrAlreadyHeld
		}
	}

	s.Status = model.SlotLocked
	s.LockedBy = deviceID
	s.LockedAt = now
	return nil
}

// Unlock releases the lock if held by the given device. Releasing a slot
// that is not locked by the device is a no-op, not an error.
func Unlock(s *model.EnvelopeSlot, deviceID string) {
	if s.Status == model.SlotLocked && s.LockedBy == deviceID {
		s.Status = model.SlotAvailable
		s.LockedBy = ""
		s.LockedAt = 0
	}
}

// CanOpen checks whether a device may open the slot. Locking first is
// advisory, not mandatory: a slot may be opened directly from available.
func CanOpen(s *model.EnvelopeSlot, deviceID string, now int64, ttl time.Duration) error {
	if s.Status == model.SlotOpened {
		return ErrAlreadyOpened
	}
	ExpireStaleLock(s, now, ttl)
	if s.Status == model.SlotLocked && s.LockedBy != deviceID {
		return ErrHeldByOther
	}
	return nil
}

// MarkOpened moves the slot to its terminal state and reveals the drawn
// item.
func MarkOpened(s *model.EnvelopeSlot, playerName string, item model.Item) {
	s.Status = model.SlotOpened
	s.OpenedBy = playerName
	s.LockedBy = ""
	s.LockedAt = 0
	if item.IsMoney() {
		s.Value = item.Amount
		s.IsTrap = false
		s.Trap = nil
	} else {
		s.Value = 0
		s.IsTrap = true
		s.Trap = item.Trap
	}
}
