package envelope

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lixi-server/internal/model"
)

func availableSlot() *model.EnvelopeSlot {
	return &model.EnvelopeSlot{ID: 1, Status: model.SlotAvailable}
}

func TestLock(t *testing.T) {
	now := time.Now().UnixMilli()

	t.Run("lock available slot", func(t *testing.T) {
		s := availableSlot()
		require.NoError(t, Lock(s, "device-a", now, DefaultLockTTL))
		assert.Equal(t, model.SlotLocked, s.Status)
		assert.Equal(t, "device-a", s.LockedBy)
		assert.Equal(t, now, s.LockedAt)
	})

	t.Run("other device rejected while held", func(t *testing.T) {
		s := availableSlot()
		require.NoError(t, Lock(s, "device-a", now, DefaultLockTTL))

		err := Lock(s, "device-b", now+3000, DefaultLockTTL)
		assert.ErrorIs(t, err, ErrAlreadyHeld)
		assert.Equal(t, "device-a", s.LockedBy)
	})

	t.Run("same device refreshes hold", func(t *testing.T) {
		s := availableSlot()
		require.NoError(t, Lock(s, "device-a", now, DefaultLockTTL))
		require.NoError(t, Lock(s, "device-a", now+3000, DefaultLockTTL))
		assert.Equal(t, now+3000, s.LockedAt)
	})

	t.Run("stale lock taken over", func(t *testing.T) {
		s := availableSlot()
		require.NoError(t, Lock(s, "device-a", now, DefaultLockTTL))

		// Past the TTL the hold is stale and device B wins the slot.
		err := Lock(s, "device-b", now+6000, DefaultLockTTL)
		require.NoError(t, err)
		assert.Equal(t, "device-b", s.LockedBy)
	})

	t.Run("opened slot is terminal", func(t *testing.T) {
		s := availableSlot()
		MarkOpened(s, "An", model.MoneyItem(10000))
		assert.ErrorIs(t, Lock(s, "device-a", now, DefaultLockTTL), ErrAlreadyOpened)
	})
}

func TestUnlock(t *testing.T) {
	now := time.Now().UnixMilli()

	t.Run("own lock released", func(t *testing.T) {
		s := availableSlot()
		require.NoError(t, Lock(s, "device-a", now, DefaultLockTTL))
		Unlock(s, "device-a")
		assert.Equal(t, model.SlotAvailable, s.Status)
		assert.Empty(t, s.LockedBy)
	})

	t.Run("foreign lock untouched", func(t *testing.T) {
		s := availableSlot()
		require.NoError(t, Lock(s, "device-a", now, DefaultLockTTL))
		Unlock(s, "device-b")
		assert.Equal(t, model.SlotLocked, s.Status)
		assert.Equal(t, "device-a", s.LockedBy)
	})

	t.Run("unlocked slot is a no-op", func(t *testing.T) {
		s := availableSlot()
		Unlock(s, "device-a")
		assert.Equal(t, model.SlotAvailable, s.Status)
	})
}

func TestCanOpen(t *testing.T) {
	now := time.Now().UnixMilli()

	tests := []struct {
		name    string
		prepare func(s *model.EnvelopeSlot)
		device  string
		at      int64
		wantErr error
	}{
		{
			name:    "available slot opens without prior lock",
			prepare: func(s *model.EnvelopeSlot) {},
			device:  "device-a",
			at:      now,
		},
		{
			name: "own lock opens",
			prepare: func(s *model.EnvelopeSlot) {
				_ = Lock(s, "device-a", now, DefaultLockTTL)
			},
			device: "device-a",
			at:     now + 1000,
		},
		{
			name: "foreign lock blocks within ttl",
			prepare: func(s *model.EnvelopeSlot) {
				_ = Lock(s, "device-a", now, DefaultLockTTL)
			},
			device:  "device-b",
			at:      now + 4000,
			wantErr: ErrHeldByOther,
		},
		{
			name: "foreign lock expires after ttl",
			prepare: func(s *model.EnvelopeSlot) {
				_ = Lock(s, "device-a", now, DefaultLockTTL)
			},
			device: "device-b",
			at:     now + 6000,
		},
		{
			name: "opened slot stays closed",
			prepare: func(s *model.EnvelopeSlot) {
				MarkOpened(s, "An", model.MoneyItem(10000))
			},
			device:  "device-a",
			at:      now,
			wantErr: ErrAlreadyOpened,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := availableSlot()
			tt.prepare(s)
			err := CanOpen(s, tt.device, tt.at, DefaultLockTTL)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMarkOpened(t *testing.T) {
	now := time.Now().UnixMilli()

	t.Run("money draw", func(t *testing.T) {
		s := availableSlot()
		require.NoError(t, Lock(s, "device-a", now, DefaultLockTTL))

		MarkOpened(s, "An", model.MoneyItem(100000))
		assert.Equal(t, model.SlotOpened, s.Status)
		assert.Equal(t, "An", s.OpenedBy)
		assert.Equal(t, int64(100000), s.Value)
		assert.False(t, s.IsTrap)
		assert.Empty(t, s.LockedBy)
	})

	t.Run("trap draw", func(t *testing.T) {
		s := availableSlot()
		trap := model.TrapItem{ID: "t1", Type: model.TrapAction, Content: "Hít đất 10 cái"}

		MarkOpened(s, "Bình", model.TrapOf(trap))
		assert.Equal(t, model.SlotOpened, s.Status)
		assert.True(t, s.IsTrap)
		assert.Zero(t, s.Value)
		require.NotNil(t, s.Trap)
		assert.Equal(t, "t1", s.Trap.ID)
	})
}

func TestExpireStaleLock(t *testing.T) {
	now := time.Now().UnixMilli()

	s := availableSlot()
	require.NoError(t, Lock(s, "device-a", now, DefaultLockTTL))

	// Exactly at the TTL boundary the lock still holds.
	ExpireStaleLock(s, now+DefaultLockTTL.Milliseconds(), DefaultLockTTL)
	assert.Equal(t, model.SlotLocked, s.Status)

	ExpireStaleLock(s, now+DefaultLockTTL.Milliseconds()+1, DefaultLockTTL)
	assert.Equal(t, model.SlotAvailable, s.Status)
	assert.Empty(t, s.LockedBy)
	assert.Zero(t, s.LockedAt)
}
