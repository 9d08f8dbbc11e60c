// Package lock provides per-room locking so that every read-modify-write
// of a room document is serialized inside this process.
package lock

import "sync"

// roomMutex wraps a mutex with reference counting for cleanup.
type roomMutex struct {
	mu       sync.Mutex
	refCount int
}

// RoomLock provides per-room locking to prevent lost updates when several
// clients mutate the same room concurrently.
type RoomLock struct {
	locks sync.Map // map[string]*roomMutex
	pool  sync.Pool
}

// NewRoomLock creates a new RoomLock instance.
func NewRoomLock() *RoomLock {
	return &RoomLock{
		pool: sync.Pool{
			New: func() any {
				return &roomMutex{}
			},
		},
	}
}

// getLock retrieves or creates a mutex for the given room ID.
func (rl *RoomLock) getLock(roomID string) *roomMutex {
	if v, ok := rl.locks.Load(roomID); ok {
		return v.(*roomMutex)
	}

	newLock := rl.pool.Get().(*roomMutex)
	newLock.refCount = 0

	// Store or load existing (handles race condition)
	actual, loaded := rl.locks.LoadOrStore(roomID, newLock)
	if loaded {
		// Another goroutine created the lock first, return ours to pool
		rl.pool.Put(newLock)
	}
	return actual.(*roomMutex)
}

// Lock acquires the lock for a room.
// This should be called before any room-modifying operation.
func (rl *RoomLock) Lock(roomID string) {
	lock := rl.getLock(roomID)
	lock.mu.Lock()
	lock.refCount++
}

// Unlock releases the lock for a room.
func (rl *RoomLock) Unlock(roomID string) {
	if v, ok := rl.locks.Load(roomID); ok {
		lock := v.(*roomMutex)
		lock.refCount--
		lock.mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false otherwise.
func (rl *RoomLock) TryLock(roomID string) bool {
	lock := rl.getLock(roomID)
	if lock.mu.TryLock() {
		lock.refCount++
		return true
	}
	return false
}

// WithLock executes a function while holding the room's lock.
// This is a convenience method that ensures proper lock/unlock.
func (rl *RoomLock) WithLock(roomID string, fn func() error) error {
	rl.Lock(roomID)
	defer rl.Unlock(roomID)
	return fn()
}
