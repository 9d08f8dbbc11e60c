package repository

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"lixi-server/internal/model"
)

// MemoryRoomRepository is an in-memory RoomRepository used for tests and
// standalone play without a database. Rooms are deep-copied on both save
// and load so callers can never mutate stored state except through Save.
type MemoryRoomRepository struct {
	mu    sync.RWMutex
	rooms map[string]*model.Room
}

// NewMemoryRoomRepository creates an empty in-memory repository.
func NewMemoryRoomRepository() *MemoryRoomRepository {
	return &MemoryRoomRepository{
		rooms: make(map[string]*model.Room),
	}
}

func cloneRoom(room *model.Room) (*model.Room, error) {
	data, err := json.Marshal(room)
	if err != nil {
		return nil, err
	}
	var out model.Room
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Save stores a deep copy of the room.
func (r *MemoryRoomRepository) Save(_ context.Context, room *model.Room) error {
	copied, err := cloneRoom(room)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[room.ID] = copied
	return nil
}

// Find resolves a room by id first, then by case-insensitive join code.
func (r *MemoryRoomRepository) Find(_ context.Context, idOrCode string) (*model.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if room, ok := r.rooms[idOrCode]; ok {
		return cloneRoom(room)
	}
	for _, room := range r.rooms {
		if strings.EqualFold(room.Code, idOrCode) {
			return cloneRoom(room)
		}
	}
	return nil, ErrNotFound
}

// List returns all stored rooms, most recently updated first.
func (r *MemoryRoomRepository) List(_ context.Context) ([]*model.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*model.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		copied, err := cloneRoom(room)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, copied)
	}
	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].UpdatedAt.After(rooms[j].UpdatedAt)
	})
	return rooms, nil
}

// CodeExists reports whether a join code is already taken.
func (r *MemoryRoomRepository) CodeExists(_ context.Context, code string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, room := range r.rooms {
		if strings.EqualFold(room.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes a room by id.
func (r *MemoryRoomRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
	return nil
}
