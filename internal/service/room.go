// Package service provides business logic implementations.
package service

import (
	"context"
	crand "crypto/rand"
	"errors"
	"math/big"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"lixi-server/internal/config"
	"lixi-server/internal/game/envelope"
	"lixi-server/internal/game/inventory"
	"lixi-server/internal/model"
	"lixi-server/internal/pkg/lock"
	"lixi-server/internal/realtime"
	"lixi-server/internal/repository"
)

const (
	// RoomCodeLength is the length of generated join codes.
	RoomCodeLength = 6

	// RoomCodeChars are the characters used for join codes (excluding
	// ambiguous chars).
	RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// RoomService owns all room state transitions. Every mutation runs as a
// serialized load-validate-mutate-save command under the per-room lock, so
// two players acting in the same instant can never overwrite each other's
// writes.
type RoomService struct {
	repo  repository.RoomRepository
	locks *lock.RoomLock
	hub   *realtime.Hub
	cfg   config.GameConfig
}

// NewRoomService creates a new RoomService instance. Zero-valued config
// fields fall back to the gameplay defaults.
func NewRoomService(repo repository.RoomRepository, hub *realtime.Hub, cfg config.GameConfig) *RoomService {
	if cfg.SlotLockTTL <= 0 {
		cfg.SlotLockTTL = envelope.DefaultLockTTL
	}
	if cfg.DefaultWeight <= 0 {
		cfg.DefaultWeight = 20
	}
	if cfg.SafeAmount <= 0 {
		cfg.SafeAmount = 50000
	}
	if cfg.ConsolationAmount <= 0 {
		cfg.ConsolationAmount = 10000
	}
	if cfg.BigWinAmount <= 0 {
		cfg.BigWinAmount = 500000
	}
	return &RoomService{
		repo:  repo,
		locks: lock.NewRoomLock(),
		hub:   hub,
		cfg:   cfg,
	}
}

// Subscribe registers for change notifications on one room. The contract
// is fired after every successful save.
func (s *RoomService) Subscribe(roomID string) (<-chan realtime.Notification, func()) {
	return s.hub.Subscribe(roomID)
}

// Room resolves a room by id or join code (case-insensitive).
func (s *RoomService) Room(ctx context.Context, idOrCode string) (*model.Room, error) {
	room, err := s.repo.Find(ctx, idOrCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// update runs one serialized read-modify-write command against a room and
// publishes a change notification after the save.
func (s *RoomService) update(ctx context.Context, idOrCode, op string, fn func(room *model.Room) error) error {
	room, err := s.Room(ctx, idOrCode)
	if err != nil {
		return err
	}
	id := room.ID

	return s.locks.WithLock(id, func() error {
		room, err := s.Room(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(room); err != nil {
			return err
		}
		room.UpdatedAt = time.Now()
		if err := s.repo.Save(ctx, room); err != nil {
			return err
		}
		s.hub.Publish(id, op)
		log.Debug().Str("room_id", id).Str("op", op).Msg("room updated")
		return nil
	})
}

// generateRoomCode creates a random join code.
func generateRoomCode() string {
	code := make([]byte, RoomCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(RoomCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = RoomCodeChars[rand.Intn(len(RoomCodeChars))]
			continue
		}
		code[i] = RoomCodeChars[n.Int64()]
	}
	return string(code)
}

// uniqueRoomCode generates a join code not currently in use.
func (s *RoomService) uniqueRoomCode(ctx context.Context) (string, error) {
	for {
		code := generateRoomCode()
		exists, err := s.repo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}

// CreateRoom builds a room from host settings: the inventory is expanded
// and shuffled, one envelope slot per item, status waiting.
func (s *RoomService) CreateRoom(ctx context.Context, settings model.RoomSettings) (*model.Room, error) {
	code, err := s.uniqueRoomCode(ctx)
	if err != nil {
		return nil, err
	}

	items, slots := inventory.Build(settings)
	now := time.Now()
	room := &model.Room{
		ID:              "room-" + code,
		Code:            code,
		Settings:        settings,
		Inventory:       items,
		InitialCount:    len(items),
		Envelopes:       slots,
		Participants:    []model.Participant{},
		AccumulatedLuck: map[string]float64{},
		Status:          model.StatusWaiting,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Save(ctx, room); err != nil {
		return nil, err
	}
	s.hub.Publish(room.ID, "create_room")

	log.Info().
		Str("room_id", room.ID).
		Str("code", room.Code).
		Int("items", room.InitialCount).
		Msg("room created")
	return room, nil
}

// JoinResult is the outcome of a join attempt.
type JoinResult struct {
	RoomID    string           `json:"room_id"`
	Status    model.RoomStatus `json:"status"`
	Recovered bool             `json:"recovered"`
}

// JoinRoom adds a player to a room. Joining is idempotent by device id:
// rejoining from the same device recovers the prior participant state.
// A name already used by a different device is rejected.
func (s *RoomService) JoinRoom(ctx context.Context, code, playerName, deviceID string) (*JoinResult, error) {
	var result *JoinResult
	err := s.update(ctx, code, "join_room", func(room *model.Room) error {
		if existing := room.ParticipantByDevice(deviceID); existing != nil {
			result = &JoinResult{RoomID: room.ID, Status: room.Status, Recovered: true}
			return nil
		}
		if room.ParticipantByName(playerName) != nil {
			return ErrDuplicateName
		}

		room.Participants = append(room.Participants, model.Participant{
			Name:     playerName,
			DeviceID: deviceID,
			JoinedAt: time.Now().UnixMilli(),
		})
		if room.AccumulatedLuck == nil {
			room.AccumulatedLuck = map[string]float64{}
		}
		if _, ok := room.AccumulatedLuck[playerName]; !ok {
			room.AccumulatedLuck[playerName] = 1.0
		}

		result = &JoinResult{RoomID: room.ID, Status: room.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// StartGame transitions the room to playing.
func (s *RoomService) StartGame(ctx context.Context, roomID string) error {
	return s.update(ctx, roomID, "start_game", func(room *model.Room) error {
		if room.Status == model.StatusEnded {
			return ErrRoomEnded
		}
		room.Status = model.StatusPlaying
		return nil
	})
}

// PauseGame toggles between paused and playing and returns the new status.
func (s *RoomService) PauseGame(ctx context.Context, roomID string, paused bool) (model.RoomStatus, error) {
	var status model.RoomStatus
	err := s.update(ctx, roomID, "pause_game", func(room *model.Room) error {
		if room.Status == model.StatusEnded {
			return ErrRoomEnded
		}
		if paused {
			room.Status = model.StatusPaused
		} else {
			room.Status = model.StatusPlaying
		}
		status = room.Status
		return nil
	})
	return status, err
}

// CloseRoom terminally ends the room. Irreversible.
func (s *RoomService) CloseRoom(ctx context.Context, roomID string) error {
	return s.update(ctx, roomID, "close_room", func(room *model.Room) error {
		room.Status = model.StatusEnded
		return nil
	})
}

// ListRooms returns all rooms for the admin dashboard.
func (s *RoomService) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return s.repo.List(ctx)
}
