package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lixi-server/internal/config"
	"lixi-server/internal/model"
	"lixi-server/internal/realtime"
	"lixi-server/internal/repository"
)

func newTestService() *RoomService {
	return NewRoomService(repository.NewMemoryRoomRepository(), realtime.NewHub(), config.GameConfig{})
}

func defaultSettings() model.RoomSettings {
	return model.RoomSettings{
		Counts: map[int64]int{100000: 2, 50000: 1},
		Traps: []model.TrapItem{
			{ID: "t1", Type: model.TrapText, Content: "Hát một bài"},
		},
	}
}

func TestCreateRoom(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, defaultSettings())
	require.NoError(t, err)

	assert.Len(t, room.Code, RoomCodeLength)
	assert.Equal(t, "room-"+room.Code, room.ID)
	assert.Equal(t, model.StatusWaiting, room.Status)
	assert.Len(t, room.Inventory, 4)
	assert.Len(t, room.Envelopes, 4)
	assert.Equal(t, 4, room.InitialCount)

	for _, ch := range room.Code {
		assert.Contains(t, RoomCodeChars, string(ch))
	}

	// The room is persisted and resolvable by code, any case.
	found, err := svc.Room(ctx, strings.ToLower(room.Code))
	require.NoError(t, err)
	assert.Equal(t, room.ID, found.ID)
}

func TestRoom_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Room(context.Background(), "NOPE42")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestJoinRoom(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, defaultSettings())
	require.NoError(t, err)

	t.Run("first join", func(t *testing.T) {
		res, err := svc.JoinRoom(ctx, room.Code, "An", "dev-1")
		require.NoError(t, err)
		assert.Equal(t, room.ID, res.RoomID)
		assert.False(t, res.Recovered)

		updated, err := svc.Room(ctx, room.ID)
		require.NoError(t, err)
		require.Len(t, updated.Participants, 1)
		assert.Equal(t, "An", updated.Participants[0].Name)
		assert.Equal(t, 1.0, updated.AccumulatedLuck["An"])
	})

	t.Run("rejoin from same device recovers", func(t *testing.T) {
		res, err := svc.JoinRoom(ctx, room.Code, "An", "dev-1")
		require.NoError(t, err)
		assert.True(t, res.Recovered)

		updated, err := svc.Room(ctx, room.ID)
		require.NoError(t, err)
		assert.Len(t, updated.Participants, 1)
	})

	t.Run("rejoin under a new name keeps original identity", func(t *testing.T) {
		res, err := svc.JoinRoom(ctx, room.Code, "AnOther", "dev-1")
		require.NoError(t, err)
		assert.True(t, res.Recovered)

		updated, err := svc.Room(ctx, room.ID)
		require.NoError(t, err)
		require.Len(t, updated.Participants, 1)
		assert.Equal(t, "An", updated.Participants[0].Name)
	})

	t.Run("duplicate name from another device rejected", func(t *testing.T) {
		_, err := svc.JoinRoom(ctx, room.Code, "An", "dev-2")
		assert.ErrorIs(t, err, ErrDuplicateName)
	})

	t.Run("second player", func(t *testing.T) {
		_, err := svc.JoinRoom(ctx, room.Code, "Bình", "dev-2")
		require.NoError(t, err)

		updated, err := svc.Room(ctx, room.ID)
		require.NoError(t, err)
		assert.Len(t, updated.Participants, 2)
	})

	t.Run("unknown room", func(t *testing.T) {
		_, err := svc.JoinRoom(ctx, "ZZZZZZ", "Chi", "dev-9")
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})
}

func TestRoomLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, defaultSettings())
	require.NoError(t, err)

	require.NoError(t, svc.StartGame(ctx, room.ID))
	updated, _ := svc.Room(ctx, room.ID)
	assert.Equal(t, model.StatusPlaying, updated.Status)

	status, err := svc.PauseGame(ctx, room.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaused, status)

	status, err = svc.PauseGame(ctx, room.ID, false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPlaying, status)

	require.NoError(t, svc.CloseRoom(ctx, room.ID))
	updated, _ = svc.Room(ctx, room.ID)
	assert.Equal(t, model.StatusEnded, updated.Status)

	// Ended is terminal.
	assert.ErrorIs(t, svc.StartGame(ctx, room.ID), ErrRoomEnded)
	_, err = svc.PauseGame(ctx, room.ID, false)
	assert.ErrorIs(t, err, ErrRoomEnded)
}

func TestListRooms(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.CreateRoom(ctx, defaultSettings())
	require.NoError(t, err)
	_, err = svc.CreateRoom(ctx, defaultSettings())
	require.NoError(t, err)

	rooms, err := svc.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 2)
}

func TestSubscribe_NotifiedOnUpdate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	room, err := svc.CreateRoom(ctx, defaultSettings())
	require.NoError(t, err)

	ch, cancel := svc.Subscribe(room.ID)
	defer cancel()

	_, err = svc.JoinRoom(ctx, room.Code, "An", "dev-1")
	require.NoError(t, err)

	select {
	case n := <-ch:
		assert.Equal(t, room.ID, n.RoomID)
		assert.Equal(t, "join_room", n.Op)
	default:
		t.Fatal("expected a change notification after join")
	}
}

func TestGenerateRoomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := generateRoomCode()
		require.Len(t, code, RoomCodeLength)
		for _, ch := range code {
			require.Contains(t, RoomCodeChars, string(ch))
		}
		seen[code] = true
	}
	// 32^6 codes; 100 draws colliding would mean a broken generator.
	assert.Greater(t, len(seen), 95)
}
