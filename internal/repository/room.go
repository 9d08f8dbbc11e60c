// Package repository provides data access layer implementations.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lixi-server/internal/model"
)

// ErrNotFound is returned when no room matches the given id or code.
var ErrNotFound = errors.New("room not found")

// RoomRepository is the persistent keyed collection of room records.
// Find accepts either a room id or a join code; code lookup is
// case-insensitive.
type RoomRepository interface {
	Save(ctx context.Context, room *model.Room) error
	Find(ctx context.Context, idOrCode string) (*model.Room, error)
	List(ctx context.Context) ([]*model.Room, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// PostgresRoomRepository stores each room as one JSONB document.
type PostgresRoomRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRoomRepository creates a new PostgresRoomRepository instance.
func NewPostgresRoomRepository(pool *pgxpool.Pool) *PostgresRoomRepository {
	return &PostgresRoomRepository{pool: pool}
}

// Save upserts the full room document.
func (r *PostgresRoomRepository) Save(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	const query = `
		INSERT INTO rooms (id, code, data, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (id)
		DO UPDATE SET code = $2, data = $3, updated_at = NOW()
	`
	_, err = r.pool.Exec(ctx, query, room.ID, room.Code, data)
	if err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// Find resolves a room by id first, then by case-insensitive join code.
func (r *PostgresRoomRepository) Find(ctx context.Context, idOrCode string) (*model.Room, error) {
	const query = `
		SELECT data FROM rooms
		WHERE id = $1 OR LOWER(code) = LOWER($1)
		ORDER BY (id = $1) DESC
		LIMIT 1
	`
	var data []byte
	err := r.pool.QueryRow(ctx, query, idOrCode).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query room: %w", err)
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room: %w", err)
	}
	return &room, nil
}

// List returns all stored rooms.
func (r *PostgresRoomRepository) List(ctx context.Context) ([]*model.Room, error) {
	rows, err := r.pool.Query(ctx, `SELECT data FROM rooms ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*model.Room
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var room model.Room
		if err := json.Unmarshal(data, &room); err != nil {
			return nil, fmt.Errorf("failed to unmarshal room: %w", err)
		}
		rooms = append(rooms, &room)
	}
	return rooms, rows.Err()
}

// CodeExists reports whether a join code is already taken.
func (r *PostgresRoomRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM rooms WHERE LOWER(code) = LOWER($1))`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return exists, nil
}

// Delete removes a room by id.
func (r *PostgresRoomRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	return err
}

// Migrate creates the rooms table. Run once at startup.
func (r *PostgresRoomRepository) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS rooms (
			id TEXT PRIMARY KEY,
			code TEXT NOT NULL,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_rooms_code ON rooms (LOWER(code));
		CREATE INDEX IF NOT EXISTS idx_rooms_updated ON rooms (updated_at DESC);
	`)
	return err
}
