package service

import "errors"

// Common errors for room operations. All are advisory and retryable; none
// is fatal to the room.
var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomEnded      = errors.New("room has ended")
	ErrDuplicateName  = errors.New("name already taken in this room")
	ErrPlayerNotFound = errors.New("player not found in this room")
	ErrOutOfStock     = errors.New("no envelopes left")
	ErrInvalidAction  = errors.New("invalid action")
)
