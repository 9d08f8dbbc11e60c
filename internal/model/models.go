// Package model defines the data models for the lucky money game server.
package model

import (
	"strconv"
	"time"
)

// RoomStatus is the linear game lifecycle of a room.
type RoomStatus string

const (
	StatusWaiting RoomStatus = "waiting"
	StatusPlaying RoomStatus = "playing"
	StatusPaused  RoomStatus = "paused"
	StatusEnded   RoomStatus = "ended"
)

// TrapType classifies a trap outcome.
type TrapType string

const (
	TrapText     TrapType = "text"
	TrapAction   TrapType = "action"
	TrapBankrupt TrapType = "bankrupt"
)

// TrapItem is a non-monetary forfeit outcome (a dare, a joke, a penalty).
type TrapItem struct {
	ID        string   `json:"id"`
	Type      TrapType `json:"type"`
	Content   string   `json:"content"`
	Category  string   `json:"category,omitempty"`
	Intensity int      `json:"intensity,omitempty"`
}

// ItemType tags an inventory item as money or trap.
type ItemType string

const (
	ItemMoney ItemType = "money"
	ItemTrap  ItemType = "trap"
)

// TrapKey is the weight-table key shared by all trap items.
const TrapKey = "TRAP"

// Item is one undrawn prize in a room's inventory. Exactly one of
// Amount or Trap is meaningful, selected by Type.
type Item struct {
	Type   ItemType  `json:"type"`
	Amount int64     `json:"amount,omitempty"`
	Trap   *TrapItem `json:"trap,omitempty"`
}

// MoneyItem builds a money inventory item.
func MoneyItem(amount int64) Item {
	return Item{Type: ItemMoney, Amount: amount}
}

// TrapOf builds a trap inventory item.
func TrapOf(trap TrapItem) Item {
	t := trap
	return Item{Type: ItemTrap, Trap: &t}
}

// IsMoney reports whether the item is a money item.
func (i Item) IsMoney() bool {
	return i.Type == ItemMoney
}

// Key returns the weight-table key for the item: the decimal amount for
// money, TrapKey for any trap.
func (i Item) Key() string {
	if i.Type == ItemMoney {
		return strconv.FormatInt(i.Amount, 10)
	}
	return TrapKey
}

// RoomSettings is the host configuration a room is built from.
type RoomSettings struct {
	Counts map[int64]int `json:"counts"`
	Traps  []TrapItem    `json:"traps"`
}

// SlotStatus is the per-envelope state machine.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotLocked    SlotStatus = "locked"
	SlotOpened    SlotStatus = "opened"
)

// EnvelopeSlot is one drawable prize position. The slot carries no outcome
// information until it is opened; which inventory item fills it is resolved
// at open time, not at creation time.
type EnvelopeSlot struct {
	ID       int        `json:"id"`
	Status   SlotStatus `json:"status"`
	LockedBy string     `json:"locked_by,omitempty"`
	LockedAt int64      `json:"locked_at,omitempty"` // unix millis
	OpenedBy string     `json:"opened_by,omitempty"`
	Value    int64      `json:"value,omitempty"`
	IsTrap   bool       `json:"is_trap,omitempty"`
	Trap     *TrapItem  `json:"trap,omitempty"`
}

// RedemptionStatus tracks a player's recovery flow after drawing a trap.
type RedemptionStatus string

const (
	RedemptionNone      RedemptionStatus = "none"
	RedemptionRequested RedemptionStatus = "requested"
	RedemptionDoing     RedemptionStatus = "doing"
	RedemptionCompleted RedemptionStatus = "completed"
	RedemptionFailed    RedemptionStatus = "failed"
)

// Redemption is the optional recovery sub-state on a participant.
type Redemption struct {
	Status    RedemptionStatus `json:"status"`
	Timestamp int64            `json:"timestamp"`
}

// Participant is one player in a room. Name is unique within the room;
// DeviceID allows state recovery on rejoin.
type Participant struct {
	Name       string      `json:"name"`
	DeviceID   string      `json:"device_id"`
	JoinedAt   int64       `json:"joined_at"`
	Redemption *Redemption `json:"redemption,omitempty"`
}

// DrawResult is the immutable record of one successful open. Amount is 0
// for trap draws.
type DrawResult struct {
	PlayerName string    `json:"player_name"`
	Amount     int64     `json:"amount"`
	IsTrap     bool      `json:"is_trap"`
	Trap       *TrapItem `json:"trap,omitempty"`
	DeviceID   string    `json:"device_id"`
	Timestamp  int64     `json:"timestamp"`
	KarmaScore int       `json:"karma_score"`
}

// ChallengeItem is a host-issued forfeit challenge shown to the room.
type ChallengeItem struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Duration int    `json:"duration"` // seconds
}

// AdConfig is pass-through sponsor configuration for client/TV views.
type AdConfig struct {
	Enabled                bool   `json:"enabled"`
	Frequency              int    `json:"frequency"`
	BannerURL              string `json:"banner_url"`
	VideoURL               string `json:"video_url"`
	WaitingScreenEnabled   bool   `json:"waiting_screen_enabled"`
	RedemptionQueueEnabled bool   `json:"redemption_queue_enabled"`
}

// Room event types.
const (
	EventHesitation = "hesitation"
)

// RoomEvent is an ephemeral signal kept in a bounded ring buffer on the
// room; expired by age, never explicitly acknowledged.
type RoomEvent struct {
	Type       string `json:"type"`
	PlayerName string `json:"player_name"`
	DeviceID   string `json:"device_id"`
	EnvelopeID int    `json:"envelope_id,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

// MaxActiveEvents caps the room event ring buffer.
const MaxActiveEvents = 20

// Room is one play session. It is persisted as a single document and only
// ever mutated under the per-room lock, so struct fields need no
// synchronization of their own.
type Room struct {
	ID           string       `json:"id"`
	Code         string       `json:"code"`
	Settings     RoomSettings `json:"settings"`
	Inventory    []Item       `json:"inventory"`
	InitialCount int          `json:"initial_count"`

	Envelopes    []EnvelopeSlot `json:"envelopes"`
	Participants []Participant  `json:"participants"`
	History      []DrawResult   `json:"history,omitempty"`
	ActiveEvents []RoomEvent    `json:"active_events,omitempty"`

	ActiveChallenge *ChallengeItem `json:"active_challenge,omitempty"`
	AdConfig        *AdConfig      `json:"ad_config,omitempty"`

	// God mode state.
	Weights         map[string]int     `json:"weights,omitempty"`
	TargetedTraps   map[int]TrapItem   `json:"targeted_traps,omitempty"`
	AccumulatedLuck map[string]float64 `json:"accumulated_luck,omitempty"`

	Status    RoomStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Slot returns the envelope slot with the given id, or nil.
func (r *Room) Slot(id int) *EnvelopeSlot {
	for i := range r.Envelopes {
		if r.Envelopes[i].ID == id {
			return &r.Envelopes[i]
		}
	}
	return nil
}

// ParticipantByDevice returns the participant joined from the given device,
// or nil.
func (r *Room) ParticipantByDevice(deviceID string) *Participant {
	for i := range r.Participants {
		if r.Participants[i].DeviceID == deviceID {
			return &r.Participants[i]
		}
	}
	return nil
}

// ParticipantByName returns the participant with the given name, or nil.
func (r *Room) ParticipantByName(name string) *Participant {
	for i := range r.Participants {
		if r.Participants[i].Name == name {
			return &r.Participants[i]
		}
	}
	return nil
}

// OpenedCount returns the number of opened envelope slots.
func (r *Room) OpenedCount() int {
	n := 0
	for i := range r.Envelopes {
		if r.Envelopes[i].Status == SlotOpened {
			n++
		}
	}
	return n
}

// PushEvent appends an event to the bounded ring buffer, dropping the
// oldest entries beyond MaxActiveEvents.
func (r *Room) PushEvent(ev RoomEvent) {
	r.ActiveEvents = append(r.ActiveEvents, ev)
	if len(r.ActiveEvents) > MaxActiveEvents {
		r.ActiveEvents = r.ActiveEvents[len(r.ActiveEvents)-MaxActiveEvents:]
	}
}
