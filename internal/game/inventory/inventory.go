// Package inventory builds and inspects a room's prize inventory.
package inventory

import (
	"math/rand"

	"lixi-server/internal/model"
)

// Build expands host settings into a flat inventory and a matching set of
// envelope slots. Each (amount, count) pair becomes count money items and
// each trap definition becomes one trap item; the combined list is
// shuffled before slot ids 1..N are assigned. Zero total items yields an
// empty, immediately-exhausted room; callers decide whether to allow that.
func Build(settings model.RoomSettings) ([]model.Item, []model.EnvelopeSlot) {
	var items []model.Item

	for amount, count := range settings.Counts {
		for i := 0; i < count; i++ {
			items = append(items, model.MoneyItem(amount))
		}
	}

	for _, trap := range settings.Traps {
		items = append(items, model.TrapOf(trap))
	}

	Shuffle(items)

	slots := make([]model.EnvelopeSlot, len(items))
	for i := range items {
		slots[i] = model.EnvelopeSlot{
			ID:     i + 1,
			Status: model.SlotAvailable,
		}
	}

	return items, slots
}

// Shuffle applies a uniform random shuffle to the inventory in place.
func Shuffle(items []model.Item) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// RemainingCounts folds the inventory into per-key counts, keyed the same
// way as the weight table.
func RemainingCounts(items []model.Item) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item.Key()]++
	}
	return counts
}

// HasMoney reports whether any money item remains.
func HasMoney(items []model.Item) bool {
	for _, item := range items {
		if item.IsMoney() {
			return true
		}
	}
	return false
}

// FirstMoneyBelow returns the index of the first money item with an amount
// strictly below limit, or -1.
func FirstMoneyBelow(items []model.Item, limit int64) int {
	for i, item := range items {
		if item.IsMoney() && item.Amount < limit {
			return i
		}
	}
	return -1
}
