// Package draw implements the weighted selection and scoring rules for
// envelope draws.
package draw

import (
	"math/rand"

	"lixi-server/internal/model"
)

// DefaultWeight is the relative weight assumed for any item key absent
// from the weight table.
const DefaultWeight = 20

// SelectWeighted picks one inventory item and returns it with its index.
// The inventory is never mutated; removal is the caller's job.
//
// Without a weight table every physical item is equally likely. With one,
// the draw happens over item *categories*: each key present in the
// inventory gets its configured weight (defaultWeight if unset), a
// category is drawn by weighted choice independent of how many units of
// it remain, and the first inventory item of that category wins. A zero
// total weight falls back to a uniform item pick.
//
// The index of the empty inventory is -1; callers must guard emptiness
// before drawing.
func SelectWeighted(inv []model.Item, weights map[string]int, defaultWeight int) (model.Item, int) {
	if len(inv) == 0 {
		return model.Item{}, -1
	}
	if len(weights) == 0 {
		i := rand.Intn(len(inv))
		return inv[i], i
	}

	// Weights apply only to categories that physically remain.
	active := make(map[string]int)
	totalWeight := 0
	for _, item := range inv {
		key := item.Key()
		if _, seen := active[key]; seen {
			continue
		}
		w, ok := weights[key]
		if !ok {
			w = defaultWeight
		}
		active[key] = w
		totalWeight += w
	}

	if totalWeight <= 0 {
		i := rand.Intn(len(inv))
		return inv[i], i
	}

	n := rand.Intn(totalWeight)
	var selected string
	for key, w := range active {
		n -= w
		if n < 0 {
			selected = key
			break
		}
	}

	// Deterministic tie-break: first inventory match for the chosen key.
	for i, item := range inv {
		if item.Key() == selected {
			return item, i
		}
	}

	// Defensive fallback, the chosen key should always be present.
	i := rand.Intn(len(inv))
	return inv[i], i
}
