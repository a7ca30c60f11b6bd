// Package random implements the reusable weighted-choice utility behind
// blind-box rarity selection. The probability tables stay pure data; this
// package only knows how to walk them.
package random

import (
	"fmt"
	"math/rand"
)

// Weighted is one candidate in a weighted draw.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// Choice draws one item using cumulative-distribution sampling:
// draw uniform r ∈ [0,1), walk the entries in their given order and select
// the first entry whose cumulative probability covers r. Weights do not have
// to sum to 1; they are normalized over the total.
//
// The entry order is significant and must be kept fixed by callers that
// promise a deterministic tier walk (common, rare, epic, legendary).
func Choice[T any](rng *rand.Rand, entries []Weighted[T]) (T, error) {
	var zero T
	if len(entries) == 0 {
		return zero, fmt.Errorf("weighted choice: no entries")
	}

	var total float64
	for _, e := range entries {
		if e.Weight < 0 {
			return zero, fmt.Errorf("weighted choice: negative weight %v", e.Weight)
		}
		total += e.Weight
	}
	if total <= 0 {
		return zero, fmt.Errorf("weighted choice: total weight is zero")
	}

	r := rng.Float64() * total
	var cumulative float64
	for _, e := range entries {
		cumulative += e.Weight
		if r < cumulative {
			return e.Item, nil
		}
	}
	// Float rounding can leave r a hair above the final cumulative sum.
	return entries[len(entries)-1].Item, nil
}

// Pick returns one item chosen uniformly at random.
func Pick[T any](rng *rand.Rand, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, fmt.Errorf("uniform pick: no items")
	}
	return items[rng.Intn(len(items))], nil
}
