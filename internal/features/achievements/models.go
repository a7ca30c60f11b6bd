// Package achievements tracks per-achievement progress and the one-way
// unlock transition that awards points through the ledger.
// models.go describes the achievement and stats shapes.
package achievements

import "time"

// Rarity grades an achievement for display.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Achievement is one definition plus its progress state. Progress runs
// 0..100; IsUnlocked is monotonic — once true it never reverts, and the
// progress freezes at the value it held when the unlock happened.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Rarity      Rarity     `json:"rarity"`
	Criteria    string     `json:"criteria"` // Human-readable unlock condition
	Points      int64      `json:"points"`   // Reward posted to the ledger on unlock
	Progress    int        `json:"progress"` // 0..100
	IsUnlocked  bool       `json:"is_unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// ProgressUpdate is one entry of a batch update.
type ProgressUpdate struct {
	ID       string
	Progress int
}

// Stats is the aggregate view for the achievements screen.
type Stats struct {
	Total          int           `json:"total"`
	Unlocked       int           `json:"unlocked"`
	Locked         int           `json:"locked"`
	CompletionRate int           `json:"completion_rate"` // round(unlocked/total*100)
	RecentUnlocks  []Achievement `json:"recent_unlocks"`  // 3 most recent by UnlockedAt desc
}
