// Package points implements the points ledger — the append-only record of
// point deltas that is the single source of balance truth for every other
// tracker. models.go describes the record and summary shapes.
package points

import "time"

// RecordType classifies where a point delta came from.
type RecordType string

const (
	TypeAchievement RecordType = "achievement" // Achievement unlock reward
	TypeTask        RecordType = "task"        // Task completion reward
	TypeDaily       RecordType = "daily"       // Daily check-in reward
	TypeConsumption RecordType = "consumption" // Generic spend (makeup check-in, blind box)
	TypeExchange    RecordType = "exchange"    // Product redemption
	TypeSystem      RecordType = "system"      // Manual/system adjustment
)

// Record is one immutable ledger entry. Records are append-only: once
// written they are never edited or deleted, and BalanceAfter snapshots the
// running sum of every Points field up to and including this record.
type Record struct {
	ID           string     `json:"id"`
	Source       string     `json:"source"`       // Human-readable origin ("Daily check-in", product name, ...)
	Type         RecordType `json:"type"`         // Business classification
	Points       int64      `json:"points"`       // Signed delta: positive accrual, negative spend
	Date         time.Time  `json:"date"`         // Calendar date of the event
	Description  string     `json:"description"`  // Display text for the history UI
	RelatedID    string     `json:"related_id,omitempty"` // Id of the achievement/task/product behind the delta
	BalanceAfter int64      `json:"balance_after"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Summary is the account overview shown at the top of the points screen.
type Summary struct {
	Balance     int64 `json:"balance"`      // Current spendable balance
	TotalEarned int64 `json:"total_earned"` // Lifetime accruals
	TotalSpent  int64 `json:"total_spent"`  // Lifetime spends (positive number)
	RecordCount int   `json:"record_count"`
}

// Filter narrows GetRecords. Zero values mean "no constraint".
type Filter struct {
	StartDate *time.Time // Inclusive lower bound on Record.Date
	EndDate   *time.Time // Inclusive upper bound on Record.Date
	Type      RecordType // Exact record type
	Search    string     // Case-insensitive substring over source and description
}
