// Package checkin implements the daily check-in with streak bonuses and the
// paid makeup check-in. models.go describes the record and status shapes.
package checkin

import "time"

// Record is one check-in. At most one record exists per (user, date); records
// are never mutated or deleted once written.
type Record struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Date            string    `json:"date"` // YYYY-MM-DD calendar date
	Points          int64     `json:"points"`
	ConsecutiveDays int       `json:"consecutive_days"`
	IsBonus         bool      `json:"is_bonus"`  // True when a streak tier bonus applied
	IsMakeup        bool      `json:"is_makeup"` // True for backfilled records (no accrual)
	CreatedAt       time.Time `json:"created_at"`
}

// Status is the per-user check-in overview.
type Status struct {
	TodayChecked    bool   `json:"today_checked"`
	ConsecutiveDays int    `json:"consecutive_days"` // 0 when the streak is broken
	LastCheckinDate string `json:"last_checkin_date,omitempty"`
	TotalCheckins   int    `json:"total_checkins"`
	CurrentStreak   int    `json:"current_streak"`
	LongestStreak   int    `json:"longest_streak"`
}

// Result is returned from a successful check-in.
type Result struct {
	Record      *Record `json:"record"`
	TotalPoints int64   `json:"total_points"` // Base reward plus any tier bonus
}

// MakeupResult is returned from a successful makeup check-in.
type MakeupResult struct {
	Record *Record `json:"record"`
	Cost   int64   `json:"cost"` // Points deducted for the backfill
}
