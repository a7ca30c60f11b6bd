// Package tasks implements progress tracking against task definitions and
// the one-time completion reward. models.go describes the task shapes.
package tasks

import "time"

// Type classifies a task by its cadence or origin.
type Type string

const (
	TypeDaily       Type = "daily"
	TypeWeekly      Type = "weekly"
	TypeMonthly     Type = "monthly"
	TypeEvent       Type = "event"
	TypeAchievement Type = "achievement"
)

// Task statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Requirements states what a task demands: count occurrences of an action.
type Requirements struct {
	Type  string `json:"type"`  // Action kind ("checkin", "create_work", "share", ...)
	Count int    `json:"count"` // Target occurrences
}

// Reward is what a completed task pays out.
type Reward struct {
	Points int64 `json:"points"`
}

// Task is one definition. Official tasks are seeded by the system and their
// daily/weekly/monthly windows roll forward on schedule.
type Task struct {
	ID           string       `json:"id"`
	Type         Type         `json:"type"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Requirements Requirements `json:"requirements"`
	Reward       Reward       `json:"reward"`
	Status       string       `json:"status"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      *time.Time   `json:"end_date,omitempty"` // nil means no expiry
	Official     bool         `json:"official"`           // Seeded by the system, not an admin
}

// Progress is the per-(task, user) progress row. CompletedAt is stamped
// exactly once, the first time progress reaches the requirement count; the
// reward is granted at that same transition and never again.
type Progress struct {
	TaskID      string     `json:"task_id"`
	UserID      string     `json:"user_id"`
	Progress    int        `json:"progress"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
