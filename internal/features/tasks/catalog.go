// Package tasks — catalog.go holds the official task definitions seeded on
// first run. Recurring windows are anchored to the seed time and rolled
// forward by the scheduler.
package tasks

import "time"

// DefaultCatalog returns the official seed tasks with windows anchored at now.
func DefaultCatalog(now time.Time) []Task {
	return []Task{
		{
			ID: "daily-checkin", Type: TypeDaily, Official: true,
			Title:       "Daily Check-in",
			Description: "Check in once today",
			Requirements: Requirements{Type: "checkin", Count: 1},
			Reward:       Reward{Points: 5},
			Status:       StatusActive,
			StartDate:    startOfDay(now),
			EndDate:      ptr(startOfDay(now).AddDate(0, 0, 1)),
		},
		{
			ID: "daily-browse", Type: TypeDaily, Official: true,
			Title:       "Window Browsing",
			Description: "View three works by other creators",
			Requirements: Requirements{Type: "view_work", Count: 3},
			Reward:       Reward{Points: 10},
			Status:       StatusActive,
			StartDate:    startOfDay(now),
			EndDate:      ptr(startOfDay(now).AddDate(0, 0, 1)),
		},
		{
			ID: "weekly-create", Type: TypeWeekly, Official: true,
			Title:       "Prolific Week",
			Description: "Publish five creations this week",
			Requirements: Requirements{Type: "create_work", Count: 5},
			Reward:       Reward{Points: 50},
			Status:       StatusActive,
			StartDate:    startOfDay(now),
			EndDate:      ptr(startOfDay(now).AddDate(0, 0, 7)),
		},
		{
			ID: "monthly-exchange", Type: TypeMonthly, Official: true,
			Title:       "Monthly Patron",
			Description: "Redeem one product this month",
			Requirements: Requirements{Type: "exchange", Count: 1},
			Reward:       Reward{Points: 100},
			Status:       StatusActive,
			StartDate:    startOfDay(now),
			EndDate:      ptr(startOfDay(now).AddDate(0, 1, 0)),
		},
		{
			ID: "event-launch-share", Type: TypeEvent, Official: true,
			Title:       "Spread the Word",
			Description: "Share a work during the launch event",
			Requirements: Requirements{Type: "share", Count: 1},
			Reward:       Reward{Points: 30},
			Status:       StatusActive,
			StartDate:    startOfDay(now),
			EndDate:      ptr(startOfDay(now).AddDate(0, 0, 14)),
		},
		{
			ID: "achv-ten-checkins", Type: TypeAchievement, Official: true,
			Title:       "Regular",
			Description: "Accumulate ten check-ins, no deadline",
			Requirements: Requirements{Type: "checkin", Count: 10},
			Reward:       Reward{Points: 60},
			Status:       StatusActive,
			StartDate:    startOfDay(now),
		},
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func ptr(t time.Time) *time.Time {
	return &t
}
