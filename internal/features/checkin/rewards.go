// Package checkin — rewards.go holds the streak bonus tiers.
//
// Bonus table (on top of the base reward, exact thresholds only):
//
//	Day 1:  +5
//	Day 3:  +10
//	Day 7:  +30
//	Day 30: +100
package checkin

// StreakReward is one bonus tier.
type StreakReward struct {
	Days   int   `json:"days"`
	Points int64 `json:"points"`
}

// StreakRewards is the static bonus catalog, in ascending day order.
var StreakRewards = []StreakReward{
	{Days: 1, Points: 5},
	{Days: 3, Points: 10},
	{Days: 7, Points: 30},
	{Days: 30, Points: 100},
}

// BonusFor returns the tier bonus for a streak length. Tiers are exact
// thresholds, not cumulative ranges: day 4 earns no bonus, day 7 earns 30.
func BonusFor(consecutiveDays int) int64 {
	for _, r := range StreakRewards {
		if r.Days == consecutiveDays {
			return r.Points
		}
	}
	return 0
}
