// Package achievements — catalog.go holds the built-in achievement
// definitions seeded when storage has no snapshot yet.
package achievements

// DefaultCatalog returns the seed achievements, all locked at zero progress.
func DefaultCatalog() []Achievement {
	return []Achievement{
		{
			ID: "first-checkin", Name: "First Steps", Icon: "👣",
			Description: "Complete your first daily check-in",
			Criteria:    "Check in once", Rarity: RarityCommon, Points: 10,
		},
		{
			ID: "week-streak", Name: "Creature of Habit", Icon: "📅",
			Description: "Keep a 7-day check-in streak",
			Criteria:    "Check in 7 days in a row", Rarity: RarityRare, Points: 50,
		},
		{
			ID: "month-streak", Name: "Iron Will", Icon: "🔥",
			Description: "Keep a 30-day check-in streak",
			Criteria:    "Check in 30 days in a row", Rarity: RarityEpic, Points: 200,
		},
		{
			ID: "first-exchange", Name: "Window Shopper No More", Icon: "🛍️",
			Description: "Redeem your first product",
			Criteria:    "Exchange points for any product", Rarity: RarityCommon, Points: 15,
		},
		{
			ID: "box-opener", Name: "What's Inside?", Icon: "🎁",
			Description: "Open your first blind box",
			Criteria:    "Open one blind box", Rarity: RarityCommon, Points: 15,
		},
		{
			ID: "legendary-pull", Name: "Against All Odds", Icon: "🌟",
			Description: "Pull a legendary item from a blind box",
			Criteria:    "Receive a legendary blind-box content", Rarity: RarityLegendary, Points: 500,
		},
		{
			ID: "task-master", Name: "Task Master", Icon: "✅",
			Description: "Complete 10 tasks",
			Criteria:    "Finish 10 tasks of any type", Rarity: RarityRare, Points: 80,
		},
		{
			ID: "points-hoarder", Name: "Points Hoarder", Icon: "💰",
			Description: "Hold 1000 points at once",
			Criteria:    "Reach a balance of 1000 points", Rarity: RarityEpic, Points: 100,
		},
	}
}
