package achievements

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturecraft.app/gamification/internal/clock"
	"culturecraft.app/gamification/internal/common"
	"culturecraft.app/gamification/internal/features/points"
	"culturecraft.app/gamification/internal/storage/memstore"
)

func newTestService(t *testing.T) (*Service, *points.Ledger, *clock.Mock) {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	clk := clock.NewMock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ledger, err := points.NewLedger(ctx, points.NewRepository(store), clk)
	require.NoError(t, err)
	svc, err := NewService(ctx, &sync.Mutex{}, NewRepository(store), ledger, clk)
	require.NoError(t, err)
	return svc, ledger, clk
}

func findByID(t *testing.T, svc *Service, id string) Achievement {
	t.Helper()
	for _, a := range svc.GetAchievements() {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %q not found", id)
	return Achievement{}
}

func TestUpdateProgressClampAndUnlock(t *testing.T) {
	svc, ledger, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name         string
		progress     int
		wantProgress int
		wantUnlocked bool
	}{
		{"negative clamps to zero", -20, 0, false},
		{"partial progress", 40, 40, false},
		{"overshoot clamps and unlocks", 250, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unlocked, err := svc.UpdateProgress(ctx, "first-checkin", tt.progress)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUnlocked, unlocked)

			a := findByID(t, svc, "first-checkin")
			assert.Equal(t, tt.wantProgress, a.Progress)
			assert.Equal(t, tt.wantUnlocked, a.IsUnlocked)
		})
	}

	// The unlock posted its reward exactly once.
	assert.Equal(t, int64(10), ledger.CurrentPoints())
}

func TestUnlockIsOneWayAndRewardsOnce(t *testing.T) {
	svc, ledger, _ := newTestService(t)
	ctx := context.Background()

	unlocked, err := svc.UpdateProgress(ctx, "first-checkin", 100)
	require.NoError(t, err)
	assert.True(t, unlocked)
	assert.Equal(t, int64(10), ledger.CurrentPoints())

	// Repeat and downgrade attempts are no-ops: no second reward, progress
	// stays frozen, the unlock never reverts.
	for _, p := range []int{100, 30, 0} {
		unlocked, err = svc.UpdateProgress(ctx, "first-checkin", p)
		require.NoError(t, err)
		assert.False(t, unlocked)
	}
	a := findByID(t, svc, "first-checkin")
	assert.True(t, a.IsUnlocked)
	assert.Equal(t, 100, a.Progress)
	assert.Equal(t, int64(10), ledger.CurrentPoints())
	assert.Len(t, ledger.Records(nil, 0, 0), 1)
}

func TestUpdateProgressUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.UpdateProgress(context.Background(), "no-such-achievement", 50)
	assert.ErrorIs(t, err, common.ErrAchievementNotFound)
}

func TestUpdateMultipleReturnsUnlocksInInputOrder(t *testing.T) {
	svc, ledger, _ := newTestService(t)
	ctx := context.Background()

	ids, err := svc.UpdateMultiple(ctx, []ProgressUpdate{
		{ID: "week-streak", Progress: 100},
		{ID: "month-streak", Progress: 60},
		{ID: "first-exchange", Progress: 100},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"week-streak", "first-exchange"}, ids)

	// 50 + 15 from the two unlocks.
	assert.Equal(t, int64(65), ledger.CurrentPoints())
}

func TestGetStats(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()

	// Unlock three achievements a day apart so UnlockedAt orders them.
	for _, id := range []string{"first-checkin", "week-streak", "month-streak"} {
		_, err := svc.UpdateProgress(ctx, id, 100)
		require.NoError(t, err)
		clk.AdvanceDays(1)
	}
	_, err := svc.UpdateProgress(ctx, "task-master", 45)
	require.NoError(t, err)

	stats := svc.GetStats()
	assert.Equal(t, 8, stats.Total)
	assert.Equal(t, 3, stats.Unlocked)
	assert.Equal(t, 5, stats.Locked)
	// round(3/8*100) = 38.
	assert.Equal(t, 38, stats.CompletionRate)

	require.Len(t, stats.RecentUnlocks, 3)
	assert.Equal(t, "month-streak", stats.RecentUnlocks[0].ID)
	assert.Equal(t, "week-streak", stats.RecentUnlocks[1].ID)
	assert.Equal(t, "first-checkin", stats.RecentUnlocks[2].ID)
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	clk := clock.NewMock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	ledger, err := points.NewLedger(ctx, points.NewRepository(store), clk)
	require.NoError(t, err)
	guard := &sync.Mutex{}

	first, err := NewService(ctx, guard, NewRepository(store), ledger, clk)
	require.NoError(t, err)
	_, err = first.UpdateProgress(ctx, "first-checkin", 100)
	require.NoError(t, err)

	second, err := NewService(ctx, guard, NewRepository(store), ledger, clk)
	require.NoError(t, err)
	a := findByID(t, second, "first-checkin")
	assert.True(t, a.IsUnlocked)
	assert.Equal(t, 100, a.Progress)

	// The reload must not re-reward.
	_, err = second.UpdateProgress(ctx, "first-checkin", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(10), ledger.CurrentPoints())
}
