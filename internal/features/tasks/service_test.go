package tasks

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

const testUser = "user-1"

func newTestService(t *testing.T) (*Service, *points.Ledger, *clock.Mock, *memstore.Store) {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()
	clk := clock.NewMock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	ledger, err := points.NewLedger(ctx, points.NewRepository(store), clk)
	require.NoError(t, err)
	svc, err := NewService(ctx, &sync.Mutex{}, NewRepository(store), ledger, clk)
	require.NoError(t, err)
	return svc, ledger, clk, store
}

func TestSeedingIsIdempotent(t *testing.T) {
	svc, ledger, clk, store := newTestService(t)
	want := len(svc.GetActiveTasksForUser(testUser))
	require.Greater(t, want, 0)

	// A second service over the same store must not duplicate the catalog.
	second, err := NewService(context.Background(), &sync.Mutex{}, NewRepository(store), ledger, clk)
	require.NoError(t, err)
	assert.Len(t, second.GetActiveTasksForUser(testUser), want)
}

func TestUpdateProgressRewardsOnce(t *testing.T) {
	svc, ledger, _, _ := newTestService(t)
	ctx := context.Background()

	// Partial progress creates the row but pays nothing.
	row, err := svc.UpdateProgress(ctx, testUser, "daily-browse", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, row.Progress)
	assert.Nil(t, row.CompletedAt)
	assert.Equal(t, int64(0), ledger.CurrentPoints())

	// Crossing the target stamps CompletedAt and pays the reward.
	row, err = svc.UpdateProgress(ctx, testUser, "daily-browse", 3)
	require.NoError(t, err)
	require.NotNil(t, row.CompletedAt)
	assert.Equal(t, int64(10), ledger.CurrentPoints())
	completedAt := *row.CompletedAt

	// Further updates keep the stamp and never re-reward.
	row, err = svc.UpdateProgress(ctx, testUser, "daily-browse", 5)
	require.NoError(t, err)
	require.NotNil(t, row.CompletedAt)
	assert.Equal(t, completedAt, *row.CompletedAt)
	assert.Equal(t, int64(10), ledger.CurrentPoints())
	assert.Len(t, ledger.Records(nil, 0, 0), 1)
}

func TestUpdateProgressUnknownTask(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.UpdateProgress(context.Background(), testUser, "no-such-task", 1)
	assert.ErrorIs(t, err, common.ErrTaskNotFound)
}

func TestActiveAndCompletedViews(t *testing.T) {
	svc, _, clk, _ := newTestService(t)
	ctx := context.Background()

	active := svc.GetActiveTasksForUser(testUser)
	require.Len(t, active, 6)
	assert.Empty(t, svc.GetCompletedTasksForUser(testUser))

	// Completing a task moves it from active to completed.
	_, err := svc.UpdateProgress(ctx, testUser, "daily-checkin", 1)
	require.NoError(t, err)
	assert.Len(t, svc.GetActiveTasksForUser(testUser), 5)
	completed := svc.GetCompletedTasksForUser(testUser)
	require.Len(t, completed, 1)
	assert.Equal(t, "daily-checkin", completed[0].ID)

	// Progress is per user.
	assert.Len(t, svc.GetActiveTasksForUser("user-2"), 6)

	// Once the daily window closes, the task drops out of the active view
	// for everyone until the scheduler rolls it.
	clk.AdvanceDays(2)
	for _, task := range svc.GetActiveTasksForUser("user-2") {
		assert.NotEqual(t, "daily-checkin", task.ID)
	}
}

func TestRollWindowsRestartsRecurringTasks(t *testing.T) {
	svc, ledger, clk, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdateProgress(ctx, testUser, "daily-checkin", 1)
	require.NoError(t, err)
	require.Equal(t, int64(5), ledger.CurrentPoints())

	clk.AdvanceDays(2)
	require.NoError(t, svc.RollWindows(ctx))

	// The rolled task is active again with cleared progress, so the user
	// can complete it and earn the reward a second time.
	var found bool
	for _, task := range svc.GetActiveTasksForUser(testUser) {
		if task.ID == "daily-checkin" {
			found = true
		}
	}
	assert.True(t, found)
	assert.Nil(t, svc.GetProgress("daily-checkin", testUser))

	_, err = svc.UpdateProgress(ctx, testUser, "daily-checkin", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10), ledger.CurrentPoints())
}

func TestRollWindowsSkipsNonRecurringTasks(t *testing.T) {
	svc, _, clk, _ := newTestService(t)
	ctx := context.Background()

	// Far past every window; event and achievement tasks must keep their
	// original windows.
	clk.AdvanceDays(60)
	require.NoError(t, svc.RollWindows(ctx))

	for _, task := range svc.GetActiveTasksForUser(testUser) {
		assert.NotEqual(t, TypeEvent, task.Type)
	}
	// The open-ended achievement task has no deadline and stays active.
	var achvActive bool
	for _, task := range svc.GetActiveTasksForUser(testUser) {
		if task.ID == "achv-ten-checkins" {
			achvActive = true
		}
	}
	assert.True(t, achvActive)
}

func TestProgressSurvivesReload(t *testing.T) {
	svc, ledger, clk, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdateProgress(ctx, testUser, "weekly-create", 3)
	require.NoError(t, err)

	second, err := NewService(ctx, &sync.Mutex{}, NewRepository(store), ledger, clk)
	require.NoError(t, err)
	row := second.GetProgress("weekly-create", testUser)
	require.NotNil(t, row)
	assert.Equal(t, 3, row.Progress)
	assert.Nil(t, row.CompletedAt)
}
