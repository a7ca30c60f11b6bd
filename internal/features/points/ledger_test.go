package points

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturecraft.app/gamification/internal/clock"
	"culturecraft.app/gamification/internal/common"
	"culturecraft.app/gamification/internal/storage/memstore"
)

func newTestLedger(t *testing.T) (*Ledger, *clock.Mock, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	clk := clock.NewMock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	ledger, err := NewLedger(context.Background(), NewRepository(store), clk)
	require.NoError(t, err)
	return ledger, clk, store
}

func TestLedgerRunningBalance(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()

	deltas := []int64{100, 50, -30, 200, -120}
	var running int64
	for _, d := range deltas {
		var err error
		if d > 0 {
			_, err = ledger.Add(ctx, d, "test", TypeTask, "accrual", "")
		} else {
			_, err = ledger.Consume(ctx, -d, "test", TypeConsumption, "spend", "")
		}
		require.NoError(t, err)
		running += d
		assert.Equal(t, running, ledger.CurrentPoints())
	}

	// Every record's BalanceAfter is the prefix sum at its position.
	records := ledger.Records(nil, 0, 0)
	require.Len(t, records, len(deltas))
	var sum int64
	for i := len(records) - 1; i >= 0; i-- { // records are newest first
		sum += records[i].Points
		assert.Equal(t, sum, records[i].BalanceAfter)
	}
}

func TestLedgerConcreteScenario(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()

	assert.Equal(t, int64(0), ledger.CurrentPoints())

	_, err := ledger.Add(ctx, 100, "task", TypeTask, "t1", "")
	require.NoError(t, err)
	assert.Equal(t, int64(100), ledger.CurrentPoints())

	_, err = ledger.Consume(ctx, 150, "shop", TypeExchange, "too much", "")
	assert.ErrorIs(t, err, common.ErrInsufficientPoints)
	assert.Equal(t, int64(100), ledger.CurrentPoints())

	_, err = ledger.Consume(ctx, 40, "shop", TypeExchange, "ok", "")
	require.NoError(t, err)
	assert.Equal(t, int64(60), ledger.CurrentPoints())
}

func TestLedgerRejectsNonPositiveAmounts(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		fn     func(int64) error
		amount int64
	}{
		{"add zero", func(a int64) error { _, err := ledger.Add(ctx, a, "s", TypeSystem, "d", ""); return err }, 0},
		{"add negative", func(a int64) error { _, err := ledger.Add(ctx, a, "s", TypeSystem, "d", ""); return err }, -5},
		{"consume zero", func(a int64) error { _, err := ledger.Consume(ctx, a, "s", TypeSystem, "d", ""); return err }, 0},
		{"consume negative", func(a int64) error { _, err := ledger.Consume(ctx, a, "s", TypeSystem, "d", ""); return err }, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fn(tt.amount), common.ErrInvalidAmount)
		})
	}
	assert.Equal(t, int64(0), ledger.CurrentPoints())
}

func TestLedgerRecordsFilterAndPaging(t *testing.T) {
	ledger, clk, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Add(ctx, 10, "Daily check-in", TypeDaily, "day 1", "")
	require.NoError(t, err)
	clk.AdvanceDays(1)
	_, err = ledger.Add(ctx, 20, "Task Master", TypeTask, "task done", "")
	require.NoError(t, err)
	clk.AdvanceDays(1)
	_, err = ledger.Consume(ctx, 5, "Celadon Teacup", TypeExchange, "redeemed", "")
	require.NoError(t, err)

	// Newest first with no filter.
	all := ledger.Records(nil, 0, 0)
	require.Len(t, all, 3)
	assert.Equal(t, TypeExchange, all[0].Type)
	assert.Equal(t, TypeDaily, all[2].Type)

	// Type filter.
	daily := ledger.Records(&Filter{Type: TypeDaily}, 0, 0)
	require.Len(t, daily, 1)
	assert.Equal(t, int64(10), daily[0].Points)

	// Case-insensitive search over source and description.
	byName := ledger.Records(&Filter{Search: "teacup"}, 0, 0)
	assert.Len(t, byName, 1)
	byDesc := ledger.Records(&Filter{Search: "TASK DONE"}, 0, 0)
	assert.Len(t, byDesc, 1)

	// Date range: only the middle day.
	mid := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	ranged := ledger.Records(&Filter{StartDate: &mid, EndDate: &mid}, 0, 0)
	require.Len(t, ranged, 1)
	assert.Equal(t, TypeTask, ranged[0].Type)

	// Paging.
	assert.Len(t, ledger.Records(nil, 2, 0), 2)
	assert.Len(t, ledger.Records(nil, 2, 2), 1)
	assert.Empty(t, ledger.Records(nil, 2, 5))
}

func TestLedgerSourceStats(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Add(ctx, 10, "a", TypeDaily, "", "")
	require.NoError(t, err)
	_, err = ledger.Add(ctx, 15, "b", TypeDaily, "", "")
	require.NoError(t, err)
	_, err = ledger.Consume(ctx, 5, "c", TypeExchange, "", "")
	require.NoError(t, err)

	stats := ledger.SourceStats()
	assert.Equal(t, int64(25), stats[TypeDaily])
	assert.Equal(t, int64(-5), stats[TypeExchange])

	// The cache must refresh after the next append.
	_, err = ledger.Add(ctx, 5, "d", TypeDaily, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(30), ledger.SourceStats()[TypeDaily])
}

func TestLedgerSummary(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := ledger.Add(ctx, 100, "a", TypeTask, "", "")
	require.NoError(t, err)
	_, err = ledger.Consume(ctx, 30, "b", TypeConsumption, "", "")
	require.NoError(t, err)

	s := ledger.Summary()
	assert.Equal(t, int64(70), s.Balance)
	assert.Equal(t, int64(100), s.TotalEarned)
	assert.Equal(t, int64(30), s.TotalSpent)
	assert.Equal(t, 2, s.RecordCount)
}

func TestLedgerSurvivesReload(t *testing.T) {
	store := memstore.New()
	clk := clock.NewMock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := NewLedger(ctx, NewRepository(store), clk)
	require.NoError(t, err)
	_, err = first.Add(ctx, 42, "seed", TypeSystem, "", "")
	require.NoError(t, err)

	second, err := NewLedger(ctx, NewRepository(store), clk)
	require.NoError(t, err)
	assert.Equal(t, int64(42), second.CurrentPoints())
	assert.Len(t, second.Records(nil, 0, 0), 1)
}

func TestLedgerRollback(t *testing.T) {
	ledger, _, store := newTestLedger(t)
	ctx := context.Background()

	first, err := ledger.Add(ctx, 100, "a", TypeSystem, "", "")
	require.NoError(t, err)
	second, err := ledger.Consume(ctx, 30, "b", TypeConsumption, "", "")
	require.NoError(t, err)

	// Only the newest record can be rolled back.
	assert.Error(t, ledger.Rollback(ctx, first))
	assert.Equal(t, int64(70), ledger.CurrentPoints())

	require.NoError(t, ledger.Rollback(ctx, second))
	assert.Equal(t, int64(100), ledger.CurrentPoints())
	assert.Len(t, ledger.Records(nil, 0, 0), 1)
	assert.Equal(t, int64(0), ledger.SourceStats()[TypeConsumption])

	// The rollback is persisted: a reload does not resurrect the record.
	reloaded, err := NewLedger(ctx, NewRepository(store), clock.NewMock(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, int64(100), reloaded.CurrentPoints())
}

func TestServiceSerializesCalls(t *testing.T) {
	ledger, _, _ := newTestLedger(t)
	svc := NewService(&sync.Mutex{}, ledger)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddPoints(ctx, 10, "load", TypeSystem, "", "")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(500), svc.GetCurrentPoints())
	records := svc.GetRecords(nil, 0, 0)
	require.Len(t, records, 50)
	// With the guard held per call, balance snapshots are strictly increasing
	// from oldest to newest.
	for i := 0; i < len(records)-1; i++ {
		assert.Greater(t, records[i].BalanceAfter, records[i+1].BalanceAfter)
	}
}
