package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"culturecraft.app/gamification/internal/common"
	"culturecraft.app/gamification/internal/config"
	"culturecraft.app/gamification/internal/features/points"
)

func testConfig() *config.Config {
	return &config.Config{
		StorageDriver:     "memory",
		AppTimezone:       "UTC",
		CheckinBasePoints: 5,
		MakeupBaseCost:    5,
		MakeupCostPerDay:  2,
		MakeupCostCap:     50,
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StorageDriver = "redis"

	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestWiredComponentsShareTheLedger(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig())
	require.NoError(t, err)
	defer a.Close()

	const user = "user-1"

	// A check-in posts through the shared ledger and becomes visible via
	// the points service.
	res, err := a.Checkin.Checkin(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, res.TotalPoints, a.Points.GetCurrentPoints())

	records := a.Points.GetRecords(&points.Filter{Type: points.TypeDaily}, 0, 0)
	require.Len(t, records, 1)
	assert.Equal(t, res.Record.ID, records[0].RelatedID)

	// A redemption that exceeds the balance fails without touching either
	// the stock or the balance.
	before := a.Points.GetCurrentPoints()
	_, err = a.Catalog.ExchangeProduct(ctx, "prod-scarf", user)
	assert.ErrorIs(t, err, common.ErrInsufficientPoints)
	assert.Equal(t, before, a.Points.GetCurrentPoints())

	// Earn enough through the system path and redeem for real.
	_, err = a.Points.AddPoints(ctx, 300, "grant", points.TypeSystem, "", "")
	require.NoError(t, err)
	_, err = a.Catalog.ExchangeProduct(ctx, "prod-postcards", user)
	require.NoError(t, err)
	assert.Equal(t, before+300-150, a.Points.GetCurrentPoints())

	summary := a.Points.GetSummary()
	assert.Equal(t, int64(150), summary.TotalSpent)
}

func TestSecondAppIsIsolated(t *testing.T) {
	ctx := context.Background()
	first, err := New(ctx, testConfig())
	require.NoError(t, err)
	defer first.Close()

	_, err = first.Points.AddPoints(ctx, 100, "grant", points.TypeSystem, "", "")
	require.NoError(t, err)

	second, err := New(ctx, testConfig())
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, int64(0), second.Points.GetCurrentPoints())
}
