// Package app initializes every component of the ledger core.
// app.go is the assembly point: it builds the storage adapter, the session
// guard, the ledger and the trackers, and hands the wired object graph to
// the caller. There are no module-level singletons — constructing a second
// App yields a fully isolated instance, which is what the tests do.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"culturecraft.app/gamification/internal/clock"
	"culturecraft.app/gamification/internal/config"
	"culturecraft.app/gamification/internal/features/achievements"
	"culturecraft.app/gamification/internal/features/blindbox"
	"culturecraft.app/gamification/internal/features/catalog"
	"culturecraft.app/gamification/internal/features/checkin"
	"culturecraft.app/gamification/internal/features/points"
	"culturecraft.app/gamification/internal/features/tasks"
	"culturecraft.app/gamification/internal/jobs"
	"culturecraft.app/gamification/internal/storage"
	"culturecraft.app/gamification/internal/storage/memstore"
	"culturecraft.app/gamification/internal/storage/postgres"
)

// App holds every wired component.
type App struct {
	Points       *points.Service
	Achievements *achievements.Service
	Checkin      *checkin.Service
	Tasks        *tasks.Service
	Catalog      *catalog.Service
	BlindBox     *blindbox.Service
	Scheduler    *jobs.Scheduler

	pool *pgxpool.Pool // nil with the memory driver
}

// New builds the application. Initialization order matters: storage first,
// then the ledger (the balance source of truth), then every tracker that
// posts to it.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}

	// === 1. Storage adapter ===
	var store storage.Store
	switch cfg.StorageDriver {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connecting to the database: %w", err)
		}
		pgStore, err := postgres.New(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("preparing kv storage: %w", err)
		}
		app.pool = pool
		store = pgStore
	case "memory":
		store = memstore.New()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	// === 2. Session guard and clock ===
	// One mutex serializes every mutating call across all trackers for this
	// logical user session.
	guard := &sync.Mutex{}
	clk := clock.System(cfg.Location())
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// === 3. Ledger ===
	ledger, err := points.NewLedger(ctx, points.NewRepository(store), clk)
	if err != nil {
		return nil, err
	}
	app.Points = points.NewService(guard, ledger)

	// === 4. Trackers ===
	app.Achievements, err = achievements.NewService(ctx, guard, achievements.NewRepository(store), ledger, clk)
	if err != nil {
		return nil, err
	}
	app.Checkin, err = checkin.NewService(ctx, guard, checkin.NewRepository(store), ledger, clk, cfg)
	if err != nil {
		return nil, err
	}
	app.Tasks, err = tasks.NewService(ctx, guard, tasks.NewRepository(store), ledger, clk)
	if err != nil {
		return nil, err
	}
	app.Catalog, err = catalog.NewService(ctx, guard, catalog.NewRepository(store), ledger, clk, cfg)
	if err != nil {
		return nil, err
	}
	app.BlindBox, err = blindbox.NewService(ctx, guard, blindbox.NewRepository(store), ledger, clk, rng)
	if err != nil {
		return nil, err
	}

	// === 5. Scheduler ===
	app.Scheduler = jobs.NewScheduler(app.Tasks, cfg)

	return app, nil
}

// Close releases the database pool when one is held.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
