// Package achievements — repository.go persists the achievement snapshot.
package achievements

import (
	"context"

	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/storage"
)

// achievementsKey is the stable storage key for the achievement state.
const achievementsKey = "gamification:achievements"

// Repository reads and writes achievements through the storage adapter.
type Repository struct {
	store storage.Store
}

// NewRepository creates an achievements repository over the given adapter.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Load returns the persisted achievements. Missing or corrupt data falls
// back to the built-in default catalog.
func (r *Repository) Load(ctx context.Context) ([]Achievement, error) {
	var achievements []Achievement
	ok, err := storage.GetJSON(ctx, r.store, achievementsKey, &achievements)
	if err != nil {
		log.WithError(err).Warn("Corrupt achievements snapshot, reseeding defaults")
		return DefaultCatalog(), nil
	}
	if !ok || len(achievements) == 0 {
		return DefaultCatalog(), nil
	}
	return achievements, nil
}

// Save replaces the persisted snapshot.
func (r *Repository) Save(ctx context.Context, achievements []Achievement) error {
	return storage.SetJSON(ctx, r.store, achievementsKey, achievements)
}
