// Package blindbox — repository.go persists boxes, the content pool,
// purchases and the opening history under their stable storage keys.
package blindbox

import (
	"context"

	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/storage"
)

// Stable storage keys for the blind-box feature.
const (
	boxesKey     = "gamification:blind_boxes"
	contentsKey  = "gamification:blindbox_contents"
	purchasesKey = "gamification:blindbox_purchases"
	openingsKey  = "gamification:blindbox_openings"
)

// Repository reads and writes blind-box state through the storage adapter.
type Repository struct {
	store storage.Store
}

// NewRepository creates a blind-box repository over the given adapter.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// LoadBoxes returns the persisted boxes; missing or corrupt data yields nil
// so the service reseeds the defaults.
func (r *Repository) LoadBoxes(ctx context.Context) ([]Box, error) {
	var boxes []Box
	ok, err := storage.GetJSON(ctx, r.store, boxesKey, &boxes)
	if err != nil {
		log.WithError(err).Warn("Corrupt blind-box snapshot, reseeding defaults")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return boxes, nil
}

// SaveBoxes replaces the persisted boxes.
func (r *Repository) SaveBoxes(ctx context.Context, boxes []Box) error {
	return storage.SetJSON(ctx, r.store, boxesKey, boxes)
}

// LoadContents returns the persisted content pool, nil when unseeded.
func (r *Repository) LoadContents(ctx context.Context) ([]Content, error) {
	var contents []Content
	ok, err := storage.GetJSON(ctx, r.store, contentsKey, &contents)
	if err != nil {
		log.WithError(err).Warn("Corrupt content pool snapshot, reseeding defaults")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return contents, nil
}

// SaveContents replaces the persisted content pool.
func (r *Repository) SaveContents(ctx context.Context, contents []Content) error {
	return storage.SetJSON(ctx, r.store, contentsKey, contents)
}

// LoadPurchases returns the persisted purchases.
func (r *Repository) LoadPurchases(ctx context.Context) ([]Purchase, error) {
	var purchases []Purchase
	ok, err := storage.GetJSON(ctx, r.store, purchasesKey, &purchases)
	if err != nil {
		log.WithError(err).Warn("Corrupt purchases snapshot, starting empty")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return purchases, nil
}

// SavePurchases replaces the persisted purchases.
func (r *Repository) SavePurchases(ctx context.Context, purchases []Purchase) error {
	return storage.SetJSON(ctx, r.store, purchasesKey, purchases)
}

// LoadOpenings returns the persisted opening history.
func (r *Repository) LoadOpenings(ctx context.Context) ([]OpeningRecord, error) {
	var openings []OpeningRecord
	ok, err := storage.GetJSON(ctx, r.store, openingsKey, &openings)
	if err != nil {
		log.WithError(err).Warn("Corrupt openings snapshot, starting empty")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return openings, nil
}

// SaveOpenings replaces the persisted opening history.
func (r *Repository) SaveOpenings(ctx context.Context, openings []OpeningRecord) error {
	return storage.SetJSON(ctx, r.store, openingsKey, openings)
}
