// Package checkin — repository.go persists check-in records under their
// stable storage key.
package checkin

import (
	"context"

	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/storage"
)

// recordsKey is the stable storage key for check-in records.
const recordsKey = "gamification:checkin_records"

// Repository reads and writes check-in records through the storage adapter.
type Repository struct {
	store storage.Store
}

// NewRepository creates a check-in repository over the given adapter.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Load returns the persisted records; missing or corrupt data yields an
// empty history.
func (r *Repository) Load(ctx context.Context) ([]Record, error) {
	var records []Record
	ok, err := storage.GetJSON(ctx, r.store, recordsKey, &records)
	if err != nil {
		log.WithError(err).Warn("Corrupt check-in snapshot, starting empty")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return records, nil
}

// Save replaces the persisted snapshot.
func (r *Repository) Save(ctx context.Context, records []Record) error {
	return storage.SetJSON(ctx, r.store, recordsKey, records)
}
