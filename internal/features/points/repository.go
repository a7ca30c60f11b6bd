// Package points — repository.go persists the record snapshot under its
// stable storage key.
package points

import (
	"context"

	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/storage"
)

// recordsKey is the stable storage key for the points history.
const recordsKey = "gamification:points_records"

// Repository reads and writes the points snapshot through the storage adapter.
type Repository struct {
	store storage.Store
}

// NewRepository creates a points repository over the given adapter.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// Load returns the persisted records. A missing key yields an empty ledger;
// a corrupt value is logged and also yields an empty ledger rather than
// failing startup.
func (r *Repository) Load(ctx context.Context) ([]Record, error) {
	var records []Record
	ok, err := storage.GetJSON(ctx, r.store, recordsKey, &records)
	if err != nil {
		log.WithError(err).Warn("Corrupt points snapshot, starting from an empty ledger")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return records, nil
}

// Save replaces the persisted snapshot with records.
func (r *Repository) Save(ctx context.Context, records []Record) error {
	return storage.SetJSON(ctx, r.store, recordsKey, records)
}
