// Package catalog — repository.go persists products (with a schema version
// key) and exchange records under their stable storage keys.
package catalog

import (
	"context"

	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/storage"
)

// Stable storage keys for the catalog.
const (
	productsKey  = "gamification:products"
	schemaKey    = "gamification:products_schema"
	exchangesKey = "gamification:exchange_records"
)

// Repository reads and writes catalog state through the storage adapter.
type Repository struct {
	store storage.Store
}

// NewRepository creates a catalog repository over the given adapter.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// LoadProducts returns the persisted products. Missing/corrupt data or a
// schema version mismatch yields nil so the service reseeds the defaults.
func (r *Repository) LoadProducts(ctx context.Context) ([]Product, error) {
	var version int
	ok, err := storage.GetJSON(ctx, r.store, schemaKey, &version)
	if err != nil || !ok || version != SchemaVersion {
		if err != nil {
			log.WithError(err).Warn("Corrupt product schema key, reseeding catalog")
		} else if ok {
			log.WithFields(log.Fields{"stored": version, "current": SchemaVersion}).
				Info("Product schema changed, reseeding catalog")
		}
		return nil, nil
	}

	var products []Product
	ok, err = storage.GetJSON(ctx, r.store, productsKey, &products)
	if err != nil {
		log.WithError(err).Warn("Corrupt products snapshot, reseeding catalog")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return products, nil
}

// SaveProducts replaces the persisted products and stamps the schema version.
func (r *Repository) SaveProducts(ctx context.Context, products []Product) error {
	if err := storage.SetJSON(ctx, r.store, productsKey, products); err != nil {
		return err
	}
	return storage.SetJSON(ctx, r.store, schemaKey, SchemaVersion)
}

// LoadExchanges returns the persisted exchange records.
func (r *Repository) LoadExchanges(ctx context.Context) ([]ExchangeRecord, error) {
	var records []ExchangeRecord
	ok, err := storage.GetJSON(ctx, r.store, exchangesKey, &records)
	if err != nil {
		log.WithError(err).Warn("Corrupt exchange snapshot, starting empty")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return records, nil
}

// SaveExchanges replaces the persisted exchange records.
func (r *Repository) SaveExchanges(ctx context.Context, records []ExchangeRecord) error {
	return storage.SetJSON(ctx, r.store, exchangesKey, records)
}
