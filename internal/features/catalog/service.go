// Package catalog — service.go contains the redemption flow and the admin
// write path. Redemption is a check-then-act sequence over both the ledger
// and the stock, so every public method runs under the session guard.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/clock"
	"culturecraft.app/gamification/internal/common"
	"culturecraft.app/gamification/internal/config"
	"culturecraft.app/gamification/internal/features/points"
)

// Service manages the product catalog and redemptions.
type Service struct {
	guard  *sync.Mutex
	repo   *Repository
	ledger *points.Ledger
	clock  clock.Clock
	cfg    *config.Config

	products  []Product
	exchanges []ExchangeRecord
}

// NewService loads the catalog, seeding the defaults when storage is empty
// or the schema version changed.
func NewService(ctx context.Context, guard *sync.Mutex, repo *Repository, ledger *points.Ledger, clk clock.Clock, cfg *config.Config) (*Service, error) {
	products, err := repo.LoadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading products: %w", err)
	}
	if products == nil {
		products = DefaultCatalog(clk.Now())
		if err := repo.SaveProducts(ctx, products); err != nil {
			return nil, fmt.Errorf("seeding products: %w", err)
		}
		log.WithField("count", len(products)).Info("Product catalog seeded")
	}

	exchanges, err := repo.LoadExchanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading exchange records: %w", err)
	}

	return &Service{
		guard:     guard,
		repo:      repo,
		ledger:    ledger,
		clock:     clk,
		cfg:       cfg,
		products:  products,
		exchanges: exchanges,
	}, nil
}

// ExchangeProduct redeems one unit of a product for the user. Preconditions
// are checked in order (not found → unavailable → out of stock → balance)
// and a failure at any step leaves both the stock and the ledger untouched.
func (s *Service) ExchangeProduct(ctx context.Context, productID, userID string) (*ExchangeRecord, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	p := s.productByID(productID)
	if p == nil {
		return nil, common.ErrProductNotFound
	}
	if p.Status != StatusActive {
		return nil, common.ErrProductUnavailable
	}
	if p.Stock <= 0 {
		return nil, common.ErrOutOfStock
	}

	// Consume validates the balance and appends the spend in one step;
	// ErrInsufficientPoints surfaces before any stock change.
	spend, err := s.ledger.Consume(ctx, p.Points, p.Name, points.TypeExchange,
		fmt.Sprintf("Redeemed: %s", p.Name), p.ID)
	if err != nil {
		return nil, err
	}

	prev := *p
	p.Stock--
	if p.Stock == 0 {
		p.Status = StatusSoldOut
	}
	p.UpdatedAt = s.clock.Now()

	rec := ExchangeRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		ProductID:   p.ID,
		ProductName: p.Name,
		Points:      p.Points,
		CreatedAt:   s.clock.Now(),
	}
	s.exchanges = append(s.exchanges, rec)

	// revert restores the pre-redemption state so a failed persist leaves
	// balance, stock and history exactly as they were.
	revert := func() {
		*p = prev
		s.exchanges = s.exchanges[:len(s.exchanges)-1]
		if rbErr := s.ledger.Rollback(ctx, spend); rbErr != nil {
			log.WithError(rbErr).Error("Failed to roll back redemption spend")
		}
	}

	if err := s.repo.SaveProducts(ctx, s.products); err != nil {
		revert()
		return nil, fmt.Errorf("persisting stock change: %w", err)
	}
	if err := s.repo.SaveExchanges(ctx, s.exchanges); err != nil {
		revert()
		if saveErr := s.repo.SaveProducts(ctx, s.products); saveErr != nil {
			log.WithError(saveErr).Error("Failed to restore product snapshot")
		}
		return nil, fmt.Errorf("persisting exchange record: %w", err)
	}

	log.WithFields(log.Fields{
		"product": p.ID,
		"user_id": userID,
		"points":  p.Points,
		"stock":   p.Stock,
	}).Info("Product redeemed")

	return &rec, nil
}

// GetProducts returns a copy of the catalog.
func (s *Service) GetProducts() []Product {
	s.guard.Lock()
	defer s.guard.Unlock()

	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// GetProduct returns one product by id.
func (s *Service) GetProduct(productID string) (*Product, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	p := s.productByID(productID)
	if p == nil {
		return nil, common.ErrProductNotFound
	}
	out := *p
	return &out, nil
}

// GetExchangeRecords returns the user's redemptions, newest first.
func (s *Service) GetExchangeRecords(userID string) []ExchangeRecord {
	s.guard.Lock()
	defer s.guard.Unlock()

	var out []ExchangeRecord
	for i := len(s.exchanges) - 1; i >= 0; i-- {
		if s.exchanges[i].UserID == userID {
			out = append(out, s.exchanges[i])
		}
	}
	return out
}

// AddProduct inserts a new product through the admin path. The password is
// verified against ADMIN_PASSWORD_HASH; any field violation rejects the
// entire write.
func (s *Service) AddProduct(ctx context.Context, adminPassword string, p Product) (*Product, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	if !verifyArgon2id(adminPassword, s.cfg.AdminPasswordHash) {
		return nil, common.ErrWrongPassword
	}
	if err := validateProduct(&p, s.products, ""); err != nil {
		return nil, err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	normalizeStatus(&p)
	now := s.clock.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	next := append(s.products, p)
	if err := s.repo.SaveProducts(ctx, next); err != nil {
		return nil, fmt.Errorf("persisting new product: %w", err)
	}
	s.products = next

	log.WithFields(log.Fields{"product": p.ID, "name": p.Name}).Info("Product added")
	out := p
	return &out, nil
}

// UpdateProduct replaces an existing product's fields through the admin path.
func (s *Service) UpdateProduct(ctx context.Context, adminPassword string, p Product) (*Product, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	if !verifyArgon2id(adminPassword, s.cfg.AdminPasswordHash) {
		return nil, common.ErrWrongPassword
	}

	existing := s.productByID(p.ID)
	if existing == nil {
		return nil, common.ErrProductNotFound
	}
	if err := validateProduct(&p, s.products, p.ID); err != nil {
		return nil, err
	}

	normalizeStatus(&p)
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.clock.Now()

	prev := *existing
	*existing = p
	if err := s.repo.SaveProducts(ctx, s.products); err != nil {
		*existing = prev
		return nil, fmt.Errorf("persisting product update: %w", err)
	}

	log.WithFields(log.Fields{"product": p.ID, "name": p.Name}).Info("Product updated")
	out := p
	return &out, nil
}

func (s *Service) productByID(id string) *Product {
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i]
		}
	}
	return nil
}
