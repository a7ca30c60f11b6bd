// Package blindbox — service.go coordinates the two-step flow: purchase
// debits the ledger and decrements box stock; open resolves one unopened
// purchase into a content item via the rarity-weighted draw.
package blindbox

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/clock"
	"culturecraft.app/gamification/internal/common"
	"culturecraft.app/gamification/internal/features/points"
	"culturecraft.app/gamification/internal/random"
)

// Service manages blind boxes.
type Service struct {
	guard  *sync.Mutex
	repo   *Repository
	ledger *points.Ledger
	clock  clock.Clock
	rng    *rand.Rand

	boxes     []Box
	contents  []Content
	purchases []Purchase
	openings  []OpeningRecord
}

// NewService loads blind-box state, seeding boxes and the content pool when
// storage is empty. rng is injected so tests can fix the seed.
func NewService(ctx context.Context, guard *sync.Mutex, repo *Repository, ledger *points.Ledger, clk clock.Clock, rng *rand.Rand) (*Service, error) {
	boxes, err := repo.LoadBoxes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading boxes: %w", err)
	}
	if boxes == nil {
		boxes = DefaultBoxes()
		if err := repo.SaveBoxes(ctx, boxes); err != nil {
			return nil, fmt.Errorf("seeding boxes: %w", err)
		}
		log.WithField("count", len(boxes)).Info("Blind boxes seeded")
	}

	contents, err := repo.LoadContents(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading content pool: %w", err)
	}
	if contents == nil {
		contents = DefaultContents()
		if err := repo.SaveContents(ctx, contents); err != nil {
			return nil, fmt.Errorf("seeding content pool: %w", err)
		}
	}

	purchases, err := repo.LoadPurchases(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading purchases: %w", err)
	}
	openings, err := repo.LoadOpenings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading openings: %w", err)
	}

	return &Service{
		guard:     guard,
		repo:      repo,
		ledger:    ledger,
		clock:     clk,
		rng:       rng,
		boxes:     boxes,
		contents:  contents,
		purchases: purchases,
		openings:  openings,
	}, nil
}

// PurchaseBlindBox buys one unit: debits the ledger by the box price,
// decrements the remaining stock and records an unopened purchase.
func (s *Service) PurchaseBlindBox(ctx context.Context, boxID, userID string) (*Purchase, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	box := s.boxByID(boxID)
	if box == nil {
		return nil, common.ErrBoxNotFound
	}
	if !box.Available || box.RemainingCount <= 0 {
		return nil, common.ErrBoxSoldOut
	}

	spend, err := s.ledger.Consume(ctx, box.Price, box.Name, points.TypeConsumption,
		fmt.Sprintf("Blind box purchase: %s", box.Name), box.ID)
	if err != nil {
		return nil, err
	}

	prev := *box
	box.RemainingCount--
	box.Available = box.RemainingCount > 0

	purchase := Purchase{
		ID:        uuid.NewString(),
		UserID:    userID,
		BoxID:     box.ID,
		CreatedAt: s.clock.Now(),
	}
	s.purchases = append(s.purchases, purchase)

	// revert refunds the price and restores stock so a failed persist
	// leaves the wallet and the box untouched.
	revert := func() {
		*box = prev
		s.purchases = s.purchases[:len(s.purchases)-1]
		if rbErr := s.ledger.Rollback(ctx, spend); rbErr != nil {
			log.WithError(rbErr).Error("Failed to roll back blind box spend")
		}
	}

	if err := s.repo.SaveBoxes(ctx, s.boxes); err != nil {
		revert()
		return nil, fmt.Errorf("persisting box stock: %w", err)
	}
	if err := s.repo.SavePurchases(ctx, s.purchases); err != nil {
		revert()
		if saveErr := s.repo.SaveBoxes(ctx, s.boxes); saveErr != nil {
			log.WithError(saveErr).Error("Failed to restore box stock snapshot")
		}
		return nil, fmt.Errorf("persisting purchase: %w", err)
	}

	log.WithFields(log.Fields{
		"box":       box.ID,
		"user_id":   userID,
		"remaining": box.RemainingCount,
	}).Info("Blind box purchased")

	return &purchase, nil
}

// OpenBlindBox resolves the user's oldest unopened purchase of the box into
// one content item. Every open is an independent draw: no pity mechanism,
// duplicates allowed.
func (s *Service) OpenBlindBox(ctx context.Context, boxID, userID string) (*OpeningRecord, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	box := s.boxByID(boxID)
	if box == nil {
		return nil, common.ErrBoxNotFound
	}

	purchase := s.oldestUnopened(boxID, userID)
	if purchase == nil {
		return nil, common.ErrNoUnopenedBox
	}

	content, err := s.draw(box.Rarity)
	if err != nil {
		return nil, fmt.Errorf("drawing content: %w", err)
	}

	now := s.clock.Now()
	purchase.Opened = true
	purchase.OpenedAt = &now

	rec := OpeningRecord{
		ID:          uuid.NewString(),
		UserID:      userID,
		BoxID:       box.ID,
		ContentID:   content.ID,
		ContentName: content.Name,
		Rarity:      content.Rarity,
		CreatedAt:   now,
	}
	s.openings = append(s.openings, rec)

	// A failed persist returns the purchase to its unopened state so the
	// user does not lose a paid open.
	revert := func() {
		purchase.Opened = false
		purchase.OpenedAt = nil
		s.openings = s.openings[:len(s.openings)-1]
	}

	if err := s.repo.SavePurchases(ctx, s.purchases); err != nil {
		revert()
		return nil, fmt.Errorf("persisting opened purchase: %w", err)
	}
	if err := s.repo.SaveOpenings(ctx, s.openings); err != nil {
		revert()
		if saveErr := s.repo.SavePurchases(ctx, s.purchases); saveErr != nil {
			log.WithError(saveErr).Error("Failed to restore purchase snapshot")
		}
		return nil, fmt.Errorf("persisting opening record: %w", err)
	}

	log.WithFields(log.Fields{
		"box":     box.ID,
		"user_id": userID,
		"content": content.ID,
		"rarity":  content.Rarity,
	}).Info("Blind box opened")

	return &rec, nil
}

// draw picks a content tier by the box's probability row, then one item
// uniformly within that tier.
func (s *Service) draw(boxRarity Rarity) (*Content, error) {
	probs, ok := TierProbabilities[boxRarity]
	if !ok {
		return nil, fmt.Errorf("no probability table for box rarity %q", boxRarity)
	}

	entries := make([]random.Weighted[Rarity], len(RarityOrder))
	for i, tier := range RarityOrder {
		entries[i] = random.Weighted[Rarity]{Item: tier, Weight: probs[i]}
	}
	tier, err := random.Choice(s.rng, entries)
	if err != nil {
		return nil, err
	}

	var pool []Content
	for _, c := range s.contents {
		if c.Rarity == tier {
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		return nil, fmt.Errorf("content pool has no %q items", tier)
	}
	picked, err := random.Pick(s.rng, pool)
	if err != nil {
		return nil, err
	}
	return &picked, nil
}

// GetBoxes returns a copy of every box series.
func (s *Service) GetBoxes() []Box {
	s.guard.Lock()
	defer s.guard.Unlock()

	out := make([]Box, len(s.boxes))
	copy(out, s.boxes)
	return out
}

// GetOpeningHistory returns the user's opening records, newest first.
func (s *Service) GetOpeningHistory(userID string) []OpeningRecord {
	s.guard.Lock()
	defer s.guard.Unlock()

	var out []OpeningRecord
	for i := len(s.openings) - 1; i >= 0; i-- {
		if s.openings[i].UserID == userID {
			out = append(out, s.openings[i])
		}
	}
	return out
}

// GetUnopenedCount returns how many purchased-but-unopened units the user
// holds for a box.
func (s *Service) GetUnopenedCount(boxID, userID string) int {
	s.guard.Lock()
	defer s.guard.Unlock()

	n := 0
	for i := range s.purchases {
		p := &s.purchases[i]
		if p.BoxID == boxID && p.UserID == userID && !p.Opened {
			n++
		}
	}
	return n
}

func (s *Service) boxByID(id string) *Box {
	for i := range s.boxes {
		if s.boxes[i].ID == id {
			return &s.boxes[i]
		}
	}
	return nil
}

// oldestUnopened returns the earliest unopened purchase for (box, user).
func (s *Service) oldestUnopened(boxID, userID string) *Purchase {
	for i := range s.purchases {
		p := &s.purchases[i]
		if p.BoxID == boxID && p.UserID == userID && !p.Opened {
			return p
		}
	}
	return nil
}
