// Package points — ledger.go contains the ledger core: appends, the memoized
// balance, filtered history and the per-type breakdown.
//
// The Ledger is NOT safe for concurrent use on its own. Every caller —
// the points service and the other trackers alike — must hold the shared
// session guard around each call, so read-modify-write sequences never
// interleave.
package points

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/clock"
	"culturecraft.app/gamification/internal/common"
)

// Ledger owns the append-only record sequence and its derived caches.
type Ledger struct {
	repo  *Repository
	clock clock.Clock

	records []Record

	// Memoized aggregates, rebuilt lazily and invalidated on every append.
	balanceValid bool
	balance      int64
	statsValid   bool
	stats        map[RecordType]int64
}

// NewLedger loads the persisted records and builds the ledger core.
func NewLedger(ctx context.Context, repo *Repository, clk clock.Clock) (*Ledger, error) {
	records, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading points records: %w", err)
	}
	return &Ledger{repo: repo, clock: clk, records: records}, nil
}

// Add appends a positive delta and returns the new record.
func (l *Ledger) Add(ctx context.Context, amount int64, source string, typ RecordType, description, relatedID string) (*Record, error) {
	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}
	return l.append(ctx, amount, source, typ, description, relatedID)
}

// Consume appends a negative delta. Fails with ErrInsufficientPoints when
// amount exceeds the current balance; the ledger never goes negative.
func (l *Ledger) Consume(ctx context.Context, amount int64, source string, typ RecordType, description, relatedID string) (*Record, error) {
	if amount <= 0 {
		return nil, common.ErrInvalidAmount
	}
	if amount > l.CurrentPoints() {
		return nil, common.ErrInsufficientPoints
	}
	return l.append(ctx, -amount, source, typ, description, relatedID)
}

// append is the single write path. The record only becomes visible (and the
// caches only invalidate) after the snapshot is persisted, so a failed
// storage write leaves the ledger untouched.
func (l *Ledger) append(ctx context.Context, delta int64, source string, typ RecordType, description, relatedID string) (*Record, error) {
	now := l.clock.Now()
	rec := Record{
		ID:           uuid.NewString(),
		Source:       source,
		Type:         typ,
		Points:       delta,
		Date:         clock.DateOf(now),
		Description:  description,
		RelatedID:    relatedID,
		BalanceAfter: l.CurrentPoints() + delta,
		CreatedAt:    now,
	}

	next := append(l.records, rec)
	if err := l.repo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("persisting points record: %w", err)
	}
	l.records = next
	l.balanceValid = false
	l.statsValid = false

	log.WithFields(log.Fields{
		"type":    typ,
		"delta":   common.FormatPoints(delta),
		"balance": rec.BalanceAfter,
	}).Debug("Points record appended")

	return &rec, nil
}

// Rollback removes rec when a dependent write fails after the spend or
// accrual was already committed. Only the newest record can be removed,
// which keeps every remaining BalanceAfter snapshot valid.
func (l *Ledger) Rollback(ctx context.Context, rec *Record) error {
	n := len(l.records)
	if n == 0 || l.records[n-1].ID != rec.ID {
		return fmt.Errorf("record %q is not the newest ledger entry", rec.ID)
	}

	next := l.records[:n-1]
	if err := l.repo.Save(ctx, next); err != nil {
		return fmt.Errorf("persisting ledger rollback: %w", err)
	}
	l.records = next
	l.balanceValid = false
	l.statsValid = false

	log.WithFields(log.Fields{
		"type":  rec.Type,
		"delta": common.FormatPoints(rec.Points),
	}).Warn("Points record rolled back")

	return nil
}

// CurrentPoints returns the running sum of every record's Points field.
// The sum is memoized between appends.
func (l *Ledger) CurrentPoints() int64 {
	if !l.balanceValid {
		var sum int64
		for _, r := range l.records {
			sum += r.Points
		}
		l.balance = sum
		l.balanceValid = true
	}
	return l.balance
}

// Records returns the filtered history, newest first, sliced by offset/limit.
// limit <= 0 means "no limit".
func (l *Ledger) Records(filter *Filter, limit, offset int) []Record {
	matched := make([]Record, 0, len(l.records))
	// Walk backwards so the result is newest-first in insertion order.
	for i := len(l.records) - 1; i >= 0; i-- {
		r := l.records[i]
		if filter != nil && !filter.matches(&r) {
			continue
		}
		matched = append(matched, r)
	}

	if offset >= len(matched) {
		return nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched
}

func (f *Filter) matches(r *Record) bool {
	if f.Type != "" && r.Type != f.Type {
		return false
	}
	if f.StartDate != nil && r.Date.Before(clock.DateOf(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && r.Date.After(clock.DateOf(*f.EndDate)) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.Source), needle) &&
			!strings.Contains(strings.ToLower(r.Description), needle) {
			return false
		}
	}
	return true
}

// SourceStats returns summed points per record type, for breakdown displays.
// The mapping is memoized; callers receive a copy.
func (l *Ledger) SourceStats() map[RecordType]int64 {
	if !l.statsValid {
		stats := make(map[RecordType]int64)
		for _, r := range l.records {
			stats[r.Type] += r.Points
		}
		l.stats = stats
		l.statsValid = true
	}
	out := make(map[RecordType]int64, len(l.stats))
	for k, v := range l.stats {
		out[k] = v
	}
	return out
}

// Summary returns the account overview: balance plus lifetime totals.
func (l *Ledger) Summary() Summary {
	var earned, spent int64
	for _, r := range l.records {
		if r.Points >= 0 {
			earned += r.Points
		} else {
			spent += -r.Points
		}
	}
	return Summary{
		Balance:     l.CurrentPoints(),
		TotalEarned: earned,
		TotalSpent:  spent,
		RecordCount: len(l.records),
	}
}
