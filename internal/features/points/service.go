// Package points — service.go is the UI-facing facade over the ledger core.
// Every public method takes the shared session guard, so ledger calls from
// the UI serialize with the other trackers' read-modify-write sequences.
package points

import (
	"context"
	"sync"
)

// Service exposes the ledger to the presentation layer.
type Service struct {
	guard  *sync.Mutex
	ledger *Ledger
}

// NewService wraps the ledger core with the session guard.
func NewService(guard *sync.Mutex, ledger *Ledger) *Service {
	return &Service{guard: guard, ledger: ledger}
}

// AddPoints appends an accrual record.
func (s *Service) AddPoints(ctx context.Context, amount int64, source string, typ RecordType, description, relatedID string) (*Record, error) {
	s.guard.Lock()
	defer s.guard.Unlock()
	return s.ledger.Add(ctx, amount, source, typ, description, relatedID)
}

// ConsumePoints appends a spend record.
func (s *Service) ConsumePoints(ctx context.Context, amount int64, source string, typ RecordType, description, relatedID string) (*Record, error) {
	s.guard.Lock()
	defer s.guard.Unlock()
	return s.ledger.Consume(ctx, amount, source, typ, description, relatedID)
}

// GetCurrentPoints returns the spendable balance.
func (s *Service) GetCurrentPoints() int64 {
	s.guard.Lock()
	defer s.guard.Unlock()
	return s.ledger.CurrentPoints()
}

// GetRecords returns the filtered history, newest first.
func (s *Service) GetRecords(filter *Filter, limit, offset int) []Record {
	s.guard.Lock()
	defer s.guard.Unlock()
	return s.ledger.Records(filter, limit, offset)
}

// GetSourceStats returns summed points per record type.
func (s *Service) GetSourceStats() map[RecordType]int64 {
	s.guard.Lock()
	defer s.guard.Unlock()
	return s.ledger.SourceStats()
}

// GetSummary returns balance plus lifetime earned/spent totals.
func (s *Service) GetSummary() Summary {
	s.guard.Lock()
	defer s.guard.Unlock()
	return s.ledger.Summary()
}
