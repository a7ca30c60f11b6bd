// Package clock — mock.go implements the deterministic clock used in tests.
package clock

import "time"

// Mock is a Clock whose current time is set explicitly.
// Not safe for concurrent use; tests drive it from a single goroutine.
type Mock struct {
	now time.Time
}

// NewMock creates a mock clock frozen at t.
func NewMock(t time.Time) *Mock {
	return &Mock{now: t}
}

func (m *Mock) Now() time.Time {
	return m.now
}

// Set moves the mock to an absolute time.
func (m *Mock) Set(t time.Time) {
	m.now = t
}

// Advance moves the mock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.now = m.now.Add(d)
}

// AdvanceDays moves the mock forward by whole calendar days.
func (m *Mock) AdvanceDays(days int) {
	m.now = m.now.AddDate(0, 0, days)
}
