// Package checkin — service.go contains the check-in business logic:
// same-day idempotence, streak computation from the record chain, tier
// bonuses and the paid makeup check-in.
package checkin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/clock"
	"culturecraft.app/gamification/internal/common"
	"culturecraft.app/gamification/internal/config"
	"culturecraft.app/gamification/internal/features/points"
)

// Service manages daily check-ins.
type Service struct {
	guard  *sync.Mutex
	repo   *Repository
	ledger *points.Ledger
	clock  clock.Clock
	cfg    *config.Config

	records []Record
}

// NewService loads the check-in history and builds the tracker.
func NewService(ctx context.Context, guard *sync.Mutex, repo *Repository, ledger *points.Ledger, clk clock.Clock, cfg *config.Config) (*Service, error) {
	records, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading check-in records: %w", err)
	}
	return &Service{
		guard:   guard,
		repo:    repo,
		ledger:  ledger,
		clock:   clk,
		cfg:     cfg,
		records: records,
	}, nil
}

// Checkin records today's check-in for the user and posts the combined
// base+bonus reward to the ledger in a single accrual.
// Fails with ErrAlreadyCheckedToday on a duplicate same-day call.
func (s *Service) Checkin(ctx context.Context, userID string) (*Result, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	now := s.clock.Now()
	today := clock.FormatDate(now)
	if s.recordFor(userID, today) != nil {
		return nil, common.ErrAlreadyCheckedToday
	}

	// ConsecutiveDays chains off yesterday's record: 1 when yesterday has
	// no record, previous+1 otherwise.
	consecutive := 1
	yesterday := clock.FormatDate(now.AddDate(0, 0, -1))
	if prev := s.recordFor(userID, yesterday); prev != nil {
		consecutive = prev.ConsecutiveDays + 1
	}

	base := s.cfg.CheckinBasePoints
	bonus := BonusFor(consecutive)
	total := base + bonus

	rec := Record{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            today,
		Points:          total,
		ConsecutiveDays: consecutive,
		IsBonus:         bonus > 0,
		CreatedAt:       now,
	}

	next := append(s.records, rec)
	if err := s.repo.Save(ctx, next); err != nil {
		return nil, fmt.Errorf("persisting check-in record: %w", err)
	}
	s.records = next

	description := fmt.Sprintf("Daily check-in, day %d", consecutive)
	if bonus > 0 {
		description = fmt.Sprintf("Daily check-in, day %d (streak bonus %s)", consecutive, common.FormatPoints(bonus))
	}
	if _, err := s.ledger.Add(ctx, total, "Daily check-in", points.TypeDaily, description, rec.ID); err != nil {
		// Drop the record again so the day can be retried.
		s.records = s.records[:len(s.records)-1]
		if saveErr := s.repo.Save(ctx, s.records); saveErr != nil {
			log.WithError(saveErr).Error("Failed to roll back check-in record")
		}
		return nil, fmt.Errorf("posting check-in reward: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id":     userID,
		"day":         consecutive,
		"points":      total,
		"bonus_tier":  bonus > 0,
	}).Info("Check-in recorded")

	return &Result{Record: &s.records[len(s.records)-1], TotalPoints: total}, nil
}

// MakeupCheckin backfills a past date for a fee. The backfilled record
// carries zero points and extends the reported streak by one, but does not
// repair gaps in the per-date record chain.
func (s *Service) MakeupCheckin(ctx context.Context, userID string, pastDate time.Time) (*MakeupResult, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	now := s.clock.Now()
	today := clock.FormatDate(now)
	target := clock.FormatDate(pastDate)

	if target >= today {
		return nil, common.ErrInvalidDate
	}
	if s.recordFor(userID, target) != nil {
		return nil, common.ErrAlreadyChecked
	}

	streak := s.streakAsOf(userID, now)
	cost := s.cfg.MakeupBaseCost + int64(streak)*s.cfg.MakeupCostPerDay
	if cost > s.cfg.MakeupCostCap {
		cost = s.cfg.MakeupCostCap
	}

	// Deduct first: an insufficient balance must leave the history untouched.
	fee, err := s.ledger.Consume(ctx, cost, "Makeup check-in", points.TypeConsumption,
		fmt.Sprintf("Makeup check-in for %s", target), "")
	if err != nil {
		return nil, err
	}

	rec := Record{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            target,
		Points:          0,
		ConsecutiveDays: streak + 1,
		IsMakeup:        true,
		CreatedAt:       now,
	}

	next := append(s.records, rec)
	if err := s.repo.Save(ctx, next); err != nil {
		// Refund the fee: a failed backfill must not cost anything.
		if rbErr := s.ledger.Rollback(ctx, fee); rbErr != nil {
			log.WithError(rbErr).Error("Failed to roll back makeup fee")
		}
		return nil, fmt.Errorf("persisting makeup record: %w", err)
	}
	s.records = next

	log.WithFields(log.Fields{
		"user_id": userID,
		"date":    target,
		"cost":    cost,
	}).Info("Makeup check-in recorded")

	return &MakeupResult{Record: &s.records[len(s.records)-1], Cost: cost}, nil
}

// GetStatus returns the user's check-in overview as of the current clock.
func (s *Service) GetStatus(userID string) Status {
	s.guard.Lock()
	defer s.guard.Unlock()

	now := s.clock.Now()
	today := clock.FormatDate(now)

	status := Status{TodayChecked: s.recordFor(userID, today) != nil}

	var last *Record
	for i := range s.records {
		r := &s.records[i]
		if r.UserID != userID {
			continue
		}
		status.TotalCheckins++
		if r.ConsecutiveDays > status.LongestStreak {
			status.LongestStreak = r.ConsecutiveDays
		}
		if last == nil || r.Date > last.Date {
			last = r
		}
	}
	if last != nil {
		status.LastCheckinDate = last.Date
	}

	// The streak counts as broken when the newest record predates yesterday,
	// even though the historical records keep their values.
	streak := s.streakAsOf(userID, now)
	status.ConsecutiveDays = streak
	status.CurrentStreak = streak

	return status
}

// GetStreakRewards returns the static bonus tier catalog.
func (s *Service) GetStreakRewards() []StreakReward {
	out := make([]StreakReward, len(StreakRewards))
	copy(out, StreakRewards)
	return out
}

// recordFor returns the record for (user, date), or nil.
func (s *Service) recordFor(userID, date string) *Record {
	for i := range s.records {
		if s.records[i].UserID == userID && s.records[i].Date == date {
			return &s.records[i]
		}
	}
	return nil
}

// streakAsOf returns the live streak relative to now: the newest record's
// ConsecutiveDays when that record is from today or yesterday, else 0.
func (s *Service) streakAsOf(userID string, now time.Time) int {
	var last *Record
	for i := range s.records {
		r := &s.records[i]
		if r.UserID != userID {
			continue
		}
		if last == nil || r.Date > last.Date {
			last = r
		}
	}
	if last == nil {
		return 0
	}

	today := clock.FormatDate(now)
	yesterday := clock.FormatDate(now.AddDate(0, 0, -1))
	if last.Date != today && last.Date != yesterday {
		return 0
	}
	return last.ConsecutiveDays
}
