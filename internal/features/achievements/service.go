// Package achievements — service.go contains the unlock logic.
// Progress updates are driven externally (the UI layer decides what counts
// toward which achievement); this service only enforces the clamp, the
// one-way unlock transition and the exactly-once reward.
package achievements

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/clock"
	"culturecraft.app/gamification/internal/common"
	"culturecraft.app/gamification/internal/features/points"
)

// Service manages achievement progress and unlocks.
type Service struct {
	guard  *sync.Mutex
	repo   *Repository
	ledger *points.Ledger
	clock  clock.Clock

	achievements []Achievement
	byID         map[string]int // id → index into achievements
}

// NewService loads the achievement state and builds the tracker.
func NewService(ctx context.Context, guard *sync.Mutex, repo *Repository, ledger *points.Ledger, clk clock.Clock) (*Service, error) {
	achievements, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading achievements: %w", err)
	}

	byID := make(map[string]int, len(achievements))
	for i, a := range achievements {
		byID[a.ID] = i
	}

	return &Service{
		guard:        guard,
		repo:         repo,
		ledger:       ledger,
		clock:        clk,
		achievements: achievements,
		byID:         byID,
	}, nil
}

// UpdateProgress sets the progress of one achievement, clamped to [0,100].
// Returns true when this call crossed the unlock threshold. Updating an
// already-unlocked achievement is a no-op.
func (s *Service) UpdateProgress(ctx context.Context, achievementID string, progress int) (bool, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	unlocked, err := s.updateOne(ctx, achievementID, progress)
	if err != nil {
		return false, err
	}
	if err := s.repo.Save(ctx, s.achievements); err != nil {
		return unlocked, fmt.Errorf("persisting achievements: %w", err)
	}
	return unlocked, nil
}

// UpdateMultiple applies a batch of progress updates and returns the ids
// that unlocked during this call, in input order. Each achievement is
// independent: the order of application never changes the unlock set.
func (s *Service) UpdateMultiple(ctx context.Context, updates []ProgressUpdate) ([]string, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	var newlyUnlocked []string
	for _, u := range updates {
		unlocked, err := s.updateOne(ctx, u.ID, u.Progress)
		if err != nil {
			return newlyUnlocked, err
		}
		if unlocked {
			newlyUnlocked = append(newlyUnlocked, u.ID)
		}
	}
	if err := s.repo.Save(ctx, s.achievements); err != nil {
		return newlyUnlocked, fmt.Errorf("persisting achievements: %w", err)
	}
	return newlyUnlocked, nil
}

// updateOne applies a single update. Caller holds the guard.
func (s *Service) updateOne(ctx context.Context, achievementID string, progress int) (bool, error) {
	idx, ok := s.byID[achievementID]
	if !ok {
		return false, common.ErrAchievementNotFound
	}
	a := &s.achievements[idx]

	// Progress is frozen once unlocked; repeat calls never re-reward.
	if a.IsUnlocked {
		return false, nil
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	a.Progress = progress

	if progress < 100 {
		return false, nil
	}

	// One-way transition: unlock and award exactly once.
	now := s.clock.Now()
	a.IsUnlocked = true
	a.UnlockedAt = &now

	_, err := s.ledger.Add(ctx, a.Points, a.Name, points.TypeAchievement,
		fmt.Sprintf("Achievement unlocked: %s", a.Name), a.ID)
	if err != nil {
		// Roll the transition back so a retry can award again.
		a.IsUnlocked = false
		a.UnlockedAt = nil
		return false, fmt.Errorf("awarding unlock reward: %w", err)
	}

	log.WithFields(log.Fields{
		"achievement": a.ID,
		"rarity":      a.Rarity,
		"points":      a.Points,
	}).Info("Achievement unlocked")

	return true, nil
}

// GetAchievements returns a copy of every achievement.
func (s *Service) GetAchievements() []Achievement {
	s.guard.Lock()
	defer s.guard.Unlock()

	out := make([]Achievement, len(s.achievements))
	copy(out, s.achievements)
	return out
}

// GetStats returns totals, the completion rate and the three most recent
// unlocks (by unlock time, newest first).
func (s *Service) GetStats() Stats {
	s.guard.Lock()
	defer s.guard.Unlock()

	stats := Stats{Total: len(s.achievements)}

	var unlocked []Achievement
	for _, a := range s.achievements {
		if a.IsUnlocked {
			unlocked = append(unlocked, a)
		}
	}
	stats.Unlocked = len(unlocked)
	stats.Locked = stats.Total - stats.Unlocked
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Unlocked) / float64(stats.Total) * 100))
	}

	sort.SliceStable(unlocked, func(i, j int) bool {
		return unlocked[i].UnlockedAt.After(*unlocked[j].UnlockedAt)
	})
	if len(unlocked) > 3 {
		unlocked = unlocked[:3]
	}
	stats.RecentUnlocks = unlocked

	return stats
}
