// Package tasks — service.go contains the task tracker: progress updates
// with a one-time completion reward, the active/completed views, idempotent
// official-task seeding and the recurring window roll-forward driven by the
// scheduler.
package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/clock"
	"culturecraft.app/gamification/internal/common"
	"culturecraft.app/gamification/internal/features/points"
)

// Service manages tasks and per-user progress.
type Service struct {
	guard  *sync.Mutex
	repo   *Repository
	ledger *points.Ledger
	clock  clock.Clock

	tasks    []Task
	progress []Progress
}

// NewService loads task state and seeds the official catalog idempotently.
func NewService(ctx context.Context, guard *sync.Mutex, repo *Repository, ledger *points.Ledger, clk clock.Clock) (*Service, error) {
	tasks, err := repo.LoadTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	progress, err := repo.LoadProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading task progress: %w", err)
	}

	s := &Service{
		guard:    guard,
		repo:     repo,
		ledger:   ledger,
		clock:    clk,
		tasks:    tasks,
		progress: progress,
	}
	if err := s.seedOfficial(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// seedOfficial inserts every default task whose id is not already present.
// Existing tasks are never touched, so re-running on startup is safe.
func (s *Service) seedOfficial(ctx context.Context) error {
	existing := make(map[string]bool, len(s.tasks))
	for _, t := range s.tasks {
		existing[t.ID] = true
	}

	added := 0
	for _, t := range DefaultCatalog(s.clock.Now()) {
		if existing[t.ID] {
			continue
		}
		s.tasks = append(s.tasks, t)
		added++
	}
	if added == 0 {
		return nil
	}
	if err := s.repo.SaveTasks(ctx, s.tasks); err != nil {
		return fmt.Errorf("persisting seeded tasks: %w", err)
	}
	log.WithField("count", added).Info("Official tasks seeded")
	return nil
}

// UpdateProgress sets a user's progress on a task, creating the row on first
// call. The first time progress reaches the requirement count, CompletedAt
// is stamped and the reward posted to the ledger — exactly once; later calls
// never re-reward.
func (s *Service) UpdateProgress(ctx context.Context, userID, taskID string, progressValue int) (*Progress, error) {
	s.guard.Lock()
	defer s.guard.Unlock()

	task := s.taskByID(taskID)
	if task == nil {
		return nil, common.ErrTaskNotFound
	}

	row := s.progressRow(taskID, userID)
	if row == nil {
		s.progress = append(s.progress, Progress{TaskID: taskID, UserID: userID})
		row = &s.progress[len(s.progress)-1]
	}

	alreadyCompleted := row.CompletedAt != nil
	row.Progress = progressValue

	if !alreadyCompleted && progressValue >= task.Requirements.Count {
		now := s.clock.Now()
		row.CompletedAt = &now

		_, err := s.ledger.Add(ctx, task.Reward.Points, task.Title, points.TypeTask,
			fmt.Sprintf("Task completed: %s", task.Title), task.ID)
		if err != nil {
			row.CompletedAt = nil
			return nil, fmt.Errorf("posting task reward: %w", err)
		}

		log.WithFields(log.Fields{
			"task_id": taskID,
			"user_id": userID,
			"points":  task.Reward.Points,
		}).Info("Task completed")
	}

	if err := s.repo.SaveProgress(ctx, s.progress); err != nil {
		return nil, fmt.Errorf("persisting task progress: %w", err)
	}

	out := *row
	return &out, nil
}

// GetActiveTasksForUser returns active tasks whose window contains now and
// whose progress for the user is still below target.
func (s *Service) GetActiveTasksForUser(userID string) []Task {
	s.guard.Lock()
	defer s.guard.Unlock()

	now := s.clock.Now()
	var out []Task
	for _, t := range s.tasks {
		if t.Status != StatusActive {
			continue
		}
		if now.Before(t.StartDate) {
			continue
		}
		if t.EndDate != nil && now.After(*t.EndDate) {
			continue
		}
		if row := s.progressRow(t.ID, userID); row != nil && row.Progress >= t.Requirements.Count {
			continue
		}
		out = append(out, t)
	}
	return out
}

// GetCompletedTasksForUser returns tasks whose progress reached the target,
// regardless of the active window.
func (s *Service) GetCompletedTasksForUser(userID string) []Task {
	s.guard.Lock()
	defer s.guard.Unlock()

	var out []Task
	for _, t := range s.tasks {
		if row := s.progressRow(t.ID, userID); row != nil && row.Progress >= t.Requirements.Count {
			out = append(out, t)
		}
	}
	return out
}

// GetProgress returns the user's progress row for a task, or nil.
func (s *Service) GetProgress(taskID, userID string) *Progress {
	s.guard.Lock()
	defer s.guard.Unlock()

	row := s.progressRow(taskID, userID)
	if row == nil {
		return nil
	}
	out := *row
	return &out
}

// RollWindows moves expired recurring official tasks into their next window
// and clears their progress rows so they can be completed again. Invoked at
// midnight by the scheduler.
func (s *Service) RollWindows(ctx context.Context) error {
	s.guard.Lock()
	defer s.guard.Unlock()

	now := s.clock.Now()
	rolled := 0
	for i := range s.tasks {
		t := &s.tasks[i]
		if !t.Official || t.EndDate == nil || !now.After(*t.EndDate) {
			continue
		}

		var span time.Time
		start := clock.DateOf(now)
		switch t.Type {
		case TypeDaily:
			span = start.AddDate(0, 0, 1)
		case TypeWeekly:
			span = start.AddDate(0, 0, 7)
		case TypeMonthly:
			span = start.AddDate(0, 1, 0)
		default:
			// Event and achievement tasks do not recur.
			continue
		}

		t.StartDate = start
		t.EndDate = &span
		s.clearProgress(t.ID)
		rolled++
	}
	if rolled == 0 {
		return nil
	}

	if err := s.repo.SaveTasks(ctx, s.tasks); err != nil {
		return fmt.Errorf("persisting rolled tasks: %w", err)
	}
	if err := s.repo.SaveProgress(ctx, s.progress); err != nil {
		return fmt.Errorf("persisting cleared progress: %w", err)
	}

	log.WithField("count", rolled).Info("Recurring task windows rolled forward")
	return nil
}

func (s *Service) taskByID(id string) *Task {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i]
		}
	}
	return nil
}

func (s *Service) progressRow(taskID, userID string) *Progress {
	for i := range s.progress {
		if s.progress[i].TaskID == taskID && s.progress[i].UserID == userID {
			return &s.progress[i]
		}
	}
	return nil
}

func (s *Service) clearProgress(taskID string) {
	kept := s.progress[:0]
	for _, row := range s.progress {
		if row.TaskID != taskID {
			kept = append(kept, row)
		}
	}
	s.progress = kept
}
