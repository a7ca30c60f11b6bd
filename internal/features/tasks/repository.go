// Package tasks — repository.go persists tasks and progress rows under their
// stable storage keys.
package tasks

import (
	"context"

	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/storage"
)

// Stable storage keys for the task tracker.
const (
	tasksKey    = "gamification:tasks"
	progressKey = "gamification:task_progress"
)

// Repository reads and writes task state through the storage adapter.
type Repository struct {
	store storage.Store
}

// NewRepository creates a task repository over the given adapter.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// LoadTasks returns the persisted task definitions. Missing or corrupt data
// yields nil so the service can seed the official catalog.
func (r *Repository) LoadTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	ok, err := storage.GetJSON(ctx, r.store, tasksKey, &tasks)
	if err != nil {
		log.WithError(err).Warn("Corrupt tasks snapshot, reseeding defaults")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return tasks, nil
}

// SaveTasks replaces the persisted task definitions.
func (r *Repository) SaveTasks(ctx context.Context, tasks []Task) error {
	return storage.SetJSON(ctx, r.store, tasksKey, tasks)
}

// LoadProgress returns the persisted progress rows.
func (r *Repository) LoadProgress(ctx context.Context) ([]Progress, error) {
	var rows []Progress
	ok, err := storage.GetJSON(ctx, r.store, progressKey, &rows)
	if err != nil {
		log.WithError(err).Warn("Corrupt task progress snapshot, starting empty")
		return nil, nil
	}
	if !ok {
		return nil, nil
	}
	return rows, nil
}

// SaveProgress replaces the persisted progress rows.
func (r *Repository) SaveProgress(ctx context.Context, rows []Progress) error {
	return storage.SetJSON(ctx, r.store, progressKey, rows)
}
