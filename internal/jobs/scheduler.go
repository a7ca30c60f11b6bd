// Package jobs manages background work (cron).
// scheduler.go wires the recurring-task window refresh: official daily,
// weekly and monthly tasks roll into their next window at midnight in the
// application timezone.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"culturecraft.app/gamification/internal/config"
	"culturecraft.app/gamification/internal/features/tasks"
)

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron        *cron.Cron
	taskService *tasks.Service
	schedule    string
}

// NewScheduler creates the scheduler in the configured timezone.
func NewScheduler(taskService *tasks.Service, cfg *config.Config) *Scheduler {
	c := cron.New(cron.WithLocation(cfg.Location()))
	return &Scheduler{
		cron:        c,
		taskService: taskService,
		schedule:    cfg.TaskRefreshSchedule,
	}
}

// Start registers and launches all jobs.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		log.Info("[CRON] Rolling recurring task windows")
		if err := s.taskService.RollWindows(ctx); err != nil {
			log.WithError(err).Error("[CRON] Task window roll failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.WithField("schedule", s.schedule).Info("Scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Scheduler stopped")
}
