package service

import (
	"context"
	"time"

	"github.com/edustack/edustack-backend/pkg/logger"
)

// Scheduler polls for approved topics whose scheduled publish time has
// passed and promotes them. Runs until its context is cancelled.
type Scheduler struct {
	workflow WorkflowService
	interval time.Duration
}

// NewScheduler creates a scheduler polling at the given interval
func NewScheduler(workflow WorkflowService, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{workflow: workflow, interval: interval}
}

// Run blocks until ctx is cancelled. Intended to be started in its
// own goroutine from main.
func (s *Scheduler) Run(ctx context.Context) {
	log := logger.GetLogger()
	log.Info().Dur("interval", s.interval).Msg("publication scheduler started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("publication scheduler stopped")
			return
		case <-ticker.C:
			n, err := s.workflow.PublishScheduled(ctx)
			if err != nil {
				log.Error().Err(err).Msg("scheduled publish sweep failed")
				continue
			}
			if n > 0 {
				log.Info().Int("published", n).Msg("scheduled topics published")
			}
		}
	}
}
