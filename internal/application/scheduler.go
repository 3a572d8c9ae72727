package application

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler re-runs a report job on a fixed interval for watch mode.
// The job can be swapped while running (config reload).
type Scheduler struct {
	log   *zap.Logger
	every time.Duration

	mu  sync.RWMutex
	job func(ctx context.Context) error
}

func NewScheduler(log *zap.Logger, every time.Duration, job func(ctx context.Context) error) *Scheduler {
	return &Scheduler{log: log, every: every, job: job}
}

func (s *Scheduler) UpdateJob(job func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.job = job
	s.log.Info("config reloaded")
}

func (s *Scheduler) Run(ctx context.Context) {
	t := time.NewTicker(s.every)
	defer t.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	s.mu.RLock()
	job := s.job
	s.mu.RUnlock()

	if err := job(ctx); err != nil {
		s.log.Warn("report failed", zap.Error(err))
	}
}
