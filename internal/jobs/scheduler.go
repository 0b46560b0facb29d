package jobs

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vytor/vokabox/internal/logger"
)

// Scheduler enqueues recurring maintenance jobs.
type Scheduler struct {
	scheduler *gocron.Scheduler
	queue     JobQueue
	interval  time.Duration
	log       *logger.Logger
}

// NewScheduler creates a scheduler that enqueues the stale-session sweep
// every interval, starting right away.
func NewScheduler(queue JobQueue, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		queue:     queue,
		interval:  interval,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start registers the jobs and runs the scheduler in the background.
func (s *Scheduler) Start() error {
	if s.interval < time.Minute {
		return fmt.Errorf("sweep interval %v is shorter than a minute", s.interval)
	}
	if _, err := s.scheduler.Every(s.interval).Do(s.enqueueSweep); err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}
	s.scheduler.StartAsync()
	s.log.Info("sweeping stale sessions every %v", s.interval)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) enqueueSweep() {
	if err := s.queue.EnqueueSweep(); err != nil {
		s.log.Warn("failed to enqueue sweep: %v", err)
	}
}
