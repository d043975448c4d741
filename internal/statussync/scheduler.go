package statussync

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a Syncer periodically.
type Scheduler struct {
	cron   *cron.Cron
	syncer *Syncer
	log    *slog.Logger
}

// NewScheduler creates a Scheduler that runs syncer every interval.
func NewScheduler(syncer *Syncer, interval time.Duration, log *slog.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	s := &Scheduler{
		cron:   c,
		syncer: syncer,
		log:    log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runSync); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled syncs.
func (s *Scheduler) Start() {
	s.log.Info("status sync scheduler started")
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once a running sync finishes.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("status sync scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runSync() {
	if _, err := s.syncer.Run(context.Background()); err != nil {
		s.log.Error("scheduled status sync failed", "error", err)
	}
}
