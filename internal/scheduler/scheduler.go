// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// archiver archives articles older than a given age.
type archiver interface {
	AutoArchive(ctx context.Context, olderThan time.Duration) (int, error)
}

// Scheduler runs the auto-archive job.
type Scheduler struct {
	log       *slog.Logger
	cron      *cron.Cron
	articles  archiver
	spec      string
	olderThan time.Duration
	timeout   time.Duration

	mu      sync.Mutex
	started bool
}

// New creates a scheduler running AutoArchive(olderThan) on spec, a standard
// five-field cron expression. Each run is bounded by timeout.
func New(log *slog.Logger, articles archiver, spec string, olderThan, timeout time.Duration) *Scheduler {
	return &Scheduler{
		log:       log.With("component", "scheduler"),
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		articles:  articles,
		spec:      spec,
		olderThan: olderThan,
		timeout:   timeout,
	}
}

// Start registers the job and starts the cron loop.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.runAutoArchive); err != nil {
		return fmt.Errorf("schedule auto-archive %q: %w", s.spec, err)
	}
	s.cron.Start()
	s.started = true

	s.log.Info("scheduler started",
		slog.String("auto_archive_spec", s.spec),
		slog.Duration("auto_archive_after", s.olderThan),
	)
	return nil
}

// Stop stops the cron loop and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false

	select {
	case <-s.cron.Stop().Done():
		s.log.Info("scheduler stopped")
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out; job still running")
	}
}

func (s *Scheduler) runAutoArchive() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.articles.AutoArchive(ctx, s.olderThan)
	if err != nil {
		s.log.Error("auto-archive failed", slog.String("error", err.Error()))
		return
	}
	s.log.Info("auto-archive finished",
		slog.Int("archived", n),
		slog.Duration("took", time.Since(start)),
	)
}
