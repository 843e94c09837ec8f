// Package scheduler wires up the cron job that periodically runs the
// scrape cycle over all enabled targets.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"github.com/kolinabir/hirelens/internal/ingest"
)

// Scheduler wraps robfig/cron and manages the scrape loop.
type Scheduler struct {
	cron   *cron.Cron
	worker *ingest.Worker
	spec   string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(worker *ingest.Worker, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		worker: worker,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one scrape
// immediately so the dashboard is populated without waiting for the first
// tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runScrape(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("⏰ Cron started with spec %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runScrape(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("⏰ Cron stopped")
}

func (s *Scheduler) runScrape(ctx context.Context) {
	if err := s.worker.Run(ctx); err != nil {
		log.Printf("❌ Scheduled scrape cycle failed: %v", err)
	}
}
