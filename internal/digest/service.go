package digest

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kolinabir/hirelens/internal/database"
)

// Service sends the digest: jobs collected since the previous send, to all
// current subscribers.
type Service struct {
	repo     *database.Repository
	sender   EmailSender
	reporter *TelegramReporter // nil when telegram is not configured
	jobLimit int

	mu       sync.Mutex
	lastSent time.Time
}

func NewService(repo *database.Repository, sender EmailSender, reporter *TelegramReporter, jobLimit int) *Service {
	return &Service{
		repo:     repo,
		sender:   sender,
		reporter: reporter,
		jobLimit: jobLimit,
		// first digest covers the last 24h
		lastSent: time.Now().Add(-24 * time.Hour),
	}
}

// Send builds and delivers the digest now. Returns the number of jobs and
// subscribers covered. A digest with no new jobs or no subscribers is a
// no-op, not an error.
func (s *Service) Send(ctx context.Context) (jobs int, subscribers int, err error) {
	s.mu.Lock()
	since := s.lastSent
	s.mu.Unlock()

	recent, err := s.repo.JobsSince(ctx, since, s.jobLimit)
	if err != nil {
		return 0, 0, fmt.Errorf("digest query failed: %w", err)
	}
	if len(recent) == 0 {
		log.Println("📭 Digest: no new jobs since last send.")
		return 0, 0, nil
	}

	subs, err := s.repo.ListSubscribers(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("digest subscribers query failed: %w", err)
	}
	if len(subs) == 0 {
		log.Println("📭 Digest: no subscribers.")
		return len(recent), 0, nil
	}

	to := make([]string, 0, len(subs))
	for _, sub := range subs {
		to = append(to, sub.Email)
	}

	subject, body := BuildEmail(recent, time.Now())
	if err := s.sender.Send(to, subject, body); err != nil {
		return 0, 0, err
	}

	s.mu.Lock()
	s.lastSent = time.Now()
	s.mu.Unlock()

	log.Printf("📬 Digest sent: %d jobs to %d subscribers", len(recent), len(to))
	if s.reporter != nil {
		if err := s.reporter.SendSummary(len(recent), len(to)); err != nil {
			log.Printf("⚠️ Failed to send telegram summary: %v", err)
		}
	}
	return len(recent), len(to), nil
}
