// Package ingest runs the scrape cycle: for every enabled target, scrape
// raw posts, drop already-seen ones, archive the rest, extract structured
// jobs, optionally refine them with the AI pass, and upsert the results.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kolinabir/hirelens/internal/ai"
	"github.com/kolinabir/hirelens/internal/dedup"
	"github.com/kolinabir/hirelens/internal/digest"
	"github.com/kolinabir/hirelens/internal/extractor"
	"github.com/kolinabir/hirelens/internal/models"
	"github.com/kolinabir/hirelens/internal/scraper"
)

// Store is the slice of the repository the worker needs. Satisfied by
// *database.Repository; tests substitute a fake.
type Store interface {
	ListTargets(ctx context.Context, onlyEnabled bool) ([]models.ScrapeTarget, error)
	TouchTarget(ctx context.Context, id primitive.ObjectID, at time.Time) error
	SavePosts(ctx context.Context, posts []models.Post) (int, error)
	UpsertJob(ctx context.Context, job *models.ExtractedJob) (bool, error)
}

type Worker struct {
	repo     Store
	cache    *dedup.PostCache
	aiClient ai.Client                 // nil disables the refinement pass
	reporter *digest.TelegramReporter  // nil disables new-job alerts
	scrapers map[models.TargetKind]scraper.Scraper
}

// Counts summarizes one ingest batch.
type Counts struct {
	Stored    int `json:"stored"`
	Extracted int `json:"extracted"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
}

func NewWorker(
	repo Store,
	cache *dedup.PostCache,
	aiClient ai.Client,
	reporter *digest.TelegramReporter,
	scrapers map[models.TargetKind]scraper.Scraper,
) *Worker {
	return &Worker{
		repo:     repo,
		cache:    cache,
		aiClient: aiClient,
		reporter: reporter,
		scrapers: scrapers,
	}
}

// Run executes one scrape cycle over all enabled targets. Per-target errors
// are logged and skipped; the cycle itself only fails when the target list
// cannot be loaded.
func (w *Worker) Run(ctx context.Context) error {
	runID := uuid.NewString()[:8]

	targets, err := w.repo.ListTargets(ctx, true)
	if err != nil {
		return fmt.Errorf("could not load targets: %w", err)
	}
	log.Printf("🚀 [run %s] Starting scrape cycle: %d enabled targets", runID, len(targets))

	var total Counts
	for _, target := range targets {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s, ok := w.scrapers[target.Kind]
		if !ok {
			log.Printf("⚠️ [run %s] No scraper for target %q (kind %s), skipping", runID, target.Name, target.Kind)
			continue
		}

		posts, err := s.Scrape(ctx, target)
		if err != nil {
			log.Printf("❌ [run %s] Scraper %s failed on %q: %v. Continuing.", runID, s.Name(), target.Name, err)
			continue
		}

		unseen := w.dropSeen(posts)
		log.Printf("🔍 [run %s] %s %q: %d posts scraped, %d unseen", runID, s.Name(), target.Name, len(posts), len(unseen))
		if len(unseen) == 0 {
			continue
		}

		counts, err := w.IngestPosts(ctx, unseen)
		if err != nil {
			log.Printf("❌ [run %s] Ingest failed for %q: %v. Continuing.", runID, target.Name, err)
			continue
		}

		w.markSeen(unseen)
		if err := w.repo.TouchTarget(ctx, target.ID, time.Now()); err != nil {
			log.Printf("⚠️ [run %s] Could not record run time for %q: %v", runID, target.Name, err)
		}

		total.Stored += counts.Stored
		total.Extracted += counts.Extracted
		total.Created += counts.Created
		total.Updated += counts.Updated
	}

	log.Printf("🏁 [run %s] Cycle done: stored=%d extracted=%d created=%d updated=%d",
		runID, total.Stored, total.Extracted, total.Created, total.Updated)
	return nil
}

// IngestPosts archives raw posts, extracts jobs, merges the AI refinement
// when available, and upserts everything. Also called directly by the
// POST /posts handler.
func (w *Worker) IngestPosts(ctx context.Context, posts []models.Post) (Counts, error) {
	var counts Counts

	stored, err := w.repo.SavePosts(ctx, posts)
	if err != nil {
		return counts, err
	}
	counts.Stored = stored

	payload, err := json.Marshal(posts)
	if err != nil {
		return counts, fmt.Errorf("could not marshal posts: %w", err)
	}
	jobs, err := extractor.ExtractJobPosts(string(payload))
	if err != nil {
		return counts, err
	}
	counts.Extracted = len(jobs)

	if w.aiClient != nil && len(jobs) > 0 {
		refined, err := w.aiClient.ExtractJobs(ctx, posts)
		if err != nil {
			// AI pass is best-effort; local extraction stands on its own
			log.Printf("⚠️ AI refinement failed, keeping local extraction: %v", err)
		} else {
			jobs = MergeRefinement(jobs, refined)
		}
	}

	for i := range jobs {
		created, err := w.repo.UpsertJob(ctx, &jobs[i])
		if err != nil {
			log.Printf("⚠️ Failed to upsert job %q: %v", jobs[i].JobTitle, err)
			continue
		}
		if created {
			counts.Created++
			if w.reporter != nil {
				if err := w.reporter.SendJob(jobs[i]); err != nil {
					log.Printf("⚠️ Failed to send job to Telegram: %v", err)
				}
			}
		} else {
			counts.Updated++
		}
	}

	return counts, nil
}

// MergeRefinement overlays AI-extracted fields onto the locally extracted
// jobs, matched by source URL. Non-empty AI fields win; local values fill
// whatever the model left blank. AI jobs without a match are ignored; the
// local pass decides what counts as a job post.
func MergeRefinement(local, refined []models.ExtractedJob) []models.ExtractedJob {
	byURL := make(map[string]models.ExtractedJob, len(refined))
	for _, r := range refined {
		if r.SourceURL != "" {
			byURL[r.SourceURL] = r
		}
	}

	for i := range local {
		r, ok := byURL[local[i].SourceURL]
		if !ok || local[i].SourceURL == "" {
			continue
		}
		if r.JobTitle != "" {
			local[i].JobTitle = r.JobTitle
		}
		if r.Company != "" {
			local[i].Company = r.Company
		}
		if r.Location != "" {
			local[i].Location = r.Location
		}
		if r.Salary != "" {
			local[i].Salary = r.Salary
		}
		if r.EmploymentType != "" {
			local[i].EmploymentType = r.EmploymentType
		}
		if len(r.TechnicalSkills) > 0 {
			local[i].TechnicalSkills = r.TechnicalSkills
		}
		if len(r.Tags) > 0 {
			local[i].Tags = r.Tags
		}
	}
	return local
}

func (w *Worker) dropSeen(posts []models.Post) []models.Post {
	var unseen []models.Post
	for _, p := range posts {
		key := dedupKey(p)
		if key != "" && w.cache.IsSeen(key) {
			continue
		}
		unseen = append(unseen, p)
	}
	return unseen
}

func (w *Worker) markSeen(posts []models.Post) {
	keys := make([]string, 0, len(posts))
	for _, p := range posts {
		keys = append(keys, dedupKey(p))
	}
	w.cache.Add(keys)
}

// dedupKey identifies a post across scrape cycles. The permalink is the
// stable key; listing sites whose items carry no link fall back to a hash
// of the post body so the same item is not re-ingested every run.
func dedupKey(p models.Post) string {
	if p.FacebookURL != "" {
		return p.FacebookURL
	}
	body := p.Content
	if body == "" {
		body = p.Text
	}
	if body == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(body))
	return "sha256:" + hex.EncodeToString(sum[:])
}
