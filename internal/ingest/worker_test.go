package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/kolinabir/hirelens/internal/dedup"
	"github.com/kolinabir/hirelens/internal/models"
	"github.com/kolinabir/hirelens/internal/scraper"
)

type fakeStore struct {
	targets []models.ScrapeTarget
	saved   []models.Post
	jobs    []models.ExtractedJob
	touched []primitive.ObjectID
}

func (f *fakeStore) ListTargets(ctx context.Context, onlyEnabled bool) ([]models.ScrapeTarget, error) {
	return f.targets, nil
}

func (f *fakeStore) TouchTarget(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

func (f *fakeStore) SavePosts(ctx context.Context, posts []models.Post) (int, error) {
	f.saved = append(f.saved, posts...)
	return len(posts), nil
}

func (f *fakeStore) UpsertJob(ctx context.Context, job *models.ExtractedJob) (bool, error) {
	f.jobs = append(f.jobs, *job)
	return true, nil
}

// flakyScraper fails for targets whose name contains "down" and returns one
// qualifying post for everything else.
type flakyScraper struct{}

func (flakyScraper) Name() string { return "Flaky" }

func (flakyScraper) Scrape(ctx context.Context, target models.ScrapeTarget) ([]models.Post, error) {
	if strings.Contains(target.Name, "down") {
		return nil, errors.New("feed unreachable")
	}
	return []models.Post{{
		Content:     "We are hiring a senior Golang developer for our " + target.Name + " team, apply now!",
		FacebookURL: "https://facebook.com/groups/1/posts/" + target.Name,
		Source:      "facebook",
	}}, nil
}

func TestWorkerRun_TargetFailureDoesNotAbortCycle(t *testing.T) {
	store := &fakeStore{targets: []models.ScrapeTarget{
		{ID: primitive.NewObjectID(), Name: "down-group", Kind: models.TargetFacebook, Enabled: true},
		{ID: primitive.NewObjectID(), Name: "healthy-group", Kind: models.TargetFacebook, Enabled: true},
	}}
	cache := dedup.NewPostCache(t.TempDir())
	worker := NewWorker(store, cache, nil, nil, map[models.TargetKind]scraper.Scraper{
		models.TargetFacebook: flakyScraper{},
	})

	require.NoError(t, worker.Run(context.Background()))

	// the failing first target is skipped, the second still lands
	require.Len(t, store.saved, 1)
	assert.Contains(t, store.saved[0].Content, "healthy-group")
	require.Len(t, store.jobs, 1)
	assert.Equal(t, []primitive.ObjectID{store.targets[1].ID}, store.touched)
}

func TestWorkerRun_UnknownTargetKindSkipped(t *testing.T) {
	store := &fakeStore{targets: []models.ScrapeTarget{
		{ID: primitive.NewObjectID(), Name: "orphan", Kind: models.TargetWebsite, Enabled: true},
	}}
	cache := dedup.NewPostCache(t.TempDir())
	worker := NewWorker(store, cache, nil, nil, map[models.TargetKind]scraper.Scraper{
		models.TargetFacebook: flakyScraper{},
	})

	require.NoError(t, worker.Run(context.Background()))
	assert.Empty(t, store.saved)
}

func TestDedupKey(t *testing.T) {
	withLink := models.Post{FacebookURL: "https://facebook.com/groups/1/posts/1", Content: "body"}
	assert.Equal(t, "https://facebook.com/groups/1/posts/1", dedupKey(withLink))

	linkless := models.Post{Content: "We need a senior QA engineer, remote position, apply today."}
	key := dedupKey(linkless)
	assert.True(t, strings.HasPrefix(key, "sha256:"), "linkless posts hash their body")
	assert.Equal(t, key, dedupKey(linkless), "key must be stable across cycles")

	assert.Empty(t, dedupKey(models.Post{}))
}

func TestWorkerRun_LinklessPostsNotReingested(t *testing.T) {
	store := &fakeStore{targets: []models.ScrapeTarget{
		{ID: primitive.NewObjectID(), Name: "healthy-group", Kind: models.TargetFacebook, Enabled: true},
	}}
	cache := dedup.NewPostCache(t.TempDir())
	scrapers := map[models.TargetKind]scraper.Scraper{models.TargetFacebook: linklessScraper{}}
	worker := NewWorker(store, cache, nil, nil, scrapers)

	require.NoError(t, worker.Run(context.Background()))
	require.Len(t, store.saved, 1)

	// same content on the next cycle is recognized as seen
	require.NoError(t, worker.Run(context.Background()))
	assert.Len(t, store.saved, 1)
}

// linklessScraper mimics a listing site whose items carry no permalink.
type linklessScraper struct{}

func (linklessScraper) Name() string { return "Linkless" }

func (linklessScraper) Scrape(ctx context.Context, target models.ScrapeTarget) ([]models.Post, error) {
	return []models.Post{{
		Content: "Urgent hiring! Graphic designer needed for a printing company, apply today.",
		Source:  "website",
	}}, nil
}

func TestMergeRefinement_AIFieldsWin(t *testing.T) {
	local := []models.ExtractedJob{{
		SourceURL:       "https://facebook.com/groups/1/posts/1",
		JobTitle:        "Job Opportunity",
		Location:        "",
		Salary:          "$500/month",
		TechnicalSkills: []string{"php"},
	}}
	refined := []models.ExtractedJob{{
		SourceURL:       "https://facebook.com/groups/1/posts/1",
		JobTitle:        "Laravel Developer",
		Location:        "Dhaka",
		TechnicalSkills: []string{"php", "laravel"},
	}}

	merged := MergeRefinement(local, refined)
	assert.Equal(t, "Laravel Developer", merged[0].JobTitle)
	assert.Equal(t, "Dhaka", merged[0].Location)
	assert.Equal(t, []string{"php", "laravel"}, merged[0].TechnicalSkills)
	// AI left salary blank, local value survives
	assert.Equal(t, "$500/month", merged[0].Salary)
}

func TestMergeRefinement_UnmatchedAIJobsIgnored(t *testing.T) {
	local := []models.ExtractedJob{{SourceURL: "https://a", JobTitle: "Kept"}}
	refined := []models.ExtractedJob{{SourceURL: "https://b", JobTitle: "Dropped"}}

	merged := MergeRefinement(local, refined)
	assert.Len(t, merged, 1)
	assert.Equal(t, "Kept", merged[0].JobTitle)
}

func TestMergeRefinement_NoSourceURLUntouched(t *testing.T) {
	local := []models.ExtractedJob{{JobTitle: "Local Only"}}
	refined := []models.ExtractedJob{{JobTitle: "AI Title"}}

	merged := MergeRefinement(local, refined)
	assert.Equal(t, "Local Only", merged[0].JobTitle)
}
