package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kolinabir/hirelens/internal/models"
)

// ErrNotFound is returned when a document lookup by ID matches nothing.
var ErrNotFound = errors.New("not found")

type Repository struct {
	client      *mongo.Client
	posts       *mongo.Collection
	jobs        *mongo.Collection
	targets     *mongo.Collection
	subscribers *mongo.Collection
}

func ConnectDB(ctx context.Context, uri, dbName string) (*Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	db := client.Database(dbName)
	r := &Repository{
		client:      client,
		posts:       db.Collection("posts"),
		jobs:        db.Collection("jobs"),
		targets:     db.Collection("targets"),
		subscribers: db.Collection("subscribers"),
	}
	if err := r.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) ensureIndexes(ctx context.Context) error {
	// Jobs upsert on sourceUrl; subscriber emails are unique.
	_, err := r.jobs.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "sourceUrl", Value: 1}},
		Options: options.Index().SetUnique(true).
			SetPartialFilterExpression(bson.M{"sourceUrl": bson.M{"$type": "string"}}),
	})
	if err != nil {
		return fmt.Errorf("failed to create jobs index: %w", err)
	}
	_, err = r.subscribers.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create subscribers index: %w", err)
	}
	return nil
}

func (r *Repository) Close(ctx context.Context) {
	if r.client != nil {
		_ = r.client.Disconnect(ctx)
	}
}

// ---------------- POST OPERATIONS ----------------

// SavePosts archives raw scraped posts. Posts are append-only; extraction
// reads its input from the scrape cycle, not from this archive.
func (r *Repository) SavePosts(ctx context.Context, posts []models.Post) (int, error) {
	if len(posts) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(posts))
	now := time.Now()
	for _, p := range posts {
		p.ID = primitive.NilObjectID
		if p.ScrapedAt.IsZero() {
			p.ScrapedAt = now
		}
		docs = append(docs, p)
	}
	res, err := r.posts.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("failed to save posts: %w", err)
	}
	return len(res.InsertedIDs), nil
}

// ---------------- JOB OPERATIONS ----------------

// UpsertJob inserts a job or, when a job with the same sourceUrl already
// exists, refreshes its fields. Jobs without a sourceUrl are always
// inserted. Returns true when a new document was created.
func (r *Repository) UpsertJob(ctx context.Context, job *models.ExtractedJob) (bool, error) {
	now := time.Now()
	job.UpdatedAt = now

	if job.SourceURL == "" {
		job.ID = primitive.NewObjectID()
		job.CreatedAt = now
		if _, err := r.jobs.InsertOne(ctx, job); err != nil {
			return false, fmt.Errorf("failed to insert job: %w", err)
		}
		return true, nil
	}

	update := bson.M{
		"$set": bson.M{
			"jobTitle":        job.JobTitle,
			"company":         job.Company,
			"location":        job.Location,
			"salary":          job.Salary,
			"employmentType":  job.EmploymentType,
			"technicalSkills": job.TechnicalSkills,
			"tags":            job.Tags,
			"description":     job.Description,
			"source":          job.Source,
			"postedBy":        job.PostedBy,
			"likesCount":      job.LikesCount,
			"commentsCount":   job.CommentsCount,
			"updatedAt":       now,
		},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	res, err := r.jobs.UpdateOne(ctx, bson.M{"sourceUrl": job.SourceURL}, update,
		options.Update().SetUpsert(true))
	if err != nil {
		return false, fmt.Errorf("failed to upsert job: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

// JobQuery describes the /jobs listing filters.
type JobQuery struct {
	Search         string
	EmploymentType string
	Skill          string
	Tag            string
	Page           int
	Limit          int
}

// jobFilter builds the Mongo filter for a job listing query. The search
// string is quoted so user input like "(" becomes a plain case-insensitive
// substring match instead of a regex server error.
func jobFilter(q JobQuery) bson.M {
	filter := bson.M{}
	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"jobTitle": re},
			bson.M{"company": re},
			bson.M{"description": re},
		}
	}
	if q.EmploymentType != "" {
		filter["employmentType"] = q.EmploymentType
	}
	if q.Skill != "" {
		filter["technicalSkills"] = q.Skill
	}
	if q.Tag != "" {
		filter["tags"] = q.Tag
	}
	return filter
}

// ListJobs returns one page of jobs (newest first) plus the total count for
// the filter.
func (r *Repository) ListJobs(ctx context.Context, q JobQuery) ([]models.ExtractedJob, int64, error) {
	filter := jobFilter(q)

	total, err := r.jobs.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.jobs.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer cur.Close(ctx)

	jobs := []models.ExtractedJob{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, total, nil
}

// JobsSince returns jobs created after the cutoff, newest first, bounded by
// limit. Used by the digest.
func (r *Repository) JobsSince(ctx context.Context, cutoff time.Time, limit int) ([]models.ExtractedJob, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.jobs.Find(ctx, bson.M{"createdAt": bson.M{"$gt": cutoff}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent jobs: %w", err)
	}
	defer cur.Close(ctx)

	jobs := []models.ExtractedJob{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode recent jobs: %w", err)
	}
	return jobs, nil
}

func (r *Repository) GetJobByID(ctx context.Context, id string) (*models.ExtractedJob, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid job id %q", ErrNotFound, id)
	}
	var job models.ExtractedJob
	err = r.jobs.FindOne(ctx, bson.M{"_id": oid}).Decode(&job)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get job by ID: %w", err)
	}
	return &job, nil
}

func (r *Repository) UpdateJob(ctx context.Context, id string, job *models.ExtractedJob) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid job id %q", ErrNotFound, id)
	}
	job.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"jobTitle":        job.JobTitle,
		"company":         job.Company,
		"location":        job.Location,
		"salary":          job.Salary,
		"employmentType":  job.EmploymentType,
		"technicalSkills": job.TechnicalSkills,
		"tags":            job.Tags,
		"description":     job.Description,
		"updatedAt":       job.UpdatedAt,
	}}
	res, err := r.jobs.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteJob(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid job id %q", ErrNotFound, id)
	}
	res, err := r.jobs.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------- TARGET OPERATIONS ----------------

func (r *Repository) ListTargets(ctx context.Context, onlyEnabled bool) ([]models.ScrapeTarget, error) {
	filter := bson.M{}
	if onlyEnabled {
		filter["enabled"] = true
	}
	cur, err := r.targets.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer cur.Close(ctx)

	targets := []models.ScrapeTarget{}
	if err := cur.All(ctx, &targets); err != nil {
		return nil, fmt.Errorf("failed to decode targets: %w", err)
	}
	return targets, nil
}

func (r *Repository) CreateTarget(ctx context.Context, target *models.ScrapeTarget) error {
	target.ID = primitive.NewObjectID()
	target.CreatedAt = time.Now()
	if _, err := r.targets.InsertOne(ctx, target); err != nil {
		return fmt.Errorf("failed to create target: %w", err)
	}
	return nil
}

func (r *Repository) UpdateTarget(ctx context.Context, id string, target *models.ScrapeTarget) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid target id %q", ErrNotFound, id)
	}
	update := bson.M{"$set": bson.M{
		"name":         target.Name,
		"kind":         target.Kind,
		"url":          target.URL,
		"itemSelector": target.ItemSelector,
		"linkSelector": target.LinkSelector,
		"enabled":      target.Enabled,
	}}
	res, err := r.targets.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update target: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeleteTarget(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid target id %q", ErrNotFound, id)
	}
	res, err := r.targets.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete target: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchTarget records a completed scrape run.
func (r *Repository) TouchTarget(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.targets.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"lastRunAt": at}})
	if err != nil {
		return fmt.Errorf("failed to touch target: %w", err)
	}
	return nil
}

// ---------------- SUBSCRIBER OPERATIONS ----------------

func (r *Repository) ListSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	cur, err := r.subscribers.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer cur.Close(ctx)

	subs := []models.Subscriber{}
	if err := cur.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("failed to decode subscribers: %w", err)
	}
	return subs, nil
}

func (r *Repository) CreateSubscriber(ctx context.Context, sub *models.Subscriber) error {
	sub.ID = primitive.NewObjectID()
	sub.CreatedAt = time.Now()
	if _, err := r.subscribers.InsertOne(ctx, sub); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("subscriber %s already exists", sub.Email)
		}
		return fmt.Errorf("failed to create subscriber: %w", err)
	}
	return nil
}

func (r *Repository) DeleteSubscriber(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid subscriber id %q", ErrNotFound, id)
	}
	res, err := r.subscribers.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete subscriber: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
