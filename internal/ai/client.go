package ai

import (
	"context"

	"github.com/kolinabir/hirelens/internal/models"
)

// Client is the interface for AI providers used as the secondary
// structuring pass over raw posts. Implementations must return jobs in the
// same shape and field names as the local extractor so the two passes can
// be merged.
type Client interface {
	// ExtractJobs takes raw posts and returns one structured job per post
	// the model considers a job posting.
	ExtractJobs(ctx context.Context, posts []models.Post) ([]models.ExtractedJob, error)
}

// buildSystemPrompt creates the system instruction for the AI model
func buildSystemPrompt() string {
	return `You are an expert job-posting data extraction agent.
I will provide a JSON array of raw social-media posts scraped from job-hunting Facebook groups and job sites.

Task:
1. For each post that is actually a job posting, output one JSON object with EXACTLY these keys: "jobTitle", "company", "location", "salary", "employmentType", "technicalSkills", "tags", "description", "sourceUrl".
2. "employmentType" must be one of: "full-time", "part-time", "contract", "freelance", "remote", "internship", or "" when unclear.
3. "technicalSkills" and "tags" are arrays of lowercase strings with no duplicates.
4. Copy the post's "facebookUrl" into "sourceUrl" when present.
5. Use "" for any string field you cannot determine. Do NOT guess or hallucinate.
6. Skip posts that are not job postings entirely.
7. Return ONLY a valid, raw JSON array of these objects. Do NOT wrap the output in markdown blocks (no ` + "```" + `). Output just the literal JSON starting with [ and ending with ].`
}

// buildUserPrompt serializes the posts for the model
func buildUserPrompt(postsJSON string) string {
	return "Raw posts (JSON array):\n" + postsJSON + "\n\nExtract the structured job postings."
}
