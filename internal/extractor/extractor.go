// Package extractor turns raw scraped posts into structured job records
// using ordered regex heuristics. It is a pure function over its input:
// no I/O, no shared state, safe to call from any number of goroutines.
package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/kolinabir/hirelens/internal/models"
)

// ErrInvalidInput is returned when the payload does not decode as a JSON
// array of post objects. Individual malformed posts are skipped, never
// reported through this error.
var ErrInvalidInput = errors.New("posts payload is not a JSON array")

const (
	minTextLength        = 30
	maxDescriptionLength = 500
	minCompanyLength     = 3
	maxCompanyLength     = 50
	defaultTitle         = "Job Opportunity"
)

// ExtractJobPosts decodes a JSON array of posts and returns one structured
// job per qualifying post, in input order. Posts that are too short or
// carry no job keyword are silently dropped.
func ExtractJobPosts(postsJSON string) ([]models.ExtractedJob, error) {
	// json.Unmarshal accepts "null" into a slice without error, so the
	// array shape has to be checked up front
	if !strings.HasPrefix(strings.TrimSpace(postsJSON), "[") {
		return nil, fmt.Errorf("%w: payload is not an array", ErrInvalidInput)
	}

	var posts []models.Post
	if err := json.Unmarshal([]byte(postsJSON), &posts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	jobs := make([]models.ExtractedJob, 0, len(posts))
	for _, post := range posts {
		text := PostText(post)
		if !Qualifies(text) {
			continue
		}
		jobs = append(jobs, ExtractOne(post, text))
	}
	return jobs, nil
}

// PostText assembles the extractable text of a post: body (content wins
// over text) plus any OCR text recognized in attached images, NFC
// normalized so scraped combining sequences compare predictably.
func PostText(post models.Post) string {
	parts := make([]string, 0, 1+len(post.Attachments))

	body := post.Content
	if body == "" {
		body = post.Text
	}
	if body != "" {
		parts = append(parts, body)
	}
	for _, att := range post.Attachments {
		if att.OCRText != "" {
			parts = append(parts, att.OCRText)
		}
	}

	joined := strings.Join(parts, "\n")
	normalized, _, err := transform.String(norm.NFC, joined)
	if err != nil {
		return joined
	}
	return normalized
}

// Qualifies applies the minimal "looks like a job post" filter: non-empty
// after trimming, at least minTextLength chars, and at least one job
// keyword present.
func Qualifies(text string) bool {
	trimmed := strings.TrimSpace(text)
	// counted in characters, not bytes: Bengali posts are 3 bytes per rune
	if utf8.RuneCountInString(trimmed) < minTextLength {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, kw := range jobKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractOne runs every field extractor over an already-qualified post.
func ExtractOne(post models.Post, text string) models.ExtractedJob {
	job := models.ExtractedJob{
		JobTitle:        ExtractTitle(text),
		Company:         ExtractCompany(text),
		Location:        ExtractLocation(text),
		Salary:          ExtractSalary(text),
		EmploymentType:  ExtractEmploymentType(text),
		TechnicalSkills: ExtractSkills(text),
		Tags:            ExtractTags(text),
		Description:     truncate(strings.TrimSpace(text), maxDescriptionLength),
		SourceURL:       post.FacebookURL,
		Source:          post.Source,
		LikesCount:      post.LikesCount,
		CommentsCount:   post.CommentsCount,
	}
	if post.User != nil {
		job.PostedBy = post.User.Name
	}
	return job
}

// ExtractTitle tries the ordered title patterns, then the leading-line
// heuristic, and finally falls back to a generic placeholder. It never
// returns an empty string.
func ExtractTitle(text string) string {
	for _, re := range titlePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if title := cleanCapture(m[1]); title != "" {
				return title
			}
		}
	}
	if line := firstLine(text); len(line) <= 80 && titleLineKeywords.MatchString(line) {
		return cleanCapture(line)
	}
	return defaultTitle
}

// ExtractEmploymentType checks the type keywords in fixed priority order.
func ExtractEmploymentType(text string) string {
	for _, p := range employmentTypePatterns {
		if p.re.MatchString(text) {
			return p.label
		}
	}
	return ""
}

func ExtractLocation(text string) string {
	for _, re := range locationPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if loc := cleanCapture(m[1]); loc != "" {
				return loc
			}
		}
	}
	return ""
}

// ExtractCompany rejects captures outside the 3-50 char bound and moves on
// to the next pattern, so prose accidentally shaped like a cue does not
// become a company name.
func ExtractCompany(text string) string {
	for _, re := range companyPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			name := cleanCapture(m[1])
			if len(name) >= minCompanyLength && len(name) <= maxCompanyLength {
				return name
			}
		}
	}
	return ""
}

func ExtractSalary(text string) string {
	for _, re := range salaryPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if salary := cleanCapture(m[1]); salary != "" {
				return salary
			}
		}
	}
	return ""
}

// ExtractSkills scans the tech vocabulary as case-insensitive substrings.
// The set guarantees each keyword appears at most once.
func ExtractSkills(text string) []string {
	return scanVocabulary(text, techVocabulary)
}

// ExtractTags derives seniority/urgency/work-mode tags the same way.
func ExtractTags(text string) []string {
	return scanVocabulary(text, tagVocabulary)
}

func scanVocabulary(text string, vocab []string) []string {
	lower := strings.ToLower(text)
	seen := mapset.NewThreadUnsafeSet[string]()
	found := []string{}
	for _, kw := range vocab {
		if strings.Contains(lower, kw) && seen.Add(kw) {
			found = append(found, kw)
		}
	}
	return found
}

// cleanCapture trims whitespace and stray punctuation a capture group drags
// along from free text.
func cleanCapture(s string) string {
	return strings.Trim(strings.TrimSpace(s), ".,;:!|-– ")
}

func firstLine(text string) string {
	trimmed := strings.TrimSpace(text)
	if i := strings.IndexByte(trimmed, '\n'); i >= 0 {
		return strings.TrimSpace(trimmed[:i])
	}
	return trimmed
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
