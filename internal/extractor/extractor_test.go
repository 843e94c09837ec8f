package extractor

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolinabir/hirelens/internal/models"
)

const samplePost = "Looking for a Senior Backend Developer, full-time, remote. Location: Dhaka. Salary: $2000-$3000/month. Contact: jobs@acme.com"

func asJSON(t *testing.T, posts []models.Post) string {
	t.Helper()
	data, err := json.Marshal(posts)
	require.NoError(t, err)
	return string(data)
}

func TestExtractJobPosts_SamplePost(t *testing.T) {
	jobs, err := ExtractJobPosts(asJSON(t, []models.Post{{Content: samplePost}}))
	require.NoError(t, err)
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "Senior Backend Developer", job.JobTitle)
	assert.Equal(t, "full-time", job.EmploymentType)
	assert.Contains(t, job.Location, "Dhaka")
	assert.Equal(t, "$2000-$3000/month", job.Salary)
	assert.Contains(t, job.Tags, "remote")
	assert.Contains(t, job.Tags, "senior")
}

func TestExtractJobPosts_EmptyArray(t *testing.T) {
	jobs, err := ExtractJobPosts("[]")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestExtractJobPosts_InvalidInput(t *testing.T) {
	for _, payload := range []string{"not json", `{"content":"x"}`, `[1,2,3]`, "", "null", "  null  "} {
		_, err := ExtractJobPosts(payload)
		assert.Error(t, err, "payload %q", payload)
		assert.True(t, errors.Is(err, ErrInvalidInput), "payload %q", payload)
	}
}

func TestExtractJobPosts_FilterRules(t *testing.T) {
	tests := []struct {
		name string
		post models.Post
		keep bool
	}{
		{"short text dropped even with keywords", models.Post{Content: "hiring developer"}, false},
		{"long text without keywords dropped", models.Post{Content: strings.Repeat("lorem ipsum dolor sit amet ", 10)}, false},
		{"empty content dropped", models.Post{}, false},
		{"whitespace only dropped", models.Post{Content: "    \n\t   "}, false},
		{"short bengali text dropped despite byte length", models.Post{Content: "চাকরি দরকার, job dhaka"}, false},
		{"long text with keyword kept", models.Post{Content: "We are hiring a junior PHP developer for our Dhaka office, apply now!"}, true},
		{"text field used when content empty", models.Post{Text: "Urgent hiring! Graphic designer needed for a printing company, apply today."}, true},
		{"ocr text counts toward the filter", models.Post{
			Content:     "see image",
			Attachments: []models.Attachment{{OCRText: "We are hiring a senior QA engineer, remote position, competitive salary."}},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, err := ExtractJobPosts(asJSON(t, []models.Post{tt.post}))
			require.NoError(t, err)
			if tt.keep {
				assert.Len(t, jobs, 1)
			} else {
				assert.Empty(t, jobs)
			}
		})
	}
}

func TestExtractJobPosts_OutputNeverLongerThanInput(t *testing.T) {
	posts := []models.Post{
		{Content: samplePost},
		{Content: "too short"},
		{Content: "We need an experienced React developer to join our remote team immediately."},
		{},
	}
	jobs, err := ExtractJobPosts(asJSON(t, posts))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(jobs), len(posts))
	assert.Len(t, jobs, 2)
}

func TestExtractJobPosts_Idempotent(t *testing.T) {
	payload := asJSON(t, []models.Post{
		{Content: samplePost, FacebookURL: "https://facebook.com/groups/1/posts/2"},
		{Content: "Urgent: hiring part-time WordPress developer, salary negotiable, office in Chittagong."},
	})

	first, err := ExtractJobPosts(payload)
	require.NoError(t, err)
	second, err := ExtractJobPosts(payload)
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"looking for cue", "We are looking for a Flutter developer to build our app", "Flutter developer"},
		{"hiring cue", "hiring senior data engineer for analytics team", "senior data engineer"},
		{"position label", "Position: Digital Marketing Executive\nApply within", "Digital Marketing Executive"},
		{"capitalized phrase", "Acme Ltd wants a Junior Frontend Engineer on site", "Junior Frontend Engineer"},
		{"leading line", "URGENT VACANCY!!\nWe want someone energetic with good communication", "URGENT VACANCY"},
		{"fallback placeholder", "great pay and a friendly team await the right candidate, apply now through the link below and join us", defaultTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTitle(tt.text))
		})
	}
}

func TestExtractTitle_NeverEmpty(t *testing.T) {
	texts := []string{"", "random words about a job with no recognizable structure whatsoever"}
	for _, text := range texts {
		assert.NotEmpty(t, ExtractTitle(text))
	}
}

func TestExtractEmploymentType_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"full-time", "this is a full-time role", "full-time"},
		{"full time spaced", "full time position available", "full-time"},
		{"fulltime joined", "fulltime role", "full-time"},
		{"part-time", "part time evening shifts", "part-time"},
		{"contract", "6 month contract role", "contract"},
		{"freelance", "freelancer wanted", "freelance"},
		{"remote", "remote work only", "remote"},
		{"wfh counts as remote", "wfh allowed", "remote"},
		{"internship", "paid internship", "internship"},
		{"full-time beats remote", "remote full-time role", "full-time"},
		{"contract beats internship", "contract internship", "contract"},
		{"none", "no type mentioned here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEmploymentType(tt.text))
		})
	}
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"location label", "Location: Banani, Dhaka", "Banani"},
		{"based in", "We are based in Dhaka and growing", "Dhaka and growing"},
		{"remote literal", "work from anywhere, fully remote", "remote"},
		{"city country pair", "Our office is situated downtown. Sylhet, Bangladesh", "Sylhet, Bangladesh"},
		{"nothing", "no place mentioned", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLocation(tt.text))
		})
	}
}

func TestExtractCompany(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"company label", "Company: BrainStation 23", "BrainStation 23"},
		{"at cue", "Join us at Grameenphone today", "Grameenphone"},
		{"is hiring cue", "TigerIT is hiring backend engineers", "TigerIT"},
		{"lowercase prose rejected", "looking for a person with good skills", ""},
		{"too short capture rejected", "Work at Go now", ""},
		{"nothing", "no employer named anywhere", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCompany(tt.text))
		})
	}
}

func TestExtractSalary(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"dollar range with period", "pay is $2000-$3000/month", "$2000-$3000/month"},
		{"taka single amount", "salary ৳25,000 per month", "৳25,000 per month"},
		{"bare numeric with period", "we pay 50000 per month here", "50000 per month"},
		{"salary label free text", "Salary: negotiable based on experience", "negotiable based on experience"},
		{"nothing", "compensation is not discussed", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSalary(tt.text))
		})
	}
}

func TestExtractSkills_DedupAndCase(t *testing.T) {
	skills := ExtractSkills("Need React and REACT and react developers who know Docker, docker and MongoDB")
	assert.Equal(t, []string{"react", "mongodb", "docker"}, skills)
}

func TestExtractSkills_EmptyList(t *testing.T) {
	skills := ExtractSkills("no technology words at all")
	assert.NotNil(t, skills)
	assert.Empty(t, skills)
}

func TestExtractTags_NoDuplicates(t *testing.T) {
	tags := ExtractTags("urgent urgent URGENT remote remote senior")
	counts := map[string]int{}
	for _, tag := range tags {
		counts[tag]++
	}
	for tag, n := range counts {
		assert.Equal(t, 1, n, "tag %q appears %d times", tag, n)
	}
	assert.Contains(t, tags, "urgent")
	assert.Contains(t, tags, "remote")
	assert.Contains(t, tags, "senior")
}

func TestExtractOne_DescriptionTruncated(t *testing.T) {
	long := "We are hiring a developer. " + strings.Repeat("More details about the job. ", 40)
	jobs, err := ExtractJobPosts(asJSON(t, []models.Post{{Content: long}}))
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.LessOrEqual(t, len([]rune(jobs[0].Description)), maxDescriptionLength)
	assert.True(t, strings.HasPrefix(jobs[0].Description, "We are hiring a developer."))
}

func TestExtractOne_CarriesPostMetadata(t *testing.T) {
	post := models.Post{
		Content:       samplePost,
		FacebookURL:   "https://facebook.com/groups/9/posts/7",
		User:          &models.PostUser{ID: "42", Name: "Rahim"},
		LikesCount:    12,
		CommentsCount: 3,
		Source:        "facebook",
	}
	job := ExtractOne(post, PostText(post))
	assert.Equal(t, post.FacebookURL, job.SourceURL)
	assert.Equal(t, "Rahim", job.PostedBy)
	assert.Equal(t, 12, job.LikesCount)
	assert.Equal(t, 3, job.CommentsCount)
	assert.Equal(t, "facebook", job.Source)
}

func TestPostText_ContentWinsOverText(t *testing.T) {
	post := models.Post{Content: "body", Text: "ignored"}
	assert.Equal(t, "body", PostText(post))
}

func TestPostText_AppendsOCR(t *testing.T) {
	post := models.Post{
		Content:     "caption",
		Attachments: []models.Attachment{{OCRText: "poster text"}, {URL: "https://x/img.png"}},
	}
	assert.Equal(t, "caption\nposter text", PostText(post))
}
