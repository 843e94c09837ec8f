package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kolinabir/hirelens/internal/models"
)

func TestBuildEmail(t *testing.T) {
	jobs := []models.ExtractedJob{
		{
			JobTitle:        "Senior Backend Developer",
			Company:         "Acme Ltd",
			Location:        "Dhaka",
			Salary:          "$2000-$3000/month",
			EmploymentType:  "full-time",
			TechnicalSkills: []string{"golang", "mongodb"},
			Description:     "We are hiring a senior backend developer.",
			SourceURL:       "https://facebook.com/groups/1/posts/2",
		},
		{JobTitle: "Job Opportunity"},
	}

	subject, body := BuildEmail(jobs, time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC))

	assert.Contains(t, subject, "2 new job postings")
	assert.Contains(t, subject, "Aug 29, 2026")
	assert.Contains(t, body, "Senior Backend Developer")
	assert.Contains(t, body, "Acme Ltd")
	assert.Contains(t, body, "golang, mongodb")
	assert.Contains(t, body, "https://facebook.com/groups/1/posts/2")
	assert.Contains(t, body, "Job Opportunity")
}

func TestBuildEmail_EscapesHTML(t *testing.T) {
	jobs := []models.ExtractedJob{{JobTitle: "<script>alert(1)</script>"}}
	_, body := BuildEmail(jobs, time.Now())
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestBuildMessage_Headers(t *testing.T) {
	msg := string(buildMessage("digest@hirelens.app", "Test Subject", "<p>hello</p>"))

	assert.True(t, strings.HasPrefix(msg, "From: digest@hirelens.app\r\n"))
	assert.Contains(t, msg, "Subject: Test Subject\r\n")
	assert.Contains(t, msg, "Content-Type: text/html")
	assert.True(t, strings.HasSuffix(msg, "\r\n<p>hello</p>"))
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "short", snippet("short", 10))
	assert.Equal(t, "0123456789…", snippet("0123456789abc", 10))
}
