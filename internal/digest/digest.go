// Package digest assembles and delivers the periodic job digest: an HTML
// email to every subscriber, mirrored as a compact telegram summary when a
// bot is configured.
package digest

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/kolinabir/hirelens/internal/models"
)

// BuildEmail renders the digest subject and HTML body for a batch of jobs.
// Jobs are expected newest first; the caller bounds the batch size.
func BuildEmail(jobs []models.ExtractedJob, now time.Time) (subject, body string) {
	subject = fmt.Sprintf("HireLens digest: %d new job postings (%s)", len(jobs), now.Format("Jan 2, 2006"))

	var b strings.Builder
	b.WriteString("<h2>New job postings</h2>\n")
	b.WriteString(fmt.Sprintf("<p>%d new postings collected since the last digest.</p>\n", len(jobs)))

	for _, job := range jobs {
		b.WriteString("<hr>\n")
		b.WriteString(fmt.Sprintf("<h3>%s</h3>\n", html.EscapeString(job.JobTitle)))

		var facts []string
		if job.Company != "" {
			facts = append(facts, "🏢 "+html.EscapeString(job.Company))
		}
		if job.Location != "" {
			facts = append(facts, "📍 "+html.EscapeString(job.Location))
		}
		if job.Salary != "" {
			facts = append(facts, "💰 "+html.EscapeString(job.Salary))
		}
		if job.EmploymentType != "" {
			facts = append(facts, "🕐 "+html.EscapeString(job.EmploymentType))
		}
		if len(facts) > 0 {
			b.WriteString("<p>" + strings.Join(facts, " &nbsp;|&nbsp; ") + "</p>\n")
		}

		if len(job.TechnicalSkills) > 0 {
			b.WriteString("<p>🛠 " + html.EscapeString(strings.Join(job.TechnicalSkills, ", ")) + "</p>\n")
		}
		if job.Description != "" {
			b.WriteString("<p>" + html.EscapeString(snippet(job.Description, 200)) + "</p>\n")
		}
		if job.SourceURL != "" {
			b.WriteString(fmt.Sprintf("<p><a href=\"%s\">View original post</a></p>\n", html.EscapeString(job.SourceURL)))
		}
	}

	return subject, b.String()
}

func snippet(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
