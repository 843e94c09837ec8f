package extractor

import "regexp"

// Pattern order is load-bearing everywhere in this file: each field tries its
// list top to bottom and the first match wins, so context-rich cues must stay
// above the generic shapes.

// jobKeywords gate extraction: a post must contain at least one of these to
// qualify as a job post at all.
var jobKeywords = []string{
	"job", "hiring", "hire", "vacancy", "position", "career", "recruit",
	"developer", "engineer", "designer", "marketer", "accountant",
	"remote", "urgent", "seeking", "looking for", "opportunity",
	"intern", "salary", "apply", "cv", "resume",
}

var titlePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:looking\s+for|hiring|seeking|need(?:ed)?)\s+(?:an?\s+)?([A-Za-z][A-Za-z0-9+#./&\s-]{2,60}?(?:developer|engineer|designer|manager|internship|intern|executive|specialist|analyst|architect|consultant|officer))\b`),
	regexp.MustCompile(`(?i)(?:position|role|job\s+title|title)\s*[:\-]\s*([^\n,.;|]{3,60})`),
	regexp.MustCompile(`\b((?:[A-Z][A-Za-z0-9+#./-]*\s+){0,4}(?:Developer|Engineer|Designer|Manager|Internship|Intern|Executive|Specialist|Analyst|Architect|Consultant|Officer))\b`),
}

// titleLineKeywords back the last-resort title heuristic: use the leading
// line of the post when it mentions a role word.
var titleLineKeywords = regexp.MustCompile(`(?i)\b(developer|engineer|designer|manager|intern|executive|specialist|analyst|architect|consultant|officer|job|vacancy|position)\b`)

// employmentTypePatterns are checked in priority order; the label of the
// first hit becomes the employmentType value.
var employmentTypePatterns = []struct {
	label string
	re    *regexp.Regexp
}{
	{"full-time", regexp.MustCompile(`(?i)full[\s-]?time`)},
	{"part-time", regexp.MustCompile(`(?i)part[\s-]?time`)},
	{"contract", regexp.MustCompile(`(?i)\bcontract(?:ual)?\b`)},
	{"freelance", regexp.MustCompile(`(?i)\bfreelanc(?:e|er|ing)\b`)},
	{"remote", regexp.MustCompile(`(?i)\bremote\b|work\s+from\s+home|\bwfh\b`)},
	{"internship", regexp.MustCompile(`(?i)\binternship\b|\bintern\b`)},
}

var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:location|based\s+in|located\s+in)\s*[:\-]?\s*([^\n,.;|]{2,50})`),
	regexp.MustCompile(`(?i)\b(remote)\b`),
	regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?,\s*(?:[A-Z]{2}\b|[A-Z][a-z]+))`),
}

// companyPatterns keep the name part case-sensitive so "for a better salary"
// never yields a company; captures outside 3-50 chars are rejected and the
// next pattern is tried.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:company)\s*[:\-]\s*([^\n,.;|]{2,60})`),
	regexp.MustCompile(`\b(?:at|for|with)\s+([A-Z][A-Za-z0-9&.'-]*(?:\s+[A-Z][A-Za-z0-9&.'-]*){0,3})`),
	regexp.MustCompile(`([A-Z][A-Za-z0-9&.'-]*(?:\s+[A-Z][A-Za-z0-9&.'-]*){0,3})\s+(?i:is\s+(?:hiring|looking|seeking))`),
}

var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([$€£৳₹]\s?\d[\d,]*(?:\.\d+)?\s*(?:[-–—]|to)\s*[$€£৳₹]?\s?\d[\d,]*(?:\.\d+)?(?:\s*/?\s*(?:per\s+)?(?:hour|hr|month|mo|year|yr|annum|week|wk))?)`),
	regexp.MustCompile(`(?i)([$€£৳₹]\s?\d[\d,]*(?:\.\d+)?(?:\s*/?\s*(?:per\s+)?(?:hour|hr|month|mo|year|yr|annum|week|wk))?)`),
	regexp.MustCompile(`(?i)\b(\d[\d,]*(?:\s*(?:[-–—]|to)\s*\d[\d,]*)?\s*(?:/|per\s+)(?:hour|hr|month|mo|year|yr|annum|week|wk))\b`),
	regexp.MustCompile(`(?i)(?:salary|compensation|pay)\s*[:\-]\s*([^\n.;|]{3,40})`),
}

// techVocabulary is scanned as case-insensitive substrings. Entries appear at
// most once in the output; scan order decides list order.
var techVocabulary = []string{
	"javascript", "typescript", "python", "java", "c#", "c++", "php",
	"ruby", "golang", "rust", "swift", "kotlin", "dart",
	"react native", "react", "next.js", "angular", "vue", "svelte",
	"node.js", "express", "nestjs", "django", "flask", "fastapi",
	"laravel", "spring", "rails", ".net", "flutter", "android", "ios",
	"html", "css", "sass", "tailwind", "bootstrap", "jquery",
	"wordpress", "shopify", "graphql", "rest api", "grpc",
	"mysql", "postgresql", "mongodb", "redis", "elasticsearch", "sql",
	"firebase", "supabase", "kafka", "rabbitmq",
	"docker", "kubernetes", "terraform", "jenkins", "ci/cd", "git",
	"linux", "aws", "azure", "gcp",
	"figma", "photoshop", "illustrator", "seo",
}

// tagVocabulary derives seniority/urgency/work-mode tags.
var tagVocabulary = []string{
	"remote", "urgent", "senior", "junior", "lead", "freelance", "contract",
}
