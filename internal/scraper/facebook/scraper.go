// Navigate to Facebook groups
// Scroll the feed to load posts
// Extract post text, permalink, author, counters
// Return raw posts (filtering happens in the extractor)

package facebook

import (
	"context"
	"log"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/kolinabir/hirelens/internal/browser"
	"github.com/kolinabir/hirelens/internal/models"
)

// Facebook rewrites its DOM frequently; try selectors in order and take the
// first that yields anything.
var (
	feedSelectors = []string{
		`div[role="feed"] > div`,
		`div[data-pagelet^="GroupFeed"] div[role="article"]`,
	}
	messageSelectors = []string{
		`div[data-ad-preview="message"]`,
		`div[data-ad-comet-preview="message"]`,
	}
	permalinkSelector = `a[href*="/posts/"], a[href*="/permalink/"]`
	authorSelector    = `h3 strong a, h2 strong a`
)

type FacebookScraper struct {
	page playwright.Page
}

func New(page playwright.Page) *FacebookScraper {
	return &FacebookScraper{page: page}
}

func (s *FacebookScraper) Name() string {
	return "Facebook"
}

func (s *FacebookScraper) Scrape(ctx context.Context, target models.ScrapeTarget) ([]models.Post, error) {
	log.Printf("📋 Scraping Facebook group: %s", target.URL)

	if _, err := s.page.Goto(target.URL, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		log.Printf("⚠️ Error navigating to %s: %v", target.URL, err)
		return nil, err
	}

	//login wall check
	title, _ := s.page.Title()
	if strings.Contains(title, "Log in") || strings.Contains(title, "Log into") {
		log.Println("❌ Facebook login wall detected. Refresh the session cookies.")
		browser.DumpScreenshot(s.page, "facebook-login-wall", "🚨 Facebook: login wall detected")
		return nil, nil
	}

	//human behavior + lazy loading
	browser.RandomDelay(1000, 2000)
	browser.MouseJiggle(s.page)
	if err := browser.HumanScroll(s.page); err != nil {
		log.Printf("⚠️ Scroll failed: %v", err)
	}

	articles, err := s.feedArticles()
	if err != nil {
		return nil, err
	}
	log.Printf("  📄 Found %d feed entries", len(articles))

	var posts []models.Post
	for _, article := range articles {
		if ctx.Err() != nil {
			return posts, ctx.Err()
		}
		post, ok := s.extractPost(article)
		if !ok {
			continue
		}
		post.Source = "facebook"
		posts = append(posts, post)
	}

	log.Printf("✅ Facebook group done. Collected %d posts.", len(posts))
	return posts, nil
}

func (s *FacebookScraper) feedArticles() ([]playwright.Locator, error) {
	for _, sel := range feedSelectors {
		articles, err := s.page.Locator(sel).All()
		if err != nil {
			continue
		}
		if len(articles) > 0 {
			return articles, nil
		}
	}
	return nil, nil
}

func (s *FacebookScraper) extractPost(article playwright.Locator) (models.Post, bool) {
	var post models.Post

	for _, sel := range messageSelectors {
		msg := article.Locator(sel).First()
		if visible, _ := msg.IsVisible(); !visible {
			continue
		}
		text, err := msg.InnerText()
		if err != nil || strings.TrimSpace(text) == "" {
			continue
		}
		post.Content = strings.TrimSpace(text)
		break
	}
	if post.Content == "" {
		return post, false
	}

	if link := article.Locator(permalinkSelector).First(); link != nil {
		if href, err := link.GetAttribute("href"); err == nil && href != "" {
			post.FacebookURL = canonicalPermalink(href)
		}
	}
	if author := article.Locator(authorSelector).First(); author != nil {
		if name, err := author.InnerText(); err == nil && strings.TrimSpace(name) != "" {
			post.User = &models.PostUser{Name: strings.TrimSpace(name)}
		}
	}

	return post, true
}

// canonicalPermalink strips the click-tracking query string facebook appends
// so dedup keys stay stable across scrapes.
func canonicalPermalink(href string) string {
	if i := strings.IndexByte(href, '?'); i >= 0 {
		href = href[:i]
	}
	if strings.HasPrefix(href, "/") {
		href = "https://www.facebook.com" + href
	}
	return href
}
