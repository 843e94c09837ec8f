// Fetch a listing page over plain HTTP
// Walk the configured item selector with goquery
// Return raw posts (filtering happens in the extractor)

package website

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/kolinabir/hirelens/internal/models"
)

const (
	httpTimeout = 15 * time.Second
	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

	defaultItemSelector = "article"
	defaultLinkSelector = "a"
)

type WebsiteScraper struct {
	client *http.Client
}

func New() *WebsiteScraper {
	return &WebsiteScraper{
		client: &http.Client{Timeout: httpTimeout},
	}
}

func (s *WebsiteScraper) Name() string {
	return "Website"
}

func (s *WebsiteScraper) Scrape(ctx context.Context, target models.ScrapeTarget) ([]models.Post, error) {
	log.Printf("📋 Scraping website: %s", target.URL)

	req, err := http.NewRequestWithContext(ctx, "GET", target.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("website request failed: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("website fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("website status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("website parse failed: %w", err)
	}

	itemSelector := target.ItemSelector
	if itemSelector == "" {
		itemSelector = defaultItemSelector
	}
	linkSelector := target.LinkSelector
	if linkSelector == "" {
		linkSelector = defaultLinkSelector
	}

	base, err := url.Parse(target.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid target url: %w", err)
	}

	var posts []models.Post
	doc.Find(itemSelector).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}

		post := models.Post{
			Content: collapseWhitespace(text),
			Source:  "website",
		}
		if href, exists := sel.Find(linkSelector).First().Attr("href"); exists && href != "" {
			post.FacebookURL = absoluteURL(base, href)
		}
		posts = append(posts, post)
	})

	log.Printf("✅ Website done. Collected %d entries.", len(posts))
	return posts, nil
}

func absoluteURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// collapseWhitespace flattens the newline soup goquery.Text() produces for
// nested listing markup.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
