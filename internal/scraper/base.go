// Define an interface for all scrapers
// Ensure consistency

package scraper

import (
	"context"

	"github.com/kolinabir/hirelens/internal/models"
)

//Scraper defines the interface that all source scrapers must implement
type Scraper interface {
	//Scrape raw posts from the target
	Scrape(ctx context.Context, target models.ScrapeTarget) ([]models.Post, error)

	//Name is the source name (Facebook, Website, ...)
	Name() string
}
