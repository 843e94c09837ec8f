package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/kolinabir/hirelens/internal/ai"
	"github.com/kolinabir/hirelens/internal/browser"
	"github.com/kolinabir/hirelens/internal/config"
	"github.com/kolinabir/hirelens/internal/database"
	"github.com/kolinabir/hirelens/internal/dedup"
	"github.com/kolinabir/hirelens/internal/digest"
	"github.com/kolinabir/hirelens/internal/ingest"
	"github.com/kolinabir/hirelens/internal/models"
	"github.com/kolinabir/hirelens/internal/scraper"
	"github.com/kolinabir/hirelens/internal/scraper/facebook"
	"github.com/kolinabir/hirelens/internal/scraper/website"
)

// One-shot scrape cycle. Runs every enabled target once, stores the
// extracted jobs and exits. Useful for cron-less environments and for
// testing a new target before enabling the scheduler.
func main() {
	//load config
	cfg := config.Load()
	log.Println("🔧 Config loaded.")

	//setup context with timeout = 10 mins
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	log.Println("🚀 Starting HireLens scrape cycle...")

	//connect database
	repo, err := database.ConnectDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer repo.Close(context.Background())

	//optional telegram reporter
	var reporter *digest.TelegramReporter
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		reporter, err = digest.NewTelegramReporter(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("⚠️ Telegram disabled: %v", err)
		} else {
			log.Println("🤖 Telegram reporter initialized.")
		}
	}

	//optional AI refinement pass
	var aiClient ai.Client
	if cfg.GroqAPIKey != "" {
		aiClient = ai.NewGroqClient(cfg.GroqAPIKey)
	}

	//init playwright manager
	pwManager, err := browser.NewPlaywright(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to init Playwright: %v", err)
	}
	//close playwright manager when application stops
	defer pwManager.Close()

	//load cookies
	cookies, err := browser.LoadCookies(filepath.Join(cfg.CookiesPath, "cookies-facebook.json"))
	if err != nil {
		log.Printf("⚠️ Could not load facebook cookies: %v. Continuing.", err)
	} else {
		log.Printf("🍪 Loaded facebook cookies (%d)", len(cookies))
	}

	//create new browser context with cookies
	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		log.Fatalf("❌ Failed to create browser context: %v", err)
	}

	//create new page
	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("❌ Failed to create new page: %v", err)
	}
	log.Println("✅ Browser initialized successfully!")

	//initialize scrapers
	scrapers := map[models.TargetKind]scraper.Scraper{
		models.TargetFacebook: facebook.New(page),
		models.TargetWebsite:  website.New(),
	}

	cache := dedup.NewPostCache(cfg.CachePath)
	worker := ingest.NewWorker(repo, cache, aiClient, reporter, scrapers)

	if err := worker.Run(ctx); err != nil {
		log.Fatalf("❌ Scrape cycle failed: %v", err)
	}
	log.Println("🏁 Scrape cycle finished.")
}
