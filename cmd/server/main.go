package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/kolinabir/hirelens/internal/ai"
	"github.com/kolinabir/hirelens/internal/browser"
	"github.com/kolinabir/hirelens/internal/config"
	"github.com/kolinabir/hirelens/internal/database"
	"github.com/kolinabir/hirelens/internal/dedup"
	"github.com/kolinabir/hirelens/internal/digest"
	"github.com/kolinabir/hirelens/internal/handlers"
	"github.com/kolinabir/hirelens/internal/ingest"
	"github.com/kolinabir/hirelens/internal/models"
	"github.com/kolinabir/hirelens/internal/scheduler"
	"github.com/kolinabir/hirelens/internal/scraper"
	"github.com/kolinabir/hirelens/internal/scraper/facebook"
	"github.com/kolinabir/hirelens/internal/scraper/website"
	"github.com/kolinabir/hirelens/internal/server"
)

func main() {
	//load config
	cfg := config.Load()
	log.Println("🔧 Config loaded.")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	//connect database
	repo, err := database.ConnectDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer repo.Close(context.Background())
	log.Println("🗄️ MongoDB connected.")

	seedTargets(ctx, repo, cfg)

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
		log.Println("🧠 AI refinement enabled.")
	}

	//scrapers: website always; facebook only when a browser comes up
	scrapers := map[models.TargetKind]scraper.Scraper{
		models.TargetWebsite: website.New(),
	}
	if fb, cleanup := facebookScraper(ctx, cfg); fb != nil {
		scrapers[models.TargetFacebook] = fb
		defer cleanup()
	}

	cache := dedup.NewPostCache(cfg.CachePath)
	worker := ingest.NewWorker(repo, cache, aiClient, reporter, scrapers)

	//digest
	sender := digest.NewSMTPSender(cfg.SMTP)
	digestSvc := digest.NewService(repo, sender, reporter, cfg.DigestJobLimit)

	//scheduler
	sched := scheduler.New(worker, cfg.ScrapeIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("❌ Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	//HTTP server
	handler := handlers.New(repo, worker, digestSvc)
	router := server.NewRouter(handler)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on port %s...", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	//graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️ Server shutdown: %v", err)
	}
}

// seedTargets creates targets from the YAML config on first boot so the
// scheduler has something to scrape before the admin adds targets via the
// API.
func seedTargets(ctx context.Context, repo *database.Repository, cfg *config.Config) {
	existing, err := repo.ListTargets(ctx, false)
	if err != nil {
		log.Printf("⚠️ Could not check existing targets: %v", err)
		return
	}
	if len(existing) > 0 {
		return
	}

	for _, group := range cfg.FacebookGroups {
		target := &models.ScrapeTarget{Name: group, Kind: models.TargetFacebook, URL: group, Enabled: true}
		if err := repo.CreateTarget(ctx, target); err != nil {
			log.Printf("⚠️ Could not seed facebook target %s: %v", group, err)
		}
	}
	for _, url := range cfg.WebsiteURLs {
		target := &models.ScrapeTarget{Name: url, Kind: models.TargetWebsite, URL: url, Enabled: true}
		if err := repo.CreateTarget(ctx, target); err != nil {
			log.Printf("⚠️ Could not seed website target %s: %v", url, err)
		}
	}
	log.Printf("🌱 Seeded %d scrape targets from config", len(cfg.FacebookGroups)+len(cfg.WebsiteURLs))
}

// facebookScraper brings up a browser session with the saved cookies.
// Returns nil when the browser cannot start; the server still serves the
// API and website targets.
func facebookScraper(ctx context.Context, cfg *config.Config) (scraper.Scraper, func()) {
	pwManager, err := browser.NewPlaywright(ctx)
	if err != nil {
		log.Printf("⚠️ Playwright unavailable, facebook targets disabled: %v", err)
		return nil, nil
	}

	cookies, err := browser.LoadCookies(filepath.Join(cfg.CookiesPath, "cookies-facebook.json"))
	if err != nil {
		log.Printf("⚠️ Could not load facebook cookies: %v. Continuing without a session.", err)
	} else {
		log.Printf("🍪 Loaded facebook cookies (%d)", len(cookies))
	}

	browserCtx, err := pwManager.NewContext(cookies)
	if err != nil {
		log.Printf("⚠️ Browser context failed, facebook targets disabled: %v", err)
		pwManager.Close()
		return nil, nil
	}
	page, err := browserCtx.NewPage()
	if err != nil {
		log.Printf("⚠️ Browser page failed, facebook targets disabled: %v", err)
		pwManager.Close()
		return nil, nil
	}

	log.Println("✅ Browser initialized successfully!")
	return facebook.New(page), func() { pwManager.Close() }
}
