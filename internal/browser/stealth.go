package browser

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay waits for a random duration between min and max milliseconds
func RandomDelay(min, max int) {
	if min >= max {
		time.Sleep(time.Duration(min) * time.Millisecond)
		return
	}
	duration := rand.Intn(max-min+1) + min
	time.Sleep(time.Duration(duration) * time.Millisecond)
}

// HumanScroll scrolls the feed in steps the way a reader would, which also
// triggers lazy loading of more posts.
func HumanScroll(page playwright.Page) error {
	for i := 0; i < 5; i++ {
		if _, err := page.Evaluate("window.scrollBy(0, window.innerHeight / 2)"); err != nil {
			return err
		}
		RandomDelay(500, 1500)
	}
	//scroll back up a bit (human-like correction)
	if _, err := page.Evaluate("window.scrollBy(0, -200)"); err != nil {
		return err
	}
	return nil
}

// MouseJiggle simulates random mouse movements to prevent idle detection
func MouseJiggle(page playwright.Page) error {
	viewportSize := page.ViewportSize()
	if viewportSize == nil {
		return nil
	}
	for i := 0; i < 3; i++ {
		x := rand.Intn(viewportSize.Width)
		y := rand.Intn(viewportSize.Height)
		if err := page.Mouse().Move(float64(x), float64(y)); err != nil {
			return err
		}
		RandomDelay(100, 300)
	}
	return nil
}

// DumpScreenshot saves a full-page screenshot for debugging blocked or
// unexpected pages.
func DumpScreenshot(page playwright.Page, name, message string) error {
	dir := filepath.Join("logs", "screenshots")
	os.MkdirAll(dir, 0755)

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", name, timestamp))
	log.Printf("📸 %s", message)

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}
	log.Printf("   Screenshot saved: %s", path)
	return nil
}
