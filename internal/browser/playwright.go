package browser

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

type PlaywrightManager struct {
	pw      *playwright.Playwright
	browser playwright.Browser
}

// NewPlaywright launches a headless Chromium instance. Install the browser
// binaries once with `playwright install chromium` before first use.
func NewPlaywright(ctx context.Context) (*PlaywrightManager, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	return &PlaywrightManager{pw: pw, browser: browser}, nil
}

// NewContext creates a browser context with a desktop user agent and the
// given session cookies preloaded.
func (pm *PlaywrightManager) NewContext(cookies []playwright.OptionalCookie) (playwright.BrowserContext, error) {
	ctx, err := pm.browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"),
		Viewport:  &playwright.Size{Width: 1366, Height: 768},
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}
	if len(cookies) > 0 {
		if err := ctx.AddCookies(cookies); err != nil {
			return nil, fmt.Errorf("could not add cookies: %w", err)
		}
	}
	return ctx, nil
}

func (pm *PlaywrightManager) Close() error {
	if pm.browser != nil {
		if err := pm.browser.Close(); err != nil {
			return err
		}
	}
	if pm.pw != nil {
		return pm.pw.Stop()
	}
	return nil
}
