// Package browser drives a headless Chrome instance for pages that only
// render their stats tables after JavaScript runs (Sidearm player bios in
// particular). Static pages should go through internal/fetch instead.
package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/fortuna/atalanta/internal/fetch"
	"github.com/fortuna/atalanta/internal/platform"
)

const (
	// pageTimeout bounds one full navigate-and-render pass.
	pageTimeout = 30 * time.Second

	// renderDelay gives client-side table rendering a moment to settle
	// after navigation or a season change.
	renderDelay = 2 * time.Second
)

// Client owns a shared Chrome allocator. Each fetch runs in its own browser
// context, so concurrent extractions do not share tab state.
type Client struct {
	allocCtx context.Context
	cancel   context.CancelFunc
}

// New starts a headless Chrome allocator.
func New() (*Client, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(fetch.UserAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// Close releases the Chrome allocator.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// RenderGameLog navigates to a player page, opens its stats section, selects
// the requested season when a season control is present, and returns the
// rendered HTML. Tab and season navigation are best-effort: a missing control
// means the page already shows whatever it has, which is not fatal.
func (c *Client) RenderGameLog(ctx context.Context, playerURL string, profile platform.Profile, season string) (string, error) {
	browserCtx, cancelBrowser := chromedp.NewContext(c.allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, pageTimeout)
	defer cancelTimeout()

	if err := chromedp.Run(browserCtx,
		chromedp.Navigate(playerURL),
		chromedp.WaitVisible("body", chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("navigate %s: %w", playerURL, err)
	}

	// Open the stats section. Not every platform needs a click.
	if profile.StatsTab != "" {
		clickCtx, cancelClick := context.WithTimeout(browserCtx, 5*time.Second)
		err := chromedp.Run(clickCtx,
			chromedp.Click(profile.StatsTab, chromedp.ByQuery, chromedp.NodeVisible),
			chromedp.Sleep(renderDelay),
		)
		cancelClick()
		if err != nil {
			log.Printf("[browser] stats tab not clickable on %s (continuing): %v", playerURL, err)
		}
	}

	// Best-effort season selection.
	if season != "" {
		if err := c.selectSeason(browserCtx, profile, season); err != nil {
			log.Printf("[browser] season %q not selectable on %s (continuing): %v", season, playerURL, err)
		}
	}

	var html string
	if err := chromedp.Run(browserCtx,
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("capture html for %s: %w", playerURL, err)
	}
	if html == "" {
		return "", fmt.Errorf("empty html for %s", playerURL)
	}
	return html, nil
}

// selectSeason finds a season <select> and picks the option whose text
// contains the season string, firing a change event so the page re-renders.
func (c *Client) selectSeason(ctx context.Context, profile platform.Profile, season string) error {
	selector := profile.SeasonSelect
	if selector == "" {
		selector = "select[id*='season'], select[name*='season'], select[aria-label*='Season']"
	}

	js := fmt.Sprintf(`(() => {
		const controls = document.querySelectorAll(%q);
		for (const control of controls) {
			for (const option of control.options) {
				if (option.text.includes(%q)) {
					control.value = option.value;
					control.dispatchEvent(new Event('change', { bubbles: true }));
					return true;
				}
			}
		}
		return false;
	})()`, selector, season)

	selectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var selected bool
	if err := chromedp.Run(selectCtx,
		chromedp.Evaluate(js, &selected),
	); err != nil {
		return err
	}
	if !selected {
		return fmt.Errorf("no season option matching %q", season)
	}

	return chromedp.Run(selectCtx, chromedp.Sleep(renderDelay))
}
