// Package fetch wraps plain HTTP page retrieval with the headers, timeout,
// and bounded retry discipline every scraping path shares.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/fortuna/atalanta/internal/scrape"
)

const (
	// UserAgent mirrors a desktop browser; several athletics platforms
	// reject obvious bot agents.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// Timeout bounds a single request.
	Timeout = 30 * time.Second

	// maxAttempts bounds retries per call; the final failure is surfaced.
	maxAttempts = 3

	retryInterval = 2 * time.Second
)

// Client fetches pages with retry. Safe for concurrent use.
type Client struct {
	http     *http.Client
	attempts uint64
	interval time.Duration
}

// New creates a client with the default timeout and retry budget.
func New() *Client {
	return &Client{
		http:     &http.Client{Timeout: Timeout},
		attempts: maxAttempts,
		interval: retryInterval,
	}
}

// Get fetches a URL and returns the response body. Network failures and
// non-2xx statuses come back as *scrape.FetchError after retries exhaust.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	var body string

	op := func() error {
		html, err := c.getOnce(ctx, url)
		if err != nil {
			return err
		}
		body = html
		return nil
	}

	bo := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.interval), c.attempts-1),
		ctx,
	)
	if err := backoff.Retry(op, bo); err != nil {
		return "", err
	}
	return body, nil
}

func (c *Client) getOnce(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &scrape.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", &scrape.FetchError{URL: url, Status: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &scrape.FetchError{URL: url, Err: err}
	}
	return string(data), nil
}
