// Package registry talks to the external player registry: it supplies the
// players to scrape and receives pushed stats and schedules.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/fortuna/atalanta/internal/scrape"
)

const requestTimeout = 30 * time.Second

// Client is the HTTP client for the registry API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a registry client. The base URL is overridable, which keeps
// tests off the network.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// FetchPlayers retrieves the batch of players to scrape this cycle.
func (c *Client) FetchPlayers(ctx context.Context) ([]scrape.PlayerQuery, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/getPlayersToScrape", nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching players: status %d", resp.StatusCode)
	}

	var players []scrape.PlayerQuery
	if err := json.NewDecoder(resp.Body).Decode(&players); err != nil {
		return nil, fmt.Errorf("decoding players: %w", err)
	}

	log.Printf("[registry] Fetched %d players to scrape", len(players))
	return players, nil
}

// PushPlayerStats delivers one player's scraped games.
func (c *Client) PushPlayerStats(ctx context.Context, q scrape.PlayerQuery, games []scrape.GameRecord) error {
	payload := map[string]any{
		"playerId":     q.ID,
		"name":         q.Name,
		"number":       q.Number,
		"school":       q.School,
		"season":       q.Season,
		"sport":        q.Sport,
		"games":        games,
		"last_updated": time.Now().UTC().Format(time.RFC3339),
	}
	return c.post(ctx, "/api/receivePlayerStats", payload)
}

// PushSchedule delivers one school's upcoming games.
func (c *Client) PushSchedule(ctx context.Context, school string, entries []scrape.ScheduleEntry) error {
	payload := map[string]any{
		"school":        school,
		"upcomingGames": entries,
		"last_updated":  time.Now().UTC().Format(time.RFC3339),
	}
	return c.post(ctx, "/api/receiveTeamSchedule", payload)
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("posting %s: status %d (%s)", path, resp.StatusCode, string(detail))
	}
	return nil
}
