package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/fortuna/atalanta/internal/fallback"
	"github.com/fortuna/atalanta/internal/schedule"
	"github.com/fortuna/atalanta/internal/scrape"
)

// scheduleWindow bounds how far ahead pushed schedules reach.
const scheduleWindow = 90 * 24 * time.Hour

// Registry is the external player registry: the source of players to scrape
// and the destination for results.
type Registry interface {
	FetchPlayers(ctx context.Context) ([]scrape.PlayerQuery, error)
	PushPlayerStats(ctx context.Context, q scrape.PlayerQuery, games []scrape.GameRecord) error
	PushSchedule(ctx context.Context, school string, entries []scrape.ScheduleEntry) error
}

// PlayerFinder resolves a player query to a roster page URL.
type PlayerFinder interface {
	FindPlayer(ctx context.Context, q scrape.PlayerQuery) (scrape.PlayerMatch, error)
}

// GameLogExtractor pulls game-by-game stats from a player page.
type GameLogExtractor interface {
	Extract(ctx context.Context, playerURL, platformID, season string) ([]scrape.GameRecord, error)
}

// ScheduleExtractor pulls upcoming games from a team schedule page.
type ScheduleExtractor interface {
	Extract(ctx context.Context, scheduleURL string) ([]scrape.ScheduleEntry, error)
}

// ResultPublisher fans results out to Redis streams. Optional.
type ResultPublisher interface {
	PublishResult(ctx context.Context, result any) error
	PublishCycleSummary(ctx context.Context, summary any) error
}

// CycleRecorder persists finished cycle summaries. Optional.
type CycleRecorder interface {
	Record(ctx context.Context, summary scrape.CycleSummary) error
}

// Config holds orchestrator configuration
type Config struct {
	Concurrency int    // Default: 5
	Season      string // e.g. "2026"
}

// DefaultConfig returns default orchestrator configuration
func DefaultConfig() *Config {
	return &Config{
		Concurrency: 5,
		Season:      "2026",
	}
}

// Orchestrator runs sync cycles: it fans a batch of player queries out to a
// bounded pool of workers, pushes each result to the registry, and falls back
// to local persistence when a push fails.
type Orchestrator struct {
	registry  Registry
	finder    PlayerFinder
	gamelogs  GameLogExtractor
	schedules ScheduleExtractor
	schools   *scrape.SchoolTable
	fallback  *fallback.Store
	errlog    *scrape.ErrorLog
	publisher ResultPublisher                  // optional
	recorder  CycleRecorder                    // optional
	broadcast func(result scrape.ScrapeResult) // optional
	config    *Config

	mu      sync.Mutex
	running bool
	last    *scrape.CycleSummary
}

// NewOrchestrator wires the orchestrator. publisher may be nil.
func NewOrchestrator(registry Registry, finder PlayerFinder, gamelogs GameLogExtractor,
	schedules ScheduleExtractor, schools *scrape.SchoolTable, fb *fallback.Store,
	errlog *scrape.ErrorLog, publisher ResultPublisher, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConfig().Concurrency
	}
	return &Orchestrator{
		registry:  registry,
		finder:    finder,
		gamelogs:  gamelogs,
		schedules: schedules,
		schools:   schools,
		fallback:  fb,
		errlog:    errlog,
		publisher: publisher,
		config:    config,
	}
}

// SetBroadcast registers a callback invoked with every finished result,
// used to feed the websocket hub.
func (o *Orchestrator) SetBroadcast(fn func(result scrape.ScrapeResult)) {
	o.broadcast = fn
}

// SetRecorder registers persistence for finished cycle summaries.
func (o *Orchestrator) SetRecorder(recorder CycleRecorder) {
	o.recorder = recorder
}

// Running reports whether a cycle is currently in flight.
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// LastSummary returns the most recently completed cycle summary, or nil if
// no cycle has finished yet.
func (o *Orchestrator) LastSummary() *scrape.CycleSummary {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.last == nil {
		return nil
	}
	cp := *o.last
	return &cp
}

// RunFromRegistry fetches the player batch from the registry and runs a
// full cycle over it.
func (o *Orchestrator) RunFromRegistry(ctx context.Context) (scrape.CycleSummary, error) {
	players, err := o.registry.FetchPlayers(ctx)
	if err != nil {
		return scrape.CycleSummary{}, err
	}
	return o.RunCycle(ctx, players), nil
}

// RunCycle processes one batch of player queries. Schedules are pushed first
// (once per distinct school), then players are scraped with at most
// Concurrency in flight. Every query produces exactly one result, success
// or error.
func (o *Orchestrator) RunCycle(ctx context.Context, players []scrape.PlayerQuery) scrape.CycleSummary {
	o.mu.Lock()
	o.running = true
	o.mu.Unlock()
	defer func() {
		o.mu.Lock()
		o.running = false
		o.mu.Unlock()
	}()

	started := time.Now().UTC()
	log.Printf("═══ Sync cycle starting: %d players, concurrency %d ═══", len(players), o.config.Concurrency)

	o.pushSchedules(ctx, players)

	results := make([]scrape.ScrapeResult, len(players))
	sem := make(chan struct{}, o.config.Concurrency)
	var wg sync.WaitGroup
	for i, q := range players {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, q scrape.PlayerQuery) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				// A panicking task only loses its own slot.
				if rec := recover(); rec != nil {
					results[i] = o.fail(q, "", fmt.Errorf("panic during scrape: %v", rec))
				}
			}()
			results[i] = o.scrapePlayer(ctx, q)
		}(i, q)
	}
	wg.Wait()

	summary := scrape.CycleSummary{
		Total:      len(players),
		StartedAt:  started.Format(time.RFC3339),
		FinishedAt: time.Now().UTC().Format(time.RFC3339),
	}
	for _, r := range results {
		if r.Success {
			summary.SuccessCount++
		} else {
			summary.ErrorCount++
		}
	}

	o.mu.Lock()
	o.last = &summary
	o.mu.Unlock()

	if o.publisher != nil {
		if err := o.publisher.PublishCycleSummary(ctx, summary); err != nil {
			log.Printf("  ⚠️  Failed to publish cycle summary: %v", err)
		}
	}
	if o.recorder != nil {
		if err := o.recorder.Record(ctx, summary); err != nil {
			log.Printf("  ⚠️  Failed to record cycle summary: %v", err)
		}
	}

	log.Printf("═══ Sync cycle complete: %d succeeded, %d failed ═══", summary.SuccessCount, summary.ErrorCount)
	return summary
}

// pushSchedules extracts and pushes the schedule once per distinct school in
// the batch. Schedule failures never fail the cycle.
func (o *Orchestrator) pushSchedules(ctx context.Context, players []scrape.PlayerQuery) {
	seen := make(map[string]bool)
	for _, q := range players {
		cfg, ok := o.schools.Lookup(q.School, q.Sport)
		if !ok || cfg.ScheduleURL == "" || seen[cfg.Name+"|"+cfg.Sport] {
			continue
		}
		seen[cfg.Name+"|"+cfg.Sport] = true

		entries, err := o.schedules.Extract(ctx, cfg.ScheduleURL)
		if err != nil {
			log.Printf("  ⚠️  Schedule extraction failed for %s: %v", cfg.Name, err)
			o.logError(scrape.ErrorEntry{Message: err.Error(), School: cfg.Name, URL: cfg.ScheduleURL})
			continue
		}

		now := time.Now()
		entries = schedule.FilterWindow(entries, now.AddDate(0, 0, -1), now.Add(scheduleWindow))
		if err := o.registry.PushSchedule(ctx, cfg.Name, entries); err != nil {
			log.Printf("  ⚠️  Schedule push failed for %s: %v", cfg.Name, err)
			o.logError(scrape.ErrorEntry{Message: err.Error(), School: cfg.Name})
			continue
		}
		log.Printf("  ✓ Pushed %d schedule entries for %s", len(entries), cfg.Name)
	}
}

// scrapePlayer runs the full pipeline for one player: locate on the roster,
// extract the game log, push upstream. Push failures persist the stats
// locally so the scrape work is not lost.
func (o *Orchestrator) scrapePlayer(ctx context.Context, q scrape.PlayerQuery) scrape.ScrapeResult {
	match, err := o.finder.FindPlayer(ctx, q)
	if err != nil {
		return o.fail(q, "", err)
	}

	games, err := o.gamelogs.Extract(ctx, match.URL, match.Platform, q.Season)
	if err != nil {
		return o.fail(q, match.URL, err)
	}

	if err := o.registry.PushPlayerStats(ctx, q, games); err != nil {
		log.Printf("  ⚠️  Push failed for %s, saving fallback: %v", q.Name, err)
		if o.fallback != nil {
			if path, saveErr := o.fallback.Save(q, games); saveErr != nil {
				log.Printf("  ⚠️  Fallback save failed for %s: %v", q.Name, saveErr)
			} else {
				log.Printf("  ✓ Saved fallback %s", path)
			}
		}
		return o.fail(q, match.URL, err)
	}

	log.Printf("  ✓ %s (%s): %d games", q.Name, q.School, len(games))
	result := scrape.ScrapeResult{Query: q, Games: games, Success: true}
	o.emit(ctx, result)
	return result
}

func (o *Orchestrator) fail(q scrape.PlayerQuery, url string, err error) scrape.ScrapeResult {
	log.Printf("  ❌ %s (%s): %v", q.Name, q.School, err)
	o.logError(scrape.ErrorEntry{Message: err.Error(), PlayerID: q.ID, School: q.School, URL: url})
	result := scrape.ScrapeResult{Query: q, Success: false, Error: err.Error()}
	o.emit(context.Background(), result)
	return result
}

func (o *Orchestrator) emit(ctx context.Context, result scrape.ScrapeResult) {
	if o.publisher != nil {
		if err := o.publisher.PublishResult(ctx, result); err != nil {
			log.Printf("  ⚠️  Failed to publish result for %s: %v", result.Query.Name, err)
		}
	}
	if o.broadcast != nil {
		o.broadcast(result)
	}
}

func (o *Orchestrator) logError(entry scrape.ErrorEntry) {
	if o.errlog == nil {
		return
	}
	if err := o.errlog.Record(entry); err != nil {
		log.Printf("  ⚠️  Failed to record error log entry: %v", err)
	}
}
