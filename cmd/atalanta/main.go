package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fortuna/atalanta/internal/api/rest"
	"github.com/fortuna/atalanta/internal/api/websocket"
	"github.com/fortuna/atalanta/internal/browser"
	"github.com/fortuna/atalanta/internal/cache"
	"github.com/fortuna/atalanta/internal/fallback"
	"github.com/fortuna/atalanta/internal/fetch"
	"github.com/fortuna/atalanta/internal/gamelog"
	"github.com/fortuna/atalanta/internal/publisher"
	"github.com/fortuna/atalanta/internal/registry"
	"github.com/fortuna/atalanta/internal/roster"
	"github.com/fortuna/atalanta/internal/schedule"
	"github.com/fortuna/atalanta/internal/scheduler"
	"github.com/fortuna/atalanta/internal/scrape"
	"github.com/fortuna/atalanta/internal/store"
)

const (
	serviceName    = "atalanta"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - College Athletics Stats Scraper", serviceName, serviceVersion)

	// Load configuration from environment
	config := loadConfig()

	// Load the school table, from Postgres when a DSN is configured
	schools, db := loadSchools(config)
	if db != nil {
		defer db.Close()
	}

	// Redis is optional: without it pages are fetched uncached and results
	// are not streamed
	var fetcher cache.Fetcher = fetch.New()
	var resultPublisher scheduler.ResultPublisher
	if config.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(config.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, continuing without page cache: %v", err)
		} else {
			defer redisCache.Close()
			fetcher = cache.NewCachedFetcher(redisCache, fetcher, cache.DefaultPageTTL)
			resultPublisher = publisher.NewRedisPublisherFromClient(redisCache.Client())
			log.Println("✓ Connected to Redis")
		}
	}

	// Headless browser for JS-rendered stat pages; static fetch covers the
	// rest when Chrome is missing
	var renderer gamelog.Renderer
	if chrome, err := browser.New(); err != nil {
		log.Printf("⚠️  Headless browser unavailable, using static fetches only: %v", err)
	} else {
		defer chrome.Close()
		renderer = chrome
		log.Println("✓ Headless browser ready")
	}

	reg := registry.New(config.RegistryURL, config.RegistryKey)

	fallbackStore, err := fallback.New(config.FallbackDir)
	if err != nil {
		log.Fatalf("Failed to create fallback directory: %v", err)
	}

	errlog := scrape.NewErrorLog(config.ErrorLogPath)

	orchestrator := scheduler.NewOrchestrator(
		reg,
		roster.New(fetcher, schools),
		gamelog.New(renderer, fetcher),
		schedule.New(fetcher),
		schools,
		fallbackStore,
		errlog,
		resultPublisher,
		&scheduler.Config{
			Concurrency: config.Concurrency,
			Season:      config.Season,
		},
	)
	if db != nil {
		orchestrator.SetRecorder(store.NewCycleRepository(db))
	}

	// WebSocket server streams finished results to connected clients
	wsServer := websocket.NewServer()
	orchestrator.SetBroadcast(wsServer.BroadcastResult)
	go func() {
		if err := wsServer.Start(config.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	// REST control plane
	restServer := rest.NewServer(config.RESTPort, orchestrator, errlog)
	go func() {
		log.Printf("Starting REST API server on port %s", config.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ %s v%s started successfully", serviceName, serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", config.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s", config.WSPort)

	// Run the first cycle immediately
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if _, err := orchestrator.RunFromRegistry(ctx); err != nil {
			log.Printf("⚠️  Initial sync cycle failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}

type Config struct {
	RegistryURL  string
	RegistryKey  string
	AtlasDSN     string
	RedisURL     string
	RESTPort     string
	WSPort       string
	Concurrency  int
	Season       string
	FallbackDir  string
	ErrorLogPath string
}

func loadConfig() Config {
	concurrency, err := strconv.Atoi(getEnv("CONCURRENCY", "5"))
	if err != nil || concurrency <= 0 {
		concurrency = 5
	}
	return Config{
		RegistryURL:  getEnv("REGISTRY_API_URL", "http://localhost:3000"),
		RegistryKey:  getEnv("REGISTRY_API_KEY", ""),
		AtlasDSN:     getEnv("ATLAS_DSN", ""),
		RedisURL:     getEnv("REDIS_URL", ""),
		RESTPort:     getEnv("REST_PORT", "8080"),
		WSPort:       getEnv("WS_PORT", "8081"),
		Concurrency:  concurrency,
		Season:       getEnv("SEASON", "2026"),
		FallbackDir:  getEnv("FALLBACK_DIR", "data/fallback"),
		ErrorLogPath: getEnv("ERROR_LOG_PATH", "data/errors.json"),
	}
}

// loadSchools prefers the database; without a DSN the built-in school list
// is used and the returned database is nil.
func loadSchools(config Config) (*scrape.SchoolTable, *store.Database) {
	if config.AtlasDSN == "" {
		log.Printf("No ATLAS_DSN configured, using %d built-in schools", len(store.DefaultSchools))
		return scrape.NewSchoolTable(store.DefaultSchools), nil
	}

	db, err := store.NewDatabase(config.AtlasDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Println("✓ Database migrations applied")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo := store.NewSchoolRepository(db)
	if err := repo.Seed(ctx, store.DefaultSchools); err != nil {
		log.Printf("⚠️  School seed warning: %v (continuing anyway)", err)
	}

	configs, err := repo.GetAll(ctx)
	if err != nil {
		log.Fatalf("Failed to load schools: %v", err)
	}
	log.Printf("✓ Loaded %d schools from database", len(configs))
	return scrape.NewSchoolTable(configs), db
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
