package cache

import (
	"context"
	"log"
	"time"
)

// Fetcher retrieves page HTML. Satisfied by *fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// CachedFetcher layers the Redis page cache in front of another fetcher.
// Roster and schedule pages are refetched for every player in a batch, so a
// short TTL removes most duplicate requests within a cycle.
type CachedFetcher struct {
	cache *RedisCache
	next  Fetcher
	ttl   time.Duration
}

// NewCachedFetcher wraps next with the page cache. A zero ttl uses
// DefaultPageTTL.
func NewCachedFetcher(rc *RedisCache, next Fetcher, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &CachedFetcher{cache: rc, next: next, ttl: ttl}
}

// Get returns the cached page when present, otherwise fetches and caches it.
// Cache failures degrade to a plain fetch.
func (f *CachedFetcher) Get(ctx context.Context, url string) (string, error) {
	if html, err := f.cache.GetPage(ctx, url); err != nil {
		log.Printf("⚠️  Page cache read failed for %s: %v", url, err)
	} else if html != "" {
		return html, nil
	}

	html, err := f.next.Get(ctx, url)
	if err != nil {
		return "", err
	}

	if err := f.cache.SetPage(ctx, url, html, f.ttl); err != nil {
		log.Printf("⚠️  Page cache write failed for %s: %v", url, err)
	}
	return html, nil
}
