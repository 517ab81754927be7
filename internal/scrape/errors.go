package scrape

import (
	"errors"
	"fmt"
)

// ConfigError means a school or platform is not configured. It is never
// retried; only the offending query is aborted.
type ConfigError struct {
	School string
	Sport  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("school %q (%s) not found in configuration", e.School, e.Sport)
}

// FetchError wraps a network failure, timeout, or non-2xx response. Fetches
// are retried a bounded number of times before this surfaces.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NotFoundError means the player (or an expected table) was absent after all
// selector strategies ran. Scanned reports how many roster candidates were
// examined, which distinguishes wrong selectors from a missing player.
type NotFoundError struct {
	Name    string
	Number  string
	School  string
	Scanned int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("player %q #%s not found on %s roster (%d candidates scanned)",
		e.Name, e.Number, e.School, e.Scanned)
}

// ExtractionError means the page structure did not match any parsing
// strategy, including the generic fallback.
type ExtractionError struct {
	URL    string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %s", e.URL, e.Reason)
}

// Retryable reports whether an error is worth retrying. Only transport-level
// failures qualify; configuration and not-found errors are permanent.
func Retryable(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
