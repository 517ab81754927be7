// Package normalize cleans raw table-cell text into numeric and date values.
// Every function here returns a documented default instead of an error, so a
// single malformed cell can never abort a batch.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	numericRe    = regexp.MustCompile(`[^0-9.\-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// dateFormats are tried in order. "Jan 2" has no year and assumes the
// current one.
var dateFormats = []string{
	"Jan 2, 2006",
	"Jan 2",
	"1/2/06",
	"1/2/2006",
}

// CleanValue converts a stat cell to a number. Empty cells, dashes, and
// unparsable text all yield 0.
func CleanValue(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "-" {
		return 0
	}

	cleaned := numericRe.ReplaceAllString(raw, "")
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return 0
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// Date renders a date cell as ISO (YYYY-MM-DD) when one of the known formats
// matches, and returns the input unchanged otherwise. The caller can tell the
// fallback apart by equality with the input.
func Date(raw string) string {
	cleaned := CleanText(raw)
	if cleaned == "" {
		return raw
	}

	for _, format := range dateFormats {
		t, err := time.Parse(format, cleaned)
		if err != nil {
			continue
		}
		if format == "Jan 2" {
			t = time.Date(time.Now().Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t.Format("2006-01-02")
	}
	return raw
}

// HomeAway derives the venue from opponent and result text: "@" or "at "
// means away, "vs" means home, anything else is neutral.
func HomeAway(opponent, result string) string {
	text := strings.ToLower(opponent + " " + result)
	switch {
	case strings.Contains(text, "@") || strings.Contains(text, "at "):
		return "away"
	case strings.Contains(text, "vs"):
		return "home"
	default:
		return "neutral"
	}
}

// CleanText collapses runs of whitespace and trims the result.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// CleanOpponent strips venue markers from an opponent cell, leaving the name.
func CleanOpponent(s string) string {
	s = strings.ReplaceAll(s, "@", "")
	s = strings.ReplaceAll(s, "vs.", "")
	s = strings.ReplaceAll(s, "vs", "")
	return CleanText(s)
}
