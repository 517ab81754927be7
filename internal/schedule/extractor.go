// Package schedule extracts team schedules and per-game box scores. Like the
// game-log path it is platform-aware with a universal table fallback, since
// schedule markup varies as widely as player pages do.
package schedule

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/atalanta/internal/normalize"
	"github.com/fortuna/atalanta/internal/platform"
	"github.com/fortuna/atalanta/internal/scrape"
)

// Fetcher retrieves a page over HTTP. Satisfied by *fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Extractor pulls schedule entries and box scores from team pages.
type Extractor struct {
	fetcher Fetcher
}

// New creates a schedule extractor.
func New(fetcher Fetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// Extract fetches a schedule page and returns its entries. The platform is
// detected from the URL and page content.
func (e *Extractor) Extract(ctx context.Context, scheduleURL string) ([]scrape.ScheduleEntry, error) {
	html, err := e.fetcher.Get(ctx, scheduleURL)
	if err != nil {
		return nil, err
	}

	platformID := platform.Detect(scheduleURL, html)
	entries, err := parseSchedule(html, platformID, baseOf(scheduleURL))
	if err != nil {
		return nil, &scrape.ExtractionError{URL: scheduleURL, Reason: err.Error()}
	}
	return entries, nil
}

func parseSchedule(html, platformID, baseURL string) ([]scrape.ScheduleEntry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var entries []scrape.ScheduleEntry
	switch platformID {
	case "sidearm":
		entries = parseSidearmSchedule(doc, baseURL)
	case "presto":
		entries = parsePrestoSchedule(doc, baseURL)
	}

	if len(entries) == 0 {
		entries = parseScheduleTables(doc, baseURL)
	}
	return entries, nil
}

func parseSidearmSchedule(doc *goquery.Document, baseURL string) []scrape.ScheduleEntry {
	var entries []scrape.ScheduleEntry
	doc.Find(".sidearm-schedule-game").Each(func(_ int, game *goquery.Selection) {
		date := normalize.CleanText(game.Find(".sidearm-schedule-game-opponent-date span").First().Text())
		if date == "" {
			date = normalize.CleanText(game.Find(".sidearm-schedule-game-opponent-date").First().Text())
		}
		if date == "" {
			return
		}

		entries = append(entries, scrape.ScheduleEntry{
			Date:        date,
			Opponent:    normalize.CleanOpponent(game.Find(".sidearm-schedule-game-opponent-name").First().Text()),
			BoxScoreURL: boxScoreLink(game, baseURL),
		})
	})
	return entries
}

func parsePrestoSchedule(doc *goquery.Document, baseURL string) []scrape.ScheduleEntry {
	var entries []scrape.ScheduleEntry
	doc.Find("tr.event-row, .schedule-game").Each(func(_ int, row *goquery.Selection) {
		date := normalize.CleanText(row.Find(".date, .event-date").First().Text())
		if date == "" {
			return
		}

		entries = append(entries, scrape.ScheduleEntry{
			Date:        date,
			Opponent:    normalize.CleanOpponent(row.Find(".opponent, .event-opponent").First().Text()),
			BoxScoreURL: boxScoreLink(row, baseURL),
		})
	})
	return entries
}

// parseScheduleTables is the universal fallback: any table with a date-named
// header column, taking each row's box-score-shaped link alongside it.
func parseScheduleTables(doc *goquery.Document, baseURL string) []scrape.ScheduleEntry {
	var entries []scrape.ScheduleEntry

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		dateIdx, oppIdx := -1, -1
		table.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
			header := strings.ToLower(normalize.CleanText(cell.Text()))
			if dateIdx == -1 && strings.Contains(header, "date") {
				dateIdx = i
			}
			if oppIdx == -1 && strings.Contains(header, "opponent") {
				oppIdx = i
			}
		})
		if dateIdx == -1 {
			return true
		}

		table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td, th")
			if dateIdx >= cells.Length() {
				return
			}
			date := normalize.CleanText(cells.Eq(dateIdx).Text())
			if len(date) <= 3 {
				return
			}

			entry := scrape.ScheduleEntry{
				Date:        date,
				BoxScoreURL: boxScoreLink(row, baseURL),
			}
			if oppIdx >= 0 && oppIdx < cells.Length() {
				entry.Opponent = normalize.CleanOpponent(cells.Eq(oppIdx).Text())
			}
			entries = append(entries, entry)
		})
		return len(entries) == 0
	})

	return entries
}

// boxScoreLink finds a link in the element whose text or href implies a box
// score or stats page, resolved to an absolute URL.
func boxScoreLink(sel *goquery.Selection, baseURL string) string {
	var href string
	sel.Find("a").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		raw, ok := link.Attr("href")
		if !ok || raw == "" {
			return true
		}

		text := strings.ToLower(link.Text())
		label, _ := link.Attr("aria-label")
		text += " " + strings.ToLower(label)
		lowerHref := strings.ToLower(raw)

		if strings.Contains(text, "box") || strings.Contains(text, "stats") ||
			strings.Contains(lowerHref, "box") || strings.Contains(lowerHref, "stats") {
			href = raw
			return false
		}
		return true
	})

	if href == "" {
		return ""
	}
	return resolveAgainst(baseURL, href)
}

// FilterWindow keeps entries whose date falls inside [from, to]. Entries with
// unparsable dates are kept; dropping them would silently hide games on sites
// with unusual date markup.
func FilterWindow(entries []scrape.ScheduleEntry, from, to time.Time) []scrape.ScheduleEntry {
	var kept []scrape.ScheduleEntry
	for _, entry := range entries {
		iso := normalize.Date(entry.Date)
		t, err := time.Parse("2006-01-02", iso)
		if err != nil {
			kept = append(kept, entry)
			continue
		}
		if !t.Before(from) && !t.After(to) {
			kept = append(kept, entry)
		}
	}
	return kept
}

func baseOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Scheme + "://" + u.Host
}

func resolveAgainst(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
