// Package gamelog extracts a player's per-game statistics table from their
// profile page. Parsing is header-driven and platform-aware, with a generic
// table scan as the last structural fallback.
package gamelog

import (
	"context"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/atalanta/internal/normalize"
	"github.com/fortuna/atalanta/internal/platform"
	"github.com/fortuna/atalanta/internal/scrape"
)

// Renderer produces fully rendered page HTML, driving whatever navigation the
// platform needs. Satisfied by *browser.Client.
type Renderer interface {
	RenderGameLog(ctx context.Context, playerURL string, profile platform.Profile, season string) (string, error)
}

// Fetcher retrieves static HTML. Satisfied by *fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Parser extracts game logs from player pages.
type Parser struct {
	renderer Renderer
	fetcher  Fetcher
}

// New creates a parser. The renderer may be nil, in which case every page is
// fetched statically.
func New(renderer Renderer, fetcher Fetcher) *Parser {
	return &Parser{renderer: renderer, fetcher: fetcher}
}

// Extract fetches a player page and returns its game records for the season.
// The fallback chain: rendered platform-specific parse, then static fetch,
// then the generic table scan; *scrape.ExtractionError only when all fail.
func (p *Parser) Extract(ctx context.Context, playerURL, platformID, season string) ([]scrape.GameRecord, error) {
	profile := platform.Lookup(platformID)

	html, err := p.pageHTML(ctx, playerURL, profile, season)
	if err != nil {
		return nil, err
	}

	records, err := Parse(html, profile)
	if err != nil {
		return nil, &scrape.ExtractionError{URL: playerURL, Reason: err.Error()}
	}
	return records, nil
}

func (p *Parser) pageHTML(ctx context.Context, playerURL string, profile platform.Profile, season string) (string, error) {
	if p.renderer != nil {
		html, err := p.renderer.RenderGameLog(ctx, playerURL, profile, season)
		if err == nil {
			return html, nil
		}
		log.Printf("⚠️  Rendered fetch failed for %s, retrying statically: %v", playerURL, err)
	}
	return p.fetcher.Get(ctx, playerURL)
}

// Parse runs the structural fallback chain over already-fetched HTML.
func Parse(html string, profile platform.Profile) ([]scrape.GameRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	if records := parsePlatform(doc, profile); len(records) > 0 {
		return records, nil
	}
	if records := parseGeneric(doc); len(records) > 0 {
		return records, nil
	}
	return nil, errNoGameLogTable
}

type parseError string

func (e parseError) Error() string { return string(e) }

const errNoGameLogTable = parseError("no game log table matched any parsing strategy")

// parsePlatform locates the game-log table through the profile's table
// selector, then by scanning for a header row with both Date and Opponent.
func parsePlatform(doc *goquery.Document, profile platform.Profile) []scrape.GameRecord {
	if profile.GameLogTable != "" {
		var records []scrape.GameRecord
		doc.Find(profile.GameLogTable).EachWithBreak(func(_ int, table *goquery.Selection) bool {
			if !hasHeaders(table, "date") || !hasHeaders(table, "opponent") {
				return true
			}
			records = parseTable(table)
			return len(records) == 0
		})
		if len(records) > 0 {
			return records
		}
	}

	var records []scrape.GameRecord
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if !hasHeaders(table, "date") || !hasHeaders(table, "opponent") {
			return true
		}
		records = parseTable(table)
		return len(records) == 0
	})
	return records
}

// parseGeneric accepts the first table whose header row mentions a date,
// opponent, or game column at all.
func parseGeneric(doc *goquery.Document) []scrape.GameRecord {
	var records []scrape.GameRecord
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		if !hasHeaders(table, "date", "opponent", "game") {
			return true
		}
		records = parseTable(table)
		return len(records) == 0
	})
	return records
}

// hasHeaders reports whether any header cell contains one of the wanted
// tokens, case-insensitively.
func hasHeaders(table *goquery.Selection, wanted ...string) bool {
	for _, header := range tableHeaders(table) {
		lower := strings.ToLower(header)
		for _, w := range wanted {
			if strings.Contains(lower, w) {
				return true
			}
		}
	}
	return false
}

// tableHeaders reads the header row from thead, or the first row when the
// table has none.
func tableHeaders(table *goquery.Selection) []string {
	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, normalize.CleanText(th.Text()))
	})
	if len(headers) > 0 {
		return headers
	}

	table.Find("tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, normalize.CleanText(cell.Text()))
	})
	return headers
}

// parseTable turns qualifying data rows into GameRecords. A row qualifies
// only with at least three cells and a non-empty date-like cell that is not
// the season-total marker.
func parseTable(table *goquery.Selection) []scrape.GameRecord {
	headers := tableHeaders(table)
	if len(headers) == 0 {
		return nil
	}

	keys := make([]string, len(headers))
	dateIdx := 0
	for i, header := range headers {
		keys[i] = HeaderKey(header)
		if keys[i] == "date" {
			dateIdx = i
		}
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr").Slice(1, goquery.ToEnd)
	}

	var records []scrape.GameRecord
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 3 || dateIdx >= cells.Length() {
			return
		}

		dateRaw := normalize.CleanText(cells.Eq(dateIdx).Text())
		if dateRaw == "" || strings.EqualFold(dateRaw, "total") {
			return
		}

		record := parseRow(cells, keys, dateIdx)
		if record != nil {
			records = append(records, record)
		}
	})
	return records
}

func parseRow(cells *goquery.Selection, keys []string, dateIdx int) scrape.GameRecord {
	record := scrape.GameRecord{"date": "", "opponent": ""}
	var rawOpponent, rawResult string

	cells.Each(func(i int, cell *goquery.Selection) {
		if i >= len(keys) || keys[i] == "" {
			return
		}

		text := normalize.CleanText(cell.Text())

		// The date-like column carries date semantics even when its
		// header says "Game".
		if i == dateIdx && keys[i] != "date" {
			record["date"] = normalize.Date(text)
			return
		}

		switch keys[i] {
		case "date":
			record["date"] = normalize.Date(text)
		case "opponent":
			// The full cell text keeps the @ / vs venue markers; the
			// link text is the cleanest opponent name when present.
			rawOpponent = text
			display := text
			if link := cell.Find("a").First(); link.Length() > 0 {
				display = normalize.CleanText(link.Text())
			}
			record["opponent"] = normalize.CleanOpponent(display)
		case "result", "player", "number":
			record[keys[i]] = text
			if keys[i] == "result" {
				rawResult = text
			}
		default:
			record[keys[i]] = normalize.CleanValue(text)
		}
	})

	record["home_away_neutral"] = normalize.HomeAway(rawOpponent, rawResult)
	return record
}
