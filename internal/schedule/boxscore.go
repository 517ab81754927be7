package schedule

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/atalanta/internal/gamelog"
	"github.com/fortuna/atalanta/internal/normalize"
	"github.com/fortuna/atalanta/internal/platform"
	"github.com/fortuna/atalanta/internal/scrape"
)

// statHeaders mark a table as a per-player box score.
var statHeaders = []string{"player", "name", "ab", "r", "h", "rbi"}

// BoxScore fetches a box score page and extracts one record per player row,
// keyed by header-derived stat names, same contract as the game-log parser.
func (e *Extractor) BoxScore(ctx context.Context, boxURL string) ([]scrape.GameRecord, error) {
	html, err := e.fetcher.Get(ctx, boxURL)
	if err != nil {
		return nil, err
	}

	platformID := platform.Detect(boxURL, html)
	records, err := parseBoxScore(html, platformID)
	if err != nil {
		return nil, &scrape.ExtractionError{URL: boxURL, Reason: err.Error()}
	}
	return records, nil
}

func parseBoxScore(html, platformID string) ([]scrape.GameRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var tables *goquery.Selection
	switch platformID {
	case "sidearm":
		tables = doc.Find("table.sidearm-table, table.box-score-table")
	case "presto":
		tables = doc.Find("table.stats-table, table.linescore")
	default:
		tables = doc.Find("table")
	}
	if tables.Length() == 0 {
		tables = doc.Find("table")
	}

	var records []scrape.GameRecord
	tables.Each(func(_ int, table *goquery.Selection) {
		if !isStatTable(table) {
			return
		}
		records = append(records, parsePlayerRows(table)...)
	})
	return records, nil
}

func isStatTable(table *goquery.Selection) bool {
	headerRow := table.Find("tr").First()
	found := false
	headerRow.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		header := strings.ToLower(normalize.CleanText(cell.Text()))
		for _, want := range statHeaders {
			if header == want {
				found = true
			}
		}
	})
	return found
}

func parsePlayerRows(table *goquery.Selection) []scrape.GameRecord {
	var keys []string
	table.Find("tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		keys = append(keys, gamelog.HeaderKey(cell.Text()))
	})

	var records []scrape.GameRecord
	table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}

		record := scrape.GameRecord{}
		cells.Each(func(i int, cell *goquery.Selection) {
			if i >= len(keys) || keys[i] == "" {
				return
			}
			text := normalize.CleanText(cell.Text())
			switch keys[i] {
			case "player", "number", "position", "pos":
				record[keys[i]] = text
			default:
				record[keys[i]] = normalize.CleanValue(text)
			}
		})
		if len(record) > 0 {
			records = append(records, record)
		}
	})
	return records
}
