// Package roster resolves a player's profile URL from their school's roster
// page. A candidate only matches when the fuzzy name match succeeds AND the
// jersey number is exactly equal; rosters are full of shared surnames.
package roster

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/fortuna/atalanta/internal/names"
	"github.com/fortuna/atalanta/internal/normalize"
	"github.com/fortuna/atalanta/internal/platform"
	"github.com/fortuna/atalanta/internal/scrape"
)

// Fetcher retrieves a page over HTTP. Satisfied by *fetch.Client.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

// Locator finds player profile URLs on roster pages.
type Locator struct {
	fetcher Fetcher
	schools *scrape.SchoolTable
}

// New creates a locator over the given school table.
func New(fetcher Fetcher, schools *scrape.SchoolTable) *Locator {
	return &Locator{fetcher: fetcher, schools: schools}
}

var jerseyRe = regexp.MustCompile(`#?(\d+)`)

// FindPlayer resolves a query to a profile URL and platform id. It returns
// *scrape.ConfigError for unknown schools, *scrape.FetchError when the roster
// page cannot be fetched, and *scrape.NotFoundError (with the candidate count)
// when no card matches both name and number.
func (l *Locator) FindPlayer(ctx context.Context, q scrape.PlayerQuery) (scrape.PlayerMatch, error) {
	cfg, ok := l.schools.Lookup(q.School, q.Sport)
	if !ok {
		return scrape.PlayerMatch{}, &scrape.ConfigError{School: q.School, Sport: q.Sport}
	}

	html, err := l.fetcher.Get(ctx, cfg.RosterURL)
	if err != nil {
		return scrape.PlayerMatch{}, err
	}

	platformID := cfg.Platform
	if platformID == "" || platformID == "auto" {
		platformID = platform.Detect(cfg.RosterURL, html)
	}
	profile := platform.Lookup(platformID)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return scrape.PlayerMatch{}, &scrape.ExtractionError{URL: cfg.RosterURL, Reason: "unparsable roster html"}
	}

	wantNumber := strings.TrimSpace(q.Number)

	var match *string
	scanned := 0
	if profile.ID != "generic" {
		match, scanned = l.scanCards(doc.Find(profile.RosterCard), profile, q, wantNumber)
	}
	if match == nil {
		// Profile selectors missed (or no profile applies); scan plain
		// roster-shaped links instead.
		generic := platform.Lookup("generic")
		var genericScanned int
		match, genericScanned = l.scanLinks(doc, generic, q, wantNumber)
		scanned += genericScanned
	}

	if match == nil {
		return scrape.PlayerMatch{}, &scrape.NotFoundError{
			Name:    q.Name,
			Number:  q.Number,
			School:  q.School,
			Scanned: scanned,
		}
	}

	resolved, err := resolveURL(cfg, *match)
	if err != nil {
		return scrape.PlayerMatch{}, &scrape.ExtractionError{URL: cfg.RosterURL, Reason: "bad profile link " + *match}
	}
	return scrape.PlayerMatch{URL: resolved, Platform: platformID}, nil
}

// scanCards walks roster cards selected by the platform profile and returns
// the first profile link whose name and jersey number both match.
func (l *Locator) scanCards(cards *goquery.Selection, profile platform.Profile, q scrape.PlayerQuery, wantNumber string) (*string, int) {
	var href *string
	scanned := 0

	cards.EachWithBreak(func(_ int, card *goquery.Selection) bool {
		link := card.Find(profile.RosterLink).First()
		if link.Length() == 0 {
			return true
		}
		scanned++

		name := normalize.CleanText(card.Find(profile.RosterName).First().Text())
		if name == "" {
			name = normalize.CleanText(link.Text())
		}
		number := cardNumber(card, profile)

		if names.Match(q.Name, name) && number == wantNumber {
			if raw, ok := link.Attr("href"); ok {
				raw = strings.TrimSpace(raw)
				href = &raw
				return false
			}
		}
		return true
	})

	return href, scanned
}

// scanLinks is the selector-free fallback: every roster-shaped anchor is a
// candidate, with the jersey number pulled from its enclosing element.
func (l *Locator) scanLinks(doc *goquery.Document, generic platform.Profile, q scrape.PlayerQuery, wantNumber string) (*string, int) {
	var href *string
	scanned := 0

	doc.Find(generic.RosterLink).EachWithBreak(func(_ int, link *goquery.Selection) bool {
		name := normalize.CleanText(link.Text())
		if name == "" {
			return true
		}
		scanned++

		card := link.Closest("li, div, tr")
		number := cardNumber(card, generic)

		if names.Match(q.Name, name) && number == wantNumber {
			if raw, ok := link.Attr("href"); ok {
				raw = strings.TrimSpace(raw)
				href = &raw
				return false
			}
		}
		return true
	})

	return href, scanned
}

// cardNumber extracts a jersey number from a roster card, preferring the
// profile's number selector and falling back to a "#N" token in card text.
func cardNumber(card *goquery.Selection, profile platform.Profile) string {
	if card == nil || card.Length() == 0 {
		return ""
	}

	text := normalize.CleanText(card.Find(profile.RosterNumber).First().Text())
	if text == "" {
		if m := jerseyRe.FindStringSubmatch(card.Text()); m != nil {
			return m[1]
		}
		return ""
	}
	if m := jerseyRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return strings.TrimSpace(text)
}

// resolveURL joins relative profile paths against the school's domain.
func resolveURL(cfg scrape.SchoolConfig, href string) (string, error) {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href, nil
	}

	base := cfg.RosterURL
	if base == "" {
		base = "https://" + cfg.Domain
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(ref).String(), nil
}
