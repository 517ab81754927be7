package roster

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fortuna/atalanta/internal/scrape"
)

const sidearmRoster = `<!DOCTYPE html>
<html><body>
<div class="footer">Powered by Sidearm Sports</div>
<ul>
  <li class="sidearm-roster-player">
    <span class="sidearm-roster-player-jersey-number">7</span>
    <div class="sidearm-roster-player-name"><a href="/sports/baseball/roster/sam-ortiz/4711">Sam Ortiz</a></div>
  </li>
  <li class="sidearm-roster-player">
    <span class="sidearm-roster-player-jersey-number">8</span>
    <div class="sidearm-roster-player-name"><a href="/sports/baseball/roster/charlie-davis/4763">Charlie Davis</a></div>
  </li>
  <li class="sidearm-roster-player">
    <span class="sidearm-roster-player-jersey-number">12</span>
    <div class="sidearm-roster-player-name"><a href="/sports/baseball/roster/charlie-davies/4790">Charlie Davies</a></div>
  </li>
</ul>
</body></html>`

const plainRoster = `<!DOCTYPE html>
<html><body>
<table>
  <tr><td>#3</td><td><a href="/roster/ben-hall">Ben Hall</a></td></tr>
  <tr><td>#8</td><td><a href="/roster/charlie-davis">Charlie Davis</a></td></tr>
</table>
</body></html>`

type staticFetcher struct {
	html string
	err  error
}

func (f *staticFetcher) Get(ctx context.Context, url string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.html, nil
}

func testSchools(rosterURL string) *scrape.SchoolTable {
	return scrape.NewSchoolTable([]scrape.SchoolConfig{
		{
			Name:      "Belmont",
			Domain:    "belmontbruins.com",
			RosterURL: rosterURL,
			Platform:  "auto",
			Sport:     "baseball",
		},
	})
}

func TestFindPlayerMatchesNameAndNumber(t *testing.T) {
	locator := New(&staticFetcher{html: sidearmRoster}, testSchools("https://belmontbruins.com/sports/baseball/roster"))

	match, err := locator.FindPlayer(context.Background(), scrape.PlayerQuery{
		Name:   "Charlie Davis",
		Number: "8",
		School: "Belmont",
		Sport:  "baseball",
	})
	if err != nil {
		t.Fatalf("FindPlayer failed: %v", err)
	}

	expectedURL := "https://belmontbruins.com/sports/baseball/roster/charlie-davis/4763"
	if match.URL != expectedURL {
		t.Errorf("URL = %q, expected %q", match.URL, expectedURL)
	}
	if match.Platform != "sidearm" {
		t.Errorf("Platform = %q, expected sidearm", match.Platform)
	}
}

func TestFindPlayerRejectsWrongJersey(t *testing.T) {
	locator := New(&staticFetcher{html: sidearmRoster}, testSchools("https://belmontbruins.com/sports/baseball/roster"))

	_, err := locator.FindPlayer(context.Background(), scrape.PlayerQuery{
		Name:   "Charlie Davis",
		Number: "9",
		School: "Belmont",
		Sport:  "baseball",
	})

	var nf *scrape.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *scrape.NotFoundError, got %T: %v", err, err)
	}
	if nf.Scanned == 0 {
		t.Error("expected a nonzero candidate count in NotFoundError")
	}
}

func TestFindPlayerInitialMatch(t *testing.T) {
	locator := New(&staticFetcher{html: sidearmRoster}, testSchools("https://belmontbruins.com/sports/baseball/roster"))

	match, err := locator.FindPlayer(context.Background(), scrape.PlayerQuery{
		Name:   "C. Davis",
		Number: "8",
		School: "Belmont",
		Sport:  "baseball",
	})
	if err != nil {
		t.Fatalf("FindPlayer failed: %v", err)
	}
	if match.URL == "" {
		t.Error("expected a resolved URL")
	}
}

func TestFindPlayerGenericFallback(t *testing.T) {
	locator := New(&staticFetcher{html: plainRoster}, testSchools("https://belmontbruins.com/sports/baseball/roster"))

	match, err := locator.FindPlayer(context.Background(), scrape.PlayerQuery{
		Name:   "Charlie Davis",
		Number: "8",
		School: "Belmont",
		Sport:  "baseball",
	})
	if err != nil {
		t.Fatalf("FindPlayer failed: %v", err)
	}
	if match.Platform != "generic" {
		t.Errorf("Platform = %q, expected generic", match.Platform)
	}
	if match.URL != "https://belmontbruins.com/roster/charlie-davis" {
		t.Errorf("unexpected URL %q", match.URL)
	}
}

func TestFindPlayerUnknownSchool(t *testing.T) {
	locator := New(&staticFetcher{html: sidearmRoster}, testSchools("https://belmontbruins.com/roster"))

	_, err := locator.FindPlayer(context.Background(), scrape.PlayerQuery{
		Name:   "Charlie Davis",
		Number: "8",
		School: "Nowhere State",
		Sport:  "baseball",
	})

	var ce *scrape.ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *scrape.ConfigError, got %T: %v", err, err)
	}
}

func TestFindPlayerFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	locator := New(&staticFetcher{err: &scrape.FetchError{URL: server.URL, Status: 500}}, testSchools(server.URL))

	_, err := locator.FindPlayer(context.Background(), scrape.PlayerQuery{
		Name:   "Charlie Davis",
		Number: "8",
		School: "Belmont",
		Sport:  "baseball",
	})

	var fe *scrape.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *scrape.FetchError, got %T: %v", err, err)
	}
}
