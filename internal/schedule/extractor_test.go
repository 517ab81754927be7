package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/fortuna/atalanta/internal/scrape"
)

const sidearmSchedule = `<!DOCTYPE html>
<html><body>
<div class="footer">sidearm sports</div>
<div class="sidearm-schedule-game">
  <div class="sidearm-schedule-game-opponent-date"><span>Feb 14, 2026</span></div>
  <div class="sidearm-schedule-game-opponent-name">Georgia State</div>
  <a href="/boxscore/1234" aria-label="Box Score">Box Score</a>
</div>
<div class="sidearm-schedule-game">
  <div class="sidearm-schedule-game-opponent-date"><span>Feb 17, 2026</span></div>
  <div class="sidearm-schedule-game-opponent-name">vs Lipscomb</div>
</div>
</body></html>`

const genericSchedule = `<!DOCTYPE html>
<html><body>
<table>
  <tr><th>Date</th><th>Opponent</th><th>Links</th></tr>
  <tr><td>2/14/2026</td><td>@ Georgia State</td><td><a href="/stats/20260214">Stats</a></td></tr>
  <tr><td>2/17/2026</td><td>Lipscomb</td><td></td></tr>
  <tr><td>TBA</td><td></td><td></td></tr>
</table>
</body></html>`

const boxScorePage = `<!DOCTYPE html>
<html><body>
<table>
  <tr><th>Player</th><th>AB</th><th>R</th><th>H</th><th>RBI</th></tr>
  <tr><td>Davis, Charlie</td><td>4</td><td>1</td><td>2</td><td>1</td></tr>
  <tr><td>Ortiz, Sam</td><td>3</td><td>0</td><td>1</td><td>0</td></tr>
</table>
<table>
  <tr><th>Inning</th><th>1</th><th>2</th></tr>
  <tr><td>BEL</td><td>0</td><td>2</td></tr>
</table>
</body></html>`

type staticFetcher struct {
	html string
}

func (f *staticFetcher) Get(ctx context.Context, url string) (string, error) {
	return f.html, nil
}

func TestExtractSidearmSchedule(t *testing.T) {
	e := New(&staticFetcher{html: sidearmSchedule})

	entries, err := e.Extract(context.Background(), "https://belmontbruins.com/sports/baseball/schedule")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	if entries[0].Date != "Feb 14, 2026" {
		t.Errorf("date = %q", entries[0].Date)
	}
	if entries[0].BoxScoreURL != "https://belmontbruins.com/boxscore/1234" {
		t.Errorf("box score URL = %q", entries[0].BoxScoreURL)
	}
	if entries[1].BoxScoreURL != "" {
		t.Errorf("expected no box score link, got %q", entries[1].BoxScoreURL)
	}
	if entries[1].Opponent != "Lipscomb" {
		t.Errorf("opponent = %q, expected venue marker stripped", entries[1].Opponent)
	}
}

func TestExtractGenericTableFallback(t *testing.T) {
	e := New(&staticFetcher{html: genericSchedule})

	entries, err := e.Extract(context.Background(), "https://unknownschool.edu/schedule")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (TBA row dropped), got %d", len(entries))
	}

	if entries[0].Opponent != "Georgia State" {
		t.Errorf("opponent = %q", entries[0].Opponent)
	}
	if entries[0].BoxScoreURL != "https://unknownschool.edu/stats/20260214" {
		t.Errorf("box score URL = %q", entries[0].BoxScoreURL)
	}
}

func TestFilterWindow(t *testing.T) {
	entries := []scrape.ScheduleEntry{
		{Date: "2/14/2026"},
		{Date: "2/17/2026"},
		{Date: "3/1/2026"},
		{Date: "TBA"},
	}

	from := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)

	kept := FilterWindow(entries, from, to)
	if len(kept) != 3 {
		t.Fatalf("expected 3 entries (two in window plus unparsable), got %d", len(kept))
	}
	for _, entry := range kept {
		if entry.Date == "3/1/2026" {
			t.Error("entry outside window should have been dropped")
		}
	}
}

func TestBoxScore(t *testing.T) {
	e := New(&staticFetcher{html: boxScorePage})

	records, err := e.BoxScore(context.Background(), "https://belmontbruins.com/boxscore/1234")
	if err != nil {
		t.Fatalf("BoxScore failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 player rows, got %d", len(records))
	}

	rec := records[0]
	if rec["player"] != "Davis, Charlie" {
		t.Errorf("player = %v", rec["player"])
	}
	if rec["ab"] != 4.0 || rec["h"] != 2.0 || rec["rbi"] != 1.0 {
		t.Errorf("unexpected stat values: %v", rec)
	}
}
