package fallback

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fortuna/atalanta/internal/scrape"
)

func TestSaveAndLoad(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	q := scrape.PlayerQuery{ID: "p1", Name: "Charlie Davis", Number: "8", School: "Belmont"}
	games := []scrape.GameRecord{{"date": "2026-02-14", "opponent": "Georgia State", "ab": 4.0}}

	path, err := store.Save(q, games)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "Charlie_Davis_Belmont.json" {
		t.Errorf("unexpected filename %q", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	for _, key := range []string{"player", "stats", "timestamp"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("snapshot missing %q key", key)
		}
	}

	loaded, err := store.Load(q)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0]["opponent"] != "Georgia State" {
		t.Errorf("unexpected loaded games: %v", loaded)
	}
}
