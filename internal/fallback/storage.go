// Package fallback persists scrape results locally when the push to the
// registry fails, so a cycle's work survives a collaborator outage.
package fallback

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fortuna/atalanta/internal/scrape"
)

// Store writes per-player fallback files under a data directory.
type Store struct {
	dir string
}

// New creates the fallback directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating fallback directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// snapshot is the on-disk shape of one saved result.
type snapshot struct {
	Player    scrape.PlayerQuery  `json:"player"`
	Stats     []scrape.GameRecord `json:"stats"`
	Timestamp string              `json:"timestamp"`
}

// Save writes one player's games to a JSON file keyed by player identity.
// An existing file for the same player is overwritten; only the latest
// failed push matters.
func (s *Store) Save(q scrape.PlayerQuery, games []scrape.GameRecord) (string, error) {
	data, err := json.MarshalIndent(snapshot{
		Player:    q,
		Stats:     games,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding fallback snapshot: %w", err)
	}

	path := s.path(q)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing fallback snapshot: %w", err)
	}
	return path, nil
}

// Load reads back a previously saved snapshot, for replay tooling and tests.
func (s *Store) Load(q scrape.PlayerQuery) ([]scrape.GameRecord, error) {
	data, err := os.ReadFile(s.path(q))
	if err != nil {
		return nil, err
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decoding fallback snapshot: %w", err)
	}
	return snap.Stats, nil
}

func (s *Store) path(q scrape.PlayerQuery) string {
	name := strings.ReplaceAll(strings.TrimSpace(q.Name), " ", "_")
	school := strings.ReplaceAll(strings.TrimSpace(q.School), " ", "_")
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", name, school))
}
