package scrape

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// maxLogEntries bounds the rolling error log window.
const maxLogEntries = 100

// ErrorEntry is one structured entry in the rolling error log.
type ErrorEntry struct {
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
	PlayerID  string `json:"player_id,omitempty"`
	School    string `json:"school,omitempty"`
	URL       string `json:"url,omitempty"`
}

// ErrorLog is a JSON-file-backed rolling log of scrape failures. Appends from
// concurrently failing tasks are serialized by a mutex, and the file is
// truncated to the most recent maxLogEntries entries on every write.
type ErrorLog struct {
	mu   sync.Mutex
	path string
}

// NewErrorLog creates an error log backed by the given file path.
func NewErrorLog(path string) *ErrorLog {
	return &ErrorLog{path: path}
}

// Record appends an entry, stamping it with the current UTC time.
func (l *ErrorLog) Record(entry ErrorEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry.Timestamp = time.Now().UTC().Format(time.RFC3339)

	entries := l.read()
	entries = append(entries, entry)
	if len(entries) > maxLogEntries {
		entries = entries[len(entries)-maxLogEntries:]
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0644)
}

// Recent returns the current window of logged errors, oldest first.
func (l *ErrorLog) Recent() []ErrorEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.read()
}

func (l *ErrorLog) read() []ErrorEntry {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil
	}
	var entries []ErrorEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}
