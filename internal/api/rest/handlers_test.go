package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fortuna/atalanta/internal/scrape"
)

type fakeRunner struct {
	mu      sync.Mutex
	running bool
	last    *scrape.CycleSummary
	runs    int
}

func (f *fakeRunner) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

func (f *fakeRunner) LastSummary() *scrape.CycleSummary {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func (f *fakeRunner) RunFromRegistry(ctx context.Context) (scrape.CycleSummary, error) {
	f.mu.Lock()
	f.runs++
	f.mu.Unlock()
	return scrape.CycleSummary{Total: 1, SuccessCount: 1}, nil
}

func testServer(t *testing.T, runner *fakeRunner) http.Handler {
	t.Helper()
	errlog := scrape.NewErrorLog(filepath.Join(t.TempDir(), "errors.json"))
	return NewServer("0", runner, errlog).server.Handler
}

func TestHealthCheck(t *testing.T) {
	rr := httptest.NewRecorder()
	testServer(t, &fakeRunner{}).ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %q, want healthy", body["status"])
	}
}

func TestTriggerSyncStartsCycle(t *testing.T) {
	runner := &fakeRunner{}
	rr := httptest.NewRecorder()
	testServer(t, runner).ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/sync", nil))

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rr.Code)
	}

	// The cycle runs in a goroutine; wait briefly for it to be recorded.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		runner.mu.Lock()
		runs := runner.runs
		runner.mu.Unlock()
		if runs == 1 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Error("sync cycle never started")
}

func TestTriggerSyncConflictsWhileRunning(t *testing.T) {
	runner := &fakeRunner{running: true}
	rr := httptest.NewRecorder()
	testServer(t, runner).ServeHTTP(rr, httptest.NewRequest("POST", "/api/v1/sync", nil))

	if rr.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rr.Code)
	}
	if runner.runs != 0 {
		t.Errorf("cycle started despite one already running")
	}
}

func TestSyncStatus(t *testing.T) {
	runner := &fakeRunner{last: &scrape.CycleSummary{Total: 12, SuccessCount: 10, ErrorCount: 2}}
	rr := httptest.NewRecorder()
	testServer(t, runner).ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/sync/status", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body struct {
		Running     bool                 `json:"running"`
		LastSummary *scrape.CycleSummary `json:"last_summary"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Running {
		t.Error("running = true, want false")
	}
	if body.LastSummary == nil || body.LastSummary.Total != 12 {
		t.Errorf("last_summary = %+v, want total 12", body.LastSummary)
	}
}

func TestRecentErrorsEmpty(t *testing.T) {
	rr := httptest.NewRecorder()
	testServer(t, &fakeRunner{}).ServeHTTP(rr, httptest.NewRequest("GET", "/api/v1/errors", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var body struct {
		Errors []scrape.ErrorEntry `json:"errors"`
		Count  int                 `json:"count"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Errors == nil || body.Count != 0 {
		t.Errorf("want empty array with count 0, got %+v", body)
	}
}
