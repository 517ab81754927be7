package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fortuna/atalanta/internal/scrape"
)

func newFastClient() *Client {
	c := New()
	c.interval = time.Millisecond
	return c
}

func TestGetSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != UserAgent {
			t.Errorf("unexpected User-Agent: %q", ua)
		}
		w.Write([]byte("<html>roster</html>"))
	}))
	defer server.Close()

	body, err := newFastClient().Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if body != "<html>roster</html>" {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestGetRetriesThenSucceeds(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	body, err := newFastClient().Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get failed after retries: %v", err)
	}
	if body != "ok" {
		t.Errorf("unexpected body: %q", body)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestGetExhaustsRetries(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newFastClient().Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}

	var fe *scrape.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *scrape.FetchError, got %T: %v", err, err)
	}
	if fe.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", fe.Status)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", got)
	}
	if !scrape.Retryable(err) {
		t.Error("fetch errors should classify as retryable")
	}
}
