package rest

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/fortuna/atalanta/internal/scrape"
)

// SyncRunner is the orchestrator surface the control plane needs.
type SyncRunner interface {
	Running() bool
	LastSummary() *scrape.CycleSummary
	RunFromRegistry(ctx context.Context) (scrape.CycleSummary, error)
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	runner SyncRunner
	errlog *scrape.ErrorLog
}

// NewHandler creates a new handler
func NewHandler(runner SyncRunner, errlog *scrape.ErrorLog) *Handler {
	return &Handler{runner: runner, errlog: errlog}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "atalanta",
		"version": "1.0.0",
	})
}

// TriggerSync starts a sync cycle in the background. At most one cycle runs
// at a time; a second trigger while one is in flight gets a 409.
func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	if h.runner.Running() {
		respondError(w, http.StatusConflict, "A sync cycle is already running", nil)
		return
	}

	go func() {
		if _, err := h.runner.RunFromRegistry(context.Background()); err != nil {
			log.Printf("⚠️  Triggered sync cycle failed: %v", err)
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": "Sync cycle started",
	})
}

// SyncStatus reports whether a cycle is running and the last summary
func (h *Handler) SyncStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"running":      h.runner.Running(),
		"last_summary": h.runner.LastSummary(),
	})
}

// RecentErrors returns the rolling window of scrape failures
func (h *Handler) RecentErrors(w http.ResponseWriter, r *http.Request) {
	entries := h.errlog.Recent()
	if entries == nil {
		entries = []scrape.ErrorEntry{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"errors": entries,
		"count":  len(entries),
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
