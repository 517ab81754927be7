package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fortuna/atalanta/internal/scrape"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, runner SyncRunner, errlog *scrape.ErrorLog) *Server {
	handler := NewHandler(runner, errlog)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/sync", handler.TriggerSync).Methods("POST")
	api.HandleFunc("/sync/status", handler.SyncStatus).Methods("GET")
	api.HandleFunc("/errors", handler.RecentErrors).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
