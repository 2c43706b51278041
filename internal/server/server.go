// Package server provides the HTTP REST API for the CCT importer.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/mariana/cct-importer/internal/db"
	"github.com/mariana/cct-importer/internal/importer"
	"github.com/mariana/cct-importer/internal/llm"
)

// RunStore is what the HTTP surface needs from persistence: the pipeline's
// row-level store plus run bookkeeping for the listing endpoints.
type RunStore interface {
	importer.Store
	CreateImportRun(ctx context.Context, arquivo string) (uuid.UUID, error)
	GetImportRun(ctx context.Context, runID uuid.UUID) (*db.ImportRun, error)
	ListImportRuns(ctx context.Context, limit int) ([]db.ImportRun, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      RunStore
	logs       importer.LogSink
	client     llm.Client
	opts       importer.Options
	database   *db.DB

	// runs tracks in-flight background imports so Shutdown can wait for them
	runs sync.WaitGroup
}

// Config holds server configuration
type Config struct {
	Addr         string
	DatabaseURL  string
	APIKey       string
	BlockSize    int
	BlockDelayMs int
}

// New creates a new server instance and connects to the database.
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var client llm.Client
	if cfg.APIKey != "" {
		client, err = llm.NewGeminiClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
	}

	opts := importer.Options{BlockSize: cfg.BlockSize}
	if cfg.BlockDelayMs > 0 {
		opts.BlockDelay = time.Duration(cfg.BlockDelayMs) * time.Millisecond
	}

	s := newServer(database, database, client, opts)
	s.database = database
	s.httpServer.Addr = cfg.Addr
	return s, nil
}

// newServer wires routes around injected dependencies. Tests use it
// directly with fakes.
func newServer(store RunStore, logs importer.LogSink, client llm.Client, opts importer.Options) *Server {
	s := &Server{
		store:  store,
		logs:   logs,
		client: client,
		opts:   opts,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /imports", s.handleCreateImport)
	mux.HandleFunc("GET /imports", s.handleListImports)
	mux.HandleFunc("GET /imports/{id}", s.handleGetImport)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Let in-flight imports finish writing their terminal status
	s.runs.Wait()

	if s.client != nil {
		_ = s.client.Close()
	}
	if s.database != nil {
		s.database.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
