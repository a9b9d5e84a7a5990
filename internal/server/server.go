// Package server provides the HTTP REST API for the construction planner.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/haitham/binaa-planner/internal/db"
	"github.com/haitham/binaa-planner/internal/fetch"
	"github.com/haitham/binaa-planner/internal/types"
)

// Store is the persistence boundary the handlers depend on. *db.DB
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	Ping(ctx context.Context) error

	CreateProject(ctx context.Context, project *types.Project) (*types.Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*types.Project, error)
	ListProjects(ctx context.Context, ownerID uuid.UUID) ([]types.Project, error)
	UpdateProject(ctx context.Context, project *types.Project) (*types.Project, error)
	DeleteProject(ctx context.Context, id uuid.UUID) error

	CreateSupplier(ctx context.Context, supplier *types.Supplier) (*types.Supplier, error)
	GetSupplier(ctx context.Context, id uuid.UUID) (*types.Supplier, error)
	ListSuppliers(ctx context.Context, filters db.SupplierFilters) ([]types.Supplier, error)

	CreatePurchaseOrder(ctx context.Context, order *types.PurchaseOrder) (*types.PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*types.PurchaseOrder, error)
	ListPurchaseOrders(ctx context.Context, projectID uuid.UUID) ([]types.PurchaseOrder, error)
	UpdatePurchaseOrderStatus(ctx context.Context, id uuid.UUID, status string) error

	SaveQuote(ctx context.Context, quote *types.Quote) (*types.Quote, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*types.Quote, error)
	ListQuotes(ctx context.Context, projectID uuid.UUID) ([]types.Quote, error)

	CreateRun(ctx context.Context, projectID uuid.UUID) (uuid.UUID, error)
	CompleteRun(ctx context.Context, runID uuid.UUID, status string, runErr error) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) error
	GetArtifact(ctx context.Context, runID uuid.UUID, step string) ([]byte, error)
	GetRun(ctx context.Context, runID uuid.UUID) (*db.Run, error)
	ListRuns(ctx context.Context, projectID uuid.UUID, limit int) ([]db.Run, error)
	GetLatestPlan(ctx context.Context, projectID uuid.UUID) ([]byte, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	apiKey      string
	stepTimeout time.Duration
	fetcher     *fetch.CachedFetcher
	currentUser types.User
	closeStore  func()
}

// Config holds server configuration
type Config struct {
	Addr        string // listen address, e.g. ":8080"
	DatabaseURL string
	APIKey      string
	StepTimeout time.Duration
	// UseBrowser enables the headless-browser fallback when supplier
	// pages come back too thin over plain HTTP.
	UseBrowser bool
}

// New creates a new server instance backed by PostgreSQL
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := NewWithStore(database, cfg)
	s.closeStore = database.Close
	return s, nil
}

// NewWithStore creates a server around an existing store. Used directly by
// tests with a fake store.
func NewWithStore(store Store, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	s := &Server{
		store:       store,
		apiKey:      cfg.APIKey,
		stepTimeout: cfg.StepTimeout,
		fetcher:     fetch.NewCachedFetcher(&fetch.CachedFetcherConfig{UseBrowser: cfg.UseBrowser}),
		// Authentication is out of scope; every request acts as the
		// mock user.
		currentUser: types.MockUser(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Project endpoints
	mux.HandleFunc("POST /projects", s.handleCreateProject)
	mux.HandleFunc("GET /projects", s.handleListProjects)
	mux.HandleFunc("GET /projects/{id}", s.handleGetProject)
	mux.HandleFunc("PUT /projects/{id}", s.handleUpdateProject)
	mux.HandleFunc("DELETE /projects/{id}", s.handleDeleteProject)

	// Plan generation endpoints
	mux.HandleFunc("POST /projects/{id}/plan", s.handleGeneratePlan)
	mux.HandleFunc("GET /projects/{id}/plan", s.handleGetPlan)
	mux.HandleFunc("GET /projects/{id}/runs", s.handleListRuns)
	mux.HandleFunc("GET /runs/{id}", s.handleGetRun)
	mux.HandleFunc("GET /runs/{id}/artifacts/{step}", s.handleGetArtifact)

	// Quote and risk endpoints
	mux.HandleFunc("POST /projects/{id}/quote", s.handleGenerateQuote)
	mux.HandleFunc("GET /projects/{id}/quotes", s.handleListQuotes)
	mux.HandleFunc("GET /quotes/{id}", s.handleGetQuote)
	mux.HandleFunc("POST /projects/{id}/risks", s.handleAnalyzeRisks)

	// Supplier endpoints
	mux.HandleFunc("POST /suppliers", s.handleCreateSupplier)
	mux.HandleFunc("GET /suppliers", s.handleListSuppliers)
	mux.HandleFunc("GET /suppliers/{id}", s.handleGetSupplier)
	mux.HandleFunc("POST /suppliers/{id}/outreach", s.handleOutreach)

	// Purchase order endpoints
	mux.HandleFunc("POST /projects/{id}/orders", s.handleCreateOrder)
	mux.HandleFunc("GET /projects/{id}/orders", s.handleListOrders)
	mux.HandleFunc("GET /orders/{id}", s.handleGetOrder)
	mux.HandleFunc("PUT /orders/{id}/status", s.handleUpdateOrderStatus)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for plan runs
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the configured route tree, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
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

	if s.closeStore != nil {
		s.closeStore()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
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
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  err.Error(),
		})
		return
	}
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

// pathID parses the {id} path segment as a UUID
func (s *Server) pathID(r *http.Request) (uuid.UUID, error) {
	idStr := r.PathValue("id")
	if idStr == "" {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "is required"}
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "is not a valid UUID"}
	}
	return id, nil
}
