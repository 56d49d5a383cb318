// Package server provides the local HTTP API of the resumeace editor: document
// editing, live preview, export, templates and the AI tools.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/jonathan/resumeace/internal/aitools"
	"github.com/jonathan/resumeace/internal/buffer"
	"github.com/jonathan/resumeace/internal/export"
	"github.com/jonathan/resumeace/internal/ingestion"
	"github.com/jonathan/resumeace/internal/server/ratelimit"
)

// maxBodyBytes bounds JSON request bodies. Documents may carry data URI photos.
const maxBodyBytes = 8 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	rateLimiter *ratelimit.Limiter

	// mu serializes every access to buffer
	mu     sync.Mutex
	buffer *buffer.Buffer

	ai         *aitools.Service
	exporter   *export.Exporter
	jobPosting ingestion.JobPostingOptions
	verbose    bool
}

// Config holds server configuration. Buffer is required; a nil AI disables the
// AI routes and a nil Exporter selects one without a PDF printer.
type Config struct {
	Addr       string
	Port       int
	Buffer     *buffer.Buffer
	AI         *aitools.Service
	Exporter   *export.Exporter
	JobPosting ingestion.JobPostingOptions
	RateLimit  ratelimit.Config
	Verbose    bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Buffer == nil {
		return nil, errors.New("server requires a document buffer")
	}
	if cfg.Exporter == nil {
		cfg.Exporter = export.New(export.Options{})
	}

	s := &Server{
		buffer:      cfg.Buffer,
		ai:          cfg.AI,
		exporter:    cfg.Exporter,
		jobPosting:  cfg.JobPosting,
		verbose:     cfg.Verbose,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Documents
	mux.HandleFunc("GET /documents/{mode}", s.handleGetDocument)
	mux.HandleFunc("PUT /documents/{mode}", s.handlePutDocument)
	mux.HandleFunc("GET /documents/{mode}/preview", s.handlePreview)
	mux.HandleFunc("POST /documents/{mode}/save", s.handleSave)
	mux.HandleFunc("POST /documents/{mode}/import", s.handleImport)
	mux.HandleFunc("POST /documents/{mode}/photo", s.handlePhoto)

	// Sections
	mux.HandleFunc("POST /documents/{mode}/sections", s.handleInsertSection)
	mux.HandleFunc("PUT /documents/{mode}/sections/{id}", s.handleReplaceSection)
	mux.HandleFunc("DELETE /documents/{mode}/sections/{id}", s.handleDeleteSection)
	mux.HandleFunc("POST /documents/{mode}/sections/{id}/move", s.handleMoveSection)
	mux.HandleFunc("PUT /documents/{mode}/order", s.handleReorder)

	// Export and templates
	mux.HandleFunc("GET /documents/{mode}/export/{format}", s.handleExport)
	mux.HandleFunc("GET /templates", s.handleListTemplates)
	mux.HandleFunc("POST /documents/{mode}/templates/{id}", s.handleApplyTemplate)

	// AI tools
	mux.HandleFunc("GET /ai/tools", s.handleListTools)
	mux.HandleFunc("POST /documents/{mode}/ai/{tool}", s.handleAI)

	port := cfg.Port
	if port == 0 {
		port = 8080
	}
	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Addr, strconv.Itoa(port)),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // model calls and PDF printing
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start begins listening for requests and blocks until ctx is done or the process
// receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			s.rateLimiter.Stop()
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.rateLimiter.Stop()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects expensive requests over the configured limits
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := s.rateLimiter.Allow(extractClientID(r), r.Method, r.URL.Path)
		if d.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		}
		if !d.Allowed {
			retry := int(d.RetryAfter.Round(time.Second).Seconds())
			w.Header().Set("Retry-After", strconv.Itoa(max(retry, 1)))
			log.Printf("[rate-limit] %s %s from %s: limit %d exceeded", r.Method, r.URL.Path, extractClientID(r), d.Limit)
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if s.verbose {
			log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		}
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

// fail maps err to its status code and writes it
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s failed: %v", r.Method, r.URL.Path, err)
	}
	s.errorResponse(w, status, err.Error())
}

// decodeJSON reads a JSON request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// extractClientID identifies the client by remote IP
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
