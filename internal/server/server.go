// Package server provides the HTTP REST API for composing offers and generating documents.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/offer-composer/internal/document"
	"github.com/jonathan/offer-composer/internal/server/ratelimit"
	"github.com/jonathan/offer-composer/internal/types"
	"github.com/sirupsen/logrus"
)

// OfferService applies offer lifecycle transitions; *offers.Service implements it
type OfferService interface {
	AddEmployee(ctx context.Context, offerID, employeeID uuid.UUID) (*types.ShownEmployeeProperties, error)
	RemoveEmployee(ctx context.Context, offerID, snapshotID uuid.UUID) error
	UpdateShownEmployee(ctx context.Context, snapshotID uuid.UUID, update types.ShownEmployeeUpdate) (*types.ShownEmployeeProperties, error)
	CreateDocumentConfiguration(ctx context.Context, offerID uuid.UUID, req types.DocumentConfigurationRequest) (*types.DocumentConfiguration, error)
}

// Store is the read side the handlers need; *db.DB implements it
type Store interface {
	ListEmployees(ctx context.Context) ([]types.Employee, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (*types.Employee, error)
	ListOffers(ctx context.Context, limit int) ([]types.Offer, error)
	GetOffer(ctx context.Context, id uuid.UUID) (*types.Offer, error)
	GetDocumentConfiguration(ctx context.Context, id uuid.UUID) (*types.DocumentConfiguration, error)
	ListDocumentConfigurations(ctx context.Context, offerID uuid.UUID) ([]types.DocumentConfiguration, error)
}

// Pinger reports backend health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators a Server is built from
type Dependencies struct {
	Offers    OfferService
	Store     Store
	Generator *document.Generator
	Health    Pinger // optional
	Logger    *logrus.Logger
	Limiter   *ratelimit.Limiter // optional
}

// Config holds server configuration
type Config struct {
	Port int
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	offers      OfferService
	store       Store
	generator   *document.Generator
	health      Pinger
	log         *logrus.Logger
	rateLimiter *ratelimit.Limiter
	now         func() time.Time
}

// New creates a new server instance
func New(cfg Config, deps Dependencies) (*Server, error) {
	if deps.Offers == nil || deps.Store == nil || deps.Generator == nil {
		return nil, fmt.Errorf("server requires an offer service, a store and a generator")
	}

	s := &Server{
		offers:      deps.Offers,
		store:       deps.Store,
		generator:   deps.Generator,
		health:      deps.Health,
		log:         deps.Logger,
		rateLimiter: deps.Limiter,
		now:         time.Now,
	}
	if s.log == nil {
		s.log = logrus.New()
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(nil)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // PDF printing can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Employees
	mux.HandleFunc("GET /employees", s.handleListEmployees)
	mux.HandleFunc("GET /employees/{id}/experience", s.handleEmployeeExperience)

	// Offers and snapshots
	mux.HandleFunc("GET /offers", s.handleListOffers)
	mux.HandleFunc("GET /offers/{id}", s.handleGetOffer)
	mux.HandleFunc("POST /offers/{id}/employees", s.handleAddEmployee)
	mux.HandleFunc("DELETE /offers/{id}/employees/{snapshot_id}", s.handleRemoveEmployee)
	mux.HandleFunc("PATCH /shown-employees/{id}", s.handleUpdateShownEmployee)

	// Document configurations
	mux.HandleFunc("GET /offers/{id}/document-configurations", s.handleListConfigurations)
	mux.HandleFunc("POST /offers/{id}/document-configurations", s.handleCreateConfiguration)
	mux.HandleFunc("GET /document-configurations/{id}", s.handleGetConfiguration)
	mux.HandleFunc("POST /document-configurations/{id}/generate", s.handleGenerate)

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	pruneTicker := time.NewTicker(5 * time.Minute)
	defer pruneTicker.Stop()

	for {
		select {
		case err := <-errCh:
			return fmt.Errorf("server error: %w", err)
		case <-pruneTicker.C:
			s.rateLimiter.Prune(time.Hour)
		case <-stop:
			s.log.Info("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.httpServer.Shutdown(ctx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}
			s.log.Info("server stopped")
			return nil
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"remote":   r.RemoteAddr,
			"duration": time.Since(start).String(),
		}).Info("request completed")
	})
}

// withRateLimit rejects clients that exceed their budget with 429
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := s.rateLimiter.Allow(clientID(r), r.Method, r.URL.Path)
		if info.Limit > 0 {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		}
		if !info.Allowed {
			retry := int(info.RetryAfter.Seconds()) + 1
			w.Header().Set("Retry-After", fmt.Sprintf("%d", retry))
			s.log.WithFields(logrus.Fields{"client": clientID(r), "path": r.URL.Path}).Warn("rate limit exceeded")
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientID is the remote IP without port
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["database"] = "unavailable"
			s.jsonResponse(w, http.StatusServiceUnavailable, status)
			return
		}
		status["database"] = "ok"
	}
	s.jsonResponse(w, http.StatusOK, status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.WithError(err).Error("failed to encode JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to a status and writes it; server errors are logged and not echoed
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
		s.errorResponse(w, status, "internal error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// pathID parses a UUID path parameter
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: %s", name, r.PathValue(name)))
		return uuid.Nil, false
	}
	return id, true
}
