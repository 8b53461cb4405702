// Package http exposes the obligation engine as a JSON API on a chi router.
package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"fintrack/internal/clock"
	"fintrack/internal/log"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/services"
)

// Deps are the collaborators of the API server.
type Deps struct {
	Dashboard   *services.DashboardService
	Obligations *services.ObligationService
	Clock       clock.Clock
	Logger      *log.Logger

	// Ready backs /readyz when set.
	Ready func(ctx context.Context) error

	UpcomingCount     int
	RequestsPerMinute int
}

type Server struct {
	http.Server
	deps        Deps
	rateLimiter *ratelimit.Limiter
	started     time.Time
}

// NewServer builds the router and returns a server ready for ListenAndServe.
func NewServer(addr string, deps Deps) *Server {
	if deps.Clock == nil {
		deps.Clock = clock.NewSystem(time.Local)
	}
	if deps.Logger == nil {
		deps.Logger = log.Default(log.ComponentHTTP)
	}
	if deps.UpcomingCount <= 0 {
		deps.UpcomingCount = 3
	}

	cfg := ratelimit.DefaultConfig()
	if deps.RequestsPerMinute > 0 {
		cfg.RequestsPerMinute = deps.RequestsPerMinute
	}

	s := &Server{
		deps:        deps,
		rateLimiter: ratelimit.NewLimiter(cfg),
		started:     time.Now(),
	}
	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(log.Middleware(s.deps.Logger))
	r.Use(log.RequestIDMiddleware(func(r *http.Request) string {
		return middleware.GetReqID(r.Context())
	}))
	r.Use(log.AccessMiddleware)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.rateLimiter.Middleware(rateLimitKey, func(w http.ResponseWriter, r *http.Request) {
			writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded", nil)
		}))

		r.Get("/dashboard", s.handleDashboard)
		r.Get("/upcoming", s.handleUpcoming)

		r.Route("/records/{id}", func(r chi.Router) {
			r.Get("/status", s.handleRecordStatus)
			r.Post("/pay", s.handlePay)
			r.Post("/postpone", s.handlePostpone)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", nil)
	})

	return r
}

// rateLimitKey limits per user when the caller names one, per address otherwise.
func rateLimitKey(r *http.Request) string {
	if u := strings.TrimSpace(r.Header.Get(userHeader)); u != "" {
		return "user:" + u
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}

// Shutdown stops the rate limiter and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiter.Stop()
	return s.Server.Shutdown(ctx)
}
