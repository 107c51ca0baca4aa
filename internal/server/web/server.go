// Package web is the HTTP surface of the portal: the public signup/signin
// flow with the MikroTik handoff, and the admin dashboard behind a signed
// session cookie.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/dkurganov/guestgate/internal/logging"
	"github.com/dkurganov/guestgate/internal/server/models"
	"github.com/dkurganov/guestgate/internal/server/repositories/accounting"
	"github.com/gorilla/sessions"
)

// Registrar provisions registrants and lists them for the admin table.
type Registrar interface {
	Register(ctx context.Context, fullName, company, email, phone string) (*models.Identity, error)
	List(ctx context.Context) ([]*models.Identity, error)
}

// Verifier checks a presented email+phone pair.
type Verifier interface {
	Verify(ctx context.Context, email, phone string) error
}

// StatsProvider aggregates the accounting log.
type StatsProvider interface {
	Summarize(ctx context.Context, filter accounting.Filter, sort accounting.Sort) ([]*models.UsageSummary, error)
	Totals(ctx context.Context) (*models.DashboardTotals, error)
}

// Options carries the web server's own settings out of the full config.
type Options struct {
	Addr               string
	SecretKey          []byte
	AdminUsername      string
	AdminPassword      string
	AdminPasswordHash  string
	AdminTokenValidity time.Duration
}

// Server holds the dependencies for the web server.
type Server struct {
	opts      Options
	logger    logging.Logger
	registrar Registrar
	verifier  Verifier
	stats     StatsProvider
	store     *sessions.CookieStore
}

// NewServer creates a new server with the given dependencies. sessionKey
// feeds the cookie store used for flash messages and must be at least 32
// characters long.
func NewServer(opts Options, sessionKey string, l logging.Logger, r Registrar, v Verifier, s StatsProvider) *Server {
	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options.HttpOnly = true
	store.Options.Path = "/"
	store.Options.SameSite = http.SameSiteLaxMode

	return &Server{
		opts:      opts,
		logger:    l.With("module", "web"),
		registrar: r,
		verifier:  v,
		stats:     s,
		store:     store,
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.opts.Addr,
		Handler: s.requestLogger(s.routes()),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
