// Package server initializes and runs the portal gateway. It loads
// configuration, opens the database, applies migrations, and starts the HTTP
// server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dkurganov/guestgate/internal/logging"
	"github.com/dkurganov/guestgate/internal/server/config"
	"github.com/dkurganov/guestgate/internal/server/services"
	"github.com/dkurganov/guestgate/internal/server/web"

	"github.com/dkurganov/guestgate/internal/server/repositories/repomanager"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	web    *web.Server
}

func NewApp(c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	m := repomanager.NewPostgresRepositoryManager()

	if err := m.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	rs := services.NewRegistrationService(db, m)
	ss := services.NewSigninService(db, m)
	st := services.NewStatsService(db, m)

	ws := web.NewServer(web.Options{
		Addr:               c.EndpointAddrHTTP,
		SecretKey:          []byte(c.SecretKey),
		AdminUsername:      c.AdminUsername,
		AdminPassword:      c.AdminPassword,
		AdminPasswordHash:  c.AdminPasswordHash,
		AdminTokenValidity: c.AdminTokenValidityDuration,
	}, c.SessionKey, logger, rs, ss, st)

	return &App{config: c, logger: logger, db: db, web: ws}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.web.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
