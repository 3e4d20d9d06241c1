package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/config"
	"github.com/xy-planning-network/burrow/database"
	"github.com/xy-planning-network/burrow/http/router"
	"github.com/xy-planning-network/burrow/http/template"
	"github.com/xy-planning-network/burrow/logger"
)

// An App manages and exposes all components of a burrow app to one another.
type App struct {
	*router.Router

	cfg    *config.Tree
	ctx    context.Context
	cancel context.CancelFunc
	db     *database.DB
	env    burrow.Environment
	l      logger.Logger
	p      template.Parser
	srv    *http.Server
	url    *url.URL
}

// New constructs an *App from the provided options.
// Default options are applied first followed by the options passed into New.
// Options supplied to New overwrite default configurations.
func New(opts ...Option) (*App, error) {
	a := new(App)
	followups := make([]OptFollowup, 0)

	// NOTE: some options require data from other options.
	// They return an OptFollowup, called after every Option is.
	for _, opt := range append(defaultOpts(), opts...) {
		fn, err := opt(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", burrow.ErrBadConfig, err)
		}

		if fn != nil {
			followups = append(followups, fn)
		}
	}

	for _, fn := range followups {
		if err := fn(); err != nil {
			return nil, fmt.Errorf("%w: %s", burrow.ErrBadConfig, err)
		}
	}

	a.ctx, a.cancel = context.WithCancel(a.ctx)

	return a, nil
}

func (a *App) Config() *config.Tree    { return a.cfg }
func (a *App) DB() *database.DB        { return a.db }
func (a *App) Env() burrow.Environment { return a.env }
func (a *App) Logger() logger.Logger   { return a.l }
func (a *App) Parser() template.Parser { return a.p }
func (a *App) Server() *http.Server    { return a.srv }
func (a *App) URL() *url.URL           { return a.url }

// Guide begins the web server.
//
// These, and (*App).Shutdown, stop Guide:
//
// - cancelling the context passed to WithContext
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (a *App) Guide() error {
	ctx, stop := signal.NotifyContext(
		a.ctx,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.l.Info(fmt.Sprintf("running web server at %s", a.srv.Addr), nil)
		a.srv.Handler = a.Router
		if err := a.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		a.l.Error(err.Error(), nil)
		a.closeDB()
		return err

	case <-ctx.Done():
		a.l.Info("received shutdown signal", nil)
	}

	return a.Shutdown()
}

// Shutdown shuts down the web server and closes the database connection.
func (a *App) Shutdown() error {
	if a.cancel != nil {
		defer a.cancel()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.l.Info("shutting down web server", nil)
	err := a.srv.Shutdown(shutdownCtx)
	a.closeDB()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	a.l.Info("web server shutdown successfully", nil)
	return nil
}

func (a *App) closeDB() {
	if a.db == nil {
		return
	}

	if err := a.db.Close(); err != nil {
		a.l.Error("could not close database", &logger.LogContext{Error: err})
	}
}

const shutdownTimeout = 5 * time.Second
