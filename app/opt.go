package app

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/config"
	"github.com/xy-planning-network/burrow/database"
	"github.com/xy-planning-network/burrow/http/router"
	"github.com/xy-planning-network/burrow/http/template"
	"github.com/xy-planning-network/burrow/logger"
)

// An Option configures an *App either (1) directly, immediately upon being called
// or (2) in the OptFollowup it returns.
// Some Options require data set by others and thus an OptFollowup can be returned
// in order to be called at a later time when that data is available.
//
// WithLogger is an example of the first.
// An unexported field on the passed in *App is updated with the enclosed value.
//
// The defaults New applies are examples of the second:
// each fills in a component only if no Option already set it.
type Option func(a *App) (OptFollowup, error)
type OptFollowup func() error

// WithConfig exposes the provided *config.Tree to the burrow app,
// replacing the one read from CONFIG_FILES.
func WithConfig(cfg *config.Tree) Option {
	return func(a *App) (OptFollowup, error) {
		if cfg == nil {
			return nil, fmt.Errorf("nil config")
		}

		a.cfg = cfg
		return nil, nil
	}
}

// WithConfigFiles loads each of files, in order, into the burrow app's *config.Tree.
func WithConfigFiles(files ...string) Option {
	return func(a *App) (OptFollowup, error) {
		if a.cfg == nil {
			a.cfg = config.New()
		}

		for _, file := range files {
			if file == "" {
				continue
			}

			if _, err := a.cfg.Load(file); err != nil {
				return nil, err
			}
		}

		return nil, nil
	}
}

// WithContext exposes the provided context.Context to the burrow app.
// Cancelling ctx stops *App.Guide.
func WithContext(ctx context.Context) Option {
	return func(a *App) (OptFollowup, error) {
		if ctx == nil {
			ctx = context.Background()
		}

		a.ctx = ctx
		return nil, nil
	}
}

// WithDB exposes the provided *database.DB to the burrow app.
//
// WithDB assumes a connection has already been established.
func WithDB(db *database.DB) Option {
	return func(a *App) (OptFollowup, error) {
		a.db = db
		return nil, nil
	}
}

// WithEnv sets the burrow.Environment env names, in any case.
// An invalid env falls back to the ENVIRONMENT environment variable,
// then burrow.Development.
func WithEnv(env string) Option {
	return func(a *App) (OptFollowup, error) {
		e, err := burrow.ParseEnvironment(env)
		if err != nil {
			e = burrow.EnvVarOrEnv(environmentEnvVar, burrow.Development)
		}

		a.env = e
		return nil, nil
	}
}

// WithLogger exposes the provided logger.Logger to the burrow app.
func WithLogger(l logger.Logger) Option {
	return func(a *App) (OptFollowup, error) {
		a.l = l
		return nil, nil
	}
}

// WithParser exposes the provided template.Parser to the burrow app.
func WithParser(p template.Parser) Option {
	return func(a *App) (OptFollowup, error) {
		a.p = p
		return nil, nil
	}
}

// WithRouter exposes the provided *router.Router to the burrow app.
// The default middleware stack is not applied to it.
func WithRouter(r *router.Router) Option {
	return func(a *App) (OptFollowup, error) {
		a.Router = r
		return nil, nil
	}
}

// WithServer exposes the provided *http.Server to the burrow app.
// Its Handler is replaced with the app's router when *App.Guide is called.
func WithServer(s *http.Server) Option {
	return func(a *App) (OptFollowup, error) {
		a.srv = s
		return nil, nil
	}
}

// WithURL sets the base URL the burrow app runs on.
func WithURL(u *url.URL) Option {
	return func(a *App) (OptFollowup, error) {
		a.url = u
		return nil, nil
	}
}
