package app

import (
	"context"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/config"
	"github.com/xy-planning-network/burrow/database"
	"github.com/xy-planning-network/burrow/http/middleware"
	"github.com/xy-planning-network/burrow/http/router"
	"github.com/xy-planning-network/burrow/http/template"
	"github.com/xy-planning-network/burrow/logger"
)

const (
	// Base URL defaults
	BaseURLEnvVar  = "BASE_URL"
	basePathEnvVar = "BASE_PATH"

	// Config defaults
	configFilesEnvVar = "CONFIG_FILES"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"

	// Database defaults
	dbDriverEnvVar   = "DATABASE_DRIVER"
	dbHostEnvVar     = "DATABASE_HOST"
	defaultDBHost    = "localhost"
	dbNameEnvVar     = "DATABASE_NAME"
	dbPassEnvVar     = "DATABASE_PASSWORD"
	dbPortEnvVar     = "DATABASE_PORT"
	defaultDBPort    = "5432"
	dbSSLModeEnvVar  = "DATABASE_SSLMODE"
	defaultDBSSLMode = "prefer"
	dbURLEnvVar      = "DATABASE_URL"
	dbUserEnvVar     = "DATABASE_USER"

	// Views defaults
	defaultAssetsDir = "public"

	// Web server defaults
	corsOriginsEnvVar         = "CORS_ORIGINS"
	DefaultHost               = "localhost"
	DefaultPort               = ":3000"
	portEnvVar                = "PORT"
	serverReadTimeoutEnvVar   = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout  = 5 * time.Second
	serverIdleTimeoutEnvVar   = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout  = 120 * time.Second
	serverWriteTimeoutEnvVar  = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout = 5 * time.Second
)

var defaultBaseURL = "http://" + DefaultHost + DefaultPort

// defaultOpts are the Options New applies before those passed to it.
func defaultOpts() []Option {
	return []Option{
		WithContext(context.Background()),
		WithEnv(""),
		WithConfigFiles(splitList(os.Getenv(configFilesEnvVar))...),
		withDefaults(),
	}
}

// withDefaults fills in, once every Option has been called,
// each component no Option set.
func withDefaults() Option {
	return func(a *App) (OptFollowup, error) {
		return func() error {
			if a.l == nil {
				a.l = defaultLogger(a.env, a.cfg)
			}

			if a.url == nil {
				a.url = defaultURL()
			}

			if a.db == nil {
				db, err := defaultDB(a.cfg, a.env, a.l)
				if err != nil {
					return err
				}

				a.db = db
			}

			assets := defaultAssetsFS(a.cfg)
			basePath := defaultBasePath(a.cfg)
			if a.p == nil {
				a.p = defaultParser(a.cfg, a.env, a.url, basePath, assets)
			}

			if a.Router == nil {
				a.Router = defaultRouter(a.cfg, a.env, a.l, basePath, assets)
			}

			if a.srv == nil {
				a.srv = defaultServer(a.cfg, func() context.Context { return a.ctx })
			}

			return nil
		}, nil
	}
}

// defaultLogger constructs a logger.Logger configured for use in the application.
func defaultLogger(env burrow.Environment, cfg *config.Tree) logger.Logger {
	level := burrow.EnvVarOrString(logLevelEnvVar, cfg.String("log.level", "INFO"))
	l := logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(logger.NewLogLevel(level)),
	)
	l.Debug("setting up app logger", nil)

	return l
}

// defaultURL parses the BASE_URL env var.
func defaultURL() *url.URL {
	u, err := url.ParseRequestURI(burrow.EnvVarOrString(BaseURLEnvVar, defaultBaseURL))
	if err != nil {
		u, _ = url.ParseRequestURI(defaultBaseURL)
	}

	return u
}

// NewCxnConfig constructs a database.CxnConfig from the "database" keys of cfg,
// overridden by the DATABASE env vars.
func NewCxnConfig(cfg *config.Tree) database.CxnConfig {
	return database.CxnConfig{
		Driver:      burrow.EnvVarOrString(dbDriverEnvVar, cfg.String("database.driver", "")),
		URL:         burrow.EnvVarOrString(dbURLEnvVar, cfg.String("database.url", "")),
		Host:        burrow.EnvVarOrString(dbHostEnvVar, cfg.String("database.host", defaultDBHost)),
		Port:        burrow.EnvVarOrString(dbPortEnvVar, cfg.String("database.port", defaultDBPort)),
		Name:        burrow.EnvVarOrString(dbNameEnvVar, cfg.String("database.name", "")),
		User:        burrow.EnvVarOrString(dbUserEnvVar, cfg.String("database.user", "")),
		Password:    burrow.EnvVarOrString(dbPassEnvVar, cfg.String("database.password", "")),
		SSLMode:     burrow.EnvVarOrString(dbSSLModeEnvVar, cfg.String("database.sslmode", defaultDBSSLMode)),
		MaxOpenCxns: cfg.Int("database.maxOpenCxns", 0),
	}
}

// defaultDB connects to the database configured.
// Without a driver or URL configured, no database is connected and defaultDB returns nil.
func defaultDB(cfg *config.Tree, env burrow.Environment, l logger.Logger) (*database.DB, error) {
	cxn := NewCxnConfig(cfg)
	if cxn.Driver == "" && cxn.URL == "" {
		l.Debug("no database configured", nil)
		return nil, nil
	}

	db, err := database.Connect(cxn, env, l)
	if err != nil {
		return nil, err
	}

	l.Debug(fmt.Sprintf("connected to %s database", db.Gorm().Dialector.Name()), nil)
	return db, nil
}

func defaultBasePath(cfg *config.Tree) string {
	return burrow.EnvVarOrString(basePathEnvVar, cfg.String("server.basePath", ""))
}

// defaultAssetsFS opens the directory static files are served from, if it exists.
func defaultAssetsFS(cfg *config.Tree) fs.FS {
	dir := cfg.String("assets.dir", defaultAssetsDir)
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}

	return os.DirFS(dir)
}

// defaultParser constructs a *template.Parse reading templates from the "views.dir" directory.
//
// defaultParser makes available these functions in an HTML template:
//
//   - "assetURI"
//   - "env"
//   - "isDevelopment"
//   - "isProduction"
//   - "isStaging"
//   - "nonce"
//   - "pretty"
//   - "rootURL"
func defaultParser(cfg *config.Tree, env burrow.Environment, u *url.URL, basePath string, assets fs.FS) template.Parser {
	return template.NewParser(
		template.WithFS(os.DirFS(cfg.String("views.dir", "."))),
		template.WithFn(template.AssetURI(basePath, env, assets)),
		template.WithFn(template.Env(env)),
		template.WithFn("isDevelopment", env.IsDevelopment),
		template.WithFn("isProduction", env.IsProduction),
		template.WithFn("isStaging", env.IsStaging),
		template.WithFn(template.Nonce()),
		template.WithFn(template.RootURL(u)),
	)
}

// defaultRouter constructs a *router.Router applying the default middleware stack to every request.
func defaultRouter(cfg *config.Tree, env burrow.Environment, l logger.Logger, basePath string, assets fs.FS) *router.Router {
	r := router.New(basePath, l)
	r.OnEveryRequest(defaultMiddlewares(cfg, env, l)...)
	if assets != nil {
		r.ServeAssets(assets)
	}

	return r
}

// defaultMiddlewares builds the stack of middleware.Adapter every request passes through.
//
// CORS, ForceHTTPS and RateLimit are only applied when configured.
func defaultMiddlewares(cfg *config.Tree, env burrow.Environment, l logger.Logger) []middleware.Adapter {
	origins := cfg.Strings("server.corsOrigins", nil)
	if val := os.Getenv(corsOriginsEnvVar); val != "" {
		origins = splitList(val)
	}

	mws := []middleware.Adapter{
		middleware.RequestID(),
		middleware.InjectIPAddress(),
		middleware.LogRequest(l),
		middleware.CORS(origins...),
	}

	if cfg.Bool("server.forceHTTPS", false) {
		mws = append(mws, middleware.ForceHTTPS(env))
	}

	if cfg.Has("server.rateLimit") {
		vs := middleware.NewVisitors(
			float64(cfg.Int("server.rateLimit.perSecond", 0)),
			cfg.Int("server.rateLimit.burst", 0),
		)
		mws = append(mws, middleware.RateLimit(vs))
	}

	return mws
}

// defaultServer constructs a default *http.Server.
func defaultServer(cfg *config.Tree, ctx func() context.Context) *http.Server {
	port := burrow.EnvVarOrString(portEnvVar, cfg.String("server.port", DefaultPort))
	if !strings.Contains(port, ":") {
		port = ":" + port
	}

	return &http.Server{
		Addr:         port,
		BaseContext:  func(_ net.Listener) context.Context { return ctx() },
		IdleTimeout:  burrow.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ReadTimeout:  burrow.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout: burrow.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
	}
}

func splitList(val string) []string {
	var list []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}

	return list
}
