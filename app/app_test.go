package app_test

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/app"
	"github.com/xy-planning-network/burrow/config"
	"github.com/xy-planning-network/burrow/http/middleware"
	"github.com/xy-planning-network/burrow/http/router"
	"github.com/xy-planning-network/burrow/logger"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	fp := filepath.Join(dir, name)
	require.Nil(t, os.MkdirAll(filepath.Dir(fp), 0o700))
	require.Nil(t, os.WriteFile(fp, []byte(content), 0o600))

	return fp
}

func testLogger() (logger.Logger, *bytes.Buffer) {
	b := new(bytes.Buffer)
	return logger.New(logger.WithLogger(log.New(b, "", 0))), b
}

func TestNew(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	writeFile(t, dir, "views/notes.tmpl", `{{ .title }}`)
	cfgFile := writeFile(t, dir, "burrow.json", `{
		"server": {"basePath": "/app", "port": "4000", "corsOrigins": ["https://example.com"]},
		"database": {"driver": "sqlite"},
		"views": {"dir": "`+filepath.ToSlash(filepath.Join(dir, "views"))+`"}
	}`)

	t.Setenv("ENVIRONMENT", "TESTING")
	t.Setenv("CONFIG_FILES", cfgFile)
	t.Setenv("PORT", "")
	t.Setenv("BASE_PATH", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	l, _ := testLogger()

	// Act
	a, err := app.New(app.WithLogger(l))

	// Assert
	require.Nil(t, err)
	require.Equal(t, burrow.Testing, a.Env())
	require.Same(t, l, a.Logger())
	require.Equal(t, "/app", a.Config().String("server.basePath", ""))
	require.Equal(t, ":4000", a.Server().Addr)
	require.Equal(t, "/app", a.BasePath())
	require.NotNil(t, a.DB())
	require.True(t, a.Parser().Exists("notes.tmpl"))
	require.Equal(t, "http://localhost:3000", a.URL().String())

	// Arrange
	a.Register(http.MethodGet, `^ping$`, func(w http.ResponseWriter, r *http.Request, args ...string) error {
		rows, err := a.DB().Query(r.Context(), "SELECT 1 AS one")
		if err != nil {
			return err
		}

		one, err := rows[0].Int64("one")
		if err != nil {
			return err
		}

		w.WriteHeader(http.StatusOK)
		_, err = w.Write([]byte{byte('0' + one)})
		return err
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/app/ping", nil)
	r.Header.Set("Origin", "https://example.com")

	// Act
	a.ServeHTTP(w, r)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "1", w.Body.String())
	require.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	require.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	require.Nil(t, a.Shutdown())
}

func TestNewBadConfig(t *testing.T) {
	// Arrange
	t.Setenv("CONFIG_FILES", filepath.Join(t.TempDir(), "missing.json"))

	// Act
	_, err := app.New()

	// Assert
	require.ErrorIs(t, err, burrow.ErrBadConfig)

	// Arrange
	t.Setenv("CONFIG_FILES", "")
	t.Setenv("DATABASE_DRIVER", "mongo")

	// Act
	_, err = app.New()

	// Assert
	require.ErrorIs(t, err, burrow.ErrBadConfig)

	// Act
	_, err = app.New(app.WithConfig(nil))

	// Assert
	require.ErrorIs(t, err, burrow.ErrBadConfig)
}

func TestNewOptions(t *testing.T) {
	// Arrange
	t.Setenv("CONFIG_FILES", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	l, _ := testLogger()
	cfg := config.New()
	rt := router.New("/custom", l)
	srv := &http.Server{Addr: ":0"}

	// Act
	a, err := app.New(
		app.WithEnv("production"),
		app.WithConfig(cfg),
		app.WithLogger(l),
		app.WithRouter(rt),
		app.WithServer(srv),
	)

	// Assert
	require.Nil(t, err)
	require.Equal(t, burrow.Production, a.Env())
	require.Same(t, cfg, a.Config())
	require.Same(t, rt, a.Router)
	require.Same(t, srv, a.Server())
	require.Nil(t, a.DB())
}

func TestNewCxnConfig(t *testing.T) {
	// Arrange
	cfg := config.New()
	cfg.Merge(map[string]any{"database": map[string]any{
		"driver":      "postgres",
		"name":        "notes",
		"maxOpenCxns": float64(4),
	}})
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_NAME", "")
	t.Setenv("DATABASE_HOST", "db.internal")
	t.Setenv("DATABASE_PORT", "")

	// Act
	actual := app.NewCxnConfig(cfg)

	// Assert
	require.Equal(t, "postgres", actual.Driver)
	require.Equal(t, "notes", actual.Name)
	require.Equal(t, "db.internal", actual.Host)
	require.Equal(t, "5432", actual.Port)
	require.Equal(t, "prefer", actual.SSLMode)
	require.Equal(t, 4, actual.MaxOpenCxns)
}

func TestGuide(t *testing.T) {
	// Arrange
	t.Setenv("CONFIG_FILES", "")
	t.Setenv("DATABASE_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "127.0.0.1:0")
	l, b := testLogger()
	ctx, cancel := context.WithCancel(context.Background())

	a, err := app.New(app.WithContext(ctx), app.WithLogger(l))
	require.Nil(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- a.Guide() }()

	// Act
	cancel()

	// Assert
	require.Nil(t, <-errCh)
	require.Contains(t, b.String(), "web server shutdown successfully")
}
