package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/charlesng35/favorites/internal/api"
	"github.com/charlesng35/favorites/internal/app"
	sharedtestutil "github.com/charlesng35/favorites/internal/database/testutil"
	"github.com/charlesng35/favorites/internal/monitoring"
	"github.com/charlesng35/favorites/internal/monitoring/checks"
)

// Env encapsulates a fully-wired API instance backed by an in-memory database for handler tests.
type Env struct {
	T      *testing.T
	DB     *gorm.DB
	Router *gin.Engine
	Module *monitoring.Module
	Config *app.Config
}

// EnvOption customises NewEnv.
type EnvOption func(*envConfig)

type envConfig struct {
	seed      bool
	configure func(*app.Config)
}

// WithSeed inserts the two sample favorites before the router is built.
func WithSeed() EnvOption {
	return func(cfg *envConfig) { cfg.seed = true }
}

// WithConfig adjusts the router configuration.
func WithConfig(fn func(*app.Config)) EnvOption {
	return func(cfg *envConfig) { cfg.configure = fn }
}

// NewEnv provisions a fresh handler test environment with migrations applied.
// The monitoring module is not installed globally, so parallel tests stay isolated.
func NewEnv(t *testing.T, opts ...EnvOption) *Env {
	t.Helper()

	gin.SetMode(gin.TestMode)

	options := envConfig{}
	for _, opt := range opts {
		opt(&options)
	}

	dbOpts := []sharedtestutil.TestDBOption{sharedtestutil.WithAutoMigrate()}
	if options.seed {
		dbOpts = append(dbOpts, sharedtestutil.WithSeedData())
	}
	db := sharedtestutil.MustOpenTestDB(t, dbOpts...)

	cfg := DefaultConfig()
	if options.configure != nil {
		options.configure(cfg)
	}

	mod, err := monitoring.NewModule(monitoring.Options{DisableGoCollector: true, DisableProcessCollector: true})
	require.NoError(t, err)
	mod.Health().RegisterReadiness(checks.Database(db, 0))

	router, err := api.NewRouter(db, cfg, mod)
	require.NoError(t, err)

	return &Env{
		T:      t,
		DB:     db,
		Router: router,
		Module: mod,
		Config: cfg,
	}
}

// DefaultConfig mirrors the server defaults.
func DefaultConfig() *app.Config {
	return &app.Config{
		Server: app.ServerConfig{
			Port: 4000,
			CORS: app.CORSConfig{AllowedOrigins: []string{"*"}},
		},
		Database: app.DatabaseConfig{Driver: "sqlite"},
		Monitoring: app.MonitoringConfig{
			Prometheus: app.PrometheusConfig{Enabled: true, Endpoint: "/metrics"},
			Health:     app.HealthConfig{Enabled: true},
		},
	}
}

// Request marshals body as JSON (when non-nil) and serves it through the router.
func (e *Env) Request(method, path string, body any) *httptest.ResponseRecorder {
	e.T.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(e.T, err)
		reader = bytes.NewReader(payload)
	}
	return e.serve(method, path, reader)
}

// RequestRaw sends body verbatim, for malformed payload tests.
func (e *Env) RequestRaw(method, path, body string) *httptest.ResponseRecorder {
	e.T.Helper()
	return e.serve(method, path, strings.NewReader(body))
}

func (e *Env) serve(method, path string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// DecodeJSON unmarshals the recorded body into T.
func DecodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var dest T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dest), w.Body.String())
	return dest
}

// RequireStatus fails the test with the response body when the status differs.
func RequireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}
