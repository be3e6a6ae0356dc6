package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/favorites/internal/app"
	"github.com/charlesng35/favorites/internal/handlers/testutil"
	"github.com/charlesng35/favorites/internal/monitoring"
)

type healthBody struct {
	Status string                    `json:"status"`
	Checks []monitoring.ProbeResult `json:"checks"`
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodGet, "/health", nil)
	testutil.RequireStatus(t, resp, http.StatusOK)
	require.JSONEq(t, `{"status":"ok"}`, resp.Body.String())

	resp = env.Request(http.MethodGet, "/health/ready", nil)
	testutil.RequireStatus(t, resp, http.StatusOK)
	body := testutil.DecodeJSON[healthBody](t, resp)
	require.Equal(t, "up", body.Status)
	require.Len(t, body.Checks, 1)
	require.Equal(t, "database", body.Checks[0].Component)

	resp = env.Request(http.MethodGet, "/health/live", nil)
	testutil.RequireStatus(t, resp, http.StatusOK)
}

func TestReadinessFailsWithoutTable(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t)
	require.NoError(t, env.DB.Migrator().DropTable("favorites"))

	resp := env.Request(http.MethodGet, "/health/ready", nil)
	testutil.RequireStatus(t, resp, http.StatusServiceUnavailable)
	require.Equal(t, "degraded", testutil.DecodeJSON[healthBody](t, resp).Status)
}

func TestHealthProbesDisabled(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t, testutil.WithConfig(func(cfg *app.Config) {
		cfg.Monitoring.Health.Enabled = false
		cfg.Monitoring.Prometheus.Enabled = false
	}))

	testutil.RequireStatus(t, env.Request(http.MethodGet, "/health", nil), http.StatusOK)
	testutil.RequireStatus(t, env.Request(http.MethodGet, "/health/ready", nil), http.StatusNotFound)
	testutil.RequireStatus(t, env.Request(http.MethodGet, "/metrics", nil), http.StatusNotFound)
}

func TestMetricsAndSummary(t *testing.T) {
	t.Parallel()
	env := testutil.NewEnv(t)

	resp := env.Request(http.MethodGet, "/metrics", nil)
	testutil.RequireStatus(t, resp, http.StatusOK)
	require.Contains(t, resp.Body.String(), "favorites_")

	resp = env.Request(http.MethodGet, "/monitoring/summary", nil)
	testutil.RequireStatus(t, resp, http.StatusOK)
	summary := testutil.DecodeJSON[monitoring.Summary](t, resp)
	require.NotNil(t, summary.Favorites.Operations)
}
