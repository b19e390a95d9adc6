package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eonite/portal-backend/internal/dashboard"
	pkgAuth "github.com/eonite/portal-backend/pkg/auth"
	"github.com/eonite/portal-backend/pkg/config"
	"github.com/eonite/portal-backend/pkg/enums"
	"github.com/eonite/portal-backend/pkg/i18n"
	"github.com/eonite/portal-backend/pkg/logger"
	"github.com/eonite/portal-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubDashboard struct{}

func (stubDashboard) Overview(ctx context.Context) (*dashboard.Overview, error) {
	return &dashboard.Overview{TotalOrders: 3}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:          config.AppConfig{Env: "dev", DefaultLanguage: "fr"},
		JWT:          config.JWTConfig{Secret: "secret", Issuer: "portal", ExpirationMinutes: 30},
		HTTP:         config.HTTPConfig{RateLimitWindow: time.Minute},
		FeatureFlags: config.FeatureFlagsConfig{ExposeMetrics: true},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()
	cfg := testConfig()
	reg := prometheus.NewRegistry()
	return NewRouter(Dependencies{
		Config:     cfg,
		Logger:     logger.Nop(),
		Translator: i18n.New(cfg.App.DefaultLanguage),
		DB:         stubPinger{},
		Registry:   reg,
		HTTP:       metrics.NewHTTPMetrics(reg),
		Dashboard:  stubDashboard{},
	}), cfg
}

func bearer(t *testing.T, cfg *config.Config, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{UserID: uuid.New(), Role: role})
	require.NoError(t, err)
	return "Bearer " + token
}

func TestHealthRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, resp.Code, path)
		assert.NotEmpty(t, resp.Header().Get("X-Request-Id"))
	}
}

func TestAPIRequiresToken(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Accept-Language", "en")
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authentication required")
}

func TestAdminRoutesRejectClients(t *testing.T) {
	router, cfg := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req.Header.Set("Authorization", bearer(t, cfg, enums.RoleClient))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil)
	req.Header.Set("Authorization", bearer(t, cfg, enums.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"total_orders":3`)
}

func TestClientRoutesRejectAdmins(t *testing.T) {
	router, cfg := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", bearer(t, cfg, enums.RoleAdmin))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestMetricsEndpointExposesHTTPMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/live", nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, strings.Contains(resp.Body.String(), `http_requests_total{method="GET",route="/health/live",status="200"} 1`))
}
