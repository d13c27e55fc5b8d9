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

	"github.com/qitaat/seller-dashboard-backend/internal/analytics"
	"github.com/qitaat/seller-dashboard-backend/internal/sellers"
	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	pkgAuth "github.com/qitaat/seller-dashboard-backend/pkg/auth"
	"github.com/qitaat/seller-dashboard-backend/pkg/config"
	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
	"github.com/qitaat/seller-dashboard-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubRedis struct {
	counts map[string]int64
}

func (s *stubRedis) Ping(context.Context) error { return nil }

func (s *stubRedis) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	if s.counts == nil {
		s.counts = map[string]int64{}
	}
	s.counts[scope]++
	return s.counts[scope] <= limit, s.counts[scope], nil
}

type stubDashboard struct{ sellerID uuid.UUID }

func (s *stubDashboard) Dashboard(_ context.Context, sellerID uuid.UUID, _ string) (*analytics.DashboardPayload, error) {
	s.sellerID = sellerID
	return &analytics.DashboardPayload{}, nil
}

type stubSellers struct{ sellerID uuid.UUID }

func (s stubSellers) Profile(_ context.Context, id uuid.UUID) (*sellers.Profile, error) {
	return &sellers.Profile{ID: id}, nil
}

func (s stubSellers) SellerIDForUser(context.Context, uuid.UUID) (uuid.UUID, error) {
	return s.sellerID, nil
}

type stubTracking struct{ count int }

func (s *stubTracking) Record(context.Context, tracking.Event) error {
	s.count++
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Env: "dev"},
		JWT:      config.JWTConfig{Secret: "router-secret", Issuer: "seller-dashboard", ExpirationMinutes: 10},
		Tracking: config.TrackingConfig{RateLimitWindow: time.Minute, RateLimitPerIP: 2},
	}
}

type routerFixture struct {
	handler   http.Handler
	dashboard *stubDashboard
	tracking  *stubTracking
	redis     *stubRedis
	sellerID  uuid.UUID
}

func newRouterFixture(t *testing.T) routerFixture {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics.NewDashboardMetrics(reg)

	f := routerFixture{
		dashboard: &stubDashboard{},
		tracking:  &stubTracking{},
		redis:     &stubRedis{},
		sellerID:  uuid.New(),
	}
	f.handler = NewRouter(testConfig(), logger.Nop(), stubPinger{}, f.redis, reg,
		f.dashboard, stubSellers{sellerID: f.sellerID}, f.tracking)
	return f
}

func TestHealthRoutes(t *testing.T) {
	f := newRouterFixture(t)
	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-Id"), path)
	}
}

func TestMetricsRoute(t *testing.T) {
	f := newRouterFixture(t)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSellerRoutesRequireAuth(t *testing.T) {
	f := newRouterFixture(t)
	for _, path := range []string{"/api/v1/seller/dashboard", "/api/v1/seller/profile"} {
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestSellerDashboardResolvesSellerFromUser(t *testing.T) {
	f := newRouterFixture(t)
	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.MemberRoleOwner,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/seller/dashboard?period=7d", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, f.sellerID, f.dashboard.sellerID)
}

func TestPublicEventsRateLimited(t *testing.T) {
	f := newRouterFixture(t)
	path := "/api/public/v1/sellers/" + uuid.NewString() + "/events"

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"type":"inquiry"}`))
		req.RemoteAddr = "192.0.2.10:5555"
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusAccepted, http.StatusAccepted, http.StatusTooManyRequests}, codes)
	assert.Equal(t, 2, f.tracking.count)
}

func TestPublicEventsRejectAnonymousRevenue(t *testing.T) {
	f := newRouterFixture(t)
	path := "/api/public/v1/sellers/" + uuid.NewString() + "/events"

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"type":"order","amount_halalas":999999999}`))
	req.RemoteAddr = "192.0.2.20:5555"
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, f.tracking.count)
}
