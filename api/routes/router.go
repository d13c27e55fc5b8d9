package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qitaat/seller-dashboard-backend/api/controllers"
	"github.com/qitaat/seller-dashboard-backend/api/middleware"
	"github.com/qitaat/seller-dashboard-backend/internal/analytics"
	"github.com/qitaat/seller-dashboard-backend/internal/sellers"
	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	"github.com/qitaat/seller-dashboard-backend/pkg/config"
	"github.com/qitaat/seller-dashboard-backend/pkg/db"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

const sellerEventsPolicy = "seller-events"

// redisStore is the slice of pkg/redis the router needs.
type redisStore interface {
	Ping(ctx context.Context) error
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient redisStore,
	gatherer prometheus.Gatherer,
	dashboardService analytics.Service,
	sellerService sellers.Service,
	trackingService tracking.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	readiness := map[string]controllers.Pinger{}
	if dbP != nil {
		readiness["db"] = dbP
	}
	if redisClient != nil {
		readiness["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public/v1", func(r chi.Router) {
		r.With(middleware.IPRateLimit(
			sellerEventsPolicy,
			cfg.Tracking.RateLimitPerIP,
			cfg.Tracking.RateLimitWindow,
			redisClient,
			logg,
		)).Post("/sellers/{sellerId}/events", controllers.RecordSellerEvent(trackingService, logg))
	})

	r.Route("/api/v1/seller", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.SellerContext(sellerService, logg))
		r.Get("/dashboard", controllers.SellerDashboard(dashboardService, logg))
		r.Get("/profile", controllers.SellerProfile(sellerService, logg))
	})

	return r
}
