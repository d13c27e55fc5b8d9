package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/qitaat/seller-dashboard-backend/api/routes"
	"github.com/qitaat/seller-dashboard-backend/internal/analytics"
	"github.com/qitaat/seller-dashboard-backend/internal/sellers"
	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	"github.com/qitaat/seller-dashboard-backend/pkg/config"
	"github.com/qitaat/seller-dashboard-backend/pkg/db"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
	"github.com/qitaat/seller-dashboard-backend/pkg/metrics"
	"github.com/qitaat/seller-dashboard-backend/pkg/migrate"
	"github.com/qitaat/seller-dashboard-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)
	cfg.Service.Kind = "api"

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	loc, err := cfg.Dashboard.Location()
	requireResource(ctx, logg, "dashboard timezone", err)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()

	requireResource(ctx, logg, "dev migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}()

	dashboardMetrics := metrics.NewDashboardMetrics(prometheus.DefaultRegisterer)

	dashboardService, err := analytics.NewService(analytics.ServiceParams{
		Repository:        analytics.NewRepository(dbClient.DB()),
		Cache:             redisClient,
		CacheTTL:          cfg.Dashboard.CacheTTL,
		Metrics:           dashboardMetrics,
		Logger:            logg,
		Location:          loc,
		FetchTimeout:      cfg.Dashboard.FetchTimeout,
		TopListingsLimit:  cfg.Dashboard.TopListingsLimit,
		RecentOrdersLimit: cfg.Dashboard.RecentOrdersLimit,
	})
	requireResource(ctx, logg, "dashboard service", err)

	sellerService, err := sellers.NewService(sellers.NewRepository(dbClient.DB()))
	requireResource(ctx, logg, "seller service", err)

	trackingService, err := tracking.NewService(tracking.ServiceParams{
		Repository: tracking.NewRepository(dbClient.DB()),
		Tx:         dbClient,
		Location:   loc,
		Metrics:    dashboardMetrics,
		Logger:     logg,
	})
	requireResource(ctx, logg, "tracking service", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"timezone": loc.String(),
	})

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			prometheus.DefaultGatherer,
			dashboardService,
			sellerService,
			trackingService,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(runCtx, "starting api server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(runCtx, "api server shutdown failed", err)
		}
		logg.Info(runCtx, "api server stopped")
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
