package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	"github.com/qitaat/seller-dashboard-backend/internal/tracking/archive"
	"github.com/qitaat/seller-dashboard-backend/internal/tracking/worker"
	"github.com/qitaat/seller-dashboard-backend/pkg/bigquery"
	"github.com/qitaat/seller-dashboard-backend/pkg/config"
	"github.com/qitaat/seller-dashboard-backend/pkg/db"
	"github.com/qitaat/seller-dashboard-backend/pkg/idempotency"
	"github.com/qitaat/seller-dashboard-backend/pkg/instance"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
	"github.com/qitaat/seller-dashboard-backend/pkg/metrics"
	"github.com/qitaat/seller-dashboard-backend/pkg/pubsub"
	"github.com/qitaat/seller-dashboard-backend/pkg/redis"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "analytics-worker"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)
	cfg.Service.Kind = "analytics-worker"

	logg = logger.New(logger.Options{
		ServiceName: "analytics-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	loc, err := cfg.Dashboard.Location()
	requireResource(ctx, logg, "dashboard timezone", err)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)

	pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)

	closers := []func() error{dbClient.Close, redisClient.Close, pubsubClient.Close}

	subscription := pubsubClient.SellerEventsSubscription()
	if subscription == nil {
		requireResource(ctx, logg, "seller events subscription", errors.New("subscription not configured"))
	}

	claims, err := idempotency.NewManager(redisClient, cfg.PubSub.SellerEventsSubscription, cfg.Eventing.IdempotencyTTL)
	requireResource(ctx, logg, "idempotency manager", err)

	recorder, err := tracking.NewService(tracking.ServiceParams{
		Repository: tracking.NewRepository(dbClient.DB()),
		Tx:         dbClient,
		Location:   loc,
		Metrics:    metrics.NewDashboardMetrics(prometheus.DefaultRegisterer),
		Logger:     logg,
	})
	requireResource(ctx, logg, "tracking service", err)

	var handler *worker.EventHandler
	var archiveWriter *archive.Writer
	if cfg.FeatureFlags.ArchiveEvents {
		var bqClient *bigquery.Client
		bqClient, err = bigquery.NewClient(ctx, cfg.GCP, cfg.BigQuery, logg)
		requireResource(ctx, logg, "bigquery", err)
		closers = append(closers, bqClient.Close)

		archiveWriter, err = archive.New(bqClient, archive.Config{Table: cfg.BigQuery.SellerEventsTable})
		requireResource(ctx, logg, "seller events archive", err)
		handler, err = worker.NewEventHandler(recorder, archiveWriter, loc, logg)
	} else {
		handler, err = worker.NewEventHandler(recorder, nil, loc, logg)
	}
	requireResource(ctx, logg, "event handler", err)

	service, err := worker.NewService(subscription, handler, claims, logg)
	requireResource(ctx, logg, "analytics worker service", err)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{
		"env":          cfg.App.Env,
		"serviceKind":  cfg.Service.Kind,
		"subscription": cfg.PubSub.SellerEventsSubscription,
		"archive":      cfg.FeatureFlags.ArchiveEvents,
		"worker_id":    instance.GetID(),
	})
	logg.Info(runCtx, "analytics worker ready")

	runErr := service.Run(runCtx)

	var shutdownErr error
	if archiveWriter != nil {
		shutdownErr = multierr.Append(shutdownErr, archiveWriter.Flush(context.Background()))
	}
	for i := len(closers) - 1; i >= 0; i-- {
		shutdownErr = multierr.Append(shutdownErr, closers[i]())
	}
	if shutdownErr != nil {
		logg.Error(runCtx, "analytics worker shutdown", shutdownErr)
	}

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logg.Error(runCtx, "analytics worker failed", runErr)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
