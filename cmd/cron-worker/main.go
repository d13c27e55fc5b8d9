package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/qitaat/seller-dashboard-backend/internal/cron"
	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	"github.com/qitaat/seller-dashboard-backend/pkg/config"
	"github.com/qitaat/seller-dashboard-backend/pkg/db"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
	"github.com/qitaat/seller-dashboard-backend/pkg/metrics"
	"github.com/qitaat/seller-dashboard-backend/pkg/migrate"
	"github.com/qitaat/seller-dashboard-backend/pkg/redis"
)

func main() {
	once := flag.Bool("once", false, "run a single cycle and exit")
	flag.Parse()

	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "cron-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)
	cfg.Service.Kind = "cron-worker"

	logg = logger.New(logger.Options{
		ServiceName: "cron-worker",
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

	maintenance := tracking.NewMaintenance(dbClient.DB())
	registry := cron.NewRegistry()

	if cfg.Cron.UniqueCustomersEnabled {
		job, err := cron.NewUniqueCustomersJob(cron.UniqueCustomersJobParams{
			Logger:     logg,
			DB:         dbClient,
			Repository: maintenance,
			Location:   loc,
		})
		requireResource(ctx, logg, "unique customers job", err)
		registry.Register(job)
	}

	retentionJob, err := cron.NewMetricsRetentionJob(cron.MetricsRetentionJobParams{
		Logger:     logg,
		DB:         dbClient,
		Repository: maintenance,
		Location:   loc,
		Retention:  cfg.Cron.MetricsRetentionDays,
	})
	requireResource(ctx, logg, "metrics retention job", err)
	registry.Register(retentionJob)

	lock, err := cron.NewRedisLock(redisClient, redisClient.LockKey("cron-worker:"+envOrLocal(cfg.App.Env)), cfg.Cron.LockTTL)
	requireResource(ctx, logg, "cron lock", err)

	service, err := cron.NewService(cron.ServiceParams{
		Logger:   logg,
		Registry: registry,
		Lock:     lock,
		Metrics:  metrics.NewCronJobMetrics(prometheus.DefaultRegisterer),
		Interval: cfg.Cron.Interval,
	})
	requireResource(ctx, logg, "cron service", err)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx = logg.WithFields(runCtx, map[string]any{
		"env":         cfg.App.Env,
		"serviceKind": cfg.Service.Kind,
		"interval":    cfg.Cron.Interval.String(),
		"jobs":        len(registry.Jobs()),
	})

	if *once {
		logg.Info(runCtx, "running single cron cycle")
		service.RunOnce(runCtx)
		return
	}

	logg.Info(runCtx, "starting cron worker")
	if err := service.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		logg.Error(runCtx, "cron worker stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(runCtx, "cron worker shutting down gracefully")
}

func envOrLocal(env string) string {
	if env == "" {
		return "local"
	}
	return env
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
