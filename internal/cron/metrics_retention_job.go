package cron

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/qitaat/seller-dashboard-backend/internal/analytics"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

const defaultMetricsRetentionDays = 730

type MetricsRetentionJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository metricsRetentionRepo
	Location   *time.Location
	Retention  int
}

type metricsRetentionRepo interface {
	DeleteDailyBefore(ctx context.Context, tx *gorm.DB, day string) (int64, error)
}

func NewMetricsRetentionJob(params MetricsRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("maintenance repository required")
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultMetricsRetentionDays
	}
	return &metricsRetentionJob{
		logg:      params.Logger,
		db:        params.DB,
		repo:      params.Repository,
		loc:       loc,
		retention: retention,
		now:       time.Now,
	}, nil
}

type metricsRetentionJob struct {
	logg      *logger.Logger
	db        txRunner
	repo      metricsRetentionRepo
	loc       *time.Location
	retention int
	now       func() time.Time
}

func (j *metricsRetentionJob) Name() string { return "daily-metrics-retention" }

func (j *metricsRetentionJob) Run(ctx context.Context) error {
	cutoff := analytics.DayKey(analytics.StartOfDay(j.now(), j.loc).AddDate(0, 0, -j.retention))
	var deleted int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.DeleteDailyBefore(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		deleted = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("daily metrics retention: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff_day":     cutoff,
		"retention_days": j.retention,
		"rows_deleted":   deleted,
	})
	j.logg.Info(logCtx, "daily metrics retention complete")
	return nil
}
