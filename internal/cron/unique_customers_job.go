package cron

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qitaat/seller-dashboard-backend/internal/analytics"
	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

const (
	uniqueCustomersJobName  = "unique-customers-rollup"
	uniqueCustomersLookback = 2
)

type UniqueCustomersJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository uniqueCustomersRepo
	Location   *time.Location
	// LookbackDays counts today; 2 recomputes yesterday and today.
	LookbackDays int
}

type uniqueCustomersRepo interface {
	OrdersCreatedBetween(ctx context.Context, from, to time.Time) ([]tracking.OrderBuyer, error)
	ResetUniqueCustomers(ctx context.Context, tx *gorm.DB, days []string, at time.Time) error
	SetUniqueCustomers(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID, day string, count int64, at time.Time) error
}

func NewUniqueCustomersJob(params UniqueCustomersJobParams) (Job, error) {
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
	lookback := params.LookbackDays
	if lookback <= 0 {
		lookback = uniqueCustomersLookback
	}
	return &uniqueCustomersJob{
		logg:     params.Logger,
		db:       params.DB,
		repo:     params.Repository,
		loc:      loc,
		lookback: lookback,
		now:      time.Now,
	}, nil
}

type uniqueCustomersJob struct {
	logg     *logger.Logger
	db       txRunner
	repo     uniqueCustomersRepo
	loc      *time.Location
	lookback int
	now      func() time.Time
}

type sellerDay struct {
	sellerID uuid.UUID
	day      string
}

func (j *uniqueCustomersJob) Name() string { return uniqueCustomersJobName }

// Run recounts distinct buyers per seller and calendar day for the lookback
// window and overwrites unique_customers for those days.
func (j *uniqueCustomersJob) Run(ctx context.Context) error {
	now := j.now()
	today := analytics.StartOfDay(now, j.loc)
	from := today.AddDate(0, 0, -(j.lookback - 1))
	to := today.AddDate(0, 0, 1)

	orders, err := j.repo.OrdersCreatedBetween(ctx, from, to)
	if err != nil {
		return fmt.Errorf("unique customers: %w", err)
	}

	days := make([]string, 0, j.lookback)
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		days = append(days, analytics.DayKey(d))
	}

	buyers := make(map[sellerDay]map[uuid.UUID]struct{})
	for _, o := range orders {
		if !o.Status.CountsTowardCustomers() || o.BuyerID == uuid.Nil {
			continue
		}
		key := sellerDay{sellerID: o.SellerID, day: analytics.DayKey(analytics.StartOfDay(o.CreatedAt, j.loc))}
		set, ok := buyers[key]
		if !ok {
			set = make(map[uuid.UUID]struct{})
			buyers[key] = set
		}
		set[o.BuyerID] = struct{}{}
	}

	keys := make([]sellerDay, 0, len(buyers))
	for k := range buyers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].day != keys[b].day {
			return keys[a].day < keys[b].day
		}
		return keys[a].sellerID.String() < keys[b].sellerID.String()
	})

	err = j.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := j.repo.ResetUniqueCustomers(ctx, tx, days, now); err != nil {
			return err
		}
		for _, k := range keys {
			if err := j.repo.SetUniqueCustomers(ctx, tx, k.sellerID, k.day, int64(len(buyers[k])), now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("unique customers: %w", err)
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"days":        days,
		"orders":      len(orders),
		"seller_days": len(keys),
	})
	j.logg.Info(logCtx, "unique customers rollup complete")
	return nil
}
