package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qitaat/seller-dashboard-backend/internal/repo"
	pkgerrors "github.com/qitaat/seller-dashboard-backend/pkg/errors"
)

const foreignKeyViolation = "23503"

// Repository applies counter increments. Every write is a single atomic statement.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	IncrementDaily(ctx context.Context, sellerID uuid.UUID, day string, delta MetricDelta, at time.Time) error
	IncrementListingViews(ctx context.Context, sellerID, listingID uuid.UUID) error
}

type repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Base.WithTx(tx)}
}

const incrementDailySQL = `
INSERT INTO seller_daily_metrics
	(id, seller_id, date, views, inquiries, orders, revenue_halalas, new_listings, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (seller_id, date) DO UPDATE SET
	views = seller_daily_metrics.views + EXCLUDED.views,
	inquiries = seller_daily_metrics.inquiries + EXCLUDED.inquiries,
	orders = seller_daily_metrics.orders + EXCLUDED.orders,
	revenue_halalas = seller_daily_metrics.revenue_halalas + EXCLUDED.revenue_halalas,
	new_listings = seller_daily_metrics.new_listings + EXCLUDED.new_listings,
	updated_at = EXCLUDED.updated_at`

// IncrementDaily creates the (seller, day) row on first touch and adds delta in place afterwards.
func (r *repository) IncrementDaily(ctx context.Context, sellerID uuid.UUID, day string, delta MetricDelta, at time.Time) error {
	at = at.UTC()
	err := r.DB(ctx).Exec(incrementDailySQL,
		uuid.NewString(), sellerID.String(), day,
		delta.Views, delta.Inquiries, delta.Orders, delta.RevenueHalalas, delta.NewListings,
		at, at,
	).Error
	return mapWriteError(err, "increment daily metrics")
}

func (r *repository) IncrementListingViews(ctx context.Context, sellerID, listingID uuid.UUID) error {
	res := r.DB(ctx).Exec(
		`UPDATE listings SET view_count = view_count + 1 WHERE id = ? AND seller_id = ?`,
		listingID.String(), sellerID.String(),
	)
	if res.Error != nil {
		return mapWriteError(res.Error, "increment listing views")
	}
	if res.RowsAffected == 0 {
		return ErrListingNotFound
	}
	return nil
}

func mapWriteError(err error, op string) error {
	if err == nil {
		return nil
	}
	if pkgerrors.IsPostgresCode(err, foreignKeyViolation) {
		return fmt.Errorf("%s: %w", op, ErrSellerNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
