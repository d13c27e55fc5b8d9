package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qitaat/seller-dashboard-backend/internal/repo"
	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
)

// OrderBuyer is the slice of an order the unique-customer rollup needs.
type OrderBuyer struct {
	SellerID  uuid.UUID
	BuyerID   uuid.UUID
	Status    enums.OrderStatus
	CreatedAt time.Time
}

// Maintenance holds the batch writes the scheduled jobs run against seller_daily_metrics.
type Maintenance struct {
	repo.Base
}

func NewMaintenance(db *gorm.DB) *Maintenance {
	return &Maintenance{Base: repo.NewBase(db)}
}

// OrdersCreatedBetween lists orders with created_at in [from, to).
func (m *Maintenance) OrdersCreatedBetween(ctx context.Context, from, to time.Time) ([]OrderBuyer, error) {
	var rows []OrderBuyer
	err := m.DB(ctx).
		Table("orders").
		Select("seller_id, buyer_id, status, created_at").
		Where("created_at >= ? AND created_at < ?", from.UTC(), to.UTC()).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return rows, nil
}

// ResetUniqueCustomers zeroes unique_customers for every row on the given days.
func (m *Maintenance) ResetUniqueCustomers(ctx context.Context, tx *gorm.DB, days []string, at time.Time) error {
	if len(days) == 0 {
		return nil
	}
	err := m.Base.WithTx(tx).DB(ctx).Exec(
		`UPDATE seller_daily_metrics SET unique_customers = 0, updated_at = ? WHERE date IN ?`,
		at.UTC(), days,
	).Error
	if err != nil {
		return fmt.Errorf("reset unique customers: %w", err)
	}
	return nil
}

// SetUniqueCustomers overwrites unique_customers for (seller, day), creating the row if needed.
func (m *Maintenance) SetUniqueCustomers(ctx context.Context, tx *gorm.DB, sellerID uuid.UUID, day string, count int64, at time.Time) error {
	at = at.UTC()
	err := m.Base.WithTx(tx).DB(ctx).Exec(`
INSERT INTO seller_daily_metrics (id, seller_id, date, unique_customers, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (seller_id, date) DO UPDATE SET
	unique_customers = EXCLUDED.unique_customers,
	updated_at = EXCLUDED.updated_at`,
		uuid.NewString(), sellerID.String(), day, count, at, at,
	).Error
	return mapWriteError(err, "set unique customers")
}

// DeleteDailyBefore removes rows whose day is strictly before day.
func (m *Maintenance) DeleteDailyBefore(ctx context.Context, tx *gorm.DB, day string) (int64, error) {
	res := m.Base.WithTx(tx).DB(ctx).Exec(`DELETE FROM seller_daily_metrics WHERE date < ?`, day)
	if res.Error != nil {
		return 0, fmt.Errorf("delete daily metrics: %w", res.Error)
	}
	return res.RowsAffected, nil
}
