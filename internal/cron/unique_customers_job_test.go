package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/qitaat/seller-dashboard-backend/internal/tracking"
	"github.com/qitaat/seller-dashboard-backend/pkg/db"
	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
	"github.com/qitaat/seller-dashboard-backend/pkg/logger"
)

func newMaintenanceDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			seller_id TEXT NOT NULL,
			buyer_id TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME
		)`,
		`CREATE TABLE seller_daily_metrics (
			id TEXT PRIMARY KEY,
			seller_id TEXT NOT NULL,
			date DATE NOT NULL,
			views INTEGER NOT NULL DEFAULT 0,
			unique_customers INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME,
			UNIQUE (seller_id, date)
		)`,
	} {
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}

func seedBuyerOrder(t *testing.T, conn *gorm.DB, sellerID, buyerID uuid.UUID, status enums.OrderStatus, at time.Time) {
	t.Helper()
	require.NoError(t, conn.Exec(
		`INSERT INTO orders (id, seller_id, buyer_id, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), sellerID.String(), buyerID.String(), string(status), at.UTC(),
	).Error)
}

func seedMetricRow(t *testing.T, conn *gorm.DB, sellerID uuid.UUID, day string, views, unique int64) {
	t.Helper()
	require.NoError(t, conn.Exec(
		`INSERT INTO seller_daily_metrics (id, seller_id, date, views, unique_customers) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), sellerID.String(), day, views, unique,
	).Error)
}

type metricRow struct {
	Views           int64
	UniqueCustomers int64
}

func loadMetricRow(t *testing.T, conn *gorm.DB, sellerID uuid.UUID, day string) metricRow {
	t.Helper()
	var row metricRow
	require.NoError(t, conn.Raw(
		`SELECT views, unique_customers FROM seller_daily_metrics WHERE seller_id = ? AND date = ?`,
		sellerID.String(), day,
	).Scan(&row).Error)
	return row
}

func TestUniqueCustomersJobRecountsWindow(t *testing.T) {
	conn := newMaintenanceDB(t)
	riyadh, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)

	sellerA := uuid.New()
	sellerB := uuid.New()
	buyer1, buyer2, buyer3, buyer4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	seedBuyerOrder(t, conn, sellerA, buyer1, enums.OrderStatusDelivered, time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC))
	seedBuyerOrder(t, conn, sellerA, buyer1, enums.OrderStatusPending, time.Date(2024, 12, 15, 11, 0, 0, 0, time.UTC))
	// 01:00 on Dec 16 in Riyadh
	seedBuyerOrder(t, conn, sellerA, buyer2, enums.OrderStatusShipped, time.Date(2024, 12, 15, 22, 0, 0, 0, time.UTC))
	seedBuyerOrder(t, conn, sellerA, buyer3, enums.OrderStatusCancelled, time.Date(2024, 12, 16, 8, 0, 0, 0, time.UTC))
	seedBuyerOrder(t, conn, sellerA, buyer1, enums.OrderStatusConfirmed, time.Date(2024, 12, 16, 9, 0, 0, 0, time.UTC))
	// 23:00 on Dec 14 in Riyadh, outside the window
	seedBuyerOrder(t, conn, sellerA, buyer4, enums.OrderStatusDelivered, time.Date(2024, 12, 14, 20, 0, 0, 0, time.UTC))

	seedMetricRow(t, conn, sellerA, "2024-12-16", 3, 0)
	seedMetricRow(t, conn, sellerA, "2024-12-14", 1, 5)
	seedMetricRow(t, conn, sellerB, "2024-12-15", 4, 9)

	jobIface, err := NewUniqueCustomersJob(UniqueCustomersJobParams{
		Logger:     logger.Nop(),
		DB:         db.Wrap(conn),
		Repository: tracking.NewMaintenance(conn),
		Location:   riyadh,
	})
	require.NoError(t, err)
	job := jobIface.(*uniqueCustomersJob)
	job.now = func() time.Time { return time.Date(2024, 12, 16, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, job.Run(context.Background()))

	assert.Equal(t, metricRow{Views: 0, UniqueCustomers: 1}, loadMetricRow(t, conn, sellerA, "2024-12-15"))
	assert.Equal(t, metricRow{Views: 3, UniqueCustomers: 2}, loadMetricRow(t, conn, sellerA, "2024-12-16"))
	assert.Equal(t, metricRow{Views: 1, UniqueCustomers: 5}, loadMetricRow(t, conn, sellerA, "2024-12-14"))
	assert.Equal(t, metricRow{Views: 4, UniqueCustomers: 0}, loadMetricRow(t, conn, sellerB, "2024-12-15"))

	// a second run converges on the same counts
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, int64(2), loadMetricRow(t, conn, sellerA, "2024-12-16").UniqueCustomers)
}

type fakeUniqueCustomersRepo struct {
	orders   []tracking.OrderBuyer
	listErr  error
	setErr   error
	from, to time.Time
	reset    []string
	set      map[string]int64
}

func (f *fakeUniqueCustomersRepo) OrdersCreatedBetween(_ context.Context, from, to time.Time) ([]tracking.OrderBuyer, error) {
	f.from, f.to = from, to
	return f.orders, f.listErr
}

func (f *fakeUniqueCustomersRepo) ResetUniqueCustomers(_ context.Context, _ *gorm.DB, days []string, _ time.Time) error {
	f.reset = days
	return nil
}

func (f *fakeUniqueCustomersRepo) SetUniqueCustomers(_ context.Context, _ *gorm.DB, sellerID uuid.UUID, day string, count int64, _ time.Time) error {
	if f.setErr != nil {
		return f.setErr
	}
	if f.set == nil {
		f.set = map[string]int64{}
	}
	f.set[sellerID.String()+"/"+day] = count
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func TestUniqueCustomersJobWindowBounds(t *testing.T) {
	repo := &fakeUniqueCustomersRepo{}
	jobIface, err := NewUniqueCustomersJob(UniqueCustomersJobParams{
		Logger:       logger.Nop(),
		DB:           passthroughTx{},
		Repository:   repo,
		LookbackDays: 3,
	})
	require.NoError(t, err)
	job := jobIface.(*uniqueCustomersJob)
	job.now = func() time.Time { return time.Date(2025, 3, 1, 6, 30, 0, 0, time.UTC) }

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC), repo.from.UTC())
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), repo.to.UTC())
	assert.Equal(t, []string{"2025-02-27", "2025-02-28", "2025-03-01"}, repo.reset)
	assert.Empty(t, repo.set)
}

func TestUniqueCustomersJobSkipsNilBuyerAndPropagatesErrors(t *testing.T) {
	seller := uuid.New()
	repo := &fakeUniqueCustomersRepo{orders: []tracking.OrderBuyer{
		{SellerID: seller, BuyerID: uuid.Nil, Status: enums.OrderStatusDelivered, CreatedAt: time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)},
		{SellerID: seller, BuyerID: uuid.New(), Status: enums.OrderStatusRefunded, CreatedAt: time.Date(2025, 3, 1, 2, 0, 0, 0, time.UTC)},
		{SellerID: seller, BuyerID: uuid.New(), Status: enums.OrderStatusPending, CreatedAt: time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC)},
	}}
	jobIface, err := NewUniqueCustomersJob(UniqueCustomersJobParams{Logger: logger.Nop(), DB: passthroughTx{}, Repository: repo})
	require.NoError(t, err)
	job := jobIface.(*uniqueCustomersJob)
	job.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, map[string]int64{seller.String() + "/2025-03-01": 1}, repo.set)

	repo.setErr = errors.New("write failed")
	assert.Error(t, job.Run(context.Background()))

	repo.listErr = errors.New("read failed")
	assert.Error(t, job.Run(context.Background()))
}

func TestNewUniqueCustomersJobValidation(t *testing.T) {
	_, err := NewUniqueCustomersJob(UniqueCustomersJobParams{DB: passthroughTx{}, Repository: &fakeUniqueCustomersRepo{}})
	assert.Error(t, err)
	_, err = NewUniqueCustomersJob(UniqueCustomersJobParams{Logger: logger.Nop(), Repository: &fakeUniqueCustomersRepo{}})
	assert.Error(t, err)
	_, err = NewUniqueCustomersJob(UniqueCustomersJobParams{Logger: logger.Nop(), DB: passthroughTx{}})
	assert.Error(t, err)
}
