package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qitaat/seller-dashboard-backend/internal/repo"
	"github.com/qitaat/seller-dashboard-backend/pkg/db/models"
	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
)

// Repository is the read contract the dashboard aggregator depends on.
type Repository interface {
	FetchDailyMetrics(ctx context.Context, sellerID uuid.UUID, start, end time.Time) ([]DailyMetricRecord, error)
	FetchTopListings(ctx context.Context, sellerID uuid.UUID, limit int) ([]ListingSummary, error)
	FetchRecentOrders(ctx context.Context, sellerID uuid.UUID, since time.Time, limit int) ([]OrderSummary, error)
	FetchSellerOverview(ctx context.Context, sellerID uuid.UUID) (SellerOverview, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds the GORM-backed dashboard read repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

// FetchDailyMetrics returns the seller's rows whose calendar day lies within [start, end],
// with dates re-anchored to start's location.
func (r *repository) FetchDailyMetrics(ctx context.Context, sellerID uuid.UUID, start, end time.Time) ([]DailyMetricRecord, error) {
	var rows []models.SellerDailyMetric
	err := r.DB(ctx).
		Where("seller_id = ? AND date >= ? AND date <= ?", sellerID, DayKey(start), DayKey(end)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch daily metrics: %w", err)
	}

	loc := start.Location()
	records := make([]DailyMetricRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, DailyMetricRecord{
			Date:            time.Date(row.Date.Year(), row.Date.Month(), row.Date.Day(), 0, 0, 0, 0, loc),
			Views:           row.Views,
			Inquiries:       row.Inquiries,
			Orders:          row.Orders,
			RevenueHalalas:  row.RevenueHalalas,
			NewListings:     row.NewListings,
			UniqueCustomers: row.UniqueCustomers,
		})
	}
	return records, nil
}

func (r *repository) FetchTopListings(ctx context.Context, sellerID uuid.UUID, limit int) ([]ListingSummary, error) {
	var rows []models.Listing
	err := r.DB(ctx).
		Where("seller_id = ?", sellerID).
		Order("view_count DESC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch top listings: %w", err)
	}

	out := make([]ListingSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, ListingSummary{
			ID:           row.ID,
			Title:        row.Title,
			TitleEn:      row.TitleEn,
			ViewCount:    row.ViewCount,
			PriceHalalas: row.PriceHalalas,
			ImageURL:     row.ImageURL,
		})
	}
	return out, nil
}

func (r *repository) FetchRecentOrders(ctx context.Context, sellerID uuid.UUID, since time.Time, limit int) ([]OrderSummary, error) {
	var rows []models.Order
	err := r.DB(ctx).
		Where("seller_id = ? AND created_at >= ?", sellerID, since.UTC()).
		Order("created_at DESC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch recent orders: %w", err)
	}

	out := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, OrderSummary{
			ID:           row.ID,
			OrderNumber:  row.OrderNumber,
			BuyerName:    row.BuyerName,
			ItemCount:    row.ItemCount,
			TotalHalalas: row.TotalHalalas,
			Status:       row.Status,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

func (r *repository) FetchSellerOverview(ctx context.Context, sellerID uuid.UUID) (SellerOverview, error) {
	var seller models.Seller
	if err := r.DB(ctx).Where("id = ?", sellerID).Take(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SellerOverview{}, ErrSellerNotFound
		}
		return SellerOverview{}, fmt.Errorf("fetch seller: %w", err)
	}

	var active int64
	err := r.DB(ctx).
		Model(&models.Listing{}).
		Where("seller_id = ? AND status = ?", sellerID, enums.ListingStatusActive).
		Count(&active).Error
	if err != nil {
		return SellerOverview{}, fmt.Errorf("count active listings: %w", err)
	}

	return SellerOverview{
		ActiveListings: active,
		AverageRating:  seller.Rating,
		TotalReviews:   seller.TotalReviews,
		TotalSales:     seller.TotalSales,
		IsVerified:     seller.IsVerified,
	}, nil
}
