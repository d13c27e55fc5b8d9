package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
)

// DailyMetricRecord is one seller's counters for one calendar day.
type DailyMetricRecord struct {
	Date            time.Time
	Views           int64
	Inquiries       int64
	Orders          int64
	RevenueHalalas  int64
	NewListings     int64
	UniqueCustomers int64
}

// PeriodTotals is the field-wise sum of a window's daily records.
type PeriodTotals struct {
	Views           int64
	Inquiries       int64
	Orders          int64
	RevenueHalalas  int64
	NewListings     int64
	UniqueCustomers int64
}

// Growth holds percent change of the current window against the previous one.
type Growth struct {
	ViewsGrowth     float64
	InquiriesGrowth float64
	OrdersGrowth    float64
	RevenueGrowth   float64
}

// ChartPoint is one day of the dashboard series.
type ChartPoint struct {
	Date           time.Time
	Views          int64
	Inquiries      int64
	Orders         int64
	RevenueHalalas int64
}

type ListingSummary struct {
	ID           uuid.UUID
	Title        string
	TitleEn      *string
	ViewCount    int64
	PriceHalalas int64
	ImageURL     *string
}

type OrderSummary struct {
	ID           uuid.UUID
	OrderNumber  string
	BuyerName    string
	ItemCount    int64
	TotalHalalas int64
	Status       enums.OrderStatus
	CreatedAt    time.Time
}

type SellerOverview struct {
	ActiveListings int64
	AverageRating  float64
	TotalReviews   int64
	TotalSales     int64
	IsVerified     bool
}
