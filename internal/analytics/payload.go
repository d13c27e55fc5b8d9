package analytics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
	"github.com/qitaat/seller-dashboard-backend/pkg/money"
)

// DashboardPayload is the response body of the seller dashboard endpoint.
type DashboardPayload struct {
	Overview     OverviewDTO      `json:"overview"`
	Growth       GrowthDTO        `json:"growth"`
	ChartData    []ChartPointDTO  `json:"chart_data"`
	TopListings  []TopListingDTO  `json:"top_listings"`
	RecentOrders []RecentOrderDTO `json:"recent_orders"`
	Period       PeriodDTO        `json:"period"`
}

type OverviewDTO struct {
	TotalViews          int64           `json:"total_views"`
	TotalInquiries      int64           `json:"total_inquiries"`
	TotalOrders         int64           `json:"total_orders"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalRevenueHalalas int64           `json:"total_revenue_halalas"`
	TotalNewListings    int64           `json:"total_new_listings"`
	UniqueCustomers     int64           `json:"unique_customers"`
	ActiveListings      int64           `json:"active_listings"`
	AverageRating       float64         `json:"average_rating"`
	TotalReviews        int64           `json:"total_reviews"`
	TotalSales          int64           `json:"total_sales"`
	IsVerified          bool            `json:"is_verified"`
	Currency            enums.Currency  `json:"currency"`
}

type GrowthDTO struct {
	ViewsGrowth     float64 `json:"views_growth"`
	InquiriesGrowth float64 `json:"inquiries_growth"`
	OrdersGrowth    float64 `json:"orders_growth"`
	RevenueGrowth   float64 `json:"revenue_growth"`
}

type ChartPointDTO struct {
	Date      string          `json:"date"`
	Views     int64           `json:"views"`
	Inquiries int64           `json:"inquiries"`
	Orders    int64           `json:"orders"`
	Revenue   decimal.Decimal `json:"revenue"`
}

type TopListingDTO struct {
	ID      uuid.UUID       `json:"id"`
	Title   string          `json:"title"`
	TitleEn *string         `json:"title_en,omitempty"`
	Views   int64           `json:"views"`
	Price   decimal.Decimal `json:"price"`
	Image   *string         `json:"image,omitempty"`
}

type RecentOrderDTO struct {
	ID          uuid.UUID         `json:"id"`
	OrderNumber string            `json:"order_number"`
	BuyerName   string            `json:"buyer_name"`
	Items       int64             `json:"items"`
	Total       decimal.Decimal   `json:"total"`
	Status      enums.OrderStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

type PeriodDTO struct {
	StartDate time.Time             `json:"start_date"`
	EndDate   time.Time             `json:"end_date"`
	Period    enums.DashboardPeriod `json:"period"`
	Days      int                   `json:"days"`
}

// dashboardInputs is everything the fan-out gathers for one request.
type dashboardInputs struct {
	current  []DailyMetricRecord
	previous []DailyMetricRecord
	listings []ListingSummary
	orders   []OrderSummary
	overview SellerOverview
}

// BuildPayload assembles the response from already fetched data. It performs no I/O.
func BuildPayload(period Period, in dashboardInputs) *DashboardPayload {
	current := Accumulate(in.current)
	previous := Accumulate(in.previous)
	growth := ComputeGrowth(current, previous)

	series := BuildSeries(period.Days, period.Today, in.current)
	chart := make([]ChartPointDTO, len(series))
	for i, p := range series {
		chart[i] = ChartPointDTO{
			Date:      DayKey(p.Date),
			Views:     p.Views,
			Inquiries: p.Inquiries,
			Orders:    p.Orders,
			Revenue:   money.FromHalalas(p.RevenueHalalas),
		}
	}

	listings := make([]TopListingDTO, len(in.listings))
	for i, l := range in.listings {
		listings[i] = TopListingDTO{
			ID:      l.ID,
			Title:   l.Title,
			TitleEn: l.TitleEn,
			Views:   l.ViewCount,
			Price:   money.FromHalalas(l.PriceHalalas),
			Image:   l.ImageURL,
		}
	}

	orders := make([]RecentOrderDTO, len(in.orders))
	for i, o := range in.orders {
		orders[i] = RecentOrderDTO{
			ID:          o.ID,
			OrderNumber: o.OrderNumber,
			BuyerName:   o.BuyerName,
			Items:       o.ItemCount,
			Total:       money.FromHalalas(o.TotalHalalas),
			Status:      o.Status,
			CreatedAt:   o.CreatedAt.UTC(),
		}
	}

	return &DashboardPayload{
		Overview: OverviewDTO{
			TotalViews:          current.Views,
			TotalInquiries:      current.Inquiries,
			TotalOrders:         current.Orders,
			TotalRevenue:        money.FromHalalas(current.RevenueHalalas),
			TotalRevenueHalalas: current.RevenueHalalas,
			TotalNewListings:    current.NewListings,
			UniqueCustomers:     current.UniqueCustomers,
			ActiveListings:      in.overview.ActiveListings,
			AverageRating:       in.overview.AverageRating,
			TotalReviews:        in.overview.TotalReviews,
			TotalSales:          in.overview.TotalSales,
			IsVerified:          in.overview.IsVerified,
			Currency:            enums.CurrencySAR,
		},
		Growth: GrowthDTO{
			ViewsGrowth:     growth.ViewsGrowth,
			InquiriesGrowth: growth.InquiriesGrowth,
			OrdersGrowth:    growth.OrdersGrowth,
			RevenueGrowth:   growth.RevenueGrowth,
		},
		ChartData:    chart,
		TopListings:  listings,
		RecentOrders: orders,
		Period: PeriodDTO{
			StartDate: period.Start,
			EndDate:   period.End,
			Period:    period.Selector,
			Days:      period.Days,
		},
	}
}
