package models

import (
	"time"

	"github.com/google/uuid"
)

// SellerDailyMetric holds one seller's counters for one calendar day.
// (seller_id, date) is unique; writers upsert and increment in place.
type SellerDailyMetric struct {
	ID              uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID        uuid.UUID `gorm:"column:seller_id;type:uuid;not null"`
	Date            time.Time `gorm:"column:date;type:date;not null"`
	Views           int64     `gorm:"column:views;not null;default:0"`
	Inquiries       int64     `gorm:"column:inquiries;not null;default:0"`
	Orders          int64     `gorm:"column:orders;not null;default:0"`
	RevenueHalalas  int64     `gorm:"column:revenue_halalas;not null;default:0"`
	NewListings     int64     `gorm:"column:new_listings;not null;default:0"`
	UniqueCustomers int64     `gorm:"column:unique_customers;not null;default:0"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (SellerDailyMetric) TableName() string { return "seller_daily_metrics" }
