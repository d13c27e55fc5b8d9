package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
)

type Listing struct {
	ID           uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID     uuid.UUID           `gorm:"column:seller_id;type:uuid;not null"`
	Title        string              `gorm:"column:title;not null"`
	TitleEn      *string             `gorm:"column:title_en"`
	PriceHalalas int64               `gorm:"column:price_halalas;not null"`
	Status       enums.ListingStatus `gorm:"column:status;not null;default:'draft'"`
	ViewCount    int64               `gorm:"column:view_count;not null;default:0"`
	ImageURL     *string             `gorm:"column:image_url"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Listing) TableName() string { return "listings" }
