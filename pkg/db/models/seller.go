package models

import (
	"time"

	"github.com/google/uuid"
)

// Seller is a marketplace storefront owned by a single user account.
type Seller struct {
	ID                     uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID                 uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	StoreName              string    `gorm:"column:store_name;not null"`
	StoreNameEn            *string   `gorm:"column:store_name_en"`
	Description            *string   `gorm:"column:description"`
	LogoURL                *string   `gorm:"column:logo_url"`
	BannerURL              *string   `gorm:"column:banner_url"`
	Phone                  *string   `gorm:"column:phone"`
	Email                  *string   `gorm:"column:email"`
	City                   *string   `gorm:"column:city"`
	CommercialRegistration *string   `gorm:"column:commercial_registration"`
	VATNumber              *string   `gorm:"column:vat_number"`
	IsVerified             bool      `gorm:"column:is_verified;not null;default:false"`
	Rating                 float64   `gorm:"column:rating;type:numeric(3,2);not null;default:0"`
	TotalReviews           int64     `gorm:"column:total_reviews;not null;default:0"`
	TotalSales             int64     `gorm:"column:total_sales;not null;default:0"`
	CreatedAt              time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Seller) TableName() string { return "sellers" }
