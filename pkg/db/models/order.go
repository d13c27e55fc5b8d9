package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
)

type Order struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber  string            `gorm:"column:order_number;not null"`
	SellerID     uuid.UUID         `gorm:"column:seller_id;type:uuid;not null"`
	BuyerID      uuid.UUID         `gorm:"column:buyer_id;type:uuid;not null"`
	BuyerName    string            `gorm:"column:buyer_name;not null"`
	ItemCount    int64             `gorm:"column:item_count;not null;default:1"`
	TotalHalalas int64             `gorm:"column:total_halalas;not null"`
	Status       enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string { return "orders" }
