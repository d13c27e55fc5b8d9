package sellers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qitaat/seller-dashboard-backend/internal/repo"
	"github.com/qitaat/seller-dashboard-backend/pkg/db/models"
)

var ErrSellerNotFound = errors.New("seller not found")

type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error)
}

type repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByUserID returns the storefront owned by userID.
func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.Seller, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *repository) first(ctx context.Context, cond string, arg uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.DB(ctx).Where(cond, arg.String()).Take(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSellerNotFound
		}
		return nil, err
	}
	return &seller, nil
}
