package sellers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/qitaat/seller-dashboard-backend/pkg/errors"
)

// Profile is the storefront view returned to the seller, with derived scores.
type Profile struct {
	ID                     uuid.UUID `json:"id"`
	StoreName              string    `json:"store_name"`
	StoreNameEn            *string   `json:"store_name_en,omitempty"`
	Description            *string   `json:"description,omitempty"`
	LogoURL                *string   `json:"logo_url,omitempty"`
	BannerURL              *string   `json:"banner_url,omitempty"`
	Phone                  *string   `json:"phone,omitempty"`
	Email                  *string   `json:"email,omitempty"`
	City                   *string   `json:"city,omitempty"`
	CommercialRegistration *string   `json:"commercial_registration,omitempty"`
	VATNumber              *string   `json:"vat_number,omitempty"`
	IsVerified             bool      `json:"is_verified"`
	Rating                 float64   `json:"rating"`
	TotalReviews           int64     `json:"total_reviews"`
	TotalSales             int64     `json:"total_sales"`
	ProfileCompletion      int       `json:"profile_completion"`
	TrustScore             int       `json:"trust_score"`
	CreatedAt              time.Time `json:"created_at"`
}

type Service interface {
	Profile(ctx context.Context, sellerID uuid.UUID) (*Profile, error)
	SellerIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("sellers repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Profile(ctx context.Context, sellerID uuid.UUID) (*Profile, error) {
	seller, err := s.repo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, mapError(err)
	}
	completion := ProfileCompletion(*seller)
	return &Profile{
		ID:                     seller.ID,
		StoreName:              seller.StoreName,
		StoreNameEn:            seller.StoreNameEn,
		Description:            seller.Description,
		LogoURL:                seller.LogoURL,
		BannerURL:              seller.BannerURL,
		Phone:                  seller.Phone,
		Email:                  seller.Email,
		City:                   seller.City,
		CommercialRegistration: seller.CommercialRegistration,
		VATNumber:              seller.VATNumber,
		IsVerified:             seller.IsVerified,
		Rating:                 seller.Rating,
		TotalReviews:           seller.TotalReviews,
		TotalSales:             seller.TotalSales,
		ProfileCompletion:      completion,
		TrustScore:             TrustScore(*seller, completion),
		CreatedAt:              seller.CreatedAt.UTC(),
	}, nil
}

// SellerIDForUser resolves the storefront of a token that carries no seller_id claim.
func (s *service) SellerIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	seller, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return uuid.Nil, mapError(err)
	}
	return seller.ID, nil
}

func mapError(err error) error {
	if errors.Is(err, ErrSellerNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "seller not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to load seller")
}
