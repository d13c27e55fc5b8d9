package sellers

import (
	"math"
	"strings"

	"github.com/qitaat/seller-dashboard-backend/pkg/db/models"
)

const (
	verifiedWeight   = 40
	ratingWeight     = 30
	completionWeight = 0.2
	salesWeight      = 10
	salesCap         = 100
	maxRating        = 5
)

// ProfileCompletion is the share of optional storefront fields that are filled, as a whole percent rounded down.
// The store name always counts.
func ProfileCompletion(seller models.Seller) int {
	fields := []bool{
		strings.TrimSpace(seller.StoreName) != "",
		filled(seller.StoreNameEn),
		filled(seller.Description),
		filled(seller.LogoURL),
		filled(seller.BannerURL),
		filled(seller.Phone),
		filled(seller.Email),
		filled(seller.City),
		filled(seller.CommercialRegistration),
		filled(seller.VATNumber),
	}
	done := 0
	for _, ok := range fields {
		if ok {
			done++
		}
	}
	return done * 100 / len(fields)
}

// TrustScore blends verification, rating, completion and sales volume into 0..100.
func TrustScore(seller models.Seller, completion int) int {
	score := 0.0
	if seller.IsVerified {
		score += verifiedWeight
	}
	rating := math.Max(0, math.Min(seller.Rating, maxRating))
	score += rating / maxRating * ratingWeight
	score += float64(clamp(completion, 0, 100)) * completionWeight
	score += float64(min(max(seller.TotalSales, 0), salesCap)) / salesCap * salesWeight
	return clamp(int(math.Floor(score)), 0, 100)
}

func filled(v *string) bool {
	return v != nil && strings.TrimSpace(*v) != ""
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
