package tracking

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
)

var (
	ErrInvalidEvent    = errors.New("invalid seller event")
	ErrSellerNotFound  = errors.New("seller not found")
	ErrListingNotFound = errors.New("listing not found for seller")
)

// Event is one interaction that moves a seller's daily counters.
type Event struct {
	SellerID      uuid.UUID
	Type          enums.SellerEventType
	OccurredAt    time.Time
	ListingID     *uuid.UUID
	AmountHalalas int64
}

// Validate checks the event shape. It does not touch storage.
func (e Event) Validate() error {
	if e.SellerID == uuid.Nil {
		return fmt.Errorf("%w: seller_id is required", ErrInvalidEvent)
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, e.Type)
	}
	if e.AmountHalalas < 0 {
		return fmt.Errorf("%w: amount_halalas must be non-negative", ErrInvalidEvent)
	}
	if e.Type != enums.SellerEventOrder && e.AmountHalalas != 0 {
		return fmt.Errorf("%w: amount_halalas only applies to %s events", ErrInvalidEvent, enums.SellerEventOrder)
	}
	if e.ListingID != nil && *e.ListingID == uuid.Nil {
		return fmt.Errorf("%w: listing_id must not be the nil uuid", ErrInvalidEvent)
	}
	return nil
}

// MetricDelta is the increment an event applies to its day's row.
type MetricDelta struct {
	Views          int64
	Inquiries      int64
	Orders         int64
	RevenueHalalas int64
	NewListings    int64
}

func DeltaFor(e Event) MetricDelta {
	switch e.Type {
	case enums.SellerEventView:
		return MetricDelta{Views: 1}
	case enums.SellerEventInquiry:
		return MetricDelta{Inquiries: 1}
	case enums.SellerEventOrder:
		return MetricDelta{Orders: 1, RevenueHalalas: e.AmountHalalas}
	case enums.SellerEventNewListing:
		return MetricDelta{NewListings: 1}
	default:
		return MetricDelta{}
	}
}
