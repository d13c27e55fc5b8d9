package enums

import "fmt"

// SellerEventType is a tracked interaction that moves a seller's daily counters.
type SellerEventType string

const (
	SellerEventView       SellerEventType = "view"
	SellerEventInquiry    SellerEventType = "inquiry"
	SellerEventOrder      SellerEventType = "order"
	SellerEventNewListing SellerEventType = "new_listing"
)

var validSellerEventTypes = []SellerEventType{
	SellerEventView,
	SellerEventInquiry,
	SellerEventOrder,
	SellerEventNewListing,
}

func (s SellerEventType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SellerEventType.
func (s SellerEventType) IsValid() bool {
	for _, candidate := range validSellerEventTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSellerEventType converts raw input into a SellerEventType.
func ParseSellerEventType(value string) (SellerEventType, error) {
	for _, candidate := range validSellerEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid seller event type %q", value)
}
