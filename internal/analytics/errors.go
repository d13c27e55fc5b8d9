package analytics

import "errors"

var (
	// ErrSellerNotFound is returned when the seller id does not resolve to a seller.
	ErrSellerNotFound = errors.New("seller not found")
	// ErrInvalidPeriod is returned for a period selector outside 7d, 30d, 90d and 1y.
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrDataFetch is returned when any dashboard data source fails or times out.
	ErrDataFetch = errors.New("dashboard data fetch failed")
	// ErrMalformedRecord is returned for a daily metric row with a negative counter or no date.
	ErrMalformedRecord = errors.New("malformed daily metric record")
)
