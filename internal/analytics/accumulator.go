package analytics

import "fmt"

// Accumulate sums every counter across records. Order does not matter and an empty
// slice yields zero totals.
func Accumulate(records []DailyMetricRecord) PeriodTotals {
	var totals PeriodTotals
	for _, r := range records {
		totals.Views += r.Views
		totals.Inquiries += r.Inquiries
		totals.Orders += r.Orders
		totals.RevenueHalalas += r.RevenueHalalas
		totals.NewListings += r.NewListings
		totals.UniqueCustomers += r.UniqueCustomers
	}
	return totals
}

// ValidateRecords rejects rows with a zero date or a negative counter.
func ValidateRecords(records []DailyMetricRecord) error {
	for i, r := range records {
		if r.Date.IsZero() {
			return fmt.Errorf("%w: record %d has no date", ErrMalformedRecord, i)
		}
		if r.Views < 0 || r.Inquiries < 0 || r.Orders < 0 || r.RevenueHalalas < 0 ||
			r.NewListings < 0 || r.UniqueCustomers < 0 {
			return fmt.Errorf("%w: negative counter on %s", ErrMalformedRecord, DayKey(r.Date))
		}
	}
	return nil
}
