package analytics

// GrowthRate is the percent change from previous to current.
// A zero baseline reports 100 when current is positive and 0 otherwise.
func GrowthRate(current, previous int64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

func ComputeGrowth(current, previous PeriodTotals) Growth {
	return Growth{
		ViewsGrowth:     GrowthRate(current.Views, previous.Views),
		InquiriesGrowth: GrowthRate(current.Inquiries, previous.Inquiries),
		OrdersGrowth:    GrowthRate(current.Orders, previous.Orders),
		RevenueGrowth:   GrowthRate(current.RevenueHalalas, previous.RevenueHalalas),
	}
}
