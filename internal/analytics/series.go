package analytics

import "time"

// BuildSeries returns exactly days points in ascending order ending on today's calendar day.
// Days without a record are zero-filled. Records are matched by calendar day, so the
// time-of-day part of a record's Date is ignored.
func BuildSeries(days int, today time.Time, records []DailyMetricRecord) []ChartPoint {
	if days <= 0 {
		return []ChartPoint{}
	}

	byDay := make(map[string]DailyMetricRecord, len(records))
	for _, r := range records {
		key := DayKey(r.Date)
		acc := byDay[key]
		acc.Views += r.Views
		acc.Inquiries += r.Inquiries
		acc.Orders += r.Orders
		acc.RevenueHalalas += r.RevenueHalalas
		byDay[key] = acc
	}

	anchor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	points := make([]ChartPoint, days)
	for i := 0; i < days; i++ {
		day := anchor.AddDate(0, 0, i-(days-1))
		r := byDay[DayKey(day)]
		points[i] = ChartPoint{
			Date:           day,
			Views:          r.Views,
			Inquiries:      r.Inquiries,
			Orders:         r.Orders,
			RevenueHalalas: r.RevenueHalalas,
		}
	}
	return points
}
