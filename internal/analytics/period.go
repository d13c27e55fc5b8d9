package analytics

import (
	"fmt"
	"time"

	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
	pkgerrors "github.com/qitaat/seller-dashboard-backend/pkg/errors"
)

const dayKeyLayout = "2006-01-02"

// Period is a resolved reporting window plus the equally long window before it.
type Period struct {
	Selector  enums.DashboardPeriod
	Days      int
	Today     time.Time
	Start     time.Time
	End       time.Time
	PrevStart time.Time
	PrevEnd   time.Time
}

// ResolvePeriod turns a selector into calendar-day bounds in loc. The current window is the
// `days` calendar days ending today; the previous window is the `days` days before it.
func ResolvePeriod(selector string, now time.Time, loc *time.Location) (Period, error) {
	parsed, err := enums.ParseDashboardPeriod(selector)
	if err != nil {
		return Period{}, pkgerrors.Wrap(pkgerrors.CodeValidation, fmt.Errorf("%w: %q", ErrInvalidPeriod, selector), "invalid period").
			WithDetails(map[string]any{"period": selector, "allowed": enums.DashboardPeriods()})
	}
	if loc == nil {
		loc = time.UTC
	}

	days := parsed.Days()
	today := StartOfDay(now, loc)
	start := today.AddDate(0, 0, -(days - 1))
	end := today.AddDate(0, 0, 1).Add(-time.Millisecond)
	prevStart := start.AddDate(0, 0, -days)

	return Period{
		Selector:  parsed,
		Days:      days,
		Today:     today,
		Start:     start,
		End:       end,
		PrevStart: prevStart,
		PrevEnd:   start.Add(-time.Millisecond),
	}, nil
}

// StartOfDay returns local midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayKey formats t's calendar day in its own location.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}
