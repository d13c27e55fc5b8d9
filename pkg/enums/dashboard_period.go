package enums

import (
	"fmt"
	"strings"
)

// DashboardPeriod selects the reporting window of the seller dashboard.
type DashboardPeriod string

const (
	DashboardPeriod7D  DashboardPeriod = "7d"
	DashboardPeriod30D DashboardPeriod = "30d"
	DashboardPeriod90D DashboardPeriod = "90d"
	DashboardPeriod1Y  DashboardPeriod = "1y"

	DefaultDashboardPeriod = DashboardPeriod7D
)

var dashboardPeriodDays = map[DashboardPeriod]int{
	DashboardPeriod7D:  7,
	DashboardPeriod30D: 30,
	DashboardPeriod90D: 90,
	DashboardPeriod1Y:  365,
}

var validDashboardPeriods = []DashboardPeriod{
	DashboardPeriod7D,
	DashboardPeriod30D,
	DashboardPeriod90D,
	DashboardPeriod1Y,
}

func (p DashboardPeriod) String() string {
	return string(p)
}

func (p DashboardPeriod) IsValid() bool {
	_, ok := dashboardPeriodDays[p]
	return ok
}

// Days returns the number of calendar days covered by the period, or 0 when unknown.
func (p DashboardPeriod) Days() int {
	return dashboardPeriodDays[p]
}

// ParseDashboardPeriod maps a raw selector to a period. An empty selector yields the default.
func ParseDashboardPeriod(value string) (DashboardPeriod, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DefaultDashboardPeriod, nil
	}
	for _, candidate := range validDashboardPeriods {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dashboard period %q", value)
}

// DashboardPeriods lists the accepted selectors in ascending length.
func DashboardPeriods() []DashboardPeriod {
	out := make([]DashboardPeriod, len(validDashboardPeriods))
	copy(out, validDashboardPeriods)
	return out
}
