package enums

import "testing"

func TestParseDashboardPeriod(t *testing.T) {
	tests := []struct {
		raw     string
		want    DashboardPeriod
		days    int
		wantErr bool
	}{
		{raw: "", want: DashboardPeriod7D, days: 7},
		{raw: "7d", want: DashboardPeriod7D, days: 7},
		{raw: "30d", want: DashboardPeriod30D, days: 30},
		{raw: "90d", want: DashboardPeriod90D, days: 90},
		{raw: "1y", want: DashboardPeriod1Y, days: 365},
		{raw: " 30d ", want: DashboardPeriod30D, days: 30},
		{raw: "2w", wantErr: true},
		{raw: "7D", wantErr: true},
		{raw: "365d", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDashboardPeriod(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tt.raw, err)
		}
		if got != tt.want || got.Days() != tt.days {
			t.Fatalf("%q: expected %s/%d got %s/%d", tt.raw, tt.want, tt.days, got, got.Days())
		}
	}
}

func TestDashboardPeriodUnknownDays(t *testing.T) {
	if DashboardPeriod("2w").Days() != 0 {
		t.Fatal("unknown period should report zero days")
	}
	if DashboardPeriod("2w").IsValid() {
		t.Fatal("unknown period should be invalid")
	}
	if len(DashboardPeriods()) != 4 {
		t.Fatal("expected four selectors")
	}
}
