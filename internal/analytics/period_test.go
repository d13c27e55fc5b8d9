package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qitaat/seller-dashboard-backend/pkg/enums"
	pkgerrors "github.com/qitaat/seller-dashboard-backend/pkg/errors"
)

func riyadh(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Riyadh")
	require.NoError(t, err)
	return loc
}

func TestResolvePeriodSevenDays(t *testing.T) {
	now := time.Date(2024, 12, 16, 18, 0, 0, 0, time.UTC)

	p, err := ResolvePeriod("7d", now, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, enums.DashboardPeriod7D, p.Selector)
	assert.Equal(t, 7, p.Days)
	assert.Equal(t, time.Date(2024, 12, 16, 0, 0, 0, 0, time.UTC), p.Today)
	assert.Equal(t, time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, 12, 16, 23, 59, 59, int(999*time.Millisecond), time.UTC), p.End)
	assert.Equal(t, time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC), p.PrevStart)
	assert.Equal(t, time.Date(2024, 12, 9, 23, 59, 59, int(999*time.Millisecond), time.UTC), p.PrevEnd)
}

func TestResolvePeriodUsesLocationForCalendarDay(t *testing.T) {
	loc := riyadh(t)
	// 22:00Z on the 16th is already 01:00 on the 17th in Riyadh.
	now := time.Date(2024, 12, 16, 22, 0, 0, 0, time.UTC)

	p, err := ResolvePeriod("7d", now, loc)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-17", DayKey(p.Today))
	assert.Equal(t, "2024-12-11", DayKey(p.Start))
	assert.Equal(t, loc, p.Start.Location())
}

func TestResolvePeriodWindowsNeverOverlap(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	for _, selector := range enums.DashboardPeriods() {
		p, err := ResolvePeriod(string(selector), now, riyadh(t))
		require.NoError(t, err)

		assert.True(t, p.PrevEnd.Before(p.Start), "%s: prevEnd must precede start", selector)
		assert.True(t, p.PrevStart.Before(p.PrevEnd), "%s: previous window must be non-empty", selector)
		assert.Equal(t, p.Days, int(p.Start.Sub(p.PrevStart).Hours()/24), "%s: windows must be equally long", selector)
		assert.Equal(t, selector.Days(), p.Days)
	}
}

func TestResolvePeriodDefaultsEmptySelector(t *testing.T) {
	p, err := ResolvePeriod("", time.Now(), time.UTC)
	require.NoError(t, err)
	assert.Equal(t, enums.DashboardPeriod7D, p.Selector)
}

func TestResolvePeriodRejectsUnknownSelector(t *testing.T) {
	_, err := ResolvePeriod("14d", time.Now(), time.UTC)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPeriod))
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}
