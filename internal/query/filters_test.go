package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/occulog/occulog/internal/models"
)

func get(t *testing.T, fs *models.FilterSet, key string) string {
	t.Helper()
	v, ok := fs.Get(key)
	require.True(t, ok, "expected filter %q", key)
	return v
}

func TestExtractDateAndCity(t *testing.T) {
	fs := ExtractFilters("wifi count in kalwa on 2025-06-14")

	require.Equal(t, 2, fs.Len())
	assert.Equal(t, "2025-06-14", get(t, fs, models.FilterRecordDate))
	assert.Equal(t, "KALWA", get(t, fs, models.FilterLocationCode))
}

func TestExtractTimeSlotOwnsItsTimes(t *testing.T) {
	fs := ExtractFilters("usage in the 01:45 - 02:00 slot")

	assert.Equal(t, "01:45-02:00", get(t, fs, models.FilterTimeSlot))
	_, hasTime := fs.Get(models.FilterTime)
	assert.False(t, hasTime, "slot boundary times must not become a time filter")
}

func TestExtractStandaloneTime(t *testing.T) {
	fs := ExtractFilters("access count at 9:30:00 please")
	assert.Equal(t, "9:30:00", get(t, fs, models.FilterTime))
}

func TestExtractTimeNextToSlot(t *testing.T) {
	fs := ExtractFilters("compare 7:15 against the 01:45-02:00 slot")

	assert.Equal(t, "7:15", get(t, fs, models.FilterTime))
	assert.Equal(t, "01:45-02:00", get(t, fs, models.FilterTimeSlot))
}

func TestExtractFloor(t *testing.T) {
	fs := ExtractFilters("people on the ground floor today")
	assert.Equal(t, "Ground Floor", get(t, fs, models.FilterFloor))
}

func TestExtractSiteDayAndType(t *testing.T) {
	fs := ExtractFilters("tech park on monday, was it a weekday?")

	assert.Equal(t, "Tech Park", get(t, fs, models.FilterSiteDetails))
	assert.Equal(t, "Monday", get(t, fs, models.FilterDayOfWeek))
	assert.Equal(t, "Weekday", get(t, fs, models.FilterDayType))
}

func TestExtractNothing(t *testing.T) {
	fs := ExtractFilters("how busy was it yesterday evening")
	assert.True(t, fs.Empty())
}

func TestExtractorsFireIndependently(t *testing.T) {
	fs := ExtractFilters("mumbai admin block on 2025-01-02 at 10:00 on sunday weekend")

	assert.Equal(t, "MUMBAI", get(t, fs, models.FilterLocationCode))
	assert.Equal(t, "Admin Block", get(t, fs, models.FilterSiteDetails))
	assert.Equal(t, "2025-01-02", get(t, fs, models.FilterRecordDate))
	assert.Equal(t, "10:00", get(t, fs, models.FilterTime))
	assert.Equal(t, "Sunday", get(t, fs, models.FilterDayOfWeek))
	assert.Equal(t, "Weekend", get(t, fs, models.FilterDayType))
}
