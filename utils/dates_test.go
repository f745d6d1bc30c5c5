package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"totalhub-web/utils"
)

func TestParseDate(t *testing.T) {
	d, err := utils.ParseDate("2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", utils.FormatDate(d))

	// ISO timestamps from the backend keep only the day.
	d, err = utils.ParseDate("2025-06-01T00:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", utils.FormatDate(d))

	_, err = utils.ParseDate("june 1st")
	assert.Error(t, err)
}

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestNightsBetween_EndExclusive(t *testing.T) {
	nights := utils.NightsBetween(mustDay(t, "2025-06-01"), mustDay(t, "2025-06-03"))
	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, nights)

	assert.Nil(t, utils.NightsBetween(mustDay(t, "2025-06-03"), mustDay(t, "2025-06-01")))
	assert.Nil(t, utils.NightsBetween(mustDay(t, "2025-06-01"), mustDay(t, "2025-06-01")))
}

func TestDaysInclusive(t *testing.T) {
	days := utils.DaysInclusive(mustDay(t, "2025-06-01"), mustDay(t, "2025-06-03"))
	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"}, days)

	// Single-day bulk range targets exactly that day.
	days = utils.DaysInclusive(mustDay(t, "2025-06-01"), mustDay(t, "2025-06-01"))
	assert.Equal(t, []string{"2025-06-01"}, days)

	assert.Nil(t, utils.DaysInclusive(mustDay(t, "2025-06-02"), mustDay(t, "2025-06-01")))
}
