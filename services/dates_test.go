package services

import (
	"testing"
	"time"

	"stayhub/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("15/01/2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDate("2026-01-15")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidFormat))
}

func TestParseStayRange(t *testing.T) {
	checkIn, checkOut, err := ParseStayRange("10/01/2026", "12/01/2026")
	require.NoError(t, err)
	assert.True(t, checkOut.After(checkIn))

	// Cùng ngày nghĩa là 0 đêm, không phải một kỳ lưu trú
	_, _, err = ParseStayRange("10/01/2026", "10/01/2026")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidDateRange))

	_, _, err = ParseStayRange("12/01/2026", "10/01/2026")
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidDateRange))
}

func TestNightsBetween(t *testing.T) {
	nights := NightsBetween(mustDate(t, "10/01/2026"), mustDate(t, "13/01/2026"))
	require.Len(t, nights, 3)
	assert.Equal(t, mustDate(t, "10/01/2026"), nights[0])
	assert.Equal(t, mustDate(t, "12/01/2026"), nights[2])
}

func TestDaysInclusive(t *testing.T) {
	days := DaysInclusive(mustDate(t, "10/01/2026"), mustDate(t, "12/01/2026"))
	require.Len(t, days, 3)
	assert.Equal(t, mustDate(t, "12/01/2026"), days[2])

	single := DaysInclusive(mustDate(t, "10/01/2026"), mustDate(t, "10/01/2026"))
	assert.Len(t, single, 1)
}

func TestDayNormalizesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	local := time.Date(2026, 1, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), Day(local))
}
