package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberWidth(t *testing.T) {
	cases := []struct {
		rangeSize int
		width     int
	}{
		{10, 1},
		{100, 2},
		{1000, 3},
		{37, 2},
		{2, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.width, NumberWidth(tc.rangeSize), "rangeSize %d", tc.rangeSize)
	}
}

func TestFormatWinningNumber(t *testing.T) {
	got, err := FormatWinningNumber("32", 1000)
	require.NoError(t, err)
	assert.Equal(t, "032", got)

	got, err = FormatWinningNumber("0", 1000)
	require.NoError(t, err)
	assert.Equal(t, "000", got)

	got, err = FormatWinningNumber("999", 1000)
	require.NoError(t, err)
	assert.Equal(t, "999", got)

	got, err = FormatWinningNumber("7", 100)
	require.NoError(t, err)
	assert.Equal(t, "07", got)

	// Already padded input normalizes to the same value
	got, err = FormatWinningNumber("032", 1000)
	require.NoError(t, err)
	assert.Equal(t, "032", got)
}

func TestFormatWinningNumber_Rejections(t *testing.T) {
	_, err := FormatWinningNumber("1000", 1000)
	assert.Error(t, err, "upper bound is exclusive")

	_, err = FormatWinningNumber("-1", 1000)
	assert.Error(t, err)

	_, err = FormatWinningNumber("abc", 1000)
	assert.Error(t, err)

	_, err = FormatWinningNumber("", 1000)
	assert.Error(t, err)
}

func TestParseDrawTime(t *testing.T) {
	hour, minute, err := ParseDrawTime("19:05")
	require.NoError(t, err)
	assert.Equal(t, 19, hour)
	assert.Equal(t, 5, minute)

	_, _, err = ParseDrawTime("25:00")
	assert.Error(t, err)

	_, _, err = ParseDrawTime("19:61")
	assert.Error(t, err)

	_, _, err = ParseDrawTime("")
	assert.Error(t, err)
}

func TestAtTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Caracas")
	require.NoError(t, err)
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, loc)

	got, err := AtTime(date, "19:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 19, 0, 0, 0, loc), got)
	assert.Equal(t, loc, got.Location(), "slot keeps the date's location")

	_, err = AtTime(date, "bad")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Caracas")
	require.NoError(t, err)
	in := time.Date(2026, 3, 14, 18, 42, 7, 123, loc)

	got := StartOfDay(in)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, loc), got)
}
