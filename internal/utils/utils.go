package utils

import (
	"fmt"
	"strconv"
	"time"
)

// NumberWidth returns the digit width winning numbers are padded to for a
// game with the given range size (e.g. rangeSize 1000 -> width 3, "032").
func NumberWidth(rangeSize int) int {
	width := len(strconv.Itoa(rangeSize - 1))
	if width < 1 {
		width = 1
	}
	return width
}

// FormatWinningNumber validates that number is a decimal within
// [0, rangeSize) and returns it zero-padded to the range's digit width.
func FormatWinningNumber(number string, rangeSize int) (string, error) {
	n, err := strconv.Atoi(number)
	if err != nil {
		return "", fmt.Errorf("winning number %q is not numeric", number)
	}
	if n < 0 || n >= rangeSize {
		return "", fmt.Errorf("winning number %d outside range [0, %d)", n, rangeSize)
	}
	return fmt.Sprintf("%0*d", NumberWidth(rangeSize), n), nil
}

// ParseDrawTime validates an "HH:MM" schedule slot.
func ParseDrawTime(slot string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid draw time %q (want HH:MM)", slot)
	}
	return t.Hour(), t.Minute(), nil
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// AtTime returns the timestamp on date's day at the given "HH:MM" slot.
func AtTime(date time.Time, slot string) (time.Time, error) {
	hour, minute, err := ParseDrawTime(slot)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}
