// Package datetime provides year-month parsing and manipulation utilities.
package datetime

import (
	"time"

	"github.com/marginlens/marginlens/pkg/constants"
)

const (
	// MonthLayout is the year-month format expected in snapshot records and is
	// also the output date format.
	MonthLayout = constants.MonthLayout
)

// MustParseMonth parses a year-month string and panics on error.
// This is intended for use in tests where the month string is known to be valid.
func MustParseMonth(month string) time.Time {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		panic(err)
	}
	return t
}

// ValidMonth reports whether the given string is a parseable year-month.
func ValidMonth(month string) bool {
	_, err := time.Parse(MonthLayout, month)
	return err == nil
}

// OffsetMonth returns the string-formatted month offset by the given number of
// months relative to the given month.
func OffsetMonth(month string, months int) (string, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return month, err
	}
	return t.AddDate(0, months, 0).Format(MonthLayout), nil
}

// MonthBeforeMonth returns true if firstMonth is strictly before secondMonth.
func MonthBeforeMonth(firstMonth string, secondMonth string) (bool, error) {
	firstT, err := time.Parse(MonthLayout, firstMonth)
	if err != nil {
		return false, err
	}
	secondT, err := time.Parse(MonthLayout, secondMonth)
	if err != nil {
		return false, err
	}
	return firstT.Before(secondT), nil
}

// MonthsBetween returns the inclusive count of calendar months from firstMonth
// through lastMonth. Returns 0 when lastMonth precedes firstMonth.
func MonthsBetween(firstMonth string, lastMonth string) (int, error) {
	firstT, err := time.Parse(MonthLayout, firstMonth)
	if err != nil {
		return 0, err
	}
	lastT, err := time.Parse(MonthLayout, lastMonth)
	if err != nil {
		return 0, err
	}
	if lastT.Before(firstT) {
		return 0, nil
	}
	months := (lastT.Year()-firstT.Year())*constants.MonthsPerYear + int(lastT.Month()) - int(firstT.Month())
	return months + 1, nil
}

// MonthRange expands the inclusive contiguous calendar range from firstMonth
// through lastMonth into a sorted slice of year-month strings.
func MonthRange(firstMonth string, lastMonth string) ([]string, error) {
	count, err := MonthsBetween(firstMonth, lastMonth)
	if err != nil {
		return nil, err
	}
	months := make([]string, 0, count)
	current := firstMonth
	for i := 0; i < count; i++ {
		months = append(months, current)
		current, err = OffsetMonth(current, 1)
		if err != nil {
			return nil, err
		}
	}
	return months, nil
}
