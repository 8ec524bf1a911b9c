// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/marginlens/marginlens/pkg/pnl"
)

// Row builds a raw GL row with evenly spread opex across the four categories.
func Row(month string, revenue, cogs, totalOpex float64) pnl.RawMonthlyRow {
	quarter := totalOpex / 4
	return pnl.RawMonthlyRow{
		Month:              month,
		Revenue:            revenue,
		COGS:               cogs,
		OpexSalesMarketing: quarter,
		OpexRnD:            quarter,
		OpexGnA:            quarter,
		OpexOther:          quarter,
	}
}

// MonthSequence returns n consecutive months starting at "2024-01".
// n must be at most 12.
func MonthSequence(n int) []string {
	all := []string{
		"2024-01", "2024-02", "2024-03", "2024-04", "2024-05", "2024-06",
		"2024-07", "2024-08", "2024-09", "2024-10", "2024-11", "2024-12",
	}
	return all[:n]
}

// GrowthRows builds n GL rows whose revenue grows by growth per month, with
// COGS at 30% of revenue and opex fixed.
func GrowthRows(n int, baseRevenue, growth, opex float64) []pnl.RawMonthlyRow {
	months := MonthSequence(n)
	rows := make([]pnl.RawMonthlyRow, 0, n)
	for i, month := range months {
		revenue := baseRevenue + growth*float64(i)
		rows = append(rows, Row(month, revenue, revenue*0.3, opex))
	}
	return rows
}

// FloatPtr returns a pointer to the given value, for optional record fields.
func FloatPtr(v float64) *float64 {
	return &v
}

// MustReconstruct reconstructs the canonical series and panics on error.
// Intended for tests whose input is known to be valid.
func MustReconstruct(rows []pnl.RawMonthlyRow) *pnl.Series {
	series, err := pnl.Reconstruct(rows)
	if err != nil {
		panic(err)
	}
	return series
}
