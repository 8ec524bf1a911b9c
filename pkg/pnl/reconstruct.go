package pnl

import (
	"fmt"
	"sort"

	"github.com/marginlens/marginlens/pkg/mathutil"
)

// DuplicateMonthError indicates two raw rows carried the same month.
type DuplicateMonthError struct {
	Month string
}

func (e *DuplicateMonthError) Error() string {
	return fmt.Sprintf("duplicate month in general-ledger rows: %s", e.Month)
}

// Reconstruct converts raw monthly general-ledger rows into the canonical
// P&L series. Non-chronological input is sorted before derived calculations;
// duplicate months are rejected. Months with zero revenue get 0.0 margin
// percentages and are reported in Series.ZeroRevenueMonths.
func Reconstruct(rows []RawMonthlyRow) (*Series, error) {
	ordered := make([]RawMonthlyRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Month < ordered[j].Month
	})

	seen := make(map[string]bool, len(ordered))
	series := &Series{Months: make([]MonthlyFinancials, 0, len(ordered))}
	for _, row := range ordered {
		if seen[row.Month] {
			return nil, &DuplicateMonthError{Month: row.Month}
		}
		seen[row.Month] = true

		m := MonthlyFinancials{
			Month:              row.Month,
			Revenue:            row.Revenue,
			COGS:               row.COGS,
			OpexSalesMarketing: row.OpexSalesMarketing,
			OpexRnD:            row.OpexRnD,
			OpexGnA:            row.OpexGnA,
			OpexOther:          row.OpexOther,
		}
		m.GrossMargin = m.Revenue - m.COGS
		m.TotalOpex = m.OpexSalesMarketing + m.OpexRnD + m.OpexGnA + m.OpexOther
		m.EBITDA = m.GrossMargin - m.TotalOpex
		if m.Revenue != 0 {
			m.GrossMarginPct = mathutil.Round(mathutil.CalculatePercentage(m.GrossMargin, m.Revenue))
			m.EBITDAMarginPct = mathutil.Round(mathutil.CalculatePercentage(m.EBITDA, m.Revenue))
		} else {
			series.ZeroRevenueMonths = append(series.ZeroRevenueMonths, m.Month)
		}

		series.Months = append(series.Months, m)
	}

	return series, nil
}
