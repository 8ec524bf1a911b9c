package diagnostics

import (
	"fmt"
	"sort"

	"github.com/marginlens/marginlens/pkg/constants"
	"github.com/marginlens/marginlens/pkg/datetime"
	"github.com/marginlens/marginlens/pkg/mathutil"
	"github.com/marginlens/marginlens/pkg/pnl"
)

// CompletenessReport describes how much of the expected data actually
// arrived: calendar gaps in the GL series, payroll coverage, optional
// dataset presence, and the aggregate completeness score.
type CompletenessReport struct {
	TotalMonths          int      `json:"total_months"`
	MissingGLMonths      []string `json:"missing_gl_months"`
	MissingPayrollMonths []string `json:"missing_payroll_months"`
	PayrollCostCoverage  float64  `json:"payroll_cost_coverage"`
	ZeroRevenueMonths    []string `json:"zero_revenue_months"`
	HasPayroll           bool     `json:"has_payroll"`
	HasVendor            bool     `json:"has_vendor"`
	HasSegments          bool     `json:"has_segments"`
	DataGaps             []string `json:"data_gaps"`
	CompletenessScore    float64  `json:"completeness_score"`
}

// CompletenessWeights controls the weighting of calendar coverage versus
// optional-dataset presence in the completeness score. Non-positive weights
// fall back to the equal defaults.
type CompletenessWeights struct {
	MonthCoverage   float64
	DatasetCoverage float64
}

// DefaultCompletenessWeights returns the equal-weight default.
func DefaultCompletenessWeights() CompletenessWeights {
	return CompletenessWeights{
		MonthCoverage:   constants.DefaultMonthCoverageWeight,
		DatasetCoverage: constants.DefaultDatasetCoverageWeight,
	}
}

func (w CompletenessWeights) normalized() CompletenessWeights {
	if w.MonthCoverage <= 0 && w.DatasetCoverage <= 0 {
		return DefaultCompletenessWeights()
	}
	if w.MonthCoverage < 0 {
		w.MonthCoverage = 0
	}
	if w.DatasetCoverage < 0 {
		w.DatasetCoverage = 0
	}
	total := w.MonthCoverage + w.DatasetCoverage
	return CompletenessWeights{
		MonthCoverage:   w.MonthCoverage / total,
		DatasetCoverage: w.DatasetCoverage / total,
	}
}

// ScoreCompleteness measures month coverage against the contiguous calendar
// range implied by the first and last canonical months, payroll coverage
// against the GL months, and optional-dataset presence. The score is the
// weighted combination of month coverage and dataset presence.
func ScoreCompleteness(series *pnl.Series, snapshot pnl.Snapshot, weights CompletenessWeights) CompletenessReport {
	weights = weights.normalized()

	report := CompletenessReport{
		MissingGLMonths:      []string{},
		MissingPayrollMonths: []string{},
		ZeroRevenueMonths:    []string{},
		DataGaps:             []string{},
		HasPayroll:           snapshot.HasPayroll(),
		HasVendor:            snapshot.HasVendor(),
		HasSegments:          snapshot.HasSegments(),
	}
	if series != nil {
		report.ZeroRevenueMonths = append(report.ZeroRevenueMonths, series.ZeroRevenueMonths...)
	}

	var months []pnl.MonthlyFinancials
	if series != nil {
		months = series.Months
	}

	monthCoverage := 0.0
	if len(months) > 0 {
		expected, err := datetime.MonthRange(months[0].Month, months[len(months)-1].Month)
		if err != nil {
			// Unparseable months: treat the observed months as the full range.
			expected = make([]string, len(months))
			for i, m := range months {
				expected[i] = m.Month
			}
		}
		report.TotalMonths = len(expected)

		present := make(map[string]bool, len(months))
		for _, m := range months {
			present[m.Month] = true
		}
		for _, month := range expected {
			if !present[month] {
				report.MissingGLMonths = append(report.MissingGLMonths, month)
			}
		}
		monthCoverage = float64(len(months)) / float64(len(expected))

		// Payroll coverage over the GL months.
		if report.HasPayroll {
			payrollMonths := make(map[string]bool, len(snapshot.Payroll))
			for _, p := range snapshot.Payroll {
				payrollMonths[p.Month] = true
			}
			for _, m := range months {
				if !payrollMonths[m.Month] {
					report.MissingPayrollMonths = append(report.MissingPayrollMonths, m.Month)
				}
			}
			sort.Strings(report.MissingPayrollMonths)

			var payrollCost, opexTotal float64
			costByMonth := make(map[string]float64)
			costKnown := make(map[string]bool)
			for _, p := range snapshot.Payroll {
				if p.FullyLoadedCost != nil {
					costByMonth[p.Month] += *p.FullyLoadedCost
					costKnown[p.Month] = true
				}
			}
			for _, m := range months {
				if costKnown[m.Month] {
					payrollCost += costByMonth[m.Month]
					opexTotal += m.TotalOpex
				}
			}
			if opexTotal > 0 {
				report.PayrollCostCoverage = mathutil.Round(payrollCost / opexTotal)
			}
		}
	}

	datasetsPresent := 0
	if report.HasPayroll {
		datasetsPresent++
	}
	if report.HasVendor {
		datasetsPresent++
	}
	if report.HasSegments {
		datasetsPresent++
	}
	datasetCoverage := float64(datasetsPresent) / 3.0

	report.CompletenessScore = mathutil.Round(
		weights.MonthCoverage*monthCoverage + weights.DatasetCoverage*datasetCoverage)

	// Human-readable gap summary for reporting.
	if n := len(report.MissingGLMonths); n > 0 {
		report.DataGaps = append(report.DataGaps, fmt.Sprintf("Missing GL/P&L data for %d months", n))
	}
	if !report.HasPayroll {
		report.DataGaps = append(report.DataGaps, "Payroll summary data not provided (optional)")
	} else if n := len(report.MissingPayrollMonths); n > 0 {
		report.DataGaps = append(report.DataGaps, fmt.Sprintf("Missing payroll data for %d months", n))
	}
	if report.HasPayroll && report.PayrollCostCoverage < constants.PayrollCoverageTarget {
		report.DataGaps = append(report.DataGaps,
			fmt.Sprintf("Payroll cost coverage of total opex: %.0f%%", report.PayrollCostCoverage*constants.PercentageMultiplier))
	}
	if !report.HasVendor {
		report.DataGaps = append(report.DataGaps, "Vendor spend data not provided (optional)")
	}
	if !report.HasSegments {
		report.DataGaps = append(report.DataGaps, "Revenue by segment data not provided (optional)")
	}
	if n := len(report.ZeroRevenueMonths); n > 0 {
		report.DataGaps = append(report.DataGaps, fmt.Sprintf("%d months reported zero revenue", n))
	}

	return report
}
