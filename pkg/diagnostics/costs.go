package diagnostics

import (
	"math"

	"github.com/marginlens/marginlens/pkg/constants"
	"github.com/marginlens/marginlens/pkg/mathutil"
	"github.com/marginlens/marginlens/pkg/pnl"
	"github.com/marginlens/marginlens/pkg/stats"
)

// CostSplit is the estimated fixed/variable decomposition of one opex
// category, derived from its correlation with revenue.
type CostSplit struct {
	Category    string  `json:"category"`
	FixedPct    float64 `json:"fixed_pct"`
	VariablePct float64 `json:"variable_pct"`
	Correlation float64 `json:"correlation"`
	Confidence  float64 `json:"confidence"`
}

// CostModel holds the correlation thresholds and split percentages for the
// fixed/variable heuristic. Zero values fall back to the defaults.
type CostModel struct {
	HighCorrelation     float64
	ModerateCorrelation float64
	HighVariablePct     float64
	ModerateVariablePct float64
	LowVariablePct      float64
}

// DefaultCostModel returns the standard correlation-to-split mapping.
func DefaultCostModel() CostModel {
	return CostModel{
		HighCorrelation:     constants.HighCorrelationThreshold,
		ModerateCorrelation: constants.ModerateCorrelationThreshold,
		HighVariablePct:     constants.HighCorrelationVariablePct,
		ModerateVariablePct: constants.ModerateCorrelationVariablePct,
		LowVariablePct:      constants.LowCorrelationVariablePct,
	}
}

func (m CostModel) withDefaults() CostModel {
	defaults := DefaultCostModel()
	if m.HighCorrelation <= 0 {
		m.HighCorrelation = defaults.HighCorrelation
	}
	if m.ModerateCorrelation <= 0 {
		m.ModerateCorrelation = defaults.ModerateCorrelation
	}
	if m.HighVariablePct <= 0 {
		m.HighVariablePct = defaults.HighVariablePct
	}
	if m.ModerateVariablePct <= 0 {
		m.ModerateVariablePct = defaults.ModerateVariablePct
	}
	if m.LowVariablePct <= 0 {
		m.LowVariablePct = defaults.LowVariablePct
	}
	return m
}

// costCategoryNames are the opex categories estimated per run, in report
// order.
var costCategoryNames = []string{"sales_marketing", "rnd", "gna", "other"}

func costCategoryValue(m pnl.MonthlyFinancials, category string) float64 {
	switch category {
	case "sales_marketing":
		return m.OpexSalesMarketing
	case "rnd":
		return m.OpexRnD
	case "gna":
		return m.OpexGnA
	default:
		return m.OpexOther
	}
}

// EstimateCostStructure maps each opex category's Pearson correlation with
// revenue to a fixed/variable split. Confidence scales with sample size and
// correlation strength, clamped to the shared confidence bounds. Fewer than
// three months yields the neutral 50/50 split at floor confidence. A
// zero-variance category behaves like zero correlation.
func EstimateCostStructure(months []pnl.MonthlyFinancials, model CostModel) []CostSplit {
	model = model.withDefaults()

	revenue := make([]float64, len(months))
	for i, m := range months {
		revenue[i] = m.Revenue
	}

	splits := make([]CostSplit, 0, len(costCategoryNames))
	for _, category := range costCategoryNames {
		if len(months) < constants.MinCorrelationSamples {
			splits = append(splits, CostSplit{
				Category:    category,
				FixedPct:    constants.ModerateCorrelationVariablePct,
				VariablePct: constants.ModerateCorrelationVariablePct,
				Confidence:  constants.ConfidenceFloor,
			})
			continue
		}

		costs := make([]float64, len(months))
		for i, m := range months {
			costs[i] = costCategoryValue(m, category)
		}

		r, _ := stats.PearsonCorrelation(revenue, costs)
		absR := math.Abs(r)

		var variablePct float64
		switch {
		case r >= model.HighCorrelation:
			variablePct = model.HighVariablePct
		case r >= model.ModerateCorrelation:
			variablePct = model.ModerateVariablePct
		default:
			variablePct = model.LowVariablePct
		}

		sampleFactor := math.Min(1.0, float64(len(months))/constants.CostConfidenceFullMonths)
		confidence := mathutil.Clamp(sampleFactor*absR, constants.ConfidenceFloor, constants.ConfidenceCeiling)

		splits = append(splits, CostSplit{
			Category:    category,
			FixedPct:    constants.PercentageMultiplier - variablePct,
			VariablePct: variablePct,
			Correlation: mathutil.Round(r),
			Confidence:  mathutil.Round(confidence),
		})
	}
	return splits
}
