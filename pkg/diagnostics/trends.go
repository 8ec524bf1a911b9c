package diagnostics

import (
	"math"

	"github.com/marginlens/marginlens/pkg/constants"
	"github.com/marginlens/marginlens/pkg/pnl"
	"github.com/marginlens/marginlens/pkg/stats"
)

// Trend direction labels.
const (
	DirectionIncreasing = "increasing"
	DirectionDecreasing = "decreasing"
	DirectionFlat       = "flat"
)

// Trend is a closed-form linear fit of one tracked metric against the month
// index. Available is false when the series is too short to fit; the
// remaining fields are then zero and must not be interpreted.
type Trend struct {
	Metric    string  `json:"metric"`
	Available bool    `json:"available"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"r_squared"`
	Direction string  `json:"direction,omitempty"`
}

// trackedMetrics lists the metrics fitted per run, in report order.
var trackedMetrics = []string{
	"revenue",
	"gross_margin",
	"gross_margin_pct",
	"total_opex",
	"ebitda",
	"ebitda_margin_pct",
}

func metricValue(m pnl.MonthlyFinancials, metric string) float64 {
	switch metric {
	case "revenue":
		return m.Revenue
	case "gross_margin":
		return m.GrossMargin
	case "gross_margin_pct":
		return m.GrossMarginPct
	case "total_opex":
		return m.TotalOpex
	case "ebitda":
		return m.EBITDA
	default:
		return m.EBITDAMarginPct
	}
}

// AnalyzeTrends fits each tracked metric against the month index using
// ordinary least squares. The direction deadband is deadbandFraction times
// the mean absolute metric value, so near-zero slopes read as flat rather
// than flapping between directions.
func AnalyzeTrends(months []pnl.MonthlyFinancials, deadbandFraction float64) []Trend {
	if deadbandFraction <= 0 {
		deadbandFraction = constants.DefaultTrendDeadbandFraction
	}

	trends := make([]Trend, 0, len(trackedMetrics))
	for _, metric := range trackedMetrics {
		values := make([]float64, len(months))
		absSum := 0.0
		for i, m := range months {
			values[i] = metricValue(m, metric)
			absSum += math.Abs(values[i])
		}

		fit, ok := stats.LinearRegression(values)
		if !ok {
			trends = append(trends, Trend{Metric: metric, Available: false})
			continue
		}

		deadband := deadbandFraction * absSum / float64(len(values))
		direction := DirectionFlat
		if fit.Slope > deadband {
			direction = DirectionIncreasing
		} else if fit.Slope < -deadband {
			direction = DirectionDecreasing
		}

		trends = append(trends, Trend{
			Metric:    metric,
			Available: true,
			Slope:     fit.Slope,
			Intercept: fit.Intercept,
			RSquared:  fit.RSquared,
			Direction: direction,
		})
	}
	return trends
}

// TrendFor returns the trend for the named metric, or nil if absent.
func TrendFor(trends []Trend, metric string) *Trend {
	for i := range trends {
		if trends[i].Metric == metric {
			return &trends[i]
		}
	}
	return nil
}
