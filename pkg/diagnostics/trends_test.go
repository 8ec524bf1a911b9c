package diagnostics

import (
	"math"
	"testing"

	"github.com/marginlens/marginlens/pkg/pnl"
	"github.com/marginlens/marginlens/pkg/testutil"
)

func TestAnalyzeTrends(t *testing.T) {
	// Revenue grows 5000 per month with fixed opex, so revenue trends up and
	// total opex stays flat.
	series := testutil.MustReconstruct(testutil.GrowthRows(6, 100000, 5000, 40000))
	trends := AnalyzeTrends(series.Months, 0)

	if len(trends) != len(trackedMetrics) {
		t.Fatalf("AnalyzeTrends() returned %d trends, expected %d", len(trends), len(trackedMetrics))
	}

	revenue := TrendFor(trends, "revenue")
	if revenue == nil || !revenue.Available {
		t.Fatalf("revenue trend missing or unavailable")
	}
	if revenue.Direction != DirectionIncreasing {
		t.Errorf("revenue direction = %s, expected %s", revenue.Direction, DirectionIncreasing)
	}
	if math.Abs(revenue.Slope-5000) > 1e-6 {
		t.Errorf("revenue slope = %v, expected 5000", revenue.Slope)
	}
	if math.Abs(revenue.RSquared-1.0) > 1e-9 {
		t.Errorf("revenue r-squared = %v, expected 1.0", revenue.RSquared)
	}

	opex := TrendFor(trends, "total_opex")
	if opex == nil || !opex.Available {
		t.Fatalf("total opex trend missing or unavailable")
	}
	if opex.Direction != DirectionFlat {
		t.Errorf("total opex direction = %s, expected %s", opex.Direction, DirectionFlat)
	}
}

func TestAnalyzeTrendsDecreasing(t *testing.T) {
	series := testutil.MustReconstruct(testutil.GrowthRows(6, 100000, -5000, 40000))
	trends := AnalyzeTrends(series.Months, 0)

	revenue := TrendFor(trends, "revenue")
	if revenue == nil || revenue.Direction != DirectionDecreasing {
		t.Errorf("revenue direction = %v, expected %s", revenue, DirectionDecreasing)
	}
}

func TestAnalyzeTrendsDeadband(t *testing.T) {
	// Alternating revenue yields a small positive slope (0.1 per month) that
	// falls inside the default deadband, so the direction reads flat.
	rows := []pnl.RawMonthlyRow{
		testutil.Row("2024-01", 1000, 0, 0),
		testutil.Row("2024-02", 1000.5, 0, 0),
		testutil.Row("2024-03", 1000, 0, 0),
		testutil.Row("2024-04", 1000.5, 0, 0),
	}
	series := testutil.MustReconstruct(rows)

	trends := AnalyzeTrends(series.Months, 0)
	revenue := TrendFor(trends, "revenue")
	if revenue == nil || !revenue.Available {
		t.Fatalf("revenue trend missing or unavailable")
	}
	if revenue.Slope <= 0 {
		t.Errorf("revenue slope = %v, expected a small positive slope", revenue.Slope)
	}
	if revenue.Direction != DirectionFlat {
		t.Errorf("revenue direction = %s, expected %s", revenue.Direction, DirectionFlat)
	}
}

func TestAnalyzeTrendsInsufficientData(t *testing.T) {
	series := testutil.MustReconstruct(testutil.GrowthRows(1, 100000, 0, 40000))
	trends := AnalyzeTrends(series.Months, 0)

	if len(trends) != len(trackedMetrics) {
		t.Fatalf("AnalyzeTrends() returned %d trends, expected %d", len(trends), len(trackedMetrics))
	}
	for _, trend := range trends {
		if trend.Available {
			t.Errorf("metric %s available with a single month", trend.Metric)
		}
		if trend.Direction != "" {
			t.Errorf("metric %s direction = %s, expected empty", trend.Metric, trend.Direction)
		}
	}
}

func TestTrendForMissingMetric(t *testing.T) {
	if got := TrendFor(nil, "revenue"); got != nil {
		t.Errorf("TrendFor() = %v for empty trends, expected nil", got)
	}
}
