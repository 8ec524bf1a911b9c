package diagnostics

import "github.com/marginlens/marginlens/pkg/pnl"

// Bundle aggregates the outputs of the five diagnostic stages for one run.
// It is immutable once produced and owned solely by the run that created it.
type Bundle struct {
	MarginBridge []MarginBridgeEntry `json:"margin_bridge"`
	Outliers     OutlierReport       `json:"outliers"`
	Trends       []Trend             `json:"trends"`
	CostSplits   []CostSplit         `json:"cost_splits"`
	Completeness CompletenessReport  `json:"completeness"`
}

// Options carries the tunable parameters of the diagnostic stages. The zero
// value selects all defaults.
type Options struct {
	TrendDeadbandFraction float64
	CostModel             CostModel
	CompletenessWeights   CompletenessWeights
}

// Run executes every diagnostic stage sequentially over the canonical series
// and returns the assembled bundle. The stages are mutually independent;
// callers that want parallelism can invoke the stage functions directly (the
// engine does).
func Run(series *pnl.Series, snapshot pnl.Snapshot, opts Options) Bundle {
	var months []pnl.MonthlyFinancials
	if series != nil {
		months = series.Months
	}
	return Bundle{
		MarginBridge: AnalyzeMarginBridge(months),
		Outliers:     DetectOutliers(months, snapshot.Vendor),
		Trends:       AnalyzeTrends(months, opts.TrendDeadbandFraction),
		CostSplits:   EstimateCostStructure(months, opts.CostModel),
		Completeness: ScoreCompleteness(series, snapshot, opts.CompletenessWeights),
	}
}
