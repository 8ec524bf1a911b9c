// Package engine orchestrates the analysis pipeline: P&L reconstruction,
// the five independent diagnostic stages, initiative sizing, and ranking.
package engine

import (
	"github.com/marginlens/marginlens/internal/config"
	"github.com/marginlens/marginlens/pkg/diagnostics"
	"github.com/marginlens/marginlens/pkg/initiatives"
	"github.com/marginlens/marginlens/pkg/pnl"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Result is the complete output of one analysis run. It is a pure function
// of the input snapshot, hypotheses, and configuration: re-running on
// identical inputs yields an identical result.
type Result struct {
	PnL         *pnl.Series                    `json:"pnl"`
	Diagnostics diagnostics.Bundle             `json:"diagnostics"`
	Initiatives []initiatives.RankedInitiative `json:"initiatives"`
}

// Run executes the full pipeline over an immutable input snapshot. The
// hypothesis list may be empty (the hypothesis source is an external
// collaborator whose failures collapse to zero hypotheses before reaching
// the engine); diagnostics and an empty ranked list are still produced.
// Context may be nil. The only error paths are duplicate GL months and an
// invalid ranking configuration.
func Run(logger *zap.Logger, snapshot pnl.Snapshot, hypotheses []initiatives.Hypothesis, context *initiatives.CompanyContext, conf config.Configuration) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	series, err := pnl.Reconstruct(snapshot.GL)
	if err != nil {
		return nil, err
	}
	logger.Debug("reconstructed canonical series",
		zap.String("op", "engine.Run"),
		zap.Int("months", len(series.Months)),
		zap.Int("zeroRevenueMonths", len(series.ZeroRevenueMonths)),
	)

	// The diagnostic stages are pure functions of the canonical series with
	// disjoint outputs, so they fan out safely.
	opts := conf.DiagnosticOptions()
	var bundle diagnostics.Bundle
	var group errgroup.Group
	group.Go(func() error {
		bundle.MarginBridge = diagnostics.AnalyzeMarginBridge(series.Months)
		return nil
	})
	group.Go(func() error {
		bundle.Outliers = diagnostics.DetectOutliers(series.Months, snapshot.Vendor)
		return nil
	})
	group.Go(func() error {
		bundle.Trends = diagnostics.AnalyzeTrends(series.Months, opts.TrendDeadbandFraction)
		return nil
	})
	group.Go(func() error {
		bundle.CostSplits = diagnostics.EstimateCostStructure(series.Months, opts.CostModel)
		return nil
	})
	group.Go(func() error {
		bundle.Completeness = diagnostics.ScoreCompleteness(series, snapshot, opts.CompletenessWeights)
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	sizer := initiatives.NewSizer(series, snapshot, bundle, context, conf.SizingOptions())
	sized := sizer.SizeAll(hypotheses)

	ranked, err := initiatives.Rank(sized, conf.RankingSettings())
	if err != nil {
		return nil, err
	}
	logger.Debug("ranked initiatives",
		zap.String("op", "engine.Run"),
		zap.Int("count", len(ranked)),
	)

	return &Result{
		PnL:         series,
		Diagnostics: bundle,
		Initiatives: ranked,
	}, nil
}
