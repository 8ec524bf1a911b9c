// Package diagnostics implements the independent diagnostic stages over the
// canonical P&L series: the margin bridge, outlier detection, trend fitting,
// cost-structure estimation, and completeness scoring. Each stage is a pure
// function of its inputs; degenerate inputs produce explicit neutral or
// unavailable results, never errors.
package diagnostics

import "github.com/marginlens/marginlens/pkg/pnl"

// MarginBridgeEntry decomposes the EBITDA change between one consecutive
// month pair into additive revenue, COGS, and opex components. The three
// impacts always sum to EBITDAChange exactly.
type MarginBridgeEntry struct {
	Month         string  `json:"month"`
	PrevMonth     string  `json:"prev_month"`
	EBITDAChange  float64 `json:"ebitda_change"`
	RevenueImpact float64 `json:"revenue_impact"`
	COGSImpact    float64 `json:"cogs_impact"`
	OpexImpact    float64 `json:"opex_impact"`
}

// AnalyzeMarginBridge computes one bridge entry per consecutive month pair.
// A series shorter than two months yields an empty bridge.
func AnalyzeMarginBridge(months []pnl.MonthlyFinancials) []MarginBridgeEntry {
	if len(months) < 2 {
		return []MarginBridgeEntry{}
	}

	bridge := make([]MarginBridgeEntry, 0, len(months)-1)
	for i := 1; i < len(months); i++ {
		prev := months[i-1]
		curr := months[i]
		bridge = append(bridge, MarginBridgeEntry{
			Month:         curr.Month,
			PrevMonth:     prev.Month,
			EBITDAChange:  curr.EBITDA - prev.EBITDA,
			RevenueImpact: curr.Revenue - prev.Revenue,
			COGSImpact:    -(curr.COGS - prev.COGS),
			OpexImpact:    -(curr.TotalOpex - prev.TotalOpex),
		})
	}
	return bridge
}
