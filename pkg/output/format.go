// Package output provides utilities for formatting and displaying analysis
// results.
package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marginlens/marginlens/internal/engine"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable view of
// the ranked initiatives and a diagnostics summary.
func PrettyFormat(result *engine.Result) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Ranked initiatives ---\n")
	if len(result.Initiatives) == 0 {
		fmt.Printf("(no hypotheses supplied)\n")
	} else {
		fmt.Printf("Rank | Score         | Impact (annualized)             | Conf | Risk | Weeks | Title\n")
		fmt.Printf("____ | _____________ | _______________________________ | ____ | ____ | _____ | _____\n")
		for _, initiative := range result.Initiatives {
			flags := ""
			if initiative.NeedsData {
				flags = " [needs data]"
			}
			_, _ = p.Printf("%4d | %13.2f | $%.0f - $%.0f | %.2f | %-4s | %5d | %s%s\n",
				initiative.Rank,
				initiative.WeightedScore,
				initiative.ImpactLow,
				initiative.ImpactHigh,
				initiative.Confidence,
				initiative.RiskLevel,
				initiative.TimeToValueWeeks,
				initiative.Title,
				flags,
			)
		}
	}

	fmt.Printf("\n--- Diagnostics summary ---\n")
	_, _ = p.Printf("Months analyzed: %d (completeness score %.2f)\n",
		len(result.PnL.Months), result.Diagnostics.Completeness.CompletenessScore)
	_, _ = p.Printf("Outliers: %d vendor spikes, %d opex spikes, %d revenue declines\n",
		len(result.Diagnostics.Outliers.VendorSpikes),
		len(result.Diagnostics.Outliers.OpexSpikes),
		len(result.Diagnostics.Outliers.RevenueDeclines),
	)
	for _, trend := range result.Diagnostics.Trends {
		if !trend.Available {
			fmt.Printf("Trend %s: insufficient data\n", trend.Metric)
			continue
		}
		_, _ = p.Printf("Trend %s: %s (slope %.2f, r² %.2f)\n",
			trend.Metric, trend.Direction, trend.Slope, trend.RSquared)
	}
	if len(result.Diagnostics.Completeness.DataGaps) > 0 {
		fmt.Printf("Data gaps: %s\n", strings.Join(result.Diagnostics.Completeness.DataGaps, "; "))
	}
}

// CsvFormat outputs the ranked initiatives in comma-separated value format.
func CsvFormat(result *engine.Result) {
	fmt.Printf(`"rank","title","category","weighted_score","impact_low","impact_high","confidence","risk_level","time_to_value_weeks","implementation_cost_estimate","needs_data"` + "\n")
	for _, initiative := range result.Initiatives {
		fmt.Printf(`"%d","%s","%s","%.2f","%.0f","%.0f","%.2f","%s","%d","%.0f","%t"`+"\n",
			initiative.Rank,
			strings.ReplaceAll(initiative.Title, `"`, `""`),
			initiative.Category,
			initiative.WeightedScore,
			initiative.ImpactLow,
			initiative.ImpactHigh,
			initiative.Confidence,
			initiative.RiskLevel,
			initiative.TimeToValueWeeks,
			initiative.ImplementationCostEstimate,
			initiative.NeedsData,
		)
	}
}

// JSONFormat outputs the complete analysis result as indented JSON.
func JSONFormat(result *engine.Result) error {
	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
