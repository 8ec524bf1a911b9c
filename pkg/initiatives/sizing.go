package initiatives

import (
	"fmt"
	"strings"

	"github.com/marginlens/marginlens/pkg/constants"
	"github.com/marginlens/marginlens/pkg/diagnostics"
	"github.com/marginlens/marginlens/pkg/mathutil"
	"github.com/marginlens/marginlens/pkg/pnl"
)

// SizingOptions carries the tunable sizing parameters. The zero value
// selects all defaults.
type SizingOptions struct {
	// FallbackWidening multiplies the impact band width when the generic
	// fallback is used. Values below the minimum are raised to it.
	FallbackWidening float64
}

// Sizer sizes hypotheses against one run's canonical series, snapshot, and
// diagnostics bundle. Sizing never fails: missing datasets degrade the
// estimate and set NeedsData instead of erroring.
type Sizer struct {
	months   []pnl.MonthlyFinancials
	snapshot pnl.Snapshot
	bundle   diagnostics.Bundle
	context  *CompanyContext
	widening float64
}

// NewSizer builds a sizer for one run. series and context may be nil.
func NewSizer(series *pnl.Series, snapshot pnl.Snapshot, bundle diagnostics.Bundle, context *CompanyContext, opts SizingOptions) *Sizer {
	var months []pnl.MonthlyFinancials
	if series != nil {
		months = series.Months
	}
	widening := opts.FallbackWidening
	if widening < constants.MinFallbackWidening {
		widening = constants.MinFallbackWidening
	}
	return &Sizer{
		months:   months,
		snapshot: snapshot,
		bundle:   bundle,
		context:  context,
		widening: widening,
	}
}

// SizeAll sizes every hypothesis in input order. An empty input yields an
// empty, non-nil result.
func (s *Sizer) SizeAll(hypotheses []Hypothesis) []SizedInitiative {
	sized := make([]SizedInitiative, 0, len(hypotheses))
	for _, h := range hypotheses {
		sized = append(sized, s.Size(h))
	}
	return sized
}

// Size dispatches on the hypothesis category to its sizing strategy and
// normalizes the result.
func (s *Sizer) Size(h Hypothesis) SizedInitiative {
	est := SizedInitiative{
		Title:       h.Title,
		Category:    ParseCategory(string(h.Category)),
		Description: h.Description,
	}

	switch est.Category {
	case CategoryVendor:
		s.sizeVendor(&est)
	case CategoryHeadcount:
		s.sizeHeadcount(&est)
	case CategoryPricing:
		s.sizePricing(&est)
	case CategoryProcess:
		s.sizeProcess(&est)
	default:
		s.sizeOther(&est)
	}

	s.finalize(&est)
	return est
}

// sizeVendor estimates a consolidation saving band from trailing-12-month
// vendor spend.
func (s *Sizer) sizeVendor(est *SizedInitiative) {
	if !s.snapshot.HasVendor() {
		s.fallback(est, "Vendor spend data not provided")
		return
	}

	total, vendorCount := s.trailingVendorSpend()
	if total <= 0 {
		s.fallback(est, "Vendor spend data carries no trailing spend")
		return
	}

	est.ImpactLow = total * 0.05
	est.ImpactHigh = total * 0.15
	est.ImplementationCostEstimate = total * 0.02
	est.TimeToValueWeeks = 8
	est.RiskLevel = RiskLow
	if vendorCount > 10 {
		est.Confidence = 0.7
	} else {
		est.Confidence = 0.5
	}
	est.Assumptions = []string{
		fmt.Sprintf("Assumes %d vendors can be consolidated", vendorCount),
		"Savings band of 5-15% of trailing-12-month vendor spend",
	}
	est.NextSteps = []string{"Inventory all vendor contracts", "Identify consolidation candidates"}
	if len(s.bundle.Outliers.VendorSpikes) > 0 {
		est.NextSteps = append(est.NextSteps, "Investigate flagged vendor spend spikes")
	}
}

// sizeHeadcount estimates an efficiency saving band from the latest payroll
// month's fully-loaded cost.
func (s *Sizer) sizeHeadcount(est *SizedInitiative) {
	if !s.snapshot.HasPayroll() {
		s.fallback(est, "Payroll summary data not provided")
		return
	}

	latestMonth := ""
	for _, p := range s.snapshot.Payroll {
		if p.Month > latestMonth {
			latestMonth = p.Month
		}
	}
	headcount := 0
	monthlyCost := 0.0
	costKnown := false
	for _, p := range s.snapshot.Payroll {
		if p.Month != latestMonth {
			continue
		}
		headcount += p.Headcount
		if p.FullyLoadedCost != nil {
			monthlyCost += *p.FullyLoadedCost
			costKnown = true
		}
	}
	if headcount <= 0 {
		s.fallback(est, "Payroll rows carry no headcount")
		return
	}

	annualPayroll := monthlyCost * constants.MonthsPerYear
	if !costKnown {
		annualPayroll = float64(headcount) * constants.DefaultLoadedCostPerHead
	}

	est.ImpactLow = annualPayroll * 0.05
	est.ImpactHigh = annualPayroll * 0.10
	est.ImplementationCostEstimate = 0.5 * annualPayroll / float64(headcount)
	est.TimeToValueWeeks = 24
	est.RiskLevel = RiskHigh
	if costKnown {
		est.Confidence = 0.5
	} else {
		est.Confidence = 0.3
	}
	est.Assumptions = []string{
		fmt.Sprintf("Assumes %d total headcount as of %s", headcount, latestMonth),
		"Efficiency band of 5-10% of annualized fully-loaded payroll",
	}
	if !costKnown {
		est.Assumptions = append(est.Assumptions,
			fmt.Sprintf("Fully-loaded costs not provided; assumes %.0f per head annually", constants.DefaultLoadedCostPerHead))
	}
	est.NextSteps = []string{"Workforce analysis", "Identify efficiency opportunities by function"}
}

// sizePricing estimates an uplift band from trailing-12-month revenue.
func (s *Sizer) sizePricing(est *SizedInitiative) {
	if len(s.months) == 0 {
		s.fallback(est, "No canonical P&L months available")
		return
	}

	revenue := s.trailingRevenue()
	est.ImpactLow = revenue * 0.01
	est.ImpactHigh = revenue * 0.03
	est.ImplementationCostEstimate = revenue * 0.005
	est.TimeToValueWeeks = 12
	est.RiskLevel = RiskMed
	if s.snapshot.HasSegments() {
		est.Confidence = 0.6
	} else {
		est.Confidence = 0.45
	}
	est.Assumptions = []string{"Uplift band of 1-3% of trailing-12-month revenue"}
	if !s.snapshot.HasSegments() {
		est.Assumptions = append(est.Assumptions, "Segment revenue data not provided; pricing mix unverified")
	}
	if trend := diagnostics.TrendFor(s.bundle.Trends, "revenue"); trend != nil && trend.Available && trend.Direction == diagnostics.DirectionDecreasing {
		est.Confidence -= 0.05
		est.Assumptions = append(est.Assumptions, "Revenue trend is decreasing; uplift applies to a declining base")
	}
	est.NextSteps = []string{"Price realization analysis", "Segment-level pricing review"}
}

// sizeProcess estimates an efficiency band from annualized operating
// expenses.
func (s *Sizer) sizeProcess(est *SizedInitiative) {
	if len(s.months) == 0 {
		s.fallback(est, "No canonical P&L months available")
		return
	}

	annualOpex := s.averageMonthlyOpex() * constants.MonthsPerYear
	est.ImpactLow = annualOpex * 0.03
	est.ImpactHigh = annualOpex * 0.08
	est.ImplementationCostEstimate = annualOpex * 0.02
	est.TimeToValueWeeks = 16
	est.RiskLevel = RiskMed
	est.Confidence = 0.5
	est.Assumptions = []string{"Efficiency band of 3-8% of annualized operating expenses"}
	est.NextSteps = []string{"Process mapping", "Automation candidate review"}
}

// sizeOther is the conservative strategy for uncategorized hypotheses.
func (s *Sizer) sizeOther(est *SizedInitiative) {
	if len(s.months) == 0 {
		s.fallback(est, "No canonical P&L months available")
		return
	}

	annualOpex := s.averageMonthlyOpex() * constants.MonthsPerYear
	est.ImpactLow = annualOpex * 0.02
	est.ImpactHigh = annualOpex * 0.05
	est.ImplementationCostEstimate = annualOpex * 0.02
	est.TimeToValueWeeks = 16
	est.RiskLevel = RiskMed
	est.Confidence = 0.4
	est.Assumptions = []string{"Conservative band of 2-5% of annualized operating expenses"}
	est.NextSteps = []string{"Detailed analysis required"}
}

// fallback is the generic heuristic driven only by overall expense scale:
// the band widens, confidence drops toward the floor, and NeedsData is set.
func (s *Sizer) fallback(est *SizedInitiative, reason string) {
	est.NeedsData = true
	est.RiskLevel = RiskMed
	est.Assumptions = []string{
		reason,
		"Generic scale-based estimate; impact band widened pending data",
	}
	est.NextSteps = []string{"Collect missing datasets", "Re-run sizing with complete data"}

	if len(s.months) == 0 {
		est.Confidence = constants.ConfidenceFloor
		est.TimeToValueWeeks = 12
		return
	}

	annualOpex := s.averageMonthlyOpex() * constants.MonthsPerYear
	est.ImpactLow = annualOpex * 0.03 / s.widening
	est.ImpactHigh = annualOpex * 0.08 * s.widening
	est.ImplementationCostEstimate = annualOpex * 0.02
	est.TimeToValueWeeks = 16
	est.Confidence = 0.3
}

// finalize rounds and clamps the estimate into its invariants.
func (s *Sizer) finalize(est *SizedInitiative) {
	est.ImpactLow = mathutil.RoundToNearest(est.ImpactLow, constants.ImpactRoundingUnit)
	est.ImpactHigh = mathutil.RoundToNearest(est.ImpactHigh, constants.ImpactRoundingUnit)
	if est.ImpactHigh < est.ImpactLow {
		est.ImpactHigh = est.ImpactLow
	}
	est.ImplementationCostEstimate = mathutil.RoundToNearest(est.ImplementationCostEstimate, constants.ImpactRoundingUnit)
	if est.ImplementationCostEstimate < 0 {
		est.ImplementationCostEstimate = 0
	}
	if est.TimeToValueWeeks <= 0 {
		est.TimeToValueWeeks = 12
	}
	if est.RiskLevel == "" {
		est.RiskLevel = RiskMed
	}
	est.Confidence = mathutil.Round(mathutil.Clamp(est.Confidence, constants.ConfidenceFloor, constants.ConfidenceCeiling))
	if est.Assumptions == nil {
		est.Assumptions = []string{}
	}
	if est.NextSteps == nil {
		est.NextSteps = []string{}
	}
	if note := s.contextNote(); note != "" {
		est.Assumptions = append(est.Assumptions, note)
	}
}

// contextNote renders the optional company context as a single assumption
// line. Context is free text only and never feeds the arithmetic.
func (s *Sizer) contextNote() string {
	if s.context == nil {
		return ""
	}
	parts := []string{}
	if s.context.Industry != "" {
		parts = append(parts, "industry: "+s.context.Industry)
	}
	if s.context.BusinessModel != "" {
		parts = append(parts, "model: "+s.context.BusinessModel)
	}
	if s.context.GrowthStage != "" {
		parts = append(parts, "stage: "+s.context.GrowthStage)
	}
	if len(parts) == 0 {
		return ""
	}
	return "Company context noted (" + strings.Join(parts, ", ") + ")"
}

// trailingMonths returns the last n canonical month keys, most recent last.
func (s *Sizer) trailingMonths(n int) []string {
	start := len(s.months) - n
	if start < 0 {
		start = 0
	}
	keys := make([]string, 0, len(s.months)-start)
	for _, m := range s.months[start:] {
		keys = append(keys, m.Month)
	}
	return keys
}

// trailingRevenue sums revenue over the trailing twelve canonical months.
func (s *Sizer) trailingRevenue() float64 {
	total := 0.0
	start := len(s.months) - constants.MonthsPerYear
	if start < 0 {
		start = 0
	}
	for _, m := range s.months[start:] {
		total += m.Revenue
	}
	return total
}

// trailingVendorSpend sums vendor spend over the trailing twelve canonical
// months (all records when no canonical series exists) and counts distinct
// vendors in that window.
func (s *Sizer) trailingVendorSpend() (float64, int) {
	window := make(map[string]bool)
	for _, month := range s.trailingMonths(constants.MonthsPerYear) {
		window[month] = true
	}

	total := 0.0
	vendors := make(map[string]bool)
	for _, rec := range s.snapshot.Vendor {
		if len(window) > 0 && !window[rec.Month] {
			continue
		}
		total += rec.Amount
		vendors[rec.Vendor] = true
	}
	return total, len(vendors)
}

// averageMonthlyOpex returns the mean total opex across the canonical
// months, 0 for an empty series.
func (s *Sizer) averageMonthlyOpex() float64 {
	if len(s.months) == 0 {
		return 0
	}
	total := 0.0
	for _, m := range s.months {
		total += m.TotalOpex
	}
	return total / float64(len(s.months))
}
