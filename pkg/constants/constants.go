// Package constants provides shared constants for the marginlens engine.
package constants

// MonthLayout is the year-month format used for all series keys and output.
const MonthLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// ImpactRoundingUnit is the unit initiative impact estimates are rounded to
	ImpactRoundingUnit = 1000.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Diagnostic thresholds
const (
	// ZScoreThreshold flags vendor and opex spikes when |z| exceeds it
	ZScoreThreshold = 2.0

	// RevenueDeclineThreshold flags month-over-month revenue drops beyond 10%
	RevenueDeclineThreshold = 0.10

	// BridgeTolerance is the tolerance for the margin-bridge additivity check
	BridgeTolerance = 1e-6

	// MinZScoreSamples is the minimum series length for z-score detection
	MinZScoreSamples = 3

	// MinTrendSamples is the minimum series length for a trend fit
	MinTrendSamples = 2

	// MinCorrelationSamples is the minimum series length for a cost split
	MinCorrelationSamples = 3

	// DefaultTrendDeadbandFraction scales the flat-direction deadband by the
	// mean absolute metric value
	DefaultTrendDeadbandFraction = 0.001
)

// Cost-structure defaults
const (
	// HighCorrelationThreshold marks a category as strongly revenue-driven
	HighCorrelationThreshold = 0.7

	// ModerateCorrelationThreshold marks a category as partially revenue-driven
	ModerateCorrelationThreshold = 0.3

	// HighCorrelationVariablePct is the variable share for strongly correlated categories
	HighCorrelationVariablePct = 80.0

	// ModerateCorrelationVariablePct is the variable share for moderately correlated categories
	ModerateCorrelationVariablePct = 50.0

	// LowCorrelationVariablePct is the variable share for weakly correlated categories
	LowCorrelationVariablePct = 20.0

	// CostConfidenceFullMonths is the month count at which sample size stops
	// limiting cost-split confidence
	CostConfidenceFullMonths = 12
)

// Confidence bounds shared by cost splits and initiative sizing
const (
	ConfidenceFloor   = 0.2
	ConfidenceCeiling = 0.9
)

// Completeness defaults
const (
	// DefaultMonthCoverageWeight weights calendar coverage in the completeness score
	DefaultMonthCoverageWeight = 0.5

	// DefaultDatasetCoverageWeight weights optional-dataset presence in the completeness score
	DefaultDatasetCoverageWeight = 0.5

	// PayrollCoverageTarget is the payroll cost coverage below which a data gap is reported
	PayrollCoverageTarget = 0.8
)

// Sizing defaults
const (
	// MinFallbackWidening is the minimum impact-band widening applied by the
	// generic sizing fallback
	MinFallbackWidening = 1.5

	// DefaultLoadedCostPerHead is the assumed annual fully-loaded cost per
	// head when payroll costs are not supplied
	DefaultLoadedCostPerHead = 150000.0
)

// Ranking defaults
const (
	DefaultRiskMultiplierLow     = 1.0
	DefaultRiskMultiplierMed     = 1.2
	DefaultRiskMultiplierHigh    = 1.5
	DefaultTimeMultiplierBase    = 1.0
	DefaultTimeMultiplierPerWeek = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"
)
