package initiatives

import (
	"fmt"
	"sort"

	"github.com/marginlens/marginlens/pkg/constants"
	"github.com/marginlens/marginlens/pkg/mathutil"
)

// RankingConfig holds the externally loaded scoring multipliers. It is
// passed by value into Rank and never read as ambient state.
type RankingConfig struct {
	RiskMultiplierLow     float64 `json:"risk_multiplier_low"`
	RiskMultiplierMed     float64 `json:"risk_multiplier_med"`
	RiskMultiplierHigh    float64 `json:"risk_multiplier_high"`
	TimeMultiplierBase    float64 `json:"time_multiplier_base"`
	TimeMultiplierPerWeek float64 `json:"time_multiplier_per_week"`
}

// DefaultRankingConfig returns the standard multipliers.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		RiskMultiplierLow:     constants.DefaultRiskMultiplierLow,
		RiskMultiplierMed:     constants.DefaultRiskMultiplierMed,
		RiskMultiplierHigh:    constants.DefaultRiskMultiplierHigh,
		TimeMultiplierBase:    constants.DefaultTimeMultiplierBase,
		TimeMultiplierPerWeek: constants.DefaultTimeMultiplierPerWeek,
	}
}

// InvalidRankingConfigError reports a ranking configuration value that would
// corrupt ordering semantics. Ranking fails fast on it before any scores are
// computed; it is the one fatal condition in the subsystem.
type InvalidRankingConfigError struct {
	Field string
	Value float64
}

func (e *InvalidRankingConfigError) Error() string {
	return fmt.Sprintf("invalid ranking configuration: %s = %v", e.Field, e.Value)
}

// Validate checks the multiplier constraints: risk multipliers strictly
// positive, time multiplier components non-negative and not both zero
// (time to value is always positive, so that keeps every denominator
// positive).
func (c RankingConfig) Validate() error {
	switch {
	case c.RiskMultiplierLow <= 0:
		return &InvalidRankingConfigError{Field: "risk_multiplier_low", Value: c.RiskMultiplierLow}
	case c.RiskMultiplierMed <= 0:
		return &InvalidRankingConfigError{Field: "risk_multiplier_med", Value: c.RiskMultiplierMed}
	case c.RiskMultiplierHigh <= 0:
		return &InvalidRankingConfigError{Field: "risk_multiplier_high", Value: c.RiskMultiplierHigh}
	case c.TimeMultiplierBase < 0:
		return &InvalidRankingConfigError{Field: "time_multiplier_base", Value: c.TimeMultiplierBase}
	case c.TimeMultiplierPerWeek < 0:
		return &InvalidRankingConfigError{Field: "time_multiplier_per_week", Value: c.TimeMultiplierPerWeek}
	case c.TimeMultiplierBase == 0 && c.TimeMultiplierPerWeek == 0:
		return &InvalidRankingConfigError{Field: "time_multiplier_base", Value: c.TimeMultiplierBase}
	}
	return nil
}

// RiskMultiplier maps a risk level to its configured multiplier. Unknown
// levels use the medium multiplier.
func (c RankingConfig) RiskMultiplier(level RiskLevel) float64 {
	switch level {
	case RiskLow:
		return c.RiskMultiplierLow
	case RiskHigh:
		return c.RiskMultiplierHigh
	default:
		return c.RiskMultiplierMed
	}
}

// TimeMultiplier grows linearly with time to value.
func (c RankingConfig) TimeMultiplier(weeks int) float64 {
	return c.TimeMultiplierBase + float64(weeks)*c.TimeMultiplierPerWeek
}

// Rank scores the sized initiatives and returns them in descending score
// order with dense 1-based ranks. Ties break by impact midpoint descending,
// then title ascending, so the order is a pure function of the inputs and
// never depends on input iteration order. An empty input yields an empty,
// non-nil list.
func Rank(sized []SizedInitiative, config RankingConfig) ([]RankedInitiative, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ranked := make([]RankedInitiative, 0, len(sized))
	for _, initiative := range sized {
		denominator := config.RiskMultiplier(initiative.RiskLevel) * config.TimeMultiplier(initiative.TimeToValueWeeks)
		score := 0.0
		if denominator > 0 {
			score = impactMid(initiative) * initiative.Confidence / denominator
		}
		ranked = append(ranked, RankedInitiative{
			SizedInitiative: initiative,
			WeightedScore:   mathutil.Round(score),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].WeightedScore != ranked[j].WeightedScore {
			return ranked[i].WeightedScore > ranked[j].WeightedScore
		}
		midI, midJ := impactMid(ranked[i].SizedInitiative), impactMid(ranked[j].SizedInitiative)
		if midI != midJ {
			return midI > midJ
		}
		return ranked[i].Title < ranked[j].Title
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked, nil
}

func impactMid(initiative SizedInitiative) float64 {
	return (initiative.ImpactLow + initiative.ImpactHigh) / 2
}
