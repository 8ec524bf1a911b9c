package initiatives

import (
	"errors"
	"testing"
)

func TestRankOrdering(t *testing.T) {
	sized := []SizedInitiative{
		{
			Title:            "Slow risky",
			ImpactLow:        50000,
			ImpactHigh:       150000,
			TimeToValueWeeks: 20,
			RiskLevel:        RiskHigh,
			Confidence:       0.9,
		},
		{
			Title:            "Fast safe",
			ImpactLow:        100000,
			ImpactHigh:       300000,
			TimeToValueWeeks: 10,
			RiskLevel:        RiskLow,
			Confidence:       0.5,
		},
	}

	ranked, err := Rank(sized, DefaultRankingConfig())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("Rank() returned %d initiatives, expected 2", len(ranked))
	}

	// 200000 * 0.5 / (1.0 * 1.1) versus 100000 * 0.9 / (1.5 * 1.2).
	if ranked[0].Title != "Fast safe" || ranked[0].Rank != 1 {
		t.Errorf("ranked[0] = %s rank %d, expected Fast safe rank 1", ranked[0].Title, ranked[0].Rank)
	}
	if ranked[0].WeightedScore != 90909.09 {
		t.Errorf("ranked[0] score = %v, expected 90909.09", ranked[0].WeightedScore)
	}
	if ranked[1].Title != "Slow risky" || ranked[1].Rank != 2 {
		t.Errorf("ranked[1] = %s rank %d, expected Slow risky rank 2", ranked[1].Title, ranked[1].Rank)
	}
	if ranked[1].WeightedScore != 50000.00 {
		t.Errorf("ranked[1] score = %v, expected 50000.00", ranked[1].WeightedScore)
	}
}

func TestRankScoresWorkedExample(t *testing.T) {
	sized := []SizedInitiative{
		{
			Title:            "A",
			ImpactLow:        100000,
			ImpactHigh:       200000,
			Confidence:       0.7,
			RiskLevel:        RiskLow,
			TimeToValueWeeks: 8,
		},
		{
			Title:            "B",
			ImpactLow:        150000,
			ImpactHigh:       150000,
			Confidence:       0.5,
			RiskLevel:        RiskHigh,
			TimeToValueWeeks: 20,
		},
	}

	ranked, err := Rank(sized, DefaultRankingConfig())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if ranked[0].Title != "A" || ranked[0].Rank != 1 {
		t.Errorf("ranked[0] = %s rank %d, expected A rank 1", ranked[0].Title, ranked[0].Rank)
	}
	if ranked[0].WeightedScore != 97222.22 {
		t.Errorf("score A = %v, expected 97222.22", ranked[0].WeightedScore)
	}
	if ranked[1].Title != "B" || ranked[1].Rank != 2 {
		t.Errorf("ranked[1] = %s rank %d, expected B rank 2", ranked[1].Title, ranked[1].Rank)
	}
	if ranked[1].WeightedScore != 41666.67 {
		t.Errorf("score B = %v, expected 41666.67", ranked[1].WeightedScore)
	}
}

func scoreOf(t *testing.T, initiative SizedInitiative) float64 {
	t.Helper()
	ranked, err := Rank([]SizedInitiative{initiative}, DefaultRankingConfig())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	return ranked[0].WeightedScore
}

func TestRankScoreMonotonicity(t *testing.T) {
	base := SizedInitiative{
		Title:            "Base",
		ImpactLow:        100000,
		ImpactHigh:       300000,
		Confidence:       0.5,
		RiskLevel:        RiskLow,
		TimeToValueWeeks: 10,
	}
	baseScore := scoreOf(t, base)

	higherImpact := base
	higherImpact.ImpactHigh = 500000
	if scoreOf(t, higherImpact) <= baseScore {
		t.Errorf("score did not increase with a higher impact midpoint")
	}

	higherConfidence := base
	higherConfidence.Confidence = 0.8
	if scoreOf(t, higherConfidence) <= baseScore {
		t.Errorf("score did not increase with higher confidence")
	}

	riskier := base
	riskier.RiskLevel = RiskHigh
	if scoreOf(t, riskier) >= baseScore {
		t.Errorf("score did not decrease with higher risk")
	}

	slower := base
	slower.TimeToValueWeeks = 40
	if scoreOf(t, slower) >= baseScore {
		t.Errorf("score did not decrease with longer time to value")
	}
}

func TestRankTieBreaks(t *testing.T) {
	// Zero confidence forces all scores to 0, exercising the midpoint and
	// title tie-breaks in isolation.
	sized := []SizedInitiative{
		{Title: "Beta", ImpactLow: 10000, ImpactHigh: 20000, TimeToValueWeeks: 12, RiskLevel: RiskMed},
		{Title: "Alpha", ImpactLow: 10000, ImpactHigh: 20000, TimeToValueWeeks: 12, RiskLevel: RiskMed},
		{Title: "Gamma", ImpactLow: 50000, ImpactHigh: 60000, TimeToValueWeeks: 12, RiskLevel: RiskMed},
	}

	ranked, err := Rank(sized, DefaultRankingConfig())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}

	expected := []string{"Gamma", "Alpha", "Beta"}
	for i, title := range expected {
		if ranked[i].Title != title {
			t.Errorf("ranked[%d] = %s, expected %s", i, ranked[i].Title, title)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("ranked[%d].Rank = %d, expected %d", i, ranked[i].Rank, i+1)
		}
	}
}

func TestRankEmptyInput(t *testing.T) {
	ranked, err := Rank(nil, DefaultRankingConfig())
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	if ranked == nil || len(ranked) != 0 {
		t.Errorf("Rank(nil) = %v, expected empty non-nil slice", ranked)
	}
}

func TestRankInvalidConfig(t *testing.T) {
	config := DefaultRankingConfig()
	config.RiskMultiplierMed = -1

	ranked, err := Rank([]SizedInitiative{{Title: "X", TimeToValueWeeks: 12}}, config)
	if err == nil {
		t.Fatalf("Rank() expected error for invalid config but got none")
	}
	if ranked != nil {
		t.Errorf("Rank() = %v on error, expected nil", ranked)
	}
}

func TestRankingConfigValidate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*RankingConfig)
		expectedField string
	}{
		{"Valid defaults", func(c *RankingConfig) {}, ""},
		{"Zero low risk multiplier", func(c *RankingConfig) { c.RiskMultiplierLow = 0 }, "risk_multiplier_low"},
		{"Negative high risk multiplier", func(c *RankingConfig) { c.RiskMultiplierHigh = -0.5 }, "risk_multiplier_high"},
		{"Negative time base", func(c *RankingConfig) { c.TimeMultiplierBase = -1 }, "time_multiplier_base"},
		{"Negative per week", func(c *RankingConfig) { c.TimeMultiplierPerWeek = -0.01 }, "time_multiplier_per_week"},
		{
			"Both time components zero",
			func(c *RankingConfig) { c.TimeMultiplierBase = 0; c.TimeMultiplierPerWeek = 0 },
			"time_multiplier_base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultRankingConfig()
			tt.mutate(&config)

			err := config.Validate()
			if tt.expectedField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, expected none", err)
				}
				return
			}
			var invalid *InvalidRankingConfigError
			if !errors.As(err, &invalid) {
				t.Fatalf("Validate() error = %T, expected *InvalidRankingConfigError", err)
			}
			if invalid.Field != tt.expectedField {
				t.Errorf("Validate() field = %s, expected %s", invalid.Field, tt.expectedField)
			}
		})
	}
}

func TestRiskMultiplierUnknownLevel(t *testing.T) {
	config := DefaultRankingConfig()
	if got := config.RiskMultiplier("weird"); got != config.RiskMultiplierMed {
		t.Errorf("RiskMultiplier(weird) = %v, expected the medium multiplier", got)
	}
}

func TestTimeMultiplier(t *testing.T) {
	config := DefaultRankingConfig()
	if got := config.TimeMultiplier(10); got != 1.1 {
		t.Errorf("TimeMultiplier(10) = %v, expected 1.1", got)
	}
}
