package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marginlens/marginlens/pkg/initiatives"
)

func TestRankingSettingsDefaults(t *testing.T) {
	conf := DefaultConfiguration()
	settings := conf.RankingSettings()
	if settings != initiatives.DefaultRankingConfig() {
		t.Errorf("RankingSettings() = %+v, expected the ranking defaults", settings)
	}
}

func TestRankingSettingsOverrides(t *testing.T) {
	conf := DefaultConfiguration()
	conf.Ranking.RiskMultiplierHigh = 2.0

	settings := conf.RankingSettings()
	if settings.RiskMultiplierHigh != 2.0 {
		t.Errorf("RiskMultiplierHigh = %v, expected the override 2.0", settings.RiskMultiplierHigh)
	}
	defaults := initiatives.DefaultRankingConfig()
	if settings.RiskMultiplierLow != defaults.RiskMultiplierLow {
		t.Errorf("RiskMultiplierLow = %v, expected default %v", settings.RiskMultiplierLow, defaults.RiskMultiplierLow)
	}
	if settings.TimeMultiplierPerWeek != defaults.TimeMultiplierPerWeek {
		t.Errorf("TimeMultiplierPerWeek = %v, expected default %v", settings.TimeMultiplierPerWeek, defaults.TimeMultiplierPerWeek)
	}
}

func TestDiagnosticOptions(t *testing.T) {
	conf := DefaultConfiguration()
	conf.Analysis.TrendDeadbandFraction = 0.002
	conf.Analysis.CompletenessMonthWeight = 3
	conf.Analysis.CompletenessDatasetWeight = 1
	conf.Analysis.CostModel.HighCorrelation = 0.8

	opts := conf.DiagnosticOptions()
	if opts.TrendDeadbandFraction != 0.002 {
		t.Errorf("TrendDeadbandFraction = %v, expected 0.002", opts.TrendDeadbandFraction)
	}
	if opts.CompletenessWeights.MonthCoverage != 3 || opts.CompletenessWeights.DatasetCoverage != 1 {
		t.Errorf("CompletenessWeights = %+v, expected 3/1", opts.CompletenessWeights)
	}
	if opts.CostModel.HighCorrelation != 0.8 {
		t.Errorf("CostModel.HighCorrelation = %v, expected 0.8", opts.CostModel.HighCorrelation)
	}
}

func TestSizingOptions(t *testing.T) {
	conf := DefaultConfiguration()
	conf.Analysis.FallbackWidening = 2.5
	if got := conf.SizingOptions().FallbackWidening; got != 2.5 {
		t.Errorf("FallbackWidening = %v, expected 2.5", got)
	}
}

func TestLoadConfiguration(t *testing.T) {
	content := `---
logging:
  level: debug
  format: console
output:
  format: json
ranking:
  riskMultiplierLow: 0.9
  timeMultiplierPerWeek: 0.02
analysis:
  trendDeadbandFraction: 0.005
  fallbackWidening: 2.0
  costModel:
    highCorrelation: 0.75
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	conf, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if conf.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, expected debug", conf.Logging.Level)
	}
	if conf.Output.Format != "json" {
		t.Errorf("Output.Format = %q, expected json", conf.Output.Format)
	}
	if conf.Ranking.RiskMultiplierLow != 0.9 {
		t.Errorf("Ranking.RiskMultiplierLow = %v, expected 0.9", conf.Ranking.RiskMultiplierLow)
	}
	if conf.Ranking.TimeMultiplierPerWeek != 0.02 {
		t.Errorf("Ranking.TimeMultiplierPerWeek = %v, expected 0.02", conf.Ranking.TimeMultiplierPerWeek)
	}
	if conf.Analysis.TrendDeadbandFraction != 0.005 {
		t.Errorf("Analysis.TrendDeadbandFraction = %v, expected 0.005", conf.Analysis.TrendDeadbandFraction)
	}
	if conf.Analysis.FallbackWidening != 2.0 {
		t.Errorf("Analysis.FallbackWidening = %v, expected 2.0", conf.Analysis.FallbackWidening)
	}
	if conf.Analysis.CostModel.HighCorrelation != 0.75 {
		t.Errorf("Analysis.CostModel.HighCorrelation = %v, expected 0.75", conf.Analysis.CostModel.HighCorrelation)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Errorf("LoadConfiguration() expected error for missing file but got none")
	}
}

func TestValidateConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Configuration)
		expected string
	}{
		{
			name:   "Defaults are clean",
			mutate: func(c *Configuration) {},
		},
		{
			name:     "Unknown logging level",
			mutate:   func(c *Configuration) { c.Logging.Level = "verbose" },
			expected: "unknown logging level",
		},
		{
			name:     "Unknown output format",
			mutate:   func(c *Configuration) { c.Output.Format = "xml" },
			expected: "unknown output format",
		},
		{
			name:     "Fallback widening below minimum",
			mutate:   func(c *Configuration) { c.Analysis.FallbackWidening = 1.1 },
			expected: "below the minimum",
		},
		{
			name:     "Negative completeness weight",
			mutate:   func(c *Configuration) { c.Analysis.CompletenessMonthWeight = -1 },
			expected: "negative completeness weights",
		},
		{
			name:     "Invalid ranking multipliers",
			mutate:   func(c *Configuration) { c.Ranking.RiskMultiplierLow = -0.5 },
			expected: "will fail at ranking",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := DefaultConfiguration()
			tt.mutate(conf)

			warnings := conf.ValidateConfiguration()
			if tt.expected == "" {
				if len(warnings) != 0 {
					t.Errorf("ValidateConfiguration() = %v, expected no warnings", warnings)
				}
				return
			}
			found := false
			for _, w := range warnings {
				if strings.Contains(w, tt.expected) {
					found = true
				}
			}
			if !found {
				t.Errorf("ValidateConfiguration() = %v, expected a warning containing %q", warnings, tt.expected)
			}
		})
	}
}
