// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"

	"github.com/marginlens/marginlens/pkg/constants"
	"github.com/marginlens/marginlens/pkg/diagnostics"
	"github.com/marginlens/marginlens/pkg/initiatives"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for marginlens.
type Configuration struct {
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
	Ranking  RankingConfig  `yaml:"ranking,omitempty"`
	Analysis AnalysisConfig `yaml:"analysis,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// RankingConfig holds the initiative scoring multipliers. Zero values are
// replaced by the defaults; explicitly negative values are left for ranking
// validation to reject.
type RankingConfig struct {
	RiskMultiplierLow     float64 `yaml:"riskMultiplierLow,omitempty" mapstructure:"riskMultiplierLow"`
	RiskMultiplierMed     float64 `yaml:"riskMultiplierMed,omitempty" mapstructure:"riskMultiplierMed"`
	RiskMultiplierHigh    float64 `yaml:"riskMultiplierHigh,omitempty" mapstructure:"riskMultiplierHigh"`
	TimeMultiplierBase    float64 `yaml:"timeMultiplierBase,omitempty" mapstructure:"timeMultiplierBase"`
	TimeMultiplierPerWeek float64 `yaml:"timeMultiplierPerWeek,omitempty" mapstructure:"timeMultiplierPerWeek"`
}

// AnalysisConfig holds tunables for the diagnostic and sizing stages.
type AnalysisConfig struct {
	TrendDeadbandFraction     float64         `yaml:"trendDeadbandFraction,omitempty" mapstructure:"trendDeadbandFraction"`
	FallbackWidening          float64         `yaml:"fallbackWidening,omitempty" mapstructure:"fallbackWidening"`
	CompletenessMonthWeight   float64         `yaml:"completenessMonthWeight,omitempty" mapstructure:"completenessMonthWeight"`
	CompletenessDatasetWeight float64         `yaml:"completenessDatasetWeight,omitempty" mapstructure:"completenessDatasetWeight"`
	CostModel                 CostModelConfig `yaml:"costModel,omitempty" mapstructure:"costModel"`
}

// CostModelConfig overrides the correlation-to-split mapping of the cost
// structure estimator. Zero values select the defaults.
type CostModelConfig struct {
	HighCorrelation     float64 `yaml:"highCorrelation,omitempty" mapstructure:"highCorrelation"`
	ModerateCorrelation float64 `yaml:"moderateCorrelation,omitempty" mapstructure:"moderateCorrelation"`
	HighVariablePct     float64 `yaml:"highVariablePct,omitempty" mapstructure:"highVariablePct"`
	ModerateVariablePct float64 `yaml:"moderateVariablePct,omitempty" mapstructure:"moderateVariablePct"`
	LowVariablePct      float64 `yaml:"lowVariablePct,omitempty" mapstructure:"lowVariablePct"`
}

// DefaultConfiguration returns the configuration used when no config file is
// supplied.
func DefaultConfiguration() *Configuration {
	return &Configuration{}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// RankingSettings converts the configured multipliers into the value passed
// to the ranker, substituting defaults for unset fields.
func (c *Configuration) RankingSettings() initiatives.RankingConfig {
	defaults := initiatives.DefaultRankingConfig()
	settings := initiatives.RankingConfig{
		RiskMultiplierLow:     c.Ranking.RiskMultiplierLow,
		RiskMultiplierMed:     c.Ranking.RiskMultiplierMed,
		RiskMultiplierHigh:    c.Ranking.RiskMultiplierHigh,
		TimeMultiplierBase:    c.Ranking.TimeMultiplierBase,
		TimeMultiplierPerWeek: c.Ranking.TimeMultiplierPerWeek,
	}
	if settings.RiskMultiplierLow == 0 {
		settings.RiskMultiplierLow = defaults.RiskMultiplierLow
	}
	if settings.RiskMultiplierMed == 0 {
		settings.RiskMultiplierMed = defaults.RiskMultiplierMed
	}
	if settings.RiskMultiplierHigh == 0 {
		settings.RiskMultiplierHigh = defaults.RiskMultiplierHigh
	}
	if settings.TimeMultiplierBase == 0 {
		settings.TimeMultiplierBase = defaults.TimeMultiplierBase
	}
	if settings.TimeMultiplierPerWeek == 0 {
		settings.TimeMultiplierPerWeek = defaults.TimeMultiplierPerWeek
	}
	return settings
}

// DiagnosticOptions converts the analysis section into stage options.
func (c *Configuration) DiagnosticOptions() diagnostics.Options {
	return diagnostics.Options{
		TrendDeadbandFraction: c.Analysis.TrendDeadbandFraction,
		CostModel: diagnostics.CostModel{
			HighCorrelation:     c.Analysis.CostModel.HighCorrelation,
			ModerateCorrelation: c.Analysis.CostModel.ModerateCorrelation,
			HighVariablePct:     c.Analysis.CostModel.HighVariablePct,
			ModerateVariablePct: c.Analysis.CostModel.ModerateVariablePct,
			LowVariablePct:      c.Analysis.CostModel.LowVariablePct,
		},
		CompletenessWeights: diagnostics.CompletenessWeights{
			MonthCoverage:   c.Analysis.CompletenessMonthWeight,
			DatasetCoverage: c.Analysis.CompletenessDatasetWeight,
		},
	}
}

// SizingOptions converts the analysis section into sizer options.
func (c *Configuration) SizingOptions() initiatives.SizingOptions {
	return initiatives.SizingOptions{FallbackWidening: c.Analysis.FallbackWidening}
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Ranking-multiplier validity is not a warning; it is
// checked fatally at ranking-stage entry.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		warnings = append(warnings, fmt.Sprintf("unknown logging level %q; the logger will reject it", c.Logging.Level))
	}

	switch c.Output.Format {
	case "", constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown output format %q", c.Output.Format))
	}

	if c.Analysis.FallbackWidening != 0 && c.Analysis.FallbackWidening < constants.MinFallbackWidening {
		warnings = append(warnings, fmt.Sprintf("analysis.fallbackWidening %.2f is below the minimum %.1f and will be raised",
			c.Analysis.FallbackWidening, constants.MinFallbackWidening))
	}

	if c.Analysis.CompletenessMonthWeight < 0 || c.Analysis.CompletenessDatasetWeight < 0 {
		warnings = append(warnings, "negative completeness weights are ignored")
	}

	if err := c.RankingSettings().Validate(); err != nil {
		warnings = append(warnings, fmt.Sprintf("ranking configuration will fail at ranking: %v", err))
	}

	return warnings
}
