package ingest

import (
	"os"

	"github.com/marginlens/marginlens/pkg/initiatives"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// hypothesisFile mirrors the YAML document produced by the external
// hypothesis generator.
type hypothesisFile struct {
	Hypotheses []initiatives.Hypothesis    `yaml:"hypotheses"`
	Context    *initiatives.CompanyContext `yaml:"context,omitempty"`
}

// LoadHypotheses decodes the hypothesis YAML file. The hypothesis source is
// an external, failure-prone collaborator, so every failure here collapses
// to an empty list with a warning: the engine proceeds identically however
// many hypotheses were supplied. An empty path means no file was offered.
func LoadHypotheses(logger *zap.Logger, path string) ([]initiatives.Hypothesis, *initiatives.CompanyContext) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path == "" {
		return []initiatives.Hypothesis{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("failed to read hypothesis file; proceeding with zero hypotheses",
			zap.String("op", "ingest.LoadHypotheses"),
			zap.String("path", path),
			zap.Error(err),
		)
		return []initiatives.Hypothesis{}, nil
	}

	var file hypothesisFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		logger.Warn("failed to decode hypothesis file; proceeding with zero hypotheses",
			zap.String("op", "ingest.LoadHypotheses"),
			zap.String("path", path),
			zap.Error(err),
		)
		return []initiatives.Hypothesis{}, nil
	}

	if file.Hypotheses == nil {
		file.Hypotheses = []initiatives.Hypothesis{}
	}
	logger.Info("loaded hypotheses",
		zap.String("op", "ingest.LoadHypotheses"),
		zap.Int("count", len(file.Hypotheses)),
	)
	return file.Hypotheses, file.Context
}
