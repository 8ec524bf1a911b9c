package ingest

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/marginlens/marginlens/pkg/initiatives"
)

func TestLoadHypotheses(t *testing.T) {
	path := writeTempFile(t, "hypotheses.yaml", strings.Join([]string{
		"---",
		"hypotheses:",
		"  - title: Consolidate vendors",
		"    category: Vendor",
		"    description: Too many overlapping SaaS tools",
		"  - title: Pricing review",
		"    category: Pricing",
		"context:",
		"  companyName: Acme Corp",
		"  industry: saas",
	}, "\n"))

	hypotheses, context := LoadHypotheses(nil, path)
	if len(hypotheses) != 2 {
		t.Fatalf("LoadHypotheses() returned %d hypotheses, expected 2", len(hypotheses))
	}
	if hypotheses[0].Title != "Consolidate vendors" || hypotheses[0].Category != initiatives.CategoryVendor {
		t.Errorf("hypotheses[0] = %+v, unexpected fields", hypotheses[0])
	}
	if hypotheses[0].Description != "Too many overlapping SaaS tools" {
		t.Errorf("hypotheses[0].Description = %q, unexpected value", hypotheses[0].Description)
	}
	if context == nil || context.CompanyName != "Acme Corp" || context.Industry != "saas" {
		t.Errorf("context = %+v, expected company name and industry", context)
	}
}

func TestLoadHypothesesDegradation(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "Empty path",
			path: func(t *testing.T) string { return "" },
		},
		{
			name: "Missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
		},
		{
			name: "Corrupt YAML",
			path: func(t *testing.T) string {
				return writeTempFile(t, "hypotheses.yaml", "hypotheses: [unclosed")
			},
		},
		{
			name: "No hypotheses key",
			path: func(t *testing.T) string {
				return writeTempFile(t, "hypotheses.yaml", "context:\n  industry: saas")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hypotheses, _ := LoadHypotheses(nil, tt.path(t))
			if hypotheses == nil {
				t.Fatalf("LoadHypotheses() = nil, expected empty non-nil list")
			}
			if len(hypotheses) != 0 {
				t.Errorf("LoadHypotheses() returned %d hypotheses, expected 0", len(hypotheses))
			}
		})
	}
}
