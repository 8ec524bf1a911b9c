// Package initiatives sizes externally proposed improvement initiatives from
// the diagnostics bundle and ranks them deterministically.
package initiatives

// Category classifies an initiative hypothesis and selects its sizing
// strategy. The set is closed; unrecognized inputs map to CategoryOther.
type Category string

const (
	CategoryVendor    Category = "Vendor"
	CategoryHeadcount Category = "Headcount"
	CategoryPricing   Category = "Pricing"
	CategoryProcess   Category = "Process"
	CategoryOther     Category = "Other"
)

// ParseCategory maps a free-form category string onto the closed enum.
func ParseCategory(s string) Category {
	switch Category(s) {
	case CategoryVendor, CategoryHeadcount, CategoryPricing, CategoryProcess:
		return Category(s)
	default:
		return CategoryOther
	}
}

// RiskLevel grades initiative execution risk.
type RiskLevel string

const (
	RiskLow  RiskLevel = "Low"
	RiskMed  RiskLevel = "Med"
	RiskHigh RiskLevel = "High"
)

// Hypothesis is an externally proposed initiative. It carries no numeric
// fields; all numbers attached to an initiative are computed by the sizer.
type Hypothesis struct {
	Title       string   `json:"title" yaml:"title"`
	Category    Category `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
}

// CompanyContext is optional free-text background about the company. It is
// never used arithmetically; the sizer only records it in assumptions.
type CompanyContext struct {
	CompanyName   string `json:"company_name,omitempty" yaml:"companyName"`
	Industry      string `json:"industry,omitempty" yaml:"industry"`
	BusinessModel string `json:"business_model,omitempty" yaml:"businessModel"`
	GrowthStage   string `json:"growth_stage,omitempty" yaml:"growthStage"`
	KeyChallenges string `json:"key_challenges,omitempty" yaml:"keyChallenges"`
}

// SizedInitiative is a hypothesis with deterministic impact, cost, risk, and
// confidence estimates attached. Impacts are annualized; ImpactLow never
// exceeds ImpactHigh; Confidence stays inside the shared bounds.
type SizedInitiative struct {
	Title                      string    `json:"title"`
	Category                   Category  `json:"category"`
	Description                string    `json:"description"`
	ImpactLow                  float64   `json:"impact_low"`
	ImpactHigh                 float64   `json:"impact_high"`
	ImplementationCostEstimate float64   `json:"implementation_cost_estimate"`
	TimeToValueWeeks           int       `json:"time_to_value_weeks"`
	RiskLevel                  RiskLevel `json:"risk_level"`
	Confidence                 float64   `json:"confidence"`
	NeedsData                  bool      `json:"needs_data"`
	Assumptions                []string  `json:"assumptions"`
	NextSteps                  []string  `json:"next_steps"`
}

// RankedInitiative is a sized initiative with its ranking score and 1-based
// rank position.
type RankedInitiative struct {
	SizedInitiative
	WeightedScore float64 `json:"weighted_score"`
	Rank          int     `json:"rank"`
}
