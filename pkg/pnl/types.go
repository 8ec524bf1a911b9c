// Package pnl defines the input snapshot records and the canonical monthly
// profit-and-loss series, and reconstructs the latter from raw general-ledger
// rows.
package pnl

// RawMonthlyRow is one month of general-ledger input as delivered by the
// ingestion collaborator. Missing optional opex columns default to 0.
type RawMonthlyRow struct {
	Month              string  `json:"month"`
	Revenue            float64 `json:"revenue"`
	COGS               float64 `json:"cogs"`
	OpexSalesMarketing float64 `json:"opex_sales_marketing"`
	OpexRnD            float64 `json:"opex_rnd"`
	OpexGnA            float64 `json:"opex_gna"`
	OpexOther          float64 `json:"opex_other"`
}

// PayrollRecord is one month of payroll summary for a single function.
// FullyLoadedCost is optional in the source data; nil means not supplied.
type PayrollRecord struct {
	Month           string   `json:"month"`
	Function        string   `json:"function"`
	Headcount       int      `json:"headcount"`
	FullyLoadedCost *float64 `json:"fully_loaded_cost,omitempty"`
}

// VendorRecord is one month of spend against a single vendor.
type VendorRecord struct {
	Month    string  `json:"month"`
	Vendor   string  `json:"vendor"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// SegmentRecord is one month of revenue for a single segment.
type SegmentRecord struct {
	Month   string  `json:"month"`
	Segment string  `json:"segment"`
	Revenue float64 `json:"revenue"`
}

// Snapshot is the immutable input to an analysis run. GL rows are required;
// the remaining datasets are optional and their absence is never fatal.
type Snapshot struct {
	GL       []RawMonthlyRow `json:"gl"`
	Payroll  []PayrollRecord `json:"payroll,omitempty"`
	Vendor   []VendorRecord  `json:"vendor,omitempty"`
	Segments []SegmentRecord `json:"segments,omitempty"`
}

// HasPayroll reports whether payroll data was supplied.
func (s Snapshot) HasPayroll() bool { return len(s.Payroll) > 0 }

// HasVendor reports whether vendor spend data was supplied.
func (s Snapshot) HasVendor() bool { return len(s.Vendor) > 0 }

// HasSegments reports whether segment revenue data was supplied.
func (s Snapshot) HasSegments() bool { return len(s.Segments) > 0 }

// MonthlyFinancials is one month of the canonical P&L series. The derived
// fields are always recomputed from the raw inputs during reconstruction and
// are never stored independently of them.
type MonthlyFinancials struct {
	Month              string  `json:"month"`
	Revenue            float64 `json:"revenue"`
	COGS               float64 `json:"cogs"`
	OpexSalesMarketing float64 `json:"opex_sales_marketing"`
	OpexRnD            float64 `json:"opex_rnd"`
	OpexGnA            float64 `json:"opex_gna"`
	OpexOther          float64 `json:"opex_other"`
	GrossMargin        float64 `json:"gross_margin"`
	GrossMarginPct     float64 `json:"gross_margin_pct"`
	TotalOpex          float64 `json:"total_opex"`
	EBITDA             float64 `json:"ebitda"`
	EBITDAMarginPct    float64 `json:"ebitda_margin_pct"`
}

// Series is the output of reconstruction: the canonical months in
// chronological order plus the side list of months whose revenue was zero,
// consumed by the completeness scorer.
type Series struct {
	Months            []MonthlyFinancials `json:"months"`
	ZeroRevenueMonths []string            `json:"zero_revenue_months,omitempty"`
}
