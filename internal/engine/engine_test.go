package engine

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/marginlens/marginlens/internal/config"
	"github.com/marginlens/marginlens/pkg/initiatives"
	"github.com/marginlens/marginlens/pkg/pnl"
	"github.com/marginlens/marginlens/pkg/testutil"
)

func testSnapshot() pnl.Snapshot {
	snapshot := pnl.Snapshot{GL: testutil.GrowthRows(6, 100000, 5000, 40000)}
	for _, month := range testutil.MonthSequence(6) {
		snapshot.Payroll = append(snapshot.Payroll, pnl.PayrollRecord{
			Month:           month,
			Function:        "engineering",
			Headcount:       12,
			FullyLoadedCost: testutil.FloatPtr(30000),
		})
		snapshot.Vendor = append(snapshot.Vendor, pnl.VendorRecord{
			Month:  month,
			Vendor: "acme",
			Amount: 5000,
		})
	}
	return snapshot
}

func testHypotheses() []initiatives.Hypothesis {
	return []initiatives.Hypothesis{
		{Title: "Consolidate vendors", Category: initiatives.CategoryVendor},
		{Title: "Pricing review", Category: initiatives.CategoryPricing},
		{Title: "Org efficiency", Category: initiatives.CategoryHeadcount},
	}
}

func TestRun(t *testing.T) {
	result, err := Run(nil, testSnapshot(), testHypotheses(), nil, *config.DefaultConfiguration())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(result.PnL.Months) != 6 {
		t.Errorf("canonical series has %d months, expected 6", len(result.PnL.Months))
	}
	if len(result.Diagnostics.Trends) == 0 {
		t.Errorf("diagnostics bundle carries no trends")
	}
	if len(result.Diagnostics.CostSplits) == 0 {
		t.Errorf("diagnostics bundle carries no cost splits")
	}
	if result.Diagnostics.Completeness.TotalMonths != 6 {
		t.Errorf("completeness TotalMonths = %d, expected 6", result.Diagnostics.Completeness.TotalMonths)
	}
	if len(result.Initiatives) != 3 {
		t.Fatalf("Run() ranked %d initiatives, expected 3", len(result.Initiatives))
	}
	for i, initiative := range result.Initiatives {
		if initiative.Rank != i+1 {
			t.Errorf("initiative %d rank = %d, expected %d", i, initiative.Rank, i+1)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	snapshot := testSnapshot()
	hypotheses := testHypotheses()
	conf := *config.DefaultConfiguration()

	first, err := Run(nil, snapshot, hypotheses, nil, conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	second, err := Run(nil, snapshot, hypotheses, nil, conf)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Run() results differ across identical invocations")
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(firstJSON) != string(secondJSON) {
		t.Errorf("serialized results differ across identical invocations")
	}
}

func TestRunNoHypotheses(t *testing.T) {
	result, err := Run(nil, testSnapshot(), nil, nil, *config.DefaultConfiguration())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Initiatives == nil || len(result.Initiatives) != 0 {
		t.Errorf("Initiatives = %v, expected empty non-nil list", result.Initiatives)
	}
	if len(result.Diagnostics.Trends) == 0 {
		t.Errorf("diagnostics skipped when no hypotheses supplied")
	}
}

func TestRunDuplicateMonth(t *testing.T) {
	snapshot := pnl.Snapshot{GL: []pnl.RawMonthlyRow{
		{Month: "2024-01", Revenue: 100},
		{Month: "2024-01", Revenue: 200},
	}}

	_, err := Run(nil, snapshot, nil, nil, *config.DefaultConfiguration())
	var dup *pnl.DuplicateMonthError
	if !errors.As(err, &dup) {
		t.Fatalf("Run() error = %v, expected *pnl.DuplicateMonthError", err)
	}
}

func TestRunInvalidRankingConfig(t *testing.T) {
	conf := *config.DefaultConfiguration()
	conf.Ranking.RiskMultiplierMed = -1

	_, err := Run(nil, testSnapshot(), testHypotheses(), nil, conf)
	var invalid *initiatives.InvalidRankingConfigError
	if !errors.As(err, &invalid) {
		t.Fatalf("Run() error = %v, expected *initiatives.InvalidRankingConfigError", err)
	}
}
