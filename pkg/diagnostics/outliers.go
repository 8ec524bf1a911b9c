package diagnostics

import (
	"math"
	"sort"

	"github.com/marginlens/marginlens/pkg/constants"
	"github.com/marginlens/marginlens/pkg/mathutil"
	"github.com/marginlens/marginlens/pkg/pnl"
	"github.com/marginlens/marginlens/pkg/stats"
)

// VendorSpike is a vendor-month whose spend deviates more than the z-score
// threshold from that vendor's own monthly mean.
type VendorSpike struct {
	Vendor string  `json:"vendor"`
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
	ZScore float64 `json:"z_score"`
}

// OpexSpike is a category-month whose spend deviates more than the z-score
// threshold from that category's monthly mean.
type OpexSpike struct {
	Category string  `json:"category"`
	Month    string  `json:"month"`
	Amount   float64 `json:"amount"`
	ZScore   float64 `json:"z_score"`
}

// RevenueDecline is a consecutive month pair where revenue dropped by more
// than the decline threshold.
type RevenueDecline struct {
	Month          string  `json:"month"`
	PrevRevenue    float64 `json:"prev_revenue"`
	CurrentRevenue float64 `json:"current_revenue"`
	DeclinePct     float64 `json:"decline_pct"`
}

// OutlierReport aggregates all flagged anomalies for one run.
type OutlierReport struct {
	VendorSpikes    []VendorSpike    `json:"vendor_spikes"`
	OpexSpikes      []OpexSpike      `json:"opex_spikes"`
	RevenueDeclines []RevenueDecline `json:"revenue_declines"`
}

// opexCategoryNames are the canonical opex series checked for spikes, in
// report order.
var opexCategoryNames = []string{"sales_marketing", "rnd", "gna", "other", "total"}

func opexCategoryValue(m pnl.MonthlyFinancials, category string) float64 {
	switch category {
	case "sales_marketing":
		return m.OpexSalesMarketing
	case "rnd":
		return m.OpexRnD
	case "gna":
		return m.OpexGnA
	case "other":
		return m.OpexOther
	default:
		return m.TotalOpex
	}
}

// DetectOutliers flags vendor spend spikes, opex spikes, and revenue
// declines. Series with zero variance or fewer than three points flag
// nothing; that is insufficient signal, not an error. Vendors are iterated
// in sorted order so the report is independent of input iteration order.
func DetectOutliers(months []pnl.MonthlyFinancials, vendor []pnl.VendorRecord) OutlierReport {
	report := OutlierReport{
		VendorSpikes:    []VendorSpike{},
		OpexSpikes:      []OpexSpike{},
		RevenueDeclines: []RevenueDecline{},
	}

	// Vendor spikes, computed independently per vendor.
	byVendor := make(map[string]map[string]float64)
	for _, rec := range vendor {
		if byVendor[rec.Vendor] == nil {
			byVendor[rec.Vendor] = make(map[string]float64)
		}
		byVendor[rec.Vendor][rec.Month] += rec.Amount
	}
	vendors := make([]string, 0, len(byVendor))
	for name := range byVendor {
		vendors = append(vendors, name)
	}
	sort.Strings(vendors)
	for _, name := range vendors {
		spend := byVendor[name]
		vendorMonths := make([]string, 0, len(spend))
		for month := range spend {
			vendorMonths = append(vendorMonths, month)
		}
		sort.Strings(vendorMonths)
		amounts := make([]float64, len(vendorMonths))
		for i, month := range vendorMonths {
			amounts[i] = spend[month]
		}
		if len(amounts) < constants.MinZScoreSamples {
			continue
		}
		scores, ok := stats.ZScores(amounts)
		if !ok {
			continue
		}
		for i, z := range scores {
			if math.Abs(z) > constants.ZScoreThreshold {
				report.VendorSpikes = append(report.VendorSpikes, VendorSpike{
					Vendor: name,
					Month:  vendorMonths[i],
					Amount: amounts[i],
					ZScore: z,
				})
			}
		}
	}

	// Opex spikes, computed independently per category.
	if len(months) >= constants.MinZScoreSamples {
		for _, category := range opexCategoryNames {
			amounts := make([]float64, len(months))
			for i, m := range months {
				amounts[i] = opexCategoryValue(m, category)
			}
			scores, ok := stats.ZScores(amounts)
			if !ok {
				continue
			}
			for i, z := range scores {
				if math.Abs(z) > constants.ZScoreThreshold {
					report.OpexSpikes = append(report.OpexSpikes, OpexSpike{
						Category: category,
						Month:    months[i].Month,
						Amount:   amounts[i],
						ZScore:   z,
					})
				}
			}
		}
	}

	// Revenue declines, pairwise over consecutive months, independent of
	// z-scores.
	for i := 1; i < len(months); i++ {
		prev := months[i-1].Revenue
		curr := months[i].Revenue
		if prev <= 0 {
			continue
		}
		decline := (prev - curr) / prev
		if decline > constants.RevenueDeclineThreshold {
			report.RevenueDeclines = append(report.RevenueDeclines, RevenueDecline{
				Month:          months[i].Month,
				PrevRevenue:    prev,
				CurrentRevenue: curr,
				DeclinePct:     mathutil.Round(decline * constants.PercentageMultiplier),
			})
		}
	}

	return report
}
