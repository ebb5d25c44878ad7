// Package funnel computes the TAM waterfall, the eligibility segments
// of the serviceable base, the parametric revenue model, and the
// outreach cohorts. All money math runs on exact decimals and only
// crosses into float64 at the view boundary.
package funnel

import (
	"github.com/shopspring/decimal"

	"github.com/kredmint/bureauscrub/internal/classify"
	"github.com/kredmint/bureauscrub/internal/config"
	"github.com/kredmint/bureauscrub/pkg/models"
)

// ProductOutcome is the modelled result for one product.
type ProductOutcome struct {
	Eligible     int
	Disbursals   int
	AUMYear1     float64
	RevenueYear1 float64
}

// Result holds the funnel and projection outputs.
type Result struct {
	N0       int
	BucketD  int
	ThinFile int
	SAM      int

	PLEligible  int
	LacEligible int
	Deferred    int
	Excluded    int

	PL  ProductOutcome
	Lac ProductOutcome

	TotalAUMYear1     float64
	TotalRevenueYear1 float64

	AUMMonth6  float64
	AUMMonth12 float64
	AUMMonth24 float64

	OutreachImmediate int
	Outreach30d       int
	Outreach90d       int
	OutreachHold      int
}

// Run applies the exclusion funnel and revenue model.
func Run(pop *models.Population, cls *classify.Result, pol config.PolicyConfig) *Result {
	res := &Result{N0: pop.Size()}
	res.BucketD = cls.BucketCounts[models.BucketD]

	// Walk the population once to size the waterfall and segments.
	// Thin-file only counts customers not already excluded as Bucket D,
	// so the two subtractions never overlap and the waterfall lands
	// exactly on the serviceable base.
	for _, id := range pop.SortedIDs() {
		agg := pop.Customers[id]
		c := cls.PerCustomer[id]

		if c.Bucket == models.BucketD {
			continue
		}
		if agg.TradelineCount < pol.ThinFileMin {
			res.ThinFile++
			continue
		}

		// Customer is in the serviceable base; segment by score.
		switch {
		case c.RiskScore >= pol.Risk.PrimaryMin:
			res.PLEligible++
		case c.RiskScore >= pol.Risk.SecondaryMin && agg.HasAnchorProduct:
			res.LacEligible++
		case c.RiskScore >= pol.Risk.SecondaryMin:
			res.Deferred++
		default:
			res.Excluded++
		}
	}

	res.SAM = res.N0 - res.BucketD - res.ThinFile
	if res.SAM < 0 {
		res.SAM = 0
	}

	res.PL = modelProduct(res.PLEligible, pol.Funnel.PL)
	res.Lac = modelProduct(res.LacEligible, pol.Funnel.Lac)

	totalAUM := decimal.NewFromFloat(res.PL.AUMYear1).Add(decimal.NewFromFloat(res.Lac.AUMYear1))
	totalRev := decimal.NewFromFloat(res.PL.RevenueYear1).Add(decimal.NewFromFloat(res.Lac.RevenueYear1))
	res.TotalAUMYear1 = totalAUM.InexactFloat64()
	res.TotalRevenueYear1 = totalRev.InexactFloat64()

	res.AUMMonth6 = totalAUM.Mul(decimal.NewFromFloat(pol.Funnel.Month6Factor)).Round(0).InexactFloat64()
	res.AUMMonth12 = totalAUM.Mul(decimal.NewFromFloat(pol.Funnel.Month12Factor)).Round(0).InexactFloat64()
	res.AUMMonth24 = totalAUM.Mul(decimal.NewFromFloat(pol.Funnel.Month24Factor)).Round(0).InexactFloat64()

	res.outreach(cls)
	return res
}

// modelProduct applies demand × take to the eligible count and runs
// the revenue model: disbursals × ticket × (tenor/12 × prepayment
// adjustment) × margin. Disbursal counts truncate, money rounds to
// whole rupees.
func modelProduct(eligible int, p config.ProductPolicy) ProductOutcome {
	out := ProductOutcome{Eligible: eligible}

	disb := decimal.NewFromInt(int64(eligible)).
		Mul(decimal.NewFromFloat(p.DemandRate)).
		Mul(decimal.NewFromFloat(p.TakeRate)).
		IntPart()
	out.Disbursals = int(disb)

	runout := decimal.NewFromInt(int64(p.AvgTenorMonths)).
		Div(decimal.NewFromInt(12)).
		Mul(decimal.NewFromFloat(p.PrepaymentAdj))

	aum := decimal.NewFromInt(disb).
		Mul(decimal.NewFromFloat(p.AvgTicket)).
		Mul(runout)
	out.AUMYear1 = aum.Round(0).InexactFloat64()

	out.RevenueYear1 = aum.Mul(decimal.NewFromFloat(p.NetMargin)).Round(0).InexactFloat64()
	return out
}

// outreach buckets customers into contact-priority cohorts by risk
// tier, capping the immediate cohort at the top fifth of the book.
func (r *Result) outreach(cls *classify.Result) {
	top := cls.RiskTierCounts[classify.RiskTierHigh]
	mid := cls.RiskTierCounts[classify.RiskTierMid]
	low := cls.RiskTierCounts[classify.RiskTierLow]

	r.OutreachImmediate = top
	if limit := r.N0 / 5; r.OutreachImmediate > limit {
		r.OutreachImmediate = limit
	}
	r.Outreach30d = mid
	r.Outreach90d = low

	hold := r.N0 - r.OutreachImmediate - mid - low
	if hold < 0 {
		hold = 0
	}
	r.OutreachHold = hold
}
