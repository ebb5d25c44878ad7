// Package report assembles the view documents from the finished stage
// results and emits them as independent JSON files.
package report

import (
	"fmt"
	"math"

	"github.com/kredmint/bureauscrub/internal/classify"
	"github.com/kredmint/bureauscrub/internal/config"
	"github.com/kredmint/bureauscrub/internal/curves"
	"github.com/kredmint/bureauscrub/internal/funnel"
	"github.com/kredmint/bureauscrub/internal/quality"
	"github.com/kredmint/bureauscrub/pkg/models"
	"github.com/kredmint/bureauscrub/pkg/utils"
)

// acctTypeLimit caps the account-type distribution chart.
const acctTypeLimit = 12

// Build flattens the stage results into the dashboard documents. Every
// list is emitted in a fixed order; two runs over the same input
// produce byte-identical documents.
func Build(pop *models.Population, cls *classify.Result, crv *curves.Result, fn *funnel.Result, qa *quality.Result, pol config.PolicyConfig) *models.ViewSet {
	vs := &models.ViewSet{}
	n0 := pop.Size()

	vs.Overview = models.ViewOverview{
		TotalCustomers:             n0,
		AvgTradelinesPerCustomer:   qa.AvgTradelines,
		ServiceableBase:            fn.SAM,
		PLPenetrationRate:          pct(targetHolders(pop), n0),
		GoldenWindowCurveA:         crv.GoldenA,
		GoldenWindowCurveB:         crv.GoldenB,
		CustomersInGoldenWindowNow: crv.TimingCounts[models.TimingGoldenWindow],
		BureauDate:                 pop.BureauDate.Format("2006-01-02"),
	}

	vs.Population = buildPopulation(cls, n0)
	vs.Behaviour = buildBehaviour(cls, crv)
	vs.Risk = buildRisk(cls)
	vs.Timing = buildTiming(crv)
	vs.Monetisation = buildMonetisation(fn, pol)
	vs.Outreach = buildOutreach(fn)
	vs.DataQuality = buildDataQuality(qa, n0)

	return vs
}

func buildPopulation(cls *classify.Result, n0 int) models.ViewPopulation {
	var view models.ViewPopulation

	for _, b := range []models.Bucket{models.BucketA, models.BucketB, models.BucketC, models.BucketD} {
		count := cls.BucketCounts[b]
		view.BucketDistribution = append(view.BucketDistribution, models.BucketSlice{
			Bucket:    "Bucket " + string(b),
			Customers: count,
			Pct:       pct(count, n0),
		})
	}

	for _, lt := range []models.LenderType{models.LenderNBF, models.LenderPVT, models.LenderPUB, models.LenderMixed} {
		view.LenderTypeDistribution = append(view.LenderTypeDistribution, models.LenderTypeSlice{
			LenderType: string(lt),
			Customers:  cls.LenderTypeCounts[lt],
		})
	}

	for _, mix := range []models.ProductMix{models.MixAnchorAndTarget, models.MixAnchorOnly, models.MixOther} {
		view.ProductMix = append(view.ProductMix, models.MixSlice{
			Mix:       string(mix),
			Customers: cls.ProductMixCounts[mix],
		})
	}

	for _, code := range cls.AcctTypesByCount(acctTypeLimit) {
		view.AcctTypeDistribution = append(view.AcctTypeDistribution, models.AcctTypeSlice{
			AcctType:   code,
			Tradelines: cls.AcctTypeCounts[code],
		})
	}

	return view
}

func buildBehaviour(cls *classify.Result, crv *curves.Result) models.ViewBehaviour {
	var view models.ViewBehaviour

	view.TimeToNextPLCurveA = monthCounts(crv.CurveA)
	view.TimeToNextPLCurveB = monthCounts(crv.CurveB)

	for _, band := range classify.RepaymentBands {
		view.RepaymentQualityDistribution = append(view.RepaymentQualityDistribution, models.RangeCount{
			Bucket:    band,
			Customers: cls.RepaymentQuality[band],
		})
	}

	view.CreditVelocity = []models.SegmentCount{
		{Segment: "0 accounts (12m)", Customers: cls.Velocity0},
		{Segment: "1 account", Customers: cls.Velocity1},
		{Segment: "2+ accounts", Customers: cls.Velocity2Plus},
	}

	return view
}

func buildRisk(cls *classify.Result) models.ViewRisk {
	var view models.ViewRisk

	for _, tier := range []string{classify.RiskTierLow, classify.RiskTierMid, classify.RiskTierHigh} {
		view.RiskTierDistribution = append(view.RiskTierDistribution, models.TierCount{
			Tier:      tier,
			Customers: cls.RiskTierCounts[tier],
		})
	}

	tiers := []models.AffordabilityTier{models.TierMicro, models.TierMid, models.TierMass, models.TierAffluent}
	for _, tier := range tiers {
		view.AffordabilityDistribution = append(view.AffordabilityDistribution, models.TierCount{
			Tier:      string(tier),
			Customers: cls.AffordabilityCounts[tier],
		})
	}

	return view
}

func buildTiming(crv *curves.Result) models.ViewTiming {
	var view models.ViewTiming

	flags := []models.TimingFlag{
		models.TimingGoldenWindow, models.TimingMilestone,
		models.TimingEarly, models.TimingDormant,
	}
	for _, f := range flags {
		view.TimingFlagDistribution = append(view.TimingFlagDistribution, models.FlagCount{
			Flag:      string(f),
			Customers: crv.TimingCounts[f],
		})
	}

	for m, count := range crv.MonthsSinceAnchor {
		view.MonthsSinceCarLoan = append(view.MonthsSinceCarLoan, models.MonthCustomers{
			Months:    m,
			Customers: count,
		})
	}

	for m := 1; m <= 12; m++ {
		view.SeasonalIndex = append(view.SeasonalIndex, models.SeasonalMonth{
			Month:     m,
			MonthName: utils.MonthShort(m),
			Index:     crv.SeasonalIndex[m-1],
		})
	}

	return view
}

func buildMonetisation(fn *funnel.Result, pol config.PolicyConfig) models.ViewMonetisation {
	view := models.ViewMonetisation{
		TamWaterfall: []models.WaterfallStage{
			{Stage: "Total customers (N0)", Value: fn.N0, Type: "start"},
			{Stage: "Less: Bucket D (bad)", Value: -fn.BucketD, Type: "minus"},
			{Stage: fmt.Sprintf("Less: Thin file (<%d tradelines)", pol.ThinFileMin), Value: -fn.ThinFile, Type: "minus"},
			{Stage: "Serviceable base (SAM)", Value: fn.SAM, Type: "total"},
		},
		SamSegments: models.SamSegments{
			PLEligible:  fn.PLEligible,
			LacEligible: fn.LacEligible,
			Deferred:    fn.Deferred,
			Excluded:    fn.Excluded,
		},
		RevenueModel: models.RevenueModel{
			PL:                      productModel(fn.PL, pol.Funnel.PL),
			Lac:                     productModel(fn.Lac, pol.Funnel.Lac),
			TotalAumYear1Inr:        fn.TotalAUMYear1,
			TotalNetRevenueYear1Inr: fn.TotalRevenueYear1,
		},
		AumProjection: []models.AumPoint{
			{Month: 6, AumInr: fn.AUMMonth6, Label: "Month 6"},
			{Month: 12, AumInr: fn.AUMMonth12, Label: "Month 12"},
			{Month: 24, AumInr: fn.AUMMonth24, Label: "Month 24"},
		},
	}
	return view
}

func productModel(out funnel.ProductOutcome, p config.ProductPolicy) models.ProductModel {
	return models.ProductModel{
		AvgTicketInr:    p.AvgTicket,
		AvgTenorMonths:  p.AvgTenorMonths,
		YieldPct:        p.YieldPct,
		CreditCostPct:   p.CreditCostPct,
		NetMarginPct:    round1(p.NetMargin * 100),
		PrepaymentAdj:   p.PrepaymentAdj,
		DisbursalsCount: out.Disbursals,
		AumYear1Inr:     out.AUMYear1,
		RevenueYear1Inr: out.RevenueYear1,
	}
}

func buildOutreach(fn *funnel.Result) models.ViewOutreach {
	return models.ViewOutreach{
		OutreachCohortDistribution: []models.CohortCount{
			{Cohort: "Immediate (top 20%)", Customers: fn.OutreachImmediate},
			{Cohort: "Next 30 days", Customers: fn.Outreach30d},
			{Cohort: "Next 90 days", Customers: fn.Outreach90d},
			{Cohort: "Hold", Customers: fn.OutreachHold},
		},
	}
}

func buildDataQuality(qa *quality.Result, n0 int) models.ViewDataQuality {
	view := models.ViewDataQuality{
		TotalCustomers:           n0,
		AvgTradelinesPerCustomer: qa.AvgTradelines,
		AnchorSummary: models.AnchorSummary{
			Confirmed: 0, // partner code mapping not available yet
			Inferred:  qa.AnchorInferred,
			None:      qa.AnchorNone,
			Ambiguous: 0,
		},
		Month0PctOnDemandCurve:    qa.Month0Pct,
		PreExistingPLPct:          qa.PreExistingPct,
		BureauFreshnessDays:       qa.FreshnessDays,
		BureauFreshPctUnder90Days: qa.FreshPct,
		RepaymentBucketConsistency: models.ConsistencyCheck{
			Pass:                  qa.ConsistencyPass,
			BucketDHighQualityPct: qa.BucketDHighQualityPct,
		},
		Month36Spike: models.ClipCounts{
			Month35: qa.Month35,
			Month36: qa.Month36,
			Month37: qa.Month37,
		},
	}

	freshStatus := quality.StatusCheck
	if qa.FreshPct == 100.0 {
		freshStatus = quality.StatusOK
	}
	consistencyValue, consistencyStatus := "Check", quality.StatusCheck
	if qa.ConsistencyPass {
		consistencyValue, consistencyStatus = "Pass", quality.StatusOK
	}

	view.Table = []models.QualityRow{
		{Metric: "Total CUSTOMER_IDs", Value: fmt.Sprintf("%d", n0), Status: ""},
		{Metric: "Avg tradelines / customer", Value: fmt.Sprintf("%.2f", qa.AvgTradelines), Status: qa.AvgTradelinesStatus},
		{Metric: "Anchor: none (timing excluded)", Value: fmt.Sprintf("%d (%.1f%%)", qa.AnchorNone, qa.AnchorNonePct), Status: qa.AnchorStatus},
		{Metric: "Month-0 spike in demand curve", Value: utils.FormatPct(qa.Month0Pct), Status: qa.Month0Status},
		{Metric: "Bureau data freshness < 90 days", Value: utils.FormatPct(qa.FreshPct), Status: freshStatus},
		{Metric: "Repayment vs bucket consistency", Value: consistencyValue, Status: consistencyStatus},
	}

	return view
}

func monthCounts(hist []int) []models.MonthCount {
	out := make([]models.MonthCount, len(hist))
	for m, count := range hist {
		out[m] = models.MonthCount{Months: m, Count: count}
	}
	return out
}

func targetHolders(pop *models.Population) int {
	n := 0
	for _, agg := range pop.Customers {
		if agg.HasTargetProduct {
			n++
		}
	}
	return n
}

// pct returns part/whole as a rounded percentage, 0 for an empty whole.
func pct(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return utils.Round2(100.0 * float64(part) / float64(whole))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
