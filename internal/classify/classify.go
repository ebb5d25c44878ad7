// Package classify derives per-customer tags and scores from finalized
// aggregates and tallies the population-level distributions. All
// derivations are pure functions of the aggregate; no record access.
package classify

import (
	"sort"

	"github.com/kredmint/bureauscrub/internal/config"
	"github.com/kredmint/bureauscrub/pkg/models"
)

// Risk tier chart labels.
const (
	RiskTierLow  = "0-39"
	RiskTierMid  = "40-69"
	RiskTierHigh = "70-100"
)

// Repayment-quality chart labels, ordered.
var RepaymentBands = []string{"0-60", "60-70", "70-80", "80-90", "90-100"}

// Result holds the per-customer classifications plus every
// distribution the population and risk views chart.
type Result struct {
	PerCustomer map[string]models.Classification

	BucketCounts        map[models.Bucket]int
	LenderTypeCounts    map[models.LenderType]int
	ProductMixCounts    map[models.ProductMix]int
	RiskTierCounts      map[string]int
	AffordabilityCounts map[models.AffordabilityTier]int

	RepaymentQuality map[string]int // band label -> customers

	// Trailing-12-month open velocity segments.
	Velocity0     int
	Velocity1     int
	Velocity2Plus int

	// Customers holding each account-type code.
	AcctTypeCounts map[string]int
}

// Run classifies every customer in the population.
func Run(pop *models.Population, pol config.PolicyConfig) *Result {
	res := &Result{
		PerCustomer:         make(map[string]models.Classification, pop.Size()),
		BucketCounts:        make(map[models.Bucket]int),
		LenderTypeCounts:    make(map[models.LenderType]int),
		ProductMixCounts:    make(map[models.ProductMix]int),
		RiskTierCounts:      make(map[string]int),
		AffordabilityCounts: make(map[models.AffordabilityTier]int),
		RepaymentQuality:    make(map[string]int),
		AcctTypeCounts:      make(map[string]int),
	}

	for _, id := range pop.SortedIDs() {
		agg := pop.Customers[id]

		cls := models.Classification{
			Bucket:        bucketOf(agg),
			RiskScore:     RiskScore(agg, pol.Risk),
			Affordability: affordabilityOf(agg, pol.Affordability),
			LenderType:    lenderTypeOf(agg),
			ProductMix:    productMixOf(agg),
		}
		res.PerCustomer[id] = cls

		res.BucketCounts[cls.Bucket]++
		res.LenderTypeCounts[cls.LenderType]++
		res.ProductMixCounts[cls.ProductMix]++
		res.RiskTierCounts[riskTierOf(cls.RiskScore)]++
		res.AffordabilityCounts[cls.Affordability]++

		if pct, ok := agg.RepaymentRatio(); ok {
			res.RepaymentQuality[repaymentBandOf(pct)]++
		}

		switch {
		case agg.OpenedLast12M >= 2:
			res.Velocity2Plus++
		case agg.OpenedLast12M == 1:
			res.Velocity1++
		default:
			res.Velocity0++
		}

		for code := range agg.AcctTypes {
			res.AcctTypeCounts[code]++
		}
	}

	return res
}

// bucketOf assigns the delinquency bucket. The rules partition every
// customer into exactly one of A-D.
func bucketOf(a *models.CustomerAggregate) models.Bucket {
	switch {
	case a.HasChargeOff || a.HasWriteOff || a.MaxDPD >= 180:
		return models.BucketD
	case a.MaxDPD > 30 && a.MaxDPD < 180:
		return models.BucketC
	case a.HasClosed && a.MaxDPD <= 30:
		return models.BucketB
	default:
		return models.BucketA
	}
}

// RiskScore computes the composite risk score, clamped to [0,100].
// Bonuses are additive; the penalty rules are mutually exclusive and
// applied in severity order.
func RiskScore(a *models.CustomerAggregate, pol config.RiskPolicy) int {
	score := pol.Base

	if a.MaxDPD == 0 && !a.HasChargeOff && !a.HasWriteOff {
		score += pol.CleanBonus
	}
	if pct, ok := a.RepaymentRatio(); ok && pct > pol.OnTimeRatioMinPct {
		score += pol.OnTimeBonus
	}
	if a.TradelineCount == 1 {
		score -= pol.SingleTradelinePenalty
	}

	switch {
	case a.HasChargeOff || a.HasWriteOff:
		score -= pol.ChargeOffPenalty
	case a.MaxDPD >= pol.HighDPDMin:
		score -= pol.HighDPDPenalty
	case a.MaxDPD > 0:
		score -= pol.AnyDPDPenalty
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func affordabilityOf(a *models.CustomerAggregate, bands config.AffordabilityBands) models.AffordabilityTier {
	switch {
	case a.MaxCreditExposure < bands.MicroMax:
		return models.TierMicro
	case a.MaxCreditExposure < bands.MidMax:
		return models.TierMid
	case a.MaxCreditExposure < bands.MassMax:
		return models.TierMass
	default:
		return models.TierAffluent
	}
}

// lenderTypeOf tags a customer by lender footprint: exactly one
// recognized sub-type and nothing else yields that type, any mixture
// (unrecognized sub-types included) is Mixed.
func lenderTypeOf(a *models.CustomerAggregate) models.LenderType {
	nbf := a.LenderSubTypes["NBF"]
	pvt := a.LenderSubTypes["PVT"]
	pub := a.LenderSubTypes["PUB"]
	other := false
	for sub := range a.LenderSubTypes {
		if sub != "NBF" && sub != "PVT" && sub != "PUB" {
			other = true
			break
		}
	}

	switch {
	case nbf && !pvt && !pub && !other:
		return models.LenderNBF
	case pvt && !nbf && !pub && !other:
		return models.LenderPVT
	case pub && !nbf && !pvt && !other:
		return models.LenderPUB
	default:
		return models.LenderMixed
	}
}

func productMixOf(a *models.CustomerAggregate) models.ProductMix {
	switch {
	case a.HasAnchorProduct && a.HasTargetProduct:
		return models.MixAnchorAndTarget
	case a.HasAnchorProduct:
		return models.MixAnchorOnly
	default:
		return models.MixOther
	}
}

func riskTierOf(score int) string {
	switch {
	case score < 40:
		return RiskTierLow
	case score < 70:
		return RiskTierMid
	default:
		return RiskTierHigh
	}
}

func repaymentBandOf(pct float64) string {
	switch {
	case pct <= 60:
		return RepaymentBands[0]
	case pct <= 70:
		return RepaymentBands[1]
	case pct <= 80:
		return RepaymentBands[2]
	case pct <= 90:
		return RepaymentBands[3]
	default:
		return RepaymentBands[4]
	}
}

// AcctTypesByCount returns account-type codes ordered by descending
// customer count, code ascending on ties, truncated to limit.
func (r *Result) AcctTypesByCount(limit int) []string {
	codes := make([]string, 0, len(r.AcctTypeCounts))
	for code := range r.AcctTypeCounts {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		ci, cj := r.AcctTypeCounts[codes[i]], r.AcctTypeCounts[codes[j]]
		if ci != cj {
			return ci > cj
		}
		return codes[i] < codes[j]
	})
	if limit > 0 && len(codes) > limit {
		codes = codes[:limit]
	}
	return codes
}
