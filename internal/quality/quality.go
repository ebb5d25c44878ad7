// Package quality audits the aggregate population: banded sanity
// metrics, the bucket-vs-repayment cross check, bureau freshness, and
// histogram clipping counters.
package quality

import (
	"time"

	"github.com/kredmint/bureauscrub/internal/classify"
	"github.com/kredmint/bureauscrub/internal/config"
	"github.com/kredmint/bureauscrub/internal/curves"
	"github.com/kredmint/bureauscrub/pkg/models"
	"github.com/kredmint/bureauscrub/pkg/utils"
)

// Status levels for audited metrics.
const (
	StatusOK    = "OK"
	StatusWarn  = "WARN"
	StatusCheck = "CHECK"
)

// Result holds the audited metrics and their statuses.
type Result struct {
	AvgTradelines       float64
	AvgTradelinesStatus string

	AnchorInferred  int
	AnchorNone      int
	AnchorNonePct   float64
	AnchorStatus    string

	Month0Pct       float64
	Month0Status    string
	PreExistingPct  float64

	FreshnessDays int
	FreshPct      float64

	ConsistencyPass       bool
	BucketDHighQualityPct float64

	Month35 int
	Month36 int
	Month37 int
}

// Run audits the finalized population. processingDate anchors the
// freshness check; it is injected rather than read from the clock so
// the audit is reproducible.
func Run(pop *models.Population, cls *classify.Result, crv *curves.Result, processingDate time.Time, pol config.QualityPolicy) *Result {
	res := &Result{}
	n0 := pop.Size()

	if n0 > 0 {
		res.AvgTradelines = utils.Round2(float64(pop.TotalTradelines()) / float64(n0))
	}
	res.AvgTradelinesStatus = statusFromBounds(res.AvgTradelines, pol.AvgTradelinesLow, pol.AvgTradelinesHigh, pol.WarnFactor)

	// Anchor coverage: customers holding the anchor product by code.
	for _, agg := range pop.Customers {
		if agg.HasAnchorProduct {
			res.AnchorInferred++
		}
	}
	res.AnchorNone = n0 - res.AnchorInferred
	if n0 > 0 {
		res.AnchorNonePct = 100.0 * float64(res.AnchorNone) / float64(n0)
	}
	switch {
	case res.AnchorNonePct <= pol.AnchorNoneWarnPct:
		res.AnchorStatus = StatusOK
	case res.AnchorNonePct <= pol.AnchorNoneCheckPct:
		res.AnchorStatus = StatusWarn
	default:
		res.AnchorStatus = StatusCheck
	}

	// Month-0 spike and pre-existing holders on the demand curve.
	if crv.AnchorTargetBase > 0 {
		base := float64(crv.AnchorTargetBase)
		res.Month0Pct = utils.Round2(100.0 * float64(crv.Month0Customers) / base)
		res.PreExistingPct = utils.Round2(100.0 * float64(crv.PreExistingCustomers) / base)
	}
	switch {
	case res.Month0Pct < pol.Month0WarnPct:
		res.Month0Status = StatusOK
	case res.Month0Pct <= pol.Month0CheckPct:
		res.Month0Status = StatusWarn
	default:
		res.Month0Status = StatusCheck
	}

	// Bureau freshness relative to the processing date.
	res.FreshnessDays = utils.DaysBetween(pop.BureauDate, processingDate)
	if res.FreshnessDays <= pol.FreshnessMaxDays {
		res.FreshPct = 100.0
	}

	res.consistency(pop, cls, pol)

	// Ceiling artifacts: the months-since-anchor histogram clips at its
	// last bucket; a spike there means real mass beyond the ceiling.
	// Month 37 is unreachable today and reported as a canary.
	if n := len(crv.MonthsSinceAnchor); n >= 2 {
		res.Month35 = crv.MonthsSinceAnchor[n-2]
		res.Month36 = crv.MonthsSinceAnchor[n-1]
	}
	res.Month37 = 0

	return res
}

// consistency cross-checks the bucketing rule against the repayment
// grid: Bucket-D customers with a high on-time ratio indicate the two
// signals disagree.
func (r *Result) consistency(pop *models.Population, cls *classify.Result, pol config.QualityPolicy) {
	bucketD := 0
	highQuality := 0
	for id, c := range cls.PerCustomer {
		if c.Bucket != models.BucketD {
			continue
		}
		bucketD++
		if pct, ok := pop.Customers[id].RepaymentRatio(); ok && pct >= pol.HighQualityMinPct {
			highQuality++
		}
	}
	if bucketD > 0 {
		r.BucketDHighQualityPct = utils.Round2(100.0 * float64(highQuality) / float64(bucketD))
	}
	r.ConsistencyPass = r.BucketDHighQualityPct < pol.BucketDQualityMaxPct
}

// statusFromBounds grades a value against an [low, high] OK band, with
// a WARN grace factor above the band.
func statusFromBounds(val, low, high, warnFactor float64) string {
	if val >= low && val <= high {
		return StatusOK
	}
	if val <= high*warnFactor {
		return StatusWarn
	}
	return StatusCheck
}
