// Package curves builds the temporal cohort outputs: the
// time-to-next-target histograms, the months-since-anchor histogram
// with timing flags, and the seasonal index.
package curves

import (
	"sort"
	"time"

	"github.com/kredmint/bureauscrub/internal/config"
	"github.com/kredmint/bureauscrub/pkg/models"
	"github.com/kredmint/bureauscrub/pkg/utils"
)

// Result holds every cohort output. Histograms span months 0..MaxMonths.
type Result struct {
	// Curve A: all customers with a post-anchor target open.
	// Curve B: the first-timer cut (anchor was their first tradeline).
	CurveA []int
	CurveB []int

	GoldenA int
	GoldenB int

	// Customers with ≥1 anchor open and ≥1 target open date.
	AnchorTargetBase int
	// Customers whose target opens sit at / before the anchor.
	Month0Customers      int
	PreExistingCustomers int

	// First qualifying post-anchor target open per customer, feeding
	// the seasonal index.
	FirstTargetPostAnchor map[string]time.Time

	// Customers with any anchor open date.
	AnchorCustomers int

	TimingCounts      map[models.TimingFlag]int
	MonthsSinceAnchor []int

	SeasonalIndex [12]float64
}

// Run computes all cohort curves for the population.
func Run(pop *models.Population, pol config.PolicyConfig) *Result {
	res := &Result{
		CurveA:                make([]int, pol.Curve.MaxMonths+1),
		CurveB:                make([]int, pol.Curve.MaxMonths+1),
		FirstTargetPostAnchor: make(map[string]time.Time),
		TimingCounts:          make(map[models.TimingFlag]int),
		MonthsSinceAnchor:     make([]int, pol.Curve.MaxMonths+1),
	}

	for _, id := range pop.SortedIDs() {
		agg := pop.Customers[id]
		anchor, ok := agg.AnchorDate()
		if !ok {
			continue
		}
		res.AnchorCustomers++

		firstTimer := agg.HasFirstOpen && anchor.Equal(agg.FirstOpen)

		res.timeToTarget(id, agg, anchor, firstTimer, pol.Curve)
		res.monthsSince(pop.BureauDate, anchor, pol.Curve)
	}

	res.seasonal()
	return res
}

// timeToTarget picks the qualifying target open after the anchor and
// records its month delta. Which open qualifies is policy: the
// deterministic variant takes the earliest post-anchor open and tracks
// pre-existing holders; the stream-order variant takes the first one
// encountered and ignores pre-existing opens entirely.
func (r *Result) timeToTarget(id string, agg *models.CustomerAggregate, anchor time.Time, firstTimer bool, pol config.CurvePolicy) {
	if len(agg.TargetOpens) == 0 {
		return
	}
	r.AnchorTargetBase++

	var (
		bestMonths int
		bestDate   time.Time
		found      bool
	)

	switch pol.TargetPick {
	case config.TargetPickFirstEncountered:
		for _, dt := range agg.TargetOpens {
			dm := utils.FloorMonths(utils.DaysBetween(anchor, dt))
			if dm > 0 {
				bestMonths, bestDate, found = dm, dt, true
				break
			}
		}
	default: // TargetPickEarliest
		opens := append([]time.Time(nil), agg.TargetOpens...)
		sort.Slice(opens, func(i, j int) bool { return opens[i].Before(opens[j]) })

		hasMonth0 := false
		hasPreExisting := false
		for _, dt := range opens {
			dm := utils.FloorMonths(utils.DaysBetween(anchor, dt))
			if dm <= 0 {
				hasPreExisting = true
				if dm == 0 {
					hasMonth0 = true
				}
				continue
			}
			if !found || dm < bestMonths {
				bestMonths, bestDate, found = dm, dt, true
			}
		}
		if hasMonth0 {
			r.Month0Customers++
		}
		if hasPreExisting {
			r.PreExistingCustomers++
		}
	}

	if !found {
		return
	}

	r.FirstTargetPostAnchor[id] = bestDate

	if bestMonths < len(r.CurveA) {
		r.CurveA[bestMonths]++
		if firstTimer {
			r.CurveB[bestMonths]++
		}
	}
	if bestMonths >= pol.GoldenMin && bestMonths <= pol.GoldenMax {
		r.GoldenA++
		if firstTimer {
			r.GoldenB++
		}
	}
}

// monthsSince records how far past the anchor the customer sits as of
// the bureau date. Negative deltas (anchor after the bureau date) are
// excluded, not clamped. The histogram bucket clips at the ceiling but
// the timing flag uses the unclipped delta.
func (r *Result) monthsSince(bureau, anchor time.Time, pol config.CurvePolicy) {
	days := utils.DaysBetween(anchor, bureau)
	if days < 0 {
		return
	}
	dm := utils.FloorMonths(days)

	bucket := dm
	if bucket > pol.MaxMonths {
		bucket = pol.MaxMonths
	}
	r.MonthsSinceAnchor[bucket]++

	switch {
	case dm >= pol.GoldenMin && dm <= pol.GoldenMax:
		r.TimingCounts[models.TimingGoldenWindow]++
	case dm > pol.GoldenMax && dm <= pol.MilestoneMax:
		r.TimingCounts[models.TimingMilestone]++
	case dm < pol.GoldenMin:
		r.TimingCounts[models.TimingEarly]++
	default:
		r.TimingCounts[models.TimingDormant]++
	}
}

// seasonal normalizes first post-anchor target opens by calendar month
// into an index where a flat distribution scores 1.0 everywhere. With
// no qualifying opens every month reports 0.
func (r *Result) seasonal() {
	var counts [12]int
	total := 0
	for _, dt := range r.FirstTargetPostAnchor {
		counts[int(dt.Month())-1]++
		total++
	}
	if total == 0 {
		return
	}
	for m := 0; m < 12; m++ {
		r.SeasonalIndex[m] = utils.Round2(12 * float64(counts[m]) / float64(total))
	}
}
