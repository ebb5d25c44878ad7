package curves

import (
	"testing"
	"time"

	"github.com/kredmint/bureauscrub/internal/config"
	"github.com/kredmint/bureauscrub/pkg/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func popWith(bureau time.Time, aggs ...*models.CustomerAggregate) *models.Population {
	customers := make(map[string]*models.CustomerAggregate)
	for _, a := range aggs {
		customers[a.CustomerID] = a
	}
	return &models.Population{Customers: customers, BureauDate: bureau}
}

func anchorTarget(id string, anchor, target time.Time) *models.CustomerAggregate {
	a := models.NewCustomerAggregate(id)
	a.HasAnchorProduct = true
	a.HasTargetProduct = true
	a.AnchorOpens = []time.Time{anchor}
	a.TargetOpens = []time.Time{target}
	a.FirstOpen = anchor
	a.HasFirstOpen = true
	return a
}

func TestTimeToTargetHistogram(t *testing.T) {
	pol := config.DefaultPolicy()

	// Anchor 2020-01-01, target 2020-04-15: 105 days, month 3 — inside
	// the golden window. Anchor is the first tradeline, so the customer
	// lands on both curves.
	a := anchorTarget("C1", date(2020, 1, 1), date(2020, 4, 15))

	res := Run(popWith(date(2021, 1, 1), a), pol)

	if res.CurveA[3] != 1 {
		t.Errorf("CurveA[3] = %d, want 1", res.CurveA[3])
	}
	if res.CurveB[3] != 1 {
		t.Errorf("CurveB[3] = %d, want 1 (first-timer)", res.CurveB[3])
	}
	if res.GoldenA != 1 || res.GoldenB != 1 {
		t.Errorf("golden = %d/%d, want 1/1", res.GoldenA, res.GoldenB)
	}
	if res.AnchorTargetBase != 1 {
		t.Errorf("AnchorTargetBase = %d", res.AnchorTargetBase)
	}
}

func TestTimeToTargetNotFirstTimer(t *testing.T) {
	pol := config.DefaultPolicy()

	a := anchorTarget("C1", date(2020, 6, 1), date(2020, 10, 1))
	// An older tradeline predates the anchor: not a first-timer.
	a.FirstOpen = date(2018, 1, 1)

	res := Run(popWith(date(2021, 1, 1), a), pol)

	if res.CurveA[4] != 1 {
		t.Errorf("CurveA[4] = %d, want 1", res.CurveA[4])
	}
	if res.CurveB[4] != 0 {
		t.Errorf("CurveB[4] = %d, want 0", res.CurveB[4])
	}
}

func TestTimeToTargetEarliestPicksMinPostAnchor(t *testing.T) {
	pol := config.DefaultPolicy()

	a := anchorTarget("C1", date(2020, 1, 1), date(2020, 9, 1))
	// Unsorted opens: one pre-anchor, two post-anchor.
	a.TargetOpens = []time.Time{
		date(2020, 9, 1),  // month 8
		date(2019, 5, 1),  // pre-existing
		date(2020, 3, 15), // month 2 — the pick
	}

	res := Run(popWith(date(2021, 1, 1), a), pol)

	if res.CurveA[2] != 1 {
		t.Errorf("CurveA[2] = %d, want 1 (earliest post-anchor)", res.CurveA[2])
	}
	if res.PreExistingCustomers != 1 {
		t.Errorf("PreExistingCustomers = %d, want 1", res.PreExistingCustomers)
	}
	if res.Month0Customers != 0 {
		t.Errorf("Month0Customers = %d, want 0", res.Month0Customers)
	}
	if got := res.FirstTargetPostAnchor["C1"]; !got.Equal(date(2020, 3, 15)) {
		t.Errorf("FirstTargetPostAnchor = %v", got)
	}
}

func TestTimeToTargetMonth0(t *testing.T) {
	pol := config.DefaultPolicy()

	// Target 10 days after anchor is month 0: pre-existing, not charted.
	a := anchorTarget("C1", date(2020, 1, 1), date(2020, 1, 11))

	res := Run(popWith(date(2021, 1, 1), a), pol)

	if res.Month0Customers != 1 {
		t.Errorf("Month0Customers = %d, want 1", res.Month0Customers)
	}
	for m, n := range res.CurveA {
		if n != 0 {
			t.Errorf("CurveA[%d] = %d, want empty curve", m, n)
		}
	}
}

func TestTimeToTargetFirstEncountered(t *testing.T) {
	pol := config.DefaultPolicy()
	pol.Curve.TargetPick = config.TargetPickFirstEncountered

	a := anchorTarget("C1", date(2020, 1, 1), date(2020, 9, 1))
	a.TargetOpens = []time.Time{
		date(2020, 9, 1),  // month 8 — first encountered in stream order
		date(2020, 3, 15), // month 2, ignored under this policy
	}

	res := Run(popWith(date(2021, 1, 1), a), pol)

	if res.CurveA[8] != 1 {
		t.Errorf("CurveA[8] = %d, want 1 (stream order)", res.CurveA[8])
	}
	if res.CurveA[2] != 0 {
		t.Errorf("CurveA[2] = %d, want 0", res.CurveA[2])
	}
}

func TestMonthsSinceAnchorAndFlags(t *testing.T) {
	pol := config.DefaultPolicy()
	bureau := date(2021, 1, 1)

	golden := anchorTarget("C1", date(2020, 9, 1), time.Time{}) // 122 days → month 4
	golden.TargetOpens = nil
	milestone := anchorTarget("C2", date(2020, 1, 1), time.Time{}) // 366 days → month 12
	milestone.TargetOpens = nil
	early := anchorTarget("C3", date(2020, 12, 15), time.Time{}) // 17 days → month 0
	early.TargetOpens = nil
	dormant := anchorTarget("C4", date(2017, 1, 1), time.Time{}) // ~48 months, clipped
	dormant.TargetOpens = nil
	future := anchorTarget("C5", date(2021, 6, 1), time.Time{}) // anchor after bureau: excluded
	future.TargetOpens = nil

	res := Run(popWith(bureau, golden, milestone, early, dormant, future), pol)

	if res.TimingCounts[models.TimingGoldenWindow] != 1 {
		t.Errorf("golden count = %d", res.TimingCounts[models.TimingGoldenWindow])
	}
	if res.TimingCounts[models.TimingMilestone] != 1 {
		t.Errorf("milestone count = %d", res.TimingCounts[models.TimingMilestone])
	}
	if res.TimingCounts[models.TimingEarly] != 1 {
		t.Errorf("early count = %d", res.TimingCounts[models.TimingEarly])
	}
	if res.TimingCounts[models.TimingDormant] != 1 {
		t.Errorf("dormant count = %d", res.TimingCounts[models.TimingDormant])
	}

	if res.MonthsSinceAnchor[4] != 1 {
		t.Errorf("MonthsSinceAnchor[4] = %d", res.MonthsSinceAnchor[4])
	}
	// The dormant customer clips into the last bucket.
	last := len(res.MonthsSinceAnchor) - 1
	if res.MonthsSinceAnchor[last] != 1 {
		t.Errorf("MonthsSinceAnchor[%d] = %d, want clipped 1", last, res.MonthsSinceAnchor[last])
	}

	total := 0
	for _, n := range res.MonthsSinceAnchor {
		total += n
	}
	if total != 4 {
		t.Errorf("histogram total = %d, want 4 (future anchor excluded)", total)
	}
}

func TestSeasonalIndex(t *testing.T) {
	pol := config.DefaultPolicy()

	// Two qualifying opens, both in April: April indexes 12×2/2 = 12,
	// every other month 0.
	a := anchorTarget("C1", date(2020, 1, 1), date(2020, 4, 15))
	b := anchorTarget("C2", date(2020, 1, 1), date(2020, 4, 20))

	res := Run(popWith(date(2021, 1, 1), a, b), pol)

	if res.SeasonalIndex[3] != 12 {
		t.Errorf("April index = %v, want 12", res.SeasonalIndex[3])
	}
	sum := 0.0
	for _, v := range res.SeasonalIndex {
		sum += v
	}
	if sum != 12 {
		t.Errorf("seasonal sum = %v, want 12", sum)
	}
}

func TestSeasonalIndexEmpty(t *testing.T) {
	pol := config.DefaultPolicy()

	a := models.NewCustomerAggregate("C1")
	res := Run(popWith(date(2021, 1, 1), a), pol)

	for m, v := range res.SeasonalIndex {
		if v != 0 {
			t.Errorf("SeasonalIndex[%d] = %v, want 0", m, v)
		}
	}
}
