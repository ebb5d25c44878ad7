package funnel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kredmint/bureauscrub/internal/classify"
	"github.com/kredmint/bureauscrub/internal/config"
	"github.com/kredmint/bureauscrub/pkg/models"
)

func buildPop(t *testing.T, n int, mutate func(i int, a *models.CustomerAggregate)) *models.Population {
	t.Helper()
	customers := make(map[string]*models.CustomerAggregate, n)
	for i := 0; i < n; i++ {
		id := string(rune('A'+i/26)) + string(rune('A'+i%26))
		a := models.NewCustomerAggregate(id)
		a.TradelineCount = 5
		if mutate != nil {
			mutate(i, a)
		}
		customers[id] = a
	}
	return &models.Population{Customers: customers}
}

func TestWaterfallPartition(t *testing.T) {
	pol := config.DefaultPolicy()

	// 10 customers: 2 charge-offs (Bucket D), 3 thin files, 5 serviceable.
	pop := buildPop(t, 10, func(i int, a *models.CustomerAggregate) {
		switch {
		case i < 2:
			a.HasChargeOff = true
		case i < 5:
			a.TradelineCount = 2
		}
	})

	cls := classify.Run(pop, pol)
	res := Run(pop, cls, pol)

	assert.Equal(t, 10, res.N0)
	assert.Equal(t, 2, res.BucketD)
	assert.Equal(t, 3, res.ThinFile)
	assert.Equal(t, 5, res.SAM)

	// Segments partition the serviceable base exactly.
	assert.Equal(t, res.SAM, res.PLEligible+res.LacEligible+res.Deferred+res.Excluded)
}

func TestThinFileBucketDNoDoubleCount(t *testing.T) {
	pol := config.DefaultPolicy()

	// Every customer is BOTH Bucket D and thin-file; only the bucket
	// exclusion may count them.
	pop := buildPop(t, 4, func(i int, a *models.CustomerAggregate) {
		a.HasChargeOff = true
		a.TradelineCount = 1
	})

	cls := classify.Run(pop, pol)
	res := Run(pop, cls, pol)

	assert.Equal(t, 4, res.BucketD)
	assert.Zero(t, res.ThinFile)
	assert.Zero(t, res.SAM)
}

func TestRevenueModel(t *testing.T) {
	p := config.ProductPolicy{
		DemandRate:     0.32,
		TakeRate:       0.25,
		AvgTicket:      75000,
		AvgTenorMonths: 18,
		PrepaymentAdj:  0.75,
		NetMargin:      0.16,
	}

	out := modelProduct(1000, p)

	// 1000 × 0.32 × 0.25 = 80 disbursals, truncated.
	require.Equal(t, 80, out.Disbursals)

	// 80 × 75000 × (18/12 × 0.75) = 6,750,000.
	assert.Equal(t, 6750000.0, out.AUMYear1)
	// 6,750,000 × 0.16 = 1,080,000.
	assert.Equal(t, 1080000.0, out.RevenueYear1)
}

func TestRevenueModelTruncatesDisbursals(t *testing.T) {
	p := config.ProductPolicy{
		DemandRate:     0.32,
		TakeRate:       0.25,
		AvgTicket:      100,
		AvgTenorMonths: 12,
		PrepaymentAdj:  1,
		NetMargin:      0.1,
	}

	// 7 × 0.32 × 0.25 = 0.56 → 0 disbursals, zero everything.
	out := modelProduct(7, p)
	assert.Zero(t, out.Disbursals)
	assert.Zero(t, out.AUMYear1)
	assert.Zero(t, out.RevenueYear1)
}

func TestProjectionFactors(t *testing.T) {
	pol := config.DefaultPolicy()

	pop := buildPop(t, 100, func(i int, a *models.CustomerAggregate) {
		a.OnTimePeriods = 50
		a.ScoredPeriods = 50
	})

	cls := classify.Run(pop, pol)
	res := Run(pop, cls, pol)

	assert.Equal(t, res.TotalAUMYear1/2, res.AUMMonth6)
	assert.Equal(t, res.TotalAUMYear1, res.AUMMonth12)
	assert.Equal(t, res.TotalAUMYear1*2, res.AUMMonth24)
}

func TestOutreachCohortsPartitionPopulation(t *testing.T) {
	pol := config.DefaultPolicy()

	// All clean customers score 90: everyone is top tier, so the
	// immediate cohort caps at a fifth of the book.
	pop := buildPop(t, 50, nil)

	cls := classify.Run(pop, pol)
	res := Run(pop, cls, pol)

	assert.Equal(t, 10, res.OutreachImmediate)
	total := res.OutreachImmediate + res.Outreach30d + res.Outreach90d + res.OutreachHold
	assert.Equal(t, res.N0, total)
}

func TestEmptyPopulation(t *testing.T) {
	pol := config.DefaultPolicy()
	pop := &models.Population{Customers: map[string]*models.CustomerAggregate{}}

	cls := classify.Run(pop, pol)
	res := Run(pop, cls, pol)

	assert.Zero(t, res.N0)
	assert.Zero(t, res.SAM)
	assert.Zero(t, res.TotalAUMYear1)
	assert.Zero(t, res.OutreachHold)
}
