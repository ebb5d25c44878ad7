// Package aggregate folds the tradeline stream into one aggregate per
// customer in a single forward pass.
package aggregate

import (
	"strings"
	"time"

	"github.com/kredmint/bureauscrub/internal/normalize"
	"github.com/kredmint/bureauscrub/internal/source"
	"github.com/kredmint/bureauscrub/pkg/models"
	"github.com/kredmint/bureauscrub/pkg/utils"
)

// Collector accumulates customer aggregates and the global bureau
// snapshot date. The bureau date is an explicit max-fold over every
// valid BUREAU_DATE field, not a last-write side effect.
type Collector struct {
	anchorCodes normalize.CodeSet
	targetCodes normalize.CodeSet

	customers map[string]*models.CustomerAggregate

	bureauDate    time.Time
	hasBureauDate bool

	rows    int
	dropped int
}

// NewCollector creates a collector with the configured product code sets.
func NewCollector(anchorCodes, targetCodes []string) *Collector {
	return &Collector{
		anchorCodes: normalize.NewCodeSet(anchorCodes),
		targetCodes: normalize.NewCodeSet(targetCodes),
		customers:   make(map[string]*models.CustomerAggregate),
	}
}

// Add folds one raw record into its customer aggregate. Records
// without a customer key are dropped whole; any other malformed field
// defaults silently and the rest of the record still counts.
func (c *Collector) Add(rec source.Record) {
	c.rows++

	cid := strings.TrimSpace(rec[source.ColCustomerID])
	if cid == "" {
		c.dropped++
		return
	}

	agg, ok := c.customers[cid]
	if !ok {
		agg = models.NewCustomerAggregate(cid)
		c.customers[cid] = agg
	}
	agg.TradelineCount++

	openDt, hasOpen := normalize.DateDMY(rec[source.ColOpenDt])

	if bureauDt, ok := normalize.DateISO(rec[source.ColBureauDate]); ok {
		if !c.hasBureauDate || bureauDt.After(c.bureauDate) {
			c.bureauDate = bureauDt
			c.hasBureauDate = true
		}
		// Trailing-12-month velocity is judged against the row's own
		// bureau date so the count is independent of scan order.
		if hasOpen && utils.DaysBetween(openDt, bureauDt) <= 365 {
			agg.OpenedLast12M++
		}
	}

	acctType := strings.TrimSpace(rec[source.ColAcctTypeCd])
	mSub := strings.TrimSpace(rec[source.ColMSubID])
	if mSub == "" {
		mSub = "Unknown"
	}
	agg.AcctTypes[acctType] = true
	agg.LenderSubTypes[mSub] = true

	if dpd := normalize.Int(rec[source.ColDaysPastDue], 0); dpd > agg.MaxDPD {
		agg.MaxDPD = dpd
	}
	if normalize.Float(rec[source.ColChargeOffAm], 0) > 0 {
		agg.HasChargeOff = true
	}
	if strings.TrimSpace(rec[source.ColWriteOffStatusDt]) != "" {
		agg.HasWriteOff = true
	}
	if _, ok := normalize.DateDMY(rec[source.ColClosedDt]); ok {
		agg.HasClosed = true
	}

	orig := normalize.Float(rec[source.ColOrigLoanAm], 0)
	limit := normalize.Float(rec[source.ColCreditLimitAm], 0)
	if orig > agg.MaxCreditExposure {
		agg.MaxCreditExposure = orig
	}
	if limit > agg.MaxCreditExposure {
		agg.MaxCreditExposure = limit
	}

	if c.targetCodes.Contains(acctType) {
		agg.HasTargetProduct = true
		if hasOpen {
			agg.TargetOpens = append(agg.TargetOpens, openDt)
		}
	}
	if c.anchorCodes.Contains(acctType) {
		agg.HasAnchorProduct = true
		if hasOpen {
			agg.AnchorOpens = append(agg.AnchorOpens, openDt)
		}
	}

	if hasOpen {
		if !agg.HasFirstOpen || openDt.Before(agg.FirstOpen) {
			agg.FirstOpen = openDt
			agg.HasFirstOpen = true
		}
	}

	for _, ch := range strings.TrimSpace(rec[source.ColPaymentHistory]) {
		if ch == '?' {
			continue
		}
		agg.ScoredPeriods++
		if ch == '0' {
			agg.OnTimePeriods++
		}
	}
}

// Finalize seals the scan and returns the immutable population. When
// no record carried a bureau date the processing date stands in for
// every time-delta computation.
func (c *Collector) Finalize(processingDate time.Time) *models.Population {
	bureau := c.bureauDate
	if !c.hasBureauDate {
		bureau = processingDate
	}
	return &models.Population{
		Customers:  c.customers,
		BureauDate: bureau,
	}
}

// Rows returns the number of records seen, dropped ones included.
func (c *Collector) Rows() int { return c.rows }

// Dropped returns the number of records discarded for a missing
// customer key.
func (c *Collector) Dropped() int { return c.dropped }
