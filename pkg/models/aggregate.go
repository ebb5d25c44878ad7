// Package models defines the shared domain types for bureauscrub:
// the per-customer aggregate built by the scan, its derived
// classification, and the view documents consumed by the dashboard.
package models

import (
	"sort"
	"time"
)

// CustomerAggregate is the single-pass fold state for one customer.
// It accumulates monotonically during the scan (sets only grow, maxima
// only increase) and is read-only once the population is finalized.
type CustomerAggregate struct {
	CustomerID     string
	TradelineCount int

	// Distinct codes seen across the customer's tradelines.
	AcctTypes      map[string]bool
	LenderSubTypes map[string]bool

	MaxDPD       int
	HasChargeOff bool
	HasWriteOff  bool
	HasClosed    bool

	// Running max of (ORIG_LOAN_AM, CREDIT_LIMIT_AM) across tradelines.
	MaxCreditExposure float64

	// Earliest OPEN_DT across all tradelines.
	FirstOpen    time.Time
	HasFirstOpen bool

	// Product membership is tracked by code presence; the open-date
	// lists only carry rows that had a parseable OPEN_DT.
	HasAnchorProduct bool
	HasTargetProduct bool
	AnchorOpens      []time.Time
	TargetOpens      []time.Time

	// Tradelines opened within 365 days of the row's own bureau date.
	OpenedLast12M int

	// Cumulative payment-history grid scoring.
	OnTimePeriods int
	ScoredPeriods int
}

// NewCustomerAggregate returns an empty aggregate for a customer key.
func NewCustomerAggregate(id string) *CustomerAggregate {
	return &CustomerAggregate{
		CustomerID:     id,
		AcctTypes:      make(map[string]bool),
		LenderSubTypes: make(map[string]bool),
	}
}

// RepaymentRatio returns the on-time percentage over scored periods.
// ok is false when the customer has no scored periods at all.
func (a *CustomerAggregate) RepaymentRatio() (pct float64, ok bool) {
	if a.ScoredPeriods == 0 {
		return 0, false
	}
	return 100.0 * float64(a.OnTimePeriods) / float64(a.ScoredPeriods), true
}

// AnchorDate returns the most recent anchor-product open date.
func (a *CustomerAggregate) AnchorDate() (time.Time, bool) {
	if len(a.AnchorOpens) == 0 {
		return time.Time{}, false
	}
	latest := a.AnchorOpens[0]
	for _, d := range a.AnchorOpens[1:] {
		if d.After(latest) {
			latest = d
		}
	}
	return latest, true
}

// Population is the finalized aggregate map plus the global bureau
// snapshot date. It is immutable from classification onward.
type Population struct {
	Customers  map[string]*CustomerAggregate
	BureauDate time.Time
}

// Size returns the number of distinct customers.
func (p *Population) Size() int { return len(p.Customers) }

// TotalTradelines returns the tradeline count summed over all customers.
func (p *Population) TotalTradelines() int {
	total := 0
	for _, a := range p.Customers {
		total += a.TradelineCount
	}
	return total
}

// SortedIDs returns customer keys in ascending order. Every stage that
// produces list-shaped output iterates in this order so repeated runs
// emit byte-identical documents.
func (p *Population) SortedIDs() []string {
	ids := make([]string, 0, len(p.Customers))
	for id := range p.Customers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
