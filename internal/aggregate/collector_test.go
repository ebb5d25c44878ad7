package aggregate

import (
	"testing"
	"time"

	"github.com/kredmint/bureauscrub/internal/source"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestCollector() *Collector {
	return NewCollector([]string{"241", "242"}, []string{"191"})
}

func TestAddDropsMissingCustomerID(t *testing.T) {
	c := newTestCollector()
	c.Add(source.Record{source.ColCustomerID: "  "})
	c.Add(source.Record{source.ColCustomerID: "C1"})

	if c.Rows() != 2 {
		t.Errorf("Rows = %d, want 2", c.Rows())
	}
	if c.Dropped() != 1 {
		t.Errorf("Dropped = %d, want 1", c.Dropped())
	}

	pop := c.Finalize(date(2024, 1, 1))
	if pop.Size() != 1 {
		t.Errorf("population size = %d, want 1", pop.Size())
	}
}

func TestAddFoldsMaximaAndFlags(t *testing.T) {
	c := newTestCollector()
	c.Add(source.Record{
		source.ColCustomerID:   "C1",
		source.ColAcctTypeCd:   "241",
		source.ColMSubID:       "NBF",
		source.ColOpenDt:       "01/06/2020",
		source.ColDaysPastDue:  "30",
		source.ColOrigLoanAm:   "500000",
		source.ColCreditLimitAm: "",
		source.ColBureauDate:   "2021-01-01",
	})
	c.Add(source.Record{
		source.ColCustomerID:  "C1",
		source.ColAcctTypeCd:  "191",
		source.ColMSubID:      "",
		source.ColOpenDt:      "15/04/2021",
		source.ColDaysPastDue: "5",
		source.ColChargeOffAm: "1200",
		source.ColClosedDt:    "01/01/2022",
		source.ColCreditLimitAm: "750000",
		source.ColBureauDate:  "2020-12-01",
	})

	pop := c.Finalize(date(2024, 1, 1))
	agg := pop.Customers["C1"]

	if agg.TradelineCount != 2 {
		t.Errorf("TradelineCount = %d", agg.TradelineCount)
	}
	if agg.MaxDPD != 30 {
		t.Errorf("MaxDPD = %d, want 30", agg.MaxDPD)
	}
	if !agg.HasChargeOff {
		t.Error("expected HasChargeOff")
	}
	if !agg.HasClosed {
		t.Error("expected HasClosed")
	}
	if agg.MaxCreditExposure != 750000 {
		t.Errorf("MaxCreditExposure = %v, want 750000", agg.MaxCreditExposure)
	}
	if !agg.HasAnchorProduct || !agg.HasTargetProduct {
		t.Error("expected anchor and target membership")
	}
	if !agg.FirstOpen.Equal(date(2020, 6, 1)) {
		t.Errorf("FirstOpen = %v", agg.FirstOpen)
	}
	if !agg.LenderSubTypes["NBF"] || !agg.LenderSubTypes["Unknown"] {
		t.Errorf("LenderSubTypes = %v, want NBF and Unknown", agg.LenderSubTypes)
	}

	// Bureau date is the max over all rows, not the last seen.
	if !pop.BureauDate.Equal(date(2021, 1, 1)) {
		t.Errorf("BureauDate = %v, want 2021-01-01", pop.BureauDate)
	}
}

func TestAddPaymentGrid(t *testing.T) {
	c := newTestCollector()
	c.Add(source.Record{
		source.ColCustomerID:    "C1",
		source.ColPaymentHistory: "000??30",
	})

	pop := c.Finalize(date(2024, 1, 1))
	agg := pop.Customers["C1"]

	if agg.ScoredPeriods != 5 {
		t.Errorf("ScoredPeriods = %d, want 5 (? excluded)", agg.ScoredPeriods)
	}
	if agg.OnTimePeriods != 4 {
		t.Errorf("OnTimePeriods = %d, want 4", agg.OnTimePeriods)
	}
}

func TestAddPaymentGridTrimsPadding(t *testing.T) {
	c := newTestCollector()
	c.Add(source.Record{
		source.ColCustomerID:    "C1",
		source.ColPaymentHistory: " 000000 ",
	})

	pop := c.Finalize(date(2024, 1, 1))
	agg := pop.Customers["C1"]

	if agg.ScoredPeriods != 6 {
		t.Errorf("ScoredPeriods = %d, want 6 (padding must not score)", agg.ScoredPeriods)
	}
	if agg.OnTimePeriods != 6 {
		t.Errorf("OnTimePeriods = %d, want 6", agg.OnTimePeriods)
	}
}

func TestOpenedLast12MUsesRowBureauDate(t *testing.T) {
	c := newTestCollector()
	// Opened 100 days before its bureau date: counts.
	c.Add(source.Record{
		source.ColCustomerID: "C1",
		source.ColOpenDt:     "23/09/2020",
		source.ColBureauDate: "2021-01-01",
	})
	// Opened two years before its bureau date: does not count.
	c.Add(source.Record{
		source.ColCustomerID: "C1",
		source.ColOpenDt:     "01/01/2019",
		source.ColBureauDate: "2021-01-01",
	})

	pop := c.Finalize(date(2024, 1, 1))
	if got := pop.Customers["C1"].OpenedLast12M; got != 1 {
		t.Errorf("OpenedLast12M = %d, want 1", got)
	}
}

func TestFinalizeFallsBackToProcessingDate(t *testing.T) {
	c := newTestCollector()
	c.Add(source.Record{source.ColCustomerID: "C1"})

	pop := c.Finalize(date(2024, 6, 15))
	if !pop.BureauDate.Equal(date(2024, 6, 15)) {
		t.Errorf("BureauDate = %v, want processing date", pop.BureauDate)
	}
}

func TestMalformedFieldsDefaultSilently(t *testing.T) {
	c := newTestCollector()
	c.Add(source.Record{
		source.ColCustomerID:  "C1",
		source.ColOpenDt:      "not-a-date",
		source.ColDaysPastDue: "garbage",
		source.ColOrigLoanAm:  "NaNish",
	})

	pop := c.Finalize(date(2024, 1, 1))
	agg := pop.Customers["C1"]

	if agg.MaxDPD != 0 || agg.MaxCreditExposure != 0 || agg.HasFirstOpen {
		t.Errorf("malformed fields leaked into aggregate: %+v", agg)
	}
	if c.Dropped() != 0 {
		t.Errorf("row should not be dropped for bad fields, Dropped = %d", c.Dropped())
	}
}
