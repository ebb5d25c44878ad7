package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRepaymentRatio(t *testing.T) {
	a := NewCustomerAggregate("C1")
	if _, ok := a.RepaymentRatio(); ok {
		t.Error("expected ok=false with no scored periods")
	}

	a.OnTimePeriods = 9
	a.ScoredPeriods = 10
	pct, ok := a.RepaymentRatio()
	if !ok || pct != 90.0 {
		t.Errorf("RepaymentRatio = %v, %v, want 90 true", pct, ok)
	}
}

func TestAnchorDate(t *testing.T) {
	a := NewCustomerAggregate("C1")
	if _, ok := a.AnchorDate(); ok {
		t.Error("expected ok=false with no anchor opens")
	}

	a.AnchorOpens = []time.Time{
		date(2020, 6, 1),
		date(2021, 3, 15),
		date(2019, 1, 1),
	}
	got, ok := a.AnchorDate()
	if !ok || !got.Equal(date(2021, 3, 15)) {
		t.Errorf("AnchorDate = %v, %v, want latest open", got, ok)
	}
}

func TestSortedIDs(t *testing.T) {
	pop := &Population{Customers: map[string]*CustomerAggregate{
		"C3": NewCustomerAggregate("C3"),
		"C1": NewCustomerAggregate("C1"),
		"C2": NewCustomerAggregate("C2"),
	}}

	ids := pop.SortedIDs()
	want := []string{"C1", "C2", "C3"}
	for i, id := range want {
		if ids[i] != id {
			t.Fatalf("SortedIDs = %v, want %v", ids, want)
		}
	}
}

func TestTotalTradelines(t *testing.T) {
	a := NewCustomerAggregate("A")
	a.TradelineCount = 3
	b := NewCustomerAggregate("B")
	b.TradelineCount = 5

	pop := &Population{Customers: map[string]*CustomerAggregate{"A": a, "B": b}}
	if got := pop.TotalTradelines(); got != 8 {
		t.Errorf("TotalTradelines = %d, want 8", got)
	}
}
