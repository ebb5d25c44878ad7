package utils

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b time.Time
		want int
	}{
		{date(2024, 1, 1), date(2024, 1, 1), 0},
		{date(2024, 1, 1), date(2024, 1, 31), 30},
		{date(2024, 1, 31), date(2024, 1, 1), -30},
		{date(2020, 1, 1), date(2021, 1, 1), 366}, // leap year
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFloorMonths(t *testing.T) {
	tests := []struct {
		days int
		want int
	}{
		{0, 0},
		{29, 0},
		{30, 1},
		{105, 3},
		{366, 12},
		{-1, -1},
		{-30, -1},
		{-31, -2},
	}
	for _, tt := range tests {
		if got := FloorMonths(tt.days); got != tt.want {
			t.Errorf("FloorMonths(%d) = %d, want %d", tt.days, got, tt.want)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.125, 0.13},
		{33.333333, 33.33},
		{-0.125, -0.13},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMonthShort(t *testing.T) {
	if got := MonthShort(1); got != "Jan" {
		t.Errorf("MonthShort(1) = %q, want Jan", got)
	}
	if got := MonthShort(12); got != "Dec" {
		t.Errorf("MonthShort(12) = %q, want Dec", got)
	}
}

func TestTodayIST(t *testing.T) {
	today := TodayIST()
	if today.Location() != time.UTC {
		t.Errorf("TodayIST location = %v, want UTC", today.Location())
	}
	if h, m, s := today.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("TodayIST not at midnight: %v", today)
	}
}
