package normalize

import (
	"testing"
	"time"
)

func TestDateDMY(t *testing.T) {
	got, ok := DateDMY("15/04/2020")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	want := time.Date(2020, 4, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateDMY = %v, want %v", got, want)
	}

	for _, bad := range []string{"", "  ", "2020-04-15", "31/02/2020", "garbage"} {
		if _, ok := DateDMY(bad); ok {
			t.Errorf("DateDMY(%q) unexpectedly parsed", bad)
		}
	}
}

func TestDateISO(t *testing.T) {
	got, ok := DateISO(" 2021-01-01 ")
	if !ok || !got.Equal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DateISO = %v, %v", got, ok)
	}
	if _, ok := DateISO("01/01/2021"); ok {
		t.Error("DateISO accepted dd/mm/yyyy")
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		in   string
		def  float64
		want float64
	}{
		{"100.5", 0, 100.5},
		{" 42 ", 0, 42},
		{"", 7, 7},
		{"abc", -1, -1},
	}
	for _, tt := range tests {
		if got := Float(tt.in, tt.def); got != tt.want {
			t.Errorf("Float(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestInt(t *testing.T) {
	// The extract writes counts in decimal notation sometimes.
	if got := Int("30.0", 0); got != 30 {
		t.Errorf("Int(30.0) = %d, want 30", got)
	}
	if got := Int("", 5); got != 5 {
		t.Errorf("Int empty = %d, want default", got)
	}
}

func TestCodeSet(t *testing.T) {
	set := NewCodeSet([]string{"241", " 242 "})
	if !set.Contains("241") || !set.Contains("242") {
		t.Error("expected both codes to be members")
	}
	if set.Contains("191") {
		t.Error("191 should not be a member")
	}
}
