package utils

import (
	"math"
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30). Bureau extracts
// and the dashboard both run on IST calendar dates.
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// NowIST returns the current time in IST.
func NowIST() time.Time {
	return time.Now().In(IST)
}

// TodayIST returns the current IST date at UTC midnight, the processing
// date used for bureau-date fallback and freshness checks.
func TodayIST() time.Time {
	now := NowIST()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns whole days from a to b. Negative when b precedes a.
// Both arguments are expected to be date values (midnight UTC).
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// FloorMonths converts a day delta to whole months by floor division
// over a 30-day month. Floor, not truncation: -5 days is month -1.
func FloorMonths(days int) int {
	m := days / 30
	if days%30 != 0 && days < 0 {
		m--
	}
	return m
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthShort returns the three-letter English name of a calendar month.
func MonthShort(m int) string {
	return time.Month(m).String()[:3]
}
