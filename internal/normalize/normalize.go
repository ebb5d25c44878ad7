// Package normalize parses raw bureau extract fields into typed values.
// Every parser is a total function: malformed input yields the caller's
// default (or "absent" for dates), never an error. A bad field must
// cost at most its own value, never the row or the run.
package normalize

import (
	"strconv"
	"strings"
	"time"
)

const (
	layoutDMY = "02/01/2006"
	layoutISO = "2006-01-02"
)

// DateDMY parses a dd/mm/yyyy date. ok is false on empty input or
// format mismatch.
func DateDMY(s string) (time.Time, bool) {
	return parseDate(s, layoutDMY)
}

// DateISO parses a yyyy-mm-dd date. ok is false on empty input or
// format mismatch.
func DateISO(s string) (time.Time, bool) {
	return parseDate(s, layoutISO)
}

func parseDate(s, layout string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Float parses a numeric amount, returning def when the string is
// empty or non-numeric.
func Float(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

// Int parses an integer field, accepting decimal notation ("30.0")
// the way the extract sometimes writes counts.
func Int(s string, def int) int {
	return int(Float(s, float64(def)))
}

// CodeSet is a membership test over categorical codes. The anchor and
// target product code sets are policy inputs, not constants.
type CodeSet map[string]bool

// NewCodeSet builds a CodeSet from a list of codes.
func NewCodeSet(codes []string) CodeSet {
	set := make(CodeSet, len(codes))
	for _, c := range codes {
		set[strings.TrimSpace(c)] = true
	}
	return set
}

// Contains reports whether code belongs to the set.
func (c CodeSet) Contains(code string) bool {
	return c[code]
}
