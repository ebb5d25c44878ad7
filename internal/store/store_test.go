package store

import (
	"context"
	"testing"
)

func TestOpenRejectsBadSchema(t *testing.T) {
	for _, schema := range []string{"", "1bad", "Bad-Schema", `x"; drop table y; --`} {
		if _, err := Open(context.Background(), "postgres://localhost/db", schema); err == nil {
			t.Errorf("Open accepted schema %q", schema)
		}
	}
}

func TestIdentPattern(t *testing.T) {
	valid := []string{"bureauscrub", "scrub_runs", "a1_b2"}
	for _, s := range valid {
		if !identPattern.MatchString(s) {
			t.Errorf("identPattern rejected %q", s)
		}
	}
}
