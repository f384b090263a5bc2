package planning

import (
	"testing"
	"time"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"partial overlap", at(10, 0), at(13, 0), at(12, 0), at(15, 0), true},
		{"contained", at(10, 0), at(14, 0), at(11, 0), at(12, 0), true},
		{"identical", at(10, 0), at(13, 0), at(10, 0), at(13, 0), true},
		{"back to back", at(8, 0), at(12, 0), at(12, 0), at(16, 0), false},
		{"disjoint", at(8, 0), at(10, 0), at(14, 0), at(16, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps() = %v, want %v", got, tc.want)
			}
			// The relation is symmetric.
			if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Errorf("Overlaps() swapped = %v, want %v", got, tc.want)
			}
		})
	}
}
