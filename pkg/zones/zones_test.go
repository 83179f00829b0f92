package zones

import (
	"testing"

	"github.com/user/heatgrid/pkg/timegrid"
)

func TestAnalyze_GapProducesAlternatingZones(t *testing.T) {
	// 2000-2002 and 2005-2007 have data, 2003-2004 is a gap.
	got := Analyze(2000, 2007, []int{2000, 2001, 2002, 2005, 2006, 2007})

	want := []timegrid.DataZone{
		{Start: 2000, End: 2002, HasData: true},
		{Start: 2003, End: 2004, HasData: false},
		{Start: 2005, End: 2007, HasData: true},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d zones, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("zone[%d]: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestAnalyze_NoData(t *testing.T) {
	got := Analyze(1990, 2000, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(got))
	}
	if got[0] != (timegrid.DataZone{Start: 1990, End: 2000, HasData: false}) {
		t.Errorf("unexpected zone: %+v", got[0])
	}
}

func TestAnalyze_LeadingAndTrailingGaps(t *testing.T) {
	got := Analyze(1990, 2010, []int{1995, 1996, 1997, 1998, 1999, 2000})

	want := []timegrid.DataZone{
		{Start: 1990, End: 1994, HasData: false},
		{Start: 1995, End: 2000, HasData: true},
		{Start: 2001, End: 2010, HasData: false},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d zones, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("zone[%d]: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestAnalyze_UnsortedDuplicateAndOutOfRangeYears(t *testing.T) {
	// Years outside [2000, 2004] must be ignored, duplicates collapsed.
	got := Analyze(2000, 2004, []int{2003, 2001, 2001, 1980, 2050, 2000})

	want := []timegrid.DataZone{
		{Start: 2000, End: 2001, HasData: true},
		{Start: 2002, End: 2002, HasData: false},
		{Start: 2003, End: 2003, HasData: true},
		{Start: 2004, End: 2004, HasData: false},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d zones, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("zone[%d]: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

// TestAnalyze_PartitionInvariants checks the structural guarantees for
// several inputs: zones cover [min, max] without holes or overlap, and
// adjacent zones alternate the HasData flag.
func TestAnalyze_PartitionInvariants(t *testing.T) {
	cases := []struct {
		name     string
		min, max int
		years    []int
	}{
		{"single year with data", 2000, 2000, []int{2000}},
		{"single year without data", 2000, 2000, nil},
		{"many gaps", 1900, 1950, []int{1905, 1906, 1910, 1930, 1931, 1932, 1950}},
		{"full coverage", 2000, 2005, []int{2000, 2001, 2002, 2003, 2004, 2005}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			zones := Analyze(tc.min, tc.max, tc.years)
			if len(zones) == 0 {
				t.Fatal("expected at least one zone")
			}
			if zones[0].Start != tc.min {
				t.Errorf("first zone starts at %d, expected %d", zones[0].Start, tc.min)
			}
			if zones[len(zones)-1].End != tc.max {
				t.Errorf("last zone ends at %d, expected %d", zones[len(zones)-1].End, tc.max)
			}
			for i, z := range zones {
				if z.End < z.Start {
					t.Errorf("zone[%d] inverted: %+v", i, z)
				}
				if i == 0 {
					continue
				}
				if z.Start != zones[i-1].End+1 {
					t.Errorf("zone[%d] does not continue zone[%d]: %+v after %+v", i, i-1, z, zones[i-1])
				}
				if z.HasData == zones[i-1].HasData {
					t.Errorf("zone[%d] repeats HasData=%v", i, z.HasData)
				}
			}
		})
	}
}

func TestTickMarks(t *testing.T) {
	cases := []struct {
		name     string
		min, max int
		want     []int
	}{
		{"short span uses 5-year ticks", 2000, 2020, []int{2000, 2005, 2010, 2015, 2020}},
		{"long span uses 10-year ticks", 1900, 2020, []int{1900, 1910, 1920, 1930, 1940, 1950, 1960, 1970, 1980, 1990, 2000, 2010, 2020}},
		{"unaligned start rounds up", 2003, 2017, []int{2005, 2010, 2015}},
		{"no multiple inside span", 2001, 2004, nil},
		{"swapped bounds", 2020, 2000, []int{2000, 2005, 2010, 2015, 2020}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TickMarks(tc.min, tc.max)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Errorf("tick[%d]: expected %d, got %d", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestClampRange(t *testing.T) {
	cases := []struct {
		name               string
		start, end         int
		wantStart, wantEnd int
	}{
		{"valid range unchanged", 2000, 2010, 2000, 2010},
		{"collapsed range widens", 2005, 2005, 2004, 2005},
		{"inverted range corrects", 2010, 2000, 1999, 2000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := ClampRange(tc.start, tc.end)
			if start != tc.wantStart || end != tc.wantEnd {
				t.Errorf("ClampRange(%d, %d) = (%d, %d), expected (%d, %d)",
					tc.start, tc.end, start, end, tc.wantStart, tc.wantEnd)
			}
			if end <= start {
				t.Errorf("clamped range still collapsed: (%d, %d)", start, end)
			}
		})
	}
}
