// Package zones computes year-availability zones and axis tick marks
// for the range filter.
package zones

import (
	"sort"

	"github.com/user/heatgrid/pkg/timegrid"
)

// Analyze partitions [min, max] into contiguous zones of consecutive
// years that either have data or do not. Input years are sorted and
// de-duplicated first; years outside [min, max] are ignored. The
// returned zones are ordered ascending, cover [min, max] exactly, and
// no two adjacent zones share the same HasData flag.
func Analyze(min, max int, dataYears []int) []timegrid.DataZone {
	if max < min {
		min, max = max, min
	}

	years := make([]int, 0, len(dataYears))
	for _, y := range dataYears {
		if y >= min && y <= max {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	years = dedupe(years)

	if len(years) == 0 {
		return []timegrid.DataZone{{Start: min, End: max, HasData: false}}
	}

	var out []timegrid.DataZone
	if years[0] > min {
		out = append(out, timegrid.DataZone{Start: min, End: years[0] - 1, HasData: false})
	}

	runStart := years[0]
	prev := years[0]
	for _, y := range years[1:] {
		if y == prev+1 {
			prev = y
			continue
		}
		out = append(out, timegrid.DataZone{Start: runStart, End: prev, HasData: true})
		out = append(out, timegrid.DataZone{Start: prev + 1, End: y - 1, HasData: false})
		runStart = y
		prev = y
	}
	out = append(out, timegrid.DataZone{Start: runStart, End: prev, HasData: true})

	if prev < max {
		out = append(out, timegrid.DataZone{Start: prev + 1, End: max, HasData: false})
	}
	return out
}

// TickMarks returns the year tick positions for [min, max]: multiples
// of 5 years for spans up to 30 years, multiples of 10 otherwise.
func TickMarks(min, max int) []int {
	if max < min {
		min, max = max, min
	}
	interval := 5
	if max-min > 30 {
		interval = 10
	}

	first := ceilDiv(min, interval) * interval
	var ticks []int
	for t := first; t <= max; t += interval {
		ticks = append(ticks, t)
	}
	return ticks
}

// ClampRange corrects a requested [start, end] so the window can never
// collapse to zero or negative width.
func ClampRange(start, end int) (int, int) {
	if start >= end {
		start = end - 1
	}
	if end <= start {
		end = start + 1
	}
	return start, end
}

func dedupe(sorted []int) []int {
	out := sorted[:0]
	for i, y := range sorted {
		if i == 0 || y != sorted[i-1] {
			out = append(out, y)
		}
	}
	return out
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a > 0) == (b > 0) {
		q++
	}
	return q
}
