// Package compare aligns multiple entity datasets for side-by-side
// rendering: a shared year window, an optional unified color domain,
// and gap-filled per-entity datasets with identical grid geometry.
package compare

import (
	"github.com/user/heatgrid/pkg/colorscale"
	"github.com/user/heatgrid/pkg/timegrid"
)

// YearRange is an inclusive [Start, End] year window.
type YearRange struct {
	Start int
	End   int
}

// CommonYearRange returns the union of every dataset's own year span:
// the smallest window containing each entity's available years.
// Datasets without years are skipped; ok is false when none has any.
func CommonYearRange(datasets []*timegrid.Dataset) (YearRange, bool) {
	var (
		r     YearRange
		found bool
	)
	for _, d := range datasets {
		min, max, ok := d.YearRange()
		if !ok {
			continue
		}
		if !found {
			r = YearRange{Start: min, End: max}
			found = true
			continue
		}
		if min < r.Start {
			r.Start = min
		}
		if max > r.End {
			r.End = max
		}
	}
	return r, found
}

// UnifiedScale computes the shared color spec for unified-scale mode:
// the exact min/max of all non-null values across all datasets
// restricted to the window, widened by the same epsilon floor as a
// single dataset's own scale.
func UnifiedScale(datasets []*timegrid.Dataset, r YearRange, family timegrid.Family, metric string) timegrid.ScaleSpec {
	var (
		min, max float64
		found    bool
	)
	for _, d := range datasets {
		for i := range d.Cells {
			c := &d.Cells[i]
			if c.Value == nil || c.Year < r.Start || c.Year > r.End {
				continue
			}
			if !found {
				min, max, found = *c.Value, *c.Value, true
				continue
			}
			if *c.Value < min {
				min = *c.Value
			}
			if *c.Value > max {
				max = *c.Value
			}
		}
	}
	if !found {
		min, max = 0, 0
	}
	return timegrid.ScaleSpec{
		Domain: colorscale.WorkingDomain(min, max),
		Family: family,
		Metric: metric,
	}
}

// Align clips and pads a dataset to the window: every (year, month)
// pair in the window is present, synthesized with a nil value when
// absent from the source. The override is attached for unified-scale
// mode; when nil the aligned dataset keeps its own scale.
func Align(d *timegrid.Dataset, r YearRange, override *timegrid.ScaleSpec) *timegrid.Aligned {
	present := make(map[[2]int]*timegrid.Cell, len(d.Cells))
	for i := range d.Cells {
		c := &d.Cells[i]
		present[[2]int{c.Year, c.Month}] = c
	}

	nYears := r.End - r.Start + 1
	cells := make([]timegrid.Cell, 0, nYears*timegrid.MonthsPerYear)
	years := make([]int, 0, nYears)
	for year := r.Start; year <= r.End; year++ {
		years = append(years, year)
		for month := 1; month <= timegrid.MonthsPerYear; month++ {
			if c, ok := present[[2]int{year, month}]; ok {
				cells = append(cells, *c)
				continue
			}
			cells = append(cells, timegrid.Cell{Year: year, Month: month})
		}
	}

	return &timegrid.Aligned{
		Dataset: timegrid.Dataset{
			EntityID: d.EntityID,
			MetricID: d.MetricID,
			Years:    years,
			Cells:    cells,
			Scale:    d.Scale,
		},
		ScaleOverride: override,
	}
}
