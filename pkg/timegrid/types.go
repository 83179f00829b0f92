// Package timegrid defines the core month-by-year dataset types shared by
// the rendering and comparison packages.
package timegrid

import (
	"fmt"
	"sort"
)

// MonthsPerYear is the number of rows in every rendered grid.
const MonthsPerYear = 12

// MonthNames holds the short month labels used on the grid's row axis.
var MonthNames = [MonthsPerYear]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// SourceLabels maps data source codes to attribution labels.
var SourceLabels = map[string]string{
	"HMD":  "Human Mortality Database (https://www.mortality.org/)",
	"UN":   "United Nations (https://population.un.org/wpp/)",
	"JPOP": "Minato Nakazawa (fmsb R package)",
}

// Family selects the interpolation palette for a color scale.
type Family string

const (
	// FamilySequential is for single-direction magnitudes.
	FamilySequential Family = "sequential"
	// FamilyDiverging is for signed deviation around a midpoint.
	FamilyDiverging Family = "diverging"
)

// ScaleSpec describes a value-to-color mapping domain.
// Domain has at least two ascending stops; degenerate domains
// (min == max) are tolerated by scale construction.
type ScaleSpec struct {
	Domain []float64
	Family Family
	Metric string
}

// Cell is a single (year, month) data point. A nil Value means the
// cell has no data and must render distinctly from zero.
type Cell struct {
	Year       int
	Month      int // 1..12
	Value      *float64
	Births     *float64
	Population *float64
	Source     string
}

// Dataset is one entity's full month-by-year metric grid plus its own
// color-scale spec. Datasets are immutable once constructed.
type Dataset struct {
	EntityID string
	MetricID string
	Years    []int // sorted distinct years present in Cells
	Cells    []Cell
	Scale    ScaleSpec
}

// DataZone is a maximal contiguous year range sharing one
// data-availability flag.
type DataZone struct {
	Start   int
	End     int
	HasData bool
}

// Aligned is a dataset clipped and padded to a requested year window so
// that every (year, month) in the window is present. It optionally
// carries a scale override for unified-scale comparison.
type Aligned struct {
	Dataset
	ScaleOverride *ScaleSpec
}

// EffectiveScale returns the override when set, otherwise the
// dataset's own scale.
func (a *Aligned) EffectiveScale() ScaleSpec {
	if a.ScaleOverride != nil {
		return *a.ScaleOverride
	}
	return a.Scale
}

// Empty reports whether the dataset has no cells at all.
func (d *Dataset) Empty() bool {
	return len(d.Cells) == 0
}

// YearRange returns the first and last available year. ok is false for
// an empty dataset.
func (d *Dataset) YearRange() (min, max int, ok bool) {
	if len(d.Years) == 0 {
		return 0, 0, false
	}
	return d.Years[0], d.Years[len(d.Years)-1], true
}

// CellAt returns the cell for (year, month), or nil when absent.
func (d *Dataset) CellAt(year, month int) *Cell {
	for i := range d.Cells {
		if d.Cells[i].Year == year && d.Cells[i].Month == month {
			return &d.Cells[i]
		}
	}
	return nil
}

// ValueDomain returns the exact minimum and maximum of the non-null
// values. ok is false when no cell carries a value.
func (d *Dataset) ValueDomain() (min, max float64, ok bool) {
	for i := range d.Cells {
		v := d.Cells[i].Value
		if v == nil {
			continue
		}
		if !ok {
			min, max, ok = *v, *v, true
			continue
		}
		if *v < min {
			min = *v
		}
		if *v > max {
			max = *v
		}
	}
	return min, max, ok
}

// YearsOf extracts the sorted distinct years present in cells.
func YearsOf(cells []Cell) []int {
	seen := make(map[int]bool, len(cells))
	for i := range cells {
		seen[cells[i].Year] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Validate checks the dataset invariants: months in 1..12, no
// duplicate (year, month) pair, and Years matching the distinct years
// present in Cells.
func (d *Dataset) Validate() error {
	seen := make(map[[2]int]bool, len(d.Cells))
	for i := range d.Cells {
		c := &d.Cells[i]
		if c.Month < 1 || c.Month > MonthsPerYear {
			return fmt.Errorf("cell %d: month %d out of range", i, c.Month)
		}
		key := [2]int{c.Year, c.Month}
		if seen[key] {
			return fmt.Errorf("duplicate cell for year %d month %d", c.Year, c.Month)
		}
		seen[key] = true
	}
	want := YearsOf(d.Cells)
	if len(want) != len(d.Years) {
		return fmt.Errorf("years list has %d entries, cells span %d distinct years", len(d.Years), len(want))
	}
	for i, y := range want {
		if d.Years[i] != y {
			return fmt.Errorf("years list mismatch at index %d: %d != %d", i, d.Years[i], y)
		}
	}
	return nil
}
