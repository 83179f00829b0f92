package export

import (
	"strings"
	"testing"

	"github.com/user/heatgrid/pkg/adapters/ggrenderer"
	"github.com/user/heatgrid/pkg/colorscale"
	"github.com/user/heatgrid/pkg/compare"
	"github.com/user/heatgrid/pkg/timegrid"
)

func testAligned(startYear, endYear int) *timegrid.Aligned {
	var cells []timegrid.Cell
	for year := startYear; year <= endYear; year++ {
		for month := 1; month <= 12; month++ {
			v := float64((year-startYear)*12 + month)
			cells = append(cells, timegrid.Cell{Year: year, Month: month, Value: &v, Source: "HMD"})
		}
	}
	d := &timegrid.Dataset{
		EntityID: "Sweden",
		MetricID: colorscale.MetricBirths,
		Years:    timegrid.YearsOf(cells),
		Cells:    cells,
	}
	d.Scale = colorscale.SpecFor(d, timegrid.FamilySequential)
	return compare.Align(d, compare.YearRange{Start: startYear, End: endYear}, nil)
}

func TestRenderGrid_SingleRowDimensions(t *testing.T) {
	opts := DefaultRasterOptions()
	opts.Width = 800

	img, err := RenderGrid(ggrenderer.New(), testAligned(2000, 2004), opts)
	if err != nil {
		t.Fatalf("RenderGrid: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 800 {
		t.Errorf("expected width 800, got %d", bounds.Dx())
	}
	// One block (12*16 + 20) plus the row gap and legend.
	wantHeight := int(12*opts.CellHeight + opts.AxisHeight + opts.RowGap + opts.LegendHeight)
	if bounds.Dy() != wantHeight {
		t.Errorf("expected height %d, got %d", wantHeight, bounds.Dy())
	}
}

func TestRenderGrid_MultiRowGrowsTaller(t *testing.T) {
	opts := DefaultRasterOptions()
	opts.Rows = 2

	single := DefaultRasterOptions()
	r := ggrenderer.New()

	tall, err := RenderGrid(r, testAligned(1950, 2009), opts)
	if err != nil {
		t.Fatalf("RenderGrid rows=2: %v", err)
	}
	flat, err := RenderGrid(r, testAligned(1950, 2009), single)
	if err != nil {
		t.Fatalf("RenderGrid rows=1: %v", err)
	}

	if tall.Bounds().Dy() <= flat.Bounds().Dy() {
		t.Errorf("two rows should be taller than one: %d vs %d",
			tall.Bounds().Dy(), flat.Bounds().Dy())
	}
}

func TestRenderGrid_EmptyDatasetPlaceholder(t *testing.T) {
	empty := &timegrid.Aligned{Dataset: timegrid.Dataset{EntityID: "Nowhere"}}

	img, err := RenderGrid(ggrenderer.New(), empty, DefaultRasterOptions())
	if err != nil {
		t.Fatalf("RenderGrid: %v", err)
	}
	if img.Bounds().Dy() != 120 {
		t.Errorf("expected the 120px placeholder, got %d", img.Bounds().Dy())
	}
}

func TestSourceLine(t *testing.T) {
	data := testAligned(2000, 2001)
	line := sourceLine(data)
	if !strings.HasPrefix(line, "Source: ") {
		t.Errorf("expected attribution prefix, got %q", line)
	}
	if !strings.Contains(line, "Human Mortality Database") {
		t.Errorf("expected the HMD label, got %q", line)
	}

	// Unknown codes fall back to the raw code, duplicates collapse.
	for i := range data.Cells {
		data.Cells[i].Source = "XYZ"
	}
	if got := sourceLine(data); got != "Source: XYZ" {
		t.Errorf("expected raw code fallback, got %q", got)
	}

	none := &timegrid.Aligned{Dataset: timegrid.Dataset{Cells: []timegrid.Cell{{Year: 2000, Month: 1}}}}
	if got := sourceLine(none); got != "" {
		t.Errorf("expected empty line without sources, got %q", got)
	}
}
