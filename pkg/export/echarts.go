package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/user/heatgrid/pkg/colorscale"
	"github.com/user/heatgrid/pkg/timegrid"
)

// BuildHeatMap builds an interactive echarts heatmap for one dataset:
// years on the X axis, months on the Y axis, and a visual map carrying
// the dataset's effective color domain and palette.
func BuildHeatMap(data *timegrid.Aligned, title string) *charts.HeatMap {
	spec := data.EffectiveScale()
	domain := spec.Domain
	vmin, vmax := 0.0, 1.0
	if len(domain) >= 2 {
		vmin, vmax = domain[0], domain[len(domain)-1]
	}

	years := make([]string, len(data.Years))
	yearIndex := map[int]int{}
	for i, y := range data.Years {
		years[i] = strconv.Itoa(y)
		yearIndex[y] = i
	}

	months := make([]string, timegrid.MonthsPerYear)
	copy(months, timegrid.MonthNames[:])

	points := make([]opts.HeatMapData, 0, len(data.Cells))
	for i := range data.Cells {
		cell := &data.Cells[i]
		if cell.Value == nil {
			// Missing cells are left out entirely so echarts renders
			// them as blanks rather than zeros.
			continue
		}
		col, ok := yearIndex[cell.Year]
		if !ok {
			continue
		}
		points = append(points, opts.HeatMapData{
			Value: [3]interface{}{col, cell.Month - 1, *cell.Value},
		})
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1200px",
			Height:    "520px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%s, %d–%d", data.MetricID, data.Years[0], data.Years[len(data.Years)-1]),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: years}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: months}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(vmin),
			Max:        float32(vmax),
			Orient:     "horizontal",
			Left:       "center",
			InRange:    &opts.VisualMapInRange{Color: colorscale.PaletteHex(spec.Family)},
		}),
	)

	hm.AddSeries(data.EntityID, points)
	return hm
}

// WriteHTML renders the interactive chart as a standalone HTML page.
func WriteHTML(w io.Writer, data *timegrid.Aligned, title string) error {
	if data.Empty() {
		_, err := fmt.Fprintf(w, "<html><body><p>No data available for %s</p></body></html>\n", data.EntityID)
		return err
	}
	return BuildHeatMap(data, title).Render(w)
}
