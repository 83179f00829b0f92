package export

import (
	"fmt"
	"image"
	"image/color"

	"github.com/user/heatgrid/pkg/colorscale"
	"github.com/user/heatgrid/pkg/ports"
	"github.com/user/heatgrid/pkg/timegrid"
	"github.com/user/heatgrid/pkg/zones"
)

// RasterOptions controls static PNG output.
type RasterOptions struct {
	Width        int // canvas width, default 1200
	CellHeight   float64
	MonthGutter  float64
	AxisHeight   float64
	RowGap       float64
	LegendHeight float64
	Rows         int // desired number of grid rows, default 1
	FontPath     string
	FontSize     float64
	Background   color.Color
	TextColor    color.Color
	MissingCell  color.Color
}

// DefaultRasterOptions returns the standard raster layout.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		Width:        1200,
		CellHeight:   16,
		MonthGutter:  44,
		AxisHeight:   20,
		RowGap:       24,
		LegendHeight: 56,
		Rows:         1,
		FontSize:     12,
		Background:   color.White,
		TextColor:    color.RGBA{R: 51, G: 51, B: 51, A: 255},
		MissingCell:  color.RGBA{R: 240, G: 240, B: 240, A: 255},
	}
}

// RenderGrid draws the dataset as a static heatmap image: one or more
// wrapped grid rows, a year axis per row, and a legend with rounded
// ticks plus min/max labels and source attribution.
func RenderGrid(r ports.Renderer, data *timegrid.Aligned, opts RasterOptions) (image.Image, error) {
	if data.Empty() {
		return renderPlaceholder(r, opts), nil
	}

	scale, err := colorscale.New(data.EffectiveScale())
	if err != nil {
		return nil, fmt.Errorf("build color scale: %w", err)
	}

	perRow := YearsPerRow(len(data.Years), opts.Rows, 1)
	chunks := SplitYears(data.Years, perRow)

	blockHeight := 12*opts.CellHeight + opts.AxisHeight
	height := float64(len(chunks))*(blockHeight+opts.RowGap) + opts.LegendHeight
	canvas := r.CreateCanvas(opts.Width, int(height), opts.Background)

	textStyle := ports.TextStyle{
		FontSize: opts.FontSize,
		FontPath: opts.FontPath,
		Color:    opts.TextColor,
		Align:    ports.AlignCenter,
	}

	cellWidth := (float64(opts.Width) - opts.MonthGutter) / float64(perRow)
	y := 0.0
	for _, chunk := range chunks {
		drawBlock(canvas, data, scale, chunk, opts, cellWidth, y, textStyle)
		y += blockHeight + opts.RowGap
	}

	drawLegend(canvas, data, scale, opts, y, textStyle)
	return canvas.ToImage(), nil
}

func renderPlaceholder(r ports.Renderer, opts RasterOptions) image.Image {
	canvas := r.CreateCanvas(opts.Width, 120, opts.Background)
	canvas.DrawText("No data available", float64(opts.Width)/2, 60, ports.TextStyle{
		FontSize: opts.FontSize,
		FontPath: opts.FontPath,
		Color:    opts.TextColor,
		Align:    ports.AlignCenter,
	})
	return canvas.ToImage()
}

func drawBlock(canvas ports.Canvas, data *timegrid.Aligned, scale *colorscale.Scale, chunk []int, opts RasterOptions, cellWidth, top float64, style ports.TextStyle) {
	monthStyle := style
	monthStyle.Align = ports.AlignRight

	for m := 1; m <= timegrid.MonthsPerYear; m++ {
		cy := top + (float64(m)-0.5)*opts.CellHeight
		canvas.DrawText(timegrid.MonthNames[m-1], opts.MonthGutter-6, cy, monthStyle)
	}

	colIndex := map[int]int{}
	for i, year := range chunk {
		colIndex[year] = i
	}

	for i := range data.Cells {
		cell := &data.Cells[i]
		col, ok := colIndex[cell.Year]
		if !ok {
			continue
		}
		x := opts.MonthGutter + float64(col)*cellWidth
		cy := top + float64(cell.Month-1)*opts.CellHeight
		fill := opts.MissingCell
		if cell.Value != nil {
			fill = scale.Color(*cell.Value)
		}
		canvas.DrawRect(x, cy, cellWidth, opts.CellHeight, fill)
	}

	for _, tick := range zones.TickMarks(chunk[0], chunk[len(chunk)-1]) {
		col, ok := colIndex[tick]
		if !ok {
			continue
		}
		x := opts.MonthGutter + (float64(col)+0.5)*cellWidth
		canvas.DrawText(fmt.Sprintf("%d", tick), x, top+12*opts.CellHeight+opts.AxisHeight/2, style)
	}
}

// drawLegend draws a horizontal color ramp with rounded tick labels,
// explicit min/max labels at the ends, and the source attribution.
func drawLegend(canvas ports.Canvas, data *timegrid.Aligned, scale *colorscale.Scale, opts RasterOptions, top float64, style ports.TextStyle) {
	domain := scale.Domain()
	vmin, vmax := domain[0], domain[len(domain)-1]

	rampX := opts.MonthGutter
	rampW := float64(opts.Width) - 2*opts.MonthGutter
	rampH := 12.0
	steps := 128
	for i := 0; i < steps; i++ {
		frac := float64(i) / float64(steps-1)
		v := vmin + frac*(vmax-vmin)
		canvas.DrawRect(rampX+frac*rampW, top, rampW/float64(steps)+1, rampH, scale.Color(v))
	}

	metric := data.MetricID
	for _, tick := range colorscale.LegendTicks(domain, 5) {
		frac := 0.0
		if vmax > vmin {
			frac = (tick - vmin) / (vmax - vmin)
		}
		canvas.DrawText(colorscale.FormatValue(&tick, metric), rampX+frac*rampW, top+rampH+10, style)
	}

	minStyle := style
	minStyle.Align = ports.AlignRight
	canvas.DrawText(colorscale.FormatValue(&vmin, metric), rampX-6, top+rampH/2, minStyle)
	maxStyle := style
	maxStyle.Align = ports.AlignLeft
	canvas.DrawText(colorscale.FormatValue(&vmax, metric), rampX+rampW+6, top+rampH/2, maxStyle)

	if label := sourceLine(data); label != "" {
		srcStyle := style
		srcStyle.Align = ports.AlignLeft
		canvas.DrawText(label, rampX, top+rampH+28, srcStyle)
	}
}

// sourceLine builds the attribution line from the distinct sources
// present in the dataset.
func sourceLine(data *timegrid.Aligned) string {
	seen := map[string]bool{}
	line := ""
	for i := range data.Cells {
		src := data.Cells[i].Source
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		label, ok := timegrid.SourceLabels[src]
		if !ok {
			label = src
		}
		if line != "" {
			line += "; "
		}
		line += label
	}
	if line == "" {
		return ""
	}
	return "Source: " + line
}
