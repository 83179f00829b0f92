// Package grid renders a 12-month by N-year cell grid on a surface,
// manages horizontal-scroll virtualization when the container is too
// narrow, and drives the hover and tooltip lifecycle.
package grid

// Theme holds the grid's colors as #rrggbb strings.
type Theme struct {
	Background  string
	Border      string
	Highlight   string
	MissingCell string
	Text        string
}

// Config controls cell sizing and styling.
type Config struct {
	// CellMinWidth is the minimum readable cell width. When the
	// natural width would fall below it, the grid scrolls instead of
	// shrinking further.
	CellMinWidth float64
	// CellMinHeight is the minimum cell height.
	CellMinHeight float64
	// MonthGutter is the width reserved for month labels.
	MonthGutter float64
	// AxisHeight is the height reserved for year tick labels.
	AxisHeight float64
	// HighlightStroke is the stroke width of the hovered cell.
	HighlightStroke float64
	Theme           Theme
}

// DefaultConfig returns the standard grid configuration.
func DefaultConfig() Config {
	return Config{
		CellMinWidth:    14,
		CellMinHeight:   4,
		MonthGutter:     36,
		AxisHeight:      18,
		HighlightStroke: 2,
		Theme: Theme{
			Background:  "#ffffff",
			Border:      "#d0d0d0",
			Highlight:   "#222222",
			MissingCell: "#f0f0f0",
			Text:        "#333333",
		},
	}
}

// Layout holds the computed cell geometry for one window.
type Layout struct {
	Years       []int
	CellWidth   float64
	CellHeight  float64
	GridWidth   float64 // natural width of all cells
	GridHeight  float64 // height of all cells, excluding the axis row
	ViewWidth   float64 // visible width available to cells
	NeedsScroll bool
}

// computeLayout sizes cells for the given window and container.
// Cell width is the available width divided by the number of years,
// clamped to the minimum readable width; when the natural width falls
// below the minimum, the width is fixed at the minimum and horizontal
// scrolling takes over.
func computeLayout(cfg Config, years []int, containerWidth, containerHeight float64) Layout {
	l := Layout{Years: years}
	if len(years) == 0 {
		return l
	}

	l.ViewWidth = containerWidth - cfg.MonthGutter
	if l.ViewWidth < 0 {
		l.ViewWidth = 0
	}

	l.CellWidth = l.ViewWidth / float64(len(years))
	if l.CellWidth < cfg.CellMinWidth {
		l.CellWidth = cfg.CellMinWidth
		l.NeedsScroll = true
	}
	l.GridWidth = l.CellWidth * float64(len(years))

	rows := containerHeight - cfg.AxisHeight
	l.CellHeight = rows / 12
	if l.CellHeight < cfg.CellMinHeight {
		l.CellHeight = cfg.CellMinHeight
	}
	l.GridHeight = l.CellHeight * 12

	return l
}
