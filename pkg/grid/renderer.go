package grid

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/user/heatgrid/pkg/colorscale"
	"github.com/user/heatgrid/pkg/compare"
	"github.com/user/heatgrid/pkg/ports"
	"github.com/user/heatgrid/pkg/timegrid"
	"github.com/user/heatgrid/pkg/tooltip"
	"github.com/user/heatgrid/pkg/zones"
)

// ErrContainerOwned is returned when a renderer is created on a
// container that still belongs to a live renderer. Callers must
// destroy the previous instance first.
var ErrContainerOwned = errors.New("container already owned by a grid renderer")

const ownerAttr = "heatgrid-owner"

// ScrollInfo describes the horizontal scroll state of the grid.
type ScrollInfo struct {
	NeedsScroll bool
	ScrollWidth float64
	ClientWidth float64
}

// Renderer owns the rendered subtree for one dataset. It is bound to
// a single container element; the subtree is exclusive and non-shared.
type Renderer struct {
	surface      ports.Surface
	container    ports.Element
	tooltipLayer ports.Element
	log          ports.Logger
	cfg          Config
	onValueHover func(*float64)

	data   *timegrid.Aligned
	scale  *colorscale.Scale
	layout Layout

	panel       ports.Element
	gutter      ports.Element
	scroller    ports.Element
	content     ports.Element
	placeholder ports.Element
	tip         ports.Element
	positioner  *tooltip.Positioner

	cellsByEl   map[ports.Element]*timegrid.Cell
	elsByCell   map[[2]int]ports.Element
	cancels     []func() // instance-lifetime listeners
	cellCancels []func() // per-rebuild cell listeners

	hover     hoverState
	hoveredEl ports.Element

	width     float64
	height    float64
	destroyed bool
}

// New builds the grid for the dataset's full year window and registers
// pointer handlers. The container must not already be owned by a live
// renderer.
func New(surface ports.Surface, container ports.Element, data *timegrid.Aligned, cfg Config, tooltipLayer ports.Element, log ports.Logger, onValueHover func(*float64)) (*Renderer, error) {
	if container.Attr(ownerAttr) == "true" {
		return nil, ErrContainerOwned
	}
	container.SetAttr(ownerAttr, "true")

	box := container.Box()
	r := &Renderer{
		surface:      surface,
		container:    container,
		tooltipLayer: tooltipLayer,
		log:          log.WithComponent("grid"),
		cfg:          cfg,
		onValueHover: onValueHover,
		data:         data,
		width:        box.Width,
		height:       box.Height,
	}

	r.panel = surface.CreateElement("panel")
	r.panel.SetBox(ports.Rect{Width: r.width, Height: r.height})
	r.panel.SetAttr("fill", cfg.Theme.Background)
	container.AppendChild(r.panel)

	r.tip = surface.CreateElement("tooltip")
	r.tip.SetAttr("hidden", "true")
	r.tip.SetBox(ports.Rect{Width: 150, Height: 56})
	tooltipLayer.AppendChild(r.tip)

	r.positioner = tooltip.New(surface, r.tip, tooltip.DefaultConfig())
	r.positioner.OnDismiss(func() {
		// The hovered cell scrolled out of the scroller: the tooltip
		// no longer refers to a visible cell.
		r.clearHover()
	})

	r.cancels = append(r.cancels,
		container.On(ports.EventPointerDown, r.handlePointerDown),
		r.panel.On(ports.EventPointerLeave, r.handleSurfaceLeave),
	)

	r.rebuild()
	return r, nil
}

// Update relayouts and redraws for a new year window without
// destroying the instance. The scroll position resets to the start.
func (r *Renderer) Update(data *timegrid.Aligned, window compare.YearRange) {
	if r.destroyed {
		return
	}
	start, end := zones.ClampRange(window.Start, window.End)
	clipped := compare.Align(&data.Dataset, compare.YearRange{Start: start, End: end}, data.ScaleOverride)

	r.HideTooltip()
	r.data = clipped
	r.rebuild()
	if r.scroller != nil {
		r.scroller.ScrollTo(0)
	}
}

// Resize relayouts cell sizes for a new container size, patching the
// existing elements in place.
func (r *Renderer) Resize(width, height float64) {
	if r.destroyed {
		return
	}
	r.width, r.height = width, height
	r.panel.SetBox(ports.Rect{Width: width, Height: height})
	if r.data.Empty() {
		if r.placeholder != nil {
			r.placeholder.SetBox(ports.Rect{Width: width, Height: height})
		}
		return
	}

	r.layout = computeLayout(r.cfg, r.data.Years, width, height)
	r.placeChrome()
	for key, el := range r.elsByCell {
		el.SetBox(r.cellBox(key[0], key[1]))
	}
	r.placeAxisLabels()
	r.positioner.Reposition()
}

// ScrollInfo returns the current horizontal scroll state.
func (r *Renderer) ScrollInfo() ScrollInfo {
	if r.scroller == nil {
		return ScrollInfo{}
	}
	return ScrollInfo{
		NeedsScroll: r.layout.NeedsScroll,
		ScrollWidth: r.scroller.ScrollWidth(),
		ClientWidth: r.scroller.ClientWidth(),
	}
}

// HideTooltip dismisses the tooltip and clears the hover state. Used
// on pointer-leave of the surrounding panel and on year-range changes.
func (r *Renderer) HideTooltip() {
	r.clearHover()
}

// Destroy removes the rendered subtree and every registered listener.
// It is idempotent.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.clearHover()
	r.positioner.Destroy()
	for _, cancel := range r.cancels {
		cancel()
	}
	r.cancels = nil
	r.clearCellListeners()
	r.tip.Remove()
	r.panel.Remove()
	r.container.RemoveAttr(ownerAttr)
	r.log.Debug("grid destroyed for %s", r.data.EntityID)
}

// rebuild tears down the cell subtree and builds it for the current
// dataset. Structural changes always rebuild; transient state (hover
// stroke) is patched in place elsewhere.
func (r *Renderer) rebuild() {
	r.clearCellListeners()
	for _, child := range r.panel.Children() {
		child.Remove()
	}
	r.gutter, r.scroller, r.content, r.placeholder = nil, nil, nil, nil
	r.cellsByEl = map[ports.Element]*timegrid.Cell{}
	r.elsByCell = map[[2]int]ports.Element{}
	r.hoveredEl = nil
	r.hover = hoverIdle

	if r.data.Empty() {
		r.placeholder = r.surface.CreateElement("placeholder")
		r.placeholder.SetText("No data available")
		r.placeholder.SetAttr("fill", r.cfg.Theme.Text)
		r.placeholder.SetBox(ports.Rect{Width: r.width, Height: r.height})
		r.panel.AppendChild(r.placeholder)
		r.log.Debug("rendering no-data placeholder for %s", r.data.EntityID)
		return
	}

	r.layout = computeLayout(r.cfg, r.data.Years, r.width, r.height)
	r.scale = r.buildScale()

	r.gutter = r.surface.CreateElement("gutter")
	r.panel.AppendChild(r.gutter)
	for m := 1; m <= timegrid.MonthsPerYear; m++ {
		label := r.surface.CreateElement("month-label")
		label.SetText(timegrid.MonthNames[m-1])
		label.SetAttr("fill", r.cfg.Theme.Text)
		r.gutter.AppendChild(label)
	}

	r.scroller = r.surface.CreateElement("scroller")
	r.scroller.SetAttr("scroll-container", "true")
	r.scroller.SetScrollable(true)
	r.panel.AppendChild(r.scroller)

	r.content = r.surface.CreateElement("content")
	r.scroller.AppendChild(r.content)

	for i := range r.data.Cells {
		cell := &r.data.Cells[i]
		el := r.surface.CreateElement("cell")
		el.SetAttr("fill", r.fillFor(cell))
		el.SetAttr("year", strconv.Itoa(cell.Year))
		el.SetAttr("month", strconv.Itoa(cell.Month))
		el.SetBox(r.cellBox(cell.Year, cell.Month))
		r.content.AppendChild(el)

		r.cellsByEl[el] = cell
		r.elsByCell[[2]int{cell.Year, cell.Month}] = el
		r.cellCancels = append(r.cellCancels,
			el.On(ports.EventPointerEnter, r.handleCellEnter),
			el.On(ports.EventPointerLeave, r.handleCellLeave),
		)
	}

	for _, year := range zones.TickMarks(r.data.Years[0], r.data.Years[len(r.data.Years)-1]) {
		label := r.surface.CreateElement("axis-label")
		label.SetText(strconv.Itoa(year))
		label.SetAttr("fill", r.cfg.Theme.Text)
		label.SetAttr("year", strconv.Itoa(year))
		r.content.AppendChild(label)
	}

	r.placeChrome()
	r.placeAxisLabels()
	r.log.Debug("grid rebuilt for %s: %d years, %d cells", r.data.EntityID, len(r.data.Years), len(r.data.Cells))
}

// placeChrome positions the gutter, scroller, content, and month
// labels for the current layout.
func (r *Renderer) placeChrome() {
	l := &r.layout
	r.gutter.SetBox(ports.Rect{Width: r.cfg.MonthGutter, Height: l.GridHeight})
	for i, label := range r.gutter.Children() {
		label.SetBox(ports.Rect{Y: float64(i) * l.CellHeight, Width: r.cfg.MonthGutter, Height: l.CellHeight})
	}
	r.scroller.SetBox(ports.Rect{X: r.cfg.MonthGutter, Width: l.ViewWidth, Height: l.GridHeight + r.cfg.AxisHeight})
	r.content.SetBox(ports.Rect{Width: l.GridWidth, Height: l.GridHeight + r.cfg.AxisHeight})
}

// placeAxisLabels positions the year tick labels under their columns.
func (r *Renderer) placeAxisLabels() {
	l := &r.layout
	yearIndex := map[int]int{}
	for i, y := range l.Years {
		yearIndex[y] = i
	}
	for _, child := range r.content.Children() {
		if child.Kind() != "axis-label" {
			continue
		}
		year, err := strconv.Atoi(child.Attr("year"))
		if err != nil {
			continue
		}
		idx, ok := yearIndex[year]
		if !ok {
			continue
		}
		child.SetBox(ports.Rect{
			X:      float64(idx) * l.CellWidth,
			Y:      l.GridHeight,
			Width:  l.CellWidth,
			Height: r.cfg.AxisHeight,
		})
	}
}

func (r *Renderer) cellBox(year, month int) ports.Rect {
	l := &r.layout
	idx := 0
	for i, y := range l.Years {
		if y == year {
			idx = i
			break
		}
	}
	return ports.Rect{
		X:      float64(idx) * l.CellWidth,
		Y:      float64(month-1) * l.CellHeight,
		Width:  l.CellWidth,
		Height: l.CellHeight,
	}
}

// buildScale constructs the color scale from the effective spec,
// falling back to the dataset's own exact min/max when the spec is
// unusable.
func (r *Renderer) buildScale() *colorscale.Scale {
	spec := r.data.EffectiveScale()
	s, err := colorscale.New(spec)
	if err == nil {
		return s
	}
	r.log.Warn("invalid color scale for %s: %v", r.data.EntityID, err)
	s, err = colorscale.New(colorscale.SpecFor(&r.data.Dataset, spec.Family))
	if err != nil {
		// SpecFor always yields a two-stop ascending domain.
		panic(fmt.Sprintf("fallback scale construction failed: %v", err))
	}
	return s
}

func (r *Renderer) fillFor(cell *timegrid.Cell) string {
	if cell.Value == nil {
		return r.cfg.Theme.MissingCell
	}
	return r.scale.Hex(*cell.Value)
}

func (r *Renderer) clearCellListeners() {
	for _, cancel := range r.cellCancels {
		cancel()
	}
	r.cellCancels = nil
}
