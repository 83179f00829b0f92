package grid

import (
	"fmt"

	"github.com/user/heatgrid/pkg/colorscale"
	"github.com/user/heatgrid/pkg/ports"
	"github.com/user/heatgrid/pkg/timegrid"
)

// hoverState is the tooltip/highlight state machine.
//
//	Idle ──pointer-enter (mouse)──▶ Hovering
//	Idle ──pointer-enter (touch)──▶ TouchSelected
//	Hovering ──cell/panel pointer-leave (non-touch)──▶ Idle
//	TouchSelected ──pointer-down outside any cell──▶ Idle
//
// Moving between cells swaps the highlighted cell and tooltip content
// without passing through Idle. Pointer-leave from a touch pointer is
// ignored so scrolling or dragging does not flicker the selection.
type hoverState int

const (
	hoverIdle hoverState = iota
	hoverHovering
	hoverTouchSelected
)

func (r *Renderer) handleCellEnter(ev ports.Event) {
	if r.destroyed {
		return
	}
	el := ev.Target
	cell, ok := r.cellsByEl[el]
	if !ok {
		return
	}

	if ev.Pointer == ports.PointerTouch {
		r.hover = hoverTouchSelected
	} else {
		r.hover = hoverHovering
	}
	r.highlight(el)
	r.showTooltip(cell, el)
	if r.onValueHover != nil {
		r.onValueHover(cell.Value)
	}
}

func (r *Renderer) handleCellLeave(ev ports.Event) {
	if r.destroyed {
		return
	}
	// Touch selections survive pointer-leave; only a tap outside a
	// cell dismisses them.
	if ev.Pointer == ports.PointerTouch {
		return
	}
	if r.hover != hoverHovering || ev.Target != r.hoveredEl {
		return
	}
	r.clearHover()
}

// handleSurfaceLeave is the fast-exit fallback on the whole chart
// surface: a non-touch pointer leaving the panel clears whatever
// state remains, even when individual cell leave events were missed.
func (r *Renderer) handleSurfaceLeave(ev ports.Event) {
	if r.destroyed {
		return
	}
	if ev.Pointer == ports.PointerTouch {
		return
	}
	if ev.Target != r.panel {
		return
	}
	r.clearHover()
}

// handlePointerDown dismisses a touch selection when the tap lands
// outside every cell element of this grid.
func (r *Renderer) handlePointerDown(ev ports.Event) {
	if r.destroyed || r.hover != hoverTouchSelected {
		return
	}
	for el := range r.cellsByEl {
		if el.Contains(ev.Target) {
			return
		}
	}
	r.clearHover()
}

// highlight applies the stroke to the cell and raises it above its
// siblings, clearing the previous highlight first.
func (r *Renderer) highlight(el ports.Element) {
	if r.hoveredEl == el {
		return
	}
	r.unhighlight()
	r.hoveredEl = el
	el.SetAttr("stroke", r.cfg.Theme.Highlight)
	el.SetAttr("stroke-width", fmt.Sprintf("%g", r.cfg.HighlightStroke))
	el.Raise()
}

func (r *Renderer) unhighlight() {
	if r.hoveredEl == nil {
		return
	}
	r.hoveredEl.RemoveAttr("stroke")
	r.hoveredEl.RemoveAttr("stroke-width")
	r.hoveredEl = nil
}

func (r *Renderer) showTooltip(cell *timegrid.Cell, el ports.Element) {
	month := timegrid.MonthNames[cell.Month-1]
	value := colorscale.FormatValue(cell.Value, r.data.MetricID)
	text := fmt.Sprintf("%s\n%s %d\n%s", r.data.EntityID, month, cell.Year, value)
	if cell.Source != "" {
		text += "\n" + cell.Source
	}
	r.tip.SetText(text)
	r.tip.RemoveAttr("hidden")
	r.positioner.ShowFor(el)
}

// clearHover returns to Idle from any state: drops the highlight,
// hides the tooltip, and notifies listeners that nothing is hovered.
func (r *Renderer) clearHover() {
	wasActive := r.hover != hoverIdle || r.hoveredEl != nil
	r.unhighlight()
	r.positioner.Hide()
	r.tip.SetAttr("hidden", "true")
	r.hover = hoverIdle
	if wasActive && r.onValueHover != nil {
		r.onValueHover(nil)
	}
}
