// Package tooltip positions an overlay element relative to a
// reference element with viewport collision handling, keeps the
// position fresh while ancestors scroll or the viewport resizes, and
// force-dismisses the overlay when the reference scrolls out of its
// own scroll container.
package tooltip

import (
	"github.com/user/heatgrid/pkg/ports"
)

// Placement is the preferred side of the reference element.
type Placement string

const (
	PlacementTop    Placement = "top"
	PlacementBottom Placement = "bottom"
)

// Config controls positioning behavior.
type Config struct {
	// Placement is the preferred side. Defaults to top.
	Placement Placement
	// Offset is the gap between reference and overlay.
	Offset float64
	// Padding is the minimum distance kept from the viewport edges.
	Padding float64
}

// DefaultConfig returns the standard positioning configuration.
func DefaultConfig() Config {
	return Config{Placement: PlacementTop, Offset: 6, Padding: 8}
}

// Positioner computes and continuously updates an overlay's position.
// The overlay element is owned by the caller; the positioner only
// moves it and reports forced dismissals.
type Positioner struct {
	surface   ports.Surface
	overlay   ports.Element
	cfg       Config
	ref       ports.Element
	cancels   []func()
	visible   bool
	onDismiss func()
}

// New creates a positioner for the given overlay element.
func New(surface ports.Surface, overlay ports.Element, cfg Config) *Positioner {
	if cfg.Placement == "" {
		cfg.Placement = PlacementTop
	}
	return &Positioner{surface: surface, overlay: overlay, cfg: cfg}
}

// OnDismiss registers a callback invoked when the overlay is
// force-dismissed because its reference scrolled out of view.
func (p *Positioner) OnDismiss(fn func()) {
	p.onDismiss = fn
}

// ShowFor anchors the overlay to a reference element, positions it,
// and subscribes to scroll events of the reference's ancestors and to
// viewport resize so the position tracks continuously.
func (p *Positioner) ShowFor(ref ports.Element) {
	p.release()
	p.ref = ref
	p.visible = true

	for cur := ref.Parent(); cur != nil; cur = cur.Parent() {
		el := cur
		p.cancels = append(p.cancels, el.On(ports.EventScroll, func(ports.Event) {
			p.Reposition()
		}))
	}
	p.cancels = append(p.cancels, p.surface.OnViewportResize(func(ports.Rect) {
		p.Reposition()
	}))

	p.Reposition()
}

// Visible reports whether the overlay is currently anchored.
func (p *Positioner) Visible() bool { return p.visible }

// Reposition recomputes the overlay position. It is a no-op when the
// overlay is hidden or the reference has been removed from the tree.
func (p *Positioner) Reposition() {
	if !p.visible || p.ref == nil {
		return
	}
	if !p.ref.Attached() || !p.overlay.Attached() {
		return
	}

	refBox := p.ref.BoundingBox()

	// The grid's horizontal scroller can carry the reference cell
	// fully out of its own bounds. That is not a viewport collision:
	// the overlay no longer refers to a visible cell and must go away.
	if sc := scrollAncestor(p.ref); sc != nil {
		if !refBox.Intersects(sc.BoundingBox()) {
			p.dismiss()
			return
		}
	}

	size := p.overlay.Box()
	viewport := p.surface.Viewport()
	pos := p.place(refBox, size, viewport)
	p.overlay.SetBox(ports.Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height})
}

// Hide releases subscriptions and marks the overlay hidden. Safe to
// call repeatedly.
func (p *Positioner) Hide() {
	p.release()
	p.ref = nil
	p.visible = false
}

// Destroy releases all subscriptions. The positioner must not be used
// afterwards.
func (p *Positioner) Destroy() {
	p.Hide()
}

// place runs the collision middleware: preferred side, flip to the
// opposite side when there is not enough room, then shift along the
// cross axis to stay inside the viewport.
func (p *Positioner) place(ref ports.Rect, size ports.Rect, viewport ports.Rect) ports.Rect {
	pad := p.cfg.Padding

	top := ref.Y - p.cfg.Offset - size.Height
	bottom := ref.Bottom() + p.cfg.Offset

	var y float64
	switch p.cfg.Placement {
	case PlacementBottom:
		y = bottom
		if y+size.Height > viewport.Height-pad && top >= pad {
			y = top
		}
	default:
		y = top
		if y < pad && bottom+size.Height <= viewport.Height-pad {
			y = bottom
		}
	}

	x := ref.X + ref.Width/2 - size.Width/2
	if x < pad {
		x = pad
	}
	if maxX := viewport.Width - size.Width - pad; x > maxX {
		x = maxX
	}

	return ports.Rect{X: x, Y: y}
}

func (p *Positioner) dismiss() {
	p.Hide()
	if p.onDismiss != nil {
		p.onDismiss()
	}
}

func (p *Positioner) release() {
	for _, cancel := range p.cancels {
		cancel()
	}
	p.cancels = nil
}

// scrollAncestor returns the nearest scrollable ancestor of el, nil
// when there is none.
func scrollAncestor(el ports.Element) ports.Element {
	for cur := el.Parent(); cur != nil; cur = cur.Parent() {
		if cur.ScrollWidth() > cur.ClientWidth() || isScrollContainer(cur) {
			return cur
		}
	}
	return nil
}

// isScrollContainer checks the marker attribute set by scroll owners.
func isScrollContainer(el ports.Element) bool {
	return el.Attr("scroll-container") == "true"
}
