// Package memsurface provides an in-memory implementation of
// ports.Surface with real geometry, horizontal scrolling, and
// synthetic pointer event dispatch. It backs headless tests and any
// host that drives the grid without a native rendering surface.
package memsurface

import (
	"github.com/user/heatgrid/pkg/ports"
)

// Surface implements ports.Surface with a mutable in-memory tree.
type Surface struct {
	root            *Element
	viewport        ports.Rect
	resizeListeners map[int]func(ports.Rect)
	nextListenerID  int
}

// New creates a surface with the given viewport size. The root
// element covers the viewport.
func New(width, height float64) *Surface {
	s := &Surface{
		viewport:        ports.Rect{Width: width, Height: height},
		resizeListeners: map[int]func(ports.Rect){},
	}
	s.root = &Element{surface: s, kind: "root", box: s.viewport, attached: true}
	return s
}

// Root returns the root element.
func (s *Surface) Root() ports.Element { return s.root }

// CreateElement creates a detached element of the given kind.
func (s *Surface) CreateElement(kind string) ports.Element {
	return &Element{surface: s, kind: kind}
}

// Viewport returns the current viewport rect.
func (s *Surface) Viewport() ports.Rect { return s.viewport }

// OnViewportResize registers a resize listener.
func (s *Surface) OnViewportResize(fn func(ports.Rect)) func() {
	s.nextListenerID++
	id := s.nextListenerID
	s.resizeListeners[id] = fn
	return func() { delete(s.resizeListeners, id) }
}

// SetViewport resizes the viewport and notifies resize listeners.
// Test-facing; hosts call it when the window changes size.
func (s *Surface) SetViewport(width, height float64) {
	s.viewport = ports.Rect{Width: width, Height: height}
	s.root.box = s.viewport
	for _, fn := range s.resizeListeners {
		fn(s.viewport)
	}
}

// DispatchPointer hit-tests the point against the tree, fires the
// event on the deepest element containing it, and bubbles through its
// ancestors. Target stays the hit element during bubbling.
func (s *Surface) DispatchPointer(typ ports.EventType, pointer ports.PointerType, x, y float64) {
	target := hitTest(s.root, x, y, ports.Rect{X: 0, Y: 0, Width: s.viewport.Width, Height: s.viewport.Height})
	if target == nil {
		target = s.root
	}
	ev := ports.Event{Type: typ, Pointer: pointer, Target: target, X: x, Y: y}
	for el := target; el != nil; el = el.parent {
		el.fire(ev)
	}
}

// DispatchPointerOn fires a pointer event directly on an element and
// bubbles through its ancestors, bypassing hit testing. Useful for
// driving enter/leave sequences in tests.
func (s *Surface) DispatchPointerOn(el ports.Element, typ ports.EventType, pointer ports.PointerType) {
	target := el.(*Element)
	ev := ports.Event{Type: typ, Pointer: pointer, Target: target}
	for cur := target; cur != nil; cur = cur.parent {
		cur.fire(ev)
	}
}

// ListenerCount returns the number of event listeners registered in
// the whole tree, excluding viewport resize listeners.
func (s *Surface) ListenerCount() int {
	return countListeners(s.root)
}

func countListeners(el *Element) int {
	n := 0
	for _, m := range el.handlers {
		n += len(m)
	}
	for _, c := range el.children {
		n += countListeners(c)
	}
	return n
}

// hitTest returns the deepest element whose on-screen box contains the
// point. Later siblings are stacked on top of earlier ones. clip is
// the visible region inherited from scrollable ancestors.
func hitTest(el *Element, x, y float64, clip ports.Rect) *Element {
	box := el.BoundingBox()
	childClip := clip
	if el.scrollable {
		childClip = intersect(clip, box)
	}
	for i := len(el.children) - 1; i >= 0; i-- {
		if hit := hitTest(el.children[i], x, y, childClip); hit != nil {
			return hit
		}
	}
	if box.Contains(x, y) && clip.Contains(x, y) {
		return el
	}
	return nil
}

func intersect(a, b ports.Rect) ports.Rect {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.Right(), b.Right())
	y2 := min(a.Bottom(), b.Bottom())
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return ports.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
