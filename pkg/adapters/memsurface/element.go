package memsurface

import (
	"github.com/user/heatgrid/pkg/ports"
)

// Element implements ports.Element.
type Element struct {
	surface    *Surface
	kind       string
	parent     *Element
	children   []*Element
	attrs      map[string]string
	text       string
	box        ports.Rect
	scrollable bool
	scrollLeft float64
	attached   bool

	handlers map[ports.EventType]map[int]func(ports.Event)
	nextID   int
}

// Kind returns the element kind.
func (e *Element) Kind() string { return e.kind }

// SetAttr sets an attribute.
func (e *Element) SetAttr(key, value string) {
	if e.attrs == nil {
		e.attrs = map[string]string{}
	}
	e.attrs[key] = value
}

// Attr returns an attribute value.
func (e *Element) Attr(key string) string { return e.attrs[key] }

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(key string) { delete(e.attrs, key) }

// SetText sets the text content.
func (e *Element) SetText(text string) { e.text = text }

// Text returns the text content.
func (e *Element) Text() string { return e.text }

// AppendChild attaches a child as the topmost sibling.
func (e *Element) AppendChild(child ports.Element) {
	c := child.(*Element)
	if c.parent != nil {
		c.Remove()
	}
	c.parent = e
	e.children = append(e.children, c)
	setAttached(c, e.attached)
}

// Remove detaches the element and its subtree.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	siblings := e.parent.children
	for i, c := range siblings {
		if c == e {
			e.parent.children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	e.parent = nil
	setAttached(e, false)
}

// Parent returns the parent element or nil.
func (e *Element) Parent() ports.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Children returns the children in stacking order.
func (e *Element) Children() []ports.Element {
	out := make([]ports.Element, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// Attached reports whether the element is reachable from the root.
func (e *Element) Attached() bool { return e.attached }

// Raise moves the element above its siblings.
func (e *Element) Raise() {
	if e.parent == nil {
		return
	}
	siblings := e.parent.children
	for i, c := range siblings {
		if c == e {
			copy(siblings[i:], siblings[i+1:])
			siblings[len(siblings)-1] = e
			return
		}
	}
}

// Contains reports whether other is the element or a descendant.
func (e *Element) Contains(other ports.Element) bool {
	cur, _ := other.(*Element)
	for ; cur != nil; cur = cur.parent {
		if cur == e {
			return true
		}
	}
	return false
}

// SetBox positions the element relative to its parent.
func (e *Element) SetBox(box ports.Rect) { e.box = box }

// Box returns the element's box relative to its parent.
func (e *Element) Box() ports.Rect { return e.box }

// BoundingBox returns the element's box in viewport coordinates.
// Each scrollable ancestor shifts descendants left by its scroll
// offset.
func (e *Element) BoundingBox() ports.Rect {
	box := e.box
	for cur := e.parent; cur != nil; cur = cur.parent {
		box.X += cur.box.X
		box.Y += cur.box.Y
		if cur.scrollable {
			box.X -= cur.scrollLeft
		}
	}
	return box
}

// SetScrollable marks the element as a horizontal scroll container.
func (e *Element) SetScrollable(scrollable bool) {
	e.scrollable = scrollable
	if !scrollable {
		e.scrollLeft = 0
	}
}

// ScrollTo sets the horizontal scroll offset, clamped to the
// scrollable range, and fires a scroll event.
func (e *Element) ScrollTo(left float64) {
	maxLeft := e.ScrollWidth() - e.ClientWidth()
	if maxLeft < 0 {
		maxLeft = 0
	}
	if left < 0 {
		left = 0
	}
	if left > maxLeft {
		left = maxLeft
	}
	e.scrollLeft = left
	e.fire(ports.Event{Type: ports.EventScroll, Target: e})
}

// ScrollLeft returns the current horizontal scroll offset.
func (e *Element) ScrollLeft() float64 { return e.scrollLeft }

// ScrollWidth returns the natural content width: the rightmost child
// extent, or the element's own width when larger.
func (e *Element) ScrollWidth() float64 {
	w := e.box.Width
	for _, c := range e.children {
		if right := c.box.X + c.box.Width; right > w {
			w = right
		}
	}
	return w
}

// ClientWidth returns the visible width.
func (e *Element) ClientWidth() float64 { return e.box.Width }

// On registers an event listener and returns its cancel function.
func (e *Element) On(event ports.EventType, fn func(ports.Event)) func() {
	if e.handlers == nil {
		e.handlers = map[ports.EventType]map[int]func(ports.Event){}
	}
	if e.handlers[event] == nil {
		e.handlers[event] = map[int]func(ports.Event){}
	}
	e.nextID++
	id := e.nextID
	e.handlers[event][id] = fn
	return func() { delete(e.handlers[event], id) }
}

func (e *Element) fire(ev ports.Event) {
	for _, fn := range e.handlers[ev.Type] {
		fn(ev)
	}
}

func setAttached(e *Element, attached bool) {
	e.attached = attached
	for _, c := range e.children {
		setAttached(c, attached)
	}
}
