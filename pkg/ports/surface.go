package ports

// Rect is an axis-aligned box. Coordinates are surface units.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point lies inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Intersects reports whether two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// EventType identifies a surface event.
type EventType string

const (
	EventPointerEnter EventType = "pointerenter"
	EventPointerLeave EventType = "pointerleave"
	EventPointerDown  EventType = "pointerdown"
	EventScroll       EventType = "scroll"
)

// PointerType identifies the device that originated a pointer event.
type PointerType string

const (
	PointerMouse PointerType = "mouse"
	PointerTouch PointerType = "touch"
	PointerPen   PointerType = "pen"
)

// Event is delivered to listeners registered with Element.On.
type Event struct {
	Type    EventType
	Pointer PointerType
	Target  Element
	X       float64
	Y       float64
}

// Element is one node in a retained element tree. Implementations own
// geometry, attributes, and event listener registration; all mutation
// is synchronous and single-threaded.
type Element interface {
	// Kind returns the element kind it was created with.
	Kind() string

	// SetAttr sets a string attribute such as a fill color.
	SetAttr(key, value string)

	// Attr returns an attribute value, empty when unset.
	Attr(key string) string

	// RemoveAttr deletes an attribute.
	RemoveAttr(key string)

	// SetText sets the element's text content.
	SetText(text string)

	// Text returns the element's text content.
	Text() string

	// AppendChild attaches a child as the topmost sibling.
	AppendChild(child Element)

	// Remove detaches the element and its subtree from its parent.
	Remove()

	// Parent returns the parent element, nil when detached or root.
	Parent() Element

	// Children returns the current children in stacking order.
	Children() []Element

	// Attached reports whether the element is reachable from the root.
	Attached() bool

	// Raise moves the element above its siblings.
	Raise()

	// Contains reports whether other is the element itself or one of
	// its descendants.
	Contains(other Element) bool

	// SetBox positions the element relative to its parent.
	SetBox(box Rect)

	// Box returns the element's box relative to its parent.
	Box() Rect

	// BoundingBox returns the element's box in viewport coordinates,
	// accounting for ancestor scroll offsets.
	BoundingBox() Rect

	// SetScrollable marks the element as a horizontal scroll container.
	SetScrollable(scrollable bool)

	// ScrollTo sets the horizontal scroll offset, clamped to the
	// scrollable range, and fires a scroll event on the element.
	ScrollTo(left float64)

	// ScrollLeft returns the current horizontal scroll offset.
	ScrollLeft() float64

	// ScrollWidth returns the natural content width.
	ScrollWidth() float64

	// ClientWidth returns the visible width of the element.
	ClientWidth() float64

	// On registers a listener and returns its cancel function. Cancel
	// functions are idempotent.
	On(event EventType, fn func(Event)) func()
}

// Surface is the platform adapter for a rendering host: it owns the
// element tree, the viewport, and resize notification. A headless
// implementation backs all tests so the pure algorithm packages never
// need a real rendering surface.
type Surface interface {
	// Root returns the root element covering the viewport.
	Root() Element

	// CreateElement creates a detached element of the given kind.
	CreateElement(kind string) Element

	// Viewport returns the current viewport rect.
	Viewport() Rect

	// OnViewportResize registers a resize listener and returns its
	// cancel function.
	OnViewportResize(fn func(Rect)) func()
}
