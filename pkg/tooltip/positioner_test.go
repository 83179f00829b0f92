package tooltip

import (
	"testing"

	"github.com/user/heatgrid/pkg/adapters/memsurface"
	"github.com/user/heatgrid/pkg/ports"
)

// fixture builds a surface with a panel, a reference cell, and an
// overlay of 100x40 on a separate layer.
func fixture(t *testing.T, refBox ports.Rect) (*memsurface.Surface, ports.Element, ports.Element) {
	t.Helper()
	s := memsurface.New(400, 300)

	panel := s.CreateElement("panel")
	panel.SetBox(ports.Rect{Width: 400, Height: 300})
	s.Root().AppendChild(panel)

	ref := s.CreateElement("cell")
	ref.SetBox(refBox)
	panel.AppendChild(ref)

	layer := s.CreateElement("tooltip-layer")
	s.Root().AppendChild(layer)
	overlay := s.CreateElement("tooltip")
	overlay.SetBox(ports.Rect{Width: 100, Height: 40})
	layer.AppendChild(overlay)

	return s, ref, overlay
}

func TestShowFor_PreferredTopPlacement(t *testing.T) {
	s, ref, overlay := fixture(t, ports.Rect{X: 150, Y: 100, Width: 20, Height: 10})
	p := New(s, overlay, DefaultConfig())

	p.ShowFor(ref)

	box := overlay.Box()
	// Above the reference: 100 - 6 offset - 40 height.
	if box.Y != 54 {
		t.Errorf("expected Y 54, got %g", box.Y)
	}
	// Horizontally centered: 150 + 10 - 50.
	if box.X != 110 {
		t.Errorf("expected X 110, got %g", box.X)
	}
	if !p.Visible() {
		t.Error("expected visible after ShowFor")
	}
}

func TestShowFor_FlipsToBottomWhenNoRoomAbove(t *testing.T) {
	s, ref, overlay := fixture(t, ports.Rect{X: 150, Y: 10, Width: 20, Height: 10})
	p := New(s, overlay, DefaultConfig())

	p.ShowFor(ref)

	// Top would be 10 - 46 = -36, below the 8px padding, so the overlay
	// flips under the reference: 20 + 6.
	if box := overlay.Box(); box.Y != 26 {
		t.Errorf("expected flipped Y 26, got %g", box.Y)
	}
}

func TestShowFor_ShiftsInsideViewport(t *testing.T) {
	cases := []struct {
		name  string
		refX  float64
		wantX float64
	}{
		// Centering would give -38, shifted to the left padding.
		{"left edge", 2, 8},
		// Centering would give 350, clamped to 400 - 100 - 8.
		{"right edge", 390, 292},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, ref, overlay := fixture(t, ports.Rect{X: tc.refX, Y: 100, Width: 20, Height: 10})
			p := New(s, overlay, DefaultConfig())

			p.ShowFor(ref)
			if box := overlay.Box(); box.X != tc.wantX {
				t.Errorf("expected X %g, got %g", tc.wantX, box.X)
			}
		})
	}
}

func TestPositioner_TracksAncestorScroll(t *testing.T) {
	s := memsurface.New(400, 300)

	scroller := s.CreateElement("scroller")
	scroller.SetBox(ports.Rect{Width: 200, Height: 300})
	scroller.SetScrollable(true)
	scroller.SetAttr("scroll-container", "true")
	s.Root().AppendChild(scroller)

	content := s.CreateElement("content")
	content.SetBox(ports.Rect{Width: 600, Height: 300})
	scroller.AppendChild(content)

	ref := s.CreateElement("cell")
	ref.SetBox(ports.Rect{X: 100, Y: 100, Width: 20, Height: 10})
	content.AppendChild(ref)

	overlay := s.CreateElement("tooltip")
	overlay.SetBox(ports.Rect{Width: 100, Height: 40})
	s.Root().AppendChild(overlay)

	p := New(s, overlay, DefaultConfig())
	p.ShowFor(ref)

	before := overlay.Box().X
	scroller.ScrollTo(40)

	after := overlay.Box().X
	if after != before-40 {
		t.Errorf("expected overlay to follow the scroll: %g -> %g", before, after)
	}
	if !p.Visible() {
		t.Error("still-visible reference must not dismiss")
	}
}

func TestPositioner_ForceDismissWhenReferenceScrollsOut(t *testing.T) {
	s := memsurface.New(400, 300)

	scroller := s.CreateElement("scroller")
	scroller.SetBox(ports.Rect{Width: 100, Height: 300})
	scroller.SetScrollable(true)
	scroller.SetAttr("scroll-container", "true")
	s.Root().AppendChild(scroller)

	content := s.CreateElement("content")
	content.SetBox(ports.Rect{Width: 300, Height: 300})
	scroller.AppendChild(content)

	ref := s.CreateElement("cell")
	ref.SetBox(ports.Rect{X: 250, Y: 100, Width: 20, Height: 10})
	content.AppendChild(ref)

	overlay := s.CreateElement("tooltip")
	overlay.SetBox(ports.Rect{Width: 100, Height: 40})
	s.Root().AppendChild(overlay)

	// Bring the reference into view first.
	scroller.ScrollTo(200)

	p := New(s, overlay, DefaultConfig())
	dismissed := 0
	p.OnDismiss(func() { dismissed++ })
	p.ShowFor(ref)

	if !p.Visible() {
		t.Fatal("reference is in view, overlay should show")
	}

	// Scroll the reference fully out of the scroller.
	scroller.ScrollTo(0)

	if p.Visible() {
		t.Error("expected force dismissal when the reference left the scroller")
	}
	if dismissed != 1 {
		t.Errorf("expected one dismiss callback, got %d", dismissed)
	}

	// The subscriptions are gone; further scrolling must not fire again.
	scroller.ScrollTo(200)
	if dismissed != 1 {
		t.Errorf("dismissed again after release: %d", dismissed)
	}
}

func TestReposition_NoopWhenReferenceRemoved(t *testing.T) {
	s, ref, overlay := fixture(t, ports.Rect{X: 150, Y: 100, Width: 20, Height: 10})
	p := New(s, overlay, DefaultConfig())
	p.ShowFor(ref)

	before := overlay.Box()
	ref.Remove()
	p.Reposition()

	if overlay.Box() != before {
		t.Error("repositioning against a removed reference must not move the overlay")
	}
}

func TestPositioner_RepositionsOnViewportResize(t *testing.T) {
	s, ref, overlay := fixture(t, ports.Rect{X: 330, Y: 100, Width: 20, Height: 10})
	p := New(s, overlay, DefaultConfig())
	p.ShowFor(ref)

	// 330 + 10 - 50 = 290, inside the 400-wide viewport.
	if box := overlay.Box(); box.X != 290 {
		t.Fatalf("expected X 290, got %g", box.X)
	}

	// Shrinking the viewport forces a shift: 360 - 100 - 8.
	s.SetViewport(360, 300)
	if box := overlay.Box(); box.X != 252 {
		t.Errorf("expected X 252 after resize, got %g", box.X)
	}
}

func TestHide_ReleasesSubscriptions(t *testing.T) {
	s, ref, overlay := fixture(t, ports.Rect{X: 150, Y: 100, Width: 20, Height: 10})
	p := New(s, overlay, DefaultConfig())

	base := s.ListenerCount()
	p.ShowFor(ref)
	if s.ListenerCount() <= base {
		t.Error("ShowFor should subscribe to ancestor scroll events")
	}

	p.Hide()
	if got := s.ListenerCount(); got != base {
		t.Errorf("expected %d listeners after Hide, got %d", base, got)
	}
	if p.Visible() {
		t.Error("hidden positioner reports visible")
	}
	p.Hide() // safe to repeat
}
