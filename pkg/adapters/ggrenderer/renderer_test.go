package ggrenderer

import (
	"image/color"
	"testing"

	"github.com/user/heatgrid/pkg/ports"
)

func TestMeasureText(t *testing.T) {
	c := New().CreateCanvas(100, 40, color.White)
	style := ports.TextStyle{FontSize: 12, Color: color.Black}

	w1, h := c.MeasureText("Jan", style)
	if w1 <= 0 {
		t.Errorf("expected a positive width, got %g", w1)
	}
	if h != 12 {
		t.Errorf("height = %g, expected the font size", h)
	}

	w2, _ := c.MeasureText("January 2000", style)
	if w2 <= w1 {
		t.Errorf("longer text should measure wider: %g vs %g", w2, w1)
	}
}

func TestCanvasDrawAndEncode(t *testing.T) {
	r := New()
	c := r.CreateCanvas(20, 10, color.White)
	c.DrawRect(0, 0, 10, 10, color.RGBA{R: 255, A: 255})

	img := c.ToImage()
	if img.Bounds().Dx() != 20 || img.Bounds().Dy() != 10 {
		t.Fatalf("unexpected canvas size: %v", img.Bounds())
	}

	data, err := r.EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if len(data) == 0 || data[0] != 0x89 {
		t.Error("expected PNG bytes")
	}
}

func TestResizeImage(t *testing.T) {
	r := New()
	img := r.CreateCanvas(40, 20, color.White).ToImage()

	small := r.ResizeImage(img, 10, 5)
	if small.Bounds().Dx() != 10 || small.Bounds().Dy() != 5 {
		t.Errorf("unexpected resized bounds: %v", small.Bounds())
	}
}
