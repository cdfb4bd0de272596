package appstate

import (
	"image"
	"math"
	"testing"
)

func TestNewLayout(t *testing.T) {
	l := newLayout(800, 600)
	if l.tabs.Max.Y != l.settings.Min.Y || l.settings.Max.Y != l.canvas.Min.Y || l.canvas.Max.Y != l.bottom.Min.Y {
		t.Fatalf("bars are not stacked: %+v", l)
	}
	if l.bottom.Max.Y != 600 {
		t.Fatalf("unexpected bottom %v", l.bottom)
	}
}

func TestFitViewport(t *testing.T) {
	area := image.Rect(0, 0, 432, 232)
	v := fitViewport(area, 200, 100)
	if v.zoom != 2 {
		t.Fatalf("unexpected zoom %v, want 2", v.zoom)
	}
	if v.rect != image.Rect(16, 16, 416, 216) {
		t.Fatalf("unexpected rect %v", v.rect)
	}
	if math.Abs(v.ratio()-0.5) > 1e-9 {
		t.Fatalf("unexpected ratio %v", v.ratio())
	}
	p := v.toImage(216, 116)
	if math.Abs(p.X-100) > 1e-9 || math.Abs(p.Y-50) > 1e-9 {
		t.Fatalf("unexpected image point %v, want (100,50)", p)
	}
}

func TestFitViewportCenters(t *testing.T) {
	v := fitViewport(image.Rect(0, 0, 232, 432), 100, 100)
	if v.rect.Dx() != 200 || v.rect.Dy() != 200 {
		t.Fatalf("unexpected size %v", v.rect)
	}
	if v.rect.Min.Y != 116 {
		t.Fatalf("not centered vertically: %v", v.rect)
	}
}

func TestFitViewportEmpty(t *testing.T) {
	v := fitViewport(image.Rect(0, 0, 10, 10), 100, 100)
	if v.zoom != 1 {
		t.Fatalf("unexpected zoom %v", v.zoom)
	}
	if v.ratio() != 1 {
		t.Fatalf("unexpected ratio %v", v.ratio())
	}
}
