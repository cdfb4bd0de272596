package render

import (
	"image"
	"image/color"
	"testing"
)

func TestGlowKeepsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(5, 5, color.RGBA{R: 255, A: 255})

	out := Glow(img, GlowOptions{Radius: 2, Color: color.RGBA{B: 255, A: 255}, Opacity: 1})
	if out == nil {
		t.Fatal("expected output image")
	}
	if !out.Bounds().Eq(img.Bounds()) {
		t.Fatalf("unexpected bounds %v, want %v", out.Bounds(), img.Bounds())
	}
	if out.RGBAAt(5, 5).A == 0 {
		t.Fatalf("expected glow alpha at the source pixel")
	}
	if got := out.RGBAAt(5, 5); got.R != 0 || got.B == 0 {
		t.Fatalf("glow not tinted: %+v", got)
	}
}

func TestGlowNothingWhenOpacityZero(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	out := Glow(img, GlowOptions{Radius: 3, Color: color.RGBA{G: 255, A: 255}, Opacity: 0})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := out.RGBAAt(x, y); got.A != 0 {
				t.Fatalf("pixel (%d,%d): got %+v want transparent", x, y, got)
			}
		}
	}
}

func TestGlowSpreadsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 12, 12))
	img.Set(6, 6, color.RGBA{A: 255})

	out := Glow(img, GlowOptions{Radius: 2, Color: color.RGBA{R: 255, A: 255}, Opacity: 1})
	base := out.RGBAAt(6, 6).A
	if base == 0 {
		t.Fatal("expected alpha at the source location")
	}
	if n := out.RGBAAt(8, 6).A; n == 0 {
		t.Fatalf("expected blurred alpha to reach neighbour, base alpha=%d", base)
	}
	if far := out.RGBAAt(0, 0).A; far != 0 {
		t.Fatalf("unexpected alpha %d far from the source", far)
	}
}
