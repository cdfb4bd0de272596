package sticker

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCachePutGet(t *testing.T) {
	c := NewCache()
	if _, ok := c.Sticker("star"); ok {
		t.Fatalf("empty cache returned a bitmap")
	}
	img := solid(4, 4, color.White)
	c.Put("star", img)
	got, ok := c.Sticker("star")
	if !ok || got != image.Image(img) {
		t.Fatalf("unexpected lookup result %v %v", got, ok)
	}
	c.Put("moon", img)
	if keys := c.Keys(); len(keys) != 2 || keys[0] != "moon" || keys[1] != "star" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestKeyDependsOnPixels(t *testing.T) {
	a := Key(solid(3, 3, color.White))
	b := Key(solid(3, 3, color.White))
	c := Key(solid(3, 3, color.Black))
	if a != b {
		t.Fatalf("equal images gave different keys %q %q", a, b)
	}
	if a == c {
		t.Fatalf("different images share key %q", a)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, solid(1024, 256, color.NRGBA{255, 0, 0, 255})); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	c := NewCache()
	key, img, err := c.LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != MaxSide || b.Dy() != MaxSide/4 {
		t.Fatalf("unexpected size %v", b)
	}
	again, _, err := c.LoadFile(path)
	if err != nil || again != key || c.Len() != 1 {
		t.Fatalf("second load did not reuse the entry: %q %v len=%d", again, err, c.Len())
	}
	if _, _, err := c.LoadFile(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
