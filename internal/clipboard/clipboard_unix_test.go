//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"errors"
	"image"
	"sync"
	"testing"
)

func resetInit(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	initErr = nil
	active = nil
	t.Cleanup(func() {
		initOnce = sync.Once{}
		initErr = nil
		active = nil
	})
}

func TestEnsureInitWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	resetInit(t)

	if err := WriteText("hello world"); !errors.Is(err, errNoDisplay) {
		t.Fatalf("unexpected error %v, want errNoDisplay", err)
	}
	if _, err := ReadImage(); !errors.Is(err, errNoDisplay) {
		t.Fatalf("unexpected error %v, want errNoDisplay", err)
	}
}

type memBackend map[format][]byte

func (m memBackend) write(f format, data []byte) error {
	m[f] = append([]byte(nil), data...)
	return nil
}

func (m memBackend) read(f format) ([]byte, error) { return m[f], nil }

func TestImageRoundTripThroughBackend(t *testing.T) {
	resetInit(t)
	mem := memBackend{}
	initOnce.Do(func() { active = mem })

	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Pix[0] = 200
	src.Pix[3] = 255
	if err := WriteImage(src); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	if len(mem[formatImage]) == 0 {
		t.Fatalf("expected PNG data on the clipboard")
	}
	got, err := ReadImage()
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("unexpected bounds %v, want %v", got.Bounds(), src.Bounds())
	}
	if r, _, _, a := got.At(0, 0).RGBA(); r>>8 != 200 || a>>8 != 255 {
		t.Fatalf("unexpected pixel r=%d a=%d", r>>8, a>>8)
	}
	if _, err := ReadText(); err == nil {
		t.Fatalf("expected error for empty text")
	}
}
