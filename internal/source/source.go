// Package source loads the picture an editing session starts from: an image
// file, the clipboard or a screenshot.
package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"path/filepath"
	"strings"

	// Decoders beyond the ones imaging registers.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"

	"github.com/example/inkwell/internal/clipboard"
)

// ErrUnsupported reports that screen capture is unavailable on this platform.
var ErrUnsupported = errors.New("source: screen capture unsupported")

// ScreenOptions tunes a screenshot.
type ScreenOptions struct {
	// Display selects a monitor by index or name. Empty means every monitor.
	Display string
	// Interactive lets the desktop ask the user what to capture.
	Interactive   bool
	IncludeCursor bool
}

// MonitorInfo describes one connected output.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

var (
	portalScreenshotFn = portalScreenshot
	rootScreenshotFn   = rootScreenshot
	listMonitorsFn     = listMonitors
)

// Open reads an image file, applying its EXIF orientation.
func Open(path string) (*image.RGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	return toRGBA(img), nil
}

// Decode reads an image from r.
func Decode(r io.Reader) (*image.RGBA, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return toRGBA(img), nil
}

// Clipboard reads the image currently on the clipboard.
func Clipboard() (*image.RGBA, error) {
	img, err := clipboard.ReadImage()
	if err != nil {
		return nil, fmt.Errorf("clipboard image: %w", err)
	}
	return toRGBA(img), nil
}

// Screen takes a screenshot through the desktop portal, falling back to a
// direct X11 grab when the portal is unavailable and the session is not
// Wayland. Interactive captures never fall back.
func Screen(ctx context.Context, opts ScreenOptions) (*image.RGBA, error) {
	img, err := portalScreenshotFn(ctx, opts)
	if err != nil {
		if opts.Interactive || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		if runningOnWayland() {
			return nil, err
		}
		var ferr error
		img, ferr = rootScreenshotFn()
		if ferr != nil {
			return nil, fmt.Errorf("screenshot: %v; x11 fallback: %w", err, ferr)
		}
	}
	if opts.Display == "" || opts.Interactive {
		return img, nil
	}
	monitors, err := listMonitorsFn()
	if err != nil {
		return nil, fmt.Errorf("screenshot display %q: %w", opts.Display, err)
	}
	mon, err := FindMonitor(monitors, opts.Display)
	if err != nil {
		return nil, err
	}
	return cropTo(img, mon.Rect)
}

// Monitors lists the connected outputs.
func Monitors() ([]MonitorInfo, error) {
	return listMonitorsFn()
}

// FindMonitor picks a monitor by index, by name, or "primary".
func FindMonitor(monitors []MonitorInfo, selector string) (MonitorInfo, error) {
	sel := strings.TrimSpace(selector)
	if len(monitors) == 0 {
		return MonitorInfo{}, fmt.Errorf("no monitors found")
	}
	if sel == "" || strings.EqualFold(sel, "primary") {
		for _, m := range monitors {
			if m.Primary {
				return m, nil
			}
		}
		return monitors[0], nil
	}
	var idx int
	if _, err := fmt.Sscanf(sel, "%d", &idx); err == nil && fmt.Sprint(idx) == sel {
		for _, m := range monitors {
			if m.Index == idx {
				return m, nil
			}
		}
		return MonitorInfo{}, fmt.Errorf("monitor %d not found", idx)
	}
	for _, m := range monitors {
		if strings.EqualFold(m.Name, sel) {
			return m, nil
		}
	}
	return MonitorInfo{}, fmt.Errorf("monitor %q not found", sel)
}

func cropTo(img *image.RGBA, r image.Rectangle) (*image.RGBA, error) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return nil, fmt.Errorf("monitor outside the captured screen")
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
	return out, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
