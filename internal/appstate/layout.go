package appstate

import (
	"image"
	"math"

	"github.com/example/inkwell/internal/geometry"
)

const (
	tabHeight      = 28
	settingsHeight = 28
	bottomHeight   = 24
	canvasMargin   = 16
)

// frameDropThreshold is how many consecutive frames may be cancelled before
// one is allowed to finish.
const frameDropThreshold = 10

// layout splits the window into its bars and the canvas area.
type layout struct {
	tabs     image.Rectangle
	settings image.Rectangle
	canvas   image.Rectangle
	bottom   image.Rectangle
}

func newLayout(width, height int) layout {
	return layout{
		tabs:     image.Rect(0, 0, width, tabHeight),
		settings: image.Rect(0, tabHeight, width, tabHeight+settingsHeight),
		canvas:   image.Rect(0, tabHeight+settingsHeight, width, max(tabHeight+settingsHeight, height-bottomHeight)),
		bottom:   image.Rect(0, max(0, height-bottomHeight), width, height),
	}
}

// viewport places an image of the given size inside area, scaled to fit and
// centered. zoom is window pixels per image pixel.
type viewport struct {
	rect image.Rectangle
	zoom float64
}

func fitViewport(area image.Rectangle, w, h int) viewport {
	return fitInside(area.Inset(canvasMargin), w, h)
}

func fitInside(inner image.Rectangle, w, h int) viewport {
	if w <= 0 || h <= 0 || inner.Empty() {
		return viewport{rect: image.Rectangle{Min: inner.Min}, zoom: 1}
	}
	zoom := math.Min(float64(inner.Dx())/float64(w), float64(inner.Dy())/float64(h))
	dw := int(math.Round(float64(w) * zoom))
	dh := int(math.Round(float64(h) * zoom))
	x := inner.Min.X + (inner.Dx()-dw)/2
	y := inner.Min.Y + (inner.Dy()-dh)/2
	return viewport{rect: image.Rect(x, y, x+dw, y+dh), zoom: zoom}
}

// toImage maps a window point to image pixels.
func (v viewport) toImage(x, y float32) geometry.Point {
	return geometry.Pt(
		(float64(x)-float64(v.rect.Min.X))/v.zoom,
		(float64(y)-float64(v.rect.Min.Y))/v.zoom,
	)
}

// ratio is image pixels per window pixel, the scale overlays are drawn with.
func (v viewport) ratio() float64 {
	if v.zoom <= 0 {
		return 1
	}
	return 1 / v.zoom
}
