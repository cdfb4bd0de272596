package geometry

import "math"

// MinCropSize is the smallest width or height a crop rectangle may shrink to.
const MinCropSize = 50

// FreeInset is the margin left around a free-form crop when it is reset.
const FreeInset = 30

// Rect is an axis-aligned rectangle in source image pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Size is the extent of the area a crop rectangle must stay inside.
type Size struct {
	Width  float64
	Height float64
}

// Corner identifies a crop handle.
type Corner int

const (
	NW Corner = iota
	NE
	SW
	SE
)

func (c Corner) String() string {
	switch c {
	case NW:
		return "nw"
	case NE:
		return "ne"
	case SW:
		return "sw"
	case SE:
		return "se"
	}
	return "unknown"
}

// Resize dispatches to the resize function for corner.
func Resize(corner Corner, dx, dy float64, start Rect, bounds Size, ratio float64) Rect {
	switch corner {
	case NW:
		return ResizeNW(dx, dy, start, bounds, ratio)
	case NE:
		return ResizeNE(dx, dy, start, bounds, ratio)
	case SW:
		return ResizeSW(dx, dy, start, bounds, ratio)
	default:
		return ResizeSE(dx, dy, start, bounds, ratio)
	}
}

// minHeight is the smallest height that keeps both sides at or above the
// minimum for a locked ratio.
func minHeight(ratio float64) float64 {
	if ratio <= 0 {
		return MinCropSize
	}
	return math.Max(MinCropSize, MinCropSize/ratio)
}

// ResizeNW drags the top-left corner by (dx, dy), keeping the bottom-right
// corner anchored. A ratio of zero leaves the aspect free.
func ResizeNW(dx, dy float64, start Rect, bounds Size, ratio float64) Rect {
	lastX, lastY := start.Right(), start.Bottom()

	w := math.Max(MinCropSize, start.Width-dx)
	x := lastX - w
	if x < 0 {
		w, x = lastX, 0
	}

	var h, y float64
	if ratio <= 0 {
		h = math.Max(MinCropSize, start.Height-dy)
		y = lastY - h
		if y < 0 {
			h, y = lastY, 0
		}
		return Rect{x, y, w, h}
	}

	h = w / ratio
	if mh := minHeight(ratio); h < mh {
		h = mh
		w = h * ratio
		x = lastX - w
	}
	y = lastY - h
	if y < 0 {
		h, y = lastY, 0
		w = h * ratio
		x = lastX - w
	}
	if x < 0 {
		w, x = lastX, 0
		h = w / ratio
		y = lastY - h
	}
	return Rect{x, y, w, h}
}

// ResizeNE drags the top-right corner, keeping the bottom-left corner anchored.
func ResizeNE(dx, dy float64, start Rect, bounds Size, ratio float64) Rect {
	lastY := start.Bottom()

	w := math.Max(MinCropSize, start.Width+dx)
	if start.Left+w > bounds.Width {
		w = bounds.Width - start.Left
	}

	var h, y float64
	if ratio <= 0 {
		h = math.Max(MinCropSize, start.Height-dy)
		y = lastY - h
		if y < 0 {
			h, y = lastY, 0
		}
		return Rect{start.Left, y, w, h}
	}

	h = w / ratio
	if mh := minHeight(ratio); h < mh {
		h = mh
		w = h * ratio
	}
	y = lastY - h
	if y < 0 {
		h, y = lastY, 0
		w = h * ratio
	}
	if start.Left+w > bounds.Width {
		w = bounds.Width - start.Left
		h = w / ratio
		y = lastY - h
	}
	return Rect{start.Left, y, w, h}
}

// ResizeSW drags the bottom-left corner, keeping the top-right corner anchored.
func ResizeSW(dx, dy float64, start Rect, bounds Size, ratio float64) Rect {
	lastX := start.Right()

	w := math.Max(MinCropSize, start.Width-dx)
	x := lastX - w
	if x < 0 {
		w, x = lastX, 0
	}

	var h float64
	if ratio <= 0 {
		h = math.Max(MinCropSize, start.Height+dy)
		if start.Top+h > bounds.Height {
			h = bounds.Height - start.Top
		}
		return Rect{x, start.Top, w, h}
	}

	h = w / ratio
	if start.Top+h > bounds.Height {
		h = bounds.Height - start.Top
		w = h * ratio
		x = lastX - w
	}
	if mh := minHeight(ratio); h < mh {
		h = mh
		w = h * ratio
		x = lastX - w
	}
	return Rect{x, start.Top, w, h}
}

// ResizeSE drags the bottom-right corner, keeping the top-left corner anchored.
func ResizeSE(dx, dy float64, start Rect, bounds Size, ratio float64) Rect {
	w := math.Max(MinCropSize, start.Width+dx)
	if start.Left+w > bounds.Width {
		w = bounds.Width - start.Left
	}

	var h float64
	if ratio <= 0 {
		h = math.Max(MinCropSize, start.Height+dy)
		if start.Top+h > bounds.Height {
			h = bounds.Height - start.Top
		}
		return Rect{start.Left, start.Top, w, h}
	}

	h = w / ratio
	if start.Top+h > bounds.Height {
		h = bounds.Height - start.Top
		w = h * ratio
	}
	if mh := minHeight(ratio); h < mh {
		h = mh
		w = h * ratio
	}
	return Rect{start.Left, start.Top, w, h}
}

// Translate moves start by (dx, dy) and clamps it so it stays inside bounds.
func Translate(start Rect, dx, dy float64, bounds Size) Rect {
	r := start
	r.Left = clamp(start.Left+dx, 0, bounds.Width-start.Width)
	r.Top = clamp(start.Top+dy, 0, bounds.Height-start.Height)
	return r
}

// FormatMode selects how FormatRect lays out a fresh crop rectangle.
type FormatMode int

const (
	// FormatFree insets the rectangle from every edge.
	FormatFree FormatMode = iota
	// FormatOriginal covers the whole area.
	FormatOriginal
	// FormatLocked fits the largest centered rectangle with the given ratio.
	FormatLocked
)

// FormatRect returns the default crop rectangle inside bounds for a format.
func FormatRect(bounds Size, mode FormatMode, ratio float64) Rect {
	switch mode {
	case FormatFree:
		inset := float64(FreeInset)
		if bounds.Width-2*inset < MinCropSize || bounds.Height-2*inset < MinCropSize {
			inset = 0
		}
		return Rect{inset, inset, bounds.Width - 2*inset, bounds.Height - 2*inset}
	case FormatLocked:
		if ratio <= 0 {
			break
		}
		w := bounds.Width
		h := w / ratio
		if h > bounds.Height {
			h = bounds.Height
			w = h * ratio
		}
		return Rect{(bounds.Width - w) / 2, (bounds.Height - h) / 2, w, h}
	}
	return Rect{0, 0, bounds.Width, bounds.Height}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
