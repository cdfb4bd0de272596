package interaction

import (
	"image"
	"math"

	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

// CornerMarkerSize is the on-screen size of a crop corner marker.
const CornerMarkerSize = 8

// Handle is the part of the crop rectangle a drag grabbed.
type Handle int

const (
	HandleNone Handle = iota
	HandleBody
	HandleNW
	HandleNE
	HandleSW
	HandleSE
)

func (h Handle) String() string {
	switch h {
	case HandleBody:
		return "body"
	case HandleNW:
		return "nw"
	case HandleNE:
		return "ne"
	case HandleSW:
		return "sw"
	case HandleSE:
		return "se"
	}
	return "none"
}

func (h Handle) corner() (geometry.Corner, bool) {
	switch h {
	case HandleNW:
		return geometry.NW, true
	case HandleNE:
		return geometry.NE, true
	case HandleSW:
		return geometry.SW, true
	case HandleSE:
		return geometry.SE, true
	}
	return 0, false
}

// Crop edits the crop rectangle over the full source image. Coordinates are
// source pixels; only Overlay deals with screen space.
type Crop struct {
	bounds geometry.Size
	rect   geometry.Rect
	format scene.Format

	active bool
	handle Handle
	start  geometry.Rect
	press  geometry.Point
	done   func(geometry.Rect)
}

// NewCrop returns an idle crop editor for a source of the given size.
func NewCrop(bounds geometry.Size, rect geometry.Rect, format scene.Format) *Crop {
	c := &Crop{bounds: bounds, format: format}
	c.rect = c.clamp(rect)
	return c
}

// Rect returns the current crop rectangle.
func (c *Crop) Rect() geometry.Rect { return c.rect }

// Format returns the active crop format.
func (c *Crop) Format() scene.Format { return c.format }

// Bounds returns the source size the rectangle is confined to.
func (c *Crop) Bounds() geometry.Size { return c.bounds }

// SetFormat switches the format and lays out a fresh centered rectangle.
func (c *Crop) SetFormat(f scene.Format) {
	c.Cancel()
	c.format = f
	mode, ratio := f.Layout()
	c.rect = geometry.FormatRect(c.bounds, mode, ratio)
}

// HandleAt returns the handle under p. Corners win over the body when within
// tolerance source pixels.
func (c *Crop) HandleAt(p geometry.Point, tolerance float64) Handle {
	r := c.rect
	corners := []struct {
		h Handle
		p geometry.Point
	}{
		{HandleNW, geometry.Pt(r.Left, r.Top)},
		{HandleNE, geometry.Pt(r.Right(), r.Top)},
		{HandleSW, geometry.Pt(r.Left, r.Bottom())},
		{HandleSE, geometry.Pt(r.Right(), r.Bottom())},
	}
	for _, k := range corners {
		if math.Abs(p.X-k.p.X) <= tolerance && math.Abs(p.Y-k.p.Y) <= tolerance {
			return k.h
		}
	}
	if p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom() {
		return HandleBody
	}
	return HandleNone
}

// Begin starts dragging h from p. done receives the final rectangle.
func (c *Crop) Begin(h Handle, p geometry.Point, done func(geometry.Rect)) bool {
	if h == HandleNone {
		return false
	}
	c.active = true
	c.handle = h
	c.start = c.rect
	c.press = p
	c.done = done
	return true
}

// Move resizes or translates the rectangle by the pointer delta.
func (c *Crop) Move(p geometry.Point) {
	if !c.active {
		return
	}
	dx, dy := p.X-c.press.X, p.Y-c.press.Y
	if corner, ok := c.handle.corner(); ok {
		c.rect = geometry.Resize(corner, dx, dy, c.start, c.bounds, c.ratio())
		return
	}
	c.rect = geometry.Translate(c.start, dx, dy, c.bounds)
}

// ratio is the locked aspect ratio for a drag, zero when free. The original
// format keeps whatever ratio the rectangle had when the drag started.
func (c *Crop) ratio() float64 {
	if !c.format.Locked() {
		return 0
	}
	if _, r := c.format.Layout(); r > 0 {
		return r
	}
	if c.start.Height <= 0 {
		return 0
	}
	return c.start.Width / c.start.Height
}

// End finishes the drag.
func (c *Crop) End(p geometry.Point) {
	if !c.active {
		return
	}
	c.Move(p)
	done := c.done
	c.active, c.handle, c.done = false, HandleNone, nil
	if done != nil {
		done(c.rect)
	}
}

// Cancel restores the rectangle the drag started from.
func (c *Crop) Cancel() {
	if !c.active {
		return
	}
	c.rect = c.start
	c.active, c.handle, c.done = false, HandleNone, nil
}

// Active reports whether a drag is in progress.
func (c *Crop) Active() bool { return c.active }

func (c *Crop) clamp(r geometry.Rect) geometry.Rect {
	if r.Width <= 0 || r.Height <= 0 {
		return geometry.Rect{Width: c.bounds.Width, Height: c.bounds.Height}
	}
	r.Width = math.Min(r.Width, c.bounds.Width)
	r.Height = math.Min(r.Height, c.bounds.Height)
	return geometry.Translate(r, 0, 0, c.bounds)
}

// Overlay is the on-screen presentation of the crop rectangle.
type Overlay struct {
	Rect    image.Rectangle
	Corners [4]image.Rectangle
}

// Overlay maps the rectangle to screen space with the given scale (screen
// pixels per source pixel) and offset. The numeric rectangle is untouched.
func (c *Crop) Overlay(scale float64, offset image.Point) Overlay {
	toScreen := func(x, y float64) image.Point {
		return image.Pt(int(math.Round(x*scale))+offset.X, int(math.Round(y*scale))+offset.Y)
	}
	r := c.rect
	min := toScreen(r.Left, r.Top)
	max := toScreen(r.Right(), r.Bottom())
	o := Overlay{Rect: image.Rectangle{Min: min, Max: max}}
	half := CornerMarkerSize / 2
	for i, p := range []image.Point{min, {max.X, min.Y}, {min.X, max.Y}, max} {
		o.Corners[i] = image.Rect(p.X-half, p.Y-half, p.X+half, p.Y+half)
	}
	return o
}
