package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

// canvas is a layer-local bitmap. Layers are drawn unrotated into it, offset
// by origin, then composited onto the surface rotated about the layer center.
type canvas struct {
	img    *image.RGBA
	origin geometry.Point
	dc     *gg.Context
}

func newCanvas(frame geometry.Box) *canvas {
	x0 := math.Floor(frame.Left)
	y0 := math.Floor(frame.Top)
	w := int(math.Ceil(frame.Left+frame.Width) - x0)
	h := int(math.Ceil(frame.Top+frame.Height) - y0)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &canvas{
		img:    image.NewRGBA(image.Rect(0, 0, w, h)),
		origin: geometry.Pt(x0, y0),
	}
}

// local converts a canvas space point into bitmap coordinates.
func (c *canvas) local(p geometry.Point) geometry.Point { return p.Sub(c.origin) }

// vector returns the lazily created vector context sized to the bitmap.
func (c *canvas) vector() *gg.Context {
	if c.dc == nil {
		b := c.img.Bounds()
		c.dc = gg.NewContext(b.Dx(), b.Dy())
	}
	return c.dc
}

// flush composites pending vector drawing over the bitmap.
func (c *canvas) flush() {
	if c.dc == nil {
		return
	}
	out := c.dc.Image()
	draw.Draw(c.img, c.img.Bounds(), out, out.Bounds().Min, draw.Over)
	_ = c.dc.Close()
	c.dc = nil
}

func (r *Renderer) drawLayer(dst *image.RGBA, l *scene.Layer, selected, edited bool) {
	content, ok := r.contentBounds(l)
	if !ok {
		return
	}
	ratio := r.opts.Ratio
	margin := 2 * ratio
	if selected {
		margin += (scene.BorderPadding + scene.HandleRadius + 1) * ratio
	}
	c := newCanvas(content.Inflate(margin))

	switch l.Kind {
	case scene.KindText:
		r.drawText(c, l, edited)
	case scene.KindBrush:
		r.drawBrush(c, l)
	case scene.KindSticker:
		if !r.drawSticker(c, l) && !selected {
			return
		}
	}
	if selected {
		drawSelection(c, l.Box, ratio)
	}
	c.flush()
	composite(dst, c, l.Box)
}

// contentBounds returns the unrotated canvas area a layer paints into.
func (r *Renderer) contentBounds(l *scene.Layer) (geometry.Box, bool) {
	switch l.Kind {
	case scene.KindText:
		if l.Text == nil {
			return geometry.Box{}, false
		}
		return l.Box.Inflate(scene.FramePadding + l.Size*0.2 + 2*r.opts.Ratio), true
	case scene.KindBrush:
		if l.Brush == nil || len(l.Brush.Points) == 0 {
			return geometry.Box{}, false
		}
		b, _ := l.StrokeBounds()
		b = union(b, l.Box)
		extra := l.Size
		if l.Brush.Style == scene.BrushArrow {
			extra += 3 * l.Size
		}
		return b.Inflate(extra), true
	case scene.KindSticker:
		if l.Sticker == nil || l.Width <= 0 || l.Height <= 0 {
			return geometry.Box{}, false
		}
		return l.Box, true
	}
	return geometry.Box{}, false
}

func union(a, b geometry.Box) geometry.Box {
	if b.Width <= 0 && b.Height <= 0 {
		return a
	}
	x0 := math.Min(a.Left, b.Left)
	y0 := math.Min(a.Top, b.Top)
	x1 := math.Max(a.Left+a.Width, b.Left+b.Width)
	y1 := math.Max(a.Top+a.Height, b.Top+b.Height)
	return geometry.Box{Left: x0, Top: y0, Width: x1 - x0, Height: y1 - y0, Angle: a.Angle}
}

// composite draws the layer bitmap onto dst rotated about the box center.
func composite(dst *image.RGBA, c *canvas, box geometry.Box) {
	if box.Angle == 0 {
		r := c.img.Bounds().Add(image.Pt(int(c.origin.X), int(c.origin.Y)))
		draw.Draw(dst, r, c.img, image.Point{}, draw.Over)
		return
	}
	center := box.Center()
	lc := c.local(center)
	cos, sin := math.Cos(box.Angle), math.Sin(box.Angle)
	m := f64.Aff3{
		cos, -sin, center.X - (cos*lc.X - sin*lc.Y),
		sin, cos, center.Y - (sin*lc.X + cos*lc.Y),
	}
	xdraw.BiLinear.Transform(dst, m, c.img, c.img.Bounds(), draw.Over, nil)
}

// drawSelection strokes the dashed border around the padded box and paints a
// white disc on each corner.
func drawSelection(c *canvas, box geometry.Box, ratio float64) {
	dc := c.vector()
	outer := box.Inflate(scene.BorderPadding * ratio)
	tl := c.local(geometry.Pt(outer.Left, outer.Top))

	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.25)
	dc.SetStroke(gg.DefaultStroke().WithWidth(ratio).WithDashPattern(3*ratio, 6*ratio))
	dc.DrawRectangle(tl.X, tl.Y, outer.Width, outer.Height)
	_ = dc.Stroke()

	dc.SetRGBA(1, 1, 1, 1)
	for _, p := range outer.Corners() {
		lp := c.local(p)
		dc.DrawCircle(lp.X, lp.Y, scene.HandleRadius*ratio)
		_ = dc.Fill()
	}
	dc.Pop()
}
