package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/gg"

	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

// arrowSpread is the angle between the shaft and each arrow head barb.
const arrowSpread = math.Pi / 6

func (r *Renderer) drawBrush(c *canvas, l *scene.Layer) {
	bd := l.Brush
	pts := make([]geometry.Point, len(bd.Points))
	for i, p := range l.Absolute() {
		pts[i] = c.local(p)
	}
	col := l.Color.RGBA()

	if bd.Style == scene.BrushNeon {
		halo := newCanvas(geometry.Box{Width: float64(c.img.Bounds().Dx()), Height: float64(c.img.Bounds().Dy())})
		dc := halo.vector()
		strokePath(dc, pts, l.Size, colorOf(col, 1))
		halo.flush()
		glow := Glow(halo.img, GlowOptions{Radius: int(math.Ceil(l.Size / 2)), Color: col, Opacity: 1})
		draw.Draw(c.img, c.img.Bounds(), glow, image.Point{}, draw.Over)
		draw.Draw(c.img, c.img.Bounds(), glow, image.Point{}, draw.Over)
		col = scene.ColorWhite.RGBA()
	}

	dc := c.vector()
	if bd.Style == scene.BrushArrow && !bd.Drawing {
		appendArrowHead(dc, pts, l.Size, r.opts.ArrowWindow)
	}
	strokePath(dc, pts, l.Size, colorOf(col, bd.Style.Opacity()))
}

// strokePath strokes pts as a curve through the midpoints of consecutive
// points, with round caps. A single point becomes a dot.
func strokePath(dc *gg.Context, pts []geometry.Point, size float64, col gg.RGBA) {
	dc.SetRGBA(col.R, col.G, col.B, col.A)
	if len(pts) == 1 {
		dc.DrawCircle(pts[0].X, pts[0].Y, size/2)
		_ = dc.Fill()
		return
	}
	dc.SetStroke(gg.DefaultStroke().WithWidth(size).WithCap(gg.LineCapRound).WithJoin(gg.LineJoinRound))
	dc.MoveTo(pts[0].X, pts[0].Y)
	for i := 0; i < len(pts)-1; i++ {
		mx := (pts[i].X + pts[i+1].X) / 2
		my := (pts[i].Y + pts[i+1].Y) / 2
		dc.QuadraticTo(pts[i].X, pts[i].Y, mx, my)
	}
	last := pts[len(pts)-1]
	dc.QuadraticTo(last.X, last.Y, last.X, last.Y)
	_ = dc.Stroke()
}

// appendArrowHead adds the two barbs at the end of the stroke to the current
// path. The direction comes from the point window places before the last one;
// shorter strokes get no head.
func appendArrowHead(dc *gg.Context, pts []geometry.Point, size float64, window int) {
	if len(pts) < window {
		return
	}
	last := pts[len(pts)-1]
	prev := pts[len(pts)-window]
	angle := geometry.Bearing(prev, last)
	length := 3 * size
	dc.MoveTo(last.X-length*math.Cos(angle-arrowSpread), last.Y-length*math.Sin(angle-arrowSpread))
	dc.LineTo(last.X, last.Y)
	dc.LineTo(last.X-length*math.Cos(angle+arrowSpread), last.Y-length*math.Sin(angle+arrowSpread))
	dc.NewSubPath()
}

func colorOf(c color.RGBA, opacity float64) gg.RGBA {
	return gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255 * opacity,
	}
}
