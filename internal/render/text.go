package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

var black = color.RGBA{A: 255}

// alignOffset is the horizontal offset of a line of width w inside a box of
// width boxW.
func alignOffset(a scene.Align, boxW, w float64) float64 {
	switch a {
	case scene.AlignCenter:
		return (boxW - w) / 2
	case scene.AlignRight:
		return boxW - w
	}
	return 0
}

// textColor is the glyph color of a text layer. On a white frame the pill is
// painted in the layer color and the glyphs contrast with it.
func textColor(l *scene.Layer) color.RGBA {
	if l.Text.Frame != scene.FrameWhite {
		return l.Color.RGBA()
	}
	if l.Color.RGBA() == scene.ColorWhite.RGBA() {
		return black
	}
	return scene.ColorWhite.RGBA()
}

func (r *Renderer) drawText(c *canvas, l *scene.Layer, edited bool) {
	td := l.Text
	face, err := Face(td.Font, l.Size)
	if err != nil {
		return
	}
	ratio := r.opts.Ratio
	lh := l.Size * scene.LineHeight
	lines := scene.Lines(td.Text)
	widths := make([]float64, len(lines))
	for i, line := range lines {
		widths[i] = StringWidth(td.Font, l.Size, line)
	}
	lineX := func(i int) float64 { return l.Left + alignOffset(td.Align, l.Width, widths[i]) }

	if td.Frame == scene.FrameWhite {
		dc := c.vector()
		dc.SetColor(l.Color.RGBA())
		for i := range lines {
			if widths[i] == 0 {
				continue
			}
			p := c.local(geometry.Pt(lineX(i)-scene.FramePadding, l.Top+float64(i)*lh-scene.FramePadding))
			dc.DrawRoundedRectangle(p.X, p.Y, widths[i]+2*scene.FramePadding, lh+2*scene.FramePadding, l.Size/2)
			_ = dc.Fill()
		}
		c.flush()
	}

	m := face.Metrics()
	ascent := float64(m.Ascent) / 64
	descent := float64(m.Descent) / 64
	col := textColor(l)
	for i, line := range lines {
		top := l.Top + float64(i)*lh
		base := c.local(geometry.Pt(lineX(i), top+(lh+ascent-descent)/2))
		if td.Frame == scene.FrameBlack {
			for _, d := range outlineOffsets {
				drawString(c.img, face, line, base.X+d.X*ratio, base.Y+d.Y*ratio, black)
			}
		}
		drawString(c.img, face, line, base.X, base.Y, col)
	}

	if edited && td.ShowCursor {
		line, colIdx := td.CursorLine()
		if line >= len(lines) {
			line = len(lines) - 1
		}
		prefix := []rune(lines[line])
		if colIdx > len(prefix) {
			colIdx = len(prefix)
		}
		x := lineX(line) + StringWidth(td.Font, l.Size, string(prefix[:colIdx]))
		top := l.Top + float64(line)*lh
		drawCaret(c, x, top-l.Size*0.1, top+lh+l.Size*0.1, 2*ratio, col)
	}
}

// outlineOffsets approximate a two pixel glyph stroke.
var outlineOffsets = []geometry.Point{
	{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 1, Y: -1},
	{X: -1, Y: 0}, {X: 1, Y: 0},
	{X: -1, Y: 1}, {X: 0, Y: 1}, {X: 1, Y: 1},
}

func drawString(dst *image.RGBA, face font.Face, s string, x, y float64, col color.Color) {
	if s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))},
	}
	d.DrawString(s)
}

// drawCaret fills a vertical bar of the given width centered on x.
func drawCaret(c *canvas, x, y0, y1, width float64, col color.Color) {
	p0 := c.local(geometry.Pt(x-width/2, y0))
	p1 := c.local(geometry.Pt(x+width/2, y1))
	rect := image.Rect(int(math.Floor(p0.X)), int(math.Floor(p0.Y)), int(math.Ceil(p1.X)), int(math.Ceil(p1.Y)))
	draw.Draw(c.img, rect, image.NewUniform(col), image.Point{}, draw.Over)
}
