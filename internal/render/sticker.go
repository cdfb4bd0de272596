package render

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

// drawSticker scales the cached bitmap into the layer box. It reports false
// when the bitmap is not available yet so the layer is skipped this frame.
func (r *Renderer) drawSticker(c *canvas, l *scene.Layer) bool {
	if r.stickers == nil {
		return false
	}
	img, ok := r.stickers.Sticker(l.Sticker.Key)
	if !ok || img == nil {
		return false
	}
	p0 := c.local(geometry.Pt(l.Left, l.Top))
	p1 := c.local(geometry.Pt(l.Left+l.Width, l.Top+l.Height))
	dr := image.Rect(int(math.Round(p0.X)), int(math.Round(p0.Y)), int(math.Round(p1.X)), int(math.Round(p1.Y)))
	xdraw.CatmullRom.Scale(c.img, dr, img, img.Bounds(), xdraw.Over, nil)
	return true
}
