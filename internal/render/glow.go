package render

import (
	"image"
	"image/color"
	"image/draw"
)

// GlowOptions configures the halo drawn behind neon strokes.
type GlowOptions struct {
	Radius  int
	Color   color.RGBA
	Opacity float64
}

// Glow returns a bitmap the size of img holding its alpha mask blurred by
// opts.Radius and tinted with opts.Color. It is meant to be drawn under img.
func Glow(img *image.RGBA, opts GlowOptions) *image.RGBA {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	if bounds.Empty() || opts.Opacity <= 0 {
		return out
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	mask := image.NewGray(bounds.Sub(bounds.Min))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-bounds.Min.X, y-bounds.Min.Y, color.Gray{Y: a})
			}
		}
	}
	// Two box passes approximate a gaussian closely enough for a halo.
	blurred := blurGray(blurGray(mask, radius), radius)

	tint := opts.Color
	tint.A = uint8(float64(tint.A)*opacity + 0.5)
	if tint.A == 0 {
		return out
	}
	draw.DrawMask(out, bounds, image.NewUniform(tint), image.Point{}, blurred, image.Point{}, draw.Over)
	return out
}

// blurGray box blurs src horizontally then vertically using running sums.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x, v := range row {
			prefix[x+1] = prefix[x] + int(v)
		}
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(y-radius, 0), min(y+radius, h-1)
			dst.Pix[y*dst.Stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
	return dst
}
