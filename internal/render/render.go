// Package render rasterizes a scene: filtered source image, cropped and
// rotated onto the output surface, then every layer in z-order with the
// selection and caret overlays on top.
package render

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/example/inkwell/internal/scene"
)

// DefaultArrowWindow is how many points back an arrow head looks to find the
// stroke direction.
const DefaultArrowWindow = 10

// Stickers resolves sticker keys to bitmaps.
type Stickers interface {
	Sticker(key string) (image.Image, bool)
}

// Options tune presentation details that are not part of the scene.
type Options struct {
	// Ratio is surface pixels per display pixel. Overlay strokes, paddings
	// and handles are scaled by it so they keep their on-screen size.
	Ratio float64
	// ArrowWindow is the trailing point window used for arrow heads.
	ArrowWindow int
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Ratio: 1, ArrowWindow: DefaultArrowWindow}
}

// Renderer draws scenes. It caches the filtered source between frames.
type Renderer struct {
	opts     Options
	stickers Stickers

	cacheSrc image.Image
	cacheKey string
	cacheImg image.Image
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithOptions replaces the presentation options.
func WithOptions(o Options) Option { return func(r *Renderer) { r.opts = o } }

// WithStickers sets the sticker lookup.
func WithStickers(s Stickers) Option { return func(r *Renderer) { r.stickers = s } }

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{opts: DefaultOptions()}
	for _, o := range opts {
		o(r)
	}
	r.opts = r.opts.normalized()
	return r
}

func (o Options) normalized() Options {
	if o.Ratio <= 0 {
		o.Ratio = 1
	}
	if o.ArrowWindow < 2 {
		o.ArrowWindow = DefaultArrowWindow
	}
	return o
}

// Options returns the current presentation options.
func (r *Renderer) Options() Options { return r.opts }

// SetRatio updates the display scale after a viewport change.
func (r *Renderer) SetRatio(v float64) {
	r.opts.Ratio = v
	r.opts = r.opts.normalized()
}

// Render draws st over src onto a new surface sized to the crop rectangle.
// A nil src leaves the background transparent.
func (r *Renderer) Render(src image.Image, st *scene.State) *image.RGBA {
	w := int(math.Round(st.Cropper.Width))
	h := int(math.Round(st.Cropper.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src != nil {
		drawSource(dst, r.Filtered(src, st.Filters), st.Cropper)
	}
	r.DrawLayers(dst, st)
	return dst
}

// Filtered returns src with the filters applied, reusing the last result when
// neither changed.
func (r *Renderer) Filtered(src image.Image, filters map[scene.FilterKind]float64) image.Image {
	key := filterKey(filters)
	if r.cacheSrc == src && r.cacheKey == key && r.cacheImg != nil {
		return r.cacheImg
	}
	r.cacheSrc, r.cacheKey = src, key
	r.cacheImg = ApplyFilters(src, filters)
	return r.cacheImg
}

// DrawLayers paints every layer of st onto dst in z-order.
func (r *Renderer) DrawLayers(dst *image.RGBA, st *scene.State) {
	for i := range st.Layers {
		l := &st.Layers[i]
		r.drawLayer(dst, l, i == st.Selected, i == st.Edited)
	}
}

// drawSource maps the crop rectangle of src onto the whole of dst, rotated by
// the crop angle about the surface center and optionally mirrored.
func drawSource(dst *image.RGBA, src image.Image, c scene.Cropper) {
	b := dst.Bounds()
	sb := src.Bounds()
	left := c.Left + float64(sb.Min.X)
	top := c.Top + float64(sb.Min.Y)
	if c.Angle == 0 && !c.Mirrored && left == math.Trunc(left) && top == math.Trunc(top) {
		draw.Draw(dst, b, src, image.Pt(int(left), int(top)), draw.Src)
		return
	}

	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	theta := c.Angle * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)

	// Unrotated surface x is sx*q.x + ax; y is q.y - top.
	sx, ax := 1.0, -left
	if c.Mirrored {
		sx, ax = -1, left+2*cx
	}
	ay := -top
	m := f64.Aff3{
		cos * sx, -sin, cos*(ax-cx) - sin*(ay-cy) + cx,
		sin * sx, cos, sin*(ax-cx) + cos*(ay-cy) + cy,
	}
	xdraw.BiLinear.Transform(dst, m, src, sb, draw.Src, nil)
}
