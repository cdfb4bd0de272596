package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/inkwell/internal/interaction"
	"github.com/example/inkwell/internal/theme"
)

// paintState is an immutable snapshot handed to the paint goroutine.
type paintState struct {
	width, height int
	th            *theme.Theme
	layout        layout
	view          viewport
	img           image.Image
	crop          *interaction.Overlay
	bars          bars
	hover         image.Point
	pressed       bool
	message       string
	messageUntil  time.Time
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	dst := b.RGBA()

	draw.Draw(dst, dst.Bounds(), &image.Uniform{st.th.Background}, image.Point{}, draw.Src)
	drawCheckerboard(dst, st.view.rect, 8, st.th.CheckerLight, st.th.CheckerDark)
	if ctx.Err() != nil {
		return
	}
	if st.img != nil {
		xdraw.ApproxBiLinear.Scale(dst, st.view.rect, st.img, st.img.Bounds(), draw.Over, nil)
	}
	if ctx.Err() != nil {
		return
	}
	if st.crop != nil {
		drawCropOverlay(dst, st.view.rect, *st.crop, st.th)
	}

	draw.Draw(dst, st.layout.tabs, &image.Uniform{st.th.ToolbarBackground}, image.Point{}, draw.Src)
	draw.Draw(dst, st.layout.settings, &image.Uniform{st.th.Background}, image.Point{}, draw.Src)
	draw.Draw(dst, st.layout.bottom, &image.Uniform{st.th.ToolbarBackground}, image.Point{}, draw.Src)
	for _, group := range [][]Button{st.bars.tabs, st.bars.settings, st.bars.shortcuts} {
		for _, btn := range group {
			state := StateDefault
			if st.hover.In(btn.Rect()) {
				state = StateHover
				if st.pressed {
					state = StatePressed
				}
			}
			btn.Draw(dst, state)
		}
	}
	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		drawMessage(dst, st.message, st.th)
	}
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// drawCropOverlay shades the source outside the crop and outlines it.
func drawCropOverlay(dst *image.RGBA, view image.Rectangle, o interaction.Overlay, th *theme.Theme) {
	shade := &image.Uniform{th.CropShade}
	r := o.Rect.Intersect(view)
	for _, band := range []image.Rectangle{
		image.Rect(view.Min.X, view.Min.Y, view.Max.X, r.Min.Y),
		image.Rect(view.Min.X, r.Max.Y, view.Max.X, view.Max.Y),
		image.Rect(view.Min.X, r.Min.Y, r.Min.X, r.Max.Y),
		image.Rect(r.Max.X, r.Min.Y, view.Max.X, r.Max.Y),
	} {
		if !band.Empty() {
			draw.Draw(dst, band, shade, image.Point{}, draw.Over)
		}
	}
	drawDashedRect(dst, o.Rect, 6, 1, th.CropBorder, th.CropShade)
	for _, c := range o.Corners {
		draw.Draw(dst, c, &image.Uniform{th.CropBorder}, image.Point{}, draw.Src)
		drawRect(dst, c, th.ButtonBorder, 1)
	}
}

func drawMessage(dst *image.RGBA, msg string, th *theme.Theme) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.Foreground), Face: basicfont.Face7x13}
	w := d.MeasureString(msg).Ceil()
	b := dst.Bounds()
	px := (b.Dx() - w) / 2
	py := b.Dy() / 2
	rect := image.Rect(px-12, py-20, px+w+12, py+12)
	bg := th.Background
	bg.A = 230
	draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Over)
	drawRect(dst, rect, th.ButtonBorder, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}

// drawCheckerboard fills rect of dst with squares of the given size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.RGBA) {
	rect = rect.Intersect(dst.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			c := dark
			if ((x/size)+(y/size))%2 == 0 {
				c = light
			}
			dst.SetRGBA(x, y, c)
		}
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.RGBA, thick int) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}

// drawDashedRect outlines rect with dashes alternating between c1 and c2.
func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash, thick int, c1, c2 color.RGBA) {
	pick := func(i int) color.RGBA {
		if (i/dash)%2 == 0 {
			return c1
		}
		return c2
	}
	b := img.Bounds()
	set := func(x, y int, c color.RGBA) {
		for t := 0; t < thick; t++ {
			for _, p := range []image.Point{{x, y + t}, {x + t, y}} {
				if p.In(b) {
					img.SetRGBA(p.X, p.Y, c)
				}
			}
		}
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		set(x, rect.Min.Y, pick(x-rect.Min.X))
		set(x, rect.Max.Y-thick, pick(x-rect.Min.X))
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		set(rect.Min.X, y, pick(y-rect.Min.Y))
		set(rect.Max.X-thick, y, pick(y-rect.Min.Y))
	}
}

// drawScaled fits img inside rect keeping its aspect ratio.
func drawScaled(dst *image.RGBA, rect image.Rectangle, img image.Image) {
	v := fitInside(rect, img.Bounds().Dx(), img.Bounds().Dy())
	xdraw.ApproxBiLinear.Scale(dst, v.rect, img, img.Bounds(), draw.Over, nil)
}
