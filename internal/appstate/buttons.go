package appstate

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/inkwell/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button is an interactive element of the tool or settings bar. Activate
// runs on the event loop goroutine; Draw may run on the paint goroutine.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		img := image.NewRGBA(cb.Button.Rect())
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

// LabelButton is a text button. Selected buttons draw pressed.
type LabelButton struct {
	label      string
	selected   bool
	tab        bool
	th         *theme.Theme
	rect       image.Rectangle
	onActivate func()
}

func (b *LabelButton) Draw(dst *image.RGBA, state ButtonState) {
	if b.selected {
		state = StatePressed
	}
	bg, fg := b.colors(state)
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	if !b.tab {
		drawRect(dst, b.rect, b.th.ButtonBorder, 1)
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13}
	w := d.MeasureString(b.label).Ceil()
	d.Dot = fixed.P(b.rect.Min.X+(b.rect.Dx()-w)/2, b.rect.Min.Y+(b.rect.Dy()+9)/2)
	d.DrawString(b.label)
}

func (b *LabelButton) colors(state ButtonState) (color.RGBA, color.RGBA) {
	t := b.th
	if b.tab {
		switch state {
		case StateHover:
			return t.TabHover, t.TabTextHover
		case StatePressed:
			return t.TabActive, t.TabTextActive
		}
		return t.TabBackground, t.TabText
	}
	switch state {
	case StateHover:
		return t.ButtonBackgroundHover, t.ButtonTextHover
	case StatePressed:
		return t.ButtonBackgroundPress, t.ButtonTextPress
	}
	return t.ButtonBackground, t.ButtonText
}

func (b *LabelButton) Rect() image.Rectangle { return b.rect }

func (b *LabelButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *LabelButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// width is the preferred width for the label.
func (b *LabelButton) width() int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(b.label).Ceil() + 16
}

// SwatchButton picks a palette color.
type SwatchButton struct {
	col        color.RGBA
	selected   bool
	th         *theme.Theme
	rect       image.Rectangle
	onActivate func()
}

func (b *SwatchButton) Draw(dst *image.RGBA, state ButtonState) {
	border := b.th.ButtonBorder
	if b.selected || state == StatePressed {
		border = b.th.TabActive
	}
	draw.Draw(dst, b.rect, &image.Uniform{border}, image.Point{}, draw.Src)
	inset := 2
	if b.selected {
		inset = 4
	} else if state == StateHover {
		inset = 1
	}
	draw.Draw(dst, b.rect.Inset(inset), &image.Uniform{b.col}, image.Point{}, draw.Src)
}

func (b *SwatchButton) Rect() image.Rectangle { return b.rect }

func (b *SwatchButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *SwatchButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// ThumbButton shows a cached sticker bitmap.
type ThumbButton struct {
	img        image.Image
	th         *theme.Theme
	rect       image.Rectangle
	onActivate func()
}

func (b *ThumbButton) Draw(dst *image.RGBA, state ButtonState) {
	bg := b.th.ButtonBackground
	if state == StateHover {
		bg = b.th.ButtonBackgroundHover
	}
	draw.Draw(dst, b.rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	if b.img != nil {
		drawScaled(dst, b.rect.Inset(2), b.img)
	}
	drawRect(dst, b.rect, b.th.ButtonBorder, 1)
}

func (b *ThumbButton) Rect() image.Rectangle { return b.rect }

func (b *ThumbButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *ThumbButton) Activate() {
	if b.onActivate != nil {
		b.onActivate()
	}
}

// hitButton returns the index of the button containing p, or -1.
func hitButton(buttons []Button, p image.Point) int {
	for i, b := range buttons {
		if p.In(b.Rect()) {
			return i
		}
	}
	return -1
}
