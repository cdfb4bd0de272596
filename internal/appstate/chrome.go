package appstate

import (
	"fmt"
	"image"
	"strings"

	"github.com/example/inkwell/internal/editor"
	"github.com/example/inkwell/internal/scene"
	"github.com/example/inkwell/internal/theme"
)

const (
	buttonGap     = 4
	filterStep    = 10
	fontSizeStep  = 4
	brushSizeStep = 2
	angleStep     = 5
)

// bars holds the buttons of one frame. They are rebuilt whenever the
// session changes and never mutated afterwards, so the paint goroutine may
// draw them while the event loop hit-tests them.
type bars struct {
	tabs      []Button
	settings  []Button
	shortcuts []Button
}

// command is a window-level action bound to a shortcut button.
type command struct {
	label string
	run   func()
}

func buildBars(s *editor.Session, th *theme.Theme, l layout, commands []command) bars {
	var b bars
	var tabs []*LabelButton
	for i, t := range editor.Tools() {
		t := t
		tabs = append(tabs, &LabelButton{
			label:      fmt.Sprintf("%d %s", i+1, t),
			selected:   s.Tool() == t,
			tab:        true,
			th:         th,
			onActivate: func() { s.SetTool(t) },
		})
	}
	b.tabs = place(tabs, l.tabs, true)
	b.settings = placeMixed(settingsButtons(s, th), l.settings)

	var shortcuts []*LabelButton
	for _, c := range commands {
		shortcuts = append(shortcuts, &LabelButton{label: c.label, th: th, onActivate: c.run})
	}
	b.shortcuts = place(shortcuts, l.bottom, false)
	return b
}

// place lays buttons out left to right. Tabs share the bar evenly.
func place(buttons []*LabelButton, bar image.Rectangle, even bool) []Button {
	out := make([]Button, 0, len(buttons))
	x := bar.Min.X + buttonGap
	for i, btn := range buttons {
		w := btn.width()
		if even && len(buttons) > 0 {
			w = (bar.Dx() - buttonGap*(len(buttons)+1)) / len(buttons)
			x = bar.Min.X + buttonGap + i*(w+buttonGap)
		}
		cb := &CacheButton{Button: btn}
		cb.SetRect(image.Rect(x, bar.Min.Y+2, x+w, bar.Max.Y-2))
		out = append(out, cb)
		x += w + buttonGap
	}
	return out
}

func placeMixed(buttons []Button, bar image.Rectangle) []Button {
	x := bar.Min.X + buttonGap
	h := bar.Dy() - 4
	out := make([]Button, 0, len(buttons))
	for _, btn := range buttons {
		w := h
		if lb, ok := btn.(*LabelButton); ok {
			w = lb.width()
		}
		cb := &CacheButton{Button: btn}
		cb.SetRect(image.Rect(x, bar.Min.Y+2, x+w, bar.Min.Y+2+h))
		out = append(out, cb)
		x += w + buttonGap
	}
	return out
}

// settingsButtons returns the settings bar of the active tool.
func settingsButtons(s *editor.Session, th *theme.Theme) []Button {
	st := s.Scene()
	btn := func(label string, selected bool, fn func()) Button {
		return &LabelButton{label: label, selected: selected, th: th, onActivate: fn}
	}
	switch s.Tool() {
	case editor.ToolFilters:
		var out []Button
		for _, f := range scene.Filters() {
			f := f
			v := st.Filter(f.Kind)
			out = append(out,
				btn("-", false, func() { s.SetFilter(f.Kind, f.Clamp(s.Scene().Filter(f.Kind)-filterStep)) }),
				btn(fmt.Sprintf("%s %+.0f", f.Kind, v), v != 0, nil),
				btn("+", false, func() { s.SetFilter(f.Kind, f.Clamp(s.Scene().Filter(f.Kind)+filterStep)) }),
			)
		}
		return append(out, btn("reset", false, s.ResetFilters))
	case editor.ToolCrop:
		current := st.Cropper.Format
		if c := s.Crop(); c != nil {
			current = c.Format()
		}
		var out []Button
		for _, f := range scene.Formats() {
			f := f
			out = append(out, btn(string(f), f == current, func() { s.SetCropFormat(f) }))
		}
		return append(out,
			btn(fmt.Sprintf("-%d°", angleStep), false, func() { s.SetCropAngle(s.Scene().Cropper.Angle - angleStep) }),
			btn(fmt.Sprintf("%+.0f°", st.Cropper.Angle), false, nil),
			btn(fmt.Sprintf("+%d°", angleStep), false, func() { s.SetCropAngle(s.Scene().Cropper.Angle + angleStep) }),
			btn("rotate", false, s.RotateCrop),
			btn("mirror", st.Cropper.Mirrored, s.ToggleMirror),
		)
	case editor.ToolText:
		ts := st.Text
		out := swatches(th, ts.Color, s.SetTextColor)
		return append(out,
			btn("font: "+string(ts.Font), false, func() { s.SetTextFont(next(scene.Fonts(), s.Scene().Text.Font)) }),
			btn("-", false, func() { s.SetTextSize(s.Scene().Text.Size - fontSizeStep) }),
			btn(fmt.Sprintf("%.0fpt", ts.Size), false, nil),
			btn("+", false, func() { s.SetTextSize(s.Scene().Text.Size + fontSizeStep) }),
			btn("align: "+string(ts.Align), false, func() {
				s.SetTextAlign(next([]scene.Align{scene.AlignLeft, scene.AlignCenter, scene.AlignRight}, s.Scene().Text.Align))
			}),
			btn("frame: "+string(ts.Frame), false, func() {
				s.SetTextFrame(next([]scene.Frame{scene.FrameNone, scene.FrameBlack, scene.FrameWhite}, s.Scene().Text.Frame))
			}),
		)
	case editor.ToolBrush:
		bs := st.Brush
		var out []Button
		for _, style := range scene.BrushStyles() {
			style := style
			out = append(out, btn(string(style), style == bs.Style, func() { s.SetBrushStyle(style) }))
		}
		out = append(out, swatches(th, bs.Color, s.SetBrushColor)...)
		return append(out,
			btn("-", false, func() { s.SetBrushSize(s.Scene().Brush.Size - brushSizeStep) }),
			btn(fmt.Sprintf("%.0fpx", bs.Size), false, nil),
			btn("+", false, func() { s.SetBrushSize(s.Scene().Brush.Size + brushSizeStep) }),
		)
	case editor.ToolStickers:
		out := []Button{btn("paste", false, func() {
			if _, err := s.AddStickerFromClipboard(); err != nil {
				logf("paste sticker: %v", err)
			}
		})}
		cache := s.Stickers()
		for _, key := range cache.Keys() {
			img, ok := cache.Get(key)
			if !ok {
				continue
			}
			key := key
			out = append(out, &ThumbButton{img: img, th: th, onActivate: func() { s.AddSticker(key, img) }})
		}
		return out
	}
	return nil
}

func swatches(th *theme.Theme, current scene.Color, set func(scene.Color)) []Button {
	var out []Button
	for _, p := range scene.Palette() {
		c := p.Color
		out = append(out, &SwatchButton{
			col:        c.RGBA(),
			selected:   strings.EqualFold(string(c), string(current)),
			th:         th,
			onActivate: func() { set(c) },
		})
	}
	return out
}

// next returns the value after cur in values, wrapping around.
func next[T comparable](values []T, cur T) T {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}
