package scene

import (
	"errors"
	"fmt"

	"github.com/example/inkwell/internal/geometry"
)

// Kind discriminates the payload of a Layer.
type Kind int

const (
	KindText Kind = iota
	KindBrush
	KindSticker
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBrush:
		return "brush"
	case KindSticker:
		return "sticker"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "text":
		*k = KindText
	case "brush":
		*k = KindBrush
	case "sticker":
		*k = KindSticker
	default:
		return fmt.Errorf("unknown layer kind %q", b)
	}
	return nil
}

// Layer is one positioned, rotatable annotation. The box is the unrotated
// bounding box; rotation is about its center. Exactly one payload pointer is
// set and it matches Kind.
type Layer struct {
	Kind Kind `json:"kind"`
	geometry.Box
	Color Color   `json:"color"`
	Size  float64 `json:"size"`

	Text    *TextData    `json:"text,omitempty"`
	Brush   *BrushData   `json:"brush,omitempty"`
	Sticker *StickerData `json:"sticker,omitempty"`
}

// TextData is the payload of a text layer. Cursor is a rune index into Text.
type TextData struct {
	Text       string `json:"text"`
	Font       Font   `json:"font"`
	Align      Align  `json:"align"`
	Frame      Frame  `json:"frame"`
	Cursor     int    `json:"cursor"`
	ShowCursor bool   `json:"-"`
	Moved      bool   `json:"-"`
}

// BrushData is the payload of a brush layer. Points are relative to the
// layer's Left and Top.
type BrushData struct {
	Points  []geometry.Point `json:"points"`
	Style   BrushStyle       `json:"style"`
	Drawing bool             `json:"-"`
	Moved   bool             `json:"-"`
}

// StickerData references a bitmap held by the sticker cache. The layer Size
// is not used for stickers.
type StickerData struct {
	Key string `json:"key"`
}

// NewText returns an empty text layer at p styled by ts.
func NewText(p geometry.Point, ts TextSettings) Layer {
	return Layer{
		Kind:  KindText,
		Box:   geometry.Box{Left: p.X, Top: p.Y},
		Color: ts.Color,
		Size:  ts.Size,
		Text:  &TextData{Font: ts.Font, Align: ts.Align, Frame: ts.Frame},
	}
}

// NewBrush returns a brush layer anchored at p with a single point at the
// anchor.
func NewBrush(p geometry.Point, bs BrushSettings) Layer {
	return Layer{
		Kind:  KindBrush,
		Box:   geometry.Box{Left: p.X, Top: p.Y},
		Color: bs.Color,
		Size:  bs.Size,
		Brush: &BrushData{Points: []geometry.Point{{}}, Style: bs.Style},
	}
}

// NewSticker returns a sticker layer occupying box.
func NewSticker(key string, box geometry.Box) Layer {
	return Layer{
		Kind:    KindSticker,
		Box:     box,
		Sticker: &StickerData{Key: key},
	}
}

// Clone returns a deep copy of l.
func (l Layer) Clone() Layer {
	out := l
	if l.Text != nil {
		t := *l.Text
		out.Text = &t
	}
	if l.Brush != nil {
		b := *l.Brush
		b.Points = append([]geometry.Point(nil), l.Brush.Points...)
		out.Brush = &b
	}
	if l.Sticker != nil {
		s := *l.Sticker
		out.Sticker = &s
	}
	return out
}

// Absolute returns the canvas position of every brush point.
func (l *Layer) Absolute() []geometry.Point {
	if l.Brush == nil {
		return nil
	}
	origin := geometry.Pt(l.Left, l.Top)
	out := make([]geometry.Point, len(l.Brush.Points))
	for i, p := range l.Brush.Points {
		out[i] = origin.Add(p)
	}
	return out
}

// Moved reports whether the layer was dragged since its last press.
func (l *Layer) Moved() bool {
	switch {
	case l.Text != nil:
		return l.Text.Moved
	case l.Brush != nil:
		return l.Brush.Moved
	}
	return false
}

// SetMoved records whether a drag moved the layer. Stickers keep no flag.
func (l *Layer) SetMoved(v bool) {
	switch {
	case l.Text != nil:
		l.Text.Moved = v
	case l.Brush != nil:
		l.Brush.Moved = v
	}
}

var errPayload = errors.New("payload does not match kind")

func (l *Layer) check() error {
	var ok bool
	switch l.Kind {
	case KindText:
		ok = l.Text != nil && l.Brush == nil && l.Sticker == nil
		if ok && (l.Text.Cursor < 0 || l.Text.Cursor > RuneLen(l.Text.Text)) {
			return fmt.Errorf("cursor %d outside text of %d runes", l.Text.Cursor, RuneLen(l.Text.Text))
		}
	case KindBrush:
		ok = l.Brush != nil && l.Text == nil && l.Sticker == nil
	case KindSticker:
		ok = l.Sticker != nil && l.Text == nil && l.Brush == nil
	}
	if !ok {
		return fmt.Errorf("%s layer: %w", l.Kind, errPayload)
	}
	return nil
}

// StrokeBounds returns the tight box of a brush stroke grown by half the
// stroke size on every side, in canvas coordinates.
func (l *Layer) StrokeBounds() (geometry.Box, bool) {
	min, max, ok := geometry.Bounds(l.Absolute())
	if !ok {
		return geometry.Box{}, false
	}
	return geometry.Box{
		Left:   min.X - l.Size/2,
		Top:    min.Y - l.Size/2,
		Width:  max.X - min.X + l.Size,
		Height: max.Y - min.Y + l.Size,
		Angle:  l.Angle,
	}, true
}

// FitStroke moves the box of a brush layer onto its stroke bounds and
// rebases the points so their canvas positions do not change.
func (l *Layer) FitStroke() {
	box, ok := l.StrokeBounds()
	if !ok {
		return
	}
	shift := geometry.Pt(l.Left-box.Left, l.Top-box.Top)
	for i, p := range l.Brush.Points {
		l.Brush.Points[i] = p.Add(shift)
	}
	l.Box = box
}
