package scene

import (
	"reflect"
	"testing"

	"github.com/example/inkwell/internal/geometry"
)

func TestNewDefaults(t *testing.T) {
	s := New(400, 300)
	if s.Selected != -1 || s.Edited != -1 {
		t.Fatalf("unexpected cursors %d %d", s.Selected, s.Edited)
	}
	if s.Cropper.Width != 400 || s.Cropper.Height != 300 || s.Cropper.Format != FormatOriginal {
		t.Fatalf("unexpected cropper %+v", s.Cropper)
	}
	if s.Text.Size != DefaultFontSize || s.Brush.Size != DefaultBrushSize {
		t.Fatalf("unexpected tool defaults %+v %+v", s.Text, s.Brush)
	}
	if err := s.Check(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := New(100, 100)
	s.SetFilter(FilterContrast, 20)
	s.Add(NewText(geometry.Pt(1, 2), s.Text))
	s.Add(NewBrush(geometry.Pt(3, 4), s.Brush))
	s.Add(NewSticker("star", geometry.Box{Width: 10, Height: 10}))

	c := s.Clone()
	if !reflect.DeepEqual(s, c) {
		t.Fatalf("clone differs from source")
	}
	c.Filters[FilterContrast] = 50
	c.Layers[0].Text.Text = "changed"
	c.Layers[1].Brush.Points[0].X = 99
	c.Layers[2].Sticker.Key = "moon"
	c.Layers[0].Left = 77

	if s.Filter(FilterContrast) != 20 {
		t.Errorf("filters shared")
	}
	if s.Layers[0].Text.Text != "" || s.Layers[0].Left != 1 {
		t.Errorf("text layer shared")
	}
	if s.Layers[1].Brush.Points[0].X != 0 {
		t.Errorf("brush points shared")
	}
	if s.Layers[2].Sticker.Key != "star" {
		t.Errorf("sticker shared")
	}
}

func TestRemoveShiftsCursors(t *testing.T) {
	tests := []struct {
		name                 string
		selected, edited     int
		remove               int
		wantSelected, wantEd int
	}{
		{"removed selected", 1, -1, 1, -1, -1},
		{"after removed", 2, 2, 0, 1, 1},
		{"before removed", 0, -1, 2, 0, -1},
		{"edited removed", -1, 1, 1, -1, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := New(100, 100)
			for i := 0; i < 3; i++ {
				s.Add(NewText(geometry.Pt(float64(i), 0), s.Text))
			}
			s.Selected, s.Edited = tc.selected, tc.edited
			s.Remove(tc.remove)
			if len(s.Layers) != 2 {
				t.Fatalf("unexpected layer count %d", len(s.Layers))
			}
			if s.Selected != tc.wantSelected || s.Edited != tc.wantEd {
				t.Fatalf("unexpected cursors %d,%d want %d,%d", s.Selected, s.Edited, tc.wantSelected, tc.wantEd)
			}
			if err := s.Check(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCheckReportsDefects(t *testing.T) {
	s := New(100, 100)
	s.Add(NewBrush(geometry.Pt(0, 0), s.Brush))

	s.Selected = 3
	if err := s.Check(); err == nil {
		t.Errorf("expected dangling selection error")
	}
	s.Selected = -1
	s.Edited = 0
	if err := s.Check(); err == nil {
		t.Errorf("expected edited non-text error")
	}
	s.Edited = -1
	s.Layers[0].Text = &TextData{}
	if err := s.Check(); err == nil {
		t.Errorf("expected payload mismatch error")
	}
}

func TestLayerAtFiltersByKind(t *testing.T) {
	s := New(400, 400)
	text := NewText(geometry.Pt(10, 10), s.Text)
	text.Width, text.Height = 100, 100
	brush := NewBrush(geometry.Pt(10, 10), s.Brush)
	brush.Width, brush.Height = 100, 100
	s.Add(text)
	s.Add(brush)

	if got := s.LayerAt(geometry.Pt(50, 50), KindText, BorderPadding); got != 0 {
		t.Fatalf("unexpected text index %d, want 0", got)
	}
	if got := s.LayerAt(geometry.Pt(50, 50), KindBrush, BorderPadding); got != 1 {
		t.Fatalf("unexpected brush index %d, want 1", got)
	}
	if got := s.LayerAt(geometry.Pt(50, 50), KindSticker, BorderPadding); got != -1 {
		t.Fatalf("unexpected sticker index %d, want -1", got)
	}
}

func TestSetFilterClamps(t *testing.T) {
	s := New(10, 10)
	s.SetFilter(FilterBrightness, 250)
	if got := s.Filter(FilterBrightness); got != 100 {
		t.Fatalf("unexpected brightness %v, want 100", got)
	}
	s.SetFilter(FilterFade, -5)
	if _, ok := s.Filters[FilterFade]; ok {
		t.Fatalf("zero fade should be removed")
	}
	s.SetFilter("blur", 10)
	if len(s.Filters) != 1 {
		t.Fatalf("unknown filter stored: %v", s.Filters)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in    string
		want  Format
		ratio float64
	}{
		{"square", FormatSquare, 1},
		{"16:9", "16:9", 16.0 / 9},
		{" Free ", FormatFree, 0},
		{"original", FormatOriginal, 0},
	}
	for _, tc := range tests {
		got, err := ParseFormat(tc.in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if _, ratio := got.Layout(); ratio != tc.ratio {
			t.Fatalf("%q ratio %v, want %v", got, ratio, tc.ratio)
		}
	}
	if _, err := ParseFormat("2:1"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestColorRoundTrip(t *testing.T) {
	c, err := ParseHex("#fe4438")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if HexColor(c) != ColorRed {
		t.Fatalf("unexpected color %v, want %v", HexColor(c), ColorRed)
	}
	if got := Color("nope").RGBA(); got.R != 255 || got.A != 255 {
		t.Fatalf("unexpected fallback %v", got)
	}
}

func TestStrokeBounds(t *testing.T) {
	l := NewBrush(geometry.Pt(100, 100), BrushSettings{Style: BrushPen, Size: 10})
	l.Brush.Points = []geometry.Point{{X: 0, Y: 0}, {X: -20, Y: 30}, {X: 40, Y: 5}}
	b, ok := l.StrokeBounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	want := geometry.Box{Left: 75, Top: 95, Width: 70, Height: 40}
	if b != want {
		t.Fatalf("unexpected box %+v, want %+v", b, want)
	}
}

func TestFitStrokeKeepsAbsolutePositions(t *testing.T) {
	l := NewBrush(geometry.Pt(100, 100), BrushSettings{Style: BrushPen, Size: 8})
	l.Brush.Points = []geometry.Point{{X: 0, Y: 0}, {X: -33.5, Y: 12}, {X: 17, Y: -40.25}, {X: 5, Y: 5}}
	before := l.Absolute()
	l.FitStroke()
	after := l.Absolute()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("point %d moved from %v to %v", i, before[i], after[i])
		}
	}
	if l.Left != 100-33.5-4 || l.Top != 100-40.25-4 {
		t.Fatalf("unexpected origin (%v,%v)", l.Left, l.Top)
	}
	for _, p := range l.Brush.Points {
		if p.X < 4 || p.Y < 4 {
			t.Fatalf("point %v not rebased inside the box", p)
		}
	}
}
