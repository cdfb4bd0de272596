package editor

import (
	"math"

	"github.com/example/inkwell/internal/render"
	"github.com/example/inkwell/internal/scene"
)

// SetFilter sets a filter value and commits once the slider settles.
func (s *Session) SetFilter(kind scene.FilterKind, v float64) {
	if _, ok := scene.LookupFilter(kind); !ok {
		return
	}
	s.st.SetFilter(kind, v)
	s.changed()
	s.commitLater(FilterSettleDelay)
}

// ResetFilters clears every filter.
func (s *Session) ResetFilters() {
	if len(s.st.Filters) == 0 {
		return
	}
	s.st.Filters = map[scene.FilterKind]float64{}
	s.changed()
	s.Commit()
}

// SetCropFormat lays out a fresh crop rectangle for f.
func (s *Session) SetCropFormat(f scene.Format) {
	if s.crop == nil {
		s.rebuildCrop()
	}
	s.crop.SetFormat(f)
	s.storeCrop()
	s.changed()
	s.commitCrop()
}

// SetCropAngle rotates the source under the crop, in degrees. The angle is
// normalized to (-180, 180].
func (s *Session) SetCropAngle(deg float64) {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	s.st.Cropper.Angle = deg
	s.changed()
	if s.tool != ToolCrop {
		s.commitLater(SettleDelay)
	}
}

// RotateCrop turns the source a quarter turn counterclockwise.
func (s *Session) RotateCrop() {
	s.SetCropAngle(s.st.Cropper.Angle - 90)
}

// ToggleMirror flips the source horizontally.
func (s *Session) ToggleMirror() {
	s.st.Cropper.Mirrored = !s.st.Cropper.Mirrored
	s.changed()
	s.commitCrop()
}

// commitCrop commits crop changes made outside the crop tool. Inside it they
// are committed when the tool is left.
func (s *Session) commitCrop() {
	if s.tool != ToolCrop {
		s.Commit()
	}
}

// selected returns the selected layer when it has kind.
func (s *Session) selected(kind scene.Kind) *scene.Layer {
	l := s.st.SelectedLayer()
	if l == nil || l.Kind != kind {
		return nil
	}
	return l
}

// SetTextColor sets the text color default and recolors the selected text.
func (s *Session) SetTextColor(c scene.Color) {
	s.st.Text.Color = c
	if l := s.selected(scene.KindText); l != nil {
		l.Color = c
		s.Commit()
		s.changed()
	}
}

// SetTextFont sets the font default and refits the selected text.
func (s *Session) SetTextFont(f scene.Font) {
	s.st.Text.Font = f
	if l := s.selected(scene.KindText); l != nil {
		l.Text.Font = f
		render.FitText(l)
		s.Commit()
		s.changed()
	}
}

// SetTextAlign sets the alignment default and realigns the selected text.
func (s *Session) SetTextAlign(a scene.Align) {
	s.st.Text.Align = a
	if l := s.selected(scene.KindText); l != nil {
		l.Text.Align = a
		s.Commit()
		s.changed()
	}
}

// SetTextFrame sets the frame default and reframes the selected text.
func (s *Session) SetTextFrame(f scene.Frame) {
	s.st.Text.Frame = f
	if l := s.selected(scene.KindText); l != nil {
		l.Text.Frame = f
		s.Commit()
		s.changed()
	}
}

// SetTextSize sets the font size default. Resizing the selected text commits
// once the slider settles.
func (s *Session) SetTextSize(v float64) {
	v = scene.ClampFontSize(v)
	s.st.Text.Size = v
	if l := s.selected(scene.KindText); l != nil {
		l.Size = v
		render.FitText(l)
		s.changed()
		s.commitLater(SettleDelay)
	}
}

// SetBrushStyle switches style. The color becomes the one last used with
// that style, starting from its default.
func (s *Session) SetBrushStyle(style scene.BrushStyle) {
	c, ok := s.brushColor[style]
	if !ok {
		c = style.DefaultColor()
	}
	s.st.Brush.Style = style
	s.st.Brush.Color = c
	if l := s.selected(scene.KindBrush); l != nil {
		l.Brush.Style = style
		l.Color = c
		s.Commit()
		s.changed()
	}
}

// SetBrushColor sets the color of the current style.
func (s *Session) SetBrushColor(c scene.Color) {
	s.st.Brush.Color = c
	s.brushColor[s.st.Brush.Style] = c
	if l := s.selected(scene.KindBrush); l != nil {
		l.Color = c
		s.Commit()
		s.changed()
	}
}

// SetBrushSize sets the stroke size. Resizing the selected stroke commits
// once the slider settles.
func (s *Session) SetBrushSize(v float64) {
	v = scene.ClampBrushSize(v)
	s.st.Brush.Size = v
	if l := s.selected(scene.KindBrush); l != nil {
		l.Size = v
		l.FitStroke()
		s.changed()
		s.commitLater(SettleDelay)
	}
}
