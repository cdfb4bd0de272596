package editor

import (
	"golang.org/x/mobile/event/mouse"

	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/interaction"
	"github.com/example/inkwell/internal/render"
	"github.com/example/inkwell/internal/scene"
)

// Mouse handles a pointer event. Coordinates are canvas pixels for the layer
// tools and source pixels for the crop tool, which shows the whole source.
func (s *Session) Mouse(e mouse.Event) {
	if s.closed {
		return
	}
	if e.Button != mouse.ButtonLeft && e.Button != mouse.ButtonNone {
		return
	}
	p := geometry.Pt(float64(e.X), float64(e.Y))
	switch e.Direction {
	case mouse.DirPress:
		s.Press(p)
	case mouse.DirRelease:
		s.Release(p)
	case mouse.DirNone:
		s.Drag(p)
	}
}

// Drag forwards a pointer move to the active controller.
func (s *Session) Drag(p geometry.Point) {
	if s.active == nil || !s.active.Active() {
		return
	}
	s.active.Move(p)
	s.changed()
}

// Release ends the active controller.
func (s *Session) Release(p geometry.Point) {
	if s.active == nil {
		return
	}
	c := s.active
	s.active = nil
	if c.Active() {
		c.End(p)
	}
	s.changed()
}

// Press dispatches a pointer press according to the active tool.
func (s *Session) Press(p geometry.Point) {
	if s.closed {
		return
	}
	s.cancelActive()
	switch s.tool {
	case ToolCrop:
		s.pressCrop(p)
		return
	case ToolFilters:
		return
	}
	kind, _ := s.tool.layerKind()
	st := s.st

	if sel := st.SelectedLayer(); sel != nil && geometry.CornerHit(p, sel.Box, s.padding(), scene.CornerHitSize*s.Ratio()) {
		if s.rotation.Begin(st, st.Selected, p, s.Commit) {
			s.begin(&s.rotation)
		}
		return
	}

	hit := st.LayerAt(p, kind, s.padding())
	if s.tool == ToolText && st.Edited >= 0 {
		if hit == st.Edited {
			return
		}
		s.endEditing()
		s.changed()
		return
	}

	switch {
	case hit >= 0 && hit == st.Selected:
		s.startMove(hit, p)
	case hit < 0 && st.Selected >= 0:
		st.Selected = -1
		s.changed()
	case hit >= 0:
		st.Selected = hit
		s.adoptSettings(&st.Layers[hit])
		s.changed()
	default:
		s.create(p)
	}
}

func (s *Session) startMove(idx int, p geometry.Point) {
	done := func(bool) { s.Commit() }
	if s.tool == ToolText {
		done = func(moved bool) {
			if !moved {
				s.startEditing(idx)
			}
			s.Commit()
		}
	}
	if s.movement.Begin(s.st, idx, p, done) {
		s.begin(&s.movement)
	}
}

// adoptSettings makes the newly selected layer's style the tool default.
func (s *Session) adoptSettings(l *scene.Layer) {
	switch {
	case l.Text != nil:
		s.st.Text = scene.TextSettings{
			Color: l.Color,
			Font:  l.Text.Font,
			Size:  l.Size,
			Align: l.Text.Align,
			Frame: l.Text.Frame,
		}
	case l.Brush != nil:
		s.st.Brush = scene.BrushSettings{Style: l.Brush.Style, Color: l.Color, Size: l.Size}
		s.brushColor[l.Brush.Style] = l.Color
	}
}

// create adds a layer at p. Stickers are only added from the picker.
func (s *Session) create(p geometry.Point) {
	switch s.tool {
	case ToolText:
		l := scene.NewText(p, s.st.Text)
		render.FitText(&l)
		idx := s.st.Add(l)
		s.st.Selected = idx
		s.startEditing(idx)
		s.changed()
	case ToolBrush:
		idx := s.st.Add(scene.NewBrush(p, s.st.Brush))
		if s.drawing.Begin(s.st, idx, s.Commit) {
			s.begin(&s.drawing)
		}
		s.changed()
	}
}

func (s *Session) pressCrop(p geometry.Point) {
	if s.crop == nil {
		return
	}
	h := s.crop.HandleAt(p, scene.CornerHitSize*s.Ratio())
	if s.crop.Begin(h, p, func(r geometry.Rect) { s.st.Cropper.Rect = r }) {
		s.begin(s.crop)
	}
}

// DeleteSelected removes the selected layer when it is not being edited.
func (s *Session) DeleteSelected() bool {
	st := s.st
	if st.Selected < 0 || st.Selected == st.Edited {
		return false
	}
	s.cancelActive()
	st.Remove(st.Selected)
	st.Selected = -1
	s.Commit()
	s.changed()
	return true
}

var _ interaction.Controller = (*interaction.Crop)(nil)
