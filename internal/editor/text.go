package editor

import (
	"strings"
	"unicode"

	"golang.org/x/mobile/event/key"

	"github.com/example/inkwell/internal/render"
	"github.com/example/inkwell/internal/scene"
)

// Key handles a keyboard event. While a text layer is edited every key goes
// to it; otherwise Delete and Backspace remove the selected layer and the
// usual shortcuts undo and redo.
func (s *Session) Key(e key.Event) {
	if s.closed || e.Direction == key.DirRelease {
		return
	}
	if l := s.st.EditedLayer(); l != nil && l.Text != nil {
		s.editKey(l, e)
		return
	}
	ctrl := e.Modifiers&(key.ModControl|key.ModMeta) != 0
	switch {
	case ctrl && e.Code == key.CodeZ && e.Modifiers&key.ModShift != 0, ctrl && e.Code == key.CodeY:
		s.Redo()
	case ctrl && e.Code == key.CodeZ:
		s.Undo()
	case e.Code == key.CodeDeleteBackspace || e.Code == key.CodeDeleteForward:
		s.DeleteSelected()
	case e.Code == key.CodeEscape:
		if s.st.Selected >= 0 {
			s.st.Selected = -1
			s.changed()
		}
	}
}

func (s *Session) editKey(l *scene.Layer, e key.Event) {
	t := l.Text
	switch e.Code {
	case key.CodeDeleteBackspace:
		t.Backspace()
	case key.CodeLeftArrow:
		t.Left()
	case key.CodeRightArrow:
		t.Right()
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		t.NewLine()
	case key.CodeEscape:
		s.endEditing()
		s.changed()
		return
	default:
		if e.Modifiers&(key.ModControl|key.ModMeta) != 0 || e.Rune < 0 || !unicode.IsPrint(e.Rune) {
			return
		}
		t.Insert(string(e.Rune))
	}
	render.FitText(l)
	s.changed()
}

// TypeText inserts s into the edited layer, treating newlines as line
// breaks. It reports false when nothing is being edited.
func (s *Session) TypeText(text string) bool {
	l := s.st.EditedLayer()
	if l == nil || l.Text == nil {
		return false
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			l.Text.NewLine()
		}
		l.Text.Insert(line)
	}
	render.FitText(l)
	s.changed()
	return true
}

// startEditing enters text editing on layer idx and starts the caret blink.
func (s *Session) startEditing(idx int) {
	l := s.st.Layer(idx)
	if l == nil || l.Text == nil {
		return
	}
	s.st.Edited = idx
	s.st.Selected = idx
	l.Text.ShowCursor = true
	s.scheduleBlink()
}

// endEditing leaves text editing. An empty layer is removed along with the
// selection; anything else is committed.
func (s *Session) endEditing() {
	s.stopBlink()
	st := s.st
	l := st.EditedLayer()
	if l == nil {
		st.Edited = -1
		return
	}
	l.Text.ShowCursor = false
	idx := st.Edited
	st.Edited = -1
	if strings.TrimSpace(strings.ReplaceAll(l.Text.Text, scene.LineBreak, "")) == "" {
		st.Remove(idx)
		st.Selected = -1
	}
	s.Commit()
}

func (s *Session) scheduleBlink() {
	s.stopBlink()
	var t Timer
	t = s.sched.AfterFunc(BlinkInterval, func() {
		if s.blink != t {
			return
		}
		s.blink = nil
		l := s.st.EditedLayer()
		if l == nil || l.Text == nil {
			return
		}
		l.Text.ShowCursor = !l.Text.ShowCursor
		s.changed()
		s.scheduleBlink()
	})
	s.blink = t
}

func (s *Session) stopBlink() {
	if s.blink != nil {
		s.blink.Stop()
		s.blink = nil
	}
}
