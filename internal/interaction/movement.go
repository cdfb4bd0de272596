package interaction

import (
	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

// Movement drags a layer by its box origin.
type Movement struct {
	target
	start  geometry.Point
	origin geometry.Point
	done   func(moved bool)
	active bool
}

// Begin starts dragging layer idx from pointer position p. done receives
// whether any Move happened before the release.
func (m *Movement) Begin(st *scene.State, idx int, p geometry.Point, done func(moved bool)) bool {
	l := st.Layer(idx)
	if l == nil {
		return false
	}
	m.target = target{st, idx}
	m.start = p
	m.origin = geometry.Pt(l.Left, l.Top)
	m.done = done
	m.active = true
	l.SetMoved(false)
	return true
}

// Move places the layer so it keeps its offset from the pointer.
func (m *Movement) Move(p geometry.Point) {
	if !m.active {
		return
	}
	l := m.layer()
	if l == nil {
		m.Cancel()
		return
	}
	pos := p.Sub(m.start.Sub(m.origin))
	l.Left, l.Top = pos.X, pos.Y
	l.SetMoved(true)
}

// End finishes the drag and reports whether the layer moved.
func (m *Movement) End(geometry.Point) {
	if !m.active {
		return
	}
	moved := false
	if l := m.layer(); l != nil {
		moved = l.Moved()
		l.SetMoved(false)
	}
	done := m.done
	m.reset()
	if done != nil {
		done(moved)
	}
}

// Cancel puts the layer back where it started without calling done.
func (m *Movement) Cancel() {
	if !m.active {
		return
	}
	if l := m.layer(); l != nil {
		l.Left, l.Top = m.origin.X, m.origin.Y
		l.SetMoved(false)
	}
	m.reset()
}

// Active reports whether a drag is in progress.
func (m *Movement) Active() bool { return m.active }

func (m *Movement) reset() { *m = Movement{} }
