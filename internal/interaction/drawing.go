package interaction

import (
	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

// Drawing appends pointer positions to a brush layer.
type Drawing struct {
	target
	anchor geometry.Point
	done   func()
	active bool
}

// Begin starts a stroke on brush layer idx. Points are recorded relative to
// the layer origin at the time of the press.
func (d *Drawing) Begin(st *scene.State, idx int, done func()) bool {
	l := st.Layer(idx)
	if l == nil || l.Brush == nil {
		return false
	}
	d.target = target{st, idx}
	d.anchor = geometry.Pt(l.Left, l.Top)
	d.done = done
	d.active = true
	return true
}

// Move records another point of the stroke.
func (d *Drawing) Move(p geometry.Point) {
	if !d.active {
		return
	}
	l := d.layer()
	if l == nil || l.Brush == nil {
		d.Cancel()
		return
	}
	l.Brush.Drawing = true
	l.Brush.Points = append(l.Brush.Points, p.Sub(d.anchor))
}

// End fits the layer box to the stroke, rebases the points onto it and
// calls done.
func (d *Drawing) End(geometry.Point) {
	if !d.active {
		return
	}
	if l := d.layer(); l != nil && l.Brush != nil {
		l.Brush.Drawing = false
		l.FitStroke()
	}
	done := d.done
	*d = Drawing{}
	if done != nil {
		done()
	}
}

// Cancel stops recording. The points collected so far stay on the layer and
// the box is fitted to them.
func (d *Drawing) Cancel() {
	if !d.active {
		return
	}
	if l := d.layer(); l != nil && l.Brush != nil {
		l.Brush.Drawing = false
		l.FitStroke()
	}
	*d = Drawing{}
}

// Active reports whether a stroke is being drawn.
func (d *Drawing) Active() bool { return d.active }
