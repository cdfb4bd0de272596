package interaction

import (
	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

// Rotation turns a layer about its center following the pointer bearing.
type Rotation struct {
	target
	center  geometry.Point
	angle   float64
	bearing float64
	done    func()
	active  bool
}

// Begin records the layer angle and the bearing from its center to p.
func (r *Rotation) Begin(st *scene.State, idx int, p geometry.Point, done func()) bool {
	l := st.Layer(idx)
	if l == nil {
		return false
	}
	r.target = target{st, idx}
	r.center = l.Center()
	r.angle = l.Angle
	r.bearing = geometry.Bearing(r.center, p)
	r.done = done
	r.active = true
	return true
}

// Move sets the angle to the start angle plus the change in bearing.
func (r *Rotation) Move(p geometry.Point) {
	if !r.active {
		return
	}
	l := r.layer()
	if l == nil {
		r.Cancel()
		return
	}
	l.Angle = r.angle + geometry.Bearing(r.center, p) - r.bearing
}

// End finishes the rotation.
func (r *Rotation) End(geometry.Point) {
	if !r.active {
		return
	}
	done := r.done
	*r = Rotation{}
	if done != nil {
		done()
	}
}

// Cancel restores the start angle.
func (r *Rotation) Cancel() {
	if !r.active {
		return
	}
	if l := r.layer(); l != nil {
		l.Angle = r.angle
	}
	*r = Rotation{}
}

// Active reports whether a rotation is in progress.
func (r *Rotation) Active() bool { return r.active }
