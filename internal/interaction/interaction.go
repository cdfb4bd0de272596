// Package interaction holds the pointer controllers that turn a drag into
// scene mutations. Each controller is idle until Begin, streams Move calls
// into the scene and returns to idle on End or Cancel. A controller keeps no
// reference to the scene once it is idle.
package interaction

import (
	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

// Controller is the common surface of every pointer controller.
type Controller interface {
	Move(p geometry.Point)
	End(p geometry.Point)
	Cancel()
	Active() bool
}

// target addresses one layer of a scene for the lifetime of a drag.
type target struct {
	st  *scene.State
	idx int
}

func (t target) layer() *scene.Layer {
	if t.st == nil {
		return nil
	}
	return t.st.Layer(t.idx)
}
