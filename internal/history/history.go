// Package history keeps linear undo and redo stacks of scene snapshots.
package history

import "github.com/example/inkwell/internal/scene"

// History holds the past and future snapshots. The last entry of past is the
// current committed scene; past is never empty.
type History struct {
	past   []*scene.State
	future []*scene.State
	limit  int
}

// Option configures a History.
type Option func(*History)

// WithLimit bounds the number of past snapshots kept. The initial snapshot is
// dropped first once the limit is exceeded. Zero means unbounded.
func WithLimit(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.limit = n
		}
	}
}

// New starts a history whose only entry is a copy of initial.
func New(initial *scene.State, opts ...Option) *History {
	h := &History{past: []*scene.State{initial.Clone()}}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Commit pushes a copy of st and forgets every redo step.
func (h *History) Commit(st *scene.State) {
	h.past = append(h.past, st.Clone())
	h.future = nil
	if h.limit > 0 && len(h.past) > h.limit {
		h.past = append([]*scene.State(nil), h.past[len(h.past)-h.limit:]...)
	}
}

// Undo moves the top snapshot to the redo stack and returns a copy of the new
// top. It reports false when only the initial snapshot remains.
func (h *History) Undo() (*scene.State, bool) {
	if len(h.past) <= 1 {
		return nil, false
	}
	top := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, top)
	return h.past[len(h.past)-1].Clone(), true
}

// Redo reapplies the most recently undone snapshot and returns a copy of it.
func (h *History) Redo() (*scene.State, bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	top := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, top)
	return top.Clone(), true
}

// Current returns a copy of the latest committed snapshot.
func (h *History) Current() *scene.State { return h.past[len(h.past)-1].Clone() }

// Snapshot returns a copy of past entry i, oldest first.
func (h *History) Snapshot(i int) (*scene.State, bool) {
	if i < 0 || i >= len(h.past) {
		return nil, false
	}
	return h.past[i].Clone(), true
}

func (h *History) CanUndo() bool { return len(h.past) > 1 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Len returns the number of past snapshots including the initial one.
func (h *History) Len() int { return len(h.past) }
