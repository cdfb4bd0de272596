package history

import (
	"reflect"
	"testing"

	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

func withText(st *scene.State, s string) *scene.State {
	out := st.Clone()
	l := scene.NewText(geometry.Pt(10, 10), out.Text)
	l.Text.Text = s
	out.Add(l)
	return out
}

func TestUndoNeedsTwoEntries(t *testing.T) {
	h := New(scene.New(100, 100))
	if _, ok := h.Undo(); ok {
		t.Fatalf("undo succeeded with only the initial snapshot")
	}
	if _, ok := h.Redo(); ok {
		t.Fatalf("redo succeeded with an empty future")
	}
	if h.Len() != 1 || h.CanUndo() || h.CanRedo() {
		t.Fatalf("unexpected state len=%d undo=%v redo=%v", h.Len(), h.CanUndo(), h.CanRedo())
	}
}

func TestCommitThenUndoRestores(t *testing.T) {
	initial := scene.New(100, 100)
	h := New(initial)
	h.Commit(withText(initial, "a"))
	got, ok := h.Undo()
	if !ok {
		t.Fatalf("undo failed")
	}
	if !reflect.DeepEqual(got, initial) {
		t.Fatalf("unexpected scene after undo: %+v", got)
	}
}

func TestUndoRedoIdempotent(t *testing.T) {
	initial := scene.New(100, 100)
	h := New(initial)
	a := withText(initial, "a")
	b := withText(a, "b")
	h.Commit(a)
	h.Commit(b)

	if _, ok := h.Undo(); !ok {
		t.Fatalf("undo failed")
	}
	got, ok := h.Redo()
	if !ok {
		t.Fatalf("redo failed")
	}
	if !reflect.DeepEqual(got, b) {
		t.Fatalf("redo did not restore the scene")
	}
	if h.CanRedo() || h.Len() != 3 {
		t.Fatalf("unexpected stacks len=%d redo=%v", h.Len(), h.CanRedo())
	}
}

func TestCommitClearsFuture(t *testing.T) {
	initial := scene.New(100, 100)
	h := New(initial)
	h.Commit(withText(initial, "a"))
	h.Undo()
	if !h.CanRedo() {
		t.Fatalf("expected a redo step")
	}
	h.Commit(withText(initial, "b"))
	if h.CanRedo() {
		t.Fatalf("commit kept the redo stack")
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	st := scene.New(100, 100)
	h := New(st)
	st.SetFilter(scene.FilterBrightness, 40)
	if got := h.Current().Filter(scene.FilterBrightness); got != 0 {
		t.Fatalf("history shares memory with the live scene: %v", got)
	}
	cur := h.Current()
	cur.Selected = 5
	if h.Current().Selected != -1 {
		t.Fatalf("Current returned a shared snapshot")
	}
}

func TestLimitDropsOldest(t *testing.T) {
	st := scene.New(10, 10)
	h := New(st, WithLimit(3))
	for i := 0; i < 5; i++ {
		h.Commit(withText(st, "x"))
	}
	if h.Len() != 3 {
		t.Fatalf("unexpected len %d, want 3", h.Len())
	}
}

func TestDiff(t *testing.T) {
	a := scene.New(100, 100)
	b := a.Clone()
	b.Cropper.Mirrored = true

	lines, err := Diff(a, b)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	var ins, del int
	for _, l := range lines {
		switch l.Op {
		case Insert:
			ins++
			if l.Text != `    "mirrored": true` {
				t.Errorf("unexpected insert %q", l.Text)
			}
		case Delete:
			del++
		}
	}
	if ins != 1 || del != 1 {
		t.Fatalf("unexpected counts insert=%d delete=%d", ins, del)
	}

	same, err := Diff(a, a.Clone())
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if Changed(same) {
		t.Fatalf("identical snapshots reported a change")
	}
}
