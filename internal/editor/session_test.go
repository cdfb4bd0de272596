package editor

import (
	"image"
	"math"
	"testing"
	"time"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/render"
	"github.com/example/inkwell/internal/scene"
)

type fakeTimer struct {
	at      time.Duration
	task    Task
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

// fakeScheduler fires timers in order as the test advances its clock.
type fakeScheduler struct {
	now    time.Duration
	timers []*fakeTimer
}

func (f *fakeScheduler) AfterFunc(d time.Duration, t Task) Timer {
	ft := &fakeTimer{at: f.now + d, task: t}
	f.timers = append(f.timers, ft)
	return ft
}

func (f *fakeScheduler) advance(s *Session, d time.Duration) {
	end := f.now + d
	for {
		var next *fakeTimer
		for _, t := range f.timers {
			if t.stopped || t.fired || t.at > end {
				continue
			}
			if next == nil || t.at < next.at {
				next = t
			}
		}
		if next == nil {
			break
		}
		f.now = next.at
		next.fired = true
		s.Tick(next.task)
	}
	f.now = end
}

func newSession(t *testing.T, opts ...Option) (*Session, *fakeScheduler) {
	t.Helper()
	sched := &fakeScheduler{}
	s, err := New(image.NewRGBA(image.Rect(0, 0, 400, 300)), append([]Option{WithScheduler(sched)}, opts...)...)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s, sched
}

func click(s *Session, x, y float64) {
	s.Press(geometry.Pt(x, y))
	s.Release(geometry.Pt(x, y))
}

func checkScene(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Scene().Check(); err != nil {
		t.Fatalf("scene invariant broken: %v", err)
	}
}

func square(n int) image.Image { return image.NewRGBA(image.Rect(0, 0, n, n)) }

func TestNewRequiresSource(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}

func TestNewTextAndTyping(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolText))
	s.Mouse(mouse.Event{X: 50, Y: 50, Button: mouse.ButtonLeft, Direction: mouse.DirPress})
	s.Mouse(mouse.Event{X: 50, Y: 50, Button: mouse.ButtonLeft, Direction: mouse.DirRelease})

	st := s.Scene()
	if len(st.Layers) != 1 || st.Edited != 0 || st.Selected != 0 {
		t.Fatalf("unexpected scene layers=%d edited=%d selected=%d", len(st.Layers), st.Edited, st.Selected)
	}
	l := &st.Layers[0]
	if l.Left != 50 || l.Top != 50 || l.Text.Cursor != 0 || l.Size != scene.DefaultFontSize {
		t.Fatalf("unexpected layer %+v cursor=%d", l.Box, l.Text.Cursor)
	}

	s.Key(key.Event{Rune: 'h', Code: key.CodeH, Direction: key.DirPress})
	s.Key(key.Event{Rune: 'i', Code: key.CodeI, Direction: key.DirPress})
	s.Key(key.Event{Rune: 'i', Code: key.CodeI, Direction: key.DirRelease})

	if l.Text.Text != "hi" || l.Text.Cursor != 2 {
		t.Fatalf("unexpected text %q cursor %d", l.Text.Text, l.Text.Cursor)
	}
	if want := render.StringWidth(scene.FontRoboto, 24, "hi"); l.Width != want {
		t.Fatalf("unexpected width %v, want %v", l.Width, want)
	}
	if want := 24 * scene.LineHeight; math.Abs(l.Height-want) > 1e-9 {
		t.Fatalf("unexpected height %v, want %v", l.Height, want)
	}
	checkScene(t, s)
}

func TestTextKeys(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolText))
	click(s, 20, 20)
	s.TypeText("ab")
	s.Key(key.Event{Code: key.CodeDeleteBackspace, Direction: key.DirPress})
	s.Key(key.Event{Code: key.CodeLeftArrow, Direction: key.DirPress})
	s.Key(key.Event{Rune: 'c', Code: key.CodeC, Direction: key.DirPress})
	l := s.Scene().EditedLayer()
	if l.Text.Text != "ca" || l.Text.Cursor != 1 {
		t.Fatalf("unexpected text %q cursor %d", l.Text.Text, l.Text.Cursor)
	}
	s.Key(key.Event{Code: key.CodeReturnEnter, Direction: key.DirPress})
	if l.Text.Text != "c/na" || l.Text.Cursor != 3 {
		t.Fatalf("unexpected text %q cursor %d", l.Text.Text, l.Text.Cursor)
	}
	if want := 2 * 24 * scene.LineHeight; math.Abs(l.Height-want) > 1e-9 {
		t.Fatalf("box not refit: height %v, want %v", l.Height, want)
	}
}

func TestClickAwayRemovesEmptyText(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolText))
	before := s.History().Len()
	click(s, 50, 50)
	click(s, 300, 250)
	st := s.Scene()
	if len(st.Layers) != 0 || st.Selected != -1 || st.Edited != -1 {
		t.Fatalf("empty layer kept: layers=%d selected=%d edited=%d", len(st.Layers), st.Selected, st.Edited)
	}
	if s.History().Len() != before+1 {
		t.Fatalf("expected one commit, got %d", s.History().Len()-before)
	}
	checkScene(t, s)
}

func TestClickAwayCommitsText(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolText))
	click(s, 50, 50)
	s.TypeText("note")
	click(s, 300, 250)
	st := s.Scene()
	if len(st.Layers) != 1 || st.Edited != -1 {
		t.Fatalf("unexpected scene layers=%d edited=%d", len(st.Layers), st.Edited)
	}
	cur := s.History().Current()
	if len(cur.Layers) != 1 || cur.Layers[0].Text.Text != "note" {
		t.Fatalf("text not committed")
	}

	// the text stays selected; pressing it without moving edits it again
	if st.Selected != 0 {
		t.Fatalf("unexpected selection %d", st.Selected)
	}
	click(s, 55, 55)
	if st.Edited != 0 {
		t.Fatalf("expected editing after click on selected text")
	}
}

func TestDragSelectedTextDoesNotEdit(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolText))
	click(s, 50, 50)
	s.TypeText("note")
	click(s, 300, 250)

	s.Press(geometry.Pt(55, 55))
	s.Drag(geometry.Pt(75, 85))
	s.Release(geometry.Pt(75, 85))
	l := s.Scene().Layers[0]
	if l.Left != 70 || l.Top != 80 {
		t.Fatalf("unexpected position (%v,%v)", l.Left, l.Top)
	}
	if s.Editing() {
		t.Fatalf("drag entered editing")
	}
}

func TestBlinkOnlyWhileEditing(t *testing.T) {
	changes := 0
	s, sched := newSession(t, WithTool(ToolText), WithOnChange(func() { changes++ }))
	click(s, 50, 50)
	l := s.Scene().EditedLayer()
	if !l.Text.ShowCursor {
		t.Fatalf("caret hidden on entry")
	}
	sched.advance(s, BlinkInterval)
	if l.Text.ShowCursor {
		t.Fatalf("caret did not blink")
	}
	sched.advance(s, BlinkInterval)
	if !l.Text.ShowCursor {
		t.Fatalf("caret did not blink back")
	}

	s.TypeText("x")
	s.SetTool(ToolFilters)
	before := changes
	sched.advance(s, 10*BlinkInterval)
	if changes != before {
		t.Fatalf("blink kept running after editing ended")
	}
}

func TestBrushStrokeCommitsOnRelease(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolBrush))
	before := s.History().Len()
	s.Press(geometry.Pt(100, 100))
	s.Drag(geometry.Pt(120, 110))
	s.Drag(geometry.Pt(140, 130))
	if s.History().Len() != before {
		t.Fatalf("stroke committed before release")
	}
	s.Release(geometry.Pt(140, 130))
	if s.History().Len() != before+1 {
		t.Fatalf("stroke not committed once")
	}
	l := s.Scene().Layers[0]
	want := []geometry.Point{{X: 100, Y: 100}, {X: 120, Y: 110}, {X: 140, Y: 130}}
	for i, p := range l.Absolute() {
		if p != want[i] {
			t.Fatalf("point %d at %v, want %v", i, p, want[i])
		}
	}
	if l.Left != 96 || l.Top != 96 || l.Width != 48 || l.Height != 38 {
		t.Fatalf("unexpected box %+v", l.Box)
	}
	if s.Scene().Selected != -1 {
		t.Fatalf("new stroke should not be selected")
	}
}

func TestStickerDispatch(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolStickers))
	click(s, 10, 10)
	if len(s.Scene().Layers) != 0 {
		t.Fatalf("sticker tool created a layer on click")
	}

	s.AddSticker("a", square(50))
	s.AddSticker("b", square(50))
	st := s.Scene()
	if b := st.Layers[0].Box; b.Left != 150 || b.Top != 100 || b.Width != 100 || b.Height != 100 {
		t.Fatalf("unexpected sticker box %+v", b)
	}

	click(s, 200, 150)
	if st.Selected != 1 {
		t.Fatalf("overlap selected %d, want the frontmost 1", st.Selected)
	}

	s.Press(geometry.Pt(200, 150))
	s.Drag(geometry.Pt(210, 160))
	s.Release(geometry.Pt(210, 160))
	if b := st.Layers[1].Box; b.Left != 160 || b.Top != 110 {
		t.Fatalf("sticker not moved: %+v", b)
	}

	// top-left selection handle of the moved sticker
	s.Press(geometry.Pt(160-16, 110-16))
	s.Drag(geometry.Pt(210+100, 160))
	s.Release(geometry.Pt(210+100, 160))
	if st.Layers[1].Angle == 0 {
		t.Fatalf("corner press did not rotate")
	}

	click(s, 10, 10)
	if st.Selected != -1 {
		t.Fatalf("click on empty area kept the selection")
	}
	checkScene(t, s)
}

func TestSelectAdoptsSettings(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolBrush))
	s.SetBrushStyle(scene.BrushNeon)
	s.Press(geometry.Pt(100, 100))
	s.Drag(geometry.Pt(150, 100))
	s.Release(geometry.Pt(150, 100))
	s.SetBrushStyle(scene.BrushPen)
	s.SetBrushSize(20)

	click(s, 125, 100)
	st := s.Scene()
	if st.Selected != 0 {
		t.Fatalf("stroke not selected")
	}
	if st.Brush.Style != scene.BrushNeon || st.Brush.Color != scene.ColorLightBlue || st.Brush.Size != scene.DefaultBrushSize {
		t.Fatalf("settings not adopted: %+v", st.Brush)
	}
}

func TestDeleteSelected(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolStickers))
	s.AddSticker("a", square(10))
	click(s, 200, 150)
	before := s.History().Len()
	s.Key(key.Event{Code: key.CodeDeleteForward, Direction: key.DirPress})
	if len(s.Scene().Layers) != 0 || s.Scene().Selected != -1 {
		t.Fatalf("layer not deleted")
	}
	if s.History().Len() != before+1 {
		t.Fatalf("delete not committed")
	}
	if s.DeleteSelected() {
		t.Fatalf("delete without selection succeeded")
	}
}

func TestToolSwitchClearsSelection(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolStickers))
	s.AddSticker("a", square(10))
	click(s, 200, 150)
	s.SetTool(ToolBrush)
	if s.Scene().Selected != -1 {
		t.Fatalf("selection survived tool switch")
	}
	if s.Tool() != ToolBrush {
		t.Fatalf("unexpected tool %v", s.Tool())
	}
}

func TestFilterCommitsOnceSettled(t *testing.T) {
	s, sched := newSession(t)
	before := s.History().Len()
	for _, v := range []float64{10, 20, 30} {
		s.SetFilter(scene.FilterBrightness, v)
		sched.advance(s, 100*time.Millisecond)
	}
	if s.History().Len() != before {
		t.Fatalf("slider committed while moving")
	}
	sched.advance(s, FilterSettleDelay)
	if s.History().Len() != before+1 {
		t.Fatalf("unexpected commits %d, want 1", s.History().Len()-before)
	}
	if got := s.History().Current().Filter(scene.FilterBrightness); got != 30 {
		t.Fatalf("committed %v, want 30", got)
	}
}

func TestTextSizeSettles(t *testing.T) {
	s, sched := newSession(t, WithTool(ToolText))
	click(s, 50, 50)
	s.TypeText("hi")
	click(s, 300, 250)
	before := s.History().Len()

	s.SetTextSize(48)
	s.SetTextSize(200)
	l := s.Scene().Layers[0]
	if l.Size != scene.MaxFontSize {
		t.Fatalf("size not clamped: %v", l.Size)
	}
	if want := render.StringWidth(scene.FontRoboto, scene.MaxFontSize, "hi"); l.Width != want {
		t.Fatalf("box not refit: %v, want %v", l.Width, want)
	}
	sched.advance(s, SettleDelay)
	if s.History().Len() != before+1 {
		t.Fatalf("unexpected commits %d", s.History().Len()-before)
	}
}

func TestFlushSettlesPendingCommit(t *testing.T) {
	s, _ := newSession(t)
	s.SetFilter(scene.FilterContrast, -40)
	s.Flush()
	if got := s.History().Current().Filter(scene.FilterContrast); got != -40 {
		t.Fatalf("flush did not commit: %v", got)
	}
}

func TestUndoRedo(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolStickers))
	s.AddSticker("a", square(10))
	if !s.Undo() || len(s.Scene().Layers) != 0 {
		t.Fatalf("undo did not remove the sticker")
	}
	if s.Undo() {
		t.Fatalf("undo past the initial scene")
	}
	if !s.Redo() || len(s.Scene().Layers) != 1 {
		t.Fatalf("redo did not restore the sticker")
	}
}

func TestCropFormatAndExport(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolCrop))
	before := s.History().Len()
	s.SetCropFormat(scene.FormatSquare)
	r := s.Scene().Cropper.Rect
	if r.Width != 300 || r.Height != 300 || r.Left != 50 || r.Top != 0 {
		t.Fatalf("unexpected crop %+v", r)
	}
	if s.History().Len() != before {
		t.Fatalf("crop committed inside the crop tool")
	}
	s.SetTool(ToolFilters)
	if s.History().Len() != before+1 {
		t.Fatalf("leaving crop did not commit")
	}
	out := s.Export()
	if b := out.Bounds(); b.Dx() != 300 || b.Dy() != 300 {
		t.Fatalf("unexpected export size %v", b)
	}
}

func TestCropDragUpdatesScene(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolCrop))
	s.SetCropFormat(scene.FormatFree)
	r := s.Scene().Cropper.Rect
	if r != (geometry.Rect{Left: 30, Top: 30, Width: 340, Height: 240}) {
		t.Fatalf("unexpected free rect %+v", r)
	}
	s.Press(geometry.Pt(370, 270))
	s.Drag(geometry.Pt(300, 200))
	s.Release(geometry.Pt(300, 200))
	r = s.Scene().Cropper.Rect
	if r.Width != 270 || r.Height != 170 {
		t.Fatalf("unexpected resized rect %+v", r)
	}
	if s.History().Len() != 1 {
		t.Fatalf("crop drag committed inside the crop tool")
	}
}

func TestExportClearsSelection(t *testing.T) {
	s, _ := newSession(t, WithTool(ToolText))
	click(s, 50, 50)
	s.TypeText("done")
	out := s.Export()
	st := s.Scene()
	if st.Selected != -1 || st.Edited != -1 {
		t.Fatalf("export kept selection %d edit %d", st.Selected, st.Edited)
	}
	if b := out.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("unexpected export size %v", b)
	}
	if len(s.History().Current().Layers) != 1 {
		t.Fatalf("export did not commit the edited text")
	}
}

func TestCloseStopsTimers(t *testing.T) {
	s, sched := newSession(t, WithTool(ToolText))
	click(s, 50, 50)
	l := s.Scene().EditedLayer()
	s.Close()
	sched.advance(s, 5*BlinkInterval)
	if !l.Text.ShowCursor {
		t.Fatalf("blink ran after close")
	}
	click(s, 200, 200)
	if len(s.Scene().Layers) != 1 {
		t.Fatalf("closed session accepted input")
	}
}

func TestFiltersToolIgnoresPointer(t *testing.T) {
	s, _ := newSession(t)
	click(s, 100, 100)
	if len(s.Scene().Layers) != 0 || s.History().Len() != 1 {
		t.Fatalf("filters tool reacted to a click")
	}
}
