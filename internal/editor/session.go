// Package editor drives a scene from pointer, keyboard and settings input.
// A Session is owned by one goroutine; timers hand their work back to that
// goroutine through the Scheduler.
package editor

import (
	"errors"
	"image"
	"time"

	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/history"
	"github.com/example/inkwell/internal/interaction"
	"github.com/example/inkwell/internal/render"
	"github.com/example/inkwell/internal/scene"
	"github.com/example/inkwell/internal/sticker"
)

const (
	// BlinkInterval is the caret blink period while editing text.
	BlinkInterval = 400 * time.Millisecond
	// SettleDelay is how long a size slider must rest before it commits.
	SettleDelay = 500 * time.Millisecond
	// FilterSettleDelay is the settle delay for filter sliders.
	FilterSettleDelay = 300 * time.Millisecond
)

var errNoSource = errors.New("editor: source image is required")

// Session is one editing session over a source image.
type Session struct {
	src      image.Image
	st       *scene.State
	hist     *history.History
	renderer *render.Renderer
	stickers *sticker.Cache
	sched    Scheduler
	onChange func()

	tool Tool
	crop *interaction.Crop

	movement interaction.Movement
	rotation interaction.Rotation
	drawing  interaction.Drawing
	active   interaction.Controller

	blink      Timer
	settle     Timer
	brushColor map[scene.BrushStyle]scene.Color

	historyLimit int
	renderOpts   []render.Option
	closed       bool
}

// Option configures a Session.
type Option func(*Session)

// WithScheduler sets the timer source. Without one, timers never fire and
// pending commits settle on Flush.
func WithScheduler(s Scheduler) Option { return func(e *Session) { e.sched = s } }

// WithStickers shares a sticker cache with the session.
func WithStickers(c *sticker.Cache) Option { return func(e *Session) { e.stickers = c } }

// WithOnChange registers a callback invoked whenever the picture changes.
func WithOnChange(fn func()) Option { return func(e *Session) { e.onChange = fn } }

// WithTool selects the initial tool.
func WithTool(t Tool) Option { return func(e *Session) { e.tool = t } }

// WithTextSettings seeds the text tool defaults.
func WithTextSettings(ts scene.TextSettings) Option {
	return func(e *Session) {
		ts.Size = scene.ClampFontSize(ts.Size)
		e.st.Text = ts
	}
}

// WithBrushSettings seeds the brush tool defaults.
func WithBrushSettings(bs scene.BrushSettings) Option {
	return func(e *Session) {
		bs.Size = scene.ClampBrushSize(bs.Size)
		e.st.Brush = bs
		e.brushColor[bs.Style] = bs.Color
	}
}

// WithHistoryLimit bounds the undo depth.
func WithHistoryLimit(n int) Option { return func(e *Session) { e.historyLimit = n } }

// WithRenderOptions passes presentation options to the renderer.
func WithRenderOptions(o render.Options) Option {
	return func(e *Session) { e.renderOpts = append(e.renderOpts, render.WithOptions(o)) }
}

// New starts a session over src with the crop covering the whole image.
func New(src image.Image, opts ...Option) (*Session, error) {
	if src == nil {
		return nil, errNoSource
	}
	b := src.Bounds()
	s := &Session{
		src:        src,
		st:         scene.New(b.Dx(), b.Dy()),
		sched:      idleScheduler{},
		brushColor: map[scene.BrushStyle]scene.Color{},
	}
	for _, style := range scene.BrushStyles() {
		s.brushColor[style] = style.DefaultColor()
	}
	for _, o := range opts {
		o(s)
	}
	if s.stickers == nil {
		s.stickers = sticker.NewCache()
	}
	s.renderer = render.New(append(s.renderOpts, render.WithStickers(s.stickers))...)
	s.hist = history.New(s.st, history.WithLimit(s.historyLimit))
	s.enterTool(s.tool)
	return s, nil
}

// Scene exposes the live scene. Callers must not keep it across calls that
// may replace it, such as Undo and Redo.
func (s *Session) Scene() *scene.State { return s.st }

// Source returns the source image.
func (s *Session) Source() image.Image { return s.src }

// History returns the snapshot history.
func (s *Session) History() *history.History { return s.hist }

// Stickers returns the sticker cache.
func (s *Session) Stickers() *sticker.Cache { return s.stickers }

// Tool returns the active tool.
func (s *Session) Tool() Tool { return s.tool }

// Crop returns the crop editor. It is rebuilt whenever the crop tool is
// entered and after undo or redo.
func (s *Session) Crop() *interaction.Crop { return s.crop }

// Editing reports whether a text layer is being edited.
func (s *Session) Editing() bool { return s.st.Edited >= 0 }

// Ratio returns the surface pixels per display pixel.
func (s *Session) Ratio() float64 { return s.renderer.Options().Ratio }

// SetRatio records a viewport change. Only the overlay presentation is
// affected; the scene keeps its numbers.
func (s *Session) SetRatio(v float64) {
	s.renderer.SetRatio(v)
	s.changed()
}

// Frame renders the scene for display, overlays included.
func (s *Session) Frame() *image.RGBA {
	return s.renderer.Render(s.src, s.st)
}

// Preview returns the filtered source without crop or layers. The crop tool
// shows it so the whole image is reachable.
func (s *Session) Preview() image.Image {
	return s.renderer.Filtered(s.src, s.st.Filters)
}

// Tick runs a task delivered by the scheduler.
func (s *Session) Tick(t Task) {
	if s.closed || t == nil {
		return
	}
	t()
}

// Commit snapshots the scene now, dropping any pending settle commit.
func (s *Session) Commit() {
	s.stopSettle()
	s.hist.Commit(s.st)
}

// Flush commits a pending settle commit immediately.
func (s *Session) Flush() {
	if s.settle == nil {
		return
	}
	s.Commit()
}

func (s *Session) commitLater(d time.Duration) {
	s.stopSettle()
	var t Timer
	t = s.sched.AfterFunc(d, func() {
		if s.settle != t {
			return
		}
		s.settle = nil
		s.hist.Commit(s.st)
	})
	s.settle = t
}

func (s *Session) stopSettle() {
	if s.settle != nil {
		s.settle.Stop()
		s.settle = nil
	}
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// padding is the hit-test padding in canvas pixels.
func (s *Session) padding() float64 { return scene.BorderPadding * s.Ratio() }

// SetTool switches tabs. Any drag in progress is cancelled first.
func (s *Session) SetTool(t Tool) {
	if t == s.tool {
		return
	}
	s.cancelActive()
	s.leaveTool()
	s.tool = t
	s.enterTool(t)
	s.changed()
}

func (s *Session) leaveTool() {
	switch s.tool {
	case ToolText:
		s.endEditing()
		s.st.Selected = -1
	case ToolCrop:
		s.storeCrop()
		if s.hist.Current().Cropper != s.st.Cropper {
			s.Commit()
		}
	case ToolBrush, ToolStickers:
		s.st.Selected = -1
	}
}

func (s *Session) enterTool(t Tool) {
	switch t {
	case ToolCrop:
		s.rebuildCrop()
	case ToolText:
		s.st.Edited = -1
	}
}

func (s *Session) rebuildCrop() {
	b := s.src.Bounds()
	s.crop = interaction.NewCrop(
		geometry.Size{Width: float64(b.Dx()), Height: float64(b.Dy())},
		s.st.Cropper.Rect,
		s.st.Cropper.Format,
	)
}

// storeCrop copies the crop editor rectangle into the scene.
func (s *Session) storeCrop() {
	if s.crop == nil {
		return
	}
	s.st.Cropper.Rect = s.crop.Rect()
	s.st.Cropper.Format = s.crop.Format()
}

func (s *Session) begin(c interaction.Controller) {
	s.active = c
}

func (s *Session) cancelActive() {
	if s.active != nil && s.active.Active() {
		s.active.Cancel()
	}
	s.active = nil
}

// Undo restores the previous snapshot.
func (s *Session) Undo() bool {
	s.Flush()
	st, ok := s.hist.Undo()
	if !ok {
		return false
	}
	s.restore(st)
	return true
}

// Redo reapplies the last undone snapshot.
func (s *Session) Redo() bool {
	s.Flush()
	st, ok := s.hist.Redo()
	if !ok {
		return false
	}
	s.restore(st)
	return true
}

// restore swaps in a snapshot and rebuilds the tool state derived from the
// scene.
func (s *Session) restore(st *scene.State) {
	s.cancelActive()
	s.stopBlink()
	s.st = st
	s.st.Edited = -1
	switch s.tool {
	case ToolCrop:
		s.rebuildCrop()
	case ToolText, ToolBrush, ToolStickers:
		s.st.Selected = -1
	}
	s.changed()
}

// Export settles pending work, drops the selection and renders the output
// at full resolution.
func (s *Session) Export() *image.RGBA {
	s.cancelActive()
	if s.tool == ToolCrop {
		s.storeCrop()
	}
	s.endEditing()
	s.Flush()
	s.st.Selected = -1
	s.st.Edited = -1
	ratio := s.Ratio()
	s.renderer.SetRatio(1)
	out := s.renderer.Render(s.src, s.st)
	s.renderer.SetRatio(ratio)
	s.changed()
	return out
}

// Close cancels every controller and timer. The session ignores input
// afterwards.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.cancelActive()
	s.stopBlink()
	s.stopSettle()
	s.closed = true
}
