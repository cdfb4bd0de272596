// Package appstate hosts an editing session in a shiny window: tool tabs, a
// settings bar for the active tool, the canvas and a shortcut bar.
package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/inkwell/internal/clipboard"
	"github.com/example/inkwell/internal/editor"
	"github.com/example/inkwell/internal/notify"
	"github.com/example/inkwell/internal/theme"
)

var logf = log.Printf

const (
	minWindowWidth  = 720
	minWindowHeight = 480
	maxWindowWidth  = 1600
	maxWindowHeight = 1000
	messageDuration = 2 * time.Second
)

// AppState holds the configuration of the editor window.
type AppState struct {
	Image     *image.RGBA
	Output    string
	ExportDir string
	Format    string
	Theme     *theme.Theme

	notifier   *notify.Notifier
	editorOpts []editor.Option
	updateCh   chan struct{}

	onExport  func(path string)
	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithImage sets the source image.
func WithImage(img *image.RGBA) Option { return func(a *AppState) { a.Image = img } }

// WithOutput sets the file written on save. Without it a timestamped file is
// created in the export directory.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithExportDir sets the directory for timestamped exports.
func WithExportDir(dir string) Option { return func(a *AppState) { a.ExportDir = dir } }

// WithFormat sets the export format, png or jpeg.
func WithFormat(f string) Option { return func(a *AppState) { a.Format = f } }

// WithTheme sets the window colors.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithNotifier sends desktop notifications on export and copy.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithEditorOptions passes options to the editing session.
func WithEditorOptions(opts ...editor.Option) Option {
	return func(a *AppState) { a.editorOpts = append(a.editorOpts, opts...) }
}

// WithOnExport registers a callback invoked with each written file.
func WithOnExport(fn func(path string)) Option { return func(a *AppState) { a.onExport = fn } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		Format:   "png",
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

// NotifyImageChanged requests a repaint.
func (a *AppState) NotifyImageChanged() {
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() error {
	if a.Image == nil {
		return fmt.Errorf("appstate: no image to edit")
	}
	var err error
	driver.Main(func(s screen.Screen) { err = a.Main(s) })
	return err
}

// taskEvent carries a fired session timer into the event loop.
type taskEvent struct{ task editor.Task }

// window is the event loop state of one open editor window.
type window struct {
	a       *AppState
	w       screen.Window
	session *editor.Session

	width, height int
	layout        layout
	view          viewport
	bars          bars
	hover         image.Point
	pressed       bool
	canvasDrag    bool
	message       string
	messageUntil  time.Time
	quit          bool
}

// Main opens the window on s and runs until it is closed.
func (a *AppState) Main(s screen.Screen) error {
	b := a.Image.Bounds()
	width := clampInt(b.Dx()+2*canvasMargin, minWindowWidth, maxWindowWidth)
	height := clampInt(b.Dy()+2*canvasMargin+tabHeight+settingsHeight+bottomHeight, minWindowHeight, maxWindowHeight)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Inkwell"})
	if err != nil {
		return fmt.Errorf("new window: %w", err)
	}
	defer w.Release()
	defer a.notifyClose()

	opts := append([]editor.Option{
		editor.WithScheduler(editor.NewScheduler(func(t editor.Task) { w.Send(taskEvent{t}) })),
		editor.WithOnChange(a.NotifyImageChanged),
	}, a.editorOpts...)
	session, err := editor.New(a.Image, opts...)
	if err != nil {
		return err
	}
	defer session.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	win := &window{a: a, w: w, session: session, width: width, height: height}
	win.relayout()

	for !win.quit {
		switch e := w.NextEvent().(type) {
		case taskEvent:
			session.Tick(e.task)
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return nil
			}
		case size.Event:
			win.width, win.height = e.WidthPx, e.HeightPx
			win.relayout()
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := win.frame()
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			win.mouse(e)
		case key.Event:
			win.key(e)
		}
	}
	return nil
}

func (win *window) relayout() {
	win.layout = newLayout(win.width, win.height)
}

// commands are the shortcut bar actions.
func (win *window) commands() []command {
	return []command{
		{"^Z undo", func() { win.session.Undo() }},
		{"^Y redo", func() { win.session.Redo() }},
		{"^C copy", win.copy},
		{"^S save", win.save},
		{"^V paste sticker", win.pasteSticker},
		{"^Q quit", func() { win.quit = true }},
	}
}

// frame updates the viewport and builds the next paint snapshot.
func (win *window) frame() paintState {
	s := win.session
	st := paintState{
		width:        win.width,
		height:       win.height,
		th:           win.a.Theme,
		layout:       win.layout,
		hover:        win.hover,
		pressed:      win.pressed,
		message:      win.message,
		messageUntil: win.messageUntil,
	}
	if s.Tool() == editor.ToolCrop {
		img := s.Preview()
		b := img.Bounds()
		win.view = fitViewport(win.layout.canvas, b.Dx(), b.Dy())
		win.syncRatio()
		st.img = img
		if c := s.Crop(); c != nil {
			o := c.Overlay(win.view.zoom, win.view.rect.Min)
			st.crop = &o
		}
	} else {
		c := s.Scene().Cropper
		win.view = fitViewport(win.layout.canvas, int(math.Round(c.Width)), int(math.Round(c.Height)))
		win.syncRatio()
		st.img = s.Frame()
	}
	st.view = win.view
	win.bars = buildBars(s, win.a.Theme, win.layout, win.commands())
	st.bars = win.bars
	return st
}

// syncRatio hands the viewport scale to the session so handles and borders
// keep their on-screen size. The session repaints only when it changed.
func (win *window) syncRatio() {
	if r := win.view.ratio(); math.Abs(r-win.session.Ratio()) > 1e-6 {
		win.session.SetRatio(r)
	}
}

func (win *window) mouse(e mouse.Event) {
	p := image.Pt(int(e.X), int(e.Y))
	if e.Button == mouse.ButtonLeft {
		switch e.Direction {
		case mouse.DirPress:
			win.pressed = true
		case mouse.DirRelease:
			win.pressed = false
		}
	}
	if win.hover != p {
		win.hover = p
		win.w.Send(paint.Event{})
	}
	if win.message != "" && time.Now().Before(win.messageUntil) && e.Direction == mouse.DirPress {
		win.messageUntil = time.Time{}
		win.w.Send(paint.Event{})
		return
	}

	// A drag that began on the canvas keeps going to the session until
	// the button is released, wherever the pointer is.
	if win.canvasDrag || (p.In(win.layout.canvas) && e.Direction == mouse.DirPress) {
		if e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft {
			win.canvasDrag = true
		}
		if e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft {
			win.canvasDrag = false
		}
		pt := win.view.toImage(e.X, e.Y)
		e.X, e.Y = float32(pt.X), float32(pt.Y)
		win.session.Mouse(e)
		return
	}

	if e.Button != mouse.ButtonLeft || e.Direction != mouse.DirPress {
		return
	}
	for _, group := range [][]Button{win.bars.tabs, win.bars.settings, win.bars.shortcuts} {
		if i := hitButton(group, p); i >= 0 {
			group[i].Activate()
			win.w.Send(paint.Event{})
			return
		}
	}
}

func (win *window) key(e key.Event) {
	s := win.session
	if e.Direction == key.DirRelease {
		return
	}
	if s.Editing() {
		s.Key(e)
		return
	}
	ctrl := e.Modifiers&(key.ModControl|key.ModMeta) != 0
	switch {
	case ctrl && e.Code == key.CodeC:
		win.copy()
	case ctrl && e.Code == key.CodeS:
		win.save()
	case ctrl && e.Code == key.CodeV:
		win.pasteSticker()
	case ctrl && e.Code == key.CodeQ:
		win.quit = true
	case !ctrl && e.Rune >= '1' && e.Rune <= '9':
		tools := editor.Tools()
		if i := int(e.Rune - '1'); i < len(tools) {
			s.SetTool(tools[i])
		}
	default:
		s.Key(e)
	}
	win.w.Send(paint.Event{})
}

func (win *window) flash(format string, args ...interface{}) {
	win.message = fmt.Sprintf(format, args...)
	win.messageUntil = time.Now().Add(messageDuration)
	log.Print(win.message)
	win.w.Send(paint.Event{})
}

func (win *window) copy() {
	if err := clipboard.WriteImage(win.session.Export()); err != nil {
		logf("copy: %v", err)
		win.flash("copy failed")
		return
	}
	win.a.notifier.Copy("image")
	win.flash("image copied to clipboard")
}

func (win *window) save() {
	a := win.a
	path := a.Output
	if path == "" {
		path = ExportPath(a.ExportDir, a.Format, time.Now())
	}
	if err := SaveImage(win.session.Export(), path); err != nil {
		logf("save: %v", err)
		win.flash("save failed")
		return
	}
	a.notifier.Export(path)
	if a.onExport != nil {
		a.onExport(path)
	}
	win.flash("saved %s", path)
}

func (win *window) pasteSticker() {
	win.session.SetTool(editor.ToolStickers)
	if _, err := win.session.AddStickerFromClipboard(); err != nil {
		logf("paste sticker: %v", err)
		win.flash("no image on the clipboard")
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
