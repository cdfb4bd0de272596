// Package notify tells the user when a picture was captured, exported or
// copied.
package notify

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/example/inkwell/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventCapture fires when a screenshot becomes the source image.
	EventCapture Event = "capture"
	// EventExport fires when the annotated picture is written to disk.
	EventExport Event = "export"
	// EventCopy fires when the annotated picture is copied to the clipboard.
	EventCopy Event = "copy"
)

// Events lists every event in display order.
func Events() []Event { return []Event{EventCapture, EventExport, EventCopy} }

// PreviewSize bounds the thumbnail attached to capture notifications.
const PreviewSize = 256

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title     string
	Templates map[Event]string
	Enabled   map[Event]bool
}

// DefaultPreferences enables export and copy notifications.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.DefaultAppName,
		Templates: map[Event]string{
			EventCapture: "Captured %s",
			EventExport:  "Saved %s",
			EventCopy:    "Copied %s to clipboard",
		},
		Enabled: map[Event]bool{
			EventExport: true,
			EventCopy:   true,
		},
	}
}

// ApplyEnv overrides the title and templates from INKWELL_NOTIFY_* variables.
func (p *Preferences) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("INKWELL_NOTIFY_TITLE")); v != "" {
		p.Title = v
	}
	for _, ev := range Events() {
		key := "INKWELL_NOTIFY_" + strings.ToUpper(string(ev)) + "_TEXT"
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if p.Templates == nil {
				p.Templates = map[Event]string{}
			}
			p.Templates[ev] = v
		}
	}
}

var send = platform.Notify

// Notifier sends desktop notifications according to its preferences. A nil
// Notifier is silent.
type Notifier struct {
	prefs Preferences
}

// New creates a Notifier with its own copy of prefs.
func New(prefs Preferences) *Notifier {
	n := &Notifier{prefs: Preferences{
		Title:     prefs.Title,
		Templates: make(map[Event]string, len(prefs.Templates)),
		Enabled:   make(map[Event]bool, len(prefs.Enabled)),
	}}
	for k, v := range prefs.Templates {
		n.prefs.Templates[k] = v
	}
	for k, v := range prefs.Enabled {
		n.prefs.Enabled[k] = v
	}
	return n
}

// Enable toggles one event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.prefs.Enabled[event] = enabled
}

// Enabled reports whether event notifications are sent.
func (n *Notifier) Enabled(event Event) bool {
	return n != nil && n.prefs.Enabled[event]
}

// Capture announces a new screenshot with a thumbnail of it.
func (n *Notifier) Capture(detail string, img image.Image) {
	if !n.Enabled(EventCapture) {
		return
	}
	opts := platform.Options{AppName: n.prefs.Title}
	if img != nil {
		path, cleanup, err := createPreview(img)
		if err != nil {
			log.Printf("notification preview: %v", err)
		} else {
			defer cleanup()
			opts.IconPath = path
		}
	}
	n.dispatch(EventCapture, detail, opts)
}

// Export announces a written file, showing it as the icon.
func (n *Notifier) Export(path string) {
	if !n.Enabled(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := platform.Options{AppName: n.prefs.Title}
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventExport, detail, opts)
}

// Copy announces a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if !n.Enabled(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "image"
	}
	n.dispatch(EventCopy, detail, platform.Options{AppName: n.prefs.Title})
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	body := n.Message(event, detail)
	if body == "" {
		return
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

// Message formats the body for event. It is empty when the template is.
func (n *Notifier) Message(event Event, detail string) string {
	if n == nil {
		return ""
	}
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return ""
	}
	if !strings.Contains(tmpl, "%s") {
		return tmpl
	}
	return strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
}

func createPreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "inkwell-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := imaging.Save(imaging.Fit(img, PreviewSize, PreviewSize, imaging.Box), path); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	cleanup := func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			log.Printf("remove preview: %v", err)
		}
	}
	return path, cleanup, nil
}
