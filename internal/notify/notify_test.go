package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/example/inkwell/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func captureSends(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := send
	send = func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		got = append(got, sent{title: title, body: body, opts: opts, iconExisted: opts.IconPath != "" && err == nil})
		return nil
	}
	t.Cleanup(func() { send = prev })
	return &got
}

func TestDefaultsSendExportAndCopy(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Capture("screen", nil)
	n.Copy("")
	if len(*got) != 1 {
		t.Fatalf("unexpected notification count %d, want 1", len(*got))
	}
	if (*got)[0].body != "Copied image to clipboard" {
		t.Fatalf("unexpected body %q", (*got)[0].body)
	}
	if (*got)[0].title != platform.DefaultAppName {
		t.Fatalf("unexpected title %q", (*got)[0].title)
	}
}

func TestExportUsesFileAsIcon(t *testing.T) {
	got := captureSends(t)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := imaging.Save(image.NewNRGBA(image.Rect(0, 0, 2, 2)), path); err != nil {
		t.Fatalf("save: %v", err)
	}
	New(DefaultPreferences()).Export(path)
	if len(*got) != 1 {
		t.Fatalf("unexpected notification count %d, want 1", len(*got))
	}
	if (*got)[0].opts.IconPath != path || (*got)[0].body != "Saved "+path {
		t.Fatalf("unexpected notification %+v", (*got)[0])
	}
}

func TestCaptureAttachesPreview(t *testing.T) {
	got := captureSends(t)
	n := New(DefaultPreferences())
	n.Enable(EventCapture, true)
	n.Capture("screen", image.NewRGBA(image.Rect(0, 0, 1024, 512)))
	if len(*got) != 1 {
		t.Fatalf("unexpected notification count %d, want 1", len(*got))
	}
	s := (*got)[0]
	if !s.iconExisted {
		t.Fatalf("expected preview file during send")
	}
	if _, err := os.Stat(s.opts.IconPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected preview removed, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("INKWELL_NOTIFY_TITLE", "Shots")
	t.Setenv("INKWELL_NOTIFY_EXPORT_TEXT", "Wrote %s")
	prefs := DefaultPreferences()
	prefs.ApplyEnv()
	n := New(prefs)
	if got := n.Message(EventExport, " a.png "); got != "Wrote a.png" {
		t.Fatalf("unexpected message %q", got)
	}
	if prefs.Title != "Shots" {
		t.Fatalf("unexpected title %q", prefs.Title)
	}
}

func TestNilNotifierIsSilent(t *testing.T) {
	got := captureSends(t)
	var n *Notifier
	n.Export("x.png")
	n.Copy("x")
	if n.Enabled(EventCopy) || len(*got) != 0 {
		t.Fatalf("expected nil notifier to do nothing")
	}
}
