//go:build linux || freebsd || openbsd || netbsd || dragonfly

package source

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/jezek/xgb/xproto"
)

func TestPortalScreenshotOptions(t *testing.T) {
	prevToken := portalHandleToken
	portalHandleToken = func() string { return "test-token" }
	t.Cleanup(func() { portalHandleToken = prevToken })

	tests := []struct {
		name       string
		opts       ScreenOptions
		wantCursor string
	}{
		{name: "defaults", opts: ScreenOptions{}, wantCursor: "hidden"},
		{name: "interactive with cursor", opts: ScreenOptions{Interactive: true, IncludeCursor: true}, wantCursor: "embedded"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values := portalScreenshotOptions(tc.opts)
			if got := values["interactive"].Value(); got != tc.opts.Interactive {
				t.Fatalf("interactive = %v, want %v", got, tc.opts.Interactive)
			}
			if got := values["modal"].Value(); got != tc.opts.Interactive {
				t.Fatalf("modal = %v, want %v", got, tc.opts.Interactive)
			}
			if got := values["cursor_mode"].Value(); got != tc.wantCursor {
				t.Fatalf("cursor_mode = %v, want %q", got, tc.wantCursor)
			}
			if got := values["handle_token"].Value(); got != "test-token" {
				t.Fatalf("handle_token = %v, want test-token", got)
			}
			if len(values) != 4 {
				t.Fatalf("unexpected option count %d, want 4", len(values))
			}
		})
	}
}

func TestPortalResult(t *testing.T) {
	ok := []interface{}{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/Screenshot%20one.png")}}
	path, err := portalResult(ok)
	if err != nil {
		t.Fatalf("portalResult: %v", err)
	}
	if path != "/tmp/Screenshot one.png" {
		t.Fatalf("unexpected path %q", path)
	}
	cancelled := []interface{}{uint32(1), map[string]dbus.Variant{}}
	if _, err := portalResult(cancelled); err == nil {
		t.Fatalf("expected error for a cancelled request")
	}
	if _, err := portalResult([]interface{}{uint32(0), map[string]dbus.Variant{}}); err == nil {
		t.Fatalf("expected error without uri")
	}
}

func TestRunningOnWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "Wayland")
	t.Setenv("WAYLAND_DISPLAY", "")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when XDG_SESSION_TYPE=Wayland")
	}
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when WAYLAND_DISPLAY is set")
	}
	t.Setenv("WAYLAND_DISPLAY", "")
	if runningOnWayland() {
		t.Fatalf("did not expect wayland session")
	}
}

func TestXImageToRGBA(t *testing.T) {
	setup := &xproto.SetupInfo{PixmapFormats: []xproto.Format{{Depth: 24, BitsPerPixel: 32}}}
	reply := &xproto.GetImageReply{
		Depth: 24,
		Data: []byte{
			1, 2, 3, 0, 4, 5, 6, 0,
			7, 8, 9, 0, 10, 11, 12, 0,
		},
	}
	img, err := xImageToRGBA(setup, reply, 2, 2)
	if err != nil {
		t.Fatalf("xImageToRGBA: %v", err)
	}
	if c := img.RGBAAt(1, 1); c.R != 12 || c.G != 11 || c.B != 10 || c.A != 255 {
		t.Fatalf("unexpected pixel %v", c)
	}
	if _, err := xImageToRGBA(setup, &xproto.GetImageReply{Depth: 16, Data: []byte{1, 2}}, 1, 1); err == nil {
		t.Fatalf("expected error for unsupported depth")
	}
}
