package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/inkwell/internal/scene"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
export_dir = /tmp/shots
export_format = jpg
history_limit = 40

[text]
color = red
font = Georgia
size = 200
align = center
frame = white

[brush]
style = neon
color = #62E5E0
size = 12

[notify]
capture = true
export = false
copy = true

[theme.my_custom_theme]
Background = #111111
Foreground = #FFFFFF
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Theme != "my_custom_theme" || cfg.ExportDir != "/tmp/shots" {
		t.Fatalf("unexpected root %q %q", cfg.Theme, cfg.ExportDir)
	}
	if cfg.ExportFormat != FormatJPEG || cfg.HistoryLimit != 40 {
		t.Fatalf("unexpected export %q limit %d", cfg.ExportFormat, cfg.HistoryLimit)
	}
	wantText := scene.TextSettings{Color: scene.ColorRed, Font: scene.FontGeorgia, Size: scene.MaxFontSize, Align: scene.AlignCenter, Frame: scene.FrameWhite}
	if cfg.Text != wantText {
		t.Fatalf("unexpected text %+v, want %+v", cfg.Text, wantText)
	}
	wantBrush := scene.BrushSettings{Style: scene.BrushNeon, Color: scene.ColorLightBlue, Size: 12}
	if cfg.Brush != wantBrush {
		t.Fatalf("unexpected brush %+v, want %+v", cfg.Brush, wantBrush)
	}
	if cfg.Notify != (Notify{Capture: true, Copy: true}) {
		t.Fatalf("unexpected notify %+v", cfg.Notify)
	}
	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatalf("expected theme my_custom_theme")
	}
	if th.Background.R != 0x11 || th.Background.G != 0x11 || th.Background.B != 0x11 {
		t.Fatalf("unexpected background %+v", th.Background)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"format", "export_format = gif\n", "root section"},
		{"font", "[text]\nfont = comic\n", "section [text]"},
		{"style", "[brush]\nstyle = spray\n", "section [brush]"},
		{"bool", "[notify]\ncopy = maybe\n", "line 2"},
		{"color", "[text]\ncolor = mauve\n", "section [text]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("unexpected error %v, want %q", err, tc.want)
			}
		})
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
export_dir = /home/user/shots

[text]
font = courier
[brush]
style = arrow
color = yellow

[notify]
capture = true
export = true
copy = false

[theme.custom]
Name = custom
Background = #000000
CropShade = #00000080
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("initial parse failed: %v", err)
	}
	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("circular parse failed: %v\n%s", err, cfg.String())
	}
	if cfg.Theme != cfg2.Theme || cfg.ExportDir != cfg2.ExportDir || cfg.ExportFormat != cfg2.ExportFormat {
		t.Fatalf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Text != cfg2.Text || cfg.Brush != cfg2.Brush || cfg.Notify != cfg2.Notify {
		t.Fatalf("section mismatch: %+v vs %+v", cfg, cfg2)
	}
	t1, t2 := cfg.Themes["custom"], cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Fatalf("theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderFindsDevFile(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	if got := NewLoader("dev", "").GetConfigPath(); got != "" {
		t.Fatalf("unexpected config path %q", got)
	}
	cfg := New()
	cfg.ExportDir = "/srv/out"
	if err := Save(cfg, filepath.Join(dir, ".inkwellrc")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := NewLoader("1.0.0", "").GetConfigPath(); got != "" {
		t.Fatalf("release build picked up %q", got)
	}
	loaded, err := NewLoader("dev", "").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.ExportDir != "/srv/out" {
		t.Fatalf("unexpected export dir %q", loaded.ExportDir)
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		in   string
		want scene.Color
	}{
		{"red", scene.ColorRed},
		{" Violet ", scene.ColorViolet},
		{"navy", "#000080"},
		{"#abcdef", "#ABCDEF"},
		{"#11223344", "#11223344"},
	}
	for _, tc := range tests {
		got, err := ResolveColor(tc.in)
		if err != nil {
			t.Fatalf("ResolveColor(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ResolveColor(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, err := ResolveColor("mauve-ish"); err == nil {
		t.Fatalf("expected error for unknown color")
	}
}
