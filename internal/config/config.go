// Package config loads and writes the RC file holding editor defaults,
// export settings, notifications and window themes.
package config

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/inkwell/internal/scene"
	"github.com/example/inkwell/internal/theme"
)

// Export formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
)

// Notify holds notification toggles.
type Notify struct {
	Capture bool
	Export  bool
	Copy    bool
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	ExportDir    string
	ExportFormat string
	HistoryLimit int
	Text         scene.TextSettings
	Brush        scene.BrushSettings
	Notify       Notify
	Themes       map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		ExportFormat: FormatPNG,
		Text:         scene.DefaultTextSettings(),
		Brush:        scene.DefaultBrushSettings(),
		Notify:       Notify{Export: true, Copy: true},
		Themes:       make(map[string]*theme.Theme),
	}
}

// String renders the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.ExportDir != "" {
		fmt.Fprintf(&sb, "export_dir = %s\n", c.ExportDir)
	}
	fmt.Fprintf(&sb, "export_format = %s\n", c.ExportFormat)
	if c.HistoryLimit > 0 {
		fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	}
	sb.WriteString("\n")

	sb.WriteString("[text]\n")
	fmt.Fprintf(&sb, "color = %s\n", c.Text.Color)
	fmt.Fprintf(&sb, "font = %s\n", c.Text.Font)
	fmt.Fprintf(&sb, "size = %g\n", c.Text.Size)
	fmt.Fprintf(&sb, "align = %s\n", c.Text.Align)
	fmt.Fprintf(&sb, "frame = %s\n", c.Text.Frame)
	sb.WriteString("\n")

	sb.WriteString("[brush]\n")
	fmt.Fprintf(&sb, "style = %s\n", c.Brush.Style)
	fmt.Fprintf(&sb, "color = %s\n", c.Brush.Color)
	fmt.Fprintf(&sb, "size = %g\n", c.Brush.Size)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "\n[theme.%s]\n", name)
		sb.WriteString(c.Themes[name].String())
	}
	return sb.String()
}

// ResolveColor accepts a palette name, an SVG color name or a hex value.
func ResolveColor(s string) (scene.Color, error) {
	v := strings.TrimSpace(s)
	for _, p := range scene.Palette() {
		if strings.EqualFold(p.Name, v) {
			return p.Color, nil
		}
	}
	if c, ok := colornames.Map[strings.ToLower(v)]; ok {
		return scene.HexColor(c), nil
	}
	c, err := scene.ParseHex(v)
	if err != nil {
		return "", err
	}
	return scene.HexColor(c), nil
}
