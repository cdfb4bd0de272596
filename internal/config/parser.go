package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/inkwell/internal/scene"
	"github.com/example/inkwell/internal/theme"
)

// Parse reads configuration in RC format.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitKeyValue(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = current.Set(key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		case section == "text":
			err = setTextField(&cfg.Text, key, value)
		case section == "brush":
			err = setBrushField(&cfg.Brush, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			where := "root section"
			if section != "" {
				where = "section [" + section + "]"
			}
			return nil, fmt.Errorf("line %d: error in %s: %w", lineNo, where, err)
		}
	}
	return cfg, scanner.Err()
}

// splitKeyValue accepts `key = value` and `Key: value`.
func splitKeyValue(line string) (string, string, bool) {
	var parts []string
	switch {
	case strings.Contains(line, "="):
		parts = strings.SplitN(line, "=", 2)
	case strings.Contains(line, ":"):
		parts = strings.SplitN(line, ":", 2)
	default:
		return "", "", false
	}
	value := strings.TrimSpace(parts[1])
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return strings.TrimSpace(parts[0]), value, true
}

func setRootField(cfg *Config, key, value string) error {
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "export_dir":
		cfg.ExportDir = value
	case "export_format":
		f, err := ParseFormat(value)
		if err != nil {
			return err
		}
		cfg.ExportFormat = f
	case "history_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid history_limit %q", value)
		}
		cfg.HistoryLimit = n
	}
	return nil
}

// ParseFormat normalizes an export format name.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func setTextField(t *scene.TextSettings, key, value string) error {
	switch strings.ToLower(key) {
	case "color":
		c, err := ResolveColor(value)
		if err != nil {
			return err
		}
		t.Color = c
	case "font":
		f, err := pick(value, scene.Fonts())
		if err != nil {
			return fmt.Errorf("font: %w", err)
		}
		t.Font = f
	case "size":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid size %q", value)
		}
		t.Size = scene.ClampFontSize(v)
	case "align":
		a, err := pick(value, []scene.Align{scene.AlignLeft, scene.AlignCenter, scene.AlignRight})
		if err != nil {
			return fmt.Errorf("align: %w", err)
		}
		t.Align = a
	case "frame":
		f, err := pick(value, []scene.Frame{scene.FrameNone, scene.FrameBlack, scene.FrameWhite})
		if err != nil {
			return fmt.Errorf("frame: %w", err)
		}
		t.Frame = f
	}
	return nil
}

func setBrushField(b *scene.BrushSettings, key, value string) error {
	switch strings.ToLower(key) {
	case "style":
		s, err := pick(value, scene.BrushStyles())
		if err != nil {
			return fmt.Errorf("style: %w", err)
		}
		b.Style = s
	case "color":
		c, err := ResolveColor(value)
		if err != nil {
			return err
		}
		b.Color = c
	case "size":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid size %q", value)
		}
		b.Size = scene.ClampBrushSize(v)
	}
	return nil
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	switch strings.ToLower(key) {
	case "capture":
		n.Capture = b
	case "export", "save":
		n.Export = b
	case "copy":
		n.Copy = b
	}
	return nil
}

// pick matches value case-insensitively against the allowed names.
func pick[T ~string](value string, allowed []T) (T, error) {
	for _, a := range allowed {
		if strings.EqualFold(string(a), value) {
			return a, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown value %q", value)
}
