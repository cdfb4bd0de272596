package editor

import (
	"fmt"
	"strings"

	"github.com/example/inkwell/internal/scene"
)

// Tool is the active editing tab.
type Tool int

const (
	ToolFilters Tool = iota
	ToolCrop
	ToolText
	ToolBrush
	ToolStickers
)

// Tools lists every tool in tab order.
func Tools() []Tool {
	return []Tool{ToolFilters, ToolCrop, ToolText, ToolBrush, ToolStickers}
}

func (t Tool) String() string {
	switch t {
	case ToolFilters:
		return "filters"
	case ToolCrop:
		return "crop"
	case ToolText:
		return "text"
	case ToolBrush:
		return "brush"
	case ToolStickers:
		return "stickers"
	}
	return fmt.Sprintf("tool(%d)", int(t))
}

// ParseTool resolves a tool name.
func ParseTool(s string) (Tool, error) {
	for _, t := range Tools() {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", s)
}

// layerKind is the layer type a tool works on.
func (t Tool) layerKind() (scene.Kind, bool) {
	switch t {
	case ToolText:
		return scene.KindText, true
	case ToolBrush:
		return scene.KindBrush, true
	case ToolStickers:
		return scene.KindSticker, true
	}
	return 0, false
}
