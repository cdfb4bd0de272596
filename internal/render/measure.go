package render

import (
	"math"

	"github.com/example/inkwell/internal/scene"
)

// MeasureText returns the box of a text layer: the widest line by the line
// count times the line height.
func MeasureText(l *scene.Layer) (width, height float64) {
	if l.Text == nil {
		return 0, 0
	}
	lines := scene.Lines(l.Text.Text)
	for _, line := range lines {
		width = math.Max(width, StringWidth(l.Text.Font, l.Size, line))
	}
	height = l.Size * float64(len(lines)) * scene.LineHeight
	return width, height
}

// FitText recomputes the box of a text layer from its content.
func FitText(l *scene.Layer) {
	l.Width, l.Height = MeasureText(l)
}
