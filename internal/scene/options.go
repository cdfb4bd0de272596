package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/example/inkwell/internal/geometry"
)

// Color is a hex color in #RRGGBB or #RRGGBBAA form.
type Color string

const (
	ColorWhite     Color = "#FFFFFF"
	ColorRed       Color = "#FE4438"
	ColorOrange    Color = "#FF8901"
	ColorYellow    Color = "#FFD60A"
	ColorGreen     Color = "#33C759"
	ColorLightBlue Color = "#62E5E0"
	ColorBlue      Color = "#0A84FF"
	ColorViolet    Color = "#BD5CF3"
)

// PaletteColor names one of the swatches offered by the editor.
type PaletteColor struct {
	Name  string
	Color Color
}

var palette = []PaletteColor{
	{"white", ColorWhite},
	{"red", ColorRed},
	{"orange", ColorOrange},
	{"yellow", ColorYellow},
	{"green", ColorGreen},
	{"lightblue", ColorLightBlue},
	{"blue", ColorBlue},
	{"violet", ColorViolet},
}

// Palette returns the editor swatches in display order.
func Palette() []PaletteColor {
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// RGBA parses c. Malformed values decode as opaque white.
func (c Color) RGBA() color.RGBA {
	rgba, err := ParseHex(string(c))
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	return rgba
}

// ParseHex parses #RRGGBB or #RRGGBBAA.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return color.RGBA{uint8(val >> 16), uint8(val >> 8), uint8(val), 255}, nil
	}
	return color.RGBA{uint8(val >> 24), uint8(val >> 16), uint8(val >> 8), uint8(val)}, nil
}

// HexColor formats c as a Color.
func HexColor(c color.RGBA) Color {
	if c.A == 255 {
		return Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
	}
	return Color(fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A))
}

// Font names a typeface offered for text layers.
type Font string

const (
	FontRoboto     Font = "roboto"
	FontTypewriter Font = "typewriter"
	FontAvenir     Font = "avenir"
	FontCourier    Font = "courier"
	FontNoteworthy Font = "noteworthy"
	FontGeorgia    Font = "georgia"
	FontPapyrus    Font = "papyrus"
	FontSnell      Font = "snell"
)

// Fonts lists the typefaces in display order.
func Fonts() []Font {
	return []Font{FontRoboto, FontTypewriter, FontAvenir, FontCourier, FontNoteworthy, FontGeorgia, FontPapyrus, FontSnell}
}

// Align is the horizontal alignment of text lines within a text layer.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// Frame is the background decoration behind text glyphs.
type Frame string

const (
	FrameNone  Frame = "none"
	FrameBlack Frame = "black"
	FrameWhite Frame = "white"
)

// BrushStyle selects the stroke renderer of a brush layer.
type BrushStyle string

const (
	BrushPen   BrushStyle = "pen"
	BrushArrow BrushStyle = "arrow"
	BrushBrush BrushStyle = "brush"
	BrushNeon  BrushStyle = "neon"
)

// BrushStyles lists the styles in display order.
func BrushStyles() []BrushStyle {
	return []BrushStyle{BrushPen, BrushArrow, BrushBrush, BrushNeon}
}

// DefaultColor is the color a style starts with when picked.
func (s BrushStyle) DefaultColor() Color {
	switch s {
	case BrushArrow:
		return ColorYellow
	case BrushBrush:
		return ColorOrange
	case BrushNeon:
		return ColorLightBlue
	}
	return ColorWhite
}

// Opacity is the alpha applied to the whole stroke.
func (s BrushStyle) Opacity() float64 {
	if s == BrushBrush {
		return 0.7
	}
	return 1
}

// FilterKind names an image adjustment.
type FilterKind string

const (
	FilterBrightness FilterKind = "brightness"
	FilterContrast   FilterKind = "contrast"
	FilterSaturation FilterKind = "saturation"
	FilterWarmth     FilterKind = "warmth"
	FilterFade       FilterKind = "fade"
	FilterSharpen    FilterKind = "sharpen"
)

// FilterRange describes the range of a filter slider.
type FilterRange struct {
	Kind FilterKind
	Min  float64
	Max  float64
}

var filterRanges = []FilterRange{
	{FilterBrightness, -100, 100},
	{FilterContrast, -100, 100},
	{FilterSaturation, -100, 100},
	{FilterWarmth, -100, 100},
	{FilterFade, 0, 100},
	{FilterSharpen, 0, 100},
}

// Filters lists the supported filters in display order.
func Filters() []FilterRange {
	out := make([]FilterRange, len(filterRanges))
	copy(out, filterRanges)
	return out
}

// LookupFilter returns the range for kind.
func LookupFilter(kind FilterKind) (FilterRange, bool) {
	for _, f := range filterRanges {
		if f.Kind == kind {
			return f, true
		}
	}
	return FilterRange{}, false
}

// Clamp limits v to the filter range.
func (f FilterRange) Clamp(v float64) float64 {
	return clampFloat(v, f.Min, f.Max)
}

// Format is a crop format: free, original or a fixed aspect ratio.
type Format string

const (
	FormatFree     Format = "free"
	FormatOriginal Format = "original"
	FormatSquare   Format = "1:1"
)

var formatRatios = []struct {
	format Format
	ratio  float64
}{
	{FormatSquare, 1},
	{"3:2", 3.0 / 2},
	{"2:3", 2.0 / 3},
	{"4:3", 4.0 / 3},
	{"3:4", 3.0 / 4},
	{"5:4", 5.0 / 4},
	{"4:5", 4.0 / 5},
	{"7:5", 7.0 / 5},
	{"5:7", 5.0 / 7},
	{"16:9", 16.0 / 9},
	{"9:16", 9.0 / 16},
}

// Formats lists every crop format in display order.
func Formats() []Format {
	out := []Format{FormatFree, FormatOriginal}
	for _, f := range formatRatios {
		out = append(out, f.format)
	}
	return out
}

// ParseFormat accepts a format name; "square" is an alias for 1:1.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "square" {
		return FormatSquare, nil
	}
	for _, f := range Formats() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown crop format %q", s)
}

// Layout returns how a fresh rectangle for f is laid out and the locked ratio.
func (f Format) Layout() (geometry.FormatMode, float64) {
	switch f {
	case FormatFree:
		return geometry.FormatFree, 0
	case FormatOriginal:
		return geometry.FormatOriginal, 0
	}
	for _, fr := range formatRatios {
		if fr.format == f {
			return geometry.FormatLocked, fr.ratio
		}
	}
	return geometry.FormatOriginal, 0
}

// Locked reports whether resizing keeps the aspect ratio. Original keeps the
// ratio the rectangle had when the drag started.
func (f Format) Locked() bool { return f != FormatFree }

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
