// Package theme holds the color palette of the editor window.
package theme

import (
	"fmt"
	"image/color"
	"reflect"
	"strings"
)

// Theme defines the colors of the editor window chrome.
type Theme struct {
	Name string

	Background color.RGBA // behind the tool bar and canvas
	Foreground color.RGBA // labels

	// Tool bar
	ToolbarBackground color.RGBA
	TabBackground     color.RGBA
	TabActive         color.RGBA
	TabHover          color.RGBA
	TabText           color.RGBA
	TabTextActive     color.RGBA
	TabTextHover      color.RGBA

	// Settings bar buttons and swatches
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextHover       color.RGBA
	ButtonTextPress       color.RGBA
	ButtonBorder          color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
	CropShade    color.RGBA // dims the source outside the crop
	CropBorder   color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:                  "default",
		Background:            color.RGBA{220, 220, 220, 255},
		Foreground:            color.RGBA{0, 0, 0, 255},
		ToolbarBackground:     color.RGBA{220, 220, 220, 255},
		TabBackground:         color.RGBA{220, 220, 220, 255},
		TabActive:             color.RGBA{200, 200, 200, 255},
		TabHover:              color.RGBA{210, 210, 210, 255},
		TabText:               color.RGBA{0, 0, 0, 255},
		TabTextActive:         color.RGBA{0, 0, 0, 255},
		TabTextHover:          color.RGBA{0, 0, 0, 255},
		ButtonBackground:      color.RGBA{200, 200, 200, 255},
		ButtonBackgroundHover: color.RGBA{180, 180, 180, 255},
		ButtonBackgroundPress: color.RGBA{150, 150, 150, 255},
		ButtonText:            color.RGBA{0, 0, 0, 255},
		ButtonTextHover:       color.RGBA{0, 0, 0, 255},
		ButtonTextPress:       color.RGBA{0, 0, 0, 255},
		ButtonBorder:          color.RGBA{0, 0, 0, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
		CropShade:             color.RGBA{0, 0, 0, 128},
		CropBorder:            color.RGBA{255, 255, 255, 255},
	}
}

// ColorFields lists the color keys of a theme in declaration order.
func ColorFields() []string {
	typ := reflect.TypeOf(Theme{})
	rgba := reflect.TypeOf(color.RGBA{})
	var names []string
	for i := 0; i < typ.NumField(); i++ {
		if f := typ.Field(i); f.Type == rgba {
			names = append(names, f.Name)
		}
	}
	return names
}

// Color returns the named color field, matched case-insensitively.
func (t *Theme) Color(key string) (color.RGBA, bool) {
	f := t.field(key)
	if !f.IsValid() {
		return color.RGBA{}, false
	}
	return f.Interface().(color.RGBA), true
}

// Set assigns a color field from a hex value. Unknown keys are ignored so
// newer theme files load in older builds.
func (t *Theme) Set(key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	f := t.field(key)
	if !f.IsValid() {
		return nil
	}
	c, err := ParseColor(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	f.Set(reflect.ValueOf(c))
	return nil
}

func (t *Theme) field(key string) reflect.Value {
	val := reflect.ValueOf(t).Elem()
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if strings.EqualFold(f.Name, key) && f.Type == reflect.TypeOf(color.RGBA{}) {
			return val.Field(i)
		}
	}
	return reflect.Value{}
}

// String renders the theme in the `Key: #RRGGBB` form Parse reads.
func (t *Theme) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", t.Name)
	for _, key := range ColorFields() {
		c, _ := t.Color(key)
		fmt.Fprintf(&sb, "%s: %s\n", key, Hex(c))
	}
	return sb.String()
}
