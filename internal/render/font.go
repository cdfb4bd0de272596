package render

import (
	"fmt"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"

	"github.com/example/inkwell/internal/scene"
)

// fontData maps each typeface onto one of the embedded Go fonts.
var fontData = map[scene.Font][]byte{
	scene.FontRoboto:     goregular.TTF,
	scene.FontTypewriter: gomono.TTF,
	scene.FontAvenir:     gomedium.TTF,
	scene.FontCourier:    gomonobold.TTF,
	scene.FontNoteworthy: goitalic.TTF,
	scene.FontGeorgia:    gomediumitalic.TTF,
	scene.FontPapyrus:    gosmallcaps.TTF,
	scene.FontSnell:      gobolditalic.TTF,
}

var (
	parsedOnce sync.Once
	parsed     map[scene.Font]*opentype.Font
	fallback   *opentype.Font
)

func parseFonts() {
	parsed = make(map[scene.Font]*opentype.Font, len(fontData))
	for name, data := range fontData {
		f, err := opentype.Parse(data)
		if err != nil {
			log.Printf("font %s: %v", name, err)
			continue
		}
		parsed[name] = f
	}
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		log.Printf("fallback font: %v", err)
		return
	}
	fallback = f
}

type faceKey struct {
	font scene.Font
	size float64
}

var faces sync.Map // map[faceKey]font.Face

// Face returns a cached face for the typeface at size pixels.
func Face(name scene.Font, size float64) (font.Face, error) {
	if size <= 0 {
		size = scene.DefaultFontSize
	}
	key := faceKey{name, size}
	if face, ok := faces.Load(key); ok {
		return face.(font.Face), nil
	}
	parsedOnce.Do(parseFonts)
	f := parsed[name]
	if f == nil {
		f = parsed[scene.FontRoboto]
	}
	if f == nil {
		f = fallback
	}
	if f == nil {
		return nil, fmt.Errorf("font %q not available", name)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("font %q at %v: %w", name, size, err)
	}
	actual, _ := faces.LoadOrStore(key, face)
	return actual.(font.Face), nil
}

// StringWidth returns the advance of s in the typeface at size pixels.
func StringWidth(name scene.Font, size float64, s string) float64 {
	face, err := Face(name, size)
	if err != nil {
		return 0
	}
	adv := font.MeasureString(face, s)
	return float64(adv) / 64
}
