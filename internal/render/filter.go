package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/example/inkwell/internal/scene"
)

// ApplyFilters returns src with every non-zero filter applied. With no active
// filter src is returned unchanged.
func ApplyFilters(src image.Image, filters map[scene.FilterKind]float64) image.Image {
	var out image.Image = src
	for _, f := range scene.Filters() {
		v := f.Clamp(filters[f.Kind])
		if v == 0 {
			continue
		}
		switch f.Kind {
		case scene.FilterBrightness:
			out = brightness(out, (v+100)/100)
		case scene.FilterContrast:
			out = imaging.AdjustContrast(out, v)
		case scene.FilterSaturation:
			out = imaging.AdjustSaturation(out, v)
		case scene.FilterWarmth:
			out = warmth(out, v)
		case scene.FilterFade:
			out = fade(out, v)
		case scene.FilterSharpen:
			out = imaging.Sharpen(out, v/50)
		}
	}
	return out
}

// brightness scales every channel by factor.
func brightness(img image.Image, factor float64) *image.NRGBA {
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clampChannel(float64(c.R) * factor),
			G: clampChannel(float64(c.G) * factor),
			B: clampChannel(float64(c.B) * factor),
			A: c.A,
		}
	})
}

// warmth shifts red up and blue down for positive values, the reverse for
// negative ones.
func warmth(img image.Image, v float64) *image.NRGBA {
	shift := v * 0.3
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: clampChannel(float64(c.R) + shift),
			G: clampChannel(float64(c.G) + shift*0.2),
			B: clampChannel(float64(c.B) - shift),
			A: c.A,
		}
	})
}

// fade lifts the blacks and pulls every channel toward mid gray.
func fade(img image.Image, v float64) *image.NRGBA {
	k := v / 100 * 0.35
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		mix := func(ch uint8) uint8 {
			return clampChannel(float64(ch)*(1-k) + 128*k)
		}
		return color.NRGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
	})
}

func clampChannel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}

func filterKey(filters map[scene.FilterKind]float64) string {
	if len(filters) == 0 {
		return ""
	}
	keys := make([]string, 0, len(filters))
	for k, v := range filters {
		if v != 0 {
			keys = append(keys, fmt.Sprintf("%s=%g", k, v))
		}
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}
