// Package scene defines the editable document: crop, filters and the ordered
// list of annotation layers drawn over the source image.
package scene

import (
	"fmt"

	"github.com/example/inkwell/internal/geometry"
)

const (
	// BorderPadding is how far the selection border sits outside a layer box.
	BorderPadding = 16
	// HandleRadius is the radius of the selection corner discs.
	HandleRadius = 8
	// CornerHitSize is the half-size of the square around a handle that
	// starts a rotation.
	CornerHitSize = 12
	// FramePadding pads the white text frame around each line.
	FramePadding = 8
	// LineHeight multiplies the font size to get the line advance.
	LineHeight = 1.2

	DefaultFontSize = 24
	MinFontSize     = 16
	MaxFontSize     = 96

	DefaultBrushSize = 8
	MinBrushSize     = 1
	MaxBrushSize     = 60

	// DefaultStickerWidth is the width a new sticker is placed with.
	DefaultStickerWidth = 100
)

// TextSettings are the defaults seeded into new text layers.
type TextSettings struct {
	Color Color   `json:"color"`
	Font  Font    `json:"font"`
	Size  float64 `json:"size"`
	Align Align   `json:"align"`
	Frame Frame   `json:"frame"`
}

// BrushSettings are the defaults seeded into new brush layers.
type BrushSettings struct {
	Style BrushStyle `json:"style"`
	Color Color      `json:"color"`
	Size  float64    `json:"size"`
}

// DefaultTextSettings returns the initial text tool settings.
func DefaultTextSettings() TextSettings {
	return TextSettings{Color: ColorWhite, Font: FontRoboto, Size: DefaultFontSize, Align: AlignLeft, Frame: FrameNone}
}

// DefaultBrushSettings returns the initial brush tool settings.
func DefaultBrushSettings() BrushSettings {
	return BrushSettings{Style: BrushPen, Color: ColorWhite, Size: DefaultBrushSize}
}

// ClampFontSize limits a text size to the supported range.
func ClampFontSize(v float64) float64 { return clampFloat(v, MinFontSize, MaxFontSize) }

// ClampBrushSize limits a stroke size to the supported range.
func ClampBrushSize(v float64) float64 { return clampFloat(v, MinBrushSize, MaxBrushSize) }

// Cropper is the region of the source image that becomes the output surface.
// Angle is in degrees.
type Cropper struct {
	geometry.Rect
	Angle    float64 `json:"angle"`
	Format   Format  `json:"format"`
	Mirrored bool    `json:"mirrored"`
}

// State is the whole editable scene.
type State struct {
	Filters  map[FilterKind]float64 `json:"filters,omitempty"`
	Cropper  Cropper                `json:"cropper"`
	Layers   []Layer                `json:"layers"`
	Selected int                    `json:"selected"`
	Edited   int                    `json:"edited"`
	Text     TextSettings           `json:"text"`
	Brush    BrushSettings          `json:"brush"`
}

// New creates a scene for a source image of the given size.
func New(width, height int) *State {
	return &State{
		Filters: map[FilterKind]float64{},
		Cropper: Cropper{
			Rect:   geometry.Rect{Width: float64(width), Height: float64(height)},
			Format: FormatOriginal,
		},
		Selected: -1,
		Edited:   -1,
		Text:     DefaultTextSettings(),
		Brush:    DefaultBrushSettings(),
	}
}

// Clone returns a deep copy that shares no memory with s.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := *s
	if s.Filters != nil {
		out.Filters = make(map[FilterKind]float64, len(s.Filters))
		for k, v := range s.Filters {
			out.Filters[k] = v
		}
	}
	if s.Layers != nil {
		out.Layers = make([]Layer, len(s.Layers))
		for i := range s.Layers {
			out.Layers[i] = s.Layers[i].Clone()
		}
	}
	return &out
}

// Layer returns the layer at i or nil when i is out of range.
func (s *State) Layer(i int) *Layer {
	if i < 0 || i >= len(s.Layers) {
		return nil
	}
	return &s.Layers[i]
}

// SelectedLayer returns the selected layer or nil.
func (s *State) SelectedLayer() *Layer { return s.Layer(s.Selected) }

// EditedLayer returns the text layer being edited or nil.
func (s *State) EditedLayer() *Layer { return s.Layer(s.Edited) }

// Add appends l on top of every other layer and returns its index.
func (s *State) Add(l Layer) int {
	s.Layers = append(s.Layers, l)
	return len(s.Layers) - 1
}

// Remove deletes layer i and keeps the selection and edit cursors pointing at
// the same layers, clearing any that pointed at i.
func (s *State) Remove(i int) {
	if i < 0 || i >= len(s.Layers) {
		return
	}
	s.Layers = append(s.Layers[:i], s.Layers[i+1:]...)
	s.Selected = shiftIndex(s.Selected, i)
	s.Edited = shiftIndex(s.Edited, i)
}

func shiftIndex(idx, removed int) int {
	switch {
	case idx == removed:
		return -1
	case idx > removed:
		return idx - 1
	}
	return idx
}

// Boxes returns the bounding boxes of every layer in z-order.
func (s *State) Boxes() []geometry.Box {
	out := make([]geometry.Box, len(s.Layers))
	for i := range s.Layers {
		out[i] = s.Layers[i].Box
	}
	return out
}

// LayerAt returns the frontmost layer of kind under p, or -1.
func (s *State) LayerAt(p geometry.Point, kind Kind, padding float64) int {
	return geometry.Frontmost(p, s.Boxes(), func(i int) bool {
		return s.Layers[i].Kind == kind
	}, padding)
}

// Filter returns the value of a filter, zero when unset.
func (s *State) Filter(kind FilterKind) float64 {
	if s.Filters == nil {
		return 0
	}
	return s.Filters[kind]
}

// SetFilter stores a clamped filter value. Zero removes the entry.
func (s *State) SetFilter(kind FilterKind, v float64) {
	r, ok := LookupFilter(kind)
	if !ok {
		return
	}
	if s.Filters == nil {
		s.Filters = map[FilterKind]float64{}
	}
	v = r.Clamp(v)
	if v == 0 {
		delete(s.Filters, kind)
		return
	}
	s.Filters[kind] = v
}

// Check verifies the cursor and payload invariants.
func (s *State) Check() error {
	if s.Selected < -1 || s.Selected >= len(s.Layers) {
		return fmt.Errorf("selected index %d out of range (%d layers)", s.Selected, len(s.Layers))
	}
	if s.Edited < -1 || s.Edited >= len(s.Layers) {
		return fmt.Errorf("edited index %d out of range (%d layers)", s.Edited, len(s.Layers))
	}
	if s.Edited >= 0 && s.Layers[s.Edited].Kind != KindText {
		return fmt.Errorf("edited layer %d is a %s layer", s.Edited, s.Layers[s.Edited].Kind)
	}
	for i := range s.Layers {
		if err := s.Layers[i].check(); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}
