package editor

import (
	"image"

	"github.com/example/inkwell/internal/geometry"
	"github.com/example/inkwell/internal/scene"
)

// AddSticker caches img under key and places it centered on the surface,
// DefaultStickerWidth display pixels wide with the bitmap's aspect ratio.
func (s *Session) AddSticker(key string, img image.Image) int {
	b := img.Bounds()
	if b.Empty() {
		return -1
	}
	s.stickers.Put(key, img)
	w := scene.DefaultStickerWidth * s.Ratio()
	h := w * float64(b.Dy()) / float64(b.Dx())
	c := s.st.Cropper
	idx := s.st.Add(scene.NewSticker(key, geometry.Box{
		Left:   (c.Width - w) / 2,
		Top:    (c.Height - h) / 2,
		Width:  w,
		Height: h,
	}))
	s.Commit()
	s.changed()
	return idx
}

// AddStickerFile loads an image file into the cache and places it.
func (s *Session) AddStickerFile(path string) (int, error) {
	key, img, err := s.stickers.LoadFile(path)
	if err != nil {
		return -1, err
	}
	return s.AddSticker(key, img), nil
}

// AddStickerFromClipboard places the clipboard image as a sticker.
func (s *Session) AddStickerFromClipboard() (int, error) {
	key, img, err := s.stickers.FromClipboard()
	if err != nil {
		return -1, err
	}
	return s.AddSticker(key, img), nil
}
