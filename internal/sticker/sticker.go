// Package sticker caches the bitmaps sticker layers refer to by key.
package sticker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"path/filepath"
	"sort"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/example/inkwell/internal/clipboard"
)

// MaxSide bounds the longest side of a cached bitmap. Larger images are
// scaled down when loaded.
const MaxSide = 512

// Cache maps stable keys to bitmaps. It is safe for concurrent use so
// loaders may fill it from their own goroutines.
type Cache struct {
	mu    sync.RWMutex
	items map[string]image.Image
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{items: map[string]image.Image{}}
}

// Put stores img under key, replacing any previous bitmap.
func (c *Cache) Put(key string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = img
}

// Get returns the bitmap stored under key.
func (c *Cache) Get(key string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.items[key]
	return img, ok
}

// Sticker satisfies the renderer's lookup.
func (c *Cache) Sticker(key string) (image.Image, bool) { return c.Get(key) }

// Keys returns the cached keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of cached bitmaps.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// LoadFile decodes an image file, caches it and returns its key. The key is
// the cleaned absolute path so the same file always resolves to one entry.
func (c *Cache) LoadFile(path string) (string, image.Image, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, fmt.Errorf("sticker path %q: %w", path, err)
	}
	key := "file:" + abs
	if img, ok := c.Get(key); ok {
		return key, img, nil
	}
	img, err := imaging.Open(abs, imaging.AutoOrientation(true))
	if err != nil {
		return "", nil, fmt.Errorf("open sticker %q: %w", path, err)
	}
	img = Fit(img)
	c.Put(key, img)
	return key, img, nil
}

// FromClipboard caches the clipboard image under a key derived from its
// pixels.
func (c *Cache) FromClipboard() (string, image.Image, error) {
	img, err := clipboard.ReadImage()
	if err != nil {
		return "", nil, fmt.Errorf("sticker from clipboard: %w", err)
	}
	img = Fit(img)
	key := Key(img)
	c.Put(key, img)
	return key, img, nil
}

// Fit scales img down so neither side exceeds MaxSide.
func Fit(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= MaxSide && b.Dy() <= MaxSide {
		return img
	}
	return imaging.Fit(img, MaxSide, MaxSide, imaging.Lanczos)
}

// Key derives a content key for img.
func Key(img image.Image) string {
	n := imaging.Clone(img)
	sum := sha256.New()
	fmt.Fprintf(sum, "%dx%d:", n.Rect.Dx(), n.Rect.Dy())
	sum.Write(n.Pix)
	return "sha256:" + hex.EncodeToString(sum.Sum(nil))[:16]
}
