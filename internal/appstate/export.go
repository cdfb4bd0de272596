package appstate

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// JPEGQuality is used when exporting JPEG files.
const JPEGQuality = 92

// ExportPath names a new export file in dir.
func ExportPath(dir, format string, now time.Time) string {
	ext := ".png"
	if strings.EqualFold(format, "jpeg") || strings.EqualFold(format, "jpg") {
		ext = ".jpg"
	}
	return filepath.Join(dir, "inkwell-"+now.Format("20060102-150405")+ext)
}

// SaveImage writes img, picking the encoder from the file extension.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
