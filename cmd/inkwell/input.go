package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"time"

	"github.com/example/inkwell/internal/source"
)

var (
	openImageFn      = source.Open
	clipboardImageFn = source.Clipboard
	screenImageFn    = source.Screen
)

// captureTimeout bounds an interactive portal capture.
const captureTimeout = 2 * time.Minute

// inputFlags selects where the image being edited comes from.
type inputFlags struct {
	clipboard   bool
	screen      bool
	display     string
	interactive bool
	cursor      bool
}

func (in *inputFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&in.clipboard, "clipboard", false, "read the image from the clipboard")
	fs.BoolVar(&in.screen, "screen", false, "capture the screen")
	fs.StringVar(&in.display, "display", "", "monitor to capture: primary, an index or an output name")
	fs.BoolVar(&in.interactive, "interactive", false, "let the desktop pick the capture area")
	fs.BoolVar(&in.cursor, "cursor", false, "include the pointer in screen captures")
}

// validate checks that exactly one source was given.
func (in *inputFlags) validate(file string) error {
	n := 0
	for _, set := range []bool{file != "", in.clipboard, in.screen} {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return errors.New("an image file, -clipboard or -screen is required")
	case n > 1:
		return errors.New("choose only one of an image file, -clipboard or -screen")
	case !in.screen && (in.display != "" || in.interactive || in.cursor):
		return errors.New("-display, -interactive and -cursor apply to -screen only")
	}
	return nil
}

// load reads the source image. The returned name describes it in messages.
func (in *inputFlags) load(r *root, file string) (*image.RGBA, string, error) {
	switch {
	case in.clipboard:
		img, err := clipboardImageFn()
		if err != nil {
			return nil, "", fmt.Errorf("read clipboard image: %w", err)
		}
		return img, "clipboard", nil
	case in.screen:
		ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
		defer cancel()
		img, err := screenImageFn(ctx, source.ScreenOptions{
			Display:       in.display,
			Interactive:   in.interactive,
			IncludeCursor: in.cursor,
		})
		if err != nil {
			return nil, "", fmt.Errorf("capture screen: %w", err)
		}
		detail := "screen"
		if in.display != "" {
			detail = "display " + in.display
		}
		r.notifyCapture(detail, img)
		return img, detail, nil
	}
	img, err := openImageFn(file)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", file, err)
	}
	return img, file, nil
}
