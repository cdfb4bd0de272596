//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package source

import (
	"context"
	"image"
)

func portalScreenshot(context.Context, ScreenOptions) (*image.RGBA, error) {
	return nil, ErrUnsupported
}

func rootScreenshot() (*image.RGBA, error) { return nil, ErrUnsupported }

func listMonitors() ([]MonitorInfo, error) { return nil, ErrUnsupported }

func runningOnWayland() bool { return false }
