//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && cgo

package clipboard

import "golang.design/x/clipboard"

type systemClipboard struct{}

func newBackend() (backend, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return systemClipboard{}, nil
}

func (systemClipboard) write(f format, data []byte) error {
	clipboard.Write(systemFormat(f), data)
	return nil
}

func (systemClipboard) read(f format) ([]byte, error) {
	return clipboard.Read(systemFormat(f)), nil
}

func systemFormat(f format) clipboard.Format {
	if f == formatImage {
		return clipboard.FmtImage
	}
	return clipboard.FmtText
}
