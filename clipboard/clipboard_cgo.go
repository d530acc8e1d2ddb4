//go:build (darwin || linux || windows) && cgo
// +build darwin linux windows
// +build cgo

package clipboard

import (
	"golang.design/x/clipboard"
)

// InitErr is nil if the system clipboard is usable. On Linux it requires X11
// to be available.
var InitErr = clipboard.Init()

// WriteText copies the bar payload (or any other text) to the clipboard; it's
// a no-op if the clipboard is not available.
func WriteText(value []byte) {
	if InitErr != nil {
		return
	}

	clipboard.Write(clipboard.FmtText, value)
}
