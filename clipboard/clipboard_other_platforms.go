//go:build !darwin && !linux && !windows && cgo
// +build !darwin,!linux,!windows,cgo

package clipboard

import (
	"github.com/juju/errors"
)

var InitErr = errors.New("clipboard is only supported on Linux, MacOS and Windows")

// WriteText is a no-op here: golang.design/x/clipboard doesn't build on this
// platform.
func WriteText(value []byte) {
	// no-op
}
