//go:build cgo && (linux || freebsd || openbsd || netbsd || dragonfly || darwin)

package clipboard

import (
	"sync"

	"golang.design/x/clipboard"
)

var (
	initOnce sync.Once
	initErr  error
)

// writeNative returns a channel that is closed when another client
// takes the selection.
func writeNative(data []byte) (<-chan struct{}, error) {
	initOnce.Do(func() {
		initErr = clipboard.Init()
	})
	if initErr != nil {
		return nil, initErr
	}
	return clipboard.Write(clipboard.FmtImage, data), nil
}
