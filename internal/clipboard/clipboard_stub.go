//go:build !(cgo && (linux || freebsd || openbsd || netbsd || dragonfly || darwin))

package clipboard

import "fmt"

func writeNative([]byte) (<-chan struct{}, error) {
	return nil, fmt.Errorf("clipboard image operations need cgo on this platform")
}
