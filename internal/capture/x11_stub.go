//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"context"
	"fmt"

	"github.com/example/snipshot/internal/windows"
)

func x11PointerMonitor() (Monitor, error) {
	return Monitor{}, fmt.Errorf("monitor detection is not supported on this platform")
}

func x11Monitors() ([]Monitor, error) {
	return nil, fmt.Errorf("monitor listing is not supported on this platform")
}

type x11Enumerator struct{}

func (x11Enumerator) Name() string { return "x11" }

func (x11Enumerator) List(context.Context) ([]windows.Info, error) {
	return nil, ErrNoWindows
}
