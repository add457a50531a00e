// Package hotkey watches for a global key combination.
package hotkey

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"
)

// modifiers lists the left and right key names of each modifier.
var modifiers = map[string][]string{
	"ctrl":  {"ctrl", "rctrl"},
	"alt":   {"alt", "ralt"},
	"shift": {"shift", "rshift"},
	"super": {"cmd", "rcmd"},
}

var aliases = map[string]string{
	"control": "ctrl",
	"win":     "super",
	"cmd":     "super",
	"meta":    "super",
	"print":   "printscreen",
	"prtsc":   "printscreen",
}

// Combo is a parsed key combination such as "ctrl+shift+s".
type Combo struct {
	Spec string
	keys []comboKey
}

type comboKey struct {
	name  string
	codes []uint16
}

// Parse reads a "+"-separated combination. Each part is a modifier (ctrl,
// alt, shift, super) or a key name known to gohook.
func Parse(spec string) (Combo, error) {
	c := Combo{Spec: spec}
	for _, part := range strings.Split(strings.ToLower(spec), "+") {
		name := strings.TrimSpace(part)
		if name == "" {
			return Combo{}, fmt.Errorf("hotkey %q: empty key", spec)
		}
		if a, ok := aliases[name]; ok {
			name = a
		}
		names, ok := modifiers[name]
		if !ok {
			names = []string{name}
		}
		var codes []uint16
		for _, n := range names {
			if code, ok := gohook.Keycode[n]; ok {
				codes = append(codes, code)
			}
		}
		if len(codes) == 0 {
			return Combo{}, fmt.Errorf("hotkey %q: unknown key %q", spec, name)
		}
		c.keys = append(c.keys, comboKey{name: name, codes: codes})
	}
	return c, nil
}

// Matcher tracks key state for one Combo.
type Matcher struct {
	combo   Combo
	mu      sync.Mutex
	pressed []bool
}

// NewMatcher returns a Matcher with every key released.
func NewMatcher(c Combo) *Matcher {
	return &Matcher{combo: c, pressed: make([]bool, len(c.keys))}
}

// Handle feeds one hook event and reports whether it completed the
// combination. The state resets after a match so holding the keys fires
// once.
func (m *Matcher) Handle(ev gohook.Event) bool {
	if ev.Kind != gohook.KeyDown && ev.Kind != gohook.KeyUp && ev.Kind != gohook.KeyHold {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	down := ev.Kind != gohook.KeyUp
	for i, k := range m.combo.keys {
		for _, code := range k.codes {
			if ev.Keycode == code {
				m.pressed[i] = down
				break
			}
		}
	}
	if !down {
		return false
	}
	for _, p := range m.pressed {
		if !p {
			return false
		}
	}
	for i := range m.pressed {
		m.pressed[i] = false
	}
	return true
}

// Swapped in tests.
var (
	startHook = gohook.Start
	endHook   = gohook.End
)

// Listen calls fn every time the combination is pressed until ctx is
// cancelled. fn runs on the listener goroutine.
func Listen(ctx context.Context, spec string, fn func()) error {
	combo, err := Parse(spec)
	if err != nil {
		return err
	}
	events := startHook()
	if events == nil {
		return fmt.Errorf("hotkey: global key hook unavailable")
	}
	defer endHook()
	log.Printf("hotkey: listening for %s", combo.Spec)

	m := NewMatcher(combo)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("hotkey: event stream closed")
			}
			if m.Handle(ev) {
				fn()
			}
		}
	}
}
