package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/example/snipshot/assets"
	"github.com/example/snipshot/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave emits a notification when a snip is written to disk.
	EventSave Event = "save"
	// EventCopy emits a notification when a snip is copied to the clipboard.
	EventCopy Event = "copy"
)

const iconSize = 64

// EventPreference describes formatting for a notification event.
type EventPreference struct {
	Template string
}

// Preferences describes notification behaviour loaded from configuration.
type Preferences struct {
	Title   string
	Timeout time.Duration
	Events  map[Event]EventPreference
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title:   "Snipshot",
		Timeout: 5 * time.Second,
		Events: map[Event]EventPreference{
			EventSave: {Template: "Saved %s"},
			EventCopy: {Template: "Copied %s to clipboard"},
		},
	}
}

// LoadPreferences reads overrides from SNIPSHOT_NOTIFY_* environment
// variables.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("SNIPSHOT_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	apply := func(key string, event Event) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			eventPrefs := prefs.Events[event]
			eventPrefs.Template = v
			prefs.Events[event] = eventPrefs
		}
	}
	apply("SNIPSHOT_NOTIFY_SAVE_TEXT", EventSave)
	apply("SNIPSHOT_NOTIFY_COPY_TEXT", EventCopy)
	return prefs
}

// send is swapped in tests.
var send = platform.Notify

// Notifier sends desktop notifications based on the configured preferences.
// A nil Notifier is valid and sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool

	iconOnce sync.Once
	iconPath string
}

// New creates a new Notifier using the provided preferences.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Timeout: prefs.Timeout, Events: make(map[Event]EventPreference, len(prefs.Events))}
	for k, v := range prefs.Events {
		cloned.Events[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	if n.enabled == nil {
		n.enabled = make(map[Event]bool)
	}
	n.enabled[event] = enabled
}

// Save announces a written file. The file itself is used as the
// notification image.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	opts := n.options()
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy announces a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if !n.enabledFor(EventCopy) {
		return
	}
	if strings.TrimSpace(detail) == "" {
		detail = "snip"
	}
	opts := n.options()
	opts.IconPath = n.appIcon()
	n.dispatch(EventCopy, detail, opts)
}

// Close removes the temporary app icon, if one was written.
func (n *Notifier) Close() {
	if n == nil || n.iconPath == "" {
		return
	}
	if err := os.Remove(n.iconPath); err != nil && !os.IsNotExist(err) {
		log.Printf("remove notification icon: %v", err)
	}
	n.iconPath = ""
}

func (n *Notifier) options() platform.Options {
	return platform.Options{Timeout: n.prefs.Timeout}
}

func (n *Notifier) enabledFor(event Event) bool {
	if n == nil || n.enabled == nil {
		return false
	}
	return n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	template := strings.TrimSpace(n.template(event))
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}

func (n *Notifier) template(event Event) string {
	if pref, ok := n.prefs.Events[event]; ok {
		return pref.Template
	}
	return ""
}

// appIcon writes the embedded application icon to a temp file once and
// returns its path, or "" when that fails.
func (n *Notifier) appIcon() string {
	n.iconOnce.Do(func() {
		path, err := writeIcon()
		if err != nil {
			log.Printf("notification icon: %v", err)
			return
		}
		n.iconPath = path
	})
	return n.iconPath
}

func writeIcon() (string, error) {
	data, err := assets.IconPNG(assets.AppIconName, iconSize)
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp("", "snipshot-icon-*.png")
	if err != nil {
		return "", err
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return path, nil
}
