package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/snipshot/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func record(t *testing.T, err error) *[]sent {
	t.Helper()
	var got []sent
	orig := send
	send = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return err
	}
	t.Cleanup(func() { send = orig })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := record(t, nil)
	n := New(DefaultPreferences())
	n.Save("/tmp/x.png")
	n.Copy("")
	var nilNotifier *Notifier
	nilNotifier.Save("/tmp/x.png")
	nilNotifier.Close()
	if len(*got) != 0 {
		t.Fatalf("sent %+v", *got)
	}
}

func TestSaveUsesFileAsIcon(t *testing.T) {
	got := record(t, nil)
	path := filepath.Join(t.TempDir(), "shot.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)

	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.title != "Snipshot" || s.body != "Saved "+path {
		t.Fatalf("notification %+v", s)
	}
	if s.opts.IconPath != path {
		t.Fatalf("icon %q", s.opts.IconPath)
	}
}

func TestCopyWritesAppIconOnce(t *testing.T) {
	got := record(t, errors.New("no bus"))
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("")
	n.Copy("window")
	if len(*got) != 2 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	if (*got)[0].body != "Copied snip to clipboard" {
		t.Fatalf("body %q", (*got)[0].body)
	}
	icon := (*got)[0].opts.IconPath
	if icon == "" || icon != (*got)[1].opts.IconPath {
		t.Fatalf("icons %q %q", icon, (*got)[1].opts.IconPath)
	}
	if _, err := os.Stat(icon); err != nil {
		t.Fatalf("icon not written: %v", err)
	}
	n.Close()
	if _, err := os.Stat(icon); !os.IsNotExist(err) {
		t.Fatalf("icon not removed: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("SNIPSHOT_NOTIFY_TITLE", "Shots")
	t.Setenv("SNIPSHOT_NOTIFY_SAVE_TEXT", "Wrote %s")
	t.Setenv("SNIPSHOT_NOTIFY_COPY_TEXT", "")
	p := LoadPreferences()
	if p.Title != "Shots" || p.Events[EventSave].Template != "Wrote %s" {
		t.Fatalf("prefs %+v", p)
	}
	if p.Events[EventCopy].Template != "Copied %s to clipboard" {
		t.Fatalf("copy template %q", p.Events[EventCopy].Template)
	}
}
