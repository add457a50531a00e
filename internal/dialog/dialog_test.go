package dialog

import (
	"errors"
	"image/color"
	"reflect"
	"testing"
)

type call struct {
	name string
	args []string
}

func fakeRun(t *testing.T, out string, err error) *[]call {
	t.Helper()
	var calls []call
	prev := run
	run = func(name string, args ...string) (string, error) {
		calls = append(calls, call{name, args})
		return out, err
	}
	t.Cleanup(func() { run = prev })
	return &calls
}

func TestKdialogColor(t *testing.T) {
	calls := fakeRun(t, "#00ff80", nil)
	c, ok := Kdialog{}.PickColor(color.RGBA{R: 255, A: 255})
	if !ok || c != (color.RGBA{G: 255, B: 0x80, A: 255}) {
		t.Fatalf("colour %+v %v", c, ok)
	}
	want := []string{"--getcolor", "--default", "#ff0000"}
	if !reflect.DeepEqual((*calls)[0].args, want) {
		t.Fatalf("args %q", (*calls)[0].args)
	}
}

func TestCancelledPromptsKeepCurrentValues(t *testing.T) {
	fakeRun(t, "", errCancelled)
	red := color.RGBA{R: 255, A: 255}
	if c, ok := (Kdialog{}).PickColor(red); ok || c != red {
		t.Fatalf("colour %+v %v", c, ok)
	}
	if f, ok := (Zenity{}).PickFont([]string{"Go", "Go Mono"}, "Go"); ok || f != "Go" {
		t.Fatalf("font %q %v", f, ok)
	}
	if _, ok := (Kdialog{}).PromptText("Add Text", ""); ok {
		t.Fatal("cancelled text prompt reported ok")
	}
}

func TestLaunchFailureIsNotOK(t *testing.T) {
	fakeRun(t, "", errors.New("exec: not found"))
	if _, ok := (Zenity{}).PromptText("Add Text", ""); ok {
		t.Fatal("expected !ok")
	}
}

func TestKdialogFontAndText(t *testing.T) {
	calls := fakeRun(t, "Go Mono", nil)
	f, ok := Kdialog{}.PickFont([]string{"Go", "Go Mono"}, "Go")
	if !ok || f != "Go Mono" {
		t.Fatalf("font %q %v", f, ok)
	}
	want := []string{"--title", "Choose Font", "--combobox", "Select font:", "Go", "Go Mono", "--default", "Go"}
	if !reflect.DeepEqual((*calls)[0].args, want) {
		t.Fatalf("font args %q", (*calls)[0].args)
	}

	Kdialog{}.PromptText("Edit Text", "hello")
	want = []string{"--title", "Edit Text", "--inputbox", "Edit text:", "hello"}
	if !reflect.DeepEqual((*calls)[1].args, want) {
		t.Fatalf("text args %q", (*calls)[1].args)
	}
}

func TestZenityTextArgs(t *testing.T) {
	calls := fakeRun(t, "note", nil)
	got, ok := Zenity{}.PromptText("Add Text", "")
	if !ok || got != "note" {
		t.Fatalf("text %q %v", got, ok)
	}
	want := []string{"--entry", "--title=Add Text", "--text=Enter text:", "--entry-text="}
	if !reflect.DeepEqual((*calls)[0].args, want) {
		t.Fatalf("args %q", (*calls)[0].args)
	}
}

func TestParseZenityColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"rgb(255,128,0)", color.RGBA{255, 128, 0, 255}, true},
		{"rgba(1, 2, 3, 0.5)", color.RGBA{1, 2, 3, 255}, true},
		{"#102030", color.RGBA{0x10, 0x20, 0x30, 255}, true},
		{"rgb(300,0,0)", color.RGBA{}, false},
		{"blue-ish", color.RGBA{}, false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseZenityColor(tc.in)
			if (err == nil) != tc.ok {
				t.Fatalf("err %v", err)
			}
			if tc.ok && got != tc.want {
				t.Fatalf("got %+v", got)
			}
		})
	}
}

func TestPaletteCycles(t *testing.T) {
	p := NewPalette()
	cols := p.Colors()
	c, ok := p.PickColor(cols[0])
	if !ok || c != cols[1] {
		t.Fatalf("next colour %+v", c)
	}
	if c, _ := p.PickColor(cols[len(cols)-1]); c != cols[0] {
		t.Fatalf("palette should wrap, got %+v", c)
	}
	if c, _ := p.PickColor(color.RGBA{1, 2, 3, 255}); c != cols[0] {
		t.Fatalf("unknown colour should restart, got %+v", c)
	}
	if f, ok := p.PickFont([]string{"Go", "Go Mono"}, "Go Mono"); !ok || f != "Go" {
		t.Fatalf("font %q", f)
	}
	if _, ok := p.PromptText("Add Text", ""); ok {
		t.Fatal("palette has no text prompt")
	}
}

func TestNewFallsBackToPalette(t *testing.T) {
	prev := lookPath
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	t.Cleanup(func() { lookPath = prev })

	p, err := New("auto")
	if err != nil || p.Name() != "palette" {
		t.Fatalf("prompter %v %v", p, err)
	}
	if _, err := New("kdialog"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err %v", err)
	}
	if _, err := New("qt"); err == nil {
		t.Fatal("expected an error")
	}

	lookPath = func(name string) (string, error) {
		if name == "zenity" {
			return "/usr/bin/zenity", nil
		}
		return "", errors.New("not found")
	}
	if p, _ := New("auto"); p.Name() != "zenity" {
		t.Fatalf("auto picked %s", p.Name())
	}
}
