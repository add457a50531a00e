package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOverridesDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader(`
# comment
Name: mine
dim: #11223344
SelectionBorder: red
Unknown: #000000
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "mine" {
		t.Errorf("name %q", th.Name)
	}
	if th.Dim != (color.RGBA{0x11, 0x22, 0x33, 0x44}) {
		t.Errorf("dim %+v", th.Dim)
	}
	if th.SelectionBorder != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("selection border %+v", th.SelectionBorder)
	}
	if th.HoverFill != Default().HoverFill {
		t.Errorf("unset field lost its default")
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Dim: #12345")); err == nil {
		t.Fatal("expected error for short hex")
	}
	if _, err := Parse(strings.NewReader("Dim: notacolour")); err == nil {
		t.Fatal("expected error for unknown colour name")
	}
}

func TestEmbeddedThemesLoad(t *testing.T) {
	names := Embedded()
	if len(names) < 2 {
		t.Fatalf("embedded themes %v", names)
	}
	l := &Loader{}
	for _, name := range names {
		th, err := l.Load(name)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if th.Name != name {
			t.Errorf("theme %s reports name %q", name, th.Name)
		}
	}
	dark, _ := l.Load("dark")
	def := Default()
	for i, f := range dark.Fields() {
		if want := def.Fields()[i]; f != want {
			t.Errorf("dark.%s = %v, default %v", f.Name, f.Color, want.Color)
		}
	}
}

func TestLoaderSearchesConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ocean.theme"), []byte("Name: ocean\nDim: navy\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir}
	th, err := l.Load("ocean")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if th.Dim != (color.RGBA{0, 0, 128, 255}) {
		t.Errorf("dim %+v", th.Dim)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for unknown theme")
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{{1, 2, 3, 255}, {0xAA, 0xBB, 0xCC, 0x10}} {
		got, err := ParseColor(Hex(c))
		if err != nil || got != c {
			t.Errorf("ParseColor(Hex(%v)) = %v, %v", c, got, err)
		}
	}
}
