package theme

import (
	"strings"
	"testing"
)

func TestDefaultPalette(t *testing.T) {
	p := Default()
	if p.Name != "ember" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Colors) != 9 {
		t.Errorf("len(Colors) = %d, want 9", len(p.Colors))
	}
}

func TestParseGPL(t *testing.T) {
	src := "GIMP Palette\nName: two\nColumns: 2\n# comment\n0 0 0\tblack\n255 255 255 white\nbogus line\n"
	p, err := ParseGPL(strings.NewReader(src), "two.gpl")
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Colors) != 2 || p.Colors[1] != (RGB{255, 255, 255}) {
		t.Errorf("Colors = %v", p.Colors)
	}

	if _, err := ParseGPL(strings.NewReader("GIMP Palette\n"), "empty.gpl"); err == nil {
		t.Error("expected error for empty palette")
	}
}

func TestLookupInterpolates(t *testing.T) {
	p := &Palette{Colors: []RGB{{0, 0, 0}, {200, 100, 50}}}
	if got := p.Lookup(0.5); got != (RGB{100, 50, 25}) {
		t.Errorf("Lookup(0.5) = %v", got)
	}
	if got := p.Lookup(-1); got != p.Colors[0] {
		t.Errorf("Lookup(-1) = %v", got)
	}
	if got := p.Lookup(2); got != p.Colors[1] {
		t.Errorf("Lookup(2) = %v", got)
	}
}

func TestThemeColors(t *testing.T) {
	th := New(&Palette{Colors: []RGB{{0x10, 0x20, 0x30}, {0xff, 0xff, 0xff}}})
	if got := string(th.BG()); got != "#102030" {
		t.Errorf("BG = %q", got)
	}
	if got := th.RGBA(1); got.R != 0xff || got.A != 0xff {
		t.Errorf("RGBA(1) = %v", got)
	}
}
