package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/pitchdeck/internal/catalog"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames len = %d, want 3", len(names))
	}
	names[0] = "changed"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames returned shared slice")
	}
}

func TestNextTheme_Wraps(t *testing.T) {
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme_FallsBack(t *testing.T) {
	if got := GetTheme("nope").Name; got != "Nightfox" {
		t.Fatalf("GetTheme fallback = %q", got)
	}
}

func TestStyleColor_CoversCatalog(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		styles := th.Styles()
		for _, opt := range catalog.Styles() {
			c, ok := th.StyleColors[opt.Token]
			if !ok {
				t.Fatalf("%s: no color for style %q", name, opt.Token)
			}
			if got := styles.StyleColor(opt.Token); got != lipgloss.Color(c) {
				t.Fatalf("%s: StyleColor(%q) = %v, want %v", name, opt.Token, got, c)
			}
		}
		if got := styles.StyleColor("unknown"); got != lipgloss.Color(th.Accent) {
			t.Fatalf("%s: StyleColor(unknown) = %v, want accent", name, got)
		}
	}
}
