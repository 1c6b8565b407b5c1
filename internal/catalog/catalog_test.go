package catalog

import "testing"

func TestStyles_UniqueAndNonEmpty(t *testing.T) {
	list := Styles()
	if len(list) == 0 {
		t.Fatalf("Styles() is empty")
	}
	seen := map[StyleID]bool{}
	for _, s := range list {
		if s.ID == "" || s.Name == "" || s.Icon == "" || s.Token == "" {
			t.Fatalf("style %#v has empty fields", s)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate style id %q", s.ID)
		}
		seen[s.ID] = true
	}
	if DefaultStyle() != list[0].ID {
		t.Fatalf("DefaultStyle = %q, want %q", DefaultStyle(), list[0].ID)
	}
}

func TestStyles_ReturnsCopy(t *testing.T) {
	list := Styles()
	list[0].Name = "mutated"
	if Styles()[0].Name == "mutated" {
		t.Fatalf("Styles() should return a copy")
	}
}

func TestLookupAndIndex(t *testing.T) {
	opt, ok := LookupStyle(StyleCorporate)
	if !ok || opt.ID != StyleCorporate {
		t.Fatalf("LookupStyle(corporate) = %#v, %v", opt, ok)
	}
	if _, ok := LookupStyle("neon"); ok {
		t.Fatalf("LookupStyle(neon) ok = true, want false")
	}
	if got := StyleIndex(StyleLuxury); got != 3 {
		t.Fatalf("StyleIndex(luxury) = %d, want 3", got)
	}
	if got := StyleIndex("neon"); got != -1 {
		t.Fatalf("StyleIndex(neon) = %d, want -1", got)
	}
}

func TestStyleAt_Wraps(t *testing.T) {
	n := len(Styles())
	if got := StyleAt(n).ID; got != DefaultStyle() {
		t.Fatalf("StyleAt(n) = %q, want %q", got, DefaultStyle())
	}
	if got := StyleAt(-1).ID; got != Styles()[n-1].ID {
		t.Fatalf("StyleAt(-1) = %q, want last style", got)
	}
}

func TestExamplePrompts(t *testing.T) {
	if got := len(ExamplePrompts()); got != 3 {
		t.Fatalf("ExamplePrompts() returned %d prompts, want 3", got)
	}
	if got := len(Features()); got != 4 {
		t.Fatalf("Features() returned %d tiles, want 4", got)
	}
}
