package tui

import "testing"

func TestToggleState(t *testing.T) {
	if toggleState(true) != "on" {
		t.Fatalf("expected on, got %q", toggleState(true))
	}
	if toggleState(false) != "off" {
		t.Fatalf("expected off, got %q", toggleState(false))
	}
}

func TestPadKey(t *testing.T) {
	if got := padKey("g", 5); got != "g    " {
		t.Fatalf("expected padded key, got %q", got)
	}
	if got := padKey("ctrl+shift+x", 5); got != "ctrl+shift+x " {
		t.Fatalf("expected long key left unpadded plus trailing space, got %q", got)
	}
}
