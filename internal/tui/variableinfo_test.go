package tui

import (
	"testing"

	"github.com/mkrun-go/mkrun/internal/makefile"
	"github.com/mkrun-go/mkrun/internal/vars"
)

func TestBuildVariableInfosAlphabeticalAndKind(t *testing.T) {
	store := vars.New()
	_ = store.Set("ZETA", "last", false)
	_ = store.Set("ALPHA", "$(ZETA)", true)

	infos := BuildVariableInfos(store, nil)
	if len(infos) != 2 {
		t.Fatalf("expected 2 variables, got %d", len(infos))
	}
	if infos[0].Name != "ALPHA" || infos[1].Name != "ZETA" {
		t.Fatalf("expected alphabetical order, got %v then %v", infos[0].Name, infos[1].Name)
	}
	if infos[0].Type != KindRecursive {
		t.Fatalf("expected ALPHA to be recursive")
	}
	if infos[0].ExpandedValue != "$(ZETA)" {
		t.Fatalf("expected recursive variable to carry its raw value as expanded, got %q", infos[0].ExpandedValue)
	}
	if infos[1].Type != KindImmediate {
		t.Fatalf("expected ZETA to be immediate")
	}
	if infos[1].ExpandedValue != "" {
		t.Fatalf("immediate variable should have no separate expanded value, got %q", infos[1].ExpandedValue)
	}
}

func TestBuildVariableInfosTracksUsageByTarget(t *testing.T) {
	store := vars.New()
	_ = store.Set("CC", "gcc", false)
	_ = store.Set("X", "1", false)

	targets := []makefile.Target{
		{Name: "build", Recipe: []string{"$(CC) -o out main.c"}},
		{Name: "clean", Recipe: []string{"rm -f out"}},
		{Name: "echo", Recipe: []string{"echo $X"}},
	}

	infos := BuildVariableInfos(store, targets)

	var cc, x VariableInfo
	for _, v := range infos {
		switch v.Name {
		case "CC":
			cc = v
		case "X":
			x = v
		}
	}

	if len(cc.UsedByTargets) != 1 || cc.UsedByTargets[0] != "build" {
		t.Fatalf("expected CC used only by build, got %v", cc.UsedByTargets)
	}
	if len(x.UsedByTargets) != 1 || x.UsedByTargets[0] != "echo" {
		t.Fatalf("expected X used only by echo (single-letter $X form), got %v", x.UsedByTargets)
	}
}

func TestBuildVariableInfosUnusedVariableHasNoTargets(t *testing.T) {
	store := vars.New()
	_ = store.Set("UNUSED", "value", false)

	targets := []makefile.Target{
		{Name: "build", Recipe: []string{"echo hello"}},
	}

	infos := BuildVariableInfos(store, targets)
	if len(infos) != 1 {
		t.Fatalf("expected 1 variable, got %d", len(infos))
	}
	if len(infos[0].UsedByTargets) != 0 {
		t.Fatalf("expected no users, got %v", infos[0].UsedByTargets)
	}
}

func TestVariableKindSymbolAndString(t *testing.T) {
	if KindImmediate.Symbol() != ":=" || KindImmediate.String() != "immediate" {
		t.Fatalf("unexpected immediate kind rendering: %q %q", KindImmediate.Symbol(), KindImmediate.String())
	}
	if KindRecursive.Symbol() != "=" || KindRecursive.String() != "recursive" {
		t.Fatalf("unexpected recursive kind rendering: %q %q", KindRecursive.Symbol(), KindRecursive.String())
	}
}
