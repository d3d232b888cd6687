package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func setupBrowserTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir sub: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "Makefile"), []byte("all:\n\techo hi\n"), 0o644); err != nil {
		t.Fatalf("write Makefile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("write README: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "makefile"), []byte("x:\n\ttrue\n"), 0o644); err != nil {
		t.Fatalf("write sub/makefile: %v", err)
	}

	return root
}

func TestNewBrowserListsEntriesSorted(t *testing.T) {
	root := setupBrowserTree(t)

	b, err := NewBrowser(root)
	if err != nil {
		t.Fatalf("NewBrowser: %v", err)
	}

	if b.CountMakefiles() != 1 {
		t.Fatalf("expected 1 makefile in root, got %d", b.CountMakefiles())
	}

	// Directories sort before files, alphabetically within each group.
	var sawDir bool
	for _, e := range b.Entries {
		if e.IsDir {
			sawDir = true
			continue
		}
		if !sawDir {
			t.Fatalf("expected directory entries before file entries, got %+v", b.Entries)
		}
	}
}

func TestBrowserNavigateIntoAndUp(t *testing.T) {
	root := setupBrowserTree(t)

	b, err := NewBrowser(root)
	if err != nil {
		t.Fatalf("NewBrowser: %v", err)
	}

	idx := -1
	for i, e := range b.Entries {
		if e.Name == "sub" {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("expected a sub directory entry, got %+v", b.Entries)
	}
	b.SelectedIdx = idx

	if err := b.NavigateInto(); err != nil {
		t.Fatalf("NavigateInto: %v", err)
	}
	if b.CountMakefiles() != 1 {
		t.Fatalf("expected 1 makefile in sub, got %d", b.CountMakefiles())
	}

	if err := b.NavigateUp(); err != nil {
		t.Fatalf("NavigateUp: %v", err)
	}
	if b.CurrentDir != root {
		t.Fatalf("expected to return to %s, got %s", root, b.CurrentDir)
	}
}

func TestBrowserMoveSelection(t *testing.T) {
	root := setupBrowserTree(t)

	b, err := NewBrowser(root)
	if err != nil {
		t.Fatalf("NewBrowser: %v", err)
	}
	if len(b.Entries) < 2 {
		t.Fatalf("expected at least 2 entries to move between, got %d", len(b.Entries))
	}

	b.SelectedIdx = 0
	b.MoveUp() // already at top, no-op
	if b.SelectedIdx != 0 {
		t.Fatalf("expected MoveUp at top to stay at 0, got %d", b.SelectedIdx)
	}

	b.MoveDown()
	if b.SelectedIdx != 1 {
		t.Fatalf("expected MoveDown to advance to 1, got %d", b.SelectedIdx)
	}

	sel := b.GetCurrentSelection()
	if sel == nil || sel.Name != b.Entries[1].Name {
		t.Fatalf("GetCurrentSelection did not match Entries[1]: %+v", sel)
	}
}

func TestBrowserStartedOnFileUsesParentDir(t *testing.T) {
	root := setupBrowserTree(t)
	makefilePath := filepath.Join(root, "Makefile")

	b, err := NewBrowser(makefilePath)
	if err != nil {
		t.Fatalf("NewBrowser: %v", err)
	}
	if b.CurrentDir != root {
		t.Fatalf("expected CurrentDir %s, got %s", root, b.CurrentDir)
	}
}
