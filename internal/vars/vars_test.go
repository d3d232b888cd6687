package vars

import "testing"

func TestGetUnknownIsBlank(t *testing.T) {
	s := New()
	v := s.Get("NOPE")
	if v.Value != "" || v.Recursive {
		t.Fatalf("expected blank non-recursive variable, got %+v", v)
	}
}

func TestSetThenGet(t *testing.T) {
	s := New()
	if err := s.Set("A", "B", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := s.Get("A")
	if v.Value != "B" || v.Recursive {
		t.Fatalf("got %+v", v)
	}
	if s.Get("B").Value != "" {
		t.Fatalf("unrelated key should remain blank")
	}
}

func TestSetTrimsKeyAndRejectsBadChars(t *testing.T) {
	s := New()
	if err := s.Set("  A  ", "1", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Get("A").Value != "1" {
		t.Fatalf("expected trimmed key to be stored")
	}

	for _, bad := range []string{"A B", "A:B", "A#B", "A=B", "A\tB"} {
		if err := s.Set(bad, "x", false); err == nil {
			t.Fatalf("expected error for name %q", bad)
		}
	}
}

func TestRecipePrefixDefaultAndReset(t *testing.T) {
	s := New()
	if got := s.Get(".RECIPEPREFIX").Value; got != "\t" {
		t.Fatalf("expected default tab, got %q", got)
	}

	if err := s.Set(".RECIPEPREFIX", ">", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Get(".RECIPEPREFIX").Value; got != ">" {
		t.Fatalf("expected overridden prefix, got %q", got)
	}

	// Setting it blank resets to the default, per spec.
	if err := s.Set(".RECIPEPREFIX", "", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Get(".RECIPEPREFIX").Value; got != "\t" {
		t.Fatalf("expected default tab after blanking, got %q", got)
	}
}

func TestShellDefaultAndOverride(t *testing.T) {
	s := New()
	if got := s.Get("SHELL").Value; got != "/bin/sh" {
		t.Fatalf("expected /bin/sh default, got %q", got)
	}
	if err := s.Set("SHELL", "/bin/bash", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Get("SHELL").Value; got != "/bin/bash" {
		t.Fatalf("expected explicit override, got %q", got)
	}
}

func TestNewFromEnvSkipsShell(t *testing.T) {
	s := NewFromEnv(map[string]string{"SHELL": "/usr/bin/zsh", "FOO": "bar"})
	if got := s.Get("SHELL").Value; got != "/bin/sh" {
		t.Fatalf("SHELL must not be imported from environment, got %q", got)
	}
	if got := s.Get("FOO").Value; got != "bar" {
		t.Fatalf("expected FOO from env, got %q", got)
	}
}

func TestNamesListsExplicitlySetKeysOnly(t *testing.T) {
	s := New()
	_ = s.Set("A", "1", false)
	_ = s.Set("B", "2", false)

	names := s.Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}
	if !seen["A"] || !seen["B"] {
		t.Fatalf("expected A and B in %v", names)
	}
	if seen["CC"] {
		t.Fatalf("unassigned reserved defaults must not appear in Names()")
	}
}

func TestReservedToolDefaults(t *testing.T) {
	s := New()
	cases := map[string]string{
		"CC": "cc",
		"AR": "ar",
		"RM": "rm -f",
	}
	for k, want := range cases {
		if got := s.Get(k).Value; got != want {
			t.Fatalf("%s: got %q want %q", k, got, want)
		}
	}
}
