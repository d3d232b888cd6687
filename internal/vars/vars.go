// Package vars implements the variable store used while parsing and
// expanding a makefile: a keyed table of string values tagged immediate or
// deferred, with synthesized defaults for a handful of reserved keys.
package vars

import "strings"

// Variable is a single stored value, tagged with whether it should be
// re-expanded every time it is fetched in an expansion context.
type Variable struct {
	Value     string
	Recursive bool
}

const defaultRecipePrefix = "\t"

// defaultSuffixes mirrors the conventional suffix list GNU make ships with.
var defaultSuffixes = ".out .a .ln .o .c .cc .C .cpp .p .f .F .r .y .l .s .S " +
	".mod .sym .def .h .info .dvi .tex .texinfo .texi .txinfo .w .ch .web .sh .elc .el"

// reservedDefaults holds the long-lived constant Variables returned for
// reserved keys when they are unset or explicitly blank. Held as package
// vars (not re-allocated per lookup) per the store's "cached Var" design.
var reservedDefaults = map[string]Variable{
	".RECIPEPREFIX": {Value: defaultRecipePrefix, Recursive: false},
	".SHELLFLAGS":   {Value: "-c", Recursive: false},
	"SHELL":         {Value: "/bin/sh", Recursive: false},
	"SUFFIXES":      {Value: defaultSuffixes, Recursive: false},
	".SUFFIXES":     {Value: defaultSuffixes, Recursive: false},
	"CC":            {Value: "cc", Recursive: false},
	"CXX":           {Value: "c++", Recursive: false},
	"AR":            {Value: "ar", Recursive: false},
	"AS":            {Value: "as", Recursive: false},
	"FC":            {Value: "f77", Recursive: false},
	"RM":            {Value: "rm -f", Recursive: false},
	"LD":            {Value: "ld", Recursive: false},
	"ARFLAGS":       {Value: "rv", Recursive: false},
	"CFLAGS":        {Value: "", Recursive: false},
	"CXXFLAGS":      {Value: "", Recursive: false},
	"CPPFLAGS":      {Value: "", Recursive: false},
	"LDFLAGS":       {Value: "", Recursive: false},
	"TARGET_ARCH":   {Value: "", Recursive: false},
	"OUTPUT_OPTION": {Value: "-o $@", Recursive: true},
	"COMPILE.c":     {Value: "$(CC) $(CFLAGS) $(CPPFLAGS) $(TARGET_ARCH) -c", Recursive: true},
	"COMPILE.cc":    {Value: "$(CXX) $(CXXFLAGS) $(CPPFLAGS) $(TARGET_ARCH) -c", Recursive: true},
	"COMPILE.cpp":   {Value: "$(CXX) $(CXXFLAGS) $(CPPFLAGS) $(TARGET_ARCH) -c", Recursive: true},
	"LINK.o":        {Value: "$(CC) $(LDFLAGS) $(TARGET_ARCH)", Recursive: true},
	"LINK.c":        {Value: "$(CC) $(CFLAGS) $(CPPFLAGS) $(LDFLAGS) $(TARGET_ARCH)", Recursive: true},
	"LINK.cc":       {Value: "$(CXX) $(CXXFLAGS) $(CPPFLAGS) $(LDFLAGS) $(TARGET_ARCH)", Recursive: true},
}

var blank = Variable{}

// badNameChars are the characters forbidden in a variable name, besides
// whitespace, per spec.md §3.
const badNameChars = ":#="

// Store is a keyed table of Variables. The zero value is not usable; use New.
type Store struct {
	m map[string]Variable
}

// New constructs an empty Store.
func New() *Store {
	return &Store{m: make(map[string]Variable)}
}

// NewFromEnv constructs a Store pre-populated from an initial environment,
// inherited as non-recursive assignments. SHELL is never imported from the
// environment — it keeps its built-in default unless the makefile itself
// assigns it.
func NewFromEnv(env map[string]string) *Store {
	s := New()
	for k, v := range env {
		if k == "SHELL" {
			continue
		}
		// Environment pairs are already well-formed; ignore validation
		// failures from exotic environment keys rather than fail startup.
		_ = s.Set(k, v, false)
	}
	return s
}

// Get trims name and returns the stored Variable. Reserved keys fall back to
// a synthesized default when unset or explicitly blank. Unknown keys return
// a blank, non-recursive Variable. Get never fails.
func (s *Store) Get(name string) Variable {
	name = strings.TrimSpace(name)

	if def, reserved := reservedDefaults[name]; reserved {
		if v, ok := s.m[name]; ok && v.Value != "" {
			return v
		}
		return def
	}

	if v, ok := s.m[name]; ok {
		return v
	}
	return blank
}

// Set trims name, validates it contains no whitespace or any of ":#=", and
// inserts unconditionally, overwriting any previous entry. Returns an error
// naming the bad name when validation fails.
func (s *Store) Set(name, value string, recursive bool) error {
	name = strings.TrimSpace(name)

	for _, r := range name {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' {
			return &InvalidNameError{Name: name, Reason: "contains whitespace"}
		}
		if strings.ContainsRune(badNameChars, r) {
			return &InvalidNameError{Name: name, Reason: "contains bad character '" + string(r) + "'"}
		}
	}
	if name == "" {
		return &InvalidNameError{Name: name, Reason: "is empty"}
	}

	s.m[name] = Variable{Value: value, Recursive: recursive}
	return nil
}

// Names returns every variable name explicitly set in the store (reserved
// defaults that were never assigned are not included), in no particular
// order. Used by front-ends that display the variable table; the Parser
// and Expander never call it.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.m))
	for name := range s.m {
		names = append(names, name)
	}
	return names
}

// InvalidNameError reports a variable name rejected by Set.
type InvalidNameError struct {
	Name   string
	Reason string
}

func (e *InvalidNameError) Error() string {
	return "invalid variable name \"" + e.Name + "\": " + e.Reason
}
