// Package runopts holds the Options record consumed by the Executor:
// the handful of flags that change how a build is carried out, independent
// of the makefile itself.
package runopts

// Options is the configuration the Executor reads before and during a
// build. The zero value is the default "just build what's out of date"
// behavior.
type Options struct {
	AlwaysMake   bool
	IgnoreErrors bool
	JustPrint    bool
	OldFile      map[string]bool
	NewFile      map[string]bool
}

// New returns an Options with empty old/new file sets.
func New() *Options {
	return &Options{
		OldFile: make(map[string]bool),
		NewFile: make(map[string]bool),
	}
}

// MarkOld records name as pinned to the epoch ("very old").
func (o *Options) MarkOld(name string) {
	if o.OldFile == nil {
		o.OldFile = make(map[string]bool)
	}
	o.OldFile[name] = true
}

// MarkNew records name as pinned far in the future ("very new").
func (o *Options) MarkNew(name string) {
	if o.NewFile == nil {
		o.NewFile = make(map[string]bool)
	}
	o.NewFile[name] = true
}

// Flags reconstructs a MAKEFLAGS-style string reflecting the active
// options, for propagation into a recipe's environment so a nested
// $(MAKE) invocation inherits -B/-i/-n.
func (o *Options) Flags() string {
	flags := ""
	if o.AlwaysMake {
		flags += "B"
	}
	if o.IgnoreErrors {
		flags += "i"
	}
	if o.JustPrint {
		flags += "n"
	}
	return flags
}
