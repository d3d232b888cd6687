// Package makefile implements the line-oriented parser that turns makefile
// text into a rule graph and a variable table, plus the append-only rule
// map that indexes rules by the target they produce.
package makefile

import "fmt"

// Context is a source location used for diagnostics: an optional path, an
// optional 1-based line index, an optional 0-based column index, and an
// optional captured line of text.
type Context struct {
	Path   string
	Line   int
	Column int
	Text   string

	hasLine   bool
	hasColumn bool
}

// NewContext returns an empty Context with no path or line recorded.
func NewContext() Context {
	return Context{}
}

// FromPath returns a Context anchored to path with no line recorded yet.
func FromPath(path string) Context {
	return Context{Path: path}
}

// WithLine returns a copy of c advanced to the given 1-based line and text.
func (c Context) WithLine(line int, text string) Context {
	c.Line = line
	c.Text = text
	c.hasLine = true
	c.hasColumn = false
	c.Column = 0
	return c
}

// WithColumn returns a copy of c annotated with a 0-based column.
func (c Context) WithColumn(col int) Context {
	c.Column = col
	c.hasColumn = true
	return c
}

// HasLine reports whether a line number was recorded.
func (c Context) HasLine() bool { return c.hasLine }

// HasColumn reports whether a column was recorded.
func (c Context) HasColumn() bool { return c.hasColumn }

// Label renders the "path:line[:col]" portion used by the Logger, or ""
// when there is no path to report.
func (c Context) Label() string {
	if c.Path == "" {
		return ""
	}
	if !c.hasLine {
		return c.Path
	}
	if c.hasColumn {
		return fmt.Sprintf("%s:%d:%d", c.Path, c.Line, c.Column)
	}
	return fmt.Sprintf("%s:%d", c.Path, c.Line)
}
