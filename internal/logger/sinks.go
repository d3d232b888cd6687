package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// WriterSink adapts any io.Writer (typically os.Stderr) into a Sink,
// appending a trailing newline per event the way the default make sink
// does.
type WriterSink struct {
	W io.Writer
}

// NewStderrSink returns the default sink: standard error.
func NewStderrSink() WriterSink { return WriterSink{W: os.Stderr} }

func (s WriterSink) Write(msg string) {
	fmt.Fprintln(s.W, msg)
}

// IsTerminal reports whether W is a file descriptor attached to a terminal,
// satisfying the TerminalSink capability so Format knows when it is safe to
// colorize a WARN/ERROR snippet.
func (s WriterSink) IsTerminal() bool {
	f, ok := s.W.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Buffer is a Sink that accumulates every formatted line, for tests that
// want to assert on exactly what the core logged.
type Buffer struct {
	Lines []string
}

func (b *Buffer) Write(msg string) {
	b.Lines = append(b.Lines, msg)
}

// String joins every captured line with newlines, mirroring what a
// WriterSink would have produced.
func (b *Buffer) String() string {
	s := ""
	for i, line := range b.Lines {
		if i > 0 {
			s += "\n"
		}
		s += line
	}
	return s
}

// Multi fans a single event out to every wrapped Sink in order. Used to
// send the same diagnostics to stderr and, optionally, to a build-history
// export at once.
type Multi struct {
	Sinks []Sink
}

func (m Multi) Write(msg string) {
	for _, s := range m.Sinks {
		if s != nil {
			s.Write(msg)
		}
	}
}
