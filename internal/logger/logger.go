// Package logger implements the core's structured log events. The core
// never writes to a file or terminal directly — it hands each event to a
// Logger capability, so different front-ends can plug in different sinks
// without the core knowing about any specific I/O library.
package logger

import (
	"fmt"
	"strings"

	"github.com/mkrun-go/mkrun/internal/makefile"
)

// Level is one of the three severities the core ever emits.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "INFO"
	}
}

const maxSeverityLength = 5

// Sink is the capability a Logger writes formatted lines to.
type Sink interface {
	Write(msg string)
}

// TerminalSink is the capability a Sink optionally exposes to report
// whether it writes to a real terminal. A Sink that doesn't implement it is
// treated as non-terminal, so snippets stay plain text by default.
type TerminalSink interface {
	IsTerminal() bool
}

// Logger formats and dispatches log events. The zero value is ready to use
// and writes nowhere until a Sink is attached with New.
type Logger struct {
	sink Sink
}

// New returns a Logger that writes every formatted event to sink.
func New(sink Sink) *Logger {
	return &Logger{sink: sink}
}

// Info logs an informational event.
func (l *Logger) Info(msg string, ctx *makefile.Context) { l.log(Info, msg, ctx) }

// Warn logs a warning event.
func (l *Logger) Warn(msg string, ctx *makefile.Context) { l.log(Warn, msg, ctx) }

// Error logs an error event.
func (l *Logger) Error(msg string, ctx *makefile.Context) { l.log(Error, msg, ctx) }

func (l *Logger) log(level Level, msg string, ctx *makefile.Context) {
	if l == nil || l.sink == nil {
		return
	}
	terminal := false
	if ts, ok := l.sink.(TerminalSink); ok {
		terminal = ts.IsTerminal()
	}
	l.sink.Write(Format(level, msg, ctx, terminal))
}

// Format renders a single event as "make: LEVEL [location] | message",
// followed by a two-line source snippet for WARN/ERROR events that carry a
// captured line of text. When terminal is true, the snippet is run through
// the syntax highlighter; otherwise it stays plain text.
func Format(level Level, msg string, ctx *makefile.Context, terminal bool) string {
	levelDisplay := fmt.Sprintf("%-*s", maxSeverityLength, level.String())

	var locationDisplay string
	if ctx != nil {
		if label := ctx.Label(); label != "" {
			locationDisplay = "[" + label + "] "
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "make: %s %s| %s", levelDisplay, locationDisplay, msg)

	if (level == Warn || level == Error) && ctx != nil {
		if snippet := Snippet(*ctx, terminal); snippet != "" {
			b.WriteByte('\n')
			b.WriteString(snippet)
		}
	}

	return b.String()
}
