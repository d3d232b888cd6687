package logger

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mkrun-go/mkrun/internal/highlight"
	"github.com/mkrun-go/mkrun/internal/makefile"
)

// caretColor highlights the caret line itself; the captured source text is
// colorized separately by the syntax highlighter.
var caretColor = lipgloss.NewStyle().Foreground(lipgloss.Color("#F92672")).Bold(true)

// Snippet renders a two-line source excerpt — a line-number gutter holding
// the captured text, and a caret line pointing at the recorded column —
// from a Context. Returns "" when the Context carries no captured line. When
// terminal is true the captured line is run through the syntax highlighter
// and the caret is colorized; a non-terminal sink always gets plain text.
func Snippet(ctx makefile.Context, terminal bool) string {
	if ctx.Text == "" || !ctx.HasLine() {
		return ""
	}

	text := ctx.Text
	if terminal {
		text = highlight.HighlightContextLine(ctx)
	}

	gutter := fmt.Sprintf("%d | ", ctx.Line)
	var b strings.Builder
	b.WriteString(gutter)
	b.WriteString(text)

	if ctx.HasColumn() {
		caret := strings.Repeat(" ", len(gutter)+ctx.Column) + "^"
		b.WriteByte('\n')
		if terminal {
			b.WriteString(caretColor.Render(caret))
		} else {
			b.WriteString(caret)
		}
	}

	return b.String()
}
