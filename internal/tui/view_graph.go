package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mkrun-go/mkrun/internal/graph"
)

// renderGraphView renders the dependency graph for the current graph target
// (or the whole makefile when no target is selected), as an ASCII tree.
func (m Model) renderGraphView() string {
	if m.Graph == nil {
		return "\n  No dependency graph available.\n\n  Press esc to return.\n"
	}

	g := m.Graph
	if m.GraphTarget != "" {
		if sub := g.GetSubgraph(m.GraphTarget, m.GraphDepth); sub != nil {
			g = sub
		}
	}

	renderer := graph.TreeRenderer{
		ShowOrder:    m.ShowOrder,
		ShowCritical: m.ShowCritical,
		ShowParallel: m.ShowParallel,
	}

	var title string
	if m.GraphTarget != "" {
		title = TitleStyle.Render(fmt.Sprintf("Dependency graph: %s", m.GraphTarget))
	} else {
		title = TitleStyle.Render("Dependency graph")
	}

	tree := g.RenderTree(renderer)

	contentWidth := getContentWidth(m.Width)
	containerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderColor).
		Padding(1, 2).
		Width(max(contentWidth-6, 20))

	var body strings.Builder
	body.WriteString(title)
	body.WriteString("\n\n")
	body.WriteString(tree)

	depthLabel := "unlimited"
	if m.GraphDepth >= 0 {
		depthLabel = fmt.Sprintf("%d", m.GraphDepth)
	}
	footer := lipgloss.NewStyle().
		Foreground(MutedColor).
		Render(fmt.Sprintf(
			"\ndepth: %s • o: order %s • c: critical path %s • p: parallel %s • +/-: depth • esc/g: return • q: quit",
			depthLabel, toggleState(m.ShowOrder), toggleState(m.ShowCritical), toggleState(m.ShowParallel),
		))

	return "\n" + containerStyle.Render(body.String()) + footer
}

func toggleState(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
