package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/canopy/internal/core/domain"
	"go.trai.ch/canopy/internal/engine/tree"
)

// View renders the title, the rows inside the scroll window and the status line.
func (m *Model) View() string {
	if m.viewport.Height == 0 {
		return "Initializing..."
	}

	m.viewport.SetContent(strings.Join(m.Rows(), "\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header(),
		m.viewport.View(),
		m.statusLine(),
	)
}

// Rows renders only the nodes that cover the scroll window. A node taller than
// one row renders its label on the first row and blank rows after it.
func (m *Model) Rows() []string {
	total := m.tree.TotalHeight()
	m.scroller.Clamp(total)
	offset, height := m.scroller.Offset(), m.scroller.Height()

	rows := make([]string, 0, height)
	n := m.tree.NodeAt(offset)
	skip := 0
	if n != nil {
		skip = offset - n.Position()
	}
	for ; n != nil && len(rows) < height; n = n.FindNextNode(true, true) {
		for i := skip; i < n.SelfHeight() && len(rows) < height; i++ {
			if i == 0 {
				rows = append(rows, m.row(n))
			} else {
				rows = append(rows, "")
			}
		}
		skip = 0
	}
	return rows
}

func (m *Model) row(n *tree.Node) string {
	expander := " "
	switch {
	case n.IsLoading() || m.fetching[n.ID()] || m.loading[n.ID().String()]:
		expander = loadingStyle.Render("…")
	case n.HasChildren() && n.IsExpanded():
		expander = expanderStyle.Render("▾")
	case n.HasChildren():
		expander = expanderStyle.Render("▸")
	}

	marker := "  "
	style := rowStyle
	if n.IsActive() {
		style = activeStyle
	}
	if n.IsFocused() {
		marker = "> "
		style = focusedStyle
	}

	label := n.String()
	if class := n.Class(); class != "" {
		label += " " + statusStyle.Render("["+class+"]")
	}

	return marker + strings.Repeat(" ", n.Padding()) + expander + " " + style.Render(label)
}

func (m *Model) header() string {
	return titleStyle.Render("CANOPY")
}

func (m *Model) statusLine() string {
	if m.editing {
		return m.filter.View()
	}
	if m.err != nil {
		return errorStyle.Render("error: " + m.err.Error())
	}

	parts := []string{fmt.Sprintf("%d rows", m.tree.TotalHeight())}
	if n := m.tree.FocusedNode(); n != nil {
		parts = append(parts, n.ID().String())
	}
	if loading := m.loadingCount(); loading > 0 {
		parts = append(parts, fmt.Sprintf("loading %d", loading))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return statusStyle.Render(strings.Join(parts, " • "))
}

// loadingCount counts nodes being fetched or reported by load spans, once each.
func (m *Model) loadingCount() int {
	count := len(m.fetching)
	for id := range m.loading {
		if !m.fetching[domain.NewNodeID(id)] {
			count++
		}
	}
	return count
}
