package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	indexBoxStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).PaddingLeft(1)
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	content := m.renderTable()
	if m.index != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, indexBoxStyle.Render(m.renderIndex()))
	}
	b.WriteString(content)
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpLine()))
	return b.String()
}

func (m *Model) renderTable() string {
	rows := m.rows()
	if len(rows) == 0 {
		return dimStyle.Render("(no rows)")
	}
	end := min(len(rows), m.offset+m.tableHeight())
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		r := rows[i]
		var line string
		if r.Header {
			icon := "▸ "
			if r.Expanded() {
				icon = "▾ "
			}
			line = headerStyle.Render(icon + r.Label)
		} else {
			line = "    " + r.Label
		}
		if i == m.cursor && m.focus == tablePane {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderIndex() string {
	lines := make([]string, 0, len(m.index.Entries))
	for i, name := range m.index.Names() {
		if i == m.indexCursor && m.focus == indexPane {
			name = cursorStyle.Render(name)
		}
		lines = append(lines, name)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) helpLine() string {
	parts := make([]string, 0, len(keys.ShortHelp()))
	for _, k := range keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
