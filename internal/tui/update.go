package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.clampCursor()
		return m, nil
	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if key.Matches(msg, keys.Clear) || msg.Type == tea.KeyEnter {
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.ctrl.Query() {
		m.ctrl.SetQuery(v)
		m.cursor, m.offset = 0, 0
	}
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Search):
		m.focus = tablePane
		return m, m.search.Focus()
	case key.Matches(msg, keys.Clear):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.ctrl.SetQuery("")
			m.clampCursor()
		}
	case key.Matches(msg, keys.SwitchPane):
		if m.focus == tablePane && m.index != nil {
			m.focus = indexPane
		} else {
			m.focus = tablePane
		}
	case key.Matches(msg, keys.ExpandAll):
		m.ctrl.ExpandAll()
		m.clampCursor()
	case key.Matches(msg, keys.CollapseAll):
		m.ctrl.CollapseAll()
		m.clampCursor()
	case key.Matches(msg, keys.Up):
		m.move(-1)
	case key.Matches(msg, keys.Down):
		m.move(1)
	case key.Matches(msg, keys.Toggle):
		m.activate()
	}
	return m, nil
}

func (m *Model) move(delta int) {
	if m.focus == indexPane {
		m.indexCursor = min(max(0, m.indexCursor+delta), len(m.index.Entries)-1)
		return
	}
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) activate() {
	if m.focus == indexPane {
		if m.index == nil || m.indexCursor >= len(m.index.Entries) {
			return
		}
		m.index.Entries[m.indexCursor].Activate()
		m.clampCursor()
		return
	}
	r := m.selected()
	if r == nil {
		return
	}
	if r.Header {
		m.ctrl.Toggle(r.Series())
		m.clampCursor()
		return
	}
	m.status = r.Href
}
