// Package tui is a terminal browser for a catalog: a searchable, collapsible
// series table with a series index pane.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/poku-e/tackleindex/internal/catalog"
	"github.com/poku-e/tackleindex/internal/filter"
	"github.com/poku-e/tackleindex/internal/sidebar"
	"github.com/poku-e/tackleindex/internal/table"
)

type pane int

const (
	tablePane pane = iota
	indexPane
)

// scrollMargin is the number of lines kept above a header the series index
// jumps to.
const scrollMargin = 1

// Model is the bubbletea model of the browser.
type Model struct {
	title string
	body  *table.Memory
	ctrl  *filter.Controller
	index *sidebar.Index

	search textinput.Model
	focus  pane

	cursor      int // index into visible rows
	offset      int // first visible row drawn
	indexCursor int

	width  int
	height int
	status string
}

// New renders c into an in-memory table and wires the controller and
// series index to it.
func New(title string, c *catalog.Catalog, link table.LinkFunc, placeholder string) *Model {
	m := &Model{title: title, body: table.NewMemory(), height: 24, width: 80}
	binding := table.Render(m.body, c, link)
	m.ctrl = filter.New(binding)
	m.index = sidebar.Build(binding, m.ctrl, viewport{m}, scrollMargin)

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "🔍 "
	ti.CharLimit = 128
	m.search = ti
	return m
}

// Controller exposes the filter state, mainly for tests.
func (m *Model) Controller() *filter.Controller { return m.ctrl }

func (m *Model) Init() tea.Cmd { return nil }

// viewport scrolls the table pane to a header. It is the series index's
// view of the model.
type viewport struct{ m *Model }

func (v viewport) ScrollTo(header table.HeaderRow, margin int) {
	m := v.m
	for i, r := range m.body.Visible() {
		if table.HeaderRow(r) == header {
			m.cursor = i
			m.offset = max(0, i-margin)
			m.focus = tablePane
			return
		}
	}
}

func (m *Model) rows() []*table.MemoryRow { return m.body.Visible() }

func (m *Model) selected() *table.MemoryRow {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor]
}

func (m *Model) tableHeight() int {
	// title, search, blank, status, help
	return max(1, m.height-5)
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	h := m.tableHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}
