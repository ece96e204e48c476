package table

// Memory is an in-memory Body. Rows keeps every row in render order.
type Memory struct {
	Rows []*MemoryRow
}

// MemoryRow is a row of a Memory body. Series is set on header rows only.
type MemoryRow struct {
	Label    string
	Href     string
	Header   bool
	Hidden   bool
	Open     bool
	Position int
	series   string
}

var (
	_ Body      = (*Memory)(nil)
	_ HeaderRow = (*MemoryRow)(nil)
)

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Reset() { m.Rows = nil }

func (m *Memory) AppendHeader(series string) HeaderRow {
	r := &MemoryRow{Label: series, Header: true, series: series, Position: len(m.Rows)}
	m.Rows = append(m.Rows, r)
	return r
}

func (m *Memory) AppendItem(text, href string) Row {
	r := &MemoryRow{Label: text, Href: href, Position: len(m.Rows)}
	m.Rows = append(m.Rows, r)
	return r
}

// Visible returns the rows currently shown, in order.
func (m *Memory) Visible() []*MemoryRow {
	var out []*MemoryRow
	for _, r := range m.Rows {
		if !r.Hidden {
			out = append(out, r)
		}
	}
	return out
}

func (r *MemoryRow) Text() string { return r.Label }

func (r *MemoryRow) SetVisible(v bool) { r.Hidden = !v }

func (r *MemoryRow) Visible() bool { return !r.Hidden }

func (r *MemoryRow) Series() string { return r.series }

func (r *MemoryRow) SetExpanded(v bool) { r.Open = v }

func (r *MemoryRow) Expanded() bool { return r.Open }
