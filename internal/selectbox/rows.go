package selectbox

import "github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"

// Row is one rendered line of the options panel.
type Row struct {
	Item *option.Item

	// Header marks a group title row, which cannot be highlighted.
	Header bool

	// Divider marks a header that follows another group.
	Divider bool
}

// Rows lays out the visible options as rendered lines: one per option in
// flat mode, a header followed by its children per group in grouped mode.
// The row numbering matches Behavior.ActiveSpan.
func (s *State) Rows() []Row {
	if !s.Grouped() {
		rows := make([]Row, 0, len(s.options))
		for _, it := range s.options {
			rows = append(rows, Row{Item: it})
		}
		return rows
	}

	var rows []Row
	for gi, g := range s.options {
		rows = append(rows, Row{Item: g, Header: true, Divider: gi > 0})
		for _, c := range g.Children {
			rows = append(rows, Row{Item: c})
		}
	}
	return rows
}

// VisibleRows returns the rows inside the viewport and the index of the
// first one.
func (s *State) VisibleRows() ([]Row, int) {
	rows := s.Rows()
	start, end := s.viewport.Window(len(rows))
	return rows[start:end], start
}

// ItemAtRow returns the selectable item on visible row y, counted from the
// top of the viewport, or nil for headers and rows past the end.
func (s *State) ItemAtRow(y int) *option.Item {
	rows, _ := s.VisibleRows()
	if y < 0 || y >= len(rows) || rows[y].Header {
		return nil
	}
	return rows[y].Item
}

// Scroll moves the viewport by delta rows without changing the highlight.
func (s *State) Scroll(delta int) {
	s.viewport.Offset += delta
	s.viewport.Clamp(s.behavior.RowCount())
}
