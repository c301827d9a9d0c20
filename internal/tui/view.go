package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/selectbox"
)

const (
	defaultWidth = 80

	// chromeBelow counts the status and help lines under the options.
	chromeBelow = 3

	ellipsis = "…"
)

// matchLine is the screen row of the selection / search line.
func (m Model) matchLine() int {
	if m.title != "" {
		return 1
	}
	return 0
}

// listTop is the screen row of the first option.
func (m Model) listTop() int {
	return m.matchLine() + 1
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteString("\n")
	}

	if m.state.IsOpen() {
		b.WriteString(m.searchLine())
		b.WriteString("\n")
		b.WriteString(m.optionsView())
	} else {
		b.WriteString(m.matchView())
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys.forPhase(m.state.IsOpen()))))
	return b.String()
}

// matchView renders the closed widget: the selection or the placeholder.
func (m Model) matchView() string {
	s := m.state
	cfg := s.Config()
	prompt := promptStyle.Render("▸ ")

	if s.Disabled() {
		return prompt + disabledStyle.Render(m.selectionText())
	}

	if len(s.Active()) == 0 {
		return prompt + placeholderStyle.Render(cfg.Placeholder)
	}

	if cfg.Multiple {
		return prompt + m.chips()
	}

	line := prompt + valueStyle.Render(truncate(option.StripTags(s.Active()[0].Text), m.contentWidth()-6))
	if cfg.AllowClear {
		line += " " + clearStyle.Render("×")
	}
	return line
}

// searchLine renders the open widget's input, after the chips in
// multi-select mode.
func (m Model) searchLine() string {
	prompt := promptStyle.Render("▸ ")
	if m.state.Config().Multiple && len(m.state.Active()) > 0 {
		return prompt + m.chips() + " " + m.input.View()
	}
	return prompt + m.input.View()
}

func (m Model) chips() string {
	parts := make([]string, 0, len(m.state.Active()))
	for _, it := range m.state.Active() {
		parts = append(parts, chipStyle.Render(truncate(option.StripTags(it.Text), 24)+" ×"))
	}
	return strings.Join(parts, " ")
}

func (m Model) selectionText() string {
	active := m.state.Active()
	if len(active) == 0 {
		return m.state.Config().Placeholder
	}
	texts := make([]string, 0, len(active))
	for _, it := range active {
		texts = append(texts, option.StripTags(it.Text))
	}
	return truncate(strings.Join(texts, ", "), m.contentWidth()-4)
}

// optionsView renders the visible option rows followed by a status line.
func (m Model) optionsView() string {
	var b strings.Builder
	width := m.contentWidth() - 4

	rows, _ := m.state.VisibleRows()
	for _, row := range rows {
		b.WriteString(m.renderRow(row, width))
		b.WriteString("\n")
	}

	switch {
	case m.loading:
		b.WriteString(dimStyle.Render("Loading…"))
	case len(rows) == 0 && m.loader != nil && m.state.Input() == "":
		b.WriteString(dimStyle.Render("Type to search"))
	case len(rows) == 0:
		b.WriteString(dimStyle.Render("No results found"))
	default:
		b.WriteString(m.scrollStatus())
	}
	return b.String()
}

func (m Model) scrollStatus() string {
	total := len(m.state.Rows())
	start, end := m.state.Viewport().Window(total)
	if start == 0 && end == total {
		return ""
	}
	var b strings.Builder
	if start > 0 {
		b.WriteString("↑ ")
	}
	if end < total {
		b.WriteString("↓ ")
	}
	b.WriteString("more")
	return dimStyle.Render(b.String())
}

func (m Model) renderRow(row selectbox.Row, width int) string {
	if row.Header {
		label := truncate(option.StripTags(row.Item.Text), width)
		if row.Divider {
			return dividerStyle.Render("─") + headerStyle.Render(label)
		}
		return " " + headerStyle.Render(label)
	}

	text := option.StripTags(row.Item.Text)
	label := highlight(truncate(text, width), m.state.Highlight(text))
	if m.state.IsActive(row.Item) {
		return activeOptionStyle.Render("› " + label)
	}
	return optionStyle.Render("  " + label)
}

// highlight styles the bytes of text at the given offsets. Offsets past the
// end of text, as left by truncation, are ignored.
func highlight(text string, offsets []int) string {
	if len(offsets) == 0 {
		return text
	}
	marked := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		marked[o] = true
	}

	var b strings.Builder
	for i, r := range text {
		if marked[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// truncate shortens s to width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}
