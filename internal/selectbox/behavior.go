package selectbox

import (
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/match"
	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
)

// Behavior moves the highlighted option and recomputes the visible options.
// One implementation exists per list shape: flat lists and two-level groups.
type Behavior interface {
	First()
	Last()
	Prev()
	Next()

	// Filter recomputes the visible options from the full item pool and
	// highlights the first result, or nothing when there is none.
	Filter(pattern string)

	// ActiveSpan returns the rendered rows that must be visible for the
	// highlighted option to be in view. ok is false when nothing is
	// highlighted.
	ActiveSpan() (top, height int, ok bool)

	// RowCount returns the number of rendered rows for the current options.
	RowCount() int
}

func newBehavior(s *State) Behavior {
	if option.AnyHasChildren(s.items) {
		return &groupedBehavior{s: s, optionsMap: map[string]int{}}
	}
	return &flatBehavior{s: s}
}

// excluded reports whether an item is hidden because it is already part of
// a multi-select value.
func (s *State) excluded(it *option.Item) bool {
	return s.cfg.Multiple && option.IndexOf(s.active, it) >= 0
}

func (s *State) matches(m match.Matcher, it *option.Item) bool {
	ok, _ := m.Match(option.StripTags(it.Text))
	return ok
}

type flatBehavior struct {
	s *State
}

func (b *flatBehavior) First() {
	if len(b.s.options) == 0 {
		return
	}
	b.s.activeOption = b.s.options[0]
	b.s.ensureVisible()
}

func (b *flatBehavior) Last() {
	if len(b.s.options) == 0 {
		return
	}
	b.s.activeOption = b.s.options[len(b.s.options)-1]
	b.s.ensureVisible()
}

func (b *flatBehavior) Prev() {
	n := len(b.s.options)
	if n == 0 {
		return
	}
	idx := b.activeIndex() - 1
	if idx < 0 {
		idx = n - 1
	}
	b.s.activeOption = b.s.options[idx]
	b.s.ensureVisible()
}

func (b *flatBehavior) Next() {
	n := len(b.s.options)
	if n == 0 {
		return
	}
	idx := b.activeIndex() + 1
	if idx > n-1 {
		idx = 0
	}
	b.s.activeOption = b.s.options[idx]
	b.s.ensureVisible()
}

func (b *flatBehavior) Filter(pattern string) {
	m := b.s.matcher(pattern)
	options := make([]*option.Item, 0, len(b.s.items))
	for _, it := range b.s.items {
		if b.s.matches(m, it) && !b.s.excluded(it) {
			options = append(options, it)
		}
	}
	b.s.options = options
	if len(options) == 0 {
		b.s.activeOption = nil
		b.s.viewport.Offset = 0
		return
	}
	b.s.activeOption = options[0]
	b.s.ensureVisible()
}

func (b *flatBehavior) ActiveSpan() (int, int, bool) {
	idx := b.activeIndex()
	if idx < 0 {
		return 0, 0, false
	}
	return idx, 1, true
}

func (b *flatBehavior) RowCount() int {
	return len(b.s.options)
}

func (b *flatBehavior) activeIndex() int {
	if b.s.activeOption == nil {
		return -1
	}
	return option.IndexOf(b.s.options, b.s.activeOption)
}

// groupedBehavior navigates the children of the visible groups as one
// sequence. optionsMap holds each visible child's position in that sequence,
// keyed by option.Item.Key.
type groupedBehavior struct {
	s          *State
	optionsMap map[string]int
}

func (b *groupedBehavior) First() {
	if len(b.s.options) == 0 {
		return
	}
	b.s.activeOption = b.s.options[0].Children[0]
	b.fillOptionsMap()
	b.s.ensureVisible()
}

func (b *groupedBehavior) Last() {
	if len(b.s.options) == 0 {
		return
	}
	last := b.s.options[len(b.s.options)-1]
	b.s.activeOption = last.Children[len(last.Children)-1]
	b.fillOptionsMap()
	b.s.ensureVisible()
}

func (b *groupedBehavior) Prev() {
	if len(b.s.options) == 0 {
		return
	}
	gi, ci := b.locate()
	switch {
	case gi < 0:
		b.Last()
		return
	case ci > 0:
		b.s.activeOption = b.s.options[gi].Children[ci-1]
	case gi > 0:
		prev := b.s.options[gi-1]
		b.s.activeOption = prev.Children[len(prev.Children)-1]
	default:
		b.Last()
		return
	}
	b.fillOptionsMap()
	b.s.ensureVisible()
}

func (b *groupedBehavior) Next() {
	if len(b.s.options) == 0 {
		return
	}
	gi, ci := b.locate()
	switch {
	case gi < 0:
		b.First()
		return
	case ci+1 < len(b.s.options[gi].Children):
		b.s.activeOption = b.s.options[gi].Children[ci+1]
	case gi+1 < len(b.s.options):
		b.s.activeOption = b.s.options[gi+1].Children[0]
	default:
		b.First()
		return
	}
	b.fillOptionsMap()
	b.s.ensureVisible()
}

// Filter keeps the matching children of every group and drops groups left
// empty. Top-level items without children have no place in a grouped
// rendering and are not shown.
func (b *groupedBehavior) Filter(pattern string) {
	m := b.s.matcher(pattern)
	var options []*option.Item
	for _, g := range b.s.items {
		var children []*option.Item
		for _, c := range g.Children {
			if b.s.matches(m, c) && !b.s.excluded(c) {
				children = append(children, c)
			}
		}
		if len(children) == 0 {
			continue
		}
		ng := g.GetSimilar()
		ng.Children = children
		options = append(options, ng)
	}
	b.s.options = options
	b.fillOptionsMap()
	if len(options) == 0 {
		b.s.activeOption = nil
		b.s.viewport.Offset = 0
		return
	}
	b.s.activeOption = options[0].Children[0]
	b.s.ensureVisible()
}

// ActiveSpan accounts for one header row per group. The first child of a
// group pulls its header into view with it.
func (b *groupedBehavior) ActiveSpan() (int, int, bool) {
	gi, ci := b.locate()
	if gi < 0 {
		return 0, 0, false
	}
	row := 0
	for _, g := range b.s.options[:gi] {
		row += 1 + len(g.Children)
	}
	row += 1 + ci
	if ci == 0 {
		return row - 1, 2, true
	}
	return row, 1, true
}

func (b *groupedBehavior) RowCount() int {
	n := 0
	for _, g := range b.s.options {
		n += 1 + len(g.Children)
	}
	return n
}

// locate finds the highlighted child by identity, so groups sharing an id
// or children sharing an id across groups stay apart. The index map gives
// the likely position; a scan covers the rest. Both indexes are -1 when
// nothing visible is highlighted.
func (b *groupedBehavior) locate() (int, int) {
	a := b.s.activeOption
	if a == nil {
		return -1, -1
	}
	if pos, ok := b.optionsMap[a.Key()]; ok {
		for gi, g := range b.s.options {
			if pos < len(g.Children) {
				if g.Children[pos] == a {
					return gi, pos
				}
				break
			}
			pos -= len(g.Children)
		}
	}

	fg, fc := -1, -1
	for gi, g := range b.s.options {
		for ci, c := range g.Children {
			if c == a {
				return gi, ci
			}
			if fg < 0 && option.Same(c, a) {
				fg, fc = gi, ci
			}
		}
	}
	return fg, fc
}

func (b *groupedBehavior) fillOptionsMap() {
	clear(b.optionsMap)
	start := 0
	for _, g := range b.s.options {
		start = g.FillChildrenHash(b.optionsMap, start)
	}
}
