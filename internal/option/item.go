package option

// Item is one selectable entry. An item with children is a group header and
// is never selectable itself; only its children are.
type Item struct {
	ID   string
	Text string

	// Children holds the entries of a group, in display order.
	Children []*Item

	// Parent is the ID of the containing group, empty for top-level items.
	// It is only ever resolved by lookup in the owning collection.
	Parent string

	// Properties keeps the raw candidate the item was built from.
	Properties map[string]any
}

// New creates a leaf item.
func New(id, text string) *Item {
	return &Item{ID: id, Text: text}
}

// NewGroup creates a group item and points each child's Parent at it.
func NewGroup(id, text string, children ...*Item) *Item {
	g := &Item{ID: id, Text: text}
	for _, c := range children {
		c.Parent = id
	}
	g.Children = children
	return g
}

// HasChildren reports whether the item is a group.
func (i *Item) HasChildren() bool {
	return len(i.Children) > 0
}

// Selectable reports whether the item can be committed as a selection.
func (i *Item) Selectable() bool {
	return !i.HasChildren()
}

// GetSimilar returns a shallow copy without children, so filtering can
// rebuild groups without touching the original tree.
func (i *Item) GetSimilar() *Item {
	return &Item{
		ID:         i.ID,
		Text:       i.Text,
		Parent:     i.Parent,
		Properties: i.Properties,
	}
}

// FillChildrenHash assigns each child its visible row index, starting at
// start, and returns the next free index. Children are keyed by Key.
func (i *Item) FillChildrenHash(m map[string]int, start int) int {
	for _, c := range i.Children {
		m[c.Key()] = start
		start++
	}
	return start
}

// Key identifies the item within its group. Ids only need to be unique
// inside one group.
func (i *Item) Key() string {
	if i.Parent == "" {
		return i.ID
	}
	return i.Parent + "\x1f" + i.ID
}

// Same reports whether a and b name the same entry: equal ids, and equal
// parents when both are known. Values written by the host carry no parent
// and match by id alone.
func Same(a, b *Item) bool {
	if a == nil || b == nil || a.ID != b.ID {
		return false
	}
	return a.Parent == "" || b.Parent == "" || a.Parent == b.Parent
}

// IndexOf returns the position of the entry naming the same item as it, or
// -1.
func IndexOf(items []*Item, it *Item) int {
	for idx, x := range items {
		if Same(x, it) {
			return idx
		}
	}
	return -1
}

// AnyHasChildren reports whether a list should be navigated in grouped mode.
func AnyHasChildren(items []*Item) bool {
	for _, it := range items {
		if it.HasChildren() {
			return true
		}
	}
	return false
}

// IndexByID returns the position of the item with the given id, or -1.
func IndexByID(items []*Item, id string) int {
	for idx, it := range items {
		if it.ID == id {
			return idx
		}
	}
	return -1
}

// Contains reports whether an item with the given id is in items.
func Contains(items []*Item, id string) bool {
	return IndexByID(items, id) >= 0
}
