// Package option defines the entries a select box offers.
//
// An Item is either a leaf, which can be selected, or a group whose
// Children are the selectable entries. Groups are one level deep; a list in
// which any top-level item has children is navigated in grouped mode.
//
// Children refer to their group through Parent, which holds the group's ID
// rather than a pointer:
//
//	g := option.NewGroup("fruit", "Fruit", option.New("1", "Apple"), option.New("2", "Pear"))
//	g.Children[0].Parent // "fruit"
//
// Raw candidates, as found in settings files or remote payloads, go through
// Ingest, which keeps strings and maps carrying both an id and a display
// field and silently drops everything else.
package option
