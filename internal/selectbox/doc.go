// Package selectbox implements the state of a searchable select box,
// independent of any screen.
//
// A State owns four things:
//
//   - the item pool, replaced wholesale by SetItems
//   - the visible options, recomputed on Open and on every change of the
//     filter text or of the selection
//   - the active set, changed only by Select, Remove and WriteValue
//   - the highlighted option, moved by a Behavior
//
// # Navigation
//
// The Behavior is picked whenever the pool is replaced. A pool in which any
// top-level item has children is navigated in grouped mode: Next and Prev
// walk the children of all visible groups as one circular sequence. Any
// other pool is navigated as a flat circular list.
//
// Every move keeps the highlighted row inside the Viewport, scrolling by the
// minimum amount needed.
//
// # Keyboard
//
// HandleKey applies the keyboard contract:
//
//	Tab                     passes through
//	Escape                  closes
//	Backspace on no input   removes the last selection
//	Delete                  removes the last selection
//	Left / Right            highlights the first / last option
//	Up / Down               highlights the previous / next option
//	Enter                   commits the highlight, then moves to the next
//	printable rune          opens (when closed) and extends the filter
//
// # Host integration
//
// Hosts observe the widget through a Sink (selected, removed, typed, data)
// and through the value accessor trio WriteValue, RegisterOnChange and
// RegisterOnTouched. The change callback receives Transform(active), by
// default a []option.Value. A disabled widget ignores every mutation.
package selectbox
