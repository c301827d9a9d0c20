// Package loader supplies candidate pools to a select box.
//
// # Sources
//
// A Source returns the items matching a query:
//
//	Static  - a fixed collection, filtered later by the widget itself
//	Remote  - an HTTP endpoint queried with the filter text
//
// Remote substitutes the query for SEARCH_VALUE in its URL template, sends a
// GET or POST request with an optional bearer token, and turns the decoded
// payload into items through an Extract function (by default a walk of the
// dotted ResponsePath).
//
// # Debounce
//
// A Loader sits between keystrokes and a Source. Each keystroke calls
// Schedule, which returns a Ticket tagged with a new generation and cancels
// any request still in flight. After the debounce delay the host calls Fetch
// with the ticket; Accept then hands back the items only if no newer ticket
// was issued in the meantime, so a slow response can never overwrite the
// result of a later query.
//
//	t := l.Schedule("ber")
//	// ... after l.Delay() ...
//	res := l.Fetch(ctx, t)
//	if items, ok := l.Accept(res); ok {
//	    state.SetItems(items)
//	}
//
// Fetch errors are never propagated to the widget. Accept logs them at debug
// level and reports false.
//
// # Watching
//
// Watcher signals on Changes when a static data file is rewritten, so the
// host can replace the pool wholesale.
package loader
