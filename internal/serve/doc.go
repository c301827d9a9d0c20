// Package serve exposes a static option pool over HTTP in the shape remote
// settings read, so a data file can back an ajax select box elsewhere.
//
// GET or POST /search?q=TEXT filters the pool the way the widget does and
// answers
//
//	{"results": [{"id": "...", "text": "..."}, ...]}
//
// Groups keep their visible children under "children". The field names
// follow the settings' idField and textField. Point a remote source at
//
//	http://ADDR/search?q=SEARCH_VALUE
//
// with responsePath "results".
package serve
