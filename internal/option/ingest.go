package option

import (
	"encoding/json"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// childrenField is the key carrying nested entries in raw candidates.
const childrenField = "children"

var stripPolicy = bluemonday.StrictPolicy()

// StripTags removes markup from a label. Entities escaped by the sanitizer
// are turned back into plain text.
func StripTags(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}
	return html.UnescapeString(stripPolicy.Sanitize(text))
}

// Ingest turns raw candidates into items. Strings become items whose id and
// text are the string itself. Maps need a non-empty display field and an id
// (string or number); a top-level map with a non-empty children array is a
// group whose id defaults to its text. Groups are one level deep: children
// inside a group are leaves and their own children are ignored. Anything
// else is dropped.
func Ingest(raw []any, idField, textField string) []*Item {
	items := make([]*Item, 0, len(raw))
	for _, r := range raw {
		if it, ok := ingestOne(r, idField, textField, ""); ok {
			items = append(items, it)
		}
	}
	return items
}

func ingestOne(raw any, idField, textField, parent string) (*Item, bool) {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil, false
		}
		return &Item{ID: v, Text: v, Parent: parent}, true
	case map[string]any:
		return ingestMap(v, idField, textField, parent)
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, val := range v {
			m[fmt.Sprint(k)] = val
		}
		return ingestMap(m, idField, textField, parent)
	}
	return nil, false
}

func ingestMap(m map[string]any, idField, textField, parent string) (*Item, bool) {
	text, ok := m[textField].(string)
	if !ok || text == "" {
		return nil, false
	}
	id, hasID := FormatID(m[idField])

	if rawChildren, ok := m[childrenField].([]any); ok && len(rawChildren) > 0 && parent == "" {
		if !hasID {
			id = text
		}
		group := &Item{ID: id, Text: text, Parent: parent, Properties: m}
		for _, rc := range rawChildren {
			if child, ok := ingestOne(rc, idField, textField, id); ok {
				group.Children = append(group.Children, child)
			}
		}
		if len(group.Children) == 0 {
			return nil, false
		}
		return group, true
	}

	if !hasID {
		return nil, false
	}
	return &Item{ID: id, Text: text, Parent: parent, Properties: m}, true
}

// FormatID renders a raw identifier as a string. Integral numbers lose
// their decimal point so 2 and 2.0 name the same item.
func FormatID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, id != ""
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case uint64:
		return strconv.FormatUint(id, 10), true
	case float64:
		if math.IsNaN(id) || math.IsInf(id, 0) {
			return "", false
		}
		if id == math.Trunc(id) && math.Abs(id) < 1e15 {
			return strconv.FormatInt(int64(id), 10), true
		}
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return strconv.FormatInt(n, 10), true
		}
		return id.String(), id.String() != ""
	}
	return "", false
}
