package option

// Value is the minimal projection of an item handed to the host.
type Value struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// Project maps items to their {id, text} projection.
func Project(items []*Item) []Value {
	values := make([]Value, 0, len(items))
	for _, it := range items {
		values = append(values, Value{ID: it.ID, Text: it.Text})
	}
	return values
}

// Properties collects the raw candidates behind items, skipping items that
// were not built from a map.
func Properties(items []*Item) []map[string]any {
	props := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if it.Properties != nil {
			props = append(props, it.Properties)
		}
	}
	return props
}
