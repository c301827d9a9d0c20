package selectbox

import "github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"

// Sink receives the widget's outward notifications.
type Sink interface {
	// Selected fires after an option is committed.
	Selected(item *option.Item)
	// Removed fires after an option leaves the active set.
	Removed(item *option.Item)
	// Typed fires whenever the filter text changes.
	Typed(text string)
	// Data fires with the active set after every change to it.
	Data(active []*option.Item)
}

// NopSink discards every notification.
type NopSink struct{}

func (NopSink) Selected(*option.Item) {}
func (NopSink) Removed(*option.Item)  {}
func (NopSink) Typed(string)          {}
func (NopSink) Data([]*option.Item)   {}

// SinkFuncs adapts plain functions to a Sink. Nil fields are skipped.
type SinkFuncs struct {
	OnSelected func(*option.Item)
	OnRemoved  func(*option.Item)
	OnTyped    func(string)
	OnData     func([]*option.Item)
}

func (f SinkFuncs) Selected(item *option.Item) {
	if f.OnSelected != nil {
		f.OnSelected(item)
	}
}

func (f SinkFuncs) Removed(item *option.Item) {
	if f.OnRemoved != nil {
		f.OnRemoved(item)
	}
}

func (f SinkFuncs) Typed(text string) {
	if f.OnTyped != nil {
		f.OnTyped(text)
	}
}

func (f SinkFuncs) Data(active []*option.Item) {
	if f.OnData != nil {
		f.OnData(active)
	}
}

// Sinks fans notifications out to several sinks in order.
type Sinks []Sink

func (ss Sinks) Selected(item *option.Item) {
	for _, s := range ss {
		s.Selected(item)
	}
}

func (ss Sinks) Removed(item *option.Item) {
	for _, s := range ss {
		s.Removed(item)
	}
}

func (ss Sinks) Typed(text string) {
	for _, s := range ss {
		s.Typed(text)
	}
}

func (ss Sinks) Data(active []*option.Item) {
	for _, s := range ss {
		s.Data(active)
	}
}
