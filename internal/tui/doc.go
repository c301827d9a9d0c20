// Package tui hosts the select box in a Bubble Tea program.
//
// The Model wraps a selectbox.State: terminal keys are decoded into widget
// keys, the filter text is mirrored into a bubbles text input, and the
// option panel is drawn with lipgloss. Remote sources are queried through a
// loader.Loader with a debounce tick per keystroke, and a data file watcher
// can replace the option pool while the program runs.
//
// # Running
//
//	result, err := tui.Run(ctx, tui.Options{
//	    Title:  "City",
//	    Items:  items,
//	    Config: selectbox.Config{Placeholder: "Pick a city", Height: 10},
//	    Open:   true,
//	})
//	if result.Cancelled {
//	    // Esc on the closed widget or ctrl+c
//	}
//
// In single-select mode committing an option ends the program. In
// multi-select mode ctrl+s does.
//
// Plain renders the current options of a State without styling, for
// non-interactive use.
package tui
