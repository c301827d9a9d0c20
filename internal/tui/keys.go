package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/selectbox"
)

// keyMap lists the bindings shown in the help line. Navigation keys are
// decoded by toSelectKeys; Quit, Done and Clear are handled by the model.
type keyMap struct {
	Open   key.Binding
	Move   key.Binding
	Ends   key.Binding
	Select key.Binding
	Remove key.Binding
	Close  key.Binding
	Clear  key.Binding
	Done   key.Binding
	Quit   key.Binding
}

func newKeyMap(multiple, allowClear bool) keyMap {
	km := keyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", "down"),
			key.WithHelp("enter", "open"),
		),
		Move: key.NewBinding(
			key.WithKeys("up", "down"),
			key.WithHelp("↑/↓", "move"),
		),
		Ends: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "first/last"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Remove: key.NewBinding(
			key.WithKeys("backspace", "delete"),
			key.WithHelp("⌫", "remove last"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "clear"),
		),
		Done: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "done"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
	km.Clear.SetEnabled(allowClear)
	km.Remove.SetEnabled(multiple)
	return km
}

// helpKeys adapts the bindings relevant to the current phase to
// help.KeyMap.
type helpKeys struct {
	bindings []key.Binding
}

func (h helpKeys) ShortHelp() []key.Binding  { return h.bindings }
func (h helpKeys) FullHelp() [][]key.Binding { return [][]key.Binding{h.bindings} }

func (k keyMap) forPhase(open bool) helpKeys {
	if open {
		return helpKeys{[]key.Binding{k.Move, k.Ends, k.Select, k.Close, k.Done, k.Quit}}
	}
	return helpKeys{[]key.Binding{k.Open, k.Remove, k.Clear, k.Done, k.Quit}}
}

// toSelectKeys decodes a terminal key press into widget keys. Pasted text
// yields one key per rune.
func toSelectKeys(msg tea.KeyMsg) []selectbox.Key {
	switch msg.Type {
	case tea.KeyTab:
		return []selectbox.Key{{Type: selectbox.KeyTab}}
	case tea.KeyEsc:
		return []selectbox.Key{{Type: selectbox.KeyEscape}}
	case tea.KeyBackspace:
		return []selectbox.Key{{Type: selectbox.KeyBackspace}}
	case tea.KeyDelete:
		return []selectbox.Key{{Type: selectbox.KeyDelete}}
	case tea.KeyLeft:
		return []selectbox.Key{{Type: selectbox.KeyLeft}}
	case tea.KeyRight:
		return []selectbox.Key{{Type: selectbox.KeyRight}}
	case tea.KeyUp:
		return []selectbox.Key{{Type: selectbox.KeyUp}}
	case tea.KeyDown:
		return []selectbox.Key{{Type: selectbox.KeyDown}}
	case tea.KeyEnter:
		return []selectbox.Key{{Type: selectbox.KeyEnter}}
	case tea.KeySpace:
		return []selectbox.Key{{Type: selectbox.KeyRune, Rune: ' '}}
	case tea.KeyRunes:
		keys := make([]selectbox.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, selectbox.Key{Type: selectbox.KeyRune, Rune: r})
		}
		return keys
	}
	return nil
}
