package selectbox

import (
	"unicode"

	"github.com/firefly-engineering/firefly-forage/packages/forage-select/internal/option"
)

// KeyType identifies the keys the widget reacts to.
type KeyType int

const (
	KeyRune KeyType = iota
	KeyTab
	KeyEscape
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
)

func (k KeyType) String() string {
	switch k {
	case KeyRune:
		return "rune"
	case KeyTab:
		return "tab"
	case KeyEscape:
		return "esc"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyEnter:
		return "enter"
	}
	return "unknown"
}

// Key is one key press. Rune is only meaningful for KeyRune.
type Key struct {
	Type KeyType
	Rune rune
}

// HandleKey applies the keyboard contract and reports whether the key was
// consumed. Tab always passes through; a disabled widget consumes nothing.
func (s *State) HandleKey(k Key) bool {
	if s.disabled {
		return false
	}
	if !s.open {
		return s.handleClosedKey(k)
	}

	switch k.Type {
	case KeyTab:
		return false
	case KeyEscape:
		s.Close()
	case KeyBackspace:
		if s.input == "" {
			s.RemoveLast()
		} else {
			r := []rune(s.input)
			s.Type(string(r[:len(r)-1]))
		}
	case KeyDelete:
		s.RemoveLast()
	case KeyLeft:
		if len(s.items) > 0 {
			s.behavior.First()
		}
	case KeyRight:
		if len(s.items) > 0 {
			s.behavior.Last()
		}
	case KeyUp:
		s.behavior.Prev()
	case KeyDown:
		s.behavior.Next()
	case KeyEnter:
		if s.activeOption != nil && option.IndexOf(s.active, s.activeOption) < 0 {
			s.Select(s.activeOption)
			s.behavior.Next()
		}
	case KeyRune:
		if !unicode.IsPrint(k.Rune) {
			return false
		}
		s.Type(s.input + string(k.Rune))
	default:
		return false
	}
	return true
}

func (s *State) handleClosedKey(k Key) bool {
	switch k.Type {
	case KeyBackspace, KeyDelete:
		s.RemoveLast()
		return true
	case KeyEnter, KeyDown:
		s.Open()
		return true
	case KeyRune:
		if !unicode.IsPrint(k.Rune) {
			return false
		}
		s.OpenWith(k.Rune)
		return true
	}
	return false
}
