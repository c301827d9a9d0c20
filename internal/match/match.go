// Package match decides which option labels satisfy the typed filter text
// and where the matched characters are, for highlighting.
package match

import (
	"fmt"
	"regexp"

	"github.com/agnivade/levenshtein"
	"github.com/sahilm/fuzzy"
)

// Mode selects how filter text is matched against labels.
type Mode string

const (
	// Substring matches the filter text anywhere in the label, ignoring case.
	Substring Mode = "substring"
	// Fuzzy matches the filter characters in order, not necessarily adjacent.
	Fuzzy Mode = "fuzzy"
)

// ParseMode validates a mode name. An empty name selects Substring.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", Substring:
		return Substring, nil
	case Fuzzy:
		return Fuzzy, nil
	}
	if hint := suggest(s); hint != "" {
		return "", fmt.Errorf("unknown match mode %q (did you mean %s?)", s, hint)
	}
	return "", fmt.Errorf("unknown match mode %q (must be substring or fuzzy)", s)
}

// suggest returns the mode closest to a misspelt name, or "".
func suggest(s string) Mode {
	best, score := Mode(""), 3
	for _, m := range []Mode{Substring, Fuzzy} {
		if d := levenshtein.ComputeDistance(s, string(m)); d < score {
			best, score = m, d
		}
	}
	return best
}

// Matcher tests a label against one filter text.
type Matcher interface {
	// Match reports whether text matches and the byte offsets of the
	// matched characters.
	Match(text string) (bool, []int)
}

// New returns a matcher for pattern. An empty pattern matches everything.
func New(mode Mode, pattern string) Matcher {
	if pattern == "" {
		return everything{}
	}
	if mode == Fuzzy {
		return fuzzyMatcher{pattern: pattern}
	}
	return substringMatcher{re: regexp.MustCompile("(?i)" + regexp.QuoteMeta(pattern))}
}

type everything struct{}

func (everything) Match(string) (bool, []int) { return true, nil }

type substringMatcher struct {
	re *regexp.Regexp
}

func (m substringMatcher) Match(text string) (bool, []int) {
	locs := m.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return false, nil
	}
	var offsets []int
	for _, loc := range locs {
		for i := loc[0]; i < loc[1]; i++ {
			offsets = append(offsets, i)
		}
	}
	return true, offsets
}

type fuzzyMatcher struct {
	pattern string
}

func (m fuzzyMatcher) Match(text string) (bool, []int) {
	matches := fuzzy.Find(m.pattern, []string{text})
	if len(matches) == 0 {
		return false, nil
	}
	return true, matches[0].MatchedIndexes
}
