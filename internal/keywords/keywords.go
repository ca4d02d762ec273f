package keywords

import (
	"fmt"
	"regexp"
)

// Matcher reports which configured keywords appear in a piece of text.
// Matching is case-insensitive on whole words.
type Matcher struct {
	keywords []string
	patterns []*regexp.Regexp
}

func NewMatcher(keywords []string) (*Matcher, error) {
	m := &Matcher{keywords: append([]string(nil), keywords...)}
	for _, k := range keywords {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(k) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compiling keyword %q: %w", k, err)
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// Match returns the keywords found in text, in configured order. No
// matches yields nil.
func (m *Matcher) Match(text string) []string {
	var matched []string
	for i, re := range m.patterns {
		if re.MatchString(text) {
			matched = append(matched, m.keywords[i])
		}
	}
	return matched
}

// Keywords returns the configured list.
func (m *Matcher) Keywords() []string {
	return m.keywords
}
