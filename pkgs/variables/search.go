// Package variables finds and classifies the ${scalar}, @{list}, &{dict},
// %{env} and *{inline} variable syntax embedded in cell values.
//
// Nothing here evaluates variables; the parser only needs to know where they
// are and whether a cell is a valid assignment target.
package variables

import (
	"fmt"
	"strings"
)

const (
	// DefaultIdentifiers are the variable identifiers recognised by Search.
	DefaultIdentifiers = "$@&%*"

	assignIdentifiers = "$@&"
)

// Match is the result of searching a variable from a string.
//
// Start and End are byte offsets into String. Both are -1 when no variable
// was found.
type Match struct {
	String     string
	Identifier byte
	Base       string
	Type       string
	Items      []string
	Start      int
	End        int
}

// SearchOpt configures Search.
type SearchOpt func(*searchConfig)

type searchConfig struct {
	identifiers  string
	parseType    bool
	ignoreErrors bool
}

// WithIdentifiers limits the identifiers that start a variable.
func WithIdentifiers(identifiers string) SearchOpt {
	return func(c *searchConfig) {
		c.identifiers = identifiers
	}
}

// WithParseType splits a trailing ": type" from the base name.
func WithParseType() SearchOpt {
	return func(c *searchConfig) {
		c.parseType = true
	}
}

// IgnoringErrors makes unclosed variables count as no match instead of an
// error.
func IgnoringErrors() SearchOpt {
	return func(c *searchConfig) {
		c.ignoreErrors = true
	}
}

// Search finds the first variable in s.
func Search(s string, opts ...SearchOpt) (*Match, error) {
	cfg := searchConfig{identifiers: DefaultIdentifiers}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !strings.Contains(s, "{") {
		return noMatch(s), nil
	}
	return search(s, cfg)
}

// MustSearch is Search with errors ignored.
func MustSearch(s string, opts ...SearchOpt) *Match {
	m, _ := Search(s, append(opts, IgnoringErrors())...)
	return m
}

func noMatch(s string) *Match {
	return &Match{String: s, Start: -1, End: -1}
}

func search(s string, cfg searchConfig) (*Match, error) {
	start := findStart(s, cfg.identifiers)
	if start < 0 {
		return noMatch(s), nil
	}

	m := &Match{String: s, Identifier: s[start], Start: start, End: -1}
	left, right := byte('{'), byte('}')
	open := 1
	escaped := false
	itemStart := start
	var items []string

	for i := start + 2; i < len(s); i++ {
		c := s[i]
		switch {
		case c == right && !escaped:
			open--
			if open > 0 {
				continue
			}
			var next byte
			if i+1 < len(s) {
				next = s[i+1]
			}
			if left == '{' {
				m.Base = s[start+2 : i]
				if next != '[' || strings.IndexByte(assignIdentifiers, m.Identifier) < 0 {
					m.End = i + 1
					return finish(m, cfg), nil
				}
				left, right = '[', ']'
			} else {
				items = append(items, s[itemStart+1:i])
				if next != '[' {
					m.End = i + 1
					m.Items = items
					return finish(m, cfg), nil
				}
			}
			i++
			itemStart = i
			open++
		case c == left && !escaped:
			open++
		default:
			escaped = c == '\\' && !escaped
		}
	}

	if cfg.ignoreErrors {
		return noMatch(s), nil
	}
	incomplete := s[m.Start:]
	if left == '{' {
		return nil, fmt.Errorf("Variable '%s' was not closed properly.", incomplete)
	}
	return nil, fmt.Errorf("Variable item '%s' was not closed properly.", incomplete)
}

func finish(m *Match, cfg searchConfig) *Match {
	if cfg.parseType && strings.Contains(m.Base, ": ") {
		i := strings.LastIndex(m.Base, ": ")
		m.Base, m.Type = m.Base[:i], m.Base[i+2:]
	}
	return m
}

func findStart(s, identifiers string) int {
	index := 1
	for index <= len(s) {
		brace := strings.IndexByte(s[index:], '{')
		if brace < 0 {
			return -1
		}
		candidate := index + brace - 1
		if strings.IndexByte(identifiers, s[candidate]) >= 0 && notEscaped(s, candidate) {
			return candidate
		}
		index = candidate + 2
	}
	return -1
}

func notEscaped(s string, index int) bool {
	escaped := false
	for index > 0 && s[index-1] == '\\' {
		index--
		escaped = !escaped
	}
	return !escaped
}

// Found reports whether a variable was found.
func (m *Match) Found() bool {
	return m.Start >= 0
}

// Name is the variable without items, e.g. "${x}" for "${x}[0]".
func (m *Match) Name() string {
	if !m.Found() {
		return ""
	}
	return string(m.Identifier) + "{" + m.Base + "}"
}

// Before is the text preceding the variable.
func (m *Match) Before() string {
	if !m.Found() {
		return m.String
	}
	return m.String[:m.Start]
}

// Text is the matched variable including items.
func (m *Match) Text() string {
	if !m.Found() {
		return ""
	}
	return m.String[m.Start:m.End]
}

// After is the text following the variable.
func (m *Match) After() string {
	if !m.Found() {
		return ""
	}
	return m.String[m.End:]
}

// IsVariable reports whether the whole string is exactly one variable.
func (m *Match) IsVariable() bool {
	return m.Identifier != 0 && m.Base != "" && m.Start == 0 && m.End == len(m.String)
}

func (m *Match) IsScalarVariable() bool {
	return m.Identifier == '$' && m.IsVariable()
}

func (m *Match) IsListVariable() bool {
	return m.Identifier == '@' && m.IsVariable()
}

func (m *Match) IsDictVariable() bool {
	return m.Identifier == '&' && m.IsVariable()
}

// AssignOpts relax what IsAssign accepts.
type AssignOpts struct {
	AllowAssignMark bool
	AllowNested     bool
	AllowItems      bool
}

// IsAssign reports whether the string can be used as an assignment target.
func (m *Match) IsAssign(opts AssignOpts) bool {
	if opts.AllowAssignMark && strings.HasSuffix(m.String, "=") {
		inner := MustSearch(strings.TrimRight(m.String[:len(m.String)-1], " \t"))
		return inner.IsAssign(AssignOpts{AllowNested: opts.AllowNested, AllowItems: opts.AllowItems})
	}
	return m.IsVariable() &&
		strings.IndexByte(assignIdentifiers, m.Identifier) >= 0 &&
		(opts.AllowItems || len(m.Items) == 0) &&
		(opts.AllowNested || !MustSearch(m.Base).Found())
}

func (m *Match) IsScalarAssign(opts AssignOpts) bool {
	return m.Identifier == '$' && m.IsAssign(opts)
}

func (m *Match) IsListAssign(opts AssignOpts) bool {
	return m.Identifier == '@' && m.IsAssign(opts)
}

func (m *Match) IsDictAssign(opts AssignOpts) bool {
	return m.Identifier == '&' && m.IsAssign(opts)
}

// IsAssign is a shortcut for searching s and checking Match.IsAssign.
func IsAssign(s string, opts AssignOpts) bool {
	return MustSearch(s).IsAssign(opts)
}

// IsScalarAssign is a shortcut for Match.IsScalarAssign.
func IsScalarAssign(s string, opts AssignOpts) bool {
	return MustSearch(s).IsScalarAssign(opts)
}

// IsDictVariable reports whether s is exactly one &{dict} variable.
func IsDictVariable(s string) bool {
	return MustSearch(s).IsDictVariable()
}

// ContainsVariable reports whether s contains any variable.
func ContainsVariable(s string) bool {
	return MustSearch(s).Found()
}

// All returns successive matches in s. Offsets of each match are relative to
// the remainder following the previous match.
func All(s string, opts ...SearchOpt) []*Match {
	var matches []*Match
	remaining := s
	for {
		m := MustSearch(remaining, opts...)
		if !m.Found() {
			return matches
		}
		matches = append(matches, m)
		remaining = m.After()
	}
}
