package model

import (
	"strings"

	"github.com/aledsdavies/rfparse/pkgs/lexer"
)

// Documentation is the Documentation setting in the settings section or
// [Documentation] in a test or keyword.
type Documentation struct{ StatementBase }

func (*Documentation) Kind() string { return "Documentation" }

// Value is the documentation text with continuation lines joined.
func (s *Documentation) Value() string {
	return cached(&s.StatementBase, "value", func() string {
		return joinDocumentation(s.GetTokens(lexer.ARGUMENT, lexer.EOL), s.GetToken(lexer.DOCUMENTATION))
	})
}

// NewDocumentation creates documentation whose Value is value. Lines after
// the first become continuation lines aligned with the first one.
func NewDocumentation(value string, settingSection bool, opts ...FormatOpt) *Documentation {
	b := newBuilder(opts)
	setting := "Documentation"
	if !settingSection {
		setting = "[Documentation]"
		b.indent()
	}
	b.add(lexer.DOCUMENTATION, setting)
	lines := splitLines(value)
	if len(lines) == 0 {
		return build[Documentation](b.eol())
	}
	b.sep().add(lexer.ARGUMENT, lines[0]).eol()
	alignment := strings.Repeat(" ", len(setting)+len(b.format.Separator)-3)
	for _, line := range lines[1:] {
		if !settingSection {
			b.indent()
		}
		b.add(lexer.CONTINUATION, "...")
		if line != "" {
			b.add(lexer.SEPARATOR, alignment)
		}
		b.add(lexer.ARGUMENT, line).eol()
	}
	return build[Documentation](b.tokens)
}

// joinDocumentation builds a multiline value from ARGUMENT and EOL tokens.
// Lines are separated by EOL tokens or, when there are none, by line
// numbers. start is the setting token whose line is not a continuation line.
func joinDocumentation(tokens []*lexer.Token, start *lexer.Token) string {
	lines := documentationLines(tokens)
	indent := minContinuationCol(lines, start)
	var b strings.Builder
	for i, line := range lines {
		first := line[0]
		if indent >= 0 && isContinuation(first, start) && first.Value != "" && first.Col > indent {
			b.WriteString(strings.Repeat(" ", first.Col-indent))
		}
		for j, t := range line {
			if j > 0 {
				b.WriteString(cellGap(line[j-1], t))
			}
			b.WriteString(unescapeTrailingBackslash(t.Value))
		}
		if i < len(lines)-1 && !suppressesNewline(line[len(line)-1].Value) {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func documentationLines(tokens []*lexer.Token) [][]*lexer.Token {
	var lines [][]*lexer.Token
	var line []*lexer.Token
	for _, t := range tokens {
		if t.Type == lexer.EOL {
			if len(line) > 0 {
				lines = append(lines, line)
			}
			line = nil
			continue
		}
		if len(line) > 0 && line[0].Line != t.Line {
			lines = append(lines, line)
			line = nil
		}
		line = append(line, t)
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

func isContinuation(t, start *lexer.Token) bool {
	return start != nil && start.Line >= 0 && t.Line != start.Line
}

// minContinuationCol returns the smallest column where a non-empty
// continuation line starts, or -1 if it cannot be known.
func minContinuationCol(lines [][]*lexer.Token, start *lexer.Token) int {
	indent := -1
	for _, line := range lines {
		first := line[0]
		if !isContinuation(first, start) || first.Value == "" || first.Col < 0 {
			continue
		}
		if indent < 0 || first.Col < indent {
			indent = first.Col
		}
	}
	return indent
}

func cellGap(prev, next *lexer.Token) string {
	if prev.Col < 0 || next.Col < 0 || prev.Line != next.Line {
		return " "
	}
	if gap := next.Col - prev.EndCol(); gap > 0 {
		return strings.Repeat(" ", gap)
	}
	return " "
}

func trailingBackslashes(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\\'; i-- {
		n++
	}
	return n
}

func unescapeTrailingBackslash(s string) string {
	if trailingBackslashes(s)%2 == 1 {
		return s[:len(s)-1]
	}
	return s
}

// suppressesNewline reports whether a line ends with an escaping backslash
// or with a literal \n.
func suppressesNewline(s string) bool {
	s = strings.TrimSuffix(s, "n")
	return trailingBackslashes(s)%2 == 1
}

// splitLines splits on line breaks without producing a trailing empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
