package lexer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// untyped marks data cells the block lexers have not classified yet. Tokens
// still untyped after lexing are dropped from the output.
const untyped TokenType = -1

var pipeSeparator = regexp.MustCompile(`(?:\A|[\s\p{Zs}]+)\|(?:[\s\p{Zs}]+|\z)`)

// tokenize splits data into statements. A statement is a line plus the
// continuation, comment and empty lines following it.
func tokenize(data string, dataOnly bool) [][]*Token {
	var statements [][]*Token
	var current []*Token
	for lineno, line := range splitLines(data) {
		tokens := tokenizeLine(line, lineno+1, !dataOnly)
		tokens, startsNew := cleanupTokens(tokens, dataOnly)
		if startsNew {
			if current != nil {
				statements = append(statements, current)
			}
			current = tokens
		} else {
			current = append(current, tokens...)
		}
	}
	if current != nil {
		statements = append(statements, current)
	}
	return statements
}

// splitLines keeps line endings so that EOL tokens reproduce the input.
func splitLines(data string) []string {
	var lines []string
	for data != "" {
		i := strings.IndexByte(data, '\n')
		if i < 0 {
			lines = append(lines, data)
			break
		}
		lines = append(lines, data[:i+1])
		data = data[i+1:]
	}
	return lines
}

func tokenizeLine(line string, lineno int, includeSeparators bool) []*Token {
	content := strings.TrimRightFunc(line, unicode.IsSpace)
	var cells []cell
	if isPipeLine(content) {
		cells = splitFromPipes(content)
	} else {
		cells = splitFromSpaces(content)
	}

	var tokens []*Token
	col := 0
	for _, c := range cells {
		if c.data {
			tokens = append(tokens, NewToken(untyped, c.value, lineno, col))
		} else if includeSeparators {
			tokens = append(tokens, NewToken(SEPARATOR, c.value, lineno, col))
		}
		col += utf8.RuneCountInString(c.value)
	}
	if includeSeparators {
		tokens = append(tokens, NewToken(EOL, line[len(content):], lineno, col))
	}
	return tokens
}

type cell struct {
	value string
	data  bool
}

func isPipeLine(line string) bool {
	if !strings.HasPrefix(line, "|") {
		return false
	}
	if len(line) == 1 {
		return true
	}
	r, _ := utf8.DecodeRuneInString(line[1:])
	return unicode.IsSpace(r)
}

// splitFromSpaces separates cells on runs of two or more whitespace
// characters or a single tab.
func splitFromSpaces(line string) []cell {
	var cells []cell
	start := 0
	i := 0
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if !unicode.IsSpace(r) {
			i += size
			continue
		}
		end := i + size
		runes := 1
		for end < len(line) {
			next, nextSize := utf8.DecodeRuneInString(line[end:])
			if !unicode.IsSpace(next) {
				break
			}
			end += nextSize
			runes++
		}
		if runes < 2 && r != '\t' {
			i = end
			continue
		}
		cells = append(cells, cell{value: line[start:i], data: true}, cell{value: line[i:end]})
		start, i = end, end
	}
	return append(cells, cell{value: line[start:], data: true})
}

func splitFromPipes(line string) []cell {
	loc := pipeSeparator.FindStringIndex(line)
	cells := []cell{{value: line[:loc[1]]}}
	rest := line[loc[1]:]
	for {
		loc = pipeSeparator.FindStringIndex(rest)
		if loc == nil {
			break
		}
		cells = append(cells, cell{value: rest[:loc[0]], data: true}, cell{value: rest[loc[0]:loc[1]]})
		rest = rest[loc[1]:]
	}
	return append(cells, cell{value: rest, data: true})
}

func cleanupTokens(tokens []*Token, dataOnly bool) ([]*Token, bool) {
	hasData, continues := handleCommentsAndContinuation(tokens)
	tokens = removeTrailingEmpty(tokens)
	if continues {
		tokens = removeLeadingEmpty(tokens)
		if !hasData {
			tokens = ensureDataAfterContinuation(tokens)
		}
	}
	if dataOnly {
		tokens = removeNonData(tokens)
	}
	return tokens, hasData && !continues
}

func handleCommentsAndContinuation(tokens []*Token) (hasData, continues bool) {
	commented := false
	for i, t := range tokens {
		if t.Type != untyped {
			continue
		}
		value := t.Value
		if i == 0 {
			value = strings.TrimLeftFunc(value, unicode.IsSpace)
		}
		switch {
		case commented:
			t.Type = COMMENT
		case value == "":
		case value[0] == '#':
			t.Type = COMMENT
			commented = true
		case !hasData:
			if value == "..." && !continues {
				t.Type = CONTINUATION
				continues = true
			} else {
				hasData = true
			}
		}
	}
	return hasData, continues
}

func removeTrailingEmpty(tokens []*Token) []*Token {
	for i := len(tokens) - 1; i >= 0; i-- {
		t := tokens[i]
		if t.Value == "" && t.Type != EOL {
			tokens = append(tokens[:i], tokens[i+1:]...)
		} else if t.Type == untyped {
			break
		}
	}
	return tokens
}

func removeLeadingEmpty(tokens []*Token) []*Token {
	for i := 0; i < len(tokens); {
		t := tokens[i]
		if t.Value == "" {
			tokens = append(tokens[:i], tokens[i+1:]...)
			continue
		}
		if t.Type == untyped || t.Type == CONTINUATION {
			break
		}
		i++
	}
	return tokens
}

func ensureDataAfterContinuation(tokens []*Token) []*Token {
	for i, t := range tokens {
		if t.Type == CONTINUATION {
			empty := NewToken(untyped, "", t.Line, t.EndCol())
			tokens = append(tokens[:i+1], append([]*Token{empty}, tokens[i+1:]...)...)
			break
		}
	}
	return tokens
}

func removeNonData(tokens []*Token) []*Token {
	data := tokens[:0]
	for _, t := range tokens {
		if t.Type == untyped {
			data = append(data, t)
		}
	}
	return data
}

// splitTrailingCommentedAndEmptyLines detaches comment and empty lines that
// follow the data of a statement so that each becomes a statement of its own.
func splitTrailingCommentedAndEmptyLines(statement []*Token) [][]*Token {
	lines := splitToLines(statement)
	n := 0
	for i := len(lines) - 1; i >= 0 && isCommentedOrEmpty(lines[i]); i-- {
		n++
	}
	if n == 0 {
		return [][]*Token{statement}
	}
	var head []*Token
	for _, line := range lines[:len(lines)-n] {
		head = append(head, line...)
	}
	result := [][]*Token{head}
	return append(result, lines[len(lines)-n:]...)
}

func splitToLines(statement []*Token) [][]*Token {
	var lines [][]*Token
	var current []*Token
	for _, t := range statement {
		current = append(current, t)
		if t.Type == EOL {
			lines = append(lines, current)
			current = nil
		}
	}
	if current != nil {
		lines = append(lines, current)
	}
	return lines
}

func isCommentedOrEmpty(line []*Token) bool {
	for _, t := range line {
		if t.Type != SEPARATOR && t.Type != untyped {
			return t.Type == COMMENT || t.Type == EOL
		}
	}
	return false
}
