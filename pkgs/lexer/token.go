package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/aledsdavies/rfparse/pkgs/variables"
)

// TokenType is the kind of a lexed token.
type TokenType int

const (
	// Section headers
	SETTING_HEADER TokenType = iota
	VARIABLE_HEADER
	TESTCASE_HEADER
	TASK_HEADER
	KEYWORD_HEADER
	COMMENT_HEADER
	INVALID_HEADER

	// Names
	TESTCASE_NAME
	KEYWORD_NAME
	SUITE_NAME

	// Settings sections
	DOCUMENTATION
	SUITE_SETUP
	SUITE_TEARDOWN
	METADATA
	TEST_SETUP
	TEST_TEARDOWN
	TEST_TEMPLATE
	TEST_TIMEOUT
	TEST_TAGS
	DEFAULT_TAGS
	KEYWORD_TAGS
	LIBRARY
	RESOURCE
	VARIABLES

	// Test and keyword settings
	SETUP
	TEARDOWN
	TEMPLATE
	TIMEOUT
	TAGS
	ARGUMENTS
	RETURN // [Return] setting, not the RETURN statement

	// Data
	AS
	NAME
	VARIABLE
	ARGUMENT
	ASSIGN
	KEYWORD
	OPTION

	// Control structures
	FOR
	FOR_SEPARATOR
	END
	IF
	INLINE_IF
	ELSE_IF
	ELSE
	TRY
	EXCEPT
	FINALLY
	WHILE
	GROUP
	VAR
	RETURN_STATEMENT
	CONTINUE
	BREAK

	// Structure
	SEPARATOR
	COMMENT
	CONTINUATION
	CONFIG
	EOL
	ERROR
)

var tokenNames = [...]string{
	SETTING_HEADER:   "SETTING HEADER",
	VARIABLE_HEADER:  "VARIABLE HEADER",
	TESTCASE_HEADER:  "TESTCASE HEADER",
	TASK_HEADER:      "TASK HEADER",
	KEYWORD_HEADER:   "KEYWORD HEADER",
	COMMENT_HEADER:   "COMMENT HEADER",
	INVALID_HEADER:   "INVALID HEADER",
	TESTCASE_NAME:    "TESTCASE NAME",
	KEYWORD_NAME:     "KEYWORD NAME",
	SUITE_NAME:       "SUITE NAME",
	DOCUMENTATION:    "DOCUMENTATION",
	SUITE_SETUP:      "SUITE SETUP",
	SUITE_TEARDOWN:   "SUITE TEARDOWN",
	METADATA:         "METADATA",
	TEST_SETUP:       "TEST SETUP",
	TEST_TEARDOWN:    "TEST TEARDOWN",
	TEST_TEMPLATE:    "TEST TEMPLATE",
	TEST_TIMEOUT:     "TEST TIMEOUT",
	TEST_TAGS:        "TEST TAGS",
	DEFAULT_TAGS:     "DEFAULT TAGS",
	KEYWORD_TAGS:     "KEYWORD TAGS",
	LIBRARY:          "LIBRARY",
	RESOURCE:         "RESOURCE",
	VARIABLES:        "VARIABLES",
	SETUP:            "SETUP",
	TEARDOWN:         "TEARDOWN",
	TEMPLATE:         "TEMPLATE",
	TIMEOUT:          "TIMEOUT",
	TAGS:             "TAGS",
	ARGUMENTS:        "ARGUMENTS",
	RETURN:           "RETURN",
	AS:               "AS",
	NAME:             "NAME",
	VARIABLE:         "VARIABLE",
	ARGUMENT:         "ARGUMENT",
	ASSIGN:           "ASSIGN",
	KEYWORD:          "KEYWORD",
	OPTION:           "OPTION",
	FOR:              "FOR",
	FOR_SEPARATOR:    "FOR SEPARATOR",
	END:              "END",
	IF:               "IF",
	INLINE_IF:        "INLINE IF",
	ELSE_IF:          "ELSE IF",
	ELSE:             "ELSE",
	TRY:              "TRY",
	EXCEPT:           "EXCEPT",
	FINALLY:          "FINALLY",
	WHILE:            "WHILE",
	GROUP:            "GROUP",
	VAR:              "VAR",
	RETURN_STATEMENT: "RETURN STATEMENT",
	CONTINUE:         "CONTINUE",
	BREAK:            "BREAK",
	SEPARATOR:        "SEPARATOR",
	COMMENT:          "COMMENT",
	CONTINUATION:     "CONTINUATION",
	CONFIG:           "CONFIG",
	EOL:              "EOL",
	ERROR:            "ERROR",
}

var tokenTypesByName = func() map[string]TokenType {
	m := make(map[string]TokenType, len(tokenNames))
	for typ, name := range tokenNames {
		m[name] = TokenType(typ)
	}
	return m
}()

func (t TokenType) String() string {
	if int(t) < len(tokenNames) && int(t) >= 0 {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// MarshalText writes the canonical name, e.g. "FOR SEPARATOR".
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TokenType) UnmarshalText(text []byte) error {
	typ, ok := tokenTypesByName[string(text)]
	if !ok {
		return fmt.Errorf("unknown token type %q", text)
	}
	*t = typ
	return nil
}

// IsNonData reports whether the type is dropped in data-only mode.
func (t TokenType) IsNonData() bool {
	switch t {
	case SEPARATOR, COMMENT, CONTINUATION, EOL:
		return true
	}
	return false
}

func (t TokenType) IsHeader() bool {
	return t >= SETTING_HEADER && t <= INVALID_HEADER
}

func (t TokenType) IsSetting() bool {
	return t >= DOCUMENTATION && t <= RETURN
}

// AllowsVariables reports whether TokenizeVariables splits this type.
func (t TokenType) AllowsVariables() bool {
	switch t {
	case NAME, KEYWORD, ARGUMENT, TESTCASE_NAME, KEYWORD_NAME:
		return true
	}
	return false
}

// Token is a single lexed cell or separator. Line is 1-based and Col is
// 0-based, counted in characters. Both are -1 when unknown.
type Token struct {
	Type  TokenType `json:"type" yaml:"type"`
	Value string    `json:"value" yaml:"value"`
	Line  int       `json:"line" yaml:"line"`
	Col   int       `json:"col" yaml:"col"`
	Error string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// NewToken creates a token.
func NewToken(typ TokenType, value string, line, col int) *Token {
	return &Token{Type: typ, Value: value, Line: line, Col: col}
}

// NewError creates an ERROR token carrying a message.
func NewError(value string, line, col int, message string) *Token {
	return &Token{Type: ERROR, Value: value, Line: line, Col: col, Error: message}
}

// EndCol is the column just past the token.
func (t *Token) EndCol() int {
	if t.Col < 0 {
		return -1
	}
	return t.Col + utf8.RuneCountInString(t.Value)
}

// SetError turns the token into an ERROR token.
func (t *Token) SetError(message string) {
	t.Type = ERROR
	t.Error = message
}

func (t *Token) String() string {
	return t.Value
}

// Position returns "line:col" for diagnostics.
func (t *Token) Position() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Col)
}

// GoString is used by debug logging and test failures.
func (t *Token) GoString() string {
	if t.Error != "" {
		return fmt.Sprintf("Token(%s, %q, %d, %d, %q)", t.Type, t.Value, t.Line, t.Col, t.Error)
	}
	return fmt.Sprintf("Token(%s, %q, %d, %d)", t.Type, t.Value, t.Line, t.Col)
}

// TokenizeVariables splits the token into parts containing variables and
// parts that do not. Tokens of other types are returned as-is.
func (t *Token) TokenizeVariables() []*Token {
	if !t.Type.AllowsVariables() {
		return []*Token{t}
	}
	matches := variables.All(t.Value)
	if len(matches) == 0 {
		return []*Token{t}
	}
	var tokens []*Token
	col := t.Col
	advance := func(s string) {
		if col >= 0 {
			col += utf8.RuneCountInString(s)
		}
	}
	after := ""
	for _, m := range matches {
		if before := m.Before(); before != "" {
			tokens = append(tokens, NewToken(t.Type, before, t.Line, col))
			advance(before)
		}
		tokens = append(tokens, NewToken(VARIABLE, m.Text(), t.Line, col))
		advance(m.Text())
		after = m.After()
	}
	if after != "" {
		tokens = append(tokens, NewToken(t.Type, after, t.Line, col))
	}
	return tokens
}
