package model

import (
	"strings"

	"github.com/aledsdavies/rfparse/pkgs/lexer"
)

// Format controls the whitespace of statements built with the New*
// constructors.
type Format struct {
	Indent    string
	Separator string
	EOL       string
}

// FormatOpt changes the default format.
type FormatOpt func(*Format)

// WithIndent sets the indentation of statements inside tests and keywords.
func WithIndent(indent string) FormatOpt {
	return func(f *Format) { f.Indent = indent }
}

// WithSeparator sets the separator between cells.
func WithSeparator(separator string) FormatOpt {
	return func(f *Format) { f.Separator = separator }
}

// WithEOL sets the line ending. An empty EOL omits the EOL token.
func WithEOL(eol string) FormatOpt {
	return func(f *Format) { f.EOL = eol }
}

func newFormat(opts []FormatOpt) Format {
	f := Format{Indent: "    ", Separator: "    ", EOL: "\n"}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// tokenBuilder accumulates tokens without positions.
type tokenBuilder struct {
	format Format
	tokens []*lexer.Token
}

func newBuilder(opts []FormatOpt) *tokenBuilder {
	return &tokenBuilder{format: newFormat(opts)}
}

func (b *tokenBuilder) add(typ lexer.TokenType, value string) *tokenBuilder {
	b.tokens = append(b.tokens, lexer.NewToken(typ, value, -1, -1))
	return b
}

func (b *tokenBuilder) indent() *tokenBuilder {
	return b.add(lexer.SEPARATOR, b.format.Indent)
}

func (b *tokenBuilder) sep() *tokenBuilder {
	return b.add(lexer.SEPARATOR, b.format.Separator)
}

// cells adds a separator before each value.
func (b *tokenBuilder) cells(typ lexer.TokenType, values ...string) *tokenBuilder {
	for _, v := range values {
		b.sep().add(typ, v)
	}
	return b
}

func (b *tokenBuilder) eol() []*lexer.Token {
	if b.format.EOL != "" {
		b.add(lexer.EOL, b.format.EOL)
	}
	return b.tokens
}

// seq2str formats values as 'a', 'b' and 'c'.
func seq2str(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	if len(quoted) <= 1 {
		return strings.Join(quoted, "")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " and " + quoted[len(quoted)-1]
}
