// Package lexer turns test data into statements of typed tokens.
//
// Lexing happens in two phases. Input splits lines into cells and assigns
// statements to sections and tests as they arrive, which is also when
// "language:" configuration and section headers take effect. The first call
// to Statements or Tokens then types every cell, settings sections first so
// that a test template defined after the tests still applies to them.
package lexer

import (
	"log/slog"

	"github.com/aledsdavies/rfparse/internal/ctxlog"
	"github.com/aledsdavies/rfparse/pkgs/invariant"
	"github.com/aledsdavies/rfparse/pkgs/languages"
)

// Lexer lexes one file.
type Lexer struct {
	config       LexerConfig
	langs        *languages.Languages
	fileSettings *settings
	statements   [][]*Token
	sections     []*section
	eosBefore    map[*Token]bool
	eosAfter     map[*Token]bool
	configured   []string
	lexed        bool
	logger       *slog.Logger
}

// New creates a lexer. It fails only if a language given with WithLanguages
// is unknown.
func New(opts ...LexerOpt) (*Lexer, error) {
	config := LexerConfig{registry: languages.Default()}
	for _, opt := range opts {
		opt(&config)
	}
	langs, err := config.registry.New(config.languages...)
	if err != nil {
		return nil, err
	}
	logger := config.logger
	if logger == nil {
		logger = ctxlog.FromEnv("RFPARSE_DEBUG_LEXER")
	}
	spec := suiteFileSettings
	switch config.kind {
	case ResourceFile:
		spec = resourceFileSettings
	case InitFile:
		spec = initFileSettings
	}
	return &Lexer{
		config:       config,
		langs:        langs,
		fileSettings: newSettings(spec, langs),
		eosBefore:    make(map[*Token]bool),
		eosAfter:     make(map[*Token]bool),
		logger:       logger,
	}, nil
}

// Languages returns the codes of languages configured in the data itself,
// in the order they were configured.
func (l *Lexer) Languages() []string {
	return append([]string(nil), l.configured...)
}

// Statements returns the lexed statements. Every token of the input is in
// exactly one statement unless data-only mode dropped it.
func (l *Lexer) Statements() [][]*Token {
	if !l.lexed {
		l.lex()
		l.lexed = true
	}
	var out [][]*Token
	for _, statement := range l.statements {
		parts := [][]*Token{statement}
		if !l.config.dataOnly {
			parts = splitTrailingCommentedAndEmptyLines(statement)
		}
		for _, part := range parts {
			for _, s := range l.split(part) {
				invariant.Postcondition(len(s) > 0, "empty statement from line %d", part[0].Line)
				out = append(out, s)
			}
		}
	}
	if l.config.tokenizeVariables {
		for i, statement := range out {
			var tokens []*Token
			for _, t := range statement {
				tokens = append(tokens, t.TokenizeVariables()...)
			}
			out[i] = tokens
		}
	}
	return out
}

// Tokens returns the lexed tokens of all statements.
func (l *Lexer) Tokens() []*Token {
	var tokens []*Token
	for _, statement := range l.Statements() {
		tokens = append(tokens, statement...)
	}
	return tokens
}

// split drops tokens no block lexer claimed and cuts the statement where a
// test name or inline IF part ends.
func (l *Lexer) split(statement []*Token) [][]*Token {
	var result [][]*Token
	var current []*Token
	flush := func() {
		if len(current) > 0 {
			result = append(result, current)
			current = nil
		}
	}
	last := inlineIfEnd(statement)
	var prev *Token
	for _, t := range statement {
		if t.Type == untyped || (l.config.dataOnly && t.Type == COMMENT) {
			continue
		}
		if l.eosBefore[t] && (prev == nil || !l.eosAfter[prev]) {
			flush()
		}
		current = append(current, t)
		if l.eosAfter[t] {
			flush()
		}
		if t == last {
			flush()
			current = []*Token{NewToken(END, "", t.Line, t.EndCol())}
		}
		prev = t
	}
	flush()
	return result
}

// inlineIfEnd returns the token after which an inline IF gets its implicit
// END, or nil when the statement is not an inline IF.
func inlineIfEnd(statement []*Token) *Token {
	var last *Token
	inline := false
	for _, t := range statement {
		if t.Type == INLINE_IF {
			inline = true
		}
		if t.Type != untyped && t.Type != COMMENT && !t.Type.IsNonData() {
			last = t
		}
	}
	if !inline {
		return nil
	}
	return last
}

// GetTokens lexes data and returns its tokens.
func GetTokens(data string, opts ...LexerOpt) ([]*Token, error) {
	l, err := New(opts...)
	if err != nil {
		return nil, err
	}
	l.Input(data)
	return l.Tokens(), nil
}

// GetStatements lexes data and returns its statements.
func GetStatements(data string, opts ...LexerOpt) ([][]*Token, error) {
	l, err := New(opts...)
	if err != nil {
		return nil, err
	}
	l.Input(data)
	return l.Statements(), nil
}
