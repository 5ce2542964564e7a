// Package model is the syntax tree built from lexed statements.
//
// A tree is made of statements, which own the tokens of one logical line, and
// blocks, which nest statements and other blocks: files, sections, tests,
// keywords and control structures. Saving a tree that was parsed without
// data-only mode writes the original data back byte for byte.
package model

import (
	"strings"

	"github.com/aledsdavies/rfparse/pkgs/lexer"
)

// Node is either a Statement or a Block.
type Node interface {
	// Kind is the name of the concrete node type, e.g. "KeywordCall".
	Kind() string
	Span() Span
	Errors() []string
	SetErrors(errors ...string)
	AddError(err string)
	Validate(ctx *ValidationContext)
}

// Span is the position of a node. Lines are 1-based and columns 0-based.
// All fields are -1 when the position is unknown.
type Span struct {
	Line    int `json:"line" yaml:"line"`
	Col     int `json:"col" yaml:"col"`
	EndLine int `json:"end_line" yaml:"end_line"`
	EndCol  int `json:"end_col" yaml:"end_col"`
}

var unknownSpan = Span{-1, -1, -1, -1}

// Statement is one logical line of data.
type Statement interface {
	Node
	Tokens() []*lexer.Token
	SetTokens(tokens []*lexer.Token)
	Type() lexer.TokenType
	DataTokens() []*lexer.Token
	GetToken(types ...lexer.TokenType) *lexer.Token
	GetTokens(types ...lexer.TokenType) []*lexer.Token
	GetValue(typ lexer.TokenType, def string) string
	GetValues(types ...lexer.TokenType) []string
	GetOption(name, def string) string
	Lines() [][]*lexer.Token
}

// Block is a node with a header statement and a body.
type Block interface {
	Node
	// Children returns the direct child nodes in source order.
	Children() []Node
	// Rewrite replaces every child with the nodes fn returns for it. An
	// empty result removes the child.
	Rewrite(fn func(Node) []Node)
}

// Nodes lets a transformation replace one node with several.
type Nodes []Node

func (Nodes) Kind() string { return "Nodes" }

func (n Nodes) Span() Span {
	if len(n) == 0 {
		return unknownSpan
	}
	first, last := n[0].Span(), n[len(n)-1].Span()
	return Span{first.Line, first.Col, last.EndLine, last.EndCol}
}

func (n Nodes) Errors() []string {
	var errs []string
	for _, node := range n {
		errs = append(errs, node.Errors()...)
	}
	return errs
}

func (Nodes) SetErrors(...string) {}

func (Nodes) AddError(string) {}

func (Nodes) Validate(*ValidationContext) {}

// StatementBase implements the parts of Statement shared by all statements.
type StatementBase struct {
	tokens []*lexer.Token
	errors []string
	cache  map[string]any
}

func (s *StatementBase) Tokens() []*lexer.Token {
	return s.tokens
}

// SetTokens replaces the tokens and forgets values derived from the old ones.
func (s *StatementBase) SetTokens(tokens []*lexer.Token) {
	s.tokens = tokens
	s.cache = nil
}

// Errors returns errors of ERROR tokens followed by errors set explicitly.
func (s *StatementBase) Errors() []string {
	var errs []string
	for _, t := range s.tokens {
		if t.Type == lexer.ERROR && t.Error != "" {
			errs = append(errs, t.Error)
		}
	}
	return append(errs, s.errors...)
}

// SetErrors replaces the explicitly set errors. Token errors are kept.
func (s *StatementBase) SetErrors(errors ...string) {
	s.errors = append([]string(nil), errors...)
}

func (s *StatementBase) AddError(err string) {
	s.errors = append(s.errors, err)
}

func (s *StatementBase) Validate(*ValidationContext) {}

// Type is the type of the first token that is not a separator.
func (s *StatementBase) Type() lexer.TokenType {
	for _, t := range s.tokens {
		if t.Type != lexer.SEPARATOR {
			return t.Type
		}
	}
	return lexer.EOL
}

func (s *StatementBase) Span() Span {
	if len(s.tokens) == 0 {
		return unknownSpan
	}
	first, last := s.tokens[0], s.tokens[len(s.tokens)-1]
	return Span{first.Line, first.Col, last.Line, last.EndCol()}
}

func (s *StatementBase) DataTokens() []*lexer.Token {
	var tokens []*lexer.Token
	for _, t := range s.tokens {
		if !t.Type.IsNonData() {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// GetToken returns the first token of any of the given types, or nil.
func (s *StatementBase) GetToken(types ...lexer.TokenType) *lexer.Token {
	for _, t := range s.tokens {
		if hasType(t, types) {
			return t
		}
	}
	return nil
}

func (s *StatementBase) GetTokens(types ...lexer.TokenType) []*lexer.Token {
	var tokens []*lexer.Token
	for _, t := range s.tokens {
		if hasType(t, types) {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// GetValue returns the value of the first token of typ, or def.
func (s *StatementBase) GetValue(typ lexer.TokenType, def string) string {
	if t := s.GetToken(typ); t != nil {
		return t.Value
	}
	return def
}

func (s *StatementBase) GetValues(types ...lexer.TokenType) []string {
	var values []string
	for _, t := range s.GetTokens(types...) {
		values = append(values, t.Value)
	}
	return values
}

// Options returns the name=value options. A later option wins.
func (s *StatementBase) Options() map[string]string {
	options := make(map[string]string)
	for _, value := range s.GetValues(lexer.OPTION) {
		name, v, _ := strings.Cut(value, "=")
		options[name] = v
	}
	return options
}

func (s *StatementBase) GetOption(name, def string) string {
	if v, ok := s.Options()[name]; ok {
		return v
	}
	return def
}

// Lines splits the tokens after each EOL.
func (s *StatementBase) Lines() [][]*lexer.Token {
	var lines [][]*lexer.Token
	var line []*lexer.Token
	for _, t := range s.tokens {
		line = append(line, t)
		if t.Type == lexer.EOL {
			lines = append(lines, line)
			line = nil
		}
	}
	if len(line) > 0 {
		lines = append(lines, line)
	}
	return lines
}

func hasType(t *lexer.Token, types []lexer.TokenType) bool {
	for _, typ := range types {
		if t.Type == typ {
			return true
		}
	}
	return false
}

// cached returns the value stored under key, computing it on first use.
func cached[T any](s *StatementBase, key string, compute func() T) T {
	if v, ok := s.cache[key]; ok {
		return v.(T)
	}
	v := compute()
	if s.cache == nil {
		s.cache = make(map[string]any)
	}
	s.cache[key] = v
	return v
}
