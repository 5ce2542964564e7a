// Package parser builds model trees from test data.
package parser

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/aledsdavies/rfparse/internal/ctxlog"
	"github.com/aledsdavies/rfparse/pkgs/invariant"
	"github.com/aledsdavies/rfparse/pkgs/languages"
	"github.com/aledsdavies/rfparse/pkgs/lexer"
	"github.com/aledsdavies/rfparse/pkgs/model"
)

// GetModel parses a suite file.
func GetModel(source Source, opts ...ParserOpt) (*model.File, error) {
	return getModel(source, lexer.SuiteFile, opts)
}

// GetResourceModel parses a resource file.
func GetResourceModel(source Source, opts ...ParserOpt) (*model.File, error) {
	return getModel(source, lexer.ResourceFile, opts)
}

// GetInitModel parses a suite initialization file.
func GetInitModel(source Source, opts ...ParserOpt) (*model.File, error) {
	return getModel(source, lexer.InitFile, opts)
}

// getModel fails only when the source cannot be read or a language given as
// an option is unknown. Problems in the data end up in the tree.
func getModel(source Source, kind lexer.FileKind, opts []ParserOpt) (*model.File, error) {
	config := ParserConfig{registry: languages.Default()}
	for _, opt := range opts {
		opt(&config)
	}
	logger := config.logger
	if logger == nil {
		logger = ctxlog.FromEnv("RFPARSE_DEBUG_PARSER")
	}

	data, path, err := source.Read()
	if err != nil {
		return nil, err
	}
	lexerOpts := []lexer.LexerOpt{
		lexer.WithFileKind(kind),
		lexer.WithRegistry(config.registry),
		lexer.WithLanguages(config.languages...),
		lexer.WithLogger(logger),
	}
	if config.dataOnly {
		lexerOpts = append(lexerOpts, lexer.WithDataOnly())
	}
	lx, err := lexer.New(lexerOpts...)
	if err != nil {
		return nil, err
	}
	lx.Input(data)

	file := &model.File{Source: path}
	p := newParser(file, logger)
	for _, tokens := range lx.Statements() {
		if config.curdir != "" {
			replaceCurdir(tokens, config.curdir)
		}
		p.feed(model.FromTokens(tokens))
	}
	for _, lang := range lx.Languages() {
		if !slices.Contains(file.Languages, lang) {
			file.Languages = append(file.Languages, lang)
		}
	}
	model.Validate(file)
	logger.Debug("parsed model", "source", path, "sections", len(file.Sections))
	return file, nil
}

func replaceCurdir(tokens []*lexer.Token, curdir string) {
	escaped := strings.ReplaceAll(curdir, `\`, `\\`)
	for _, t := range tokens {
		if t.Type != lexer.COMMENT && strings.Contains(t.Value, "${CURDIR}") {
			t.Value = strings.ReplaceAll(t.Value, "${CURDIR}", escaped)
		}
	}
}

func newParser(file *model.File, logger *slog.Logger) *parser {
	invariant.NotNil(file, "file")
	return &parser{stack: []blockParser{&fileParser{file: file}}, logger: logger}
}

func (p *parser) feed(s model.Statement) {
	for !p.top().handles(s) {
		p.stack = p.stack[:len(p.stack)-1]
		invariant.Invariant(len(p.stack) > 0, "no parser handles %s", s.Kind())
	}
	next := p.top().parse(s)
	p.logger.Debug("statement", "kind", s.Kind(), "line", s.Span().Line, "depth", len(p.stack))
	if next != nil {
		p.stack = append(p.stack, next)
	}
}

func (p *parser) top() blockParser {
	return p.stack[len(p.stack)-1]
}
