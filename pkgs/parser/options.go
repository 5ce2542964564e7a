package parser

import (
	"log/slog"

	"github.com/aledsdavies/rfparse/pkgs/languages"
)

// ParserOpt represents a parser configuration option
type ParserOpt func(*ParserConfig)

// ParserConfig holds parser configuration
type ParserConfig struct {
	dataOnly  bool
	languages []string
	registry  *languages.Registry
	curdir    string
	logger    *slog.Logger
}

// WithDataOnly leaves separators, comments and line ends out of the tree.
// Such a tree cannot be saved back to the original data.
func WithDataOnly() ParserOpt {
	return func(c *ParserConfig) {
		c.dataOnly = true
	}
}

// WithLanguages activates languages in addition to those configured in the
// data itself
func WithLanguages(names ...string) ParserOpt {
	return func(c *ParserConfig) {
		c.languages = append(c.languages, names...)
	}
}

// WithRegistry replaces the built-in language registry
func WithRegistry(r *languages.Registry) ParserOpt {
	return func(c *ParserConfig) {
		c.registry = r
	}
}

// WithCurdir replaces ${CURDIR} in data with dir
func WithCurdir(dir string) ParserOpt {
	return func(c *ParserConfig) {
		c.curdir = dir
	}
}

// WithLogger replaces the default debug logger
func WithLogger(logger *slog.Logger) ParserOpt {
	return func(c *ParserConfig) {
		c.logger = logger
	}
}
