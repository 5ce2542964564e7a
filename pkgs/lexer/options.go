package lexer

import (
	"log/slog"

	"github.com/aledsdavies/rfparse/pkgs/languages"
)

// LexerOpt represents a lexer configuration option
type LexerOpt func(*LexerConfig)

// FileKind decides which sections and settings are valid.
type FileKind int

const (
	SuiteFile    FileKind = iota // tests or tasks
	ResourceFile                 // keywords and variables only
	InitFile                     // __init__ file of a suite directory
)

func (k FileKind) String() string {
	switch k {
	case ResourceFile:
		return "resource"
	case InitFile:
		return "init"
	}
	return "suite"
}

// LexerConfig holds lexer configuration
type LexerConfig struct {
	kind              FileKind
	dataOnly          bool
	tokenizeVariables bool
	languages         []string
	registry          *languages.Registry
	logger            *slog.Logger
}

// WithFileKind sets the kind of file being lexed
func WithFileKind(kind FileKind) LexerOpt {
	return func(c *LexerConfig) {
		c.kind = kind
	}
}

// WithDataOnly drops separators, comments, continuation markers and line
// ends from the output
func WithDataOnly() LexerOpt {
	return func(c *LexerConfig) {
		c.dataOnly = true
	}
}

// WithTokenizeVariables splits tokens containing variables into parts
func WithTokenizeVariables() LexerOpt {
	return func(c *LexerConfig) {
		c.tokenizeVariables = true
	}
}

// WithLanguages activates languages before lexing starts
func WithLanguages(names ...string) LexerOpt {
	return func(c *LexerConfig) {
		c.languages = append(c.languages, names...)
	}
}

// WithRegistry replaces the built-in language registry
func WithRegistry(r *languages.Registry) LexerOpt {
	return func(c *LexerConfig) {
		c.registry = r
	}
}

// WithLogger replaces the default debug logger
func WithLogger(logger *slog.Logger) LexerOpt {
	return func(c *LexerConfig) {
		c.logger = logger
	}
}
