package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aledsdavies/rfparse/pkgs/lexer"
)

// ErrNoOutput is returned by Save when neither a path nor the source path
// of the file is known.
var ErrNoOutput = errors.New("Saving model requires explicit output when original source is not path.")

// Save writes the file to path, or back to its source when path is "".
func (f *File) Save(path string) error {
	if path == "" {
		path = f.Source
	}
	if path == "" {
		return ErrNoOutput
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	if err := f.SaveTo(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// SaveTo writes the values of all tokens in order.
func (f *File) SaveTo(w io.Writer) error {
	buf := bufio.NewWriter(w)
	for _, t := range AllTokens(f) {
		if _, err := buf.WriteString(t.Value); err != nil {
			return fmt.Errorf("writing model: %w", err)
		}
	}
	if err := buf.Flush(); err != nil {
		return fmt.Errorf("writing model: %w", err)
	}
	return nil
}

// AllTokens returns the tokens of every statement under n in source order.
func AllTokens(n Node) []*lexer.Token {
	var tokens []*lexer.Token
	var walk func(Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case Statement:
			tokens = append(tokens, v.Tokens()...)
		case Block:
			for _, child := range v.Children() {
				walk(child)
			}
		case Nodes:
			for _, child := range v {
				walk(child)
			}
		}
	}
	walk(n)
	return tokens
}

// Normalize rewrites the separators between cells and the line endings of
// every statement under n. Indentation and pipe separated lines are kept.
// Token positions are not updated.
func Normalize(n Node, opts ...FormatOpt) {
	format := newFormat(opts)
	switch v := n.(type) {
	case Statement:
		normalizeStatement(v, format)
	case Block:
		for _, child := range v.Children() {
			Normalize(child, opts...)
		}
	case Nodes:
		for _, child := range v {
			Normalize(child, opts...)
		}
	}
}

func normalizeStatement(s Statement, format Format) {
	tokens := s.Tokens()
	for _, t := range tokens {
		if t.Type == lexer.SEPARATOR && strings.Contains(t.Value, "|") {
			return
		}
	}
	lineStart := true
	for _, t := range tokens {
		switch {
		case t.Type == lexer.EOL:
			if strings.HasSuffix(t.Value, "\n") {
				t.Value = format.EOL
			} else {
				t.Value = ""
			}
			lineStart = true
			continue
		case t.Type == lexer.SEPARATOR && !lineStart:
			t.Value = format.Separator
		}
		lineStart = false
	}
	s.SetTokens(tokens)
}
