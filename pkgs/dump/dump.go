// Package dump projects model trees into plain data for inspection, tests
// and machine-readable output.
package dump

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/aledsdavies/rfparse/pkgs/lexer"
	"github.com/aledsdavies/rfparse/pkgs/model"
)

// Node is a tree node with only exported data. Statements have Tokens,
// blocks have Header, Body, Next and End. If branches use Next too.
type Node struct {
	Kind      string        `json:"kind" yaml:"kind" cbor:"kind"`
	Source    string        `json:"source,omitempty" yaml:"source,omitempty" cbor:"source,omitempty"`
	Languages []string      `json:"languages,omitempty" yaml:"languages,omitempty" cbor:"languages,omitempty"`
	Tokens    []lexer.Token `json:"tokens,omitempty" yaml:"tokens,omitempty" cbor:"tokens,omitempty"`
	Header    *Node         `json:"header,omitempty" yaml:"header,omitempty" cbor:"header,omitempty"`
	Body      []*Node       `json:"body,omitempty" yaml:"body,omitempty" cbor:"body,omitempty"`
	Next      *Node         `json:"next,omitempty" yaml:"next,omitempty" cbor:"next,omitempty"`
	End       *Node         `json:"end,omitempty" yaml:"end,omitempty" cbor:"end,omitempty"`
	Errors    []string      `json:"errors,omitempty" yaml:"errors,omitempty" cbor:"errors,omitempty"`
}

// FromModel projects n. A nil node gives nil.
func FromModel(n model.Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{Kind: n.Kind(), Errors: n.Errors()}
	switch n := n.(type) {
	case model.Statement:
		for _, t := range n.Tokens() {
			out.Tokens = append(out.Tokens, *t)
		}
	case *model.File:
		out.Source = n.Source
		out.Languages = n.Languages
		out.Body = nodes(n.Children())
	case model.Section:
		out.Header = statement(n.SectionHeader())
		out.Body = nodes(n.SectionBody())
	case *model.TestCase:
		out.Header = statement(n.Header)
		out.Body = nodes(n.Body)
	case *model.Keyword:
		out.Header = statement(n.Header)
		out.Body = nodes(n.Body)
	case *model.For:
		out.Header, out.Body, out.End = statement(n.Header), nodes(n.Body), statement(n.End)
	case *model.While:
		out.Header, out.Body, out.End = statement(n.Header), nodes(n.Body), statement(n.End)
	case *model.Group:
		out.Header, out.Body, out.End = statement(n.Header), nodes(n.Body), statement(n.End)
	case *model.If:
		out.Header, out.Body, out.End = FromModel(n.Header), nodes(n.Body), statement(n.End)
		if n.Orelse != nil {
			out.Next = FromModel(n.Orelse)
		}
	case *model.Try:
		out.Header, out.Body, out.End = FromModel(n.Header), nodes(n.Body), statement(n.End)
		if n.Next != nil {
			out.Next = FromModel(n.Next)
		}
	case model.Nodes:
		out.Body = nodes(n)
	}
	return out
}

// statement projects an optional typed statement, keeping nil pointers nil.
func statement[T interface {
	comparable
	model.Statement
}](s T) *Node {
	var zero T
	if s == zero {
		return nil
	}
	return FromModel(s)
}

func nodes(ns []model.Node) []*Node {
	var out []*Node
	for _, n := range ns {
		out = append(out, FromModel(n))
	}
	return out
}

// Format is an output encoding.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	CBOR Format = "cbor"
)

// Formats lists the supported formats.
var Formats = []Format{YAML, JSON, CBOR}

// Write encodes the projection of n to w.
func Write(w io.Writer, n model.Node, format Format) error {
	tree := FromModel(n)
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tree); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case CBOR:
		mode, err := cbor.CanonicalEncOptions().EncMode()
		if err != nil {
			return fmt.Errorf("creating CBOR encoder: %w", err)
		}
		if err := mode.NewEncoder(w).Encode(tree); err != nil {
			return fmt.Errorf("encoding cbor: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown dump format %q", format)
}
