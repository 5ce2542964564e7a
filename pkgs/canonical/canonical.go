// Package canonical encodes the data of a model tree deterministically so
// that files differing only in formatting produce the same fingerprint.
package canonical

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"

	"github.com/aledsdavies/rfparse/pkgs/model"
)

// Version of the canonical encoding. Changing the encoding changes every
// fingerprint, so bump it with any change to the types below.
const Version uint8 = 1

// File is the canonical form of a parsed file.
type File struct {
	Version  uint8
	Sections []Node
}

// Node is a statement or a block. Positions, separators, comments and line
// ends are left out.
type Node struct {
	Kind     string
	Tokens   []Token `cbor:",omitempty"`
	Children []Node  `cbor:",omitempty"`
}

type Token struct {
	Type  string
	Value string
}

// Canonicalize converts f into canonical form. Empty lines and comment-only
// statements are dropped.
func Canonicalize(f *model.File) *File {
	cf := &File{Version: Version}
	for _, s := range f.Sections {
		if n, ok := canonicalizeNode(s); ok {
			cf.Sections = append(cf.Sections, n)
		}
	}
	return cf
}

func canonicalizeNode(n model.Node) (Node, bool) {
	switch n := n.(type) {
	case *model.EmptyLine, *model.Comment:
		return Node{}, false
	case model.Statement:
		cn := Node{Kind: n.Kind()}
		for _, t := range n.DataTokens() {
			cn.Tokens = append(cn.Tokens, Token{Type: t.Type.String(), Value: t.Value})
		}
		return cn, true
	case model.Block:
		cn := Node{Kind: n.Kind()}
		for _, child := range n.Children() {
			if c, ok := canonicalizeNode(child); ok {
				cn.Children = append(cn.Children, c)
			}
		}
		// A section holding only comments carries no data.
		if _, ok := n.(*model.ImplicitCommentSection); ok && len(cn.Children) == 0 {
			return Node{}, false
		}
		return cn, true
	}
	return Node{}, false
}

// MarshalBinary produces the deterministic CBOR encoding.
func (f *File) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	// alias avoids recursing into MarshalBinary
	type alias File
	data, err := encMode.Marshal((*alias)(f))
	if err != nil {
		return nil, fmt.Errorf("failed to encode canonical file: %w", err)
	}
	return data, nil
}

// Unmarshal decodes data written by MarshalBinary.
func Unmarshal(data []byte) (*File, error) {
	type alias File
	var f alias
	if err := cbor.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode canonical file: %w", err)
	}
	if f.Version != Version {
		return nil, fmt.Errorf("unsupported canonical version %d", f.Version)
	}
	return (*File)(&f), nil
}

// Fingerprint returns "blake2b:<hex>" of the canonical encoding of f.
func Fingerprint(f *model.File) (string, error) {
	data, err := Canonicalize(f).MarshalBinary()
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(data)
	return fmt.Sprintf("blake2b:%x", sum), nil
}
