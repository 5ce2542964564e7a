package visitor

import (
	"github.com/aledsdavies/rfparse/pkgs/invariant"
	"github.com/aledsdavies/rfparse/pkgs/model"
)

// TransformFunc returns the replacement of n: nil removes it, n keeps it,
// another node replaces it and model.Nodes replaces it with several nodes.
type TransformFunc func(t *Transformer, n model.Node) model.Node

// Transformer is a traversal that may rewrite the tree in place.
type Transformer struct {
	handlers map[string]TransformFunc
}

func NewTransformer() *Transformer {
	return &Transformer{handlers: make(map[string]TransformFunc)}
}

// On registers fn for a node kind or category.
func (t *Transformer) On(kind string, fn TransformFunc) *Transformer {
	invariant.Precondition(fn != nil, "nil handler for %s", kind)
	t.handlers[kind] = fn
	return t
}

// Visit returns the replacement of n produced by the most specific handler.
// Without a handler the children are transformed and n is kept.
func (t *Transformer) Visit(n model.Node) model.Node {
	if n == nil {
		return nil
	}
	if nodes, ok := n.(model.Nodes); ok {
		var out model.Nodes
		for _, child := range nodes {
			out = append(out, expand(t.Visit(child))...)
		}
		return out
	}
	for _, kind := range lookupKinds(n) {
		if fn, ok := t.handlers[kind]; ok {
			return fn(t, n)
		}
	}
	return t.GenericVisit(n)
}

// GenericVisit transforms the children of a block and returns n.
func (t *Transformer) GenericVisit(n model.Node) model.Node {
	if b, ok := n.(model.Block); ok {
		b.Rewrite(func(child model.Node) []model.Node {
			return expand(t.Visit(child))
		})
	}
	return n
}

func expand(n model.Node) []model.Node {
	switch v := n.(type) {
	case nil:
		return nil
	case model.Nodes:
		return v
	}
	return []model.Node{n}
}
