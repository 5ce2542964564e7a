// Package visitor walks and rewrites model trees.
//
// Handlers are registered by node kind. When a node has no handler for its
// concrete kind, the lookup falls back to a legacy alias of the kind, then to
// the category handlers AnySection, AnyBlock and AnyStatement, and finally to
// GenericVisit.
package visitor

import (
	"github.com/aledsdavies/rfparse/pkgs/invariant"
	"github.com/aledsdavies/rfparse/pkgs/model"
)

// Category kinds usable with On.
const (
	AnySection   = "Section"
	AnyBlock     = "Block"
	AnyStatement = "Statement"
)

// aliases are older kind names still accepted for handlers.
var aliases = map[string]string{
	"ReturnStatement": "Return",
	"TestTags":        "ForceTags",
}

// lookupKinds lists the handler keys tried for n, most specific first.
func lookupKinds(n model.Node) []string {
	kinds := []string{n.Kind()}
	if alias, ok := aliases[n.Kind()]; ok {
		kinds = append(kinds, alias)
	}
	if _, ok := n.(model.Section); ok {
		kinds = append(kinds, AnySection)
	}
	switch n.(type) {
	case model.Block:
		kinds = append(kinds, AnyBlock)
	case model.Statement:
		kinds = append(kinds, AnyStatement)
	}
	return kinds
}

// VisitFunc handles a node. It must call GenericVisit to visit the children.
type VisitFunc func(v *Visitor, n model.Node)

// Visitor is a read-only traversal.
type Visitor struct {
	handlers map[string]VisitFunc
}

// New creates a visitor without handlers.
func New() *Visitor {
	return &Visitor{handlers: make(map[string]VisitFunc)}
}

// On registers fn for a node kind or category. A later registration for the
// same kind replaces the earlier one.
func (v *Visitor) On(kind string, fn VisitFunc) *Visitor {
	invariant.Precondition(fn != nil, "nil handler for %s", kind)
	v.handlers[kind] = fn
	return v
}

// Visit dispatches n to the most specific handler.
func (v *Visitor) Visit(n model.Node) {
	if n == nil {
		return
	}
	if nodes, ok := n.(model.Nodes); ok {
		for _, child := range nodes {
			v.Visit(child)
		}
		return
	}
	for _, kind := range lookupKinds(n) {
		if fn, ok := v.handlers[kind]; ok {
			fn(v, n)
			return
		}
	}
	v.GenericVisit(n)
}

// GenericVisit visits the children of a block. Statements have none.
func (v *Visitor) GenericVisit(n model.Node) {
	if b, ok := n.(model.Block); ok {
		for _, child := range b.Children() {
			v.Visit(child)
		}
	}
}
