// Package rewrite implements the variant rewrite engine: a recursive,
// structure-preserving transformation of one Rust function tree into its
// read-only or mutable variant.
package rewrite

import (
	"fmt"

	m "github.com/phi-fell/mwt/internal/model"
	"github.com/phi-fell/mwt/internal/syntax"
)

// Grammar node kinds the engine treats specially.
const (
	kindFunction      = "function_item"
	kindIdentifier    = "identifier"
	kindTypeIdent     = "type_identifier"
	kindFieldIdent    = "field_identifier"
	kindShorthand     = "shorthand_field_identifier"
	kindReferenceType = "reference_type"
	kindGenericType   = "generic_type"
	kindTypeArguments = "type_arguments"
	kindMacro         = "macro_invocation"
	kindCall          = "call_expression"
	kindTokenTree     = "token_tree"
	kindAttributeItem = "attribute_item"
	kindBlock         = "block"
	kindExprStatement = "expression_statement"
	kindMutable       = "mutable_specifier"
	kindSelfParameter = "self_parameter"
)

type renderer struct {
	s    m.Sentinels
	mode m.Mode
}

// Render rewrites fn in place into the variant selected by mode and returns
// it. Callers that need the input afterwards must pass a clone. Any marker
// misuse aborts with a *ShapeError and no partial result.
func Render(s m.Sentinels, mode m.Mode, fn *syntax.Node) (*syntax.Node, error) {
	if fn == nil || fn.Kind != kindFunction {
		return nil, fmt.Errorf("render: expected %s node", kindFunction)
	}

	r := &renderer{s: s, mode: mode}

	if mode == m.ReadOnly && !s.PreserveSelf {
		stripSelfMutability(fn)
	}

	return r.fold(fn, nil)
}

// fold dispatches on the node kind. Kinds without a rule recurse into their
// children and keep their own shape.
func (r *renderer) fold(n, parent *syntax.Node) (*syntax.Node, error) {
	switch n.Kind {
	case kindIdentifier, kindTypeIdent:
		return r.foldName(n, parent)
	case kindFieldIdent, kindShorthand:
		return r.foldIdent(n)
	case kindReferenceType:
		return r.foldReference(n)
	case kindGenericType:
		return r.foldGeneric(n)
	case kindMacro:
		return r.foldMacro(n)
	case kindCall:
		return r.foldCall(n)
	case kindTokenTree, syntax.KindVerbatim:
		return n, nil
	}

	if n.IsLeaf() {
		return n, nil
	}

	return r.foldChildren(n)
}

// foldChildren rewrites every child of n, resolving #[if_mut] / #[not_mut]
// blocks on the way.
func (r *renderer) foldChildren(n *syntax.Node) (*syntax.Node, error) {
	out := make([]*syntax.Node, 0, len(n.Children))

	for i := 0; i < len(n.Children); i++ {
		child := n.Children[i]

		if child.Kind == kindAttributeItem && conditionOf(child) != condNone {
			nodes, next, err := r.foldConditional(n, i)
			if err != nil {
				return nil, err
			}

			out = append(out, nodes...)
			i = next - 1

			continue
		}

		folded, err := r.fold(child, n)
		if err != nil {
			return nil, err
		}

		out = append(out, folded)
	}

	n.Children = out

	return n, nil
}
