package rewrite

import (
	"strings"

	m "github.com/phi-fell/mwt/internal/model"
	"github.com/phi-fell/mwt/internal/syntax"
)

// foldMacro rewrites `marker!(expr)` into `mut expr` or `expr`. Other macro
// invocations keep their token trees opaque; only the macro path is renamed.
func (r *renderer) foldMacro(n *syntax.Node) (*syntax.Node, error) {
	path := n.ChildByField("macro")
	if path == nil || path.Kind != kindIdentifier || path.Text != r.s.IdentMarker {
		return r.foldChildren(n)
	}

	tree := n.ChildByKind(kindTokenTree)
	if tree == nil {
		return nil, shapeErrorf(n, r.s.IdentMarker, "%s! needs an argument", r.s.IdentMarker)
	}

	return r.escape(n, syntax.PrintInner(tree)), nil
}

// foldCall rewrites the call form `marker(expr)` the same way as the macro form.
func (r *renderer) foldCall(n *syntax.Node) (*syntax.Node, error) {
	fn := n.ChildByField("function")
	if fn == nil || fn.Kind != kindIdentifier || fn.Text != r.s.IdentMarker {
		return r.foldChildren(n)
	}

	args := n.ChildByField("arguments")
	if args == nil {
		return r.foldChildren(n)
	}

	return r.escape(n, syntax.PrintInner(args)), nil
}

func (r *renderer) escape(n *syntax.Node, group string) *syntax.Node {
	inner := strings.TrimSpace(group)

	if r.mode == m.Mutable {
		inner = strings.TrimSpace("mut " + inner)
	}

	leaf := syntax.NewVerbatim(inner, syntax.LeadingOf(n))
	leaf.Field = n.Field
	leaf.Pos = n.Pos

	return leaf
}
