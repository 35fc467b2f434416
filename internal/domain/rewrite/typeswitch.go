package rewrite

import (
	m "github.com/phi-fell/mwt/internal/model"
	"github.com/phi-fell/mwt/internal/syntax"
)

// foldGeneric resolves `Switch<MutType, RefType>` to the argument selected
// by the mode. Other generic types recurse.
func (r *renderer) foldGeneric(n *syntax.Node) (*syntax.Node, error) {
	name := n.ChildByField("type")
	if name == nil || name.Kind != kindTypeIdent || name.Text != r.s.SwitchMarker {
		return r.foldChildren(n)
	}

	var args []*syntax.Node
	if list := n.ChildByField("type_arguments"); list != nil {
		args = list.NamedChildren()
	}

	if len(args) != 2 {
		return nil, shapeErrorf(n, r.s.SwitchMarker,
			"%[1]s needs two type params e.g. %[1]s<MutType, RefType>, found %[2]d", r.s.SwitchMarker, len(args))
	}

	idx := 1
	if r.mode == m.Mutable {
		idx = 0
	}

	selected := args[idx]
	if !isType(selected) {
		return nil, shapeErrorf(selected, r.s.SwitchMarker,
			"%s argument %d (%s) must be a type, found %s",
			r.s.SwitchMarker, idx+1, r.mode, describe(selected))
	}

	folded, err := r.fold(selected, n)
	if err != nil {
		return nil, err
	}

	syntax.SetLeading(folded, syntax.LeadingOf(n))
	folded.Field = n.Field

	return folded, nil
}
