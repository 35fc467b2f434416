package rewrite

import (
	"strings"

	m "github.com/phi-fell/mwt/internal/model"
	"github.com/phi-fell/mwt/internal/syntax"
)

// typeKinds are the grammar kinds that stand for a type.
var typeKinds = map[string]bool{
	"abstract_type":          true,
	"array_type":             true,
	"bounded_type":           true,
	"dynamic_type":           true,
	"function_type":          true,
	"generic_type":           true,
	"macro_invocation":       true,
	"metavariable":           true,
	"never_type":             true,
	"pointer_type":           true,
	"primitive_type":         true,
	"qualified_type":         true,
	"reference_type":         true,
	"scoped_type_identifier": true,
	"tuple_type":             true,
	"type_identifier":        true,
	"unit_type":              true,
}

func isType(n *syntax.Node) bool {
	return typeKinds[n.Kind]
}

func describe(n *syntax.Node) string {
	return strings.ReplaceAll(n.Kind, "_", " ")
}

// foldReference resolves `&Ref<T>` into `&T` or `&mut T`. Any explicit
// mutability written on the reference is replaced.
func (r *renderer) foldReference(n *syntax.Node) (*syntax.Node, error) {
	elem := n.ChildByField("type")
	if elem == nil || !r.isRefMarker(elem) {
		return r.foldChildren(n)
	}

	inner, err := r.refArgument(elem)
	if err != nil {
		return nil, err
	}

	folded, err := r.fold(inner, elem)
	if err != nil {
		return nil, err
	}

	children := []*syntax.Node{n.Children[0]}

	lifetime := n.ChildByKind("lifetime")
	if lifetime != nil {
		lifetime, err = r.fold(lifetime, n)
		if err != nil {
			return nil, err
		}

		children = append(children, lifetime)
	}

	gap := ""
	if lifetime != nil {
		gap = " "
	}

	if r.mode == m.Mutable {
		children = append(children, syntax.NewLeaf(kindMutable, "mut", gap))
		gap = " "
	}

	syntax.SetLeading(folded, gap)
	folded.Field = "type"
	children = append(children, folded)

	n.Children = children

	return n, nil
}

func (r *renderer) isRefMarker(elem *syntax.Node) bool {
	switch elem.Kind {
	case kindTypeIdent:
		return elem.Text == r.s.RefMarker
	case kindGenericType:
		name := elem.ChildByField("type")
		return name != nil && name.Kind == kindTypeIdent && name.Text == r.s.RefMarker
	}

	return false
}

// refArgument returns the single type argument of the reference marker.
func (r *renderer) refArgument(elem *syntax.Node) (*syntax.Node, error) {
	var args []*syntax.Node
	if list := elem.ChildByField("type_arguments"); list != nil {
		args = list.NamedChildren()
	}

	if len(args) != 1 || !isType(args[0]) {
		return nil, shapeErrorf(elem, r.s.RefMarker,
			"%[1]s needs one type param e.g. &%[1]s<T>", r.s.RefMarker)
	}

	return args[0], nil
}
