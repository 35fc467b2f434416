package rewrite

import (
	"strings"

	m "github.com/phi-fell/mwt/internal/model"
	"github.com/phi-fell/mwt/internal/syntax"
)

// nonPathParents hold identifiers that are not a standalone path segment, so
// the type marker rule leaves them to the identifier rule alone.
var nonPathParents = map[string]bool{
	"scoped_identifier":      true,
	"scoped_type_identifier": true,
	"lifetime":               true,
}

// foldName applies the identifier rule to identifier and type_identifier
// leaves, and the type marker rule when the leaf is a standalone segment.
func (r *renderer) foldName(n, parent *syntax.Node) (*syntax.Node, error) {
	standalone := parent == nil || !nonPathParents[parent.Kind]

	if standalone && n.Kind == kindTypeIdent && n.Text == r.s.SwitchMarker {
		return nil, shapeErrorf(n, r.s.SwitchMarker,
			"%[1]s needs two type params e.g. %[1]s<MutType, RefType>", r.s.SwitchMarker)
	}

	if standalone && n.Kind == kindTypeIdent && n.Text == r.s.RefMarker {
		return nil, shapeErrorf(n, r.s.RefMarker,
			"%[1]s must be used behind a reference e.g. &%[1]s<T>", r.s.RefMarker)
	}

	if standalone && r.s.TypeMarker != "" && strings.Contains(n.Text, r.s.TypeMarker) {
		name := r.typeSegment(n.Text)
		if name == "" {
			return nil, shapeErrorf(n, r.s.TypeMarker,
				"%q is empty in the %s variant", n.Text, r.mode)
		}

		n.Text = name

		return n, nil
	}

	return r.foldIdent(n)
}

func (r *renderer) foldIdent(n *syntax.Node) (*syntax.Node, error) {
	name := r.ident(n.Text)
	if name == "" {
		return nil, shapeErrorf(n, r.s.IdentMarker,
			"%q is empty in the %s variant", n.Text, r.mode)
	}

	n.Text = name

	return n, nil
}

// ident renames an identifier. The mutable variant replaces every marker
// occurrence with "mut"; the read-only variant collapses "_m_" to "_" and
// then trims repeated "m_" prefixes and "_m" suffixes.
func (r *renderer) ident(name string) string {
	marker := r.s.IdentMarker
	if marker == "" {
		return name
	}

	if r.mode == m.Mutable {
		return strings.ReplaceAll(name, marker, "mut")
	}

	name = strings.ReplaceAll(name, "_"+marker+"_", "_")

	for strings.HasPrefix(name, marker+"_") {
		name = strings.TrimPrefix(name, marker+"_")
	}

	for strings.HasSuffix(name, "_"+marker) {
		name = strings.TrimSuffix(name, "_"+marker)
	}

	return name
}

// typeSegment renames a path segment that carries the type marker.
func (r *renderer) typeSegment(name string) string {
	if r.mode == m.Mutable {
		return r.ident(strings.ReplaceAll(name, r.s.TypeMarker, "Mut"))
	}

	return r.ident(strings.ReplaceAll(name, r.s.TypeMarker, ""))
}
