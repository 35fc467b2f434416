package rewrite

import "github.com/phi-fell/mwt/internal/syntax"

// stripSelfMutability drops the mutability of the self receiver:
// `&mut self` becomes `&self` and `mut self` becomes `self`.
func stripSelfMutability(fn *syntax.Node) {
	params := fn.ChildByField("parameters")
	if params == nil {
		return
	}

	self := params.ChildByKind(kindSelfParameter)
	if self == nil {
		return
	}

	for i, child := range self.Children {
		if child.Kind == kindMutable {
			removeChild(self, i)
			return
		}
	}
}

// removeChild deletes the i-th child of n. The removed token's leading text
// moves onto its successor so `& mut self` loses exactly one gap.
func removeChild(n *syntax.Node, i int) {
	removed := n.Children[i]
	n.Children = append(n.Children[:i], n.Children[i+1:]...)

	if i < len(n.Children) {
		syntax.SetLeading(n.Children[i], syntax.LeadingOf(removed))
	}
}
