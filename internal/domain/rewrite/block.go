package rewrite

import (
	"strings"

	m "github.com/phi-fell/mwt/internal/model"
	"github.com/phi-fell/mwt/internal/syntax"
)

type condition int

const (
	condNone condition = iota
	condIfMut
	condNotMut
)

func (c condition) String() string {
	switch c {
	case condIfMut:
		return "if_mut"
	case condNotMut:
		return "not_mut"
	default:
		return ""
	}
}

// conditionOf reports whether attr is a bare #[if_mut] or #[not_mut].
func conditionOf(attr *syntax.Node) condition {
	if attr.Kind != kindAttributeItem {
		return condNone
	}

	body := attr.ChildByKind("attribute")
	if body == nil || len(body.Children) != 1 {
		return condNone
	}

	path := body.Children[0]
	if path.Kind != kindIdentifier {
		return condNone
	}

	switch path.Text {
	case condIfMut.String():
		return condIfMut
	case condNotMut.String():
		return condNotMut
	}

	return condNone
}

// foldConditional resolves the conditional block whose attribute run starts
// at parent.Children[start]. It returns the nodes replacing the run and the
// block, and the index of the first child after them.
func (r *renderer) foldConditional(parent *syntax.Node, start int) ([]*syntax.Node, int, error) {
	var (
		cond  condition
		first = parent.Children[start]
		i     = start
	)

	for ; i < len(parent.Children); i++ {
		child := parent.Children[i]
		if syntax.IsComment(child) {
			continue
		}

		if child.Kind != kindAttributeItem {
			break
		}

		c := conditionOf(child)
		if c == condNone {
			continue
		}

		if cond != condNone && c != cond {
			return nil, 0, shapeErrorf(child, c.String(),
				"a block cannot be both #[if_mut] and #[not_mut]")
		}

		cond = c
	}

	if i >= len(parent.Children) {
		return nil, 0, shapeErrorf(first, cond.String(), "#[%s] must annotate a block", cond)
	}

	block := blockOf(parent.Children[i])
	if block == nil {
		return nil, 0, shapeErrorf(parent.Children[i], cond.String(),
			"#[%s] must annotate a block, found %s", cond, describe(parent.Children[i]))
	}

	next := i + 1
	leading := syntax.LeadingOf(first)

	selected := (cond == condIfMut) == (r.mode == m.Mutable)
	if !selected {
		if isTail(parent, next) {
			return nil, next, nil
		}

		return []*syntax.Node{syntax.NewVerbatim("{}", leading)}, next, nil
	}

	if _, err := r.foldChildren(block); err != nil {
		return nil, 0, err
	}

	if len(block.Children) <= 2 {
		return nil, next, nil
	}

	inner := block.Children[1 : len(block.Children)-1]
	syntax.SetLeading(inner[0], leading)

	return inner, next, nil
}

// blockOf returns the block annotated by n: n itself or the block wrapped by
// an expression statement.
func blockOf(n *syntax.Node) *syntax.Node {
	switch n.Kind {
	case kindBlock:
		return n
	case kindExprStatement:
		named := n.NamedChildren()
		if len(named) == 1 && named[0].Kind == kindBlock {
			return named[0]
		}
	}

	return nil
}

// isTail reports whether only the closing brace and comments follow index i
// in a block.
func isTail(parent *syntax.Node, i int) bool {
	if parent.Kind != kindBlock {
		return false
	}

	for _, child := range parent.Children[i:] {
		if syntax.IsComment(child) || strings.TrimSpace(child.Text) == "}" {
			continue
		}

		return false
	}

	return true
}
