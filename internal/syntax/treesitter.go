package syntax

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// atomicKinds are converted to a single leaf even when tree-sitter reports
// children: their inner structure is never rewritten, and some of them
// (string contents) are not covered by child nodes at all.
var atomicKinds = map[string]bool{
	"string_literal":     true,
	"raw_string_literal": true,
	"char_literal":       true,
	"integer_literal":    true,
	"float_literal":      true,
	"line_comment":       true,
	"block_comment":      true,
}

// SyntaxError reports the first ERROR or MISSING node of a parse.
type SyntaxError struct {
	Pos  Position
	Text string
}

func (e *SyntaxError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s: syntax error", e.Pos)
	}

	return fmt.Sprintf("%s: syntax error near %q", e.Pos, e.Text)
}

// FromTreeSitter converts a tree-sitter node into an owned tree. Every gap
// between tokens is copied from src, and text after the last token is kept
// in the root's Trailing, so Print reproduces src exactly.
func FromTreeSitter(root *sitter.Node, src []byte) (*Node, error) {
	if root.HasError() {
		return nil, firstError(root, src)
	}

	c := converter{src: src}

	node := c.convert(root, "")
	if c.cursor < len(src) {
		node.Trailing = string(src[c.cursor:])
	}

	return node, nil
}

type converter struct {
	src    []byte
	cursor int
}

func (c *converter) convert(n *sitter.Node, field string) *Node {
	start, end := int(n.StartByte()), int(n.EndByte())
	point := n.StartPoint()

	node := &Node{
		Kind:  n.Type(),
		Field: field,
		Named: n.IsNamed(),
		Pos:   Position{Line: int(point.Row) + 1, Column: int(point.Column) + 1},
		Start: start,
		End:   end,
	}

	if n.ChildCount() == 0 || atomicKinds[node.Kind] {
		if start < c.cursor {
			start = c.cursor
		}

		node.Leading = string(c.src[c.cursor:start])
		node.Text = string(c.src[start:end])
		c.cursor = end

		return node
	}

	count := int(n.ChildCount())
	node.Children = make([]*Node, 0, count)

	for i := 0; i < count; i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}

		node.Children = append(node.Children, c.convert(child, n.FieldNameForChild(i)))
	}

	return node
}

func firstError(n *sitter.Node, src []byte) error {
	var found *sitter.Node

	var search func(*sitter.Node)
	search = func(cur *sitter.Node) {
		if found != nil {
			return
		}

		if cur.IsError() || cur.IsMissing() {
			found = cur
			return
		}

		for i := 0; i < int(cur.ChildCount()); i++ {
			if child := cur.Child(i); child != nil && (child.HasError() || child.IsMissing()) {
				search(child)
			}
		}
	}
	search(n)

	if found == nil {
		found = n
	}

	point := found.StartPoint()
	text := found.Content(src)

	if len(text) > 32 {
		text = text[:32]
	}

	return &SyntaxError{
		Pos:  Position{Line: int(point.Row) + 1, Column: int(point.Column) + 1},
		Text: text,
	}
}
