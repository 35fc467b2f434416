// Package syntax holds the owned concrete syntax tree the expander rewrites.
//
// Trees are built from a tree-sitter parse (see FromTreeSitter). Every leaf
// keeps the exact source bytes that precede it, so printing an untouched tree
// reproduces its source verbatim and rewritten regions keep the surrounding
// formatting.
package syntax

import (
	"fmt"
	"strings"
)

// Position is a 1-based line/column location in the original source.
// The zero value marks a synthesized node.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether the position points into real source.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}

	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Node is one node of a concrete syntax tree. Kind uses the grammar's node
// names ("function_item", "reference_type", "identifier", ...). Anonymous
// tokens such as "&" or "fn" are leaves whose Kind equals their text.
type Node struct {
	Kind  string
	Field string
	Named bool

	// Leading is the raw source (whitespace, comments) before a leaf.
	Leading string
	// Text is the token text of a leaf; empty for interior nodes.
	Text string
	// Trailing is the source after the last token. Only a root carries it.
	Trailing string

	Children []*Node

	Pos Position
	// Start and End are byte offsets into the parsed source, -1 when synthesized.
	Start int
	End   int
}

// IsLeaf reports whether n carries token text rather than children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// NewLeaf creates a synthesized leaf token.
func NewLeaf(kind, text, leading string) *Node {
	return &Node{
		Kind:    kind,
		Named:   kind != text,
		Leading: leading,
		Text:    text,
		Start:   -1,
		End:     -1,
	}
}

// NewVerbatim creates a leaf holding raw source text that is printed as is.
func NewVerbatim(text, leading string) *Node {
	return NewLeaf(KindVerbatim, text, leading)
}

// KindVerbatim marks synthesized raw-text leaves.
const KindVerbatim = "verbatim"

// Clone returns a deep copy of n. The copy shares no nodes with n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}

	c := *n
	if n.Children != nil {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}

	return &c
}

// ChildByField returns the first child stored under the given field name.
func (n *Node) ChildByField(field string) *Node {
	for _, child := range n.Children {
		if child.Field == field {
			return child
		}
	}

	return nil
}

// ChildByKind returns the first direct child of the given kind.
func (n *Node) ChildByKind(kind string) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}

	return nil
}

// NamedChildren returns the named children of n, skipping punctuation and comments.
func (n *Node) NamedChildren() []*Node {
	var named []*Node

	for _, child := range n.Children {
		if child.Named && !IsComment(child) {
			named = append(named, child)
		}
	}

	return named
}

// FirstLeaf returns the leftmost leaf under n, or nil for an empty subtree.
func (n *Node) FirstLeaf() *Node {
	if n == nil {
		return nil
	}

	if n.IsLeaf() {
		return n
	}

	for _, child := range n.Children {
		if leaf := child.FirstLeaf(); leaf != nil {
			return leaf
		}
	}

	return nil
}

// LeadingOf returns the source text preceding the first token of n.
func LeadingOf(n *Node) string {
	if leaf := n.FirstLeaf(); leaf != nil {
		return leaf.Leading
	}

	return ""
}

// SetLeading replaces the text preceding the first token of n.
func SetLeading(n *Node, leading string) {
	if leaf := n.FirstLeaf(); leaf != nil {
		leaf.Leading = leading
	}
}

// IsComment reports whether n is a line or block comment.
func IsComment(n *Node) bool {
	return n.Kind == "line_comment" || n.Kind == "block_comment"
}

// Walk calls fn for n and its descendants in source order. Returning false
// from fn skips the children of that node.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// Print renders n back to source text.
func Print(n *Node) string {
	var b strings.Builder

	write(&b, n)

	return b.String()
}

// PrintInner renders the children of n between its first and last token,
// e.g. the contents of a delimited group without the delimiters.
func PrintInner(n *Node) string {
	if n.IsLeaf() {
		text := n.Text
		if len(text) >= 2 {
			return text[1 : len(text)-1]
		}

		return ""
	}

	if len(n.Children) < 2 {
		return ""
	}

	var b strings.Builder

	for _, child := range n.Children[1 : len(n.Children)-1] {
		write(&b, child)
	}

	b.WriteString(n.Children[len(n.Children)-1].Leading)

	return b.String()
}

func write(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}

	if n.IsLeaf() {
		b.WriteString(n.Leading)
		b.WriteString(n.Text)
	}

	for _, child := range n.Children {
		write(b, child)
	}

	b.WriteString(n.Trailing)
}
