package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/phi-fell/mwt/internal/adapter"
	m "github.com/phi-fell/mwt/internal/model"
	"github.com/phi-fell/mwt/internal/syntax"
)

const (
	kindFunctionItem      = "function_item"
	kindFunctionSignature = "function_signature_item"
	kindAttributeItem     = "attribute_item"
	kindAttribute         = "attribute"
	kindIdentifier        = "identifier"
	kindScopedIdentifier  = "scoped_identifier"
)

// Expander finds marked functions and replaces each with its two variants.
type Expander interface {
	// ExpandSource expands every marked function of one file. Text outside
	// the expanded functions is kept byte for byte.
	ExpandSource(ctx context.Context, source m.Source, src []byte) (m.FileResult, error)

	// RenderFunction expands a single function definition with the given
	// preset and attribute arguments, as the attribute itself would.
	RenderFunction(ctx context.Context, preset, args string, src []byte) (string, error)
}

type expander struct {
	adapter.RustFileAdapter
	presets *Presets
}

// NewExpander creates a new Expander backed by the given parser and presets.
func NewExpander(rustFileAdapter adapter.RustFileAdapter, presets *Presets) Expander {
	return &expander{
		RustFileAdapter: rustFileAdapter,
		presets:         presets,
	}
}

// site is one function to expand together with the attributes and comments
// written directly above it.
type site struct {
	group  []*syntax.Node
	marker int
	fn     *syntax.Node
	preset m.Preset
	args   string
}

func (e *expander) ExpandSource(ctx context.Context, source m.Source, src []byte) (m.FileResult, error) {
	if source.Origin == nil || source.Origin.FullPath == "" {
		return m.FileResult{}, fmt.Errorf("missing source origin")
	}

	path := string(source.Origin.FullPath)
	result := m.FileResult{Source: source, Original: src, Expanded: src}

	root, err := e.Parse(ctx, path, src)
	if err != nil {
		return m.FileResult{}, classify(path, syntax.Position{}, err)
	}

	var sites []site
	if err := e.collect(root, &sites); err != nil {
		return m.FileResult{}, classify(path, syntax.Position{}, err)
	}

	if len(sites) == 0 {
		return result, nil
	}

	type splice struct {
		start, end int
		text       string
	}

	splices := make([]splice, 0, len(sites))

	for _, st := range sites {
		text, expansion, err := e.renderSite(st, indentOf(st.group[0]))
		if err != nil {
			return m.FileResult{}, classify(path, st.group[st.marker].Pos, err)
		}

		slog.Debug("Expanded function", "path", path, "function", expansion.Function, "line", expansion.Line)

		result.Expansions = append(result.Expansions, expansion)
		splices = append(splices, splice{start: st.group[0].Start, end: st.fn.End, text: text})
	}

	sort.Slice(splices, func(i, j int) bool { return splices[i].start > splices[j].start })

	out := append([]byte{}, src...)
	for _, sp := range splices {
		out = append(out[:sp.start], append([]byte(sp.text), out[sp.end:]...)...)
	}

	result.Expanded = out

	return result, nil
}

func (e *expander) RenderFunction(ctx context.Context, presetName, args string, src []byte) (string, error) {
	preset, err := e.presets.Lookup(presetName)
	if err != nil {
		return "", err
	}

	root, err := e.Parse(ctx, "<input>", src)
	if err != nil {
		return "", classify("", syntax.Position{}, err)
	}

	st, err := singleFunction(root)
	if err != nil {
		return "", err
	}

	st.preset = preset
	st.args = args

	for i, node := range st.group {
		if p, _, ok := e.presetFor(node); ok && p.Name == preset.Name {
			st.marker = i
		}
	}

	text, _, err := e.renderSite(st, "")
	if err != nil {
		pos := syntax.Position{}
		if st.marker >= 0 {
			pos = st.group[st.marker].Pos
		}

		return "", classify("", pos, err)
	}

	return text, nil
}

// collect records every marked function below n. Marked functions are not
// searched further.
func (e *expander) collect(n *syntax.Node, sites *[]site) error {
	for i, child := range n.Children {
		if child.Kind == kindFunctionItem || child.Kind == kindFunctionSignature {
			st, ok := e.markedSite(n.Children, i)
			if ok {
				if child.Kind == kindFunctionSignature {
					return &ExpansionError{
						Pos:  st.group[st.marker].Pos,
						Kind: KindMarker,
						Err:  fmt.Errorf("#[%s] needs a function with a body", st.preset.Name),
					}
				}

				*sites = append(*sites, st)

				continue
			}
		}

		if !child.IsLeaf() {
			if err := e.collect(child, sites); err != nil {
				return err
			}
		}
	}

	return nil
}

// markedSite looks for a preset attribute in the run of attributes and
// comments directly above siblings[i].
func (e *expander) markedSite(siblings []*syntax.Node, i int) (site, bool) {
	start := i
	for start > 0 && (siblings[start-1].Kind == kindAttributeItem || syntax.IsComment(siblings[start-1])) {
		start--
	}

	group := siblings[start : i+1]

	for j, node := range group[:len(group)-1] {
		if preset, args, ok := e.presetFor(node); ok {
			return site{group: group, marker: j, fn: siblings[i], preset: preset, args: args}, true
		}
	}

	return site{}, false
}

// presetFor reports whether attr is #[name], #[name(args)] or #[path::name]
// for a registered preset name.
func (e *expander) presetFor(attr *syntax.Node) (m.Preset, string, bool) {
	if attr.Kind != kindAttributeItem {
		return m.Preset{}, "", false
	}

	body := attr.ChildByKind(kindAttribute)
	if body == nil || len(body.Children) == 0 {
		return m.Preset{}, "", false
	}

	path := body.Children[0]

	var name string

	switch path.Kind {
	case kindIdentifier:
		name = path.Text
	case kindScopedIdentifier:
		if last := path.ChildByField("name"); last != nil {
			name = last.Text
		}
	}

	preset, err := e.presets.Lookup(name)
	if err != nil {
		return m.Preset{}, "", false
	}

	args := ""

	if len(body.Children) > 1 {
		rest := body.Children[1]
		if rest.Kind == "token_tree" && len(body.Children) == 2 {
			args = attributeArgs(rest)
		} else {
			// #[mwt = ...] has no valid argument form; let ParseArgs reject it.
			args = strings.TrimSpace(syntax.Print(&syntax.Node{Children: body.Children[1:]}))
		}
	}

	return preset, args, true
}

// attributeArgs returns the tokens between the delimiters of tree without
// comments. Tokens separated in the source stay separated by one space.
func attributeArgs(tree *syntax.Node) string {
	if tree.IsLeaf() || len(tree.Children) < 2 {
		return syntax.PrintInner(tree)
	}

	var b strings.Builder

	gap := false

	for _, child := range tree.Children[1 : len(tree.Children)-1] {
		syntax.Walk(child, func(n *syntax.Node) bool {
			if syntax.IsComment(n) {
				gap = true
				return false
			}

			if n.IsLeaf() {
				if (gap || n.Leading != "") && b.Len() > 0 {
					b.WriteByte(' ')
				}

				b.WriteString(n.Text)

				gap = false
			}

			return true
		})
	}

	return b.String()
}

// renderSite prints both variants of a site, read-only first. The marker
// attribute is dropped and the remaining attributes are copied to both.
func (e *expander) renderSite(st site, indent string) (string, m.Expansion, error) {
	s, err := ParseArgs(st.preset, st.args)
	if err != nil {
		return "", m.Expansion{}, err
	}

	variants, err := Dispatch(s, st.fn)
	if err != nil {
		return "", m.Expansion{}, err
	}

	printed := m.Variants{
		ReadOnly: withAttributes(st, variants.ReadOnly),
		Mutable:  withAttributes(st, variants.Mutable),
	}

	expansion := m.Expansion{
		Preset:       st.preset.Name,
		Function:     functionName(st.fn),
		Line:         st.fn.Pos.Line,
		ReadOnlyName: functionName(variants.ReadOnly),
		MutableName:  functionName(variants.Mutable),
	}

	return printed.Text("\n\n" + indent), expansion, nil
}

// withAttributes groups fn with copies of the site's attributes and
// comments, minus the marker.
func withAttributes(st site, fn *syntax.Node) *syntax.Node {
	nodes := make([]*syntax.Node, 0, len(st.group))

	for i, node := range st.group[:len(st.group)-1] {
		if i != st.marker {
			nodes = append(nodes, node.Clone())
		}
	}

	nodes = append(nodes, fn)
	syntax.SetLeading(nodes[0], "")

	return &syntax.Node{Kind: fn.Kind, Named: true, Children: nodes, Start: -1, End: -1}
}

// singleFunction returns the only top-level function of root with the
// attributes above it.
func singleFunction(root *syntax.Node) (site, error) {
	fnIndex := -1

	for i, child := range root.Children {
		if child.Kind == kindAttributeItem || syntax.IsComment(child) {
			continue
		}

		if child.Kind != kindFunctionItem || fnIndex >= 0 {
			return site{}, fmt.Errorf("expected a single function definition, found %s", child.Kind)
		}

		fnIndex = i
	}

	if fnIndex < 0 {
		return site{}, fmt.Errorf("expected a single function definition")
	}

	start := fnIndex
	for start > 0 && (root.Children[start-1].Kind == kindAttributeItem || syntax.IsComment(root.Children[start-1])) {
		start--
	}

	return site{group: root.Children[start : fnIndex+1], marker: -1, fn: root.Children[fnIndex]}, nil
}

func functionName(fn *syntax.Node) string {
	if name := fn.ChildByField("name"); name != nil {
		return name.Text
	}

	return ""
}

// indentOf returns the horizontal whitespace in front of n on its line.
func indentOf(n *syntax.Node) string {
	leading := syntax.LeadingOf(n)
	if idx := strings.LastIndex(leading, "\n"); idx >= 0 {
		leading = leading[idx+1:]
	}

	if strings.Trim(leading, " \t") != "" {
		return ""
	}

	return leading
}
