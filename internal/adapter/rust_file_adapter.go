package adapter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/phi-fell/mwt/internal/syntax"
)

// RustFileAdapter encapsulates Rust-specific parsing so the domain layer can
// focus on rewrite rules while delegating the grammar to an infrastructure
// component.
type RustFileAdapter interface {
	// Parse builds an owned syntax tree for src. It fails with a
	// *syntax.SyntaxError when the source does not parse cleanly.
	Parse(ctx context.Context, path string, src []byte) (*syntax.Node, error)
}

// LocalRustFileAdapter provides a RustFileAdapter backed by tree-sitter.
type LocalRustFileAdapter struct{}

// NewLocalRustFileAdapter constructs a LocalRustFileAdapter.
func NewLocalRustFileAdapter() *LocalRustFileAdapter {
	return &LocalRustFileAdapter{}
}

// Parse runs a fresh tree-sitter parser over src. Parsers are not shared, so
// concurrent calls are safe.
func (a *LocalRustFileAdapter) Parse(ctx context.Context, path string, src []byte) (*syntax.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	return syntax.FromTreeSitter(tree.RootNode(), src)
}
