package domain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phi-fell/mwt/internal/adapter"
	"github.com/phi-fell/mwt/internal/syntax"
)

func newTestExpander(t *testing.T) Expander {
	t.Helper()

	presets, err := NewPresets()
	require.NoError(t, err)

	return NewExpander(adapter.NewLocalRustFileAdapter(), presets)
}

// tokens parses src and joins its non-comment tokens, so comparisons ignore
// whitespace.
func tokens(t *testing.T, src string) string {
	t.Helper()

	root, err := adapter.NewLocalRustFileAdapter().Parse(context.Background(), "tokens.rs", []byte(src))
	require.NoError(t, err, "source:\n%s", src)

	var out []string

	syntax.Walk(root, func(n *syntax.Node) bool {
		if n.IsLeaf() && !syntax.IsComment(n) {
			out = append(out, n.Text)
		}

		return true
	})

	return strings.Join(out, " ")
}

func readTestdata(t *testing.T, elem ...string) []byte {
	t.Helper()

	content, err := os.ReadFile(filepath.Join(append([]string{"testdata"}, elem...)...))
	require.NoError(t, err)

	return content
}

// copyCrate copies testdata/crate into a temporary directory.
func copyCrate(t *testing.T) string {
	t.Helper()

	dst := t.TempDir()
	src := filepath.Join("testdata", "crate")

	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		return os.WriteFile(target, content, 0o644)
	})
	require.NoError(t, err)

	return dst
}
