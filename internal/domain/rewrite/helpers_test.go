package rewrite

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phi-fell/mwt/internal/adapter"
	m "github.com/phi-fell/mwt/internal/model"
	"github.com/phi-fell/mwt/internal/syntax"
)

var (
	mwtSentinels = m.Sentinels{
		IdentMarker:  "mwt",
		TypeMarker:   "Mwt",
		SwitchMarker: "MwtAlt",
		RefMarker:    "Mwt",
	}
	maybeMutSentinels = m.Sentinels{
		IdentMarker:  "maybe_mut",
		TypeMarker:   "MaybeMut",
		SwitchMarker: "MutOrElse",
		RefMarker:    "MaybeMut",
	}
)

func parseFile(t *testing.T, src string) *syntax.Node {
	t.Helper()

	root, err := adapter.NewLocalRustFileAdapter().Parse(context.Background(), "test.rs", []byte(src))
	require.NoError(t, err, "source:\n%s", src)

	return root
}

// parseFunction returns the first function_item in src.
func parseFunction(t *testing.T, src string) *syntax.Node {
	t.Helper()

	var fn *syntax.Node

	syntax.Walk(parseFile(t, src), func(n *syntax.Node) bool {
		if fn == nil && n.Kind == kindFunction {
			fn = n
		}

		return fn == nil
	})
	require.NotNil(t, fn, "no function in:\n%s", src)

	return fn
}

// tokens re-parses printed source and joins its tokens, so comparisons ignore
// whitespace.
func tokens(t *testing.T, src string) string {
	t.Helper()

	var out []string

	syntax.Walk(parseFile(t, src), func(n *syntax.Node) bool {
		if n.IsLeaf() && !syntax.IsComment(n) {
			out = append(out, n.Text)
		}

		return true
	})

	return strings.Join(out, " ")
}

func render(t *testing.T, s m.Sentinels, mode m.Mode, src string) (string, error) {
	t.Helper()

	out, err := Render(s, mode, parseFunction(t, src))
	if err != nil {
		return "", err
	}

	return syntax.Print(out), nil
}

func requireRender(t *testing.T, s m.Sentinels, mode m.Mode, src, want string) {
	t.Helper()

	got, err := render(t, s, mode, src)
	require.NoError(t, err)
	require.Equal(t, tokens(t, want), tokens(t, got), "rendered:\n%s", got)
}
