package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phi-fell/mwt/internal/adapter"
	"github.com/phi-fell/mwt/internal/domain/rewrite"
	m "github.com/phi-fell/mwt/internal/model"
	"github.com/phi-fell/mwt/internal/syntax"
)

func parseFn(t *testing.T, src string) *syntax.Node {
	t.Helper()

	root, err := adapter.NewLocalRustFileAdapter().Parse(context.Background(), "fn.rs", []byte(src))
	require.NoError(t, err)

	fn := root.ChildByKind(kindFunctionItem)
	require.NotNil(t, fn)

	return fn
}

func TestDispatch(t *testing.T) {
	fn := parseFn(t, `fn children_mwt(&mut self) -> &Mwt<Vec<u8>> { &mwt(self.v) }`)
	before := fn.Clone()

	variants, err := Dispatch(m.SentinelsFor(DefaultPresets[0], false), fn)
	require.NoError(t, err)

	assert.Equal(t, "fn children(&self) -> &Vec<u8> { &self.v }", syntax.Print(variants.ReadOnly))
	assert.Equal(t, "fn children_mut(&mut self) -> &mut Vec<u8> { &mut self.v }", syntax.Print(variants.Mutable))
	assert.Equal(t,
		"fn children(&self) -> &Vec<u8> { &self.v }\nfn children_mut(&mut self) -> &mut Vec<u8> { &mut self.v }",
		variants.Text("\n"))

	if diff := cmp.Diff(before, fn); diff != "" {
		t.Fatalf("Dispatch() modified its input (-before +after):\n%s", diff)
	}
}

func TestDispatch_ShapeErrorProducesNoVariant(t *testing.T) {
	fn := parseFn(t, `fn f_mwt(v: &Mwt<A, B>) {}`)

	variants, err := Dispatch(m.SentinelsFor(DefaultPresets[0], false), fn)
	require.Error(t, err)

	var shapeErr *rewrite.ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "Mwt needs one type param e.g. &Mwt<T>", shapeErr.Msg)
	assert.Nil(t, variants.ReadOnly)
	assert.Nil(t, variants.Mutable)
}
