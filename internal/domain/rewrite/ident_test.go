package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/phi-fell/mwt/internal/model"
)

func TestIdent(t *testing.T) {
	tests := []struct {
		in       string
		readOnly string
		mutable  string
	}{
		{"children_mwt", "children", "children_mut"},
		{"get_mwt", "get", "get_mut"},
		{"my_mwt_function", "my_function", "my_mut_function"},
		{"mwt_iter", "iter", "mut_iter"},
		{"mwt_mwt_x", "x", "mut_mut_x"},
		{"x_mwt_mwt", "x", "x_mut_mut"},
		{"plain", "plain", "plain"},
		{"mwtx", "mwtx", "mutx"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ro := &renderer{s: mwtSentinels, mode: m.ReadOnly}
			mu := &renderer{s: mwtSentinels, mode: m.Mutable}

			assert.Equal(t, tt.readOnly, ro.ident(tt.in))
			assert.Equal(t, tt.mutable, mu.ident(tt.in))
		})
	}
}

func TestTypeSegment(t *testing.T) {
	ro := &renderer{s: mwtSentinels, mode: m.ReadOnly}
	mu := &renderer{s: mwtSentinels, mode: m.Mutable}

	assert.Equal(t, "GuardType", ro.typeSegment("GuardTypeMwt"))
	assert.Equal(t, "GuardTypeMut", mu.typeSegment("GuardTypeMwt"))
	assert.Equal(t, "", ro.typeSegment("Mwt"))

	ro = &renderer{s: maybeMutSentinels, mode: m.ReadOnly}
	mu = &renderer{s: maybeMutSentinels, mode: m.Mutable}

	assert.Equal(t, "Guard", ro.typeSegment("GuardMaybeMut"))
	assert.Equal(t, "GuardMut", mu.typeSegment("GuardMaybeMut"))
}
