package domain

import (
	"fmt"

	m "github.com/phi-fell/mwt/internal/model"
	"github.com/phi-fell/mwt/internal/domain/rewrite"
	"github.com/phi-fell/mwt/internal/syntax"
)

// Dispatch renders two independent copies of fn, read-only first. fn itself
// is left untouched. On error neither variant is returned.
func Dispatch(s m.Sentinels, fn *syntax.Node) (m.Variants, error) {
	readOnly, err := rewrite.Render(s, m.ReadOnly, fn.Clone())
	if err != nil {
		return m.Variants{}, fmt.Errorf("%s variant: %w", m.ReadOnly, err)
	}

	mutable, err := rewrite.Render(s, m.Mutable, fn.Clone())
	if err != nil {
		return m.Variants{}, fmt.Errorf("%s variant: %w", m.Mutable, err)
	}

	return m.Variants{ReadOnly: readOnly, Mutable: mutable}, nil
}
