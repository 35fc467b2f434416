package model

import "github.com/phi-fell/mwt/internal/syntax"

// Variants holds the two rendered copies of one function.
type Variants struct {
	ReadOnly *syntax.Node
	Mutable  *syntax.Node
}

// Text prints the read-only variant, then sep, then the mutable variant.
func (v Variants) Text(sep string) string {
	return syntax.Print(v.ReadOnly) + sep + syntax.Print(v.Mutable)
}
