package rewrite

import (
	"fmt"

	"github.com/phi-fell/mwt/internal/syntax"
)

// ShapeError reports a marker used in a shape the engine cannot resolve.
// It always aborts the whole render.
type ShapeError struct {
	Pos    syntax.Position
	Marker string
	Msg    string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

func shapeErrorf(n *syntax.Node, marker, format string, args ...interface{}) *ShapeError {
	pos := n.Pos
	if leaf := n.FirstLeaf(); !pos.IsValid() && leaf != nil {
		pos = leaf.Pos
	}

	return &ShapeError{
		Pos:    pos,
		Marker: marker,
		Msg:    fmt.Sprintf(format, args...),
	}
}
