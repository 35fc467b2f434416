package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phi-fell/mwt/internal/domain/rewrite"
	"github.com/phi-fell/mwt/internal/syntax"
)

// ErrorKind classifies an ExpansionError.
type ErrorKind string

// Available ErrorKind values.
const (
	KindArgument ErrorKind = "argument"
	KindMarker   ErrorKind = "marker"
	KindSyntax   ErrorKind = "syntax"
)

// ExpansionError reports a failure to expand one file at a source position.
type ExpansionError struct {
	Path string
	Pos  syntax.Position
	Kind ErrorKind
	Err  error
}

func (e *ExpansionError) Error() string {
	msg := e.Err.Error()

	var shapeErr *rewrite.ShapeError
	if errors.As(e.Err, &shapeErr) {
		msg = shapeErr.Msg
	}

	msg = strings.TrimPrefix(msg, e.Pos.String()+": ")

	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Pos, msg)
	}

	return fmt.Sprintf("%s:%s: %s", e.Path, e.Pos, msg)
}

func (e *ExpansionError) Unwrap() error {
	return e.Err
}

// classify wraps err with the position and kind it carries.
func classify(path string, pos syntax.Position, err error) error {
	var (
		expansionErr *ExpansionError
		shapeErr     *rewrite.ShapeError
		syntaxErr    *syntax.SyntaxError
	)

	switch {
	case errors.As(err, &expansionErr):
		expansionErr.Path = path
		return expansionErr
	case errors.As(err, &shapeErr):
		return &ExpansionError{Path: path, Pos: shapeErr.Pos, Kind: KindMarker, Err: shapeErr}
	case errors.As(err, &syntaxErr):
		return &ExpansionError{Path: path, Pos: syntaxErr.Pos, Kind: KindSyntax, Err: syntaxErr}
	case errors.Is(err, ErrInvalidArgument):
		return &ExpansionError{Path: path, Pos: pos, Kind: KindArgument, Err: err}
	}

	return fmt.Errorf("%s: %w", path, err)
}
