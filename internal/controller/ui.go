// Package controller provides output adapters for displaying expansion results.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "github.com/phi-fell/mwt/internal/model"
)

// UI defines the interface for displaying expansion results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayExpanded prints every expanded file behind a `// file:` header.
	DisplayExpanded(ctx context.Context, results []m.FileResult) error
	// DisplayExpansions lists the marked functions found in results.
	DisplayExpansions(ctx context.Context, results []m.FileResult) error
	// DisplayWatchEvent reports one re-expansion performed by the watcher.
	DisplayWatchEvent(ctx context.Context, result m.FileResult, err error)
}

// NewUI returns the TUI when tty is set and the plain text UI otherwise.
// Both write to the command's output.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// writeExpanded prints results in the stdout output format.
func writeExpanded(w io.Writer, results []m.FileResult) error {
	for i, result := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, "// file: %s\n", displayPath(result)); err != nil {
			return err
		}

		if _, err := w.Write(result.Expanded); err != nil {
			return err
		}
	}

	return nil
}

func displayPath(result m.FileResult) string {
	if result.Source.Origin == nil {
		return ""
	}

	return string(result.Source.Origin.FullPath)
}
