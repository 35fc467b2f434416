package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/phi-fell/mwt/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayExpanded prints the expanded files.
func (s *SimpleUI) DisplayExpanded(ctx context.Context, results []m.FileResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return writeExpanded(s.cmd.OutOrStdout(), results)
}

// DisplayExpansions prints the marked functions as a table.
func (s *SimpleUI) DisplayExpansions(ctx context.Context, results []m.FileResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s", renderExpansionTable(results))

	return nil
}

// DisplayWatchEvent prints a one-line summary of a watcher run.
func (s *SimpleUI) DisplayWatchEvent(ctx context.Context, result m.FileResult, err error) {
	if ctx.Err() != nil {
		return
	}

	path := displayPath(result)

	switch {
	case err != nil:
		s.printf("error: %v\n", err)
	case result.Changed():
		s.printf("expanded %s (%d functions)\n", path, len(result.Expansions))
	default:
		s.printf("unchanged %s\n", path)
	}
}

func renderExpansionTable(results []m.FileResult) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Line", "Function", "Preset", "Read-only", "Mutable"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	files, total := 0, 0

	for _, result := range results {
		if !result.Changed() {
			continue
		}

		files++

		for _, expansion := range result.Expansions {
			table.Append([]string{
				displayPath(result),
				strconv.Itoa(expansion.Line),
				expansion.Function,
				expansion.Preset,
				expansion.ReadOnlyName,
				expansion.MutableName,
			})

			total++
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", files),
		"",
		fmt.Sprintf("%d", total),
		"",
		"",
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
