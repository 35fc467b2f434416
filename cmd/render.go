package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var renderPresetFlag string
var renderArgsFlag string

// renderCmd represents the render command.
var renderCmd = newRenderCmd()

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Print both variants of a single function",
		Long: `Read one Rust function definition from a file or stdin and print its
read-only variant followed by its mutable variant. The preset and its
arguments come from --preset and --args, as if the function carried
#[preset(args)].`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readRenderInput(cmd, args)
			if err != nil {
				return err
			}

			expander, err := newExpander()
			if err != nil {
				return err
			}

			out, err := expander.RenderFunction(cmd.Context(), renderPresetFlag, renderArgsFlag, src)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)

			return err
		},
	}

	cmd.Flags().StringVar(&renderPresetFlag, presetFlagName, defaultPreset, "preset naming the markers")
	cmd.Flags().StringVar(&renderArgsFlag, argsFlagName, "", "attribute arguments, e.g. ignore_self")

	return cmd
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func readRenderInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}

		return src, nil
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	return src, nil
}
