package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "github.com/phi-fell/mwt/internal/model"
)

// presetsCmd represents the presets command.
var presetsCmd = newPresetsCmd()

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Show the available marker presets",
		Long: `Print every preset as YAML, built-in ones and those declared under
presets in mwt.yaml. The output can be pasted into the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets, err := loadPresets()
			if err != nil {
				return err
			}

			encoder := yaml.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent(2)

			doc := struct {
				Presets []m.Preset `yaml:"presets"`
			}{Presets: presets.All()}

			if err := encoder.Encode(doc); err != nil {
				return fmt.Errorf("failed to encode presets: %w", err)
			}

			return encoder.Close()
		},
	}
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
