package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	m "github.com/phi-fell/mwt/internal/model"
)

// initCmd represents the init command.
var initCmd = newInitCmd()

// presetExample is written, commented out, below the defaults of a new config.
var presetExample = m.Preset{
	Name:         "rw",
	IdentMarker:  "rw",
	TypeMarker:   "Rw",
	SwitchMarker: "RwOrElse",
	RefMarker:    "Rw",
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default mwt.yaml configuration file",
		Long: `Create an mwt.yaml in the current working directory populated with the
current CLI defaults and a commented example of a custom marker preset.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			if err := appendPresetExample(targetPath); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			return nil
		},
	}
}

// appendPresetExample adds presetExample as a YAML comment to the config at path.
func appendPresetExample(path string) error {
	var body bytes.Buffer

	encoder := yaml.NewEncoder(&body)
	encoder.SetIndent(2)

	doc := struct {
		Presets []m.Preset `yaml:"presets"`
	}{Presets: []m.Preset{presetExample}}

	if err := encoder.Encode(doc); err != nil {
		return err
	}

	if err := encoder.Close(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString("\n# Custom marker presets replace the presets entry above, e.g. for #[rw]:\n")

	for _, line := range strings.Split(strings.TrimRight(body.String(), "\n"), "\n") {
		b.WriteString("# " + line + "\n")
	}

	// #nosec G304 - path is the config file just written
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		return err
	}

	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func init() {
	rootCmd.AddCommand(initCmd)
}
