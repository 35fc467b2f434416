package cmd

import (
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long: `Displays the build version of mwt, the Go version used to build it and the
marker presets the current configuration provides.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
			} else {
				cmd.Println("tool version\t", info.Main.Version)
				cmd.Println("go version\t", info.GoVersion)
			}

			presets, err := loadPresets()
			if err != nil {
				return err
			}

			names := make([]string, 0, len(presets.All()))
			for _, preset := range presets.All() {
				names = append(names, preset.Name)
			}

			cmd.Println("presets\t\t", strings.Join(names, ", "))

			return nil
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
