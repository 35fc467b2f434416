package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phi-fell/mwt/internal/domain"
	m "github.com/phi-fell/mwt/internal/model"
)

var expandParallelFlag int
var expandModeFlag string
var expandDiffFileFlag string

// expandCmd represents the expand command.
var expandCmd = newExpandCmd()

func newExpandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand [paths...]",
		Short: "Expand marked functions",
		Long:  expandLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := domain.ParseOutputMode(viper.GetString(modeConfigKey))
			if err != nil {
				return err
			}

			workflow, err := newWorkflow(cmd)
			if err != nil {
				return err
			}

			results, err := workflow.Expand(cmd.Context(), domain.ExpandArgs{
				Paths:     parsePaths(args),
				Exclude:   viper.GetStringSlice(excludeConfigKey),
				Parallel:  viper.GetInt(parallelConfigKey),
				Mode:      mode,
				OutputDir: m.Path(viper.GetString(outputFlagName)),
				DiffFile:  m.Path(viper.GetString(diffFileConfigKey)),
			})
			if err != nil {
				return err
			}

			if mode != domain.OutputStdout {
				cmd.PrintErrf("expanded %d files (%s)\n", len(results), mode)
			}

			return nil
		},
	}

	configureExpandFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(expandCmd)
}

func configureExpandFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&expandParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of files expanded in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().StringVarP(&expandModeFlag, modeFlagName, "m", viper.GetString(modeConfigKey), "where to write expanded files: stdout, write, output or diff")
	bindFlagToConfig(cmd.Flags().Lookup(modeFlagName), modeConfigKey)

	cmd.Flags().StringVar(&expandDiffFileFlag, diffFileFlagName, viper.GetString(diffFileConfigKey), "patch file written in diff mode")
	bindFlagToConfig(cmd.Flags().Lookup(diffFileFlagName), diffFileConfigKey)
}
