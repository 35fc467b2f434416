package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phi-fell/mwt/internal/domain"
	m "github.com/phi-fell/mwt/internal/model"
)

var watchDebounceFlag string

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-expand files into the output directory as they change",
		Long:  watchLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir := viper.GetString(outputFlagName)
			if outputDir == "" {
				return errors.New("watch needs --output")
			}

			workflow, err := newWorkflow(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			err = workflow.Watch(ctx, domain.WatchArgs{
				Paths:     parsePaths(args),
				Exclude:   viper.GetStringSlice(excludeConfigKey),
				Parallel:  viper.GetInt(parallelConfigKey),
				OutputDir: m.Path(outputDir),
				Debounce:  debounceInterval(),
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}

			return err
		},
	}

	cmd.Flags().StringVar(&watchDebounceFlag, debounceFlagName, viper.GetString(debounceConfigKey), "quiet period before a changed file is expanded")
	bindFlagToConfig(cmd.Flags().Lookup(debounceFlagName), debounceConfigKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
