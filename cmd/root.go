// Package cmd provides the root command and CLI setup for mwt.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/phi-fell/mwt/internal/adapter"
	"github.com/phi-fell/mwt/internal/controller"
	"github.com/phi-fell/mwt/internal/domain"
	m "github.com/phi-fell/mwt/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var rustFileAdapter adapter.RustFileAdapter
var watchAdapter adapter.WatchAdapter

// outputDirFlag is a root-level flag shared by commands that mirror expanded files.
var outputDirFlag string

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

// verboseFlag switches the log file to debug level.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	rustFileAdapter = adapter.NewLocalRustFileAdapter()
	watchAdapter = adapter.NewLocalWatchAdapter()
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./src/...      recursively scan src directory
  - ./src ./benches  scan multiple directories
  - src/lib.rs     a single file
Directories named target and hidden directories are skipped.`

const rootLongDescription = `mwt expands Rust functions marked with #[mwt] or #[maybe_mut] into a
read-only and a mutable variant, so accessor pairs such as get/get_mut are
written once.

` + pathPatternsHelp

const expandLongDescription = `Expand every marked function below the given paths (default: current directory).

` + pathPatternsHelp

const listLongDescription = `List marked functions and the names of their generated variants.

` + pathPatternsHelp

const watchLongDescription = `Expand into the output directory and re-expand files as they change.

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "mwt",
		Short:         "Generate read-only and mutable variants of Rust functions",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd builds a root command with its persistent flags, without the
// registered subcommands.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for expanded files",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "write debug logs")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadPresets returns the built-in presets plus those declared under the
// presets config key.
func loadPresets() (*domain.Presets, error) {
	var custom []m.Preset

	if err := viper.UnmarshalKey(presetsConfigKey, &custom); err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", presetsConfigKey, err)
	}

	presets, err := domain.NewPresets(custom...)
	if err != nil {
		return nil, fmt.Errorf("invalid %s config: %w", presetsConfigKey, err)
	}

	return presets, nil
}

func newExpander() (domain.Expander, error) {
	presets, err := loadPresets()
	if err != nil {
		return nil, err
	}

	return domain.NewExpander(rustFileAdapter, presets), nil
}

// newWorkflow wires the shared adapters to a UI writing to cmd's output.
func newWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	expander, err := newExpander()
	if err != nil {
		return nil, err
	}

	ui := controller.NewUI(cmd, controller.IsTTY(cmd.OutOrStdout()))

	return domain.NewWorkflow(fsAdapter, watchAdapter, ui, expander), nil
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
