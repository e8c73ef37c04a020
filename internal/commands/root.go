package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finclusion-dev/finclusion/internal/buildinfo"
	"github.com/finclusion-dev/finclusion/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "finclusion",
		Short:   "Ethiopia financial inclusion dataset tooling",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.FileName, "path to the project config file")
	pf.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "", "log format override (text, json)")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newSummaryCommand(opts),
		newFilterCommand(opts),
		newEventsCommand(opts),
		newAddCommand(opts),
		newSaveCommand(opts),
		newCodesCommand(opts),
		newForecastCommand(opts),
	)

	return rootCmd
}
