package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "scdra",
		Short: "Supply chain disruption response agent",
		Long: `scdra investigates supply chain disruptions with an agentic tool loop:
it pulls alerts, inventory and supplier data, quantifies financial exposure,
and drafts a response plan that waits for human approval before any
notification or purchase order change is executed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newRunCmd(flags),
		newToolsCmd(),
		newSeedCmd(flags),
	)
	return cmd
}
