// Package cli wires the FlowLens command tree together.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/flowlens-labs/flowlens/internal/cli/commands"
	"github.com/flowlens-labs/flowlens/internal/cli/config"
)

// NewRootCommand builds the flowlens root command with all subcommands
// attached. Configuration is loaded in PersistentPreRunE so every
// subcommand sees the merged defaults/file/env/flag view.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "flowlens",
		Short: "Lineage analysis for cloud data platforms",
		Long: `FlowLens fetches dataflow and dataset metadata from your data
platform, builds a lineage graph from it, and answers questions about
dependencies, reachability, and pipeline health from a local cache.`,
		Version:       commands.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := config.NewLogger(cfg.Verbose)
			cmd.SetContext(config.WithLogger(cmd.Context(), logger))

			if used := config.GetConfigFileUsed(); used != "" {
				logger.Debug("loaded config file", "path", used)
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default: ./flowlens.yaml, then ~/.flowlens.yaml)")
	pf.StringP("output", "o", "", "Output format: auto, text, markdown, or json")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.String("cache-path", "", "Path to the snapshot cache database")
	pf.String("api-url", "", "Base URL of the platform API")
	pf.Bool("offline", false, "Never contact the platform API; use the cached snapshot only")

	rootCmd.AddCommand(
		commands.NewFetchCommand(),
		commands.NewLineageCommand(),
		commands.NewDepsCommand(),
		commands.NewGraphCommand(),
		commands.NewDatasetsCommand(),
		commands.NewDataflowsCommand(),
		commands.NewDoctorCommand(),
		commands.NewExportCommand(),
		commands.NewVersionCommand(),
	)

	return rootCmd
}
