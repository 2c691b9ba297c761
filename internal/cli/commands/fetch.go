package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewFetchCommand creates the fetch command.
func NewFetchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a fresh snapshot from the platform API",
		Long: `Fetch dataflow, dataset, and card records from the platform API and
store them as a snapshot in the local cache.

Analysis commands (lineage, deps, doctor, ...) read from the latest cached
snapshot, so fetch is the only command that needs network access.`,
		Example: `  # Refresh the local snapshot
  flowlens fetch

  # Fetch against a different API host
  flowlens fetch --api-url https://api.example.com`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFetch(cmd)
		},
	}

	return cmd
}

func runFetch(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if cmdCtx.Cfg.Offline {
		return fmt.Errorf("fetch is not available in offline mode")
	}

	id, err := refreshSnapshot(cmd, cmdCtx)
	if err != nil {
		return err
	}

	info, err := cmdCtx.Store.LatestSnapshot()
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	r.Success("Snapshot %s saved to %s", id, cmdCtx.Cfg.CachePath)
	if info != nil {
		r.Printf("Dataflows: %d, Datasets: %d, Cards: %d\n",
			info.DataflowCount, info.DatasetCount, info.CardCount)
	}
	return nil
}
