package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/flowlens-labs/flowlens/internal/cli/output"
	"github.com/flowlens-labs/flowlens/internal/lineage"
	"github.com/flowlens-labs/flowlens/internal/platform"
)

// DataflowRow is one dataflow in the dataflows listing.
type DataflowRow struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	Owner       string  `json:"owner,omitempty"`
	Inputs      int     `json:"inputs"`
	Outputs     int     `json:"outputs"`
	SuccessRate float64 `json:"success_rate"`
}

// NewDataflowsCommand creates the dataflows command.
func NewDataflowsCommand() *cobra.Command {
	var usesDataset string
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "dataflows",
		Short: "List dataflows with their resolved status",
		Long: `List every dataflow in the latest snapshot with its resolved operational
status, owner, and input/output counts.

With --uses, only dataflows that consume the given dataset are listed.`,
		Example: `  # List all dataflows
  flowlens dataflows

  # Which dataflows read this dataset?
  flowlens dataflows --uses ds-1a2b3c

  # Only failed dataflows
  flowlens dataflows --status failed`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDataflows(cmd, usesDataset, statusFilter)
		},
	}

	cmd.Flags().StringVar(&usesDataset, "uses", "", "Only dataflows consuming this dataset id")
	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status (active|failed|running|unknown)")

	return cmd
}

func runDataflows(cmd *cobra.Command, usesDataset, statusFilter string) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := loadSnapshot(cmd, cmdCtx)
	if err != nil {
		return err
	}

	graph := lineage.BuildGraph(snap.Dataflows)

	flows := snap.Dataflows
	if usesDataset != "" {
		if _, ok := graph.Node(usesDataset); !ok {
			return fmt.Errorf("dataset not found in lineage graph: %s", usesDataset)
		}
		flows = lineage.DataflowsUsingDataset(graph, snap.Dataflows, usesDataset)
	}

	var listing []DataflowRow
	for _, df := range flows {
		if df.ID == "" {
			continue
		}
		status := lineage.ResolveStatus(df)
		if statusFilter != "" && string(status) != statusFilter {
			continue
		}
		listing = append(listing, DataflowRow{
			ID:          df.ID,
			Name:        dataflowName(df),
			Status:      string(status),
			Owner:       df.Owner,
			Inputs:      len(df.Inputs),
			Outputs:     len(df.Outputs),
			SuccessRate: df.SuccessRate(),
		})
	}
	sort.Slice(listing, func(i, j int) bool { return listing[i].ID < listing[j].ID })

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(listing)
	}

	r.Header(1, fmt.Sprintf("Dataflows (%d)", len(listing)))
	rows := make([][]string, 0, len(listing))
	for _, row := range listing {
		rows = append(rows, []string{
			row.ID, row.Name, row.Status, row.Owner,
			fmt.Sprintf("%d", row.Inputs),
			fmt.Sprintf("%d", row.Outputs),
			fmt.Sprintf("%.0f%%", row.SuccessRate*100),
		})
	}
	r.Table([]string{"ID", "Name", "Status", "Owner", "Inputs", "Outputs", "Success"}, rows)
	return nil
}

func dataflowName(df platform.Dataflow) string {
	if df.Name != "" {
		return df.Name
	}
	return "Unnamed Dataflow"
}
