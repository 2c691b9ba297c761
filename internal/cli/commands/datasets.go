package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/flowlens-labs/flowlens/internal/cli/output"
	"github.com/flowlens-labs/flowlens/internal/lineage"
)

// DatasetRow is one dataset in the datasets listing.
type DatasetRow struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Classification string `json:"classification"`
	Producers      int    `json:"producers"`
	Consumers      int    `json:"consumers"`
	Cards          int    `json:"cards"`
}

// NewDatasetsCommand creates the datasets command.
func NewDatasetsCommand() *cobra.Command {
	var classFilter string

	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "List datasets with their lineage classification",
		Long: `List every dataset in the lineage graph with its classification
(source, sink, intermediate, or orphan), its producer and consumer counts,
and the number of cards built on it.`,
		Example: `  # List all datasets
  flowlens datasets

  # Only datasets nothing consumes
  flowlens datasets --class sink

  # Output as JSON
  flowlens datasets --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDatasets(cmd, classFilter)
		},
	}

	cmd.Flags().StringVar(&classFilter, "class", "", "Filter by classification (source|sink|intermediate|orphan)")

	return cmd
}

func runDatasets(cmd *cobra.Command, classFilter string) error {
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

	cardCount := make(map[string]int)
	for _, card := range snap.Cards {
		if card.DatasetID != "" {
			cardCount[card.DatasetID]++
		}
	}

	var listing []DatasetRow
	for _, n := range graph.Nodes() {
		if n.Type != lineage.NodeDataset {
			continue
		}
		deps := lineage.DatasetDependencies(graph, n.ID)
		if deps == nil {
			continue
		}
		class := lineage.ClassifyDataset(len(deps.Upstream.Dataflows), len(deps.Downstream.Dataflows))
		if classFilter != "" && string(class) != classFilter {
			continue
		}
		listing = append(listing, DatasetRow{
			ID:             n.ID,
			Name:           n.DisplayName(),
			Classification: string(class),
			Producers:      len(deps.Upstream.Dataflows),
			Consumers:      len(deps.Downstream.Dataflows),
			Cards:          cardCount[n.ID],
		})
	}
	sort.Slice(listing, func(i, j int) bool { return listing[i].ID < listing[j].ID })

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(listing)
	}

	r.Header(1, fmt.Sprintf("Datasets (%d)", len(listing)))
	rows := make([][]string, 0, len(listing))
	for _, row := range listing {
		rows = append(rows, []string{
			row.ID, row.Name, row.Classification,
			fmt.Sprintf("%d", row.Producers),
			fmt.Sprintf("%d", row.Consumers),
			fmt.Sprintf("%d", row.Cards),
		})
	}
	r.Table([]string{"ID", "Name", "Class", "Producers", "Consumers", "Cards"}, rows)
	return nil
}
