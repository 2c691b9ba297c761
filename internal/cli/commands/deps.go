package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowlens-labs/flowlens/internal/cli/output"
	"github.com/flowlens-labs/flowlens/internal/lineage"
)

// NewDepsCommand creates the deps command.
func NewDepsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps <dataset-id>",
		Short: "Show direct dependencies of a dataset",
		Long: `Display what feeds a dataset and what consumes it.

Upstream shows the dataflows producing the dataset, plus the datasets those
dataflows read (one hop back). Downstream shows the dataflows consuming the
dataset, plus the datasets they produce. The dataset is also classified as
source, sink, intermediate, or orphan.`,
		Example: `  # Show dependencies for a dataset
  flowlens deps ds-1a2b3c

  # Output as JSON
  flowlens deps ds-1a2b3c --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeps(cmd, args[0])
		},
	}

	return cmd
}

func runDeps(cmd *cobra.Command, datasetID string) error {
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
	deps := lineage.DatasetDependencies(graph, datasetID)
	if deps == nil {
		return fmt.Errorf("dataset not found in lineage graph: %s", datasetID)
	}

	class := lineage.ClassifyDataset(len(deps.Upstream.Dataflows), len(deps.Downstream.Dataflows))

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return depsJSON(r, graph, datasetID, deps, class)
	default:
		return depsTable(r, graph, datasetID, deps, class)
	}
}

func entityList(nodes []*lineage.Node) []output.DependencyEntity {
	out := make([]output.DependencyEntity, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, output.DependencyEntity{ID: n.ID, Name: n.DisplayName()})
	}
	return out
}

func depsJSON(r *output.Renderer, graph *lineage.Graph, datasetID string, deps *lineage.Dependencies, class lineage.DatasetClass) error {
	node, _ := graph.Node(datasetID)
	return r.JSON(output.DepsOutput{
		Dataset:        output.DependencyEntity{ID: datasetID, Name: node.DisplayName()},
		Classification: string(class),
		Upstream: output.DependencySide{
			Dataflows: entityList(deps.Upstream.Dataflows),
			Datasets:  entityList(deps.Upstream.Datasets),
		},
		Downstream: output.DependencySide{
			Dataflows: entityList(deps.Downstream.Dataflows),
			Datasets:  entityList(deps.Downstream.Datasets),
		},
	})
}

func depsTable(r *output.Renderer, graph *lineage.Graph, datasetID string, deps *lineage.Dependencies, class lineage.DatasetClass) error {
	node, _ := graph.Node(datasetID)

	r.Header(1, fmt.Sprintf("Dependencies: %s", node.DisplayName()))
	r.Println(output.FormatKeyValue("Dataset", datasetID))
	r.Println(output.FormatKeyValue("Classification", string(class)))
	r.Println()

	rows := [][]string{}
	for _, n := range deps.Upstream.Dataflows {
		rows = append(rows, []string{"upstream", "dataflow", n.ID, n.DisplayName()})
	}
	for _, n := range deps.Upstream.Datasets {
		rows = append(rows, []string{"upstream", "dataset", n.ID, n.DisplayName()})
	}
	for _, n := range deps.Downstream.Dataflows {
		rows = append(rows, []string{"downstream", "dataflow", n.ID, n.DisplayName()})
	}
	for _, n := range deps.Downstream.Datasets {
		rows = append(rows, []string{"downstream", "dataset", n.ID, n.DisplayName()})
	}

	if len(rows) == 0 {
		r.Println("No connections: this dataset is an orphan.")
		return nil
	}

	r.Table([]string{"Side", "Kind", "ID", "Name"}, rows)
	return nil
}
