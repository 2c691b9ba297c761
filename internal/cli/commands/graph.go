package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flowlens-labs/flowlens/internal/cli/output"
	"github.com/flowlens-labs/flowlens/internal/lineage"
)

// NewGraphCommand creates the graph command.
func NewGraphCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the full lineage graph",
		Long: `Display the complete lineage graph built from the latest snapshot.

Output adapts to environment:
  - Terminal: node and edge listing with totals
  - Piped/Scripted: Markdown with an embedded Mermaid diagram
  - JSON: machine-readable nodes, edges, and diagram text`,
		Example: `  # Show the graph
  flowlens graph

  # Export-friendly Markdown
  flowlens graph --output markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGraph(cmd)
		},
	}

	return cmd
}

func runGraph(cmd *cobra.Command) error {
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

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return graphJSON(r, graph)
	case output.ModeMarkdown:
		return graphMarkdown(r, graph)
	default:
		return graphText(r, graph)
	}
}

func graphText(r *output.Renderer, graph *lineage.Graph) error {
	styles := r.Styles()

	r.Header(1, "Lineage Graph")

	r.Println(styles.Header2.Render("Nodes:"))
	for _, n := range graph.Nodes() {
		r.Printf("  %s %s\n", styles.EntityID.Render(n.ID),
			styles.Muted.Render(fmt.Sprintf("[%s] %s", n.Type, n.DisplayName())))
	}
	r.Println()

	r.Println(styles.Header2.Render("Edges:"))
	for _, e := range graph.Edges() {
		r.Printf("  %s -> %s %s\n", e.From, e.To, styles.Muted.Render(fmt.Sprintf("(%s)", e.Type)))
	}
	r.Println()

	r.Println(styles.Muted.Render(fmt.Sprintf("Total: %d nodes, %d edges", graph.NodeCount(), graph.EdgeCount())))
	return nil
}

func graphMarkdown(r *output.Renderer, graph *lineage.Graph) error {
	r.Println(output.FormatHeader(1, "Lineage Graph"))
	r.Println()

	r.Println("```mermaid")
	r.Printf("%s", lineage.FullDiagram(graph))
	r.Println("```")
	r.Println()

	r.Println(output.FormatHeader(2, "Summary"))
	r.Println(output.FormatKeyValue("Nodes", fmt.Sprintf("%d", graph.NodeCount())))
	r.Println(output.FormatKeyValue("Datasets", fmt.Sprintf("%d", graph.DatasetCount())))
	r.Println(output.FormatKeyValue("Edges", fmt.Sprintf("%d", graph.EdgeCount())))
	return nil
}

func graphJSON(r *output.Renderer, graph *lineage.Graph) error {
	out := output.GraphOutput{
		Nodes:   []output.LineageNode{},
		Edges:   []output.LineageEdge{},
		Diagram: lineage.FullDiagram(graph),
	}

	for _, n := range graph.Nodes() {
		node := output.LineageNode{ID: n.ID, Name: n.DisplayName(), Type: string(n.Type)}
		if n.Meta != nil {
			node.Status = string(n.Meta.Status)
		}
		out.Nodes = append(out.Nodes, node)
	}
	for _, e := range graph.Edges() {
		out.Edges = append(out.Edges, output.LineageEdge{From: e.From, To: e.To, Type: string(e.Type)})
	}

	return r.JSON(out)
}
