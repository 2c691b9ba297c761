package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/flowlens-labs/flowlens/internal/cli/output"
	"github.com/flowlens-labs/flowlens/internal/lineage"
)

// LineageOptions holds options for the lineage command.
type LineageOptions struct {
	Upstream   bool
	Downstream bool
	Depth      int
}

// NewLineageCommand creates the lineage command.
func NewLineageCommand() *cobra.Command {
	opts := &LineageOptions{}

	cmd := &cobra.Command{
		Use:   "lineage <entity-id>",
		Short: "Show lineage for a dataset or dataflow",
		Long: `Display the upstream contributors and downstream consumers of a dataset
or dataflow, bounded by a traversal depth.

The lineage shows how data flows through your pipelines, helping you
understand the impact of changes and debug data issues.`,
		Example: `  # Show full lineage for a dataset
  flowlens lineage ds-1a2b3c

  # Show only upstream contributors
  flowlens lineage ds-1a2b3c --downstream=false

  # Limit traversal depth
  flowlens lineage df-9f8e7d --depth 2

  # Output as JSON
  flowlens lineage ds-1a2b3c --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineage(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Upstream, "upstream", true, "Include upstream contributors")
	cmd.Flags().BoolVar(&opts.Downstream, "downstream", true, "Include downstream consumers")
	cmd.Flags().IntVar(&opts.Depth, "depth", 0, "Max traversal depth (0 = configured default)")

	return cmd
}

func runLineage(cmd *cobra.Command, entityID string, opts *LineageOptions) error {
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
	if _, ok := graph.Node(entityID); !ok {
		return fmt.Errorf("entity not found in lineage graph: %s", entityID)
	}

	depth := opts.Depth
	if depth == 0 {
		depth = cmdCtx.Cfg.MaxDepth
	}
	depth = lineage.ClampDepth(depth)

	var upSet, downSet map[string]bool
	contributors := map[string]bool{entityID: true}
	if opts.Upstream {
		upSet = lineage.Contributors(graph, entityID, lineage.DirectionUpstream, depth)
		for id := range upSet {
			contributors[id] = true
		}
	}
	if opts.Downstream {
		downSet = lineage.Contributors(graph, entityID, lineage.DirectionDownstream, depth)
		for id := range downSet {
			contributors[id] = true
		}
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return lineageJSON(r, graph, entityID, contributors, upSet, downSet, depth)
	case output.ModeMarkdown:
		return lineageMarkdown(r, graph, entityID, contributors, upSet, downSet)
	default:
		return lineageText(r, graph, entityID, upSet, downSet)
	}
}

// sortedMembers returns the set without the seed, ordered for stable output.
func sortedMembers(set map[string]bool, seedID string) []string {
	members := make([]string, 0, len(set))
	for id := range set {
		if id != seedID {
			members = append(members, id)
		}
	}
	sort.Strings(members)
	return members
}

func describeNode(graph *lineage.Graph, id string) string {
	n, ok := graph.Node(id)
	if !ok {
		return id
	}
	return fmt.Sprintf("%s (%s, %s)", n.DisplayName(), n.ID, n.Type)
}

// lineageText outputs lineage in styled text format.
func lineageText(r *output.Renderer, graph *lineage.Graph, entityID string, upSet, downSet map[string]bool) error {
	styles := r.Styles()

	r.Printf("Lineage for: %s\n\n", styles.EntityID.Render(describeNode(graph, entityID)))

	if upSet != nil {
		members := sortedMembers(upSet, entityID)
		r.Println(styles.Header2.Render(fmt.Sprintf("Upstream contributors (%d):", len(members))))
		for _, id := range members {
			r.Printf("  - %s\n", describeNode(graph, id))
		}
		r.Println()
	}

	if downSet != nil {
		members := sortedMembers(downSet, entityID)
		r.Println(styles.Header2.Render(fmt.Sprintf("Downstream consumers (%d):", len(members))))
		for _, id := range members {
			r.Printf("  - %s\n", describeNode(graph, id))
		}
	}

	return nil
}

// lineageMarkdown outputs lineage as Markdown with an embedded diagram.
func lineageMarkdown(r *output.Renderer, graph *lineage.Graph, entityID string, contributors, upSet, downSet map[string]bool) error {
	r.Println(output.FormatHeader(1, "Lineage: "+describeNode(graph, entityID)))
	r.Println()

	r.Println("```mermaid")
	r.Printf("%s", lineage.Diagram(graph, contributors, entityID))
	r.Println("```")
	r.Println()

	if upSet != nil {
		r.Println(output.FormatKeyValue("Upstream", fmt.Sprintf("%d", len(sortedMembers(upSet, entityID)))))
	}
	if downSet != nil {
		r.Println(output.FormatKeyValue("Downstream", fmt.Sprintf("%d", len(sortedMembers(downSet, entityID)))))
	}
	return nil
}

// lineageJSON outputs lineage in JSON format.
func lineageJSON(r *output.Renderer, graph *lineage.Graph, entityID string, contributors, upSet, downSet map[string]bool, depth int) error {
	out := output.LineageOutput{
		Root:  entityID,
		Nodes: []output.LineageNode{},
		Edges: []output.LineageEdge{},
	}

	for _, n := range graph.Nodes() {
		if !contributors[n.ID] {
			continue
		}
		node := output.LineageNode{
			ID:   n.ID,
			Name: n.DisplayName(),
			Type: string(n.Type),
		}
		if n.Meta != nil {
			node.Status = string(n.Meta.Status)
		}
		out.Nodes = append(out.Nodes, node)
	}

	for _, e := range graph.Edges() {
		if !contributors[e.From] || !contributors[e.To] {
			continue
		}
		out.Edges = append(out.Edges, output.LineageEdge{
			From: e.From,
			To:   e.To,
			Type: string(e.Type),
		})
	}

	out.Stats.TotalNodes = len(out.Nodes)
	out.Stats.MaxDepth = depth
	if upSet != nil {
		out.Stats.UpstreamCount = len(sortedMembers(upSet, entityID))
	}
	if downSet != nil {
		out.Stats.DownstreamCount = len(sortedMembers(downSet, entityID))
	}

	return r.JSON(out)
}
