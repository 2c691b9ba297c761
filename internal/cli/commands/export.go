package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowlens-labs/flowlens/internal/cli/output"
	"github.com/flowlens-labs/flowlens/internal/lineage"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var entityID string
	var depth int

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export the lineage graph to a file",
		Long: `Write the lineage graph to a file. The format follows the file
extension:

  .mmd    Mermaid diagram source
  .md     Markdown document with an embedded Mermaid diagram
  .json   machine-readable nodes and edges

With --entity, only the lineage neighborhood of that entity is exported.`,
		Example: `  # Export the full graph as a Mermaid diagram
  flowlens export lineage.mmd

  # Export one dataset's neighborhood as Markdown
  flowlens export ds-lineage.md --entity ds-1a2b3c --depth 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], entityID, depth)
		},
	}

	cmd.Flags().StringVar(&entityID, "entity", "", "Restrict the export to this entity's neighborhood")
	cmd.Flags().IntVar(&depth, "depth", 0, "Max traversal depth with --entity (0 = configured default)")

	return cmd
}

func runExport(cmd *cobra.Command, path, entityID string, depth int) error {
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

	contributors := map[string]bool{}
	for _, n := range graph.Nodes() {
		contributors[n.ID] = true
	}
	seed := ""
	if entityID != "" {
		if _, ok := graph.Node(entityID); !ok {
			return fmt.Errorf("entity not found in lineage graph: %s", entityID)
		}
		if depth == 0 {
			depth = cmdCtx.Cfg.MaxDepth
		}
		contributors = lineage.Contributors(graph, entityID, lineage.DirectionBoth, depth)
		seed = entityID
	}

	var content string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mmd":
		content = lineage.Diagram(graph, contributors, seed)
	case ".md":
		var b strings.Builder
		b.WriteString(output.FormatHeader(1, "Lineage Graph"))
		b.WriteString("\n\n```mermaid\n")
		b.WriteString(lineage.Diagram(graph, contributors, seed))
		b.WriteString("```\n")
		content = b.String()
	case ".json":
		payload, err := exportJSON(graph, contributors, seed)
		if err != nil {
			return err
		}
		content = payload
	default:
		return fmt.Errorf("unsupported export extension %q (want .mmd, .md, or .json)", filepath.Ext(path))
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	cmdCtx.Renderer.Success("Exported %d node(s) to %s", countMembers(contributors), path)
	return nil
}

func countMembers(set map[string]bool) int {
	n := 0
	for _, ok := range set {
		if ok {
			n++
		}
	}
	return n
}

func exportJSON(graph *lineage.Graph, contributors map[string]bool, seed string) (string, error) {
	out := output.GraphOutput{
		Nodes:   []output.LineageNode{},
		Edges:   []output.LineageEdge{},
		Diagram: lineage.Diagram(graph, contributors, seed),
	}
	for _, n := range graph.Nodes() {
		if !contributors[n.ID] {
			continue
		}
		node := output.LineageNode{ID: n.ID, Name: n.DisplayName(), Type: string(n.Type)}
		if n.Meta != nil {
			node.Status = string(n.Meta.Status)
		}
		out.Nodes = append(out.Nodes, node)
	}
	for _, e := range graph.Edges() {
		if !contributors[e.From] || !contributors[e.To] {
			continue
		}
		out.Edges = append(out.Edges, output.LineageEdge{From: e.From, To: e.To, Type: string(e.Type)})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding graph: %w", err)
	}
	return string(data) + "\n", nil
}
