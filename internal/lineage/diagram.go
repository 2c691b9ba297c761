package lineage

import (
	"strings"
)

// Diagram renders the subgraph induced by the contributor set as a Mermaid
// flowchart. Only nodes in the set are declared, and only edges with both
// endpoints in the set are drawn. Dataset nodes are rectangles, dataflow
// nodes are stadiums, and the seed node gets a highlight class. Declarations
// follow graph insertion order so output is deterministic.
func Diagram(g *Graph, contributors map[string]bool, seedID string) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	for _, n := range g.Nodes() {
		if !contributors[n.ID] {
			continue
		}
		b.WriteString("    ")
		b.WriteString(nodeDecl(n))
		if n.ID == seedID {
			b.WriteString(":::seed")
		}
		b.WriteString("\n")
	}

	for _, e := range g.Edges() {
		if !contributors[e.From] || !contributors[e.To] {
			continue
		}
		b.WriteString("    ")
		b.WriteString(mermaidID(e.From))
		b.WriteString(" --> ")
		b.WriteString(mermaidID(e.To))
		b.WriteString("\n")
	}

	b.WriteString("    classDef seed stroke-width:4px\n")
	return b.String()
}

// FullDiagram renders the whole graph, with no seed highlighted.
func FullDiagram(g *Graph) string {
	all := make(map[string]bool, g.NodeCount())
	for _, n := range g.Nodes() {
		all[n.ID] = true
	}
	return Diagram(g, all, "")
}

func nodeDecl(n *Node) string {
	label := escapeLabel(n.DisplayName())
	if n.Type == NodeDataflow {
		return mermaidID(n.ID) + `(["` + label + `"])`
	}
	return mermaidID(n.ID) + `["` + label + `"]`
}

// mermaidID sanitizes an id for use as a Mermaid node identifier.
// Platform ids can contain dashes and other punctuation Mermaid chokes on.
func mermaidID(id string) string {
	var b strings.Builder
	b.Grow(len(id) + 1)
	b.WriteString("n_")
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	return strings.ReplaceAll(s, "\n", " ")
}
