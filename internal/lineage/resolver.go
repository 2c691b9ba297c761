package lineage

import "github.com/flowlens-labs/flowlens/internal/platform"

// DependencyGroup holds the dataflows and datasets on one side of a dataset.
type DependencyGroup struct {
	Dataflows []*Node `json:"dataflows"`
	Datasets  []*Node `json:"datasets"`
}

// Dependencies describes what feeds a dataset and what consumes it.
// Upstream datasets are one additional hop back (the inputs of the producing
// dataflows); downstream datasets are the outputs of the consuming dataflows.
type Dependencies struct {
	Upstream   DependencyGroup `json:"upstream"`
	Downstream DependencyGroup `json:"downstream"`
}

// DatasetDependencies returns the upstream and downstream neighborhood of a
// dataset, or nil when the id is not a dataset node in the graph.
func DatasetDependencies(g *Graph, datasetID string) *Dependencies {
	node, ok := g.Node(datasetID)
	if !ok || node.Type != NodeDataset {
		return nil
	}

	deps := &Dependencies{
		Upstream:   DependencyGroup{Dataflows: []*Node{}, Datasets: []*Node{}},
		Downstream: DependencyGroup{Dataflows: []*Node{}, Datasets: []*Node{}},
	}

	seenUp := make(map[string]bool)
	seenDown := make(map[string]bool)

	for _, e := range g.Edges() {
		switch {
		case e.Type == EdgeOutput && e.To == datasetID:
			// Producing dataflow, plus its own inputs one hop back.
			flow, ok := g.Node(e.From)
			if !ok {
				continue
			}
			deps.Upstream.Dataflows = append(deps.Upstream.Dataflows, flow)
			for _, in := range g.Edges() {
				if in.Type != EdgeInput || in.To != flow.ID || seenUp[in.From] {
					continue
				}
				if ds, ok := g.Node(in.From); ok {
					seenUp[in.From] = true
					deps.Upstream.Datasets = append(deps.Upstream.Datasets, ds)
				}
			}
		case e.Type == EdgeInput && e.From == datasetID:
			// Consuming dataflow, plus its outputs.
			flow, ok := g.Node(e.To)
			if !ok {
				continue
			}
			deps.Downstream.Dataflows = append(deps.Downstream.Dataflows, flow)
			for _, out := range g.Edges() {
				if out.Type != EdgeOutput || out.From != flow.ID || seenDown[out.To] {
					continue
				}
				if ds, ok := g.Node(out.To); ok {
					seenDown[out.To] = true
					deps.Downstream.Datasets = append(deps.Downstream.Datasets, ds)
				}
			}
		}
	}

	return deps
}

// DataflowsUsingDataset returns the full records of dataflows that consume
// the given dataset. Graph nodes only keep summary meta, so the one-hop
// downstream set is joined back against the original records.
func DataflowsUsingDataset(g *Graph, dataflows []platform.Dataflow, datasetID string) []platform.Dataflow {
	byID := make(map[string]platform.Dataflow, len(dataflows))
	for _, df := range dataflows {
		byID[df.ID] = df
	}

	var using []platform.Dataflow
	seen := make(map[string]bool)
	for _, e := range g.Edges() {
		if e.Type != EdgeInput || e.From != datasetID || seen[e.To] {
			continue
		}
		seen[e.To] = true
		if df, ok := byID[e.To]; ok {
			using = append(using, df)
		}
	}
	return using
}

// DatasetClass is the role a dataset plays in the lineage graph.
type DatasetClass string

const (
	ClassOrphan       DatasetClass = "orphan"
	ClassSource       DatasetClass = "source"
	ClassSink         DatasetClass = "sink"
	ClassIntermediate DatasetClass = "intermediate"
)

// ClassifyDataset partitions a dataset by its upstream and downstream
// dataflow counts. Every dataset falls into exactly one class.
func ClassifyDataset(upstream, downstream int) DatasetClass {
	switch {
	case upstream == 0 && downstream == 0:
		return ClassOrphan
	case upstream == 0:
		return ClassSource
	case downstream == 0:
		return ClassSink
	default:
		return ClassIntermediate
	}
}
