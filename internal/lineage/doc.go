// Package lineage builds and queries the data-lineage graph.
//
// The graph connects dataset nodes and dataflow nodes with typed, directed
// edges: an input edge runs dataset->dataflow (the dataflow consumes the
// dataset), an output edge runs dataflow->dataset (the dataflow produces it).
// BuildGraph constructs the graph from a snapshot of dataflow records; the
// resolver, traversal, and statistics functions then answer queries against
// it without mutating it.
//
// # Basic Usage
//
//	graph := lineage.BuildGraph(dataflows)
//
//	deps := lineage.DatasetDependencies(graph, "ds-42")
//	if deps == nil {
//	    log.Fatal("unknown dataset")
//	}
//
//	set := lineage.Contributors(graph, "ds-42", lineage.DirectionUpstream, 5)
//	fmt.Println(lineage.Diagram(graph, set, "ds-42"))
//
// All query functions treat the graph as read-only; a graph is built once
// per invocation from an already-fetched snapshot and never updated in
// place.
package lineage
