package lineage

import (
	"math"

	"github.com/flowlens-labs/flowlens/internal/platform"
)

// Statistics aggregates graph-wide counts for the health report.
type Statistics struct {
	TotalDataflows        int     `json:"total_dataflows"`
	TotalDatasets         int     `json:"total_datasets"`
	ActiveDataflows       int     `json:"active_dataflows"`
	FailedDataflows       int     `json:"failed_dataflows"`
	OrphanedDatasets      int     `json:"orphaned_datasets"`
	AvgInputsPerDataflow  float64 `json:"avg_inputs_per_dataflow"`
	AvgOutputsPerDataflow float64 `json:"avg_outputs_per_dataflow"`
}

// CalculateStatistics computes counts over the graph and the raw records.
// Active and failed counts re-resolve status from the raw dataflow list
// rather than trusting node meta, so the numbers are independent of merge
// ordering during the build.
func CalculateStatistics(g *Graph, dataflows []platform.Dataflow) Statistics {
	stats := Statistics{
		TotalDataflows: len(dataflows),
		TotalDatasets:  g.DatasetCount(),
	}

	for _, df := range dataflows {
		switch ResolveStatus(df) {
		case StatusActive:
			stats.ActiveDataflows++
		case StatusFailed:
			stats.FailedDataflows++
		}
	}

	// Datasets are only ever created alongside an edge, so a zero-edge
	// dataset should be impossible under the current builder. The check is
	// kept anyway: a future construction path may seed dataset nodes
	// independently, and counting incident edges is harmless either way.
	incident := make(map[string]int)
	var inputEdges, outputEdges int
	for _, e := range g.Edges() {
		incident[e.From]++
		incident[e.To]++
		if e.Type == EdgeInput {
			inputEdges++
		} else {
			outputEdges++
		}
	}
	for _, n := range g.Nodes() {
		if n.Type == NodeDataset && incident[n.ID] == 0 {
			stats.OrphanedDatasets++
		}
	}

	if stats.TotalDataflows > 0 {
		stats.AvgInputsPerDataflow = float64(inputEdges) / float64(stats.TotalDataflows)
		stats.AvgOutputsPerDataflow = float64(outputEdges) / float64(stats.TotalDataflows)
	}

	return stats
}

// HealthScore derives a bounded health score in [0,100] from statistics.
// Failed dataflows cost up to 30 points, orphaned datasets up to 20, and a
// heavily fanned-in graph (more than 10 inputs per dataflow on average) a
// flat 10. Zero denominators skip their deduction term rather than
// propagating NaN.
func HealthScore(stats Statistics) int {
	score := 100.0

	if stats.TotalDataflows > 0 {
		score -= 30 * float64(stats.FailedDataflows) / float64(stats.TotalDataflows)
	}
	if stats.TotalDatasets > 0 {
		score -= 20 * float64(stats.OrphanedDatasets) / float64(stats.TotalDatasets)
	}
	if stats.AvgInputsPerDataflow > 10 {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}
