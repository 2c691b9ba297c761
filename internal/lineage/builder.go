package lineage

import (
	"strings"

	"github.com/flowlens-labs/flowlens/internal/platform"
)

// BuildGraph converts a snapshot of dataflow records into a lineage graph.
//
// Records missing an id are skipped: one malformed record must not abort the
// whole build. A dataflow appearing more than once is merged into a single
// node under the same policy ensureNode applies to names: a later present
// field value wins, an absent one never erases what an earlier record
// carried. Status and SuccessRate are derived, not carried, so they are
// recomputed fresh from each record.
func BuildGraph(dataflows []platform.Dataflow) *Graph {
	g := NewGraph()

	for _, df := range dataflows {
		if df.ID == "" {
			continue
		}

		node := g.ensureNode(df.ID, df.Name, NodeDataflow)
		if node.Meta == nil {
			node.Meta = &Meta{}
		}
		node.Meta.Status = ResolveStatus(df)
		node.Meta.SuccessRate = df.SuccessRate()
		if df.Owner != "" {
			node.Meta.Owner = df.Owner
		}
		if df.LastUpdated != nil {
			node.Meta.LastUpdated = df.LastUpdated
		}

		for _, in := range df.Inputs {
			if in.DataSourceID == "" {
				continue
			}
			g.ensureNode(in.DataSourceID, in.Name, NodeDataset)
			g.addEdge(in.DataSourceID, df.ID, EdgeInput)
		}
		for _, out := range df.Outputs {
			if out.DataSourceID == "" {
				continue
			}
			g.ensureNode(out.DataSourceID, out.Name, NodeDataset)
			g.addEdge(df.ID, out.DataSourceID, EdgeOutput)
		}
	}

	return g
}

// ResolveStatus resolves a dataflow's operational status.
//
// The platform reports status through several fields that can disagree, so
// resolution follows a fixed priority order:
//
//  1. lastExecution.state
//  2. the status field
//  3. runState / enabled
//  4. any evidence of a past successful run
//  5. default to active
//
// The final default is deliberate observed behavior: absence of any failure
// signal counts as active, not unknown. Do not change it without flagging
// the behavior change to consumers of the health report.
func ResolveStatus(df platform.Dataflow) Status {
	if df.LastExecution != nil {
		switch strings.ToUpper(df.LastExecution.State) {
		case "SUCCESS":
			return StatusActive
		case "FAILED":
			return StatusFailed
		case "RUNNING":
			return StatusRunning
		}
	}

	switch strings.ToUpper(df.Status) {
	case "ACTIVE", "SUCCESS":
		return StatusActive
	case "FAILED":
		return StatusFailed
	case "RUNNING":
		return StatusRunning
	}

	switch strings.ToUpper(df.RunState) {
	case "ENABLED":
		return StatusActive
	case "DISABLED":
		return StatusUnknown
	}
	if df.Enabled != nil {
		if *df.Enabled {
			return StatusActive
		}
		return StatusUnknown
	}

	if df.LastSuccessfulExecution != nil || df.ExecutionSuccessCount > 0 {
		return StatusActive
	}

	return StatusActive
}
