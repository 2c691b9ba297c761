package output

// JSON output shapes shared by commands. Kept here so the machine-readable
// contract lives in one place.

// LineageNode is one node in lineage JSON output.
type LineageNode struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`
}

// LineageEdge is one edge in lineage JSON output.
type LineageEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

// LineageStats summarizes a lineage query.
type LineageStats struct {
	TotalNodes      int `json:"total_nodes"`
	UpstreamCount   int `json:"upstream_count"`
	DownstreamCount int `json:"downstream_count"`
	MaxDepth        int `json:"max_depth"`
}

// LineageOutput is the lineage command's JSON payload.
type LineageOutput struct {
	Root  string        `json:"root"`
	Nodes []LineageNode `json:"nodes"`
	Edges []LineageEdge `json:"edges"`
	Stats LineageStats  `json:"stats"`
}

// DependencyEntity is one dataflow or dataset in deps JSON output.
type DependencyEntity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DependencySide groups the dataflows and datasets on one side of a dataset.
type DependencySide struct {
	Dataflows []DependencyEntity `json:"dataflows"`
	Datasets  []DependencyEntity `json:"datasets"`
}

// DepsOutput is the deps command's JSON payload.
type DepsOutput struct {
	Dataset        DependencyEntity `json:"dataset"`
	Classification string           `json:"classification"`
	Upstream       DependencySide   `json:"upstream"`
	Downstream     DependencySide   `json:"downstream"`
}

// GraphOutput is the graph command's JSON payload.
type GraphOutput struct {
	Nodes   []LineageNode `json:"nodes"`
	Edges   []LineageEdge `json:"edges"`
	Diagram string        `json:"diagram"`
}
