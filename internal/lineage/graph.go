package lineage

import "time"

// NodeType distinguishes dataset nodes from dataflow nodes.
type NodeType string

const (
	NodeDataset  NodeType = "dataset"
	NodeDataflow NodeType = "dataflow"
)

// EdgeType describes the direction of data movement along an edge.
type EdgeType string

const (
	// EdgeInput runs dataset -> dataflow: the dataflow consumes the dataset.
	EdgeInput EdgeType = "input"
	// EdgeOutput runs dataflow -> dataset: the dataflow produces the dataset.
	EdgeOutput EdgeType = "output"
)

// Status is the resolved operational status of a dataflow.
type Status string

const (
	StatusActive  Status = "active"
	StatusFailed  Status = "failed"
	StatusRunning Status = "running"
	StatusUnknown Status = "unknown"
)

// Meta carries dataflow-level detail resolved at build time.
// Dataset nodes have no meta unless separately enriched.
type Meta struct {
	Status      Status     `json:"status"`
	Owner       string     `json:"owner,omitempty"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
	SuccessRate float64    `json:"success_rate"`
}

// Node is one dataset or one dataflow in the lineage graph.
type Node struct {
	ID   string   `json:"id"`
	Name string   `json:"name,omitempty"`
	Type NodeType `json:"type"`
	Meta *Meta    `json:"meta,omitempty"`
}

// DisplayName returns the node name, or a placeholder when the source
// record carried none.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	if n.Type == NodeDataflow {
		return "Unnamed Dataflow"
	}
	return "Unnamed Dataset"
}

// Edge is a directed relationship between a dataset and a dataflow.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Type EdgeType `json:"type"`
}

// Graph is the lineage graph. Nodes are keyed by id; edges keep insertion
// order and are not deduplicated, since a dataflow may reference the same
// dataset as both input and output. The graph is immutable once BuildGraph
// returns; callers must not modify the slices returned by accessors.
type Graph struct {
	nodes map[string]*Node
	order []string // node ids in insertion order, for deterministic output
	edges []Edge
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// Node returns the node with the given id, if present.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// DatasetCount returns the number of dataset-type nodes.
func (g *Graph) DatasetCount() int {
	count := 0
	for _, n := range g.nodes {
		if n.Type == NodeDataset {
			count++
		}
	}
	return count
}

// ensureNode gets or creates the node with the given id, merging the name
// non-destructively: a later record with a present name wins, a later record
// with a missing name never erases a previously recorded one. A node's type
// is fixed at first creation; an id reused with a different type is a
// data-integrity problem in the upstream source and is left as created.
func (g *Graph) ensureNode(id, name string, typ NodeType) *Node {
	if n, ok := g.nodes[id]; ok {
		if name != "" {
			n.Name = name
		}
		return n
	}
	n := &Node{ID: id, Name: name, Type: typ}
	g.nodes[id] = n
	g.order = append(g.order, id)
	return n
}

// addEdge appends an edge. Both endpoints are created by the builder before
// any edge is added, so edges never dangle.
func (g *Graph) addEdge(from, to string, typ EdgeType) {
	g.edges = append(g.edges, Edge{From: from, To: to, Type: typ})
}
