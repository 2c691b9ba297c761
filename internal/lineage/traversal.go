package lineage

// Direction selects which way Contributors walks the graph.
type Direction string

const (
	DirectionUpstream   Direction = "upstream"
	DirectionDownstream Direction = "downstream"
	DirectionBoth       Direction = "both"
)

// Traversal depth is hard-clamped: depth 0 is the seed itself and does not
// count against the limit.
const (
	MinDepth = 1
	MaxDepth = 10
)

// ClampDepth forces maxDepth into the [MinDepth, MaxDepth] range.
func ClampDepth(maxDepth int) int {
	if maxDepth < MinDepth {
		return MinDepth
	}
	if maxDepth > MaxDepth {
		return MaxDepth
	}
	return maxDepth
}

// Contributors returns the set of node ids reachable from entityID within
// maxDepth hops, including the seed itself. Upstream walks edges backward,
// downstream forward, both directions together for DirectionBoth.
//
// The traversal is breadth-first and purely structural; node meta is never
// inspected. A node already visited is never re-enqueued, which is what
// makes the walk terminate on cyclic graphs. An unknown entityID yields an
// empty set.
func Contributors(g *Graph, entityID string, dir Direction, maxDepth int) map[string]bool {
	visited := make(map[string]bool)
	if _, ok := g.Node(entityID); !ok {
		return visited
	}
	maxDepth = ClampDepth(maxDepth)

	visited[entityID] = true
	frontier := []string{entityID}

	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			for _, e := range g.Edges() {
				var neighbor string
				switch {
				case (dir == DirectionUpstream || dir == DirectionBoth) && e.To == id:
					neighbor = e.From
				case (dir == DirectionDownstream || dir == DirectionBoth) && e.From == id:
					neighbor = e.To
				default:
					continue
				}
				if !visited[neighbor] {
					visited[neighbor] = true
					next = append(next, neighbor)
				}
			}
		}
		frontier = next
	}

	return visited
}
