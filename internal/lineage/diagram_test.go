package lineage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowlens-labs/flowlens/internal/platform"
)

func TestDiagramShapesAndSeed(t *testing.T) {
	g := BuildGraph(chainFixture())
	set := Contributors(g, "ds2", DirectionUpstream, 10)

	out := Diagram(g, set, "ds2")

	assert.True(t, strings.HasPrefix(out, "graph TD\n"))
	assert.Contains(t, out, `n_ds1["Raw Customers"]`)
	assert.Contains(t, out, `n_df1(["Load Customers"])`, "dataflow nodes use the stadium shape")
	assert.Contains(t, out, `n_ds2["Clean Customers"]:::seed`)
	assert.Contains(t, out, "n_ds1 --> n_df1")
	assert.Contains(t, out, "n_df1 --> n_ds2")
	assert.Contains(t, out, "classDef seed")

	// Downstream half of the chain is outside the contributor set.
	assert.NotContains(t, out, "n_df2")
	assert.NotContains(t, out, "n_ds3")
}

func TestDiagramOmitsEdgesLeavingSet(t *testing.T) {
	g := BuildGraph(chainFixture())
	set := map[string]bool{"ds2": true, "df2": true}

	out := Diagram(g, set, "ds2")

	assert.Contains(t, out, "n_ds2 --> n_df2")
	assert.NotContains(t, out, "n_df2 --> n_ds3", "edges need both endpoints in the set")
}

func TestFullDiagram(t *testing.T) {
	g := BuildGraph(chainFixture())

	out := FullDiagram(g)

	for _, id := range []string{"n_ds1", "n_df1", "n_ds2", "n_df2", "n_ds3"} {
		assert.Contains(t, out, id)
	}
	assert.NotContains(t, out, ":::seed", "full diagram has no seed highlight")
	assert.Equal(t, 4, strings.Count(out, "-->"))
}

func TestDiagramDeterministic(t *testing.T) {
	g := BuildGraph(chainFixture())

	first := FullDiagram(g)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FullDiagram(g))
	}
}

func TestMermaidIDSanitizes(t *testing.T) {
	g := BuildGraph([]platform.Dataflow{
		{ID: "flow-1.v2", Name: `He said "hi"`, Outputs: []platform.DataRef{{DataSourceID: "a b"}}},
	})

	out := FullDiagram(g)

	assert.Contains(t, out, "n_flow_1_v2")
	assert.Contains(t, out, "n_a_b")
	assert.Contains(t, out, "He said 'hi'", "double quotes break Mermaid labels")
}
