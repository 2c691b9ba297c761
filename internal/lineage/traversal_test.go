package lineage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowlens-labs/flowlens/internal/platform"
)

// cycleFixture builds two dataflows that feed each other:
// df_a -> ds_x -> df_b -> ds_y -> df_a.
func cycleFixture() []platform.Dataflow {
	return []platform.Dataflow{
		{
			ID:      "df_a",
			Inputs:  []platform.DataRef{{DataSourceID: "ds_y"}},
			Outputs: []platform.DataRef{{DataSourceID: "ds_x"}},
		},
		{
			ID:      "df_b",
			Inputs:  []platform.DataRef{{DataSourceID: "ds_x"}},
			Outputs: []platform.DataRef{{DataSourceID: "ds_y"}},
		},
	}
}

func TestContributorsUpstream(t *testing.T) {
	g := BuildGraph(chainFixture())

	set := Contributors(g, "ds2", DirectionUpstream, 10)

	assert.True(t, set["ds2"], "seed is always part of the set")
	assert.True(t, set["df1"])
	assert.True(t, set["ds1"])
	assert.False(t, set["df2"])
	assert.False(t, set["ds3"])
}

func TestContributorsDownstream(t *testing.T) {
	g := BuildGraph(chainFixture())

	set := Contributors(g, "ds2", DirectionDownstream, 10)

	assert.True(t, set["ds2"])
	assert.True(t, set["df2"])
	assert.True(t, set["ds3"])
	assert.False(t, set["df1"])
}

func TestContributorsBoth(t *testing.T) {
	g := BuildGraph(chainFixture())

	set := Contributors(g, "df1", DirectionBoth, 10)

	assert.Len(t, set, 5, "full chain is reachable from the middle in both directions")
}

func TestContributorsDepthLimit(t *testing.T) {
	g := BuildGraph(chainFixture())

	// One hop upstream of ds3 reaches only df2.
	set := Contributors(g, "ds3", DirectionUpstream, 1)
	assert.Equal(t, map[string]bool{"ds3": true, "df2": true}, set)

	// Two hops adds ds2.
	set = Contributors(g, "ds3", DirectionUpstream, 2)
	assert.True(t, set["ds2"])
	assert.False(t, set["df1"])
}

func TestContributorsDepthClamp(t *testing.T) {
	g := BuildGraph(chainFixture())

	// Values below the minimum behave like depth 1, values above the
	// maximum like depth 10.
	one := Contributors(g, "ds3", DirectionUpstream, 1)
	assert.Equal(t, one, Contributors(g, "ds3", DirectionUpstream, 0))
	assert.Equal(t, one, Contributors(g, "ds3", DirectionUpstream, -5))

	ten := Contributors(g, "ds3", DirectionUpstream, 10)
	assert.Equal(t, ten, Contributors(g, "ds3", DirectionUpstream, 15))
}

func TestClampDepth(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{5, 5},
		{10, 10},
		{15, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampDepth(tt.in), "ClampDepth(%d)", tt.in)
	}
}

func TestContributorsTerminatesOnCycle(t *testing.T) {
	g := BuildGraph(cycleFixture())

	set := Contributors(g, "ds_x", DirectionUpstream, 10)

	assert.LessOrEqual(t, len(set), g.NodeCount())
	assert.True(t, set["df_a"])
	assert.True(t, set["ds_y"])
	assert.True(t, set["df_b"])
}

func TestContributorsUnknownSeed(t *testing.T) {
	g := BuildGraph(chainFixture())

	assert.Empty(t, Contributors(g, "missing", DirectionUpstream, 10))
}
