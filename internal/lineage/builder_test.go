package lineage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlens-labs/flowlens/internal/platform"
)

// chainFixture is the canonical two-dataflow chain:
// ds1 -> df1 -> ds2 -> df2 -> ds3.
func chainFixture() []platform.Dataflow {
	return []platform.Dataflow{
		{
			ID:      "df1",
			Name:    "Load Customers",
			Inputs:  []platform.DataRef{{DataSourceID: "ds1", Name: "Raw Customers"}},
			Outputs: []platform.DataRef{{DataSourceID: "ds2", Name: "Clean Customers"}},
		},
		{
			ID:      "df2",
			Name:    "Aggregate Customers",
			Inputs:  []platform.DataRef{{DataSourceID: "ds2", Name: "Clean Customers"}},
			Outputs: []platform.DataRef{{DataSourceID: "ds3", Name: "Customer Summary"}},
		},
	}
}

func TestBuildGraphChain(t *testing.T) {
	g := BuildGraph(chainFixture())

	assert.Equal(t, 5, g.NodeCount())
	assert.Equal(t, 4, g.EdgeCount())
	assert.Equal(t, 3, g.DatasetCount())

	df1, ok := g.Node("df1")
	require.True(t, ok)
	assert.Equal(t, NodeDataflow, df1.Type)
	require.NotNil(t, df1.Meta)

	ds1, ok := g.Node("ds1")
	require.True(t, ok)
	assert.Equal(t, NodeDataset, ds1.Type)
	assert.Equal(t, "Raw Customers", ds1.Name)
	assert.Nil(t, ds1.Meta)
}

func TestBuildGraphEdgeEndpointsExist(t *testing.T) {
	g := BuildGraph(chainFixture())

	for _, e := range g.Edges() {
		_, ok := g.Node(e.From)
		assert.True(t, ok, "edge from %q should reference an existing node", e.From)
		_, ok = g.Node(e.To)
		assert.True(t, ok, "edge to %q should reference an existing node", e.To)
	}
}

func TestBuildGraphSkipsRecordsWithoutID(t *testing.T) {
	flows := []platform.Dataflow{
		{Name: "nameless"},
		{ID: "df1", Name: "Good", Outputs: []platform.DataRef{{DataSourceID: "ds1"}}},
	}

	g := BuildGraph(flows)

	assert.Equal(t, 2, g.NodeCount(), "malformed record should be skipped, not fatal")
	assert.Equal(t, 1, g.EdgeCount())
}

func TestBuildGraphIsolatedDataflow(t *testing.T) {
	g := BuildGraph([]platform.Dataflow{{ID: "df1", Name: "No IO"}})

	assert.Equal(t, 1, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
	assert.Nil(t, DatasetDependencies(g, "df1"), "dataflow id should not resolve as a dataset")
}

func TestBuildGraphMergePreservesName(t *testing.T) {
	flows := []platform.Dataflow{
		{ID: "df1", Name: "First Name", Outputs: []platform.DataRef{{DataSourceID: "ds1", Name: "Named"}}},
		{ID: "df1", Inputs: []platform.DataRef{{DataSourceID: "ds1"}}},
	}

	g := BuildGraph(flows)

	df1, ok := g.Node("df1")
	require.True(t, ok)
	assert.Equal(t, "First Name", df1.Name, "missing name on a later record must not erase the earlier one")

	ds1, ok := g.Node("ds1")
	require.True(t, ok)
	assert.Equal(t, "Named", ds1.Name)

	// Both references produce edges; duplicates are kept.
	assert.Equal(t, 2, g.EdgeCount())
}

func TestBuildGraphMergePreservesMeta(t *testing.T) {
	updated := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	flows := []platform.Dataflow{
		{ID: "df1", Owner: "alice", Status: "ACTIVE", LastUpdated: &updated},
		{ID: "df1", Status: "FAILED"},
	}

	g := BuildGraph(flows)

	df1, ok := g.Node("df1")
	require.True(t, ok)
	require.NotNil(t, df1.Meta)
	assert.Equal(t, StatusFailed, df1.Meta.Status, "derived status follows the later record")
	assert.Equal(t, "alice", df1.Meta.Owner, "absent owner on a later record must not erase the earlier one")
	require.NotNil(t, df1.Meta.LastUpdated)
	assert.True(t, df1.Meta.LastUpdated.Equal(updated))
}

func TestBuildGraphMergeLaterMetaWins(t *testing.T) {
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(48 * time.Hour)
	flows := []platform.Dataflow{
		{ID: "df1", Owner: "alice", LastUpdated: &first},
		{ID: "df1", Owner: "bob", LastUpdated: &second},
	}

	g := BuildGraph(flows)

	df1, ok := g.Node("df1")
	require.True(t, ok)
	require.NotNil(t, df1.Meta)
	assert.Equal(t, "bob", df1.Meta.Owner)
	require.NotNil(t, df1.Meta.LastUpdated)
	assert.True(t, df1.Meta.LastUpdated.Equal(second))
}

func TestBuildGraphMergeLaterNameWins(t *testing.T) {
	flows := []platform.Dataflow{
		{ID: "df1", Name: "Old"},
		{ID: "df1", Name: "New"},
	}

	g := BuildGraph(flows)

	df1, ok := g.Node("df1")
	require.True(t, ok)
	assert.Equal(t, "New", df1.Name)
}

func TestDisplayNamePlaceholder(t *testing.T) {
	g := BuildGraph([]platform.Dataflow{
		{ID: "df1", Outputs: []platform.DataRef{{DataSourceID: "ds1"}}},
	})

	df1, _ := g.Node("df1")
	ds1, _ := g.Node("ds1")
	assert.Equal(t, "Unnamed Dataflow", df1.DisplayName())
	assert.Equal(t, "Unnamed Dataset", ds1.DisplayName())
}

func boolPtr(b bool) *bool { return &b }

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name string
		df   platform.Dataflow
		want Status
	}{
		{
			name: "last execution success wins",
			df: platform.Dataflow{
				LastExecution: &platform.Execution{State: "SUCCESS"},
				Status:        "FAILED",
			},
			want: StatusActive,
		},
		{
			name: "last execution failed",
			df:   platform.Dataflow{LastExecution: &platform.Execution{State: "FAILED"}},
			want: StatusFailed,
		},
		{
			name: "last execution running",
			df:   platform.Dataflow{LastExecution: &platform.Execution{State: "RUNNING"}},
			want: StatusRunning,
		},
		{
			name: "status field case insensitive",
			df:   platform.Dataflow{Status: "active"},
			want: StatusActive,
		},
		{
			name: "status success maps to active",
			df:   platform.Dataflow{Status: "Success"},
			want: StatusActive,
		},
		{
			name: "status failed",
			df:   platform.Dataflow{Status: "failed"},
			want: StatusFailed,
		},
		{
			name: "run state enabled",
			df:   platform.Dataflow{RunState: "ENABLED"},
			want: StatusActive,
		},
		{
			name: "run state disabled is unknown",
			df:   platform.Dataflow{RunState: "DISABLED"},
			want: StatusUnknown,
		},
		{
			name: "enabled flag true",
			df:   platform.Dataflow{Enabled: boolPtr(true)},
			want: StatusActive,
		},
		{
			name: "enabled flag false is unknown",
			df:   platform.Dataflow{Enabled: boolPtr(false)},
			want: StatusUnknown,
		},
		{
			name: "past successful execution",
			df:   platform.Dataflow{LastSuccessfulExecution: &platform.Execution{State: "SUCCESS"}},
			want: StatusActive,
		},
		{
			name: "success count",
			df:   platform.Dataflow{ExecutionSuccessCount: 3},
			want: StatusActive,
		},
		{
			name: "no signal at all defaults to active",
			df:   platform.Dataflow{},
			want: StatusActive,
		},
		{
			name: "unrecognized last execution falls through to status",
			df: platform.Dataflow{
				LastExecution: &platform.Execution{State: "QUEUED"},
				Status:        "FAILED",
			},
			want: StatusFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveStatus(tt.df))
		})
	}
}
