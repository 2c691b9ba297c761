package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowlens-labs/flowlens/internal/cli/output"
	"github.com/flowlens-labs/flowlens/internal/lineage"
	"github.com/flowlens-labs/flowlens/internal/platform"
)

func testGraph(t *testing.T) *lineage.Graph {
	t.Helper()
	return lineage.BuildGraph([]platform.Dataflow{
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
	})
}

func TestCommandConstruction(t *testing.T) {
	tests := []struct {
		name  string
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{"fetch", NewFetchCommand(), "fetch", nil},
		{"lineage", NewLineageCommand(), "lineage", []string{"upstream", "downstream", "depth"}},
		{"deps", NewDepsCommand(), "deps", nil},
		{"graph", NewGraphCommand(), "graph", nil},
		{"datasets", NewDatasetsCommand(), "datasets", []string{"class"}},
		{"dataflows", NewDataflowsCommand(), "dataflows", []string{"uses", "status"}},
		{"doctor", NewDoctorCommand(), "doctor", nil},
		{"export", NewExportCommand(), "export", []string{"entity", "depth"}},
		{"version", NewVersionCommand(), "version", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.cmd.Use, tt.use)
			assert.NotEmpty(t, tt.cmd.Short)
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "missing flag %s", flag)
			}
		})
	}
}

func TestLineageFlagDefaults(t *testing.T) {
	cmd := NewLineageCommand()

	up, err := cmd.Flags().GetBool("upstream")
	require.NoError(t, err)
	assert.True(t, up)

	down, err := cmd.Flags().GetBool("downstream")
	require.NoError(t, err)
	assert.True(t, down)

	depth, err := cmd.Flags().GetInt("depth")
	require.NoError(t, err)
	assert.Equal(t, 0, depth)
}

func TestSortedMembers(t *testing.T) {
	set := map[string]bool{"ds2": true, "df1": true, "ds1": true}

	members := sortedMembers(set, "ds2")
	assert.Equal(t, []string{"df1", "ds1"}, members)

	assert.Empty(t, sortedMembers(map[string]bool{"seed": true}, "seed"))
}

func TestDescribeNode(t *testing.T) {
	graph := testGraph(t)

	assert.Equal(t, "Load Customers (df1, dataflow)", describeNode(graph, "df1"))
	assert.Equal(t, "Raw Customers (ds1, dataset)", describeNode(graph, "ds1"))
	assert.Equal(t, "missing", describeNode(graph, "missing"))
}

func TestDataflowName(t *testing.T) {
	assert.Equal(t, "ETL", dataflowName(platform.Dataflow{ID: "df1", Name: "ETL"}))
	assert.Equal(t, "Unnamed Dataflow", dataflowName(platform.Dataflow{ID: "df1"}))
}

func TestEntityList(t *testing.T) {
	graph := testGraph(t)
	n1, _ := graph.Node("df1")
	n2, _ := graph.Node("ds1")

	entities := entityList([]*lineage.Node{n1, n2})
	require.Len(t, entities, 2)
	assert.Equal(t, output.DependencyEntity{ID: "df1", Name: "Load Customers"}, entities[0])
	assert.Equal(t, output.DependencyEntity{ID: "ds1", Name: "Raw Customers"}, entities[1])

	assert.Empty(t, entityList(nil))
}

func TestBuildRecommendations(t *testing.T) {
	tests := []struct {
		name  string
		stats lineage.Statistics
		want  int
	}{
		{"healthy", lineage.Statistics{TotalDataflows: 5, TotalDatasets: 8}, 1},
		{"failures", lineage.Statistics{TotalDataflows: 5, FailedDataflows: 2}, 1},
		{"orphans", lineage.Statistics{TotalDatasets: 8, OrphanedDatasets: 3}, 1},
		{"fan-in", lineage.Statistics{TotalDataflows: 2, AvgInputsPerDataflow: 12}, 1},
		{
			"everything",
			lineage.Statistics{
				TotalDataflows:       5,
				FailedDataflows:      1,
				OrphanedDatasets:     2,
				AvgInputsPerDataflow: 11,
			},
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := buildRecommendations(tt.stats)
			assert.Len(t, recs, tt.want)
		})
	}

	// A clean report still gets one line so the section is never empty.
	recs := buildRecommendations(lineage.Statistics{})
	require.Len(t, recs, 1)
	assert.Equal(t, "No issues found.", recs[0])
}

func TestScoreLabel(t *testing.T) {
	assert.Equal(t, "healthy", scoreLabel(100))
	assert.Equal(t, "healthy", scoreLabel(90))
	assert.Equal(t, "fair", scoreLabel(89))
	assert.Equal(t, "fair", scoreLabel(70))
	assert.Equal(t, "poor", scoreLabel(69))
	assert.Equal(t, "poor", scoreLabel(0))
}

func TestStatsRows(t *testing.T) {
	rows := statsRows(lineage.Statistics{
		TotalDataflows:       2,
		TotalDatasets:        3,
		AvgInputsPerDataflow: 1.5,
	})

	require.Len(t, rows, 7)
	assert.Equal(t, []string{"Total dataflows", "2"}, rows[0])
	assert.Equal(t, []string{"Avg inputs per dataflow", "1.50"}, rows[5])
}

func TestCountMembers(t *testing.T) {
	assert.Equal(t, 0, countMembers(nil))
	assert.Equal(t, 2, countMembers(map[string]bool{"a": true, "b": true, "c": false}))
}

func TestExportJSONFullGraph(t *testing.T) {
	graph := testGraph(t)
	contributors := map[string]bool{}
	for _, n := range graph.Nodes() {
		contributors[n.ID] = true
	}

	payload, err := exportJSON(graph, contributors, "")
	require.NoError(t, err)

	var out output.GraphOutput
	require.NoError(t, json.Unmarshal([]byte(payload), &out))

	assert.Len(t, out.Nodes, 5)
	assert.Len(t, out.Edges, 4)
	assert.Contains(t, out.Diagram, "graph TD")
}

func TestExportJSONFiltersToContributors(t *testing.T) {
	graph := testGraph(t)
	contributors := lineage.Contributors(graph, "ds2", lineage.DirectionUpstream, 1)

	payload, err := exportJSON(graph, contributors, "ds2")
	require.NoError(t, err)

	var out output.GraphOutput
	require.NoError(t, json.Unmarshal([]byte(payload), &out))

	for _, n := range out.Nodes {
		assert.True(t, contributors[n.ID], "node %s outside contributor set", n.ID)
	}
	for _, e := range out.Edges {
		assert.True(t, contributors[e.From] && contributors[e.To])
	}
	assert.Contains(t, out.Diagram, ":::seed")
}

func TestVersionCommandOutput(t *testing.T) {
	cmd := NewVersionCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "FlowLens")
}
