package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/flowlens-labs/flowlens/internal/cli/output"
	"github.com/flowlens-labs/flowlens/internal/lineage"
)

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	Statistics      lineage.Statistics `json:"statistics"`
	Score           int                `json:"score"`
	Recommendations []string           `json:"recommendations"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run a pipeline health check",
		Long: `Analyze the latest snapshot for pipeline health issues.

The doctor command computes graph-wide statistics (failed dataflows,
orphaned datasets, fan-in averages), derives a health score (0-100), and
prints actionable recommendations.

Output adapts to environment:
  - Terminal: styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: machine-readable format`,
		Example: `  # Run health check
  flowlens doctor

  # Output as JSON
  flowlens doctor --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}

	return cmd
}

func runDoctor(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := loadSnapshot(cmd, cmdCtx)
	if err != nil {
		return err
	}

	graph := lineage.BuildGraph(snap.Dataflows)
	stats := lineage.CalculateStatistics(graph, snap.Dataflows)
	score := lineage.HealthScore(stats)

	doctorOutput := &DoctorOutput{
		Statistics:      stats,
		Score:           score,
		Recommendations: buildRecommendations(stats),
	}

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(doctorOutput)
	case output.ModeMarkdown:
		return renderDoctorMarkdown(r, doctorOutput)
	default:
		return renderDoctorText(r, doctorOutput)
	}
}

func buildRecommendations(stats lineage.Statistics) []string {
	recs := []string{}
	if stats.FailedDataflows > 0 {
		recs = append(recs, fmt.Sprintf(
			"Investigate %d failed dataflow(s); run 'flowlens dataflows --status failed' to list them.",
			stats.FailedDataflows))
	}
	if stats.OrphanedDatasets > 0 {
		recs = append(recs, fmt.Sprintf(
			"Review %d orphaned dataset(s) with no producers or consumers; run 'flowlens datasets --class orphan'.",
			stats.OrphanedDatasets))
	}
	if stats.AvgInputsPerDataflow > 10 {
		recs = append(recs,
			"Average fan-in exceeds 10 inputs per dataflow; consider splitting wide joins into staged dataflows.")
	}
	if len(recs) == 0 {
		recs = append(recs, "No issues found.")
	}
	return recs
}

func scoreLabel(score int) string {
	switch {
	case score >= 90:
		return "healthy"
	case score >= 70:
		return "fair"
	default:
		return "poor"
	}
}

func statsRows(stats lineage.Statistics) [][]string {
	return [][]string{
		{"Total dataflows", fmt.Sprintf("%d", stats.TotalDataflows)},
		{"Total datasets", fmt.Sprintf("%d", stats.TotalDatasets)},
		{"Active dataflows", fmt.Sprintf("%d", stats.ActiveDataflows)},
		{"Failed dataflows", fmt.Sprintf("%d", stats.FailedDataflows)},
		{"Orphaned datasets", fmt.Sprintf("%d", stats.OrphanedDatasets)},
		{"Avg inputs per dataflow", fmt.Sprintf("%.2f", stats.AvgInputsPerDataflow)},
		{"Avg outputs per dataflow", fmt.Sprintf("%.2f", stats.AvgOutputsPerDataflow)},
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) error {
	styles := r.Styles()
	titler := cases.Title(language.English)

	r.Header(1, "Pipeline Health")

	label := titler.String(scoreLabel(out.Score))
	style := styles.Success
	switch {
	case out.Score < 70:
		style = styles.Error
	case out.Score < 90:
		style = styles.Warning
	}
	r.Printf("Health score: %s\n\n", style.Render(fmt.Sprintf("%d/100 (%s)", out.Score, label)))

	r.Table([]string{"Metric", "Value"}, statsRows(out.Statistics))
	r.Println()

	r.Println(styles.Header2.Render("Recommendations:"))
	for _, rec := range out.Recommendations {
		r.Printf("  - %s\n", rec)
	}
	return nil
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) error {
	r.Println(output.FormatHeader(1, "Pipeline Health"))
	r.Println()
	r.Println(output.FormatKeyValue("Health Score",
		fmt.Sprintf("%d/100 (%s)", out.Score, scoreLabel(out.Score))))
	r.Println()

	r.Println(output.FormatHeader(2, "Statistics"))
	r.Table([]string{"Metric", "Value"}, statsRows(out.Statistics))
	r.Println()

	r.Println(output.FormatHeader(2, "Recommendations"))
	for _, rec := range out.Recommendations {
		r.Printf("- %s\n", rec)
	}
	return nil
}
