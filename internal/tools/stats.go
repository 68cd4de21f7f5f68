package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/HendryAvila/introflow/internal/digest"
	"github.com/HendryAvila/introflow/internal/intro"
	"github.com/HendryAvila/introflow/internal/store"
	"github.com/HendryAvila/introflow/internal/trends"
)

// counts renders totals with digit grouping.
var counts = message.NewPrinter(language.English)

// PipelineStatsTool handles the intro_pipeline_stats MCP tool.
type PipelineStatsTool struct {
	store *store.Store
}

// NewPipelineStatsTool creates a PipelineStatsTool.
func NewPipelineStatsTool(s *store.Store) *PipelineStatsTool {
	return &PipelineStatsTool{store: s}
}

// Definition returns the MCP tool definition for intro_pipeline_stats.
func (t *PipelineStatsTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_pipeline_stats",
		mcp.WithDescription("Count introductions per status, plus overdue and waiting-on-connector totals."),
	)
}

// Handle processes the intro_pipeline_stats tool call.
func (t *PipelineStatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	intros, err := t.store.ListIntroductions(ctx, store.Filter{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load introductions: %v", err)), nil
	}
	stats, err := digest.ComputePipelineStats(intros, intro.Today(timeNow()))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute stats: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Pipeline Statistics (%s)\n\n", stats.Today)
	counts.Fprintf(&sb, "- **Total**: %d\n", stats.Total)
	counts.Fprintf(&sb, "- **Overdue**: %d\n", stats.OverdueCount)
	counts.Fprintf(&sb, "- **Waiting on connector**: %d\n", stats.PendingConnectorCount)
	sb.WriteString("\n| Status | Count |\n|---|---|\n")
	for _, s := range intro.AllStatuses {
		counts.Fprintf(&sb, "| %s | %d |\n", s, stats.ByStatus[s])
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── PipelineTrendsTool ─────────────────────────────────────────────────────

// PipelineTrendsTool handles the intro_pipeline_trends MCP tool.
type PipelineTrendsTool struct {
	store *store.Store
}

// NewPipelineTrendsTool creates a PipelineTrendsTool.
func NewPipelineTrendsTool(s *store.Store) *PipelineTrendsTool {
	return &PipelineTrendsTool{store: s}
}

// Definition returns the MCP tool definition for intro_pipeline_trends.
func (t *PipelineTrendsTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_pipeline_trends",
		mcp.WithDescription(
			"Show monthly request volume, intro rate and meeting rate for the last six months, "+
				"and how the latest month compares with the one before.",
		),
	)
}

// Handle processes the intro_pipeline_trends tool call.
func (t *PipelineTrendsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	intros, err := t.store.ListIntroductions(ctx, store.Filter{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load introductions: %v", err)), nil
	}
	r, err := trends.ComputeTrends(intros, timeNow())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to compute trends: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("## Pipeline Trends\n\n")
	if len(r.Monthly) == 0 {
		fmt.Fprintf(&sb, "No introductions since %s.\n", r.Horizon)
		return mcp.NewToolResultText(sb.String()), nil
	}
	sb.WriteString("| Month | Requests | Introduced | Meetings | Invested | Intro rate | Meeting rate |\n")
	sb.WriteString("|---|---|---|---|---|---|---|\n")
	for _, m := range r.Monthly {
		fmt.Fprintf(&sb, "| %s | %d | %d | %d | %d | %d%% | %d%% |\n",
			m.Month, m.Total, m.Introduced, m.Meetings, m.Invested, m.IntroRate, m.MeetingRate)
	}

	if c := r.Comparison; c != nil {
		fmt.Fprintf(&sb, "\n### %s vs %s\n\n", c.CurrentMonth, c.PreviousMonth)
		writeDelta(&sb, "Requests", c.Count, "")
		writeDelta(&sb, "Meetings", c.Meetings, "")
		writeDelta(&sb, "Intro rate", c.IntroRate, "%")
		writeDelta(&sb, "Meeting rate", c.MeetingRate, "%")
		writeDelta(&sb, "Invested", c.Invested, "")
		writeDelta(&sb, "Ignored", c.Ignored, "")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func writeDelta(sb *strings.Builder, name string, d trends.MetricDelta, unit string) {
	fmt.Fprintf(sb, "- **%s**: %d%s (was %d%s, %+d, %s)\n", name, d.Current, unit, d.Previous, unit, d.Delta, d.Direction)
}
