package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/introflow/internal/research"
)

// ResearchStartTool handles the intro_research_start MCP tool.
type ResearchStartTool struct {
	runner *research.Runner
}

// NewResearchStartTool creates a ResearchStartTool.
func NewResearchStartTool(r *research.Runner) *ResearchStartTool {
	return &ResearchStartTool{runner: r}
}

// Definition returns the MCP tool definition for intro_research_start.
func (t *ResearchStartTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_research_start",
		mcp.WithDescription(
			"Start a background research pass over investors that have no research notes yet. "+
				"Only one pass runs at a time; poll intro_research_status for progress.",
		),
	)
}

// Handle processes the intro_research_start tool call.
func (t *ResearchStartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	job, err := t.runner.Start(ctx)
	if errors.Is(err, research.ErrJobRunning) {
		msg := "A research job is already running."
		if cur := t.runner.Current(); cur != nil {
			msg += fmt.Sprintf(" Job ID: %s", cur.ID)
		}
		return mcp.NewToolResultError(msg), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to start research: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Research job started.\nJob ID: %s", job.ID)), nil
}

// ─── ResearchStatusTool ─────────────────────────────────────────────────────

// ResearchStatusTool handles the intro_research_status MCP tool.
type ResearchStatusTool struct {
	runner *research.Runner
}

// NewResearchStatusTool creates a ResearchStatusTool.
func NewResearchStatusTool(r *research.Runner) *ResearchStatusTool {
	return &ResearchStatusTool{runner: r}
}

// Definition returns the MCP tool definition for intro_research_status.
func (t *ResearchStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_research_status",
		mcp.WithDescription("Show the state and progress of the latest investor research job."),
	)
}

// Handle processes the intro_research_status tool call.
func (t *ResearchStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	job := t.runner.Current()
	if job == nil {
		return mcp.NewToolResultText("No research job has been started."), nil
	}
	st := job.Snapshot()

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Research Job %s\n\n", st.ID)
	fmt.Fprintf(&sb, "- **State**: %s\n", st.State)
	fmt.Fprintf(&sb, "- **Progress**: %d/%d\n", st.Processed, st.Total)
	if st.Failed > 0 {
		fmt.Fprintf(&sb, "- **Failed**: %d\n", st.Failed)
	}
	if st.FinishedAt != nil {
		fmt.Fprintf(&sb, "- **Finished**: %s\n", st.FinishedAt.Format("2006-01-02 15:04:05"))
	}
	if st.Error != "" {
		fmt.Fprintf(&sb, "- **Error**: %s\n", st.Error)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
