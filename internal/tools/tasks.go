package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/introflow/internal/digest"
	"github.com/HendryAvila/introflow/internal/store"
	"github.com/HendryAvila/introflow/internal/tasks"
)

// FounderTasksTool handles the intro_founder_tasks MCP tool.
type FounderTasksTool struct {
	store *store.Store
}

// NewFounderTasksTool creates a FounderTasksTool.
func NewFounderTasksTool(s *store.Store) *FounderTasksTool {
	return &FounderTasksTool{store: s}
}

// Definition returns the MCP tool definition for intro_founder_tasks.
func (t *FounderTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_founder_tasks",
		mcp.WithDescription(
			"List a founder's open tasks across their introductions, highest priority first. "+
				"Covers overdue and due-today follow-ups, stale check-ins and introductions never updated since creation.",
		),
		mcp.WithNumber("founder_id",
			mcp.Required(),
			mcp.Description("Founder ID"),
		),
	)
}

// Handle processes the intro_founder_tasks tool call.
func (t *FounderTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	founderID, err := idArg(req, "founder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	intros, err := t.store.ListIntroductions(ctx, store.Filter{FounderID: founderID})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load introductions: %v", err)), nil
	}
	list, err := tasks.DeriveFounderTasks(intros, timeNow())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to derive tasks: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Founder #%d Tasks (%d)\n\n", founderID, len(list))
	if len(list) == 0 {
		sb.WriteString("Nothing to do right now.\n")
		return mcp.NewToolResultText(sb.String()), nil
	}
	writeTasks(&sb, list)
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── ConnectorTasksTool ─────────────────────────────────────────────────────

// ConnectorTasksTool handles the intro_connector_tasks MCP tool.
type ConnectorTasksTool struct {
	store  *store.Store
	cutoff string
}

// NewConnectorTasksTool creates a ConnectorTasksTool. Introductions that
// started before cutoff are hidden; an empty cutoff hides nothing.
func NewConnectorTasksTool(s *store.Store, cutoff string) *ConnectorTasksTool {
	return &ConnectorTasksTool{store: s, cutoff: cutoff}
}

// Definition returns the MCP tool definition for intro_connector_tasks.
func (t *ConnectorTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_connector_tasks",
		mcp.WithDescription(
			"List a connector's open tasks grouped by founder. Founders with the most high-priority tasks come first.",
		),
		mcp.WithNumber("connector_id",
			mcp.Required(),
			mcp.Description("Connector (node) ID"),
		),
	)
}

// Handle processes the intro_connector_tasks tool call.
func (t *ConnectorTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nodeID, err := idArg(req, "connector_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	intros, err := t.store.ListIntroductions(ctx, store.Filter{NodeID: nodeID})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load introductions: %v", err)), nil
	}
	d, err := digest.BuildConnectorDigest(intros, timeNow(), t.cutoff)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to derive tasks: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Connector #%d Tasks (%d)\n", nodeID, d.TotalTasks)
	if d.Cutoff != "" {
		fmt.Fprintf(&sb, "\nIntroductions started before %s are not shown.\n", d.Cutoff)
	}
	if d.TotalTasks == 0 {
		sb.WriteString("\nNothing to do right now.\n")
	}
	for _, g := range d.Groups {
		fmt.Fprintf(&sb, "\n### %s (%d high priority)\n\n", g.FounderName, g.HighPriority)
		writeTasks(&sb, g.Tasks)
	}
	writeWarnings(&sb, d.Warnings)
	return mcp.NewToolResultText(sb.String()), nil
}
