package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/introflow/internal/digest"
	"github.com/HendryAvila/introflow/internal/intro"
	"github.com/HendryAvila/introflow/internal/store"
)

// FounderDigestTool handles the intro_founder_digest MCP tool.
type FounderDigestTool struct {
	store *store.Store
}

// NewFounderDigestTool creates a FounderDigestTool.
func NewFounderDigestTool(s *store.Store) *FounderDigestTool {
	return &FounderDigestTool{store: s}
}

// Definition returns the MCP tool definition for intro_founder_digest.
func (t *FounderDigestTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_founder_digest",
		mcp.WithDescription(
			"Build a founder's daily digest: overdue and due-today follow-ups they own, "+
				"requests still waiting on the connector, and meetings the connector has not heard about.",
		),
		mcp.WithNumber("founder_id",
			mcp.Required(),
			mcp.Description("Founder ID"),
		),
	)
}

// Handle processes the intro_founder_digest tool call.
func (t *FounderDigestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	founderID, err := idArg(req, "founder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	intros, err := t.store.ListIntroductions(ctx, store.Filter{FounderID: founderID})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load introductions: %v", err)), nil
	}
	d, err := digest.BuildFounderDigest(intros, intro.Today(timeNow()))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build digest: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Founder #%d Digest for %s\n\n", founderID, d.Today)
	fmt.Fprintf(&sb, "**%d items need attention.**\n", d.Summary.Total())
	writeItems(&sb, "Overdue follow-ups", d.OverdueFollowups)
	writeItems(&sb, "Due today", d.DueToday)
	writeItems(&sb, "Waiting on connector", d.PendingConnectorResponse)
	writeItems(&sb, "Tell your connector", d.NeedsConnectorUpdate)
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── PendingFoundersTool ────────────────────────────────────────────────────

// PendingFoundersTool handles the intro_pending_founders MCP tool.
type PendingFoundersTool struct {
	store *store.Store
}

// NewPendingFoundersTool creates a PendingFoundersTool.
func NewPendingFoundersTool(s *store.Store) *PendingFoundersTool {
	return &PendingFoundersTool{store: s}
}

// Definition returns the MCP tool definition for intro_pending_founders.
func (t *PendingFoundersTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_pending_founders",
		mcp.WithDescription(
			"List founders with open actions (overdue, due today or waiting on a connector), busiest first. "+
				"Use this to decide who gets a digest today.",
		),
	)
}

// Handle processes the intro_pending_founders tool call.
func (t *PendingFoundersTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	intros, err := t.store.ListIntroductions(ctx, store.Filter{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load introductions: %v", err)), nil
	}
	p, err := digest.BuildPendingFounders(intros, intro.Today(timeNow()))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list founders: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Founders With Open Actions (%d)\n\n", len(p.Founders))
	if len(p.Founders) == 0 {
		sb.WriteString("Everyone is up to date.\n")
	}
	for _, f := range p.Founders {
		fmt.Fprintf(&sb, "- **%s** (#%d): %d actions (%d overdue, %d due today, %d waiting on connector)\n",
			f.FounderName, f.FounderID, f.ActionCount, f.Overdue, f.DueToday, f.PendingConnector)
	}
	writeWarnings(&sb, p.Warnings)
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── AdminDigestTool ────────────────────────────────────────────────────────

// AdminDigestTool handles the intro_admin_digest MCP tool.
type AdminDigestTool struct {
	store *store.Store
}

// NewAdminDigestTool creates an AdminDigestTool.
func NewAdminDigestTool(s *store.Store) *AdminDigestTool {
	return &AdminDigestTool{store: s}
}

// Definition returns the MCP tool definition for intro_admin_digest.
func (t *AdminDigestTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_admin_digest",
		mcp.WithDescription(
			"Build the admin digest: requests a connector has ignored past the escalation window, "+
				"admin-owned overdue follow-ups, and circle-back introductions whose founder's round is open.",
		),
	)
}

// Handle processes the intro_admin_digest tool call.
func (t *AdminDigestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	intros, err := t.store.ListIntroductions(ctx, store.Filter{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load introductions: %v", err)), nil
	}
	founders, err := t.store.ListFounders(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load founders: %v", err)), nil
	}
	d, err := digest.BuildAdminDigest(intros, founders, intro.Today(timeNow()))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to build digest: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Admin Digest for %s\n", d.Today)
	writeItems(&sb, "Escalated", d.Escalated)
	writeItems(&sb, "Admin overdue", d.AdminOverdue)
	writeItems(&sb, "Circle-back opportunities", d.CircleBackOpportunities)
	writeWarnings(&sb, d.Warnings)
	return mcp.NewToolResultText(sb.String()), nil
}
