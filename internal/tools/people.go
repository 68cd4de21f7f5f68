package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/introflow/internal/intro"
	"github.com/HendryAvila/introflow/internal/store"
)

const (
	kindFounder   = "founder"
	kindConnector = "connector"
	kindInvestor  = "investor"
)

// AddPersonTool handles the intro_add_person MCP tool.
type AddPersonTool struct {
	store *store.Store
}

// NewAddPersonTool creates an AddPersonTool.
func NewAddPersonTool(s *store.Store) *AddPersonTool {
	return &AddPersonTool{store: s}
}

// Definition returns the MCP tool definition for intro_add_person.
func (t *AddPersonTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_add_person",
		mcp.WithDescription(
			"Add a founder, connector or investor. Company and round_status apply to founders; "+
				"firm, website, stage_focus and sector_focus apply to investors.",
		),
		mcp.WithString("kind", mcp.Required(), mcp.Enum(kindFounder, kindConnector, kindInvestor), mcp.Description("What to add")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Full name")),
		mcp.WithString("email", mcp.Description("Email address")),
		mcp.WithString("company", mcp.Description("Founder's company")),
		mcp.WithString("round_status",
			mcp.Enum(string(intro.RoundPre), string(intro.RoundOpen), string(intro.RoundClosed)),
			mcp.Description("Founder's round status (default: pre_round)"),
		),
		mcp.WithString("firm", mcp.Description("Investor's firm")),
		mcp.WithString("website", mcp.Description("Investor's website")),
		mcp.WithString("stage_focus", mcp.Description("Investor's stage focus")),
		mcp.WithString("sector_focus", mcp.Description("Investor's sector focus")),
	)
}

// Handle processes the intro_add_person tool call.
func (t *AddPersonTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := req.GetString("kind", "")
	name := strings.TrimSpace(req.GetString("name", ""))
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	var (
		id  int64
		err error
	)
	switch kind {
	case kindFounder:
		id, err = t.store.CreateFounder(ctx, intro.Founder{
			Name:        name,
			Email:       req.GetString("email", ""),
			Company:     req.GetString("company", ""),
			RoundStatus: intro.RoundStatus(req.GetString("round_status", "")),
		})
	case kindConnector:
		id, err = t.store.CreateNode(ctx, intro.Node{Name: name, Email: req.GetString("email", "")})
	case kindInvestor:
		id, err = t.store.CreateInvestor(ctx, intro.Investor{
			Name:        name,
			Firm:        req.GetString("firm", ""),
			Website:     req.GetString("website", ""),
			StageFocus:  req.GetString("stage_focus", ""),
			SectorFocus: req.GetString("sector_focus", ""),
		})
	default:
		return mcp.NewToolResultError("'kind' must be founder, connector or investor"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add %s: %v", kind, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added %s %s.\nID: %d", kind, name, id)), nil
}

// ─── ListPeopleTool ─────────────────────────────────────────────────────────

// ListPeopleTool handles the intro_list_people MCP tool.
type ListPeopleTool struct {
	store *store.Store
}

// NewListPeopleTool creates a ListPeopleTool.
func NewListPeopleTool(s *store.Store) *ListPeopleTool {
	return &ListPeopleTool{store: s}
}

// Definition returns the MCP tool definition for intro_list_people.
func (t *ListPeopleTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_list_people",
		mcp.WithDescription("List founders, connectors or investors with their IDs."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum(kindFounder, kindConnector, kindInvestor), mcp.Description("What to list")),
	)
}

// Handle processes the intro_list_people tool call.
func (t *ListPeopleTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	switch kind := req.GetString("kind", ""); kind {
	case kindFounder:
		founders, err := t.store.ListFounders(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list founders: %v", err)), nil
		}
		fmt.Fprintf(&sb, "## Founders (%d)\n\n", len(founders))
		for _, f := range founders {
			fmt.Fprintf(&sb, "- #%d %s", f.ID, f.Name)
			if f.Company != "" {
				fmt.Fprintf(&sb, " (%s)", f.Company)
			}
			fmt.Fprintf(&sb, ": `%s`\n", f.RoundStatus)
		}
	case kindConnector:
		nodes, err := t.store.ListNodes(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list connectors: %v", err)), nil
		}
		fmt.Fprintf(&sb, "## Connectors (%d)\n\n", len(nodes))
		for _, n := range nodes {
			fmt.Fprintf(&sb, "- #%d %s\n", n.ID, n.Name)
		}
	case kindInvestor:
		investors, err := t.store.ListInvestors(ctx, false, 0)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list investors: %v", err)), nil
		}
		fmt.Fprintf(&sb, "## Investors (%d)\n\n", len(investors))
		for _, inv := range investors {
			fmt.Fprintf(&sb, "- #%d %s", inv.ID, inv.Name)
			if inv.Firm != "" {
				fmt.Fprintf(&sb, " (%s)", inv.Firm)
			}
			if inv.ResearchedAt != "" {
				fmt.Fprintf(&sb, ", researched %s", inv.ResearchedAt)
			}
			sb.WriteString("\n")
		}
	default:
		return mcp.NewToolResultError("'kind' must be founder, connector or investor"), nil
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── SetRoundStatusTool ─────────────────────────────────────────────────────

// SetRoundStatusTool handles the intro_set_round_status MCP tool.
type SetRoundStatusTool struct {
	store *store.Store
}

// NewSetRoundStatusTool creates a SetRoundStatusTool.
func NewSetRoundStatusTool(s *store.Store) *SetRoundStatusTool {
	return &SetRoundStatusTool{store: s}
}

// Definition returns the MCP tool definition for intro_set_round_status.
func (t *SetRoundStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_set_round_status",
		mcp.WithDescription(
			"Set a founder's fundraising round status. Circle-back introductions only surface "+
				"in the admin digest while the founder's round is open.",
		),
		mcp.WithNumber("founder_id", mcp.Required(), mcp.Description("Founder ID")),
		mcp.WithString("round_status",
			mcp.Required(),
			mcp.Enum(string(intro.RoundPre), string(intro.RoundOpen), string(intro.RoundClosed)),
			mcp.Description("New round status"),
		),
	)
}

// Handle processes the intro_set_round_status tool call.
func (t *SetRoundStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req, "founder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rs := intro.RoundStatus(req.GetString("round_status", ""))
	if err := t.store.SetRoundStatus(ctx, id, rs); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to set round status: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Founder #%d round status set to %s.", id, rs)), nil
}
