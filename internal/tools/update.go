package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/introflow/internal/intro"
	"github.com/HendryAvila/introflow/internal/store"
)

// RequestIntroTool handles the intro_request MCP tool.
type RequestIntroTool struct {
	store *store.Store
}

// NewRequestIntroTool creates a RequestIntroTool.
func NewRequestIntroTool(s *store.Store) *RequestIntroTool {
	return &RequestIntroTool{store: s}
}

// Definition returns the MCP tool definition for intro_request.
func (t *RequestIntroTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_request",
		mcp.WithDescription(
			"Record that a founder asked a connector for an introduction to an investor. "+
				"Fails if the founder already has an open introduction to that investor.",
		),
		mcp.WithNumber("founder_id", mcp.Required(), mcp.Description("Founder ID")),
		mcp.WithNumber("connector_id", mcp.Required(), mcp.Description("Connector (node) ID")),
		mcp.WithNumber("investor_id", mcp.Required(), mcp.Description("Investor ID")),
		mcp.WithString("date_requested", mcp.Description("YYYY-MM-DD (default: today)")),
		mcp.WithString("notes", mcp.Description("Free-form notes")),
	)
}

// Handle processes the intro_request tool call.
func (t *RequestIntroTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var ids [3]int64
	for i, key := range []string{"founder_id", "connector_id", "investor_id"} {
		id, err := idArg(req, key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		ids[i] = id
	}

	id, err := t.store.CreateIntroduction(ctx, store.CreateParams{
		FounderID:     ids[0],
		NodeID:        ids[1],
		InvestorID:    ids[2],
		DateRequested: req.GetString("date_requested", ""),
		Notes:         req.GetString("notes", ""),
	})
	if errors.Is(err, store.ErrDuplicateActive) {
		return mcp.NewToolResultError("this founder already has an open introduction to that investor"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create introduction: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Introduction requested.\nID: %d", id)), nil
}

// ─── UpdateStatusTool ───────────────────────────────────────────────────────

// UpdateStatusTool handles the intro_update_status MCP tool.
type UpdateStatusTool struct {
	store *store.Store
}

// NewUpdateStatusTool creates an UpdateStatusTool.
func NewUpdateStatusTool(s *store.Store) *UpdateStatusTool {
	return &UpdateStatusTool{store: s}
}

// Definition returns the MCP tool definition for intro_update_status.
func (t *UpdateStatusTool) Definition() mcp.Tool {
	statuses := make([]string, len(intro.AllStatuses))
	for i, s := range intro.AllStatuses {
		statuses[i] = string(s)
	}
	return mcp.NewTool("intro_update_status",
		mcp.WithDescription(
			"Update an introduction: move it to a new status and/or set its dates, follow-up owner and notes. "+
				"Terminal statuses (passed, ignored, not_a_fit, invested) are final.",
		),
		mcp.WithNumber("introduction_id", mcp.Required(), mcp.Description("Introduction ID")),
		mcp.WithString("status", mcp.Enum(statuses...), mcp.Description("New status")),
		mcp.WithString("date_node_asked", mcp.Description("YYYY-MM-DD the connector asked the investor")),
		mcp.WithString("date_introduced", mcp.Description("YYYY-MM-DD (default when moving to introduced: today)")),
		mcp.WithString("first_meeting_date", mcp.Description("YYYY-MM-DD")),
		mcp.WithString("second_meeting_date", mcp.Description("YYYY-MM-DD")),
		mcp.WithString("next_followup_date", mcp.Description("YYYY-MM-DD, or empty to clear")),
		mcp.WithString("followup_owner", mcp.Enum("founder", "admin", ""), mcp.Description("Who owns the next follow-up")),
		mcp.WithString("pass_reason", mcp.Description("Why the investor passed")),
		mcp.WithString("notes", mcp.Description("Free-form notes")),
	)
}

// Handle processes the intro_update_status tool call.
func (t *UpdateStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req, "introduction_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	p := store.UpdateParams{
		DateNodeAsked:     optString(req, "date_node_asked"),
		DateIntroduced:    optString(req, "date_introduced"),
		FirstMeetingDate:  optString(req, "first_meeting_date"),
		SecondMeetingDate: optString(req, "second_meeting_date"),
		NextFollowupDate:  optString(req, "next_followup_date"),
		PassReason:        optString(req, "pass_reason"),
		Notes:             optString(req, "notes"),
	}
	if raw := optString(req, "status"); raw != nil {
		s, err := intro.ParseStatus(*raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		p.Status = &s
	}
	if raw := optString(req, "followup_owner"); raw != nil {
		o := intro.Owner(*raw)
		p.FollowupOwner = &o
	}

	in, err := t.store.UpdateIntroduction(ctx, id, p)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update introduction: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Introduction #%d updated: %s\n", in.ID, in.Label())
	fmt.Fprintf(&sb, "- **Status**: %s\n", in.Status)
	if in.NextFollowupDate != "" {
		fmt.Fprintf(&sb, "- **Next follow-up**: %s", in.NextFollowupDate)
		if in.FollowupOwner != intro.OwnerNone {
			fmt.Fprintf(&sb, " (%s)", in.FollowupOwner)
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// ─── LogFollowupTool ────────────────────────────────────────────────────────

// LogFollowupTool handles the intro_log_followup MCP tool.
type LogFollowupTool struct {
	store *store.Store
}

// NewLogFollowupTool creates a LogFollowupTool.
func NewLogFollowupTool(s *store.Store) *LogFollowupTool {
	return &LogFollowupTool{store: s}
}

// Definition returns the MCP tool definition for intro_log_followup.
func (t *LogFollowupTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_log_followup",
		mcp.WithDescription(
			"Log a completed follow-up on an introduction. Log a connector-update once the connector "+
				"has been told about a meeting or investment so the founder digest stops asking.",
		),
		mcp.WithNumber("introduction_id", mcp.Required(), mcp.Description("Introduction ID")),
		mcp.WithString("type",
			mcp.Required(),
			mcp.Enum(string(intro.FollowupConnectorCheck), string(intro.FollowupMeetingUpdate), string(intro.FollowupConnectorUpdate)),
			mcp.Description("Kind of follow-up"),
		),
		mcp.WithString("completed_by", mcp.Required(), mcp.Description("Who did it")),
		mcp.WithString("notes", mcp.Description("What happened")),
		mcp.WithString("next_action", mcp.Description("What should happen next")),
		mcp.WithString("next_followup_date", mcp.Description("YYYY-MM-DD for the next follow-up")),
	)
}

// Handle processes the intro_log_followup tool call.
func (t *LogFollowupTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req, "introduction_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	typ := req.GetString("type", "")
	if typ == "" {
		return mcp.NewToolResultError("'type' is required"), nil
	}
	by := req.GetString("completed_by", "")
	if by == "" {
		return mcp.NewToolResultError("'completed_by' is required"), nil
	}
	if _, err := t.store.GetIntroduction(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load introduction: %v", err)), nil
	}

	logID, err := t.store.AddFollowupLog(ctx, store.FollowupParams{
		IntroductionID:   id,
		Type:             intro.FollowupType(typ),
		CompletedBy:      by,
		Notes:            req.GetString("notes", ""),
		NextAction:       req.GetString("next_action", ""),
		NextFollowupDate: req.GetString("next_followup_date", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to log follow-up: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Follow-up logged on introduction #%d (%s).\nID: %d", id, typ, logID)), nil
}

// ─── DeleteIntroTool ────────────────────────────────────────────────────────

// DeleteIntroTool handles the intro_delete MCP tool.
type DeleteIntroTool struct {
	store *store.Store
}

// NewDeleteIntroTool creates a DeleteIntroTool.
func NewDeleteIntroTool(s *store.Store) *DeleteIntroTool {
	return &DeleteIntroTool{store: s}
}

// Definition returns the MCP tool definition for intro_delete.
func (t *DeleteIntroTool) Definition() mcp.Tool {
	return mcp.NewTool("intro_delete",
		mcp.WithDescription("Delete an introduction recorded by mistake, together with its follow-up logs."),
		mcp.WithNumber("introduction_id", mcp.Required(), mcp.Description("Introduction ID")),
	)
}

// Handle processes the intro_delete tool call.
func (t *DeleteIntroTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := idArg(req, "introduction_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := t.store.DeleteIntroduction(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete introduction: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Introduction #%d deleted.", id)), nil
}
