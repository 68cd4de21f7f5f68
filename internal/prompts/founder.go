package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// FounderBriefingPrompt handles the introflow-founder-briefing MCP prompt.
type FounderBriefingPrompt struct{}

// NewFounderBriefingPrompt creates a FounderBriefingPrompt.
func NewFounderBriefingPrompt() *FounderBriefingPrompt {
	return &FounderBriefingPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *FounderBriefingPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("introflow-founder-briefing",
		mcp.WithPromptDescription(
			"Prepare a founder's briefing: their open tasks and digest, written as a short email they can act on.",
		),
		mcp.WithArgument("founder_id",
			mcp.ArgumentDescription("Founder ID"),
			mcp.RequiredArgument(),
		),
	)
}

// Handle processes the introflow-founder-briefing prompt request.
func (p *FounderBriefingPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	founderID := req.Params.Arguments["founder_id"]
	if founderID == "" {
		return nil, fmt.Errorf("founder_id is required")
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Briefing for founder #%s", founderID),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Prepare a briefing for founder #%s.\n\n"+
						"1. Run `intro_founder_digest` with founder_id=%s\n"+
						"2. Run `intro_founder_tasks` with founder_id=%s\n"+
						"3. Draft a short, friendly email: overdue follow-ups first, then today's, then meetings "+
						"they should tell their connector about\n"+
						"4. Keep each item to one line and name the investor",
					founderID, founderID, founderID,
				)),
			},
		},
	}, nil
}
