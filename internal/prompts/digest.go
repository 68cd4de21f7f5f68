// Package prompts implements MCP prompt handlers for the introduction
// pipeline.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// DailyDigestPrompt handles the introflow-daily-digest MCP prompt.
// It walks the AI through the admin's morning review.
type DailyDigestPrompt struct{}

// NewDailyDigestPrompt creates a DailyDigestPrompt.
func NewDailyDigestPrompt() *DailyDigestPrompt {
	return &DailyDigestPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *DailyDigestPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("introflow-daily-digest",
		mcp.WithPromptDescription(
			"Run the daily pipeline review: escalations, overdue follow-ups, "+
				"circle-back opportunities and which founders need a nudge today.",
		),
	)
}

// Handle processes the introflow-daily-digest prompt request.
func (p *DailyDigestPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Daily introduction pipeline review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run my daily introduction review.\n\n" +
						"1. Run `intro_admin_digest` and list escalated requests first: those connectors need a nudge from me\n" +
						"2. Then list admin-owned overdue follow-ups and circle-back opportunities\n" +
						"3. Run `intro_pending_founders` and tell me which founders should get a digest today\n" +
						"4. Run `intro_pipeline_stats` and give me a one-line health summary\n" +
						"5. Suggest concrete next actions, most urgent first",
				),
			},
		},
	}, nil
}
