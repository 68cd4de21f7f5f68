// Package tools implements the MCP tool handlers for the introduction
// pipeline.
//
// Each tool handler follows the same pattern:
// - A struct with its dependencies injected via constructor
// - Definition() returns the mcp.Tool schema
// - Handle() loads a snapshot, runs the derivation and renders markdown
//
// Domain failures are returned as tool errors, never as Go errors.
package tools

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/introflow/internal/digest"
	"github.com/HendryAvila/introflow/internal/tasks"
)

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// idArg extracts a positive integer ID from a tool request. JSON numbers
// arrive as float64; numeric strings are accepted too.
func idArg(req mcp.CallToolRequest, key string) (int64, error) {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		if v > 0 && v == float64(int64(v)) {
			return int64(v), nil
		}
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			return id, nil
		}
	case nil:
		return 0, fmt.Errorf("'%s' is required", key)
	}
	return 0, fmt.Errorf("'%s' must be a positive integer", key)
}

// optString returns a pointer to the argument when present, nil otherwise.
func optString(req mcp.CallToolRequest, key string) *string {
	v, ok := req.GetArguments()[key].(string)
	if !ok {
		return nil
	}
	return &v
}

func writeTasks(sb *strings.Builder, list []tasks.Task) {
	for _, t := range list {
		fmt.Fprintf(sb, "- **[%s]** %s _(#%d, %s)_\n", t.Priority, t.Message, t.IntroductionID, t.Type)
	}
}

func writeItems(sb *strings.Builder, title string, items []digest.Item) {
	fmt.Fprintf(sb, "\n### %s (%d)\n\n", title, len(items))
	if len(items) == 0 {
		sb.WriteString("_None._\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(sb, "- #%d %s: `%s`", it.IntroductionID, it.Label, it.Status)
		if it.NextFollowupDate != "" {
			fmt.Fprintf(sb, ", follow up %s", it.NextFollowupDate)
		} else if it.DateRequested != "" {
			fmt.Fprintf(sb, ", requested %s", it.DateRequested)
		}
		sb.WriteString("\n")
	}
}

func writeWarnings(sb *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	sb.WriteString("\n### Warnings\n\n")
	for _, w := range warnings {
		fmt.Fprintf(sb, "- %s\n", w)
	}
}
