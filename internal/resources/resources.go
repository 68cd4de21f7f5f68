// Package resources implements MCP resource handlers for the introduction
// pipeline.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (introflow://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/introflow/internal/report"
)

// ReportURI addresses the pipeline report resource.
const ReportURI = "introflow://pipeline/report"

// timeNow is a package-level variable for testability.
var timeNow = time.Now

// Handler manages introflow resource endpoints.
type Handler struct {
	source report.Source
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(source report.Source) *Handler {
	return &Handler{source: source}
}

// ReportResource returns the MCP resource definition for the pipeline report.
func (h *Handler) ReportResource() mcp.Resource {
	return mcp.NewResource(
		ReportURI,
		"Introduction Pipeline Report",
		mcp.WithResourceDescription("Status counts, admin digest, founders with open actions and monthly trends"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleReport returns the current pipeline report as JSON.
func (h *Handler) HandleReport(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	r, err := report.Build(ctx, h.source, timeNow())
	if err != nil {
		return errorResource(req.Params.URI, err.Error()), nil
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// errorResource returns a resource with an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     fmt.Sprintf("Error: %s", message),
		},
	}
}
