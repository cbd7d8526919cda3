package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/switchboard/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// RouteStatsTool handles the route_stats MCP tool. Like route_history it
// is only registered when the history store is available.
type RouteStatsTool struct {
	store *history.Store
}

// NewRouteStatsTool creates a RouteStatsTool.
func NewRouteStatsTool(store *history.Store) *RouteStatsTool {
	return &RouteStatsTool{store: store}
}

// Definition returns the MCP tool definition for route_stats.
func (t *RouteStatsTool) Definition() mcp.Tool {
	return mcp.NewTool("route_stats",
		mcp.WithDescription(
			"Summarize recorded routing decisions: totals by strategy and "+
				"confidence, plus the most frequently significant domains.",
		),
	)
}

// Handle processes the route_stats tool call.
func (t *RouteStatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := t.store.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("collecting stats failed: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString("# Routing Statistics\n\n")
	fmt.Fprintf(&sb, "**Total routings**: %d\n", stats.TotalRoutings)

	if stats.TotalRoutings == 0 {
		sb.WriteString("\n_Nothing recorded yet. route_task decisions land here._\n")
		return mcp.NewToolResultText(sb.String()), nil
	}

	sb.WriteString("\n## By Strategy\n\n")
	for _, s := range []string{"direct", "single-agent", "multi-agent"} {
		if n, ok := stats.ByStrategy[s]; ok {
			fmt.Fprintf(&sb, "- %s: %d\n", s, n)
		}
	}

	sb.WriteString("\n## By Confidence\n\n")
	for _, c := range []string{"high", "medium", "low"} {
		if n, ok := stats.ByConfidence[c]; ok {
			fmt.Fprintf(&sb, "- %s: %d\n", c, n)
		}
	}

	if len(stats.TopDomains) > 0 {
		sb.WriteString("\n## Top Domains\n\n")
		for _, d := range stats.TopDomains {
			fmt.Fprintf(&sb, "- %s: %d\n", d.Domain, d.Count)
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}
