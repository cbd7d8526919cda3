package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/switchboard/internal/history"
	"github.com/HendryAvila/switchboard/internal/routing"
	"github.com/mark3labs/mcp-go/mcp"
)

// RouteHistoryTool handles the route_history MCP tool. The server only
// registers it when the history store initialized successfully.
type RouteHistoryTool struct {
	store *history.Store
}

// NewRouteHistoryTool creates a RouteHistoryTool.
func NewRouteHistoryTool(store *history.Store) *RouteHistoryTool {
	return &RouteHistoryTool{store: store}
}

// Definition returns the MCP tool definition for route_history.
func (t *RouteHistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("route_history",
		mcp.WithDescription(
			"Search past routing decisions. Full-text search over task descriptions "+
				"with an optional strategy filter; an empty query returns the most "+
				"recent routings.",
		),
		mcp.WithString("query",
			mcp.Description("Search words matched against past task descriptions"),
		),
		mcp.WithString("strategy",
			mcp.Description("Filter by delegation strategy"),
			mcp.Enum("direct", "single-agent", "multi-agent"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max results (default: 10, max: 50)"),
		),
	)
}

// Handle processes the route_history tool call.
func (t *RouteHistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	strategy := req.GetString("strategy", "")
	limit := intArg(req, "limit", 10)

	if strategy != "" {
		if err := routing.ValidateStrategy(routing.Strategy(strategy)); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	entries, err := t.store.Find(history.QueryOptions{
		Text:     query,
		Strategy: strategy,
		Limit:    limit,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("history search failed: %v", err)), nil
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText("No routings found matching your query."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d routings:\n\n", len(entries))
	for i, e := range entries {
		domains := strings.Join(e.Domains, ", ")
		if domains == "" {
			domains = "none"
		}
		agents := strings.Join(e.Agents, ", ")
		if agents == "" {
			agents = "none"
		}
		fmt.Fprintf(&sb, "[%d] %s\n    %s | %s confidence | domains: %s\n    agents: %s | via %s | %s\n\n",
			i+1, truncate(e.Task, 120),
			e.Strategy, e.Confidence, domains,
			agents, e.Source, e.CreatedAt,
		)
	}

	return mcp.NewToolResultText(sb.String()), nil
}
