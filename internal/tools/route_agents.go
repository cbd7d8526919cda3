package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/switchboard/internal/registry"
	"github.com/mark3labs/mcp-go/mcp"
)

// RouteAgentsTool handles the route_agents MCP tool.
type RouteAgentsTool struct {
	reg *registry.Registry
}

// NewRouteAgentsTool creates a RouteAgentsTool.
func NewRouteAgentsTool(reg *registry.Registry) *RouteAgentsTool {
	return &RouteAgentsTool{reg: reg}
}

// Definition returns the MCP tool definition for route_agents.
func (t *RouteAgentsTool) Definition() mcp.Tool {
	return mcp.NewTool("route_agents",
		mcp.WithDescription(
			"List the registered specialist agents, their departments, and the "+
				"domains they cover. Optionally filter to the agents covering one domain.",
		),
		mcp.WithString("domain",
			mcp.Description("Only show agents covering this domain"),
		),
	)
}

// Handle processes the route_agents tool call.
func (t *RouteAgentsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	domain := req.GetString("domain", "")

	agents := t.reg.Agents()
	if domain != "" {
		filtered, err := t.reg.AgentsFor(domain)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf(
				"unknown domain %q (declared domains: %s)",
				domain, strings.Join(t.reg.DomainNames(), ", "),
			)), nil
		}
		agents = filtered
	}

	var sb strings.Builder
	if domain != "" {
		fmt.Fprintf(&sb, "# Agents covering %q\n\n", domain)
	} else {
		sb.WriteString("# Registered Agents\n\n")
	}

	if len(agents) == 0 {
		fmt.Fprintf(&sb, "_No agent covers %q. Tasks significant in this domain need manual assignment._\n", domain)
		return mcp.NewToolResultText(sb.String()), nil
	}

	coordinator := t.reg.Coordinator()
	for _, a := range agents {
		coverage := "coordination only"
		if len(a.Domains) > 0 {
			coverage = strings.Join(a.Domains, ", ")
		}
		marker := ""
		if a.Name == coordinator.Name {
			marker = " (coordinator)"
		}
		fmt.Fprintf(&sb, "- **%s**%s [%s]: %s\n", a.Name, marker, a.Department, coverage)
	}

	return mcp.NewToolResultText(sb.String()), nil
}
