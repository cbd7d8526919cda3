package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/switchboard/internal/registry"
	"github.com/HendryAvila/switchboard/internal/routing"
	"github.com/mark3labs/mcp-go/mcp"
)

// RouteExplainTool handles the route_explain MCP tool.
// It shows which keywords fired per domain and walks through why the
// delegation strategy was chosen.
type RouteExplainTool struct {
	reg *registry.Registry
}

// NewRouteExplainTool creates a RouteExplainTool.
func NewRouteExplainTool(reg *registry.Registry) *RouteExplainTool {
	return &RouteExplainTool{reg: reg}
}

// Definition returns the MCP tool definition for route_explain.
func (t *RouteExplainTool) Definition() mcp.Tool {
	return mcp.NewTool("route_explain",
		mcp.WithDescription(
			"Explain a routing decision: per-domain keyword hits, scores against "+
				"the significance threshold, and the reasoning behind the chosen "+
				"delegation strategy. Use this when a route_task result is surprising.",
		),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("The task description to explain"),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Significance threshold override (default: registry setting, minimum 1)"),
		),
	)
}

// Handle processes the route_explain tool call.
func (t *RouteExplainTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, errResult := taskArg(req)
	if errResult != nil {
		return errResult, nil
	}

	opts, errResult := thresholdOptions(req)
	if errResult != nil {
		return errResult, nil
	}

	res, hits := routing.New(t.reg, opts...).Explain(task)

	var sb strings.Builder
	sb.WriteString("# Routing Explanation\n\n")
	fmt.Fprintf(&sb, "**Task**: %s\n", truncate(task, 200))
	fmt.Fprintf(&sb, "**Threshold**: %d\n", res.Threshold)
	fmt.Fprintf(&sb, "**Strategy**: %s\n", res.Strategy)
	fmt.Fprintf(&sb, "**Confidence**: %s\n\n", res.Confidence)

	sb.WriteString("## Keyword Hits\n\n")
	if len(res.DetectedDomains) == 0 {
		sb.WriteString("_No keywords matched._\n")
	} else {
		significant := make(map[string]bool, len(res.SignificantDomains))
		for _, domain := range res.SignificantDomains {
			significant[domain] = true
		}
		for _, domain := range res.DetectedDomains {
			marker := ""
			if significant[domain] {
				marker = " (significant)"
			}
			fmt.Fprintf(&sb, "- **%s**: %d%s\n", domain, res.Scores[domain], marker)
			for _, h := range hits[domain] {
				fmt.Fprintf(&sb, "  - %q matched %d time(s)\n", h.Keyword, h.Count)
			}
		}
	}

	sb.WriteString("\n## Decision\n\n")
	sb.WriteString(decisionTrace(t.reg, res))

	return mcp.NewToolResultText(sb.String()), nil
}

// decisionTrace narrates the strategy choice in the order the rules are
// applied: domain count first, then agent resolution, then coverage.
func decisionTrace(reg *registry.Registry, res routing.Result) string {
	var sb strings.Builder

	switch {
	case res.Strategy == routing.StrategyDirect:
		sb.WriteString("No domain reached the significance threshold, so the task should be executed directly without delegation.\n")

	case res.Strategy == routing.StrategySingleAgent && len(res.SignificantDomains) == 2:
		fmt.Fprintf(&sb, "Both significant domains resolve to the same agent, so the pair collapses to a single generalist: %s.\n",
			res.Agents[0].Name)

	case res.Strategy == routing.StrategySingleAgent:
		domain := res.SignificantDomains[0]
		if len(res.Agents) > 0 {
			fmt.Fprintf(&sb, "Only %q is significant; %s takes the task alone.\n", domain, res.Agents[0].Name)
		} else {
			fmt.Fprintf(&sb, "Only %q is significant.\n", domain)
		}
		if res.Scores[domain] >= 2*res.Threshold {
			fmt.Fprintf(&sb, "Its score of %d reaches twice the threshold, which makes confidence high.\n", res.Scores[domain])
		}

	case len(res.SignificantDomains) == 2:
		sb.WriteString("The two significant domains map to different agents that can work in parallel; a pair gets no coordinator.\n")

	default:
		fmt.Fprintf(&sb, "%d significant domains need a team: one agent per domain with %s coordinating.\n",
			len(res.SignificantDomains), reg.Coordinator().Name)
	}

	if len(res.Unassigned) > 0 {
		fmt.Fprintf(&sb, "No agent covers %s; confidence was downgraded one level and manual assignment is needed.\n",
			strings.Join(res.Unassigned, ", "))
	}

	return sb.String()
}
