package tools

import (
	"context"
	"fmt"

	"github.com/HendryAvila/switchboard/internal/registry"
	"github.com/HendryAvila/switchboard/internal/report"
	"github.com/HendryAvila/switchboard/internal/routing"
	"github.com/mark3labs/mcp-go/mcp"
)

// RouteTaskTool handles the route_task MCP tool.
// It classifies a task description into technical domains and decides
// how the work should be delegated.
type RouteTaskTool struct {
	reg      *registry.Registry
	observer RouteObserver
}

// NewRouteTaskTool creates a RouteTaskTool. observer may be nil when
// history is unavailable; decisions are then simply not recorded.
func NewRouteTaskTool(reg *registry.Registry, observer RouteObserver) *RouteTaskTool {
	return &RouteTaskTool{reg: reg, observer: observer}
}

// Definition returns the MCP tool definition for route_task.
func (t *RouteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("route_task",
		mcp.WithDescription(
			"Classify a task description into technical domains and decide how to "+
				"delegate it: direct execution, a single specialist agent, or a "+
				"multi-agent team with a coordinator. Returns suggested agents, "+
				"domain scores, and a confidence level.",
		),
		mcp.WithString("task",
			mcp.Required(),
			mcp.Description("The task description to classify, e.g. a user story or ticket text"),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Significance threshold override (default: registry setting, minimum 1)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format (default: markdown)"),
			mcp.Enum("markdown", "json"),
		),
	)
}

// Handle processes the route_task tool call.
func (t *RouteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, errResult := taskArg(req)
	if errResult != nil {
		return errResult, nil
	}

	opts, errResult := thresholdOptions(req)
	if errResult != nil {
		return errResult, nil
	}

	format := req.GetString("format", "markdown")
	if format != "markdown" && format != "json" {
		return mcp.NewToolResultError(fmt.Sprintf("invalid format %q: must be markdown or json", format)), nil
	}

	res := routing.New(t.reg, opts...).Classify(task)
	notifyObserver(t.observer, task, res, "mcp")

	rep := report.Build(res)
	if format == "json" {
		out, err := rep.JSON()
		if err != nil {
			return nil, fmt.Errorf("rendering report: %w", err)
		}
		return mcp.NewToolResultText(out), nil
	}
	return mcp.NewToolResultText(rep.Markdown()), nil
}
