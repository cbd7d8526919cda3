// Package tools implements the MCP tool handlers for task routing.
//
// Each tool is a struct that receives its dependencies via constructor
// and returns a handler compatible with mcp-go's CallToolRequest signature.
//
// Design principles:
// - SRP: each file = one tool
// - DIP: tools depend on the registry, router, and store they are given, never on globals
// - user mistakes return mcp.NewToolResultError; Go errors are reserved for system failures
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/switchboard/internal/routing"
)

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// taskArg extracts the required 'task' argument. Presence is what's
// required: an explicitly empty task is valid input and classifies to a
// direct, zero-score result.
func taskArg(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	raw, ok := req.GetArguments()["task"]
	if !ok {
		return "", mcp.NewToolResultError("'task' is required")
	}
	task, _ := raw.(string)
	return task, nil
}

// thresholdOptions turns the optional 'threshold' argument into router
// options. A supplied threshold below 1 is a user error.
func thresholdOptions(req mcp.CallToolRequest) ([]routing.Option, *mcp.CallToolResult) {
	raw, ok := req.GetArguments()["threshold"]
	if !ok {
		return nil, nil
	}
	f, isNum := raw.(float64)
	if !isNum || f < 1 {
		return nil, mcp.NewToolResultError("'threshold' must be a number of 1 or more")
	}
	return []routing.Option{routing.WithThreshold(int(f))}, nil
}

// truncate shortens a string for display with an ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
