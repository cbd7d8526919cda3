// Package prompts implements MCP prompt handlers for the routing workflow.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the route-start MCP prompt.
// It guides the AI through classifying a task and acting on the decision.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("route-start",
		mcp.WithPromptDescription(
			"Route a task to the right specialists. "+
				"Classifies the task description into technical domains and walks "+
				"through the delegation decision: who should take it and why.",
		),
		mcp.WithArgument("task",
			mcp.ArgumentDescription("The task description to route (optional, you will be asked if omitted)"),
		),
	)
}

// Handle processes the route-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	task := ""
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["task"]; ok {
			task = v
		}
	}

	if task == "" {
		return &mcp.GetPromptResult{
			Description: "Route a task",
			Messages: []mcp.PromptMessage{
				{
					Role: mcp.RoleUser,
					Content: mcp.NewTextContent(
						"I have a task that needs to be routed to the right specialists.\n\n" +
							"Please:\n" +
							"1. Ask me to describe the task\n" +
							"2. Run `route_task` with my description\n" +
							"3. Present the suggested agents and explain the delegation strategy\n" +
							"4. If the decision looks surprising, run `route_explain` with the same text and walk me through the keyword hits",
					),
				},
			},
		}, nil
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Route task: %s", task),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to route this task to the right specialists: '%s'\n\n"+
						"Please:\n"+
						"1. Run `route_task` with task='%s'\n"+
						"2. Present the suggested agents and explain the delegation strategy\n"+
						"3. If confidence is low or a domain has no agent, run `route_explain` and tell me what is missing\n"+
						"4. Once I confirm, delegate the work accordingly",
					task, task,
				)),
			},
		},
	}, nil
}
