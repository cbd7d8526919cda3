package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the route-review MCP prompt.
// It instructs the AI to summarize recent routing decisions and spot
// registry gaps.
type ReviewPrompt struct{}

// NewReviewPrompt creates a ReviewPrompt.
func NewReviewPrompt() *ReviewPrompt {
	return &ReviewPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("route-review",
		mcp.WithPromptDescription(
			"Review recent routing decisions. "+
				"Summarizes what was delegated where, flags low-confidence "+
				"routings, and suggests registry adjustments.",
		),
	)
}

// Handle processes the route-review prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Routing Review",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `route_history` for my recent routing decisions and `route_stats` for the aggregate picture.\n\n" +
						"Then:\n" +
						"1. Summarize the recent routings in a clear, visual format\n" +
						"2. Highlight low-confidence decisions and domains that needed manual assignment\n" +
						"3. Point out domains that keep showing up so I can check team coverage\n" +
						"4. Suggest concrete registry changes (keywords or agents) if the decisions look off",
				),
			},
		},
	}, nil
}
