// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on abstractions.
// No business logic lives here, only wiring.
package server

import (
	"fmt"
	"log"

	"github.com/HendryAvila/switchboard/internal/history"
	"github.com/HendryAvila/switchboard/internal/prompts"
	"github.com/HendryAvila/switchboard/internal/registry"
	"github.com/HendryAvila/switchboard/internal/resources"
	"github.com/HendryAvila/switchboard/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. This is the single place where all
// dependencies are resolved. registryPath selects the registry file;
// empty falls back to SWITCHBOARD_REGISTRY and then the built-in
// defaults.
//
// The returned cleanup function closes the history store's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if history init failed.
func New(registryPath string) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	reg, err := registry.Resolve(registryPath)
	if err != nil {
		return nil, noop, fmt.Errorf("loading registry: %w", err)
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"switchboard",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Initialize routing history ---
	//
	// History is an independent subsystem: if it fails to initialize,
	// routing tools continue working. We log a warning and skip the
	// history tools; the server still classifies and delegates.

	cleanup := noop
	var observer tools.RouteObserver
	store, histErr := history.New(history.DefaultConfig())
	if histErr != nil {
		log.Printf("WARNING: routing history disabled: %v", histErr)
	} else {
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Printf("WARNING: history store close: %v", err)
			}
		}
		// A nil *HistoryBridge must never be assigned to the interface
		// variable, or the nil check inside notifyObserver stops working.
		if bridge := tools.NewHistoryBridge(store); bridge != nil {
			observer = bridge
		}
	}

	// --- Register routing tools ---

	routeTask := tools.NewRouteTaskTool(reg, observer)
	s.AddTool(routeTask.Definition(), routeTask.Handle)

	routeExplain := tools.NewRouteExplainTool(reg)
	s.AddTool(routeExplain.Definition(), routeExplain.Handle)

	routeAgents := tools.NewRouteAgentsTool(reg)
	s.AddTool(routeAgents.Definition(), routeAgents.Handle)

	if histErr == nil {
		routeHistory := tools.NewRouteHistoryTool(store)
		s.AddTool(routeHistory.Definition(), routeHistory.Handle)

		routeStats := tools.NewRouteStatsTool(store)
		s.AddTool(routeStats.Definition(), routeStats.Handle)
	}

	// --- Register prompts ---

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(reg)
	s.AddResource(resourceHandler.RegistryResource(), resourceHandler.HandleRegistry)

	return s, cleanup, nil
}

// noop is a no-op cleanup function used as the default when history
// is disabled or hasn't been initialized.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use switchboard effectively.
func serverInstructions() string {
	return `You have access to switchboard, a task routing MCP server.

## WHEN TO USE switchboard

Call route_task whenever the user hands you a piece of work and the right
owner is not obvious:
- "Build...", "add a feature for...", "fix the slow...", "integrate with..."
- Tickets, user stories, or TODO items pasted into the conversation
- Anything that might span several specialties (say api + database + security)

You do NOT need it for:
- Questions, explanations, or documentation lookups
- Work the user already assigned to a specific person or agent

## How routing works

route_task scores the task description against a keyword registry. Every
domain whose score reaches the significance threshold gets a specialist:

- 0 significant domains: direct, just do the task yourself
- 1 significant domain: single-agent, hand it to that specialist
- 2 significant domains: two specialists working in parallel (no coordinator),
  collapsing to one generalist when both domains map to the same agent
- 3+ significant domains: a team with one agent per domain plus the
  coordinator

Every result carries a confidence level (high/medium/low). When a domain is
listed as unassigned, no registered agent covers it: tell the user instead
of guessing an owner.

## Workflow

1. Run route_task with the task description
2. Present the suggested agents and the delegation strategy
3. If the decision looks surprising, run route_explain with the same text
   and review the keyword hits before overriding anything
4. Use route_agents to see who covers a domain
5. Use route_history and route_stats to review past decisions (these are
   only available when the history store is working)

The decision is advisory. You and the user always have the final word; the
router only makes the hand-off explicit and repeatable.

## Registry

The built-in registry covers the common software domains. To replace it,
point SWITCHBOARD_REGISTRY at a JSON or YAML registry file. Read the
route://registry resource to inspect the active domains and agents.`
}
