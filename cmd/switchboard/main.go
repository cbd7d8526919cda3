// Switchboard: task routing for agent teams
//
// An MCP server and CLI that classifies free-text task descriptions into
// technical domains and decides who should take the work: the caller,
// a single specialist agent, or a coordinated multi-agent team.
//
// Usage:
//
//	switchboard serve       # Start MCP server (stdio transport)
//	switchboard classify    # Route a task from the command line
//	switchboard agents      # List the registered agents
//	switchboard update      # Update to the latest version
package main

import (
	"os"

	"github.com/HendryAvila/switchboard/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
