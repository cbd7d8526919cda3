// Package cli implements the switchboard command tree.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/HendryAvila/switchboard/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "switchboard",
	Short: "Switchboard - task routing for agent teams",
	Long: `Switchboard classifies task descriptions into technical domains and
decides who should take the work: you, a single specialist agent, or a
coordinated multi-agent team.`,
	Version: server.Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// isTerminal reports whether w is an interactive terminal. Commands use
// it to pick human output for terminals and JSON for pipes.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
