package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	sbserver "github.com/HendryAvila/switchboard/internal/server"
	"github.com/HendryAvila/switchboard/internal/updater"
)

var serveRegistry string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Long: `Start the MCP server on stdio for use from an AI coding tool.

Add to your tool's MCP config:

  {
    "mcpServers": {
      "switchboard": {
        "command": "switchboard",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveRegistry, "registry", "", "Registry file (default: SWITCHBOARD_REGISTRY or built-in)")
}

// runServe executes the serve command.
func runServe(cmd *cobra.Command, args []string) error {
	s, cleanup, err := sbserver.New(serveRegistry)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Background version check prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	// Graceful shutdown on interrupt.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cleanup()
		os.Exit(0)
	}()

	return server.ServeStdio(s)
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available. Best-effort: network failures are
// silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(sbserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  📦 Update available: v%s → v%s\n"+
				"     Run: switchboard update\n"+
				"     Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}
