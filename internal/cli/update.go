package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/switchboard/internal/server"
	"github.com/HendryAvila/switchboard/internal/updater"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update switchboard to the latest release",
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

// runUpdate executes the update command, replacing the running binary
// with the latest GitHub release.
func runUpdate(cmd *cobra.Command, args []string) error {
	errOut := cmd.ErrOrStderr()
	fmt.Fprintln(errOut, "🔍 Checking for updates...")

	result := updater.CheckVersion(server.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(errOut, "✅ Already at the latest version (v%s)\n", result.CurrentVersion)
		return nil
	}

	fmt.Fprintf(errOut, "📦 New version available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintln(errOut, "⬇️  Downloading...")

	if err := updater.SelfUpdate(server.Version); err != nil {
		fmt.Fprintf(errOut, "   You can download manually from:\n   %s\n", result.ReleaseURL)
		return fmt.Errorf("update failed: %w", err)
	}

	fmt.Fprintf(errOut, "✅ Updated to v%s!\n", result.LatestVersion)
	fmt.Fprintln(errOut, "   Restart switchboard to use the new version.")
	return nil
}
