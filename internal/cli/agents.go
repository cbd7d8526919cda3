package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/HendryAvila/switchboard/internal/registry"
)

var (
	agentsJSON     bool
	agentsRegistry string
)

var agentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "List the registered agents and the domains they cover",
	Long: `List the agents the router can delegate to, with their departments
and covered domains. JSON output is the registry file shape, so it can
be saved, edited, and loaded back with --registry.`,
	RunE: runAgents,
}

func init() {
	rootCmd.AddCommand(agentsCmd)

	agentsCmd.Flags().BoolVar(&agentsJSON, "json", false, "Output the roster as JSON")
	agentsCmd.Flags().StringVar(&agentsRegistry, "registry", "", "Registry file (default: SWITCHBOARD_REGISTRY or built-in)")
}

// runAgents executes the agents command.
func runAgents(cmd *cobra.Command, args []string) error {
	reg, err := registry.Resolve(agentsRegistry)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if agentsJSON || !isTerminal(out) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(registry.File{
			Domains:     reg.Domains(),
			Agents:      reg.Agents(),
			Coordinator: reg.Coordinator().Name,
			Threshold:   reg.Threshold(),
		})
	}

	coordinator := reg.Coordinator()
	for _, a := range reg.Agents() {
		coverage := "coordination only"
		if len(a.Domains) > 0 {
			coverage = strings.Join(a.Domains, ", ")
		}
		marker := ""
		if a.Name == coordinator.Name {
			marker = " (coordinator)"
		}
		fmt.Fprintf(out, "%-24s %-14s %s%s\n", a.Name, a.Department, coverage, marker)
	}
	return nil
}
