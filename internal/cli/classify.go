// Package cli provides CLI commands for switchboard.
// This file implements the classify command, the CLI twin of the
// route_task MCP tool.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/HendryAvila/switchboard/internal/registry"
	"github.com/HendryAvila/switchboard/internal/report"
	"github.com/HendryAvila/switchboard/internal/routing"
)

var (
	classifyText      string
	classifyFile      string
	classifyJSON      bool
	classifyExplain   bool
	classifyThreshold int
	classifyRegistry  string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a task description and print the routing decision",
	Long: `Classify a task description into technical domains and print the
delegation decision.

The task text comes from --text, --file, or stdin, in that order of
precedence. Terminals get the markdown report, pipes get JSON; --json
forces JSON either way.

Examples:
  switchboard classify --text "add a login endpoint with JWT"
  switchboard classify --file ticket.txt --explain
  cat ticket.txt | switchboard classify --json | jq '.suggested_agents'`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVarP(&classifyText, "text", "t", "", "Task description to classify")
	classifyCmd.Flags().StringVarP(&classifyFile, "file", "f", "", "Read the task description from a file")
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "Output the decision as JSON")
	classifyCmd.Flags().BoolVar(&classifyExplain, "explain", false, "Append per-domain keyword hits (markdown output only)")
	classifyCmd.Flags().IntVar(&classifyThreshold, "threshold", 0, "Significance threshold override (minimum 1)")
	classifyCmd.Flags().StringVar(&classifyRegistry, "registry", "", "Registry file (default: SWITCHBOARD_REGISTRY or built-in)")
}

// runClassify executes the classify command.
func runClassify(cmd *cobra.Command, args []string) error {
	task, err := classifyInput(cmd.InOrStdin())
	if err != nil {
		return err
	}

	reg, err := registry.Resolve(classifyRegistry)
	if err != nil {
		return err
	}

	opts, err := thresholdOption()
	if err != nil {
		return err
	}

	res, hits := routing.New(reg, opts...).Explain(task)

	out := cmd.OutOrStdout()
	asJSON := classifyJSON || !isTerminal(out)
	rendered, err := renderClassify(res, hits, asJSON, classifyExplain)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}

// classifyInput resolves the task text: --text wins, then --file, then
// stdin. Reading stdin from an interactive terminal is an error instead
// of a silent hang.
func classifyInput(in io.Reader) (string, error) {
	if classifyText != "" {
		return classifyText, nil
	}
	if classifyFile != "" {
		data, err := os.ReadFile(classifyFile)
		if err != nil {
			return "", fmt.Errorf("reading task file: %w", err)
		}
		return string(data), nil
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errors.New("no task given: pass --text, --file, or pipe the description on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// thresholdOption turns the --threshold flag into router options.
// Zero means unset and keeps the registry's threshold.
func thresholdOption() ([]routing.Option, error) {
	if classifyThreshold == 0 {
		return nil, nil
	}
	if classifyThreshold < 1 {
		return nil, fmt.Errorf("threshold must be at least 1, got %d", classifyThreshold)
	}
	return []routing.Option{routing.WithThreshold(classifyThreshold)}, nil
}

// renderClassify formats a routing result for the terminal. JSON output
// ends with a newline so it composes in pipelines; the hits section only
// applies to markdown.
func renderClassify(res routing.Result, hits map[string][]routing.KeywordHit, asJSON, withHits bool) (string, error) {
	rep := report.Build(res)

	if asJSON {
		s, err := rep.JSON()
		if err != nil {
			return "", fmt.Errorf("rendering report: %w", err)
		}
		return s + "\n", nil
	}

	var sb strings.Builder
	sb.WriteString(rep.Markdown())
	if withHits {
		writeHits(&sb, res, hits)
	}
	return sb.String(), nil
}

// writeHits appends the per-domain keyword hits under the report.
func writeHits(sb *strings.Builder, res routing.Result, hits map[string][]routing.KeywordHit) {
	sb.WriteString("\n## Keyword Hits\n\n")
	if len(res.DetectedDomains) == 0 {
		sb.WriteString("_No keywords matched._\n")
		return
	}
	for _, domain := range res.DetectedDomains {
		fmt.Fprintf(sb, "- **%s**: %d\n", domain, res.Scores[domain])
		for _, h := range hits[domain] {
			fmt.Fprintf(sb, "  - %q matched %d time(s)\n", h.Keyword, h.Count)
		}
	}
}
