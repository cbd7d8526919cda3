package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/switchboard/internal/registry"
	"github.com/HendryAvila/switchboard/internal/routing"
)

// --- Test helpers ---

// execute runs the command tree with the given stdin and args, capturing
// combined output. Flag variables are package-level, so they are reset
// after every run.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	defer resetFlags()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags() {
	classifyText = ""
	classifyFile = ""
	classifyJSON = false
	classifyExplain = false
	classifyThreshold = 0
	classifyRegistry = ""
	agentsJSON = false
	agentsRegistry = ""
	serveRegistry = ""
}

// writeTestRegistry writes a minimal registry file and returns its path.
func writeTestRegistry(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.json")
	content := `{
  "domains": [
    {"name": "docs", "keywords": ["readme", "document"]}
  ],
  "agents": [
    {"name": "docs-writer", "department": "product", "domains": ["docs"]},
    {"name": "lead", "department": "coordination"}
  ],
  "coordinator": "lead",
  "threshold": 1
}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write registry: %v", err)
	}
	return path
}

// decision is the JSON output shape the classify command prints.
type decision struct {
	DetectedDomains    []string       `json:"detected_domains"`
	DomainScores       map[string]int `json:"domain_scores"`
	SignificantDomains []string       `json:"significant_domains"`
	DelegationStrategy string         `json:"delegation_strategy"`
	SuggestedAgents    []string       `json:"suggested_agents"`
	Confidence         string         `json:"confidence"`
}

func decodeDecision(t *testing.T, out string) decision {
	t.Helper()
	var d decision
	if err := json.Unmarshal([]byte(out), &d); err != nil {
		t.Fatalf("output should be valid JSON: %v\noutput: %s", err, out)
	}
	return d
}

// --- Command tree ---

func TestRootCmd_Subcommands(t *testing.T) {
	want := map[string]bool{"classify": false, "agents": false, "serve": false, "update": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q is not registered", name)
		}
	}
}

func TestRootCmd_Version(t *testing.T) {
	out, err := execute(t, "", "--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.Contains(out, "dev") {
		t.Errorf("version output = %q, want it to contain the dev version", out)
	}
}

// --- classify ---

func TestClassifyCmd_Definition(t *testing.T) {
	flags := classifyCmd.Flags()

	text := flags.Lookup("text")
	if text == nil || text.Shorthand != "t" {
		t.Errorf("text flag = %+v, want shorthand t", text)
	}
	file := flags.Lookup("file")
	if file == nil || file.Shorthand != "f" {
		t.Errorf("file flag = %+v, want shorthand f", file)
	}
	for _, name := range []string{"json", "explain", "threshold", "registry"} {
		if flags.Lookup(name) == nil {
			t.Errorf("classify is missing the --%s flag", name)
		}
	}
	if th := flags.Lookup("threshold"); th != nil && th.DefValue != "0" {
		t.Errorf("threshold default = %q, want 0 (unset)", th.DefValue)
	}
}

func TestClassifyCmd_TextFlag(t *testing.T) {
	out, err := execute(t, "", "classify", "--text", "Implement a loading spinner component for React")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	// A buffer is not a terminal, so output is JSON without --json.
	d := decodeDecision(t, out)
	if d.DelegationStrategy != "single-agent" {
		t.Errorf("delegation_strategy = %q, want single-agent", d.DelegationStrategy)
	}
	if len(d.SuggestedAgents) != 1 || d.SuggestedAgents[0] != "frontend-specialist" {
		t.Errorf("suggested_agents = %v, want [frontend-specialist]", d.SuggestedAgents)
	}
}

func TestClassifyCmd_FileInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ticket.txt")
	if err := os.WriteFile(path, []byte("migrate the postgres database schema"), 0o644); err != nil {
		t.Fatalf("write ticket: %v", err)
	}

	out, err := execute(t, "", "classify", "--file", path)
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	d := decodeDecision(t, out)
	if len(d.SignificantDomains) != 1 || d.SignificantDomains[0] != "database" {
		t.Errorf("significant_domains = %v, want [database]", d.SignificantDomains)
	}
	if len(d.SuggestedAgents) != 1 || d.SuggestedAgents[0] != "database-specialist" {
		t.Errorf("suggested_agents = %v, want [database-specialist]", d.SuggestedAgents)
	}
}

func TestClassifyCmd_FileUnreadable(t *testing.T) {
	_, err := execute(t, "", "classify", "--file", filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Fatal("classify should fail on an unreadable file")
	}
	if !strings.Contains(err.Error(), "reading task file") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClassifyCmd_StdinInput(t *testing.T) {
	out, err := execute(t, "add a rest api endpoint with jwt authentication", "classify")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	d := decodeDecision(t, out)
	if len(d.SignificantDomains) == 0 || d.SignificantDomains[0] != "backend" {
		t.Errorf("significant_domains = %v, want backend first", d.SignificantDomains)
	}
}

func TestClassifyCmd_EmptyStdinRoutesDirect(t *testing.T) {
	out, err := execute(t, "", "classify")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	d := decodeDecision(t, out)
	if d.DelegationStrategy != "direct" {
		t.Errorf("delegation_strategy = %q, want direct", d.DelegationStrategy)
	}
	if d.SuggestedAgents == nil {
		t.Error("suggested_agents should be an empty array, not null")
	}
}

func TestClassifyCmd_ThresholdValidation(t *testing.T) {
	_, err := execute(t, "", "classify", "--text", "x", "--threshold", "-3")
	if err == nil {
		t.Fatal("classify should reject a negative threshold")
	}
	if !strings.Contains(err.Error(), "threshold must be at least 1") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClassifyCmd_ThresholdOverride(t *testing.T) {
	out, err := execute(t, "", "classify",
		"--text", "Implement a loading spinner component for React",
		"--threshold", "4")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	d := decodeDecision(t, out)
	if d.DelegationStrategy != "direct" {
		t.Errorf("delegation_strategy = %q, want direct with threshold 4", d.DelegationStrategy)
	}
	if d.DomainScores["frontend"] != 3 {
		t.Errorf("frontend score = %d, want 3", d.DomainScores["frontend"])
	}
}

func TestClassifyCmd_RegistryFlag(t *testing.T) {
	path := writeTestRegistry(t)

	out, err := execute(t, "", "classify", "--registry", path, "--text", "update the readme document")
	if err != nil {
		t.Fatalf("classify failed: %v", err)
	}

	d := decodeDecision(t, out)
	if len(d.SuggestedAgents) != 1 || d.SuggestedAgents[0] != "docs-writer" {
		t.Errorf("suggested_agents = %v, want [docs-writer]", d.SuggestedAgents)
	}
}

func TestClassifyCmd_RegistryMissing(t *testing.T) {
	_, err := execute(t, "", "classify", "--registry", "/does/not/exist.json", "--text", "x")
	if err == nil {
		t.Fatal("classify should fail when the registry file is unreadable")
	}
}

func TestRenderClassify_MarkdownWithHits(t *testing.T) {
	res, hits := routing.New(registry.Default()).Explain("Implement a loading spinner component for React")

	out, err := renderClassify(res, hits, false, true)
	if err != nil {
		t.Fatalf("renderClassify failed: %v", err)
	}
	if !strings.Contains(out, "# Routing Decision") {
		t.Errorf("missing report header, got: %s", out)
	}
	if !strings.Contains(out, "## Keyword Hits") {
		t.Errorf("missing hits section, got: %s", out)
	}
	if !strings.Contains(out, `"spinner" matched 1 time(s)`) {
		t.Errorf("missing spinner hit, got: %s", out)
	}
}

func TestRenderClassify_JSONEndsWithNewline(t *testing.T) {
	res, hits := routing.New(registry.Default()).Explain("hello")

	out, err := renderClassify(res, hits, true, false)
	if err != nil {
		t.Fatalf("renderClassify failed: %v", err)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("JSON output should end with a newline")
	}
}

// --- agents ---

func TestAgentsCmd_JSONOutput(t *testing.T) {
	out, err := execute(t, "", "agents")
	if err != nil {
		t.Fatalf("agents failed: %v", err)
	}

	var f registry.File
	if err := json.Unmarshal([]byte(out), &f); err != nil {
		t.Fatalf("output should be valid JSON: %v\noutput: %s", err, out)
	}
	if len(f.Agents) != 13 {
		t.Errorf("got %d agents, want 13", len(f.Agents))
	}
	if f.Coordinator != "project-coordinator" {
		t.Errorf("coordinator = %q, want project-coordinator", f.Coordinator)
	}
}

func TestAgentsCmd_RegistryFlag(t *testing.T) {
	path := writeTestRegistry(t)

	out, err := execute(t, "", "agents", "--registry", path)
	if err != nil {
		t.Fatalf("agents failed: %v", err)
	}

	var f registry.File
	if err := json.Unmarshal([]byte(out), &f); err != nil {
		t.Fatalf("output should be valid JSON: %v", err)
	}
	if len(f.Agents) != 2 || f.Agents[0].Name != "docs-writer" {
		t.Errorf("agents = %v, want the custom roster", f.Agents)
	}
}
