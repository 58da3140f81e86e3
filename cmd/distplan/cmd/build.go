package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pccmd "github.com/f1bonacc1/process-compose/src/cmd"
	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/config"
	"github.com/distplan/distplan/internal/jobgraph"
)

var buildFlagsV planFlags
var buildDryRun bool

// BuildCmd generates a process-compose config from the planned job graph
// and, unless --dry-run is given, runs it locally: a way to exercise the
// graph's phase ordering and hook jobs on a workstation without CI.
var BuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run (or print) the planned job graph locally via process-compose",
	Long: `Plans a release the same way "distplan plan" does, then translates
the resulting job graph into a process-compose config: one process per
job, with depends_on edges mirroring the graph's phase order. Hook jobs
shell back out to "distplan __hook-run"; core jobs are no-ops that just
announce which phase and target they stand in for, since distplan does
not itself compile binaries or talk to hosting providers.

Examples:
  distplan build --dry-run       # print the generated config, don't run it
  distplan build --tag v1.2.3    # plan a real tag and run it locally`,
	RunE: runBuild,
}

func init() {
	addPlanFlags(BuildCmd, &buildFlagsV)
	BuildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "print the generated process-compose config instead of running it")
}

func runBuild(cmd *cobra.Command, args []string) error {
	result, err := buildPlan(&buildFlagsV, version)
	if err != nil {
		reportError(buildFlagsV.outputFormat, err)
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		exe = "distplan"
	}

	yamlText := generateProcessComposeYAML(result.graph, exe, buildFlagsV.dir)

	if buildDryRun {
		fmt.Print(yamlText)
		return nil
	}

	distDir := config.Dist(result.ws.Root)
	if err := os.MkdirAll(distDir, config.DefaultDirPerms); err != nil {
		return fmt.Errorf("creating %s: %w", distDir, err)
	}
	configPath := filepath.Join(distDir, "process-compose.generated.yaml")
	if err := os.WriteFile(configPath, []byte(yamlText), config.DefaultFilePerms); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}

	return runProcessComposeUp(configPath)
}

// generateProcessComposeYAML hand-renders a process-compose config for
// one job graph. It avoids a YAML library on purpose: the config shape
// is fixed and small enough that a text/template-free string builder is
// both simpler and one less dependency than round-tripping through a
// generic map[string]any.
func generateProcessComposeYAML(g *jobgraph.Graph, exe, workDir string) string {
	dependents := map[string][]string{}
	for _, e := range g.Edges {
		dependents[e.To] = append(dependents[e.To], e.From)
	}

	var b strings.Builder
	b.WriteString("version: \"0.5\"\n")
	b.WriteString("processes:\n")
	for _, job := range g.Jobs {
		fmt.Fprintf(&b, "  %s:\n", yamlKey(job.ID))
		fmt.Fprintf(&b, "    command: %s\n", yamlQuote(jobCommand(job, exe, workDir)))
		if deps := dependents[job.ID]; len(deps) > 0 {
			b.WriteString("    depends_on:\n")
			for _, d := range deps {
				fmt.Fprintf(&b, "      %s:\n", yamlKey(d))
				b.WriteString("        condition: process_completed_successfully\n")
			}
		}
	}
	return b.String()
}

// jobCommand picks the shell command a process-compose process entry
// runs for one job. Hook jobs re-enter distplan itself; core jobs are
// dry-run placeholders since distplan plans releases, it does not build,
// host, or publish them.
func jobCommand(job jobgraph.Job, exe, workDir string) string {
	if job.Kind == jobgraph.KindHook {
		return fmt.Sprintf("%s __hook-run --dir %s %s", exe, shellQuote(workDir), shellQuote(job.HookName))
	}
	label := string(job.Phase)
	if job.Target != nil {
		label = fmt.Sprintf("%s (%s)", label, *job.Target)
	}
	return fmt.Sprintf("echo %s", shellQuote(fmt.Sprintf("[dry-run] %s: %s", job.ID, label)))
}

func yamlKey(id string) string {
	return strings.NewReplacer(" ", "_", "/", "_").Replace(id)
}

func yamlQuote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// runProcessComposeUp starts the embedded process-compose against the
// generated config. process-compose's cmd package only exposes an
// Execute() entry point that reads os.Args itself, so driving it
// programmatically means swapping os.Args around the call.
func runProcessComposeUp(configPath string) error {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"process-compose", "up", "-f", configPath}
	pccmd.Execute()
	return nil
}
