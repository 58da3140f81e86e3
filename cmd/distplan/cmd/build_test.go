package cmd

import (
	"strings"
	"testing"

	"github.com/distplan/distplan/internal/jobgraph"
	"github.com/distplan/distplan/internal/target"
)

func TestGenerateProcessComposeYAML(t *testing.T) {
	triple := target.Triple("x86_64-unknown-linux-gnu")
	g := &jobgraph.Graph{
		Jobs: []jobgraph.Job{
			{ID: "plan", Phase: jobgraph.PhasePlan, Kind: jobgraph.KindCore},
			{ID: "build-local-x86_64-unknown-linux-gnu", Phase: jobgraph.PhaseBuildLocal, Kind: jobgraph.KindCore, Target: &triple},
			{ID: "hook-publish-crates", Phase: jobgraph.PhasePublish, Kind: jobgraph.KindHook, HookName: "publish-crates"},
		},
		Edges: []jobgraph.Edge{
			{From: "plan", To: "build-local-x86_64-unknown-linux-gnu"},
			{From: "build-local-x86_64-unknown-linux-gnu", To: "hook-publish-crates"},
		},
	}

	out := generateProcessComposeYAML(g, "/usr/local/bin/distplan", "/work")

	if !strings.HasPrefix(out, "version: \"0.5\"\n") {
		t.Fatalf("missing version header, got:\n%s", out)
	}
	if !strings.Contains(out, "  plan:\n") {
		t.Errorf("missing plan process, got:\n%s", out)
	}
	if !strings.Contains(out, "depends_on:\n      plan:\n") {
		t.Errorf("missing depends_on edge from plan, got:\n%s", out)
	}
	if !strings.Contains(out, "__hook-run --dir '/work' 'publish-crates'") {
		t.Errorf("hook job command malformed, got:\n%s", out)
	}
}

func TestJobCommandCore(t *testing.T) {
	triple := target.Triple("aarch64-apple-darwin")
	job := jobgraph.Job{ID: "build-local-aarch64-apple-darwin", Phase: jobgraph.PhaseBuildLocal, Kind: jobgraph.KindCore, Target: &triple}

	cmd := jobCommand(job, "distplan", ".")

	if !strings.Contains(cmd, "dry-run") || !strings.Contains(cmd, "aarch64-apple-darwin") {
		t.Errorf("jobCommand() = %q, want a dry-run echo naming the target", cmd)
	}
}

func TestJobCommandHook(t *testing.T) {
	job := jobgraph.Job{ID: "hook-lint", Phase: jobgraph.PhasePlan, Kind: jobgraph.KindHook, HookName: "lint"}

	cmd := jobCommand(job, "/bin/distplan", "/repo")

	want := "/bin/distplan __hook-run --dir '/repo' 'lint'"
	if cmd != want {
		t.Errorf("jobCommand() = %q, want %q", cmd, want)
	}
}

func TestShellQuoteEscapesSingleQuotes(t *testing.T) {
	got := shellQuote("it's a test")
	want := `'it'\''s a test'`
	if got != want {
		t.Errorf("shellQuote() = %q, want %q", got, want)
	}
}

func TestYamlKeyReplacesSeparators(t *testing.T) {
	got := yamlKey("build-local x/y")
	want := "build-local_x_y"
	if got != want {
		t.Errorf("yamlKey() = %q, want %q", got, want)
	}
}
