package jobgraph

import (
	"testing"

	"github.com/distplan/distplan/internal/target"
	"github.com/distplan/distplan/internal/workspace"
)

func TestBuildFixedPhaseSkeleton(t *testing.T) {
	targets := []target.Target{
		{Triple: "x86_64-unknown-linux-gnu", GOOS: "linux", GOARCH: "amd64", Runner: "ubuntu-latest"},
		{Triple: "aarch64-apple-darwin", GOOS: "darwin", GOARCH: "arm64", Runner: "macos-latest"},
	}
	g, err := Build(targets, workspace.DefaultDistConfig())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	byPhase := g.JobsByPhase()
	if len(byPhase[PhaseBuildLocal]) != 2 {
		t.Fatalf("expected 2 build-local jobs, got %d", len(byPhase[PhaseBuildLocal]))
	}
	if len(byPhase[PhasePlan]) != 1 || len(byPhase[PhaseHost]) != 1 {
		t.Fatalf("expected exactly one plan and host job")
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		t.Fatalf("TopologicalOrder: %v", err)
	}
	indexOf := func(id string) int {
		for i, v := range order {
			if v == id {
				return i
			}
		}
		t.Fatalf("job %q missing from topological order", id)
		return -1
	}
	if indexOf("plan") >= indexOf(buildLocalID("x86_64-unknown-linux-gnu")) {
		t.Error("plan must precede build-local jobs")
	}
	if indexOf(buildLocalID("x86_64-unknown-linux-gnu")) >= indexOf("host") {
		t.Error("build-local must precede host")
	}
	if indexOf("host") >= indexOf("publish") {
		t.Error("host must precede publish")
	}
	if indexOf("announce") >= indexOf("post-announce") {
		t.Error("announce must precede post-announce")
	}
}

func TestBuildInsertsHookJobs(t *testing.T) {
	cfg := workspace.DefaultDistConfig()
	cfg.PostAnnounceJobs = []string{"notify-slack"}
	cfg.HostJobs = []string{"./custom-host.yml"}

	g, err := Build([]target.Target{{Triple: "x86_64-unknown-linux-gnu", Runner: "ubuntu-latest"}}, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	found := map[string]bool{}
	for _, j := range g.Jobs {
		if j.Kind == KindHook {
			found[j.HookName] = true
		}
	}
	if !found["notify-slack"] || !found["./custom-host.yml"] {
		t.Fatalf("expected both hook jobs present, got %+v", found)
	}
}

func TestBuildRejectsUnknownPRRunMode(t *testing.T) {
	cfg := workspace.DefaultDistConfig()
	cfg.PRRunMode = "bogus"
	if _, err := Build(nil, cfg); err == nil {
		t.Fatal("expected error for unknown pr-run-mode")
	}
}

func TestBuildFailFastCarriesThrough(t *testing.T) {
	cfg := workspace.DefaultDistConfig()
	cfg.FailFast = true
	g, err := Build([]target.Target{{Triple: "x86_64-unknown-linux-gnu"}}, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !g.FailFast {
		t.Error("expected FailFast to carry through from config")
	}
}
