package jobgraph

import (
	"fmt"

	dgraph "github.com/dominikbraun/graph"

	"github.com/distplan/distplan/internal/target"
	"github.com/distplan/distplan/internal/workspace"
)

// Build constructs the job graph for one announcement: the fixed phase
// skeleton, one build-local job per target, and any user hook jobs
// declared in cfg's *-jobs lists.
func Build(targets []target.Target, cfg workspace.DistConfig) (*Graph, error) {
	prMode, ok := ParsePRRunMode(cfg.PRRunMode)
	if !ok {
		return nil, fmt.Errorf("unknown pr-run-mode %q", cfg.PRRunMode)
	}

	g := &Graph{FailFast: cfg.FailFast, PRMode: prMode}

	byPhase := map[Phase][]string{}
	addJob := func(j Job) {
		g.Jobs = append(g.Jobs, j)
		byPhase[j.Phase] = append(byPhase[j.Phase], j.ID)
	}

	addJob(Job{ID: "plan", Phase: PhasePlan, Kind: KindCore})
	for _, hook := range cfg.PlanJobs {
		addJob(Job{ID: hookID(PhasePlan, hook), Phase: PhasePlan, Kind: KindHook, HookName: hook})
	}

	for _, t := range targets {
		triple := t.Triple
		addJob(Job{ID: buildLocalID(t.Triple), Phase: PhaseBuildLocal, Kind: KindCore, Runner: t.Runner, Target: &triple})
	}
	for _, hook := range cfg.BuildLocalArtifactsJobs {
		addJob(Job{ID: hookID(PhaseBuildLocal, hook), Phase: PhaseBuildLocal, Kind: KindHook, HookName: hook})
	}

	addJob(Job{ID: "build-global", Phase: PhaseBuildGlobal, Kind: KindCore})
	for _, hook := range cfg.BuildGlobalArtifactsJobs {
		addJob(Job{ID: hookID(PhaseBuildGlobal, hook), Phase: PhaseBuildGlobal, Kind: KindHook, HookName: hook})
	}

	addJob(Job{ID: "host", Phase: PhaseHost, Kind: KindCore})
	for _, hook := range cfg.HostJobs {
		addJob(Job{ID: hookID(PhaseHost, hook), Phase: PhaseHost, Kind: KindHook, HookName: hook})
	}

	addJob(Job{ID: "publish", Phase: PhasePublish, Kind: KindCore})
	for _, hook := range cfg.PublishJobs {
		addJob(Job{ID: hookID(PhasePublish, hook), Phase: PhasePublish, Kind: KindHook, HookName: hook})
	}

	addJob(Job{ID: "announce", Phase: PhaseAnnounce, Kind: KindCore})

	addJob(Job{ID: "post-announce", Phase: PhasePostAnnounce, Kind: KindCore})
	for _, hook := range cfg.PostAnnounceJobs {
		addJob(Job{ID: hookID(PhasePostAnnounce, hook), Phase: PhasePostAnnounce, Kind: KindHook, HookName: hook})
	}

	// build-local and build-global occupy the same position in the
	// happens-before chain: both follow plan, both precede host.
	positionPhases := [][]Phase{
		{PhasePlan},
		{PhaseBuildLocal, PhaseBuildGlobal},
		{PhaseHost},
		{PhasePublish},
		{PhaseAnnounce},
		{PhasePostAnnounce},
	}

	for pos := 0; pos < len(positionPhases)-1; pos++ {
		var fromIDs, toIDs []string
		for _, p := range positionPhases[pos] {
			fromIDs = append(fromIDs, byPhase[p]...)
		}
		for _, p := range positionPhases[pos+1] {
			toIDs = append(toIDs, byPhase[p]...)
		}
		for _, f := range fromIDs {
			for _, t := range toIDs {
				g.Edges = append(g.Edges, Edge{From: f, To: t})
			}
		}
	}

	if err := validateAcyclic(g); err != nil {
		return nil, err
	}

	return g, nil
}

func buildLocalID(triple target.Triple) string {
	return "build-local:" + string(triple)
}

func hookID(phase Phase, name string) string {
	return fmt.Sprintf("hook:%s:%s", phase, name)
}

// validateAcyclic runs the built edges through dominikbraun/graph's
// acyclic directed graph to confirm the phase skeleton never produced a
// cycle — a planner bug if it ever did, since phases are fixed.
func validateAcyclic(g *Graph) error {
	dg := dgraph.New(func(j Job) string { return j.ID }, dgraph.Directed(), dgraph.Acyclic())

	for _, j := range g.Jobs {
		if err := dg.AddVertex(j); err != nil {
			return fmt.Errorf("add job %q: %w", j.ID, err)
		}
	}
	for _, e := range g.Edges {
		if err := dg.AddEdge(e.From, e.To); err != nil {
			return fmt.Errorf("add edge %s->%s: %w", e.From, e.To, err)
		}
	}

	if _, err := dgraph.TopologicalSort(dg); err != nil {
		return fmt.Errorf("job graph has a cycle: %w", err)
	}
	return nil
}

// TopologicalOrder returns one valid execution order honoring every edge.
// Jobs within the same phase may come back in any relative order; callers
// that need per-phase grouping should use JobsByPhase instead.
func (g *Graph) TopologicalOrder() ([]string, error) {
	dg := dgraph.New(func(j Job) string { return j.ID }, dgraph.Directed(), dgraph.Acyclic())
	for _, j := range g.Jobs {
		if err := dg.AddVertex(j); err != nil {
			return nil, err
		}
	}
	for _, e := range g.Edges {
		if err := dg.AddEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}
	return dgraph.TopologicalSort(dg)
}

// JobsByPhase groups the graph's jobs by phase. The map has no order of
// its own (Phases gives the execution order); within a phase, jobs keep
// their order in g.Jobs.
func (g *Graph) JobsByPhase() map[Phase][]Job {
	out := map[Phase][]Job{}
	for _, j := range g.Jobs {
		out[j.Phase] = append(out[j.Phase], j)
	}
	return out
}

// Phases returns the fixed phase sequence in happens-before order.
func Phases() []Phase {
	out := make([]Phase, len(phaseOrder))
	copy(out, phaseOrder)
	return out
}
