// Package jobgraph builds the CI job DAG for one announcement: the fixed
// phase sequence plan -> {build-local, build-global} -> host -> publish ->
// announce -> post-announce, with per-target build-local jobs and
// user-declared hook jobs inserted into their configured phase.
package jobgraph

import "github.com/distplan/distplan/internal/target"

// Phase names one stage of the release pipeline. Phases execute in strict
// happens-before order; jobs within one phase have no defined order
// relative to each other.
type Phase string

const (
	PhasePlan         Phase = "plan"
	PhaseBuildLocal   Phase = "build-local"
	PhaseBuildGlobal  Phase = "build-global"
	PhaseHost         Phase = "host"
	PhasePublish      Phase = "publish"
	PhaseAnnounce     Phase = "announce"
	PhasePostAnnounce Phase = "post-announce"
)

// phaseOrder is the fixed happens-before sequence. build-local and
// build-global share the same position: both depend on plan and both are
// depended on by host.
var phaseOrder = []Phase{PhasePlan, PhaseBuildLocal, PhaseBuildGlobal, PhaseHost, PhasePublish, PhaseAnnounce, PhasePostAnnounce}

// JobKind distinguishes the fixed pipeline jobs from user hooks.
type JobKind string

const (
	KindCore JobKind = "core"
	KindHook JobKind = "hook"
)

// Job is one node in the graph.
type Job struct {
	ID     string
	Phase  Phase
	Kind   JobKind
	Runner string

	// Target is set only for build-local jobs: one job per (target,
	// runner) pair.
	Target *target.Triple

	// HookName is set only for hook jobs: either a well-known hook
	// identifier, or a "./"-prefixed workflow file path.
	HookName string
}

// Graph is the built DAG plus the fixed-phase policy it was built under.
type Graph struct {
	Jobs     []Job
	Edges    []Edge
	FailFast bool
	PRMode   PRRunMode
}

// Edge is a directed "from must complete before to starts" dependency.
type Edge struct {
	From string
	To   string
}

// PRRunMode selects what the graph does when triggered from a pull
// request.
type PRRunMode string

const (
	PRModeSkip   PRRunMode = "skip"
	PRModePlan   PRRunMode = "plan"
	PRModeUpload PRRunMode = "upload"
)

// ParsePRRunMode validates a config string against the known modes,
// defaulting to PRModeSkip for an empty string.
func ParsePRRunMode(s string) (PRRunMode, bool) {
	switch PRRunMode(s) {
	case "", PRModeSkip:
		return PRModeSkip, true
	case PRModePlan:
		return PRModePlan, true
	case PRModeUpload:
		return PRModeUpload, true
	default:
		return "", false
	}
}
