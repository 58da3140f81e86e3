package target

import (
	"fmt"
	"runtime"
)

// ExpandOptions parameterizes Expand with the CLI flags and config that can
// override the default target resolution.
type ExpandOptions struct {
	// Triples are the requested target triples. Ignored if HostMode is
	// set.
	Triples []Triple

	// HostMode, when true, ignores Triples and produces a single target
	// for the machine running the planner, even if that triple isn't
	// declared anywhere in config — "so developers can always produce
	// something locally".
	HostMode bool

	// RunnerOverrides maps a triple to a CI runner label that should be
	// used instead of the closed table's default (dist-workspace.toml's
	// github-custom-runners).
	RunnerOverrides map[Triple]string

	// Containers maps a triple to a container image the build should run
	// inside.
	Containers map[Triple]string
}

// Expand resolves ExpandOptions into concrete Targets, each assigned
// exactly one (runner, host-triple, optional-container).
func Expand(opts ExpandOptions) ([]Target, error) {
	if opts.HostMode {
		t, err := hostTarget()
		if err != nil {
			return nil, err
		}
		applyOverrides(&t, opts)
		return []Target{t}, nil
	}

	if len(opts.Triples) == 0 {
		return nil, fmt.Errorf("no targets requested")
	}

	targets := make([]Target, 0, len(opts.Triples))
	for _, triple := range opts.Triples {
		t := resolveTarget(triple)
		applyOverrides(&t, opts)
		targets = append(targets, t)
	}
	return targets, nil
}

// hostTarget builds the Target for the machine currently running the
// planner, regardless of whether that triple is in any declared target
// list.
func hostTarget() (Target, error) {
	p, ok := hostPlatform(runtime.GOOS, runtime.GOARCH)
	if !ok {
		return Target{}, fmt.Errorf("host platform %s/%s is not in the known platform table", runtime.GOOS, runtime.GOARCH)
	}
	return Target{
		Triple:      p.Triple,
		GOOS:        p.GOOS,
		GOARCH:      p.GOARCH,
		DisplayName: string(p.Triple),
		Known:       true,
		Runner:      "",
		HostTriple:  p.Triple,
		Wrapper:     WrapperNone,
	}, nil
}

// resolveTarget assigns a runner, host triple, and cross-compile wrapper
// to a single requested triple, following the default mapping rules:
// native runner if one exists, otherwise a Linux host with a wrapper
// chosen by triple.
func resolveTarget(triple Triple) Target {
	p, known := lookupPlatform(triple)
	if !known {
		// Unknown triples are accepted but get no cross-compile hints,
		// per the closed-table fallback rule.
		return Target{
			Triple:      triple,
			DisplayName: string(triple),
			Known:       false,
		}
	}

	t := Target{
		Triple:      triple,
		GOOS:        p.GOOS,
		GOARCH:      p.GOARCH,
		DisplayName: string(triple),
		Known:       true,
		Runner:      p.Runner,
		HostTriple:  triple,
		Wrapper:     WrapperNone,
	}

	if p.Runner != "" {
		return t
	}

	// No native runner: fall back to a Linux host with a cross-compile
	// wrapper selected by built-in heuristics.
	linuxHost, _ := lookupPlatform("x86_64-unknown-linux-gnu")
	t.Runner = linuxHost.Runner
	t.HostTriple = linuxHost.Triple

	switch p.GOOS {
	case "windows":
		t.Wrapper = WrapperCargoXwin
	case "linux":
		t.Wrapper = WrapperCargoZig
	default:
		t.Wrapper = WrapperNone
	}

	return t
}

// applyOverrides layers config-declared runner/container overrides on top
// of the default resolution.
func applyOverrides(t *Target, opts ExpandOptions) {
	if opts.RunnerOverrides != nil {
		if r, ok := opts.RunnerOverrides[t.Triple]; ok {
			t.Runner = r
		}
	}
	if opts.Containers != nil {
		if c, ok := opts.Containers[t.Triple]; ok {
			t.Container = c
		}
	}
}

// BinaryFilename returns the standard binary filename for name on a
// target: "<name>-<goos>-<goarch><ext>", matching the teacher's own
// binaryFilename convention.
func BinaryFilename(name string, t Target) string {
	return fmt.Sprintf("%s-%s-%s%s", name, t.GOOS, t.GOARCH, extFor(t.GOOS))
}
