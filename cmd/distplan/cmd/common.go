// Package cmd provides the distplan CLI commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/distplan/distplan/internal/artifact"
	"github.com/distplan/distplan/internal/distmanifest"
	"github.com/distplan/distplan/internal/gitops"
	"github.com/distplan/distplan/internal/jobgraph"
	"github.com/distplan/distplan/internal/release"
	"github.com/distplan/distplan/internal/tag"
	"github.com/distplan/distplan/internal/target"
	"github.com/distplan/distplan/internal/workspace"
)

// planFlags holds the CLI flags shared by every command that needs a full
// plan built before it can do its own work: plan, build, host, announce.
type planFlags struct {
	dir          string
	tagRaw       string
	targets      []string
	installers   []string
	artifacts    string
	outputFormat string
	noLocalPaths bool
	allowDirty   bool
}

// addPlanFlags registers the flags relevant to planning on cmd: tag,
// target, installer, artifact scope, output format, and the local-path/
// dirty-tree safety gates.
func addPlanFlags(cmd *cobra.Command, f *planFlags) {
	cmd.Flags().StringVar(&f.dir, "dir", ".", "workspace root directory")
	cmd.Flags().StringVar(&f.tagRaw, "tag", "", "announcement tag to plan (dry-run if omitted)")
	cmd.Flags().StringArrayVar(&f.targets, "target", nil, "target triple to plan for (repeatable)")
	cmd.Flags().StringArrayVar(&f.installers, "installer", nil, "installer kind to plan, overriding config (repeatable)")
	cmd.Flags().StringVar(&f.artifacts, "artifacts", "all", "artifact scope: local|global|all|host|lies")
	cmd.Flags().StringVar(&f.outputFormat, "output-format", "human", "output format: human|json")
	cmd.Flags().BoolVar(&f.noLocalPaths, "no-local-paths", false, "strip local filesystem paths from the manifest")
	cmd.Flags().BoolVar(&f.allowDirty, "allow-dirty", false, "allow planning with an uncommitted working tree")
}

// planResult is everything a full plan run produces, threaded between
// plan/build/host/announce without re-deriving any of it.
type planResult struct {
	ws       *workspace.Workspace
	ann      *release.Announcement
	targets  []target.Target
	plans    map[string]*artifact.Plan
	manifest *distmanifest.Manifest
	graph    *jobgraph.Graph
}

// buildPlan runs workspace load -> tag parse -> release select -> target
// expand -> artifact plan -> manifest emit -> job graph build, the
// pipeline every planning command shares.
func buildPlan(f *planFlags, toolVersion string) (*planResult, error) {
	ws, err := workspace.Load(f.dir)
	if err != nil {
		return nil, fmt.Errorf("loading workspace: %w", err)
	}

	if !f.allowDirty {
		if dirty, err := gitops.IsDirty(ws.Root); err == nil && dirty {
			return nil, fmt.Errorf("working tree has uncommitted changes (use --allow-dirty to override)")
		}
	}

	knownPackages := make([]string, 0, len(ws.Packages))
	for _, pkg := range ws.Packages {
		knownPackages = append(knownPackages, pkg.Name)
	}

	var parsedTag *tag.Tag
	if f.tagRaw == "" {
		parsedTag = tag.ParseImplicit()
	} else {
		parsedTag, err = tag.Parse(f.tagRaw, knownPackages)
		if err != nil {
			return nil, fmt.Errorf("parsing tag: %w", err)
		}
	}

	ann, err := release.Select(ws, parsedTag, release.SelectOptions{AllowLibraryOnlySingular: true})
	if err != nil {
		return nil, fmt.Errorf("selecting release: %w", err)
	}

	expandOpts := target.ExpandOptions{}
	switch {
	case len(f.targets) > 0:
		for _, t := range f.targets {
			expandOpts.Triples = append(expandOpts.Triples, target.Triple(t))
		}
	case len(ws.Config.Targets) > 0:
		for _, t := range ws.Config.Targets {
			expandOpts.Triples = append(expandOpts.Triples, target.Triple(t))
		}
	default:
		expandOpts.HostMode = true
	}
	if len(ws.Config.GithubCustomRunners) > 0 {
		expandOpts.RunnerOverrides = map[target.Triple]string{}
		for triple, runner := range ws.Config.GithubCustomRunners {
			expandOpts.RunnerOverrides[target.Triple(triple)] = runner
		}
	}

	targets, err := target.Expand(expandOpts)
	if err != nil {
		return nil, fmt.Errorf("expanding targets: %w", err)
	}

	remoteURL, err := gitops.RemoteURL(ws.Root)
	if err != nil {
		remoteURL = ""
	}

	plans := map[string]*artifact.Plan{}
	for _, rel := range ann.Releases {
		if len(f.installers) > 0 {
			rel.Package.Config.Installers = f.installers
		}
		plan, err := artifact.Plan(rel, ann, artifact.Options{
			Targets: targets,
			RepoDir: ws.Root,
			RepoURL: remoteURL,
		})
		if err != nil {
			return nil, fmt.Errorf("planning artifacts for %s: %w", rel.Package.Name, err)
		}
		plan.Artifacts = filterArtifactsByScope(plan.Artifacts, f.artifacts)
		plans[rel.Package.Name] = plan
	}

	manifest, err := distmanifest.Emit(ann, plans, distmanifest.EmitOptions{
		ToolVersion:     toolVersion,
		StripLocalPaths: f.noLocalPaths,
	})
	if err != nil {
		return nil, fmt.Errorf("emitting manifest: %w", err)
	}

	graph, err := jobgraph.Build(targets, ws.Config)
	if err != nil {
		return nil, fmt.Errorf("building job graph: %w", err)
	}

	return &planResult{
		ws:       ws,
		ann:      ann,
		targets:  targets,
		plans:    plans,
		manifest: manifest,
		graph:    graph,
	}, nil
}

// filterArtifactsByScope narrows a plan's artifacts to the --artifacts
// scope: "local" keeps only the per-target executable archives a build-
// local job produces, "global" keeps everything a single build-global
// job produces (installers, packaging, checksums, the source tarball),
// "all"/"host"/"lies" keep the full plan since host and a lies dry-run
// both need to see every artifact the real build would eventually
// produce.
func filterArtifactsByScope(artifacts []artifact.Artifact, scope string) []artifact.Artifact {
	switch scope {
	case "local":
		return filterArtifacts(artifacts, func(a artifact.Artifact) bool {
			return a.Kind == artifact.KindExecutableZip
		})
	case "global":
		return filterArtifacts(artifacts, func(a artifact.Artifact) bool {
			return a.Kind != artifact.KindExecutableZip
		})
	default:
		return artifacts
	}
}

func filterArtifacts(artifacts []artifact.Artifact, keep func(artifact.Artifact) bool) []artifact.Artifact {
	out := make([]artifact.Artifact, 0, len(artifacts))
	for _, a := range artifacts {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

// jsonError is implemented by every typed error across the internal
// packages: a structured diagnostic alongside the plain Error() string.
type jsonError interface {
	JSON() ([]byte, error)
}

// reportError prints err to stderr in the requested format. In JSON mode,
// typed errors render their own diagnostic payload; anything else falls
// back to a bare {"error": "..."} envelope.
func reportError(outputFormat string, err error) {
	if outputFormat != "json" {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	if je, ok := err.(jsonError); ok {
		if data, marshalErr := je.JSON(); marshalErr == nil {
			fmt.Fprintln(os.Stderr, string(data))
			return
		}
	}
	data, _ := json.MarshalIndent(map[string]string{"error": err.Error()}, "", "  ")
	fmt.Fprintln(os.Stderr, string(data))
}

// printManifest renders a manifest in the requested output format.
func printManifest(m *distmanifest.Manifest, outputFormat string) error {
	if outputFormat == "json" {
		data, err := distmanifest.Marshal(m)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("dist_version: %s\n", m.DistVersion)
	if m.AnnouncementTag != nil {
		fmt.Printf("tag: %s", *m.AnnouncementTag)
		if m.AnnouncementTagIsImplicit {
			fmt.Print(" (implicit)")
		}
		fmt.Println()
	} else {
		fmt.Println("tag: (none, implicit)")
	}
	for _, rel := range m.Releases {
		fmt.Printf("release %s %s: %d artifact(s)\n", rel.AppName, rel.AppVersion, len(rel.Artifacts))
		for _, name := range rel.Artifacts {
			entry := m.Artifacts[name]
			fmt.Printf("  - %s (%s)\n", entry.Name, entry.Kind)
		}
	}
	return nil
}
