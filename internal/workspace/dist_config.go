package workspace

import "fmt"

// InstallPathList is an ordered list of install-path candidates, tried in
// sequence until one is usable. A single bare string in TOML is accepted
// as shorthand for a one-entry list, so existing "install-path = '...'"
// configs keep working unchanged.
type InstallPathList []string

// UnmarshalTOML implements go-toml/v2's Unmarshaler, accepting either a
// bare string or an array of strings for the "install-path" key.
func (l *InstallPathList) UnmarshalTOML(value any) error {
	switch v := value.(type) {
	case string:
		*l = InstallPathList{v}
	case []any:
		out := make(InstallPathList, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("install-path entries must be strings, got %T", item)
			}
			out = append(out, s)
		}
		*l = out
	default:
		return fmt.Errorf("install-path must be a string or list of strings, got %T", value)
	}
	return nil
}

// DistConfig is the release configuration read from dist-workspace.toml or
// a package's own dist.toml. Three layers are merged in order, each
// overriding the fields it sets: workspace defaults, package overrides,
// CLI overrides (applied by callers via Merge after loading).
type DistConfig struct {
	// Installers lists which installer kinds to plan for: "shell",
	// "powershell", "npm", "homebrew", "msi".
	Installers []string `toml:"installers,omitempty"`

	// Targets lists target triples to plan artifacts for, e.g.
	// "x86_64-unknown-linux-gnu". Empty means "use the built-in default
	// matrix" (see internal/target).
	Targets []string `toml:"targets,omitempty"`

	// Include lists extra glob patterns (doublestar syntax) whose matches
	// are copied into every executable-zip artifact.
	Include []string `toml:"include,omitempty"`

	// Checksum names the checksum algorithm: "sha256", "sha512",
	// "blake2s", "blake2b", or "sha3-256". Defaults to "sha256". "false"
	// disables checksums entirely.
	Checksum string `toml:"checksum,omitempty"`

	// Hosting names the hosting provider: currently only "github".
	Hosting string `toml:"hosting,omitempty"`

	// ArtifactURLBase overrides the base URL artifacts are fetched from,
	// taking precedence over the hosting provider's own pattern. Set this
	// when artifacts are mirrored or fronted by a CDN instead of served
	// directly from the hosting provider.
	ArtifactURLBase string `toml:"artifact-url-base,omitempty"`

	// WindowsArchive/UnixArchive override the default archive format
	// ("zip" on Windows, "tar.xz" elsewhere) per OS family.
	WindowsArchive string `toml:"windows-archive,omitempty"`
	UnixArchive    string `toml:"unix-archive,omitempty"`

	// InstallPath names where installers place binaries: either a single
	// path or an ordered list tried in sequence until one probes viable.
	// Accepted forms per entry: "~/.appname/bin" (home-relative),
	// "$MY_ENV_VAR/bin" (env-relative, viable only when the var is set),
	// or a bare "CARGO_HOME"-style alias (a few well-known env-var names
	// resolved the same way).
	InstallPath InstallPathList `toml:"install-path,omitempty"`

	// Tap names the Homebrew tap ("owner/repo") the formula is published
	// under. A Homebrew artifact is only planned when this is set.
	Tap string `toml:"tap,omitempty"`

	// BinAliases maps a declared binary name to extra names it should
	// also be reachable under inside the archive (hardlinks on Windows,
	// symlinks elsewhere).
	BinAliases map[string][]string `toml:"bin-aliases,omitempty"`

	// ForceLatest marks every announcement as the "latest" release
	// regardless of semver ordering against prior releases.
	ForceLatest bool `toml:"force-latest,omitempty"`

	// InstallUpdater controls whether a standalone updater artifact is
	// planned alongside each executable archive.
	InstallUpdater bool `toml:"install-updater,omitempty"`

	// AutoIncludesRootDocs controls whether README*/LICENSE*/CHANGELOG*
	// at the package root are auto-included in every archive.
	AutoIncludesRootDocs *bool `toml:"auto-includes,omitempty"`

	// PRRun, when true, plans artifacts for "pr-run" announcements
	// (dry-run builds triggered from a pull request), matching the
	// Release Selector's pr-run tag form.
	PRRun bool `toml:"pr-run,omitempty"`

	// ExtraArtifacts lists extra-artifact job specs: a name and the
	// Taskfile task that produces it. These run through internal/hook.
	ExtraArtifacts []ExtraArtifactConfig `toml:"extra-artifacts,omitempty"`

	// DistVersion pins the expected distplan version for this workspace.
	// A mismatch at plan time is a warning (or, if StrictVersion is set,
	// an error).
	DistVersion   string `toml:"dist-version,omitempty"`
	StrictVersion bool   `toml:"strict-version,omitempty"`

	// CI enumerates CI providers this workspace generates workflows for.
	// Only "github" is currently supported.
	CI []string `toml:"ci,omitempty"`

	// TagNamespace restricts accepted tags to those beginning with this
	// prefix (the Tag Parser's "prefix" grammar component).
	TagNamespace string `toml:"tag-namespace,omitempty"`

	// GithubCustomRunners maps a target triple to the CI runner label
	// that should build it, overriding internal/target's default table.
	GithubCustomRunners map[string]string `toml:"github-custom-runners,omitempty"`

	// DispatchReleases selects how CI triggers a release run: "tag-push"
	// (default) or "workflow-dispatch".
	DispatchReleases string `toml:"dispatch-releases,omitempty"`

	// CreateRelease controls whether distplan itself creates the GitHub
	// release body, or only uploads to an existing draft.
	CreateRelease *bool `toml:"create-release,omitempty"`

	// GithubRelease selects when the release is made visible: "host"
	// (default, at upload time) or "announce" (legacy timing).
	GithubRelease string `toml:"github-release,omitempty"`

	// PreciseBuilds, MergeTasks, FailFast, and BuildLocalArtifacts are
	// build-graph knobs passed through to internal/jobgraph.
	PreciseBuilds      bool `toml:"precise-builds,omitempty"`
	MergeTasks         bool `toml:"merge-tasks,omitempty"`
	FailFast           bool `toml:"fail-fast,omitempty"`
	BuildLocalArtifacts bool `toml:"build-local-artifacts,omitempty"`

	// PRRunMode selects what the job graph does on a pull request:
	// "skip" (default), "plan", or "upload".
	PRRunMode string `toml:"pr-run-mode,omitempty"`

	// PlanJobs, HostJobs, PublishJobs, BuildLocalArtifactsJobs,
	// BuildGlobalArtifactsJobs, and PostAnnounceJobs list user hook
	// identifiers inserted into their respective phase. A leading "./"
	// means a workflow file path; otherwise it names a well-known hook.
	PlanJobs                 []string `toml:"plan-jobs,omitempty"`
	HostJobs                 []string `toml:"host-jobs,omitempty"`
	PublishJobs               []string `toml:"publish-jobs,omitempty"`
	BuildLocalArtifactsJobs   []string `toml:"build-local-artifacts-jobs,omitempty"`
	BuildGlobalArtifactsJobs  []string `toml:"build-global-artifacts-jobs,omitempty"`
	PostAnnounceJobs          []string `toml:"post-announce-jobs,omitempty"`

	// Dist overrides a package's distability (whether it is eligible to
	// be released at all), independent of whether it declares binaries.
	Dist *bool `toml:"dist,omitempty"`
}

// ExtraArtifactConfig names one user-defined build step that produces an
// artifact outside the standard binary/archive/installer pipeline (docs
// bundles, SBOMs, container images saved as tarballs, etc).
type ExtraArtifactConfig struct {
	Name string `toml:"name"`
	Task string `toml:"task"`
}

// Merge returns a copy of base with every non-zero field of override
// applied on top. Slices are replaced wholesale, not appended — cargo-dist
// workspace/package config layering is override, not union, except for
// Include which is additive (package includes extend workspace includes,
// they never hide them).
func (base DistConfig) Merge(override DistConfig) DistConfig {
	out := base

	if len(override.Installers) > 0 {
		out.Installers = override.Installers
	}
	if len(override.Targets) > 0 {
		out.Targets = override.Targets
	}
	if len(override.Include) > 0 {
		out.Include = append(append([]string{}, base.Include...), override.Include...)
	}
	if override.Checksum != "" {
		out.Checksum = override.Checksum
	}
	if override.Hosting != "" {
		out.Hosting = override.Hosting
	}
	if override.ArtifactURLBase != "" {
		out.ArtifactURLBase = override.ArtifactURLBase
	}
	if override.WindowsArchive != "" {
		out.WindowsArchive = override.WindowsArchive
	}
	if override.UnixArchive != "" {
		out.UnixArchive = override.UnixArchive
	}
	if len(override.InstallPath) > 0 {
		out.InstallPath = override.InstallPath
	}
	if override.Tap != "" {
		out.Tap = override.Tap
	}
	if len(override.BinAliases) > 0 {
		out.BinAliases = override.BinAliases
	}
	if override.ForceLatest {
		out.ForceLatest = override.ForceLatest
	}
	if override.InstallUpdater {
		out.InstallUpdater = override.InstallUpdater
	}
	if override.AutoIncludesRootDocs != nil {
		out.AutoIncludesRootDocs = override.AutoIncludesRootDocs
	}
	if override.PRRun {
		out.PRRun = override.PRRun
	}
	if len(override.ExtraArtifacts) > 0 {
		out.ExtraArtifacts = override.ExtraArtifacts
	}
	if override.DistVersion != "" {
		out.DistVersion = override.DistVersion
	}
	if override.StrictVersion {
		out.StrictVersion = override.StrictVersion
	}
	if len(override.CI) > 0 {
		out.CI = override.CI
	}
	if override.TagNamespace != "" {
		out.TagNamespace = override.TagNamespace
	}
	if len(override.GithubCustomRunners) > 0 {
		out.GithubCustomRunners = override.GithubCustomRunners
	}
	if override.DispatchReleases != "" {
		out.DispatchReleases = override.DispatchReleases
	}
	if override.CreateRelease != nil {
		out.CreateRelease = override.CreateRelease
	}
	if override.GithubRelease != "" {
		out.GithubRelease = override.GithubRelease
	}
	if override.PreciseBuilds {
		out.PreciseBuilds = override.PreciseBuilds
	}
	if override.MergeTasks {
		out.MergeTasks = override.MergeTasks
	}
	if override.FailFast {
		out.FailFast = override.FailFast
	}
	if override.BuildLocalArtifacts {
		out.BuildLocalArtifacts = override.BuildLocalArtifacts
	}
	if override.PRRunMode != "" {
		out.PRRunMode = override.PRRunMode
	}
	if len(override.PlanJobs) > 0 {
		out.PlanJobs = override.PlanJobs
	}
	if len(override.HostJobs) > 0 {
		out.HostJobs = override.HostJobs
	}
	if len(override.PublishJobs) > 0 {
		out.PublishJobs = override.PublishJobs
	}
	if len(override.BuildLocalArtifactsJobs) > 0 {
		out.BuildLocalArtifactsJobs = override.BuildLocalArtifactsJobs
	}
	if len(override.BuildGlobalArtifactsJobs) > 0 {
		out.BuildGlobalArtifactsJobs = override.BuildGlobalArtifactsJobs
	}
	if len(override.PostAnnounceJobs) > 0 {
		out.PostAnnounceJobs = override.PostAnnounceJobs
	}
	if override.Dist != nil {
		out.Dist = override.Dist
	}

	return out
}

// DefaultDistConfig returns distplan's built-in defaults, applied before
// any dist-workspace.toml is read.
func DefaultDistConfig() DistConfig {
	includeDocs := true
	return DistConfig{
		Installers:           []string{"shell", "powershell"},
		Checksum:             "sha256",
		Hosting:              "github",
		AutoIncludesRootDocs: &includeDocs,
		CI:                   []string{"github"},
		PRRunMode:            "skip",
		GithubRelease:        "host",
		DispatchReleases:     "tag-push",
		FailFast:             false,
	}
}
