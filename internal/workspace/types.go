// Package workspace discovers the packages in a release workspace and
// loads their layered dist configuration (workspace defaults, per-package
// overrides, CLI overrides).
package workspace

// Kind identifies which ecosystem manifest a package was discovered from.
type Kind string

const (
	// KindCargo is a package discovered from a Cargo.toml [package] table.
	KindCargo Kind = "cargo"
	// KindNPM is a package discovered from a package.json file.
	KindNPM Kind = "npm"
	// KindGeneric is a package with no recognized ecosystem manifest,
	// described entirely by its own dist.toml.
	KindGeneric Kind = "generic"
)

// Package is a single release unit inside a Workspace: one binary (or a
// small related set of binaries) with its own version and DistConfig.
type Package struct {
	// Name is the package name, e.g. "cargo" style crate name or npm
	// package name, or the name declared in a generic package's dist.toml.
	Name string

	// Version is the package's own version, independent of any git tag.
	Version string

	// Dir is the absolute path of the package directory.
	Dir string

	// Kind records which ecosystem manifest this package was read from.
	Kind Kind

	// Binaries lists the binary names this package produces. Most
	// packages produce exactly one binary named after the package.
	Binaries []string

	// Config is this package's fully-merged DistConfig: workspace
	// defaults overlaid by the [dist] table of this package's own
	// dist.toml, if it has one. [package.metadata.dist] in Cargo.toml is
	// not read.
	Config DistConfig
}

// Workspace is the root of a release workspace: zero or more Packages
// sharing a single VCS root and a single top-level dist-workspace.toml.
type Workspace struct {
	// Root is the absolute filesystem path of the directory passed to
	// Load, whether or not it contains a dist-workspace.toml.
	Root string

	// Packages is every package discovered under Root, sorted by name.
	Packages []Package

	// Config is the workspace-level DistConfig, before any per-package
	// overrides are applied.
	Config DistConfig
}

// PackageByName returns the package with the given name, or false if no
// such package exists in the workspace.
func (w *Workspace) PackageByName(name string) (Package, bool) {
	for _, p := range w.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}
